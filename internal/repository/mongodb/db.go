package mongodb

import (
	"context"
	"fmt"

	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	usersCollection = "users"
	postsCollection = "posts"
)

// Connect 连接 MongoDB 并测试连接
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	return client, nil
}

// EnsureIndexes 创建唯一索引和列表查询使用的索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("创建用户索引失败: %w", err)
	}

	_, err = db.Collection(postsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "creatorId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("创建帖子索引失败: %w", err)
	}

	util.Logger.Info("数据库索引已就绪", zap.String("database", db.Name()))
	return nil
}

// objectID 解析十六进制ID，无效ID按记录不存在处理
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
