package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// postRepository 实现了 PostRepository 接口
type postRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *postRepository {
	return &postRepository{coll: db.Collection(postsCollection)}
}

var _ interfaces.PostRepository = (*postRepository)(nil)

// 展开作者公开信息
var creatorStages = mongo.Pipeline{
	{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: usersCollection},
		{Key: "localField", Value: "creatorId"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "creator"},
	}}},
	{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$creator"},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}},
	{{Key: "$project", Value: bson.D{
		{Key: "creator.email", Value: 0},
		{Key: "creator.password", Value: 0},
		{Key: "creator.fullName", Value: 0},
		{Key: "creator.followers", Value: 0},
		{Key: "creator.following", Value: 0},
	}}},
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("创建帖子失败: %w", err)
	}
	return nil
}

// FindByID 按ID查找帖子，不过滤已删除的帖子
func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var post model.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查找帖子失败: %w", err)
	}
	return &post, nil
}

// FindDetailByID 按ID查找帖子并展开作者，不过滤已删除的帖子
func (r *postRepository) FindDetailByID(ctx context.Context, id string) (*model.PostDetail, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
	}, creatorStages...)

	posts, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

func (r *postRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"isDeleted": false})
	if err != nil {
		return 0, fmt.Errorf("统计帖子失败: %w", err)
	}
	return count, nil
}

// ListActive 按创建时间倒序返回未删除的帖子
func (r *postRepository) ListActive(ctx context.Context, skip int64, limit int) ([]*model.PostDetail, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "isDeleted", Value: false}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: int64(limit)}},
	}, creatorStages...)

	return r.aggregate(ctx, pipeline)
}

func (r *postRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*model.PostDetail, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("查询帖子失败: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*model.PostDetail{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("读取帖子失败: %w", err)
	}
	return posts, nil
}

func (r *postRepository) UpdateCaption(ctx context.Context, id, caption string) (*model.Post, error) {
	return r.findOneAndUpdate(ctx, id, false, bson.M{
		"$set": bson.M{"caption": caption, "updatedAt": time.Now().UTC()},
	})
}

func (r *postRepository) SoftDelete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return interfaces.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("删除帖子失败: %w", err)
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *postRepository) AddLike(ctx context.Context, id, userID string) (*model.Post, error) {
	uid, ok := objectID(userID)
	if !ok {
		return nil, nil
	}
	return r.findOneAndUpdate(ctx, id, true, bson.M{
		"$addToSet": bson.M{"likes": uid},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *postRepository) RemoveLike(ctx context.Context, id, userID string) (*model.Post, error) {
	uid, ok := objectID(userID)
	if !ok {
		return nil, nil
	}
	return r.findOneAndUpdate(ctx, id, true, bson.M{
		"$pull": bson.M{"likes": uid},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *postRepository) AddComment(ctx context.Context, id string, comment model.Comment) (*model.Post, error) {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()
	return r.findOneAndUpdate(ctx, id, true, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

// findOneAndUpdate 返回更新后的帖子，activeOnly 为 true 时跳过已删除的帖子
func (r *postRepository) findOneAndUpdate(ctx context.Context, id string, activeOnly bool, update bson.M) (*model.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	filter := bson.M{"_id": oid}
	if activeOnly {
		filter["isDeleted"] = false
	}

	var post model.Post
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("更新帖子失败: %w", err)
	}
	return &post, nil
}
