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
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	coll *mongo.Collection
}

var _ interfaces.UserRepository = (*userRepository)(nil)

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *mongo.Database) *userRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

// Create 创建一个新用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("创建用户失败: %w", interfaces.ErrDuplicate)
		}
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}

// FindByID 通过ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail 通过邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查找用户失败: %w", err)
	}
	return &user, nil
}

// Update 只更新提供的字段，密码必须已经是哈希值
func (r *userRepository) Update(ctx context.Context, id string, update model.ProfileUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	if update.ProfilePicture != nil {
		set["profilePicture"] = *update.ProfilePicture
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	return r.updateOne(ctx, id, bson.M{"$set": set})
}

// SoftDelete 标记用户为已删除
func (r *userRepository) SoftDelete(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}})
}

// AddFollow 分别更新双方的关注列表，两次写入互相独立
func (r *userRepository) AddFollow(ctx context.Context, followerID, targetID string) error {
	return r.follow(ctx, followerID, targetID, "$addToSet")
}

// RemoveFollow 取消关注
func (r *userRepository) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	return r.follow(ctx, followerID, targetID, "$pull")
}

func (r *userRepository) follow(ctx context.Context, followerID, targetID, op string) error {
	follower, ok := objectID(followerID)
	if !ok {
		return interfaces.ErrNotFound
	}
	target, ok := objectID(targetID)
	if !ok {
		return interfaces.ErrNotFound
	}
	now := time.Now().UTC()

	if err := r.updateOne(ctx, followerID, bson.M{
		op:     bson.M{"following": target},
		"$set": bson.M{"updatedAt": now},
	}); err != nil {
		return err
	}
	return r.updateOne(ctx, targetID, bson.M{
		op:     bson.M{"followers": follower},
		"$set": bson.M{"updatedAt": now},
	})
}

func (r *userRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	oid, ok := objectID(id)
	if !ok {
		return interfaces.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("更新用户失败: %w", err)
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
