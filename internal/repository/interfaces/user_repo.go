package interfaces

import (
	"context"
	"errors"

	"github.com/phonglv-dn/instagram-clone-be/internal/model"
)

// UserRepository 接口定义了用户仓库应该实现的方法
// 查询不到记录时 Find* 方法返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, update model.ProfileUpdate) error
	SoftDelete(ctx context.Context, id string) error
	AddFollow(ctx context.Context, followerID, targetID string) error
	RemoveFollow(ctx context.Context, followerID, targetID string) error
}

var (
	// ErrNotFound 表示更新的目标记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 表示违反了唯一索引
	ErrDuplicate = errors.New("duplicate record")
)
