package interfaces

import (
	"context"

	"github.com/phonglv-dn/instagram-clone-be/internal/model"
)

// PostRepository 定义了帖子相关的数据库操作接口
// 查询不到记录时 Find* 方法返回 (nil, nil)
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindDetailByID(ctx context.Context, id string) (*model.PostDetail, error)
	CountActive(ctx context.Context) (int64, error)
	ListActive(ctx context.Context, skip int64, limit int) ([]*model.PostDetail, error)
	UpdateCaption(ctx context.Context, id, caption string) (*model.Post, error)
	SoftDelete(ctx context.Context, id string) error
	AddLike(ctx context.Context, id, userID string) (*model.Post, error)
	RemoveLike(ctx context.Context, id, userID string) (*model.Post, error)
	AddComment(ctx context.Context, id string, comment model.Comment) (*model.Post, error)
}
