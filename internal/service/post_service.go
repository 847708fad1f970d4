package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/pagination"
	"github.com/phonglv-dn/instagram-clone-be/internal/repository/interfaces"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PostsPath 是帖子列表的路径，用于生成翻页链接
const PostsPath = "/api/posts"

// PostCache 缓存帖子详情，实现方自行处理缓存错误
type PostCache interface {
	Get(ctx context.Context, id string) (*model.PostDetail, bool)
	Set(ctx context.Context, post *model.PostDetail)
	Invalidate(ctx context.Context, id string)
}

// PostList 是一页帖子
type PostList struct {
	pagination.Page
	Results []*model.PostDetail
}

type PostServiceInterface interface {
	CreatePost(ctx context.Context, ownerID, imageURL, caption string) (*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.PostDetail, error)
	ListPosts(ctx context.Context, page, limit int) (*PostList, error)
	UpdateCaption(ctx context.Context, id, requesterID, caption string) (*model.Post, error)
	SoftDelete(ctx context.Context, id, requesterID string) error
	LikePost(ctx context.Context, id, userID string) (*model.Post, error)
	UnlikePost(ctx context.Context, id, userID string) (*model.Post, error)
	AddComment(ctx context.Context, id, userID, text string) (*model.Post, error)
}

type PostService struct {
	repo     interfaces.PostRepository
	userRepo interfaces.UserRepository
	cache    PostCache
}

var _ PostServiceInterface = (*PostService)(nil)

// NewPostService 创建帖子服务，cache 可以为 nil
func NewPostService(repo interfaces.PostRepository, userRepo interfaces.UserRepository, cache PostCache) *PostService {
	return &PostService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cache,
	}
}

// CreatePost 发布帖子，imageURL 由上传组件生成
func (s *PostService) CreatePost(ctx context.Context, ownerID, imageURL, caption string) (*model.Post, error) {
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if owner == nil || owner.IsDeleted {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	post := &model.Post{
		CreatorID: owner.ID,
		ImageURL:  imageURL,
		Caption:   caption,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}

	util.Logger.Info("帖子创建成功",
		zap.String("post_id", post.ID.Hex()),
		zap.String("user_id", ownerID))
	return post, nil
}

// GetPost 返回帖子详情，已删除的帖子同样返回
func (s *PostService) GetPost(ctx context.Context, id string) (*model.PostDetail, error) {
	if s.cache != nil {
		if post, ok := s.cache.Get(ctx, id); ok {
			return post, nil
		}
	}

	post, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}

	if s.cache != nil {
		s.cache.Set(ctx, post)
	}
	return post, nil
}

// ListPosts 按创建时间倒序分页返回未删除的帖子
func (s *PostService) ListPosts(ctx context.Context, page, limit int) (*PostList, error) {
	count, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计帖子失败", err)
	}

	p := pagination.New(count, page, limit, PostsPath)
	posts, err := s.repo.ListActive(ctx, p.Skip(), p.Limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子列表失败", err)
	}

	return &PostList{Page: p, Results: posts}, nil
}

// UpdateCaption 只有作者可以修改帖子说明
func (s *PostService) UpdateCaption(ctx context.Context, id, requesterID, caption string) (*model.Post, error) {
	if _, err := s.authorize(ctx, id, requesterID, "You are not authorized to update this post"); err != nil {
		return nil, err
	}

	post, err := s.repo.UpdateCaption(ctx, id, caption)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}

	s.invalidate(ctx, id)
	return post, nil
}

// SoftDelete 只有作者可以删除帖子，记录不会被移除
func (s *PostService) SoftDelete(ctx context.Context, id, requesterID string) error {
	if _, err := s.authorize(ctx, id, requesterID, "You are not authorized to delete this post"); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if stderrors.Is(err, interfaces.ErrNotFound) {
			return errors.New(errors.ErrPostNotFound, "Post not found")
		}
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}

	s.invalidate(ctx, id)
	util.Logger.Info("帖子已删除", zap.String("post_id", id), zap.String("user_id", requesterID))
	return nil
}

func (s *PostService) LikePost(ctx context.Context, id, userID string) (*model.Post, error) {
	return s.interact(ctx, id, func() (*model.Post, error) {
		return s.repo.AddLike(ctx, id, userID)
	})
}

func (s *PostService) UnlikePost(ctx context.Context, id, userID string) (*model.Post, error) {
	return s.interact(ctx, id, func() (*model.Post, error) {
		return s.repo.RemoveLike(ctx, id, userID)
	})
}

func (s *PostService) AddComment(ctx context.Context, id, userID, text string) (*model.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New(errors.ErrValidation, "Text is required")
	}
	creatorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.New(errors.ErrUnauthorized, "Token is not valid")
	}

	return s.interact(ctx, id, func() (*model.Post, error) {
		return s.repo.AddComment(ctx, id, model.Comment{CreatorID: creatorID, Text: text})
	})
}

// interact 执行点赞或评论，已删除的帖子视为不存在
func (s *PostService) interact(ctx context.Context, id string, update func() (*model.Post, error)) (*model.Post, error) {
	post, err := update()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}
	s.invalidate(ctx, id)
	return post, nil
}

// authorize 检查帖子存在且请求者是作者
func (s *PostService) authorize(ctx context.Context, id, requesterID, forbidden string) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}
	if post.CreatorID.Hex() != requesterID {
		util.Logger.Warn("非作者尝试修改帖子",
			zap.String("post_id", id),
			zap.String("user_id", requesterID))
		return nil, errors.New(errors.ErrForbidden, forbidden)
	}
	return post, nil
}

func (s *PostService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}
