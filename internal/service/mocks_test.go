package service

import (
	"context"

	"github.com/phonglv-dn/instagram-clone-be/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, update model.ProfileUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) AddFollow(ctx context.Context, followerID, targetID string) error {
	args := m.Called(ctx, followerID, targetID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	args := m.Called(ctx, followerID, targetID)
	return args.Error(0)
}

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) FindDetailByID(ctx context.Context, id string) (*model.PostDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostDetail), args.Error(1)
}

func (m *MockPostRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ListActive(ctx context.Context, skip int64, limit int) ([]*model.PostDetail, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]*model.PostDetail), args.Error(1)
}

func (m *MockPostRepository) UpdateCaption(ctx context.Context, id, caption string) (*model.Post, error) {
	args := m.Called(ctx, id, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) AddLike(ctx context.Context, id, userID string) (*model.Post, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) RemoveLike(ctx context.Context, id, userID string) (*model.Post, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) AddComment(ctx context.Context, id string, comment model.Comment) (*model.Post, error) {
	args := m.Called(ctx, id, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

type MockPostCache struct {
	mock.Mock
}

func (m *MockPostCache) Get(ctx context.Context, id string) (*model.PostDetail, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.PostDetail), args.Bool(1)
}

func (m *MockPostCache) Set(ctx context.Context, post *model.PostDetail) {
	m.Called(ctx, post)
}

func (m *MockPostCache) Invalidate(ctx context.Context, id string) {
	m.Called(ctx, id)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcomeEmail(email, username string) error {
	args := m.Called(email, username)
	return args.Error(0)
}
