package service

import (
	"context"
	stderrors "errors"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/repository/interfaces"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 是密码哈希的计算强度
const PasswordCost = 10

// Mailer 发送注册欢迎邮件
type Mailer interface {
	SendWelcomeEmail(email, username string) error
}

type UserServiceInterface interface {
	Register(ctx context.Context, username, email, password, fullName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error)
	DeleteAccount(ctx context.Context, id string) error
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
}

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo interfaces.UserRepository
	mailer   Mailer
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)

// NewUserService 创建一个新的 UserService 实例，mailer 可以为 nil
func NewUserService(userRepo interfaces.UserRepository, mailer Mailer) *UserService {
	return &UserService{
		userRepo: userRepo,
		mailer:   mailer,
	}
}

// Register 注册新用户
func (s *UserService) Register(ctx context.Context, username, email, password, fullName string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "User already exists")
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 用户名或邮箱的唯一索引冲突
		if stderrors.Is(err, interfaces.ErrDuplicate) {
			return nil, errors.New(errors.ErrUserExists, "User already exists")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Username); err != nil {
			util.Logger.Error("发送欢迎邮件失败", zap.Error(err), zap.String("email", user.Email))
		}
	}

	util.Logger.Info("用户注册成功", zap.String("user_id", user.ID.Hex()))
	return user, nil
}

// Login 校验邮箱和密码
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil || user.IsDeleted {
		util.Logger.Info("用户登录失败，未找到用户", zap.String("email", email))
		return nil, errors.New(errors.ErrInvalidCredentials, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		util.Logger.Info("用户登录失败，密码不正确", zap.String("user_id", user.ID.Hex()))
		return nil, errors.New(errors.ErrInvalidCredentials, "Invalid credentials")
	}

	return user, nil
}

// GetUserByID 通过ID获取用户信息，已注销的用户视为不存在
func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil || user.IsDeleted {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}
	return user, nil
}

// UpdateProfile 只更新提供的字段，只有提供新密码时才重新计算哈希
func (s *UserService) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return nil, errors.New(errors.ErrValidation, "Nothing to update")
	}

	if update.Password != nil {
		hashedPassword, err := hashPassword(*update.Password)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
		}
		update.Password = &hashedPassword
	}

	if err := s.userRepo.Update(ctx, id, update); err != nil {
		if stderrors.Is(err, interfaces.ErrNotFound) {
			return nil, errors.New(errors.ErrUserNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	return user, nil
}

// DeleteAccount 注销用户账户（软删除）
func (s *UserService) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		if stderrors.Is(err, interfaces.ErrNotFound) {
			return errors.New(errors.ErrUserNotFound, "User not found")
		}
		return errors.Wrap(errors.ErrDatabase, "注销账户失败", err)
	}
	util.Logger.Info("用户已注销", zap.String("user_id", id))
	return nil
}

// Follow 关注用户
func (s *UserService) Follow(ctx context.Context, followerID, targetID string) error {
	if err := s.checkFollowTarget(ctx, followerID, targetID); err != nil {
		return err
	}
	return s.wrapFollowError(s.userRepo.AddFollow(ctx, followerID, targetID))
}

// Unfollow 取消关注
func (s *UserService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if err := s.checkFollowTarget(ctx, followerID, targetID); err != nil {
		return err
	}
	return s.wrapFollowError(s.userRepo.RemoveFollow(ctx, followerID, targetID))
}

func (s *UserService) checkFollowTarget(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return errors.New(errors.ErrValidation, "You cannot follow yourself")
	}
	_, err := s.GetUserByID(ctx, targetID)
	return err
}

func (s *UserService) wrapFollowError(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, interfaces.ErrNotFound) {
		return errors.New(errors.ErrUserNotFound, "User not found")
	}
	return errors.Wrap(errors.ErrDatabase, "更新关注关系失败", err)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
