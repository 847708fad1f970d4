package user

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/service"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenIssuer 为登录成功的用户签发访问令牌
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// Uploader 处理头像上传并返回图片URL
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, kind string) (string, error)
}

// AuthResponse 是注册和登录的响应
type AuthResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	userService service.UserServiceInterface
	tokens      TokenIssuer
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService service.UserServiceInterface, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
	}
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"fullName" binding:"required"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, util.ValidationMessage(err), err))
		return
	}

	user, err := h.userService.Register(c.Request.Context(),
		registerData.Username, registerData.Email, registerData.Password, registerData.FullName)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, util.ValidationMessage(err), err))
		return
	}

	user, err := h.userService.Login(c.Request.Context(), loginData.Email, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := h.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		util.Logger.Error("生成令牌失败", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "生成令牌失败", err))
		return
	}

	c.JSON(status, AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}
