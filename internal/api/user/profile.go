package user

import (
	stderrors "errors"
	"net/http"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/middleware"
	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/service"
	"github.com/phonglv-dn/instagram-clone-be/internal/storage"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvatarKind 是头像在存储中的子目录
const AvatarKind = "avatars"

// ProfileUser 是资料更新响应中的用户信息
type ProfileUser struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
	Email          string `json:"email"`
}

// ProfileHandler 处理用户资料相关的HTTP请求
type ProfileHandler struct {
	userService service.UserServiceInterface
	uploader    Uploader
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例
func NewProfileHandler(userService service.UserServiceInterface, uploader Uploader) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		uploader:    uploader,
	}
}

// GetProfile 返回当前用户的资料
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile 更新全名、密码或头像，支持 multipart 和 JSON 请求
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var updateData struct {
		FullName *string `json:"fullName" form:"fullName"`
		Password *string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&updateData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, util.ValidationMessage(err), err))
		return
	}

	update := model.ProfileUpdate{
		FullName: emptyAsNil(updateData.FullName),
		Password: emptyAsNil(updateData.Password),
	}

	if file, err := c.FormFile("avatar"); err == nil {
		url, err := h.uploader.Upload(c.Request.Context(), file, AvatarKind)
		if err != nil {
			handleUploadError(c, err)
			return
		}
		update.ProfilePicture = &url
	}

	userID := middleware.CurrentUserID(c)
	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("用户资料已更新", zap.String("user_id", userID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": ProfileUser{
			ID:             user.ID.Hex(),
			FullName:       user.FullName,
			ProfilePicture: user.ProfilePicture,
			Email:          user.Email,
		},
	})
}

// DeleteAccount 注销当前用户
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	if err := h.userService.DeleteAccount(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleMessage(c, http.StatusOK, "Account deleted successfully")
}

func emptyAsNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func handleUploadError(c *gin.Context, err error) {
	if stderrors.Is(err, storage.ErrUnsupportedFormat) {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, storage.ErrUnsupportedFormat.Error(), err))
		return
	}
	util.Logger.Error("上传图片失败", zap.Error(err))
	errors.HandleError(c, errors.Wrap(errors.ErrStorage, "上传图片失败", err))
}
