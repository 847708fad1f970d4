package user

import (
	"net/http"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/middleware"
	"github.com/phonglv-dn/instagram-clone-be/internal/service"

	"github.com/gin-gonic/gin"
)

// FollowHandler 处理关注关系
type FollowHandler struct {
	userService service.UserServiceInterface
}

func NewFollowHandler(userService service.UserServiceInterface) *FollowHandler {
	return &FollowHandler{userService}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	if err := h.userService.Follow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleMessage(c, http.StatusOK, "User followed successfully")
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	if err := h.userService.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleMessage(c, http.StatusOK, "User unfollowed successfully")
}
