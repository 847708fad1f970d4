package post

import (
	"context"
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/middleware"
	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/pagination"
	"github.com/phonglv-dn/instagram-clone-be/internal/service"
	"github.com/phonglv-dn/instagram-clone-be/internal/storage"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageKind 是帖子图片在存储中的子目录
const ImageKind = "posts"

// Uploader 处理帖子图片上传并返回图片URL
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, kind string) (string, error)
}

// ListResponse 是帖子列表的响应
type ListResponse struct {
	Count       int64               `json:"count"`
	CurrentPage int                 `json:"currentPage"`
	TotalPages  int                 `json:"totalPages"`
	Next        *string             `json:"next"`
	Prev        *string             `json:"prev"`
	Results     []*model.PostDetail `json:"results"`
}

// PostHandler 处理与帖子相关的HTTP请求
type PostHandler struct {
	postService service.PostServiceInterface
	uploader    Uploader
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService service.PostServiceInterface, uploader Uploader) *PostHandler {
	return &PostHandler{
		postService: postService,
		uploader:    uploader,
	}
}

// CreatePost 上传图片并发布帖子
func (h *PostHandler) CreatePost(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Image is required", err))
		return
	}

	imageURL, err := h.uploader.Upload(c.Request.Context(), file, ImageKind)
	if err != nil {
		if stderrors.Is(err, storage.ErrUnsupportedFormat) {
			errors.HandleError(c, errors.Wrap(errors.ErrValidation, storage.ErrUnsupportedFormat.Error(), err))
			return
		}
		util.Logger.Error("上传帖子图片失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrStorage, "上传图片失败", err))
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), imageURL, c.PostForm("caption"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListPosts 分页返回未删除的帖子
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	limit := pagination.ParseLimit(c.Query("limit"))

	list, err := h.postService.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	results := list.Results
	if results == nil {
		results = []*model.PostDetail{}
	}
	c.JSON(http.StatusOK, ListResponse{
		Count:       list.Count,
		CurrentPage: list.CurrentPage,
		TotalPages:  list.TotalPages,
		Next:        list.Next,
		Prev:        list.Prev,
		Results:     results,
	})
}

// GetPost 返回帖子详情
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// UpdatePost 修改帖子说明
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var updateData struct {
		Caption string `json:"caption" form:"caption"`
	}
	if err := c.ShouldBind(&updateData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, util.ValidationMessage(err), err))
		return
	}

	post, err := h.postService.UpdateCaption(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), updateData.Caption)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost 软删除帖子
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.SoftDelete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleMessage(c, http.StatusOK, "Post deleted successfully")
}

func (h *PostHandler) LikePost(c *gin.Context) {
	post, err := h.postService.LikePost(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	post, err := h.postService.UnlikePost(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// AddComment 添加评论
func (h *PostHandler) AddComment(c *gin.Context) {
	var commentData struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&commentData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, util.ValidationMessage(err), err))
		return
	}

	post, err := h.postService.AddComment(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), commentData.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}
