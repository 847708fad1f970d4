package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse 定义只包含提示信息的成功响应
type MessageResponse struct {
	Message string `json:"message"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrStorage:  http.StatusInternalServerError,

	// 认证错误 (2000-2999)
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusBadRequest,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceConflict: http.StatusBadRequest,

	// 业务错误 (4000-4999)
	ErrUserNotFound: http.StatusNotFound,
	ErrUserExists:   http.StatusBadRequest,
	ErrPostNotFound: http.StatusNotFound,
}

// StatusCode 返回错误对应的HTTP状态码
func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		if status, ok := errorStatusMap[appErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// HandleError 统一处理错误响应
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := StatusCode(err)
	appErr, ok := As(err)
	if !ok {
		c.JSON(status, ErrorResponse{Message: err.Error()})
		return
	}

	message := appErr.Message
	// 服务器错误直接透传底层错误信息
	if status == http.StatusInternalServerError && appErr.Err != nil {
		message = appErr.Err.Error()
	}
	c.JSON(status, ErrorResponse{Message: message})
}

// HandleMessage 返回只包含提示信息的响应
func HandleMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}
