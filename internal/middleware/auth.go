package middleware

import (
	"context"
	"strings"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserIDKey 是 gin 上下文中当前用户ID的键
const UserIDKey = "user_id"

type userIDContextKey struct{}

// TokenValidator 校验访问令牌并返回其中的用户ID
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthMiddleware 校验 Bearer 令牌，通过后写入当前用户ID
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "No token, authorization denied"))
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			token = authHeader
		}

		userID, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			util.Logger.Debug("令牌校验失败",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "Token is not valid", err))
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDContextKey{}, userID))
		c.Next()
	}
}

// CurrentUserID 返回认证中间件写入的用户ID
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// UserIDFromContext 从请求上下文中读取用户ID
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey{}).(string)
	return id, ok && id != ""
}
