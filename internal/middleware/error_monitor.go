package middleware

import (
	"sync"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMonitor 按错误码统计请求错误
type ErrorMonitor struct {
	errorCounts map[errors.ErrorCode]int
	mu          sync.RWMutex
}

func NewErrorMonitor() *ErrorMonitor {
	return &ErrorMonitor{
		errorCounts: make(map[errors.ErrorCode]int),
	}
}

func (m *ErrorMonitor) RecordError(err error) {
	if appErr, ok := errors.As(err); ok {
		m.mu.Lock()
		m.errorCounts[appErr.Code]++
		m.mu.Unlock()
	}
}

func (m *ErrorMonitor) GetErrorCounts() map[errors.ErrorCode]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[errors.ErrorCode]int, len(m.errorCounts))
	for code, count := range m.errorCounts {
		counts[code] = count
	}
	return counts
}

func ErrorMonitorMiddleware(monitor *ErrorMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			monitor.RecordError(e.Err)

			appErr, ok := errors.As(e.Err)
			if !ok {
				util.Logger.Error("请求处理错误",
					zap.Error(e.Err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method))
				continue
			}

			fields := []zap.Field{
				zap.Int("error_code", int(appErr.Code)),
				zap.String("error_message", appErr.Message),
				zap.Error(appErr.Err),
				zap.Int("status", c.Writer.Status()),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			}
			// 客户端错误只记录为警告
			if errors.StatusCode(appErr) >= 500 {
				util.Logger.Error("请求处理错误", fields...)
			} else {
				util.Logger.Warn("请求处理错误", fields...)
			}
		}
	}
}
