package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phonglv-dn/instagram-clone-be/internal/errors"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(tokens TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		fromCtx, _ := UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "ctx": fromCtx})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tokens := util.NewTokenService("secret", time.Hour)
	expired := util.NewTokenService("secret", -time.Minute)
	foreign := util.NewTokenService("other-secret", time.Hour)
	router := newProtectedRouter(tokens)

	valid, err := tokens.GenerateToken("user-1")
	require.NoError(t, err)
	stale, err := expired.GenerateToken("user-1")
	require.NoError(t, err)
	forged, err := foreign.GenerateToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"缺少令牌", "", http.StatusUnauthorized, `{"message":"No token, authorization denied"}`},
		{"格式错误", "Bearer garbage", http.StatusUnauthorized, `{"message":"Token is not valid"}`},
		{"令牌过期", "Bearer " + stale, http.StatusUnauthorized, `{"message":"Token is not valid"}`},
		{"签名错误", "Bearer " + forged, http.StatusUnauthorized, `{"message":"Token is not valid"}`},
		{"有效令牌", "Bearer " + valid, http.StatusOK, `{"id":"user-1","ctx":"user-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"boom"}`, w.Body.String())
}

func TestErrorMonitorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	monitor := NewErrorMonitor()
	router := gin.New()
	router.Use(ErrorMonitorMiddleware(monitor))
	router.GET("/missing", func(c *gin.Context) {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "Post not found"))
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, 2, monitor.GetErrorCounts()[errors.ErrPostNotFound])
}
