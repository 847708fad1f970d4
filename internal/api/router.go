package api

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/phonglv-dn/instagram-clone-be/internal/api/post"
	"github.com/phonglv-dn/instagram-clone-be/internal/api/user"
	"github.com/phonglv-dn/instagram-clone-be/internal/middleware"
	"github.com/phonglv-dn/instagram-clone-be/internal/service"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Tokens 同时负责签发和校验访问令牌
type Tokens interface {
	user.TokenIssuer
	middleware.TokenValidator
}

// Uploader 处理上传的图片并返回URL
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, kind string) (string, error)
}

// Deps 是构建路由所需的依赖
type Deps struct {
	UserService  service.UserServiceInterface
	PostService  service.PostServiceInterface
	Tokens       Tokens
	Uploader     Uploader
	ErrorMonitor *middleware.ErrorMonitor
	FrontendURL  string
	// StaticDir 非空时以 /uploads 提供本地存储的图片
	StaticDir string
}

// NewRouter 注册所有路由
func NewRouter(deps Deps) *gin.Engine {
	util.SetupBindingValidator()

	monitor := deps.ErrorMonitor
	if monitor == nil {
		monitor = middleware.NewErrorMonitor()
	}

	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(monitor))
	r.Use(cors.New(corsConfig(deps.FrontendURL)))

	if deps.StaticDir != "" {
		r.Static("/uploads", deps.StaticDir)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Instagram Clone API")
	})

	authHandler := user.NewAuthHandler(deps.UserService, deps.Tokens)
	profileHandler := user.NewProfileHandler(deps.UserService, deps.Uploader)
	followHandler := user.NewFollowHandler(deps.UserService)
	postHandler := post.NewPostHandler(deps.PostService, deps.Uploader)
	requireAuth := middleware.AuthMiddleware(deps.Tokens)

	api := r.Group("/api")
	{
		// 用户相关路由
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/profile", requireAuth, profileHandler.GetProfile)
			auth.PUT("/profile", requireAuth, profileHandler.UpdateProfile)
			auth.DELETE("/profile", requireAuth, profileHandler.DeleteAccount)
		}

		// 帖子相关路由
		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:id", postHandler.GetPost)
			posts.POST("", requireAuth, postHandler.CreatePost)
			posts.PUT("/:id", requireAuth, postHandler.UpdatePost)
			posts.DELETE("/:id", requireAuth, postHandler.DeletePost)
			posts.POST("/:id/like", requireAuth, postHandler.LikePost)
			posts.DELETE("/:id/like", requireAuth, postHandler.UnlikePost)
			posts.POST("/:id/comments", requireAuth, postHandler.AddComment)
		}

		users := api.Group("/users", requireAuth)
		{
			users.POST("/:id/follow", followHandler.Follow)
			users.DELETE("/:id/follow", followHandler.Unfollow)
		}
	}

	return r
}

func corsConfig(frontendURL string) cors.Config {
	corsConfig := cors.DefaultConfig()
	if frontendURL == "" || frontendURL == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(frontendURL, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	return corsConfig
}
