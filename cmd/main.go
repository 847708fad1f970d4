package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phonglv-dn/instagram-clone-be/config"
	"github.com/phonglv-dn/instagram-clone-be/internal/api"
	"github.com/phonglv-dn/instagram-clone-be/internal/cache"
	"github.com/phonglv-dn/instagram-clone-be/internal/middleware"
	"github.com/phonglv-dn/instagram-clone-be/internal/repository/mongodb"
	"github.com/phonglv-dn/instagram-clone-be/internal/service"
	"github.com/phonglv-dn/instagram-clone-be/internal/storage"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()
	cfg := config.AppConfig

	// 初始化日志
	util.InitLogger(cfg.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 连接数据库
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			util.Logger.Error("断开数据库连接失败", zap.Error(err))
		}
	}()
	util.Logger.Info("数据库连接成功")

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		util.Logger.Fatal("创建索引失败", zap.Error(err))
	}

	backend, staticDir := newStorageBackend(context.Background(), cfg)
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}
	uploader := storage.NewImageUploader(backend, cfg.UploadFolder, cfg.ImageMaxDimension)

	// 初始化存储库、服务
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	userService := service.NewUserService(userRepo, mailer)

	var postCache service.PostCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			util.Logger.Warn("连接Redis失败，不启用帖子缓存", zap.Error(err))
		} else {
			defer redisClient.Close()
			postCache = cache.NewPostCache(redisClient, cfg.PostCacheTTL)
			util.Logger.Info("帖子缓存已启用", zap.String("addr", cfg.RedisAddr))
		}
	}
	postService := service.NewPostService(postRepo, userRepo, postCache)

	errorMonitor := middleware.NewErrorMonitor()
	r := api.NewRouter(api.Deps{
		UserService:  userService,
		PostService:  postService,
		Tokens:       util.NewTokenService(cfg.JWTSecret, util.TokenTTL),
		Uploader:     uploader,
		ErrorMonitor: errorMonitor,
		FrontendURL:  cfg.FrontendURL,
		StaticDir:    staticDir,
	})

	if cfg.Debug {
		for _, route := range r.Routes() {
			util.Logger.Debug("路由",
				zap.String("method", route.Method),
				zap.String("path", route.Path))
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Error("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭", zap.Any("error_counts", errorMonitor.GetErrorCounts()))
}

// newStorageBackend 根据配置选择图片存储，本地存储时返回静态文件目录
func newStorageBackend(ctx context.Context, cfg config.Config) (storage.Backend, string) {
	switch cfg.StorageDriver {
	case "s3":
		s3Client, err := storage.NewS3Client(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化S3存储失败", zap.Error(err))
		}
		return s3Client, ""
	case "gcs":
		gcsClient, err := storage.NewGCSClient(ctx, cfg.GCSBucketName, cfg.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化GCS存储失败", zap.Error(err))
		}
		return gcsClient, ""
	default:
		localStorage, err := storage.NewLocalStorage(cfg.LocalStoragePath, cfg.BackendURL)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		util.Logger.Info("使用本地存储", zap.String("path", cfg.LocalStoragePath))
		return localStorage, cfg.LocalStoragePath
	}
}
