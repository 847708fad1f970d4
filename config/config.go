package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config 结构体用于存储应用程序的配置信息
type Config struct {
	Port          string `env:"PORT" envDefault:"3000"`
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/instagram-clone"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"instagram-clone"`
	JWTSecret     string `env:"JWT_SECRET"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	FrontendURL   string `env:"FRONTEND_URL" envDefault:"*"`
	BackendURL    string `env:"BACKEND_URL" envDefault:"http://localhost:3000"`

	// 图片存储：local、s3 或 gcs
	StorageDriver      string `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalStoragePath   string `env:"LOCAL_STORAGE_PATH" envDefault:"./uploads"`
	S3Region           string `env:"S3_REGION" envDefault:"us-west-2"`
	S3Bucket           string `env:"S3_BUCKET"`
	GCSBucketName      string `env:"GCS_BUCKET_NAME"`
	GCSCredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
	UploadFolder       string `env:"UPLOAD_FOLDER" envDefault:"instagram_clone"`
	ImageMaxDimension  int    `env:"IMAGE_MAX_DIMENSION" envDefault:"800"`

	// Redis 为空时不启用帖子缓存
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	PostCacheTTL  time.Duration `env:"POST_CACHE_TTL" envDefault:"5m"`

	// SMTP 主机为空时不发送欢迎邮件
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"465"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	Debug bool `env:"DEBUG" envDefault:"false"` // 是否开启调试模式
}

// AppConfig 是全局配置变量
var AppConfig Config

// Init 函数用于初始化配置
func Init() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("警告：无法加载 .env 文件: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("错误：解析环境变量失败: %v", err)
	}
	AppConfig = cfg

	if err := validateConfig(AppConfig); err != nil {
		log.Fatal(err)
	}

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("应用程序运行在调试模式")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("应用程序运行在生产模式")
	}

	log.Printf("配置加载完成。数据库：%s，存储：%s", AppConfig.MongoDatabase, AppConfig.StorageDriver)
}

// Load 从环境变量中读取配置
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.MongoURI == "" || cfg.MongoDatabase == "" {
		return errors.New("错误：数据库配置不完整")
	}
	if cfg.JWTSecret == "" {
		return errors.New("错误：JWT密钥未设置")
	}
	switch cfg.StorageDriver {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			return errors.New("错误：S3配置不完整")
		}
	case "gcs":
		if cfg.GCSBucketName == "" {
			return errors.New("错误：GCS配置不完整")
		}
	default:
		return fmt.Errorf("错误：未知的存储驱动 %s", cfg.StorageDriver)
	}
	return nil
}
