package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"go.uber.org/zap"
)

// Backend 将处理后的图片写入存储并返回可访问的URL
type Backend interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ImageUploader 校验并缩放上传的图片，再写入存储后端
type ImageUploader struct {
	backend      Backend
	folder       string
	maxDimension int
}

func NewImageUploader(backend Backend, folder string, maxDimension int) *ImageUploader {
	return &ImageUploader{
		backend:      backend,
		folder:       folder,
		maxDimension: maxDimension,
	}
}

// Upload 处理上传文件，kind 为对象键的子目录，例如 avatars 或 posts
func (u *ImageUploader) Upload(ctx context.Context, file *multipart.FileHeader, kind string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	img, err := ProcessImage(src, u.maxDimension)
	if err != nil {
		return "", err
	}

	key := util.GenerateObjectKey(u.folder, kind, "image."+img.Ext)
	url, err := u.backend.Put(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}

	util.Logger.Info("图片上传成功",
		zap.String("key", key),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))
	return url, nil
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + path.Clean(key)
}
