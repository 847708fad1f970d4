package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"go.uber.org/zap"
)

// LocalStorage 将图片保存在本地目录，通过 /uploads 静态路由访问
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, backendURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  backendURL + "/uploads",
	}, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}

	if err := os.WriteFile(fullPath, body, 0644); err != nil {
		return "", fmt.Errorf("保存文件失败: %w", err)
	}

	util.Logger.Debug("文件保存成功", zap.String("fullPath", fullPath))
	return publicURL(s.baseURL, key), nil
}
