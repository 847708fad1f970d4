package util

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateObjectKey 生成唯一的对象存储键，例如 instagram_clone/avatars/<uuid>.jpg
func GenerateObjectKey(folder, kind, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return path.Join(folder, kind, uuid.NewString()+ext)
}
