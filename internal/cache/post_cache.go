package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PostCache 使用 Redis 缓存帖子详情
// 缓存失败只记录日志，不影响请求
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient 创建 Redis 客户端并测试连接
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}
	return client, nil
}

func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	return &PostCache{client: client, ttl: ttl}
}

func postKey(id string) string {
	return fmt.Sprintf("post:%s", id)
}

// Get 返回缓存的帖子详情，未命中时第二个返回值为 false
func (c *PostCache) Get(ctx context.Context, id string) (*model.PostDetail, bool) {
	result, err := c.client.Get(ctx, postKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			util.Logger.Warn("读取帖子缓存失败", zap.String("post_id", id), zap.Error(err))
		}
		return nil, false
	}

	var post model.PostDetail
	if err := json.Unmarshal(result, &post); err != nil {
		util.Logger.Warn("解析帖子缓存失败", zap.String("post_id", id), zap.Error(err))
		return nil, false
	}
	return &post, true
}

func (c *PostCache) Set(ctx context.Context, post *model.PostDetail) {
	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, postKey(post.ID.Hex()), data, c.ttl).Err(); err != nil {
		util.Logger.Warn("写入帖子缓存失败", zap.String("post_id", post.ID.Hex()), zap.Error(err))
	}
}

func (c *PostCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, postKey(id)).Err(); err != nil {
		util.Logger.Warn("删除帖子缓存失败", zap.String("post_id", id), zap.Error(err))
	}
}
