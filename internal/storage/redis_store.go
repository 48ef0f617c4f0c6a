package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/hanabi-deduction/internal/game/state"
	"github.com/palemoky/hanabi-deduction/internal/protocol/codec"
)

const (
	// Redis key 前缀
	gameKeyPrefix = "game:"
	gameIndexKey  = "games"

	defaultExpiration = 2 * time.Hour
)

// RedisStore 对局快照的 Redis 存储
type RedisStore struct {
	client     *redis.Client
	expiration time.Duration
}

// NewRedisStore 创建 Redis 存储，ttl <= 0 时使用默认过期时间
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultExpiration
	}
	return &RedisStore{client: client, expiration: ttl}
}

// SaveGame 保存对局快照
func (rs *RedisStore) SaveGame(ctx context.Context, gameID string, snap *state.Snapshot) error {
	if snap == nil {
		return nil
	}

	data := codec.EncodeSnapshot(snap)
	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, gameKeyPrefix+gameID, data, rs.expiration)
	pipe.SAdd(ctx, gameIndexKey, gameID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("保存对局 %s 失败: %w", gameID, err)
	}
	return nil
}

// LoadGame 加载对局快照，不存在时返回 nil, nil
func (rs *RedisStore) LoadGame(ctx context.Context, gameID string) (*state.Snapshot, error) {
	data, err := rs.client.Get(ctx, gameKeyPrefix+gameID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	snap, err := codec.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("解析对局 %s 快照失败: %w", gameID, err)
	}
	return snap, nil
}

// DeleteGame 删除对局快照
func (rs *RedisStore) DeleteGame(ctx context.Context, gameID string) error {
	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, gameKeyPrefix+gameID)
	pipe.SRem(ctx, gameIndexKey, gameID)
	_, err := pipe.Exec(ctx)
	return err
}

// ListGames 返回仍然存在快照的对局 ID，顺带清理已过期的索引
func (rs *RedisStore) ListGames(ctx context.Context) ([]string, error) {
	ids, err := rs.client.SMembers(ctx, gameIndexKey).Result()
	if err != nil {
		return nil, err
	}

	var alive []string
	for _, id := range ids {
		n, err := rs.client.Exists(ctx, gameKeyPrefix+id).Result()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			_ = rs.client.SRem(ctx, gameIndexKey, id).Err()
			continue
		}
		alive = append(alive, id)
	}
	return alive, nil
}
