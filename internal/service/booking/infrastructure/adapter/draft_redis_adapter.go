package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"lodge/internal/pkg/redis"
	"lodge/internal/service/booking/domain"
)

const (
	draftKeyPrefix = "draft:"
	draftTTL       = 24 * time.Hour // 隔天未完成的草稿自动过期
)

// DraftRedisAdapter 实现了 domain.DraftStore 接口，
// 每个会话一个 key，草稿 JSON 序列化后整体覆盖写
type DraftRedisAdapter struct {
	client *redis.Client
}

func NewDraftRedisAdapter(client *redis.Client) *DraftRedisAdapter {
	return &DraftRedisAdapter{client: client}
}

func (a *DraftRedisAdapter) Get(ctx context.Context, chatID string) (*domain.Draft, error) {
	raw, err := a.client.GetClient().Get(ctx, draftKeyPrefix+chatID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}

	var draft domain.Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("corrupt draft for chat %s: %w", chatID, err)
	}
	return &draft, nil
}

func (a *DraftRedisAdapter) Save(ctx context.Context, draft *domain.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return a.client.GetClient().Set(ctx, draftKeyPrefix+draft.ChatID, raw, draftTTL).Err()
}

func (a *DraftRedisAdapter) Delete(ctx context.Context, chatID string) error {
	return a.client.GetClient().Del(ctx, draftKeyPrefix+chatID).Err()
}
