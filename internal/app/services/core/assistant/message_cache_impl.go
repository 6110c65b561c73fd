package assistant

import (
	"context"
	"fmt"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type chatMessageRedisCache struct {
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
}

func NewChatMessageRedisCache(redisRepository contracts.RedisRepository, ttl time.Duration) contracts.ChatMessageCache {
	return &chatMessageRedisCache{
		RedisRepository: redisRepository,
		TTL:             ttl,
	}
}

func (c *chatMessageRedisCache) GetFirstPage(ctx context.Context, sessionID string) ([]models.ChatMessage, bool, error) {
	data, err := c.RedisRepository.Get(ctx, fmt.Sprintf(constvars.RedisKeyMessageFirstPageFormat, sessionID))
	if err != nil {
		return nil, false, err
	}
	if data == "" {
		return nil, false, nil
	}

	var messages []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		return nil, false, exceptions.ErrCannotParseJSON(err)
	}
	return messages, true, nil
}

func (c *chatMessageRedisCache) SetFirstPage(ctx context.Context, sessionID string, messages []models.ChatMessage) error {
	return c.RedisRepository.Set(ctx, fmt.Sprintf(constvars.RedisKeyMessageFirstPageFormat, sessionID), messages, c.TTL)
}

func (c *chatMessageRedisCache) Invalidate(ctx context.Context, sessionID string) error {
	return c.RedisRepository.Delete(ctx, fmt.Sprintf(constvars.RedisKeyMessageFirstPageFormat, sessionID))
}
