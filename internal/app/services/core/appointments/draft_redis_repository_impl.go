package appointments

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

// Drafts live only in redis. The TTL is refreshed on every save so an
// active wizard never expires mid-flow.
type appointmentDraftRedisRepository struct {
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
}

func NewAppointmentDraftRedisRepository(redisRepository contracts.RedisRepository, ttl time.Duration) contracts.AppointmentDraftRepository {
	return &appointmentDraftRedisRepository{
		RedisRepository: redisRepository,
		TTL:             ttl,
	}
}

func (r *appointmentDraftRedisRepository) Save(ctx context.Context, draft *models.AppointmentDraft) error {
	return r.RedisRepository.Set(ctx, fmt.Sprintf(constvars.RedisKeyAppointmentDraftFormat, draft.ID), draft, r.TTL)
}

func (r *appointmentDraftRedisRepository) Find(ctx context.Context, draftID string) (*models.AppointmentDraft, error) {
	data, err := r.RedisRepository.Get(ctx, fmt.Sprintf(constvars.RedisKeyAppointmentDraftFormat, draftID))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	draft := new(models.AppointmentDraft)
	if err := json.Unmarshal([]byte(data), draft); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return draft, nil
}

func (r *appointmentDraftRedisRepository) Delete(ctx context.Context, draftID string) error {
	return r.RedisRepository.Delete(ctx, fmt.Sprintf(constvars.RedisKeyAppointmentDraftFormat, draftID))
}
