package session

import (
	"context"
	"fmt"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
}

func NewSessionService(redisRepository contracts.RedisRepository) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
	}
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.LoginSession, error) {
	loginSession := new(models.LoginSession)
	err := json.Unmarshal([]byte(sessionData), loginSession)
	if err != nil {
		return nil, exceptions.ErrCannotParseSessionData(err)
	}
	return loginSession, nil
}

func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, fmt.Sprintf(constvars.RedisKeyLoginSessionFormat, sessionID))
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return sessionData, nil
}
