package contracts

import (
	"context"
	"medassist-service/internal/app/models"
)

type SessionService interface {
	ParseSessionData(ctx context.Context, sessionData string) (*models.LoginSession, error)
	GetSessionData(ctx context.Context, sessionID string) (sessionData string, err error)
}
