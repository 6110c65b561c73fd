package contracts

import (
	"context"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	LoginPractitioner(ctx context.Context, request *requests.Login) (*responses.Login, error)
	LogoutPractitioner(ctx context.Context, sessionData string) error
}

type PractitionerAccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.PractitionerAccount, error)
}
