package auth

import (
	"context"
	"fmt"
	"medassist-service/internal/app/config"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"medassist-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
)

type authUsecase struct {
	PractitionerRepository contracts.PractitionerAccountRepository
	RedisRepository        contracts.RedisRepository
	SessionService         contracts.SessionService
	InternalConfig         *config.InternalConfig
}

func NewAuthUsecase(
	practitionerRepository contracts.PractitionerAccountRepository,
	redisRepository contracts.RedisRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
) contracts.AuthUsecase {
	return &authUsecase{
		PractitionerRepository: practitionerRepository,
		RedisRepository:        redisRepository,
		SessionService:         sessionService,
		InternalConfig:         internalConfig,
	}
}

func (uc *authUsecase) LoginPractitioner(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	utils.SanitizeLoginRequest(request)

	account, err := uc.PractitionerRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, exceptions.ErrPractitionerNotExist(nil)
	}

	if !utils.CheckPasswordHash(request.Password, account.Password) {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	sessionTTL := time.Duration(uc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour
	loginSession := &models.LoginSession{
		SessionID:      uuid.NewString(),
		PractitionerID: account.ID,
		Email:          account.Email,
		Fullname:       account.Fullname,
		ExpiresAt:      time.Now().Add(sessionTTL),
	}

	redisKey := fmt.Sprintf(constvars.RedisKeyLoginSessionFormat, loginSession.SessionID)
	if err := uc.RedisRepository.Set(ctx, redisKey, loginSession, sessionTTL); err != nil {
		return nil, err
	}

	jwtTTL := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	token, err := utils.GenerateJWT(loginSession.SessionID, uc.InternalConfig.JWT.Secret, jwtTTL)
	if err != nil {
		return nil, err
	}

	return &responses.Login{
		Token:          token,
		PractitionerID: account.ID,
		Fullname:       account.Fullname,
	}, nil
}

func (uc *authUsecase) LogoutPractitioner(ctx context.Context, sessionData string) error {
	loginSession, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return err
	}

	redisKey := fmt.Sprintf(constvars.RedisKeyLoginSessionFormat, loginSession.SessionID)
	return uc.RedisRepository.Delete(ctx, redisKey)
}
