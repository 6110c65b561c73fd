package middlewares

import (
	"context"
	"medassist-service/internal/app/config"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/exceptions"
	"medassist-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSessionService struct {
	sessions map[string]string
}

func (s *fakeSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.LoginSession, error) {
	return nil, nil
}

func (s *fakeSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return data, nil
}

func TestAuthenticate(t *testing.T) {
	secret := "test-secret"
	internalConfig := &config.InternalConfig{
		JWT: config.AppJWT{Secret: secret},
	}
	sessionService := &fakeSessionService{
		sessions: map[string]string{"session-1": `{"sessionId":"session-1","practitionerId":"prac-1"}`},
	}
	m := NewMiddlewares(zap.NewNop(), sessionService, internalConfig)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
		assert.True(t, ok, "session data should be set in context")
		assert.Contains(t, sessionData, "prac-1")
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Valid Token", func(t *testing.T) {
		token, err := utils.GenerateJWT("session-1", secret, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1.0/ai/v2/practitioners/prac-1/sessions", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1.0/ai/v2/practitioners/prac-1/sessions", nil)

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1.0/ai/v2/practitioners/prac-1/sessions", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Unknown Session", func(t *testing.T) {
		token, err := utils.GenerateJWT("session-gone", secret, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1.0/ai/v2/practitioners/prac-1/sessions", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
