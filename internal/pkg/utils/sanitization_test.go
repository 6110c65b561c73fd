package utils

import (
	"medassist-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLoginRequest(t *testing.T) {
	t.Run("Email Sanitization", func(t *testing.T) {
		request := &requests.Login{
			Email:    "  DOKTER@EXAMPLE.COM  ",
			Password: "Secret123!",
		}

		SanitizeLoginRequest(request)

		assert.Equal(t, "dokter@example.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, "Secret123!", request.Password, "password must stay untouched")
	})
}

func TestSanitizeSendMessageRequest(t *testing.T) {
	t.Run("Trims text and context ids", func(t *testing.T) {
		request := &requests.SendMessage{
			Text:        "  what is the dosage?  ",
			PatientID:   " patient-1 ",
			EncounterID: " encounter-2 ",
		}

		SanitizeSendMessageRequest(request)

		assert.Equal(t, "what is the dosage?", request.Text)
		assert.Equal(t, "patient-1", request.PatientID)
		assert.Equal(t, "encounter-2", request.EncounterID)
	})
}

func TestSanitizeRenameSessionRequest(t *testing.T) {
	request := &requests.RenameSession{Title: "  Ward round  "}

	SanitizeRenameSessionRequest(request)

	assert.Equal(t, "Ward round", request.Title)
}
