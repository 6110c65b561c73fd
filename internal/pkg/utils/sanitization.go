package utils

import (
	"medassist-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeLoginRequest(request *requests.Login) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
}

func SanitizeCreateSessionRequest(request *requests.CreateSession) {
	request.Title = strings.TrimSpace(request.Title)
	request.PatientID = strings.TrimSpace(request.PatientID)
	request.EncounterID = strings.TrimSpace(request.EncounterID)
}

func SanitizeSendMessageRequest(request *requests.SendMessage) {
	request.Text = strings.TrimSpace(request.Text)
	request.PatientID = strings.TrimSpace(request.PatientID)
	request.EncounterID = strings.TrimSpace(request.EncounterID)
}

func SanitizeRenameSessionRequest(request *requests.RenameSession) {
	request.Title = strings.TrimSpace(request.Title)
}
