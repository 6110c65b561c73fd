package contracts

import (
	"context"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
	"mime/multipart"
)

type AssistantUsecase interface {
	ListSessions(ctx context.Context, practitionerID string, pagination *requests.Pagination) ([]responses.ChatSession, int, error)
	CreateSession(ctx context.Context, request *requests.CreateSession) (*responses.ChatSession, error)
	RenameSession(ctx context.Context, request *requests.RenameSession) (*responses.ChatSession, error)
	DeleteSession(ctx context.Context, practitionerID, sessionID string) error

	ListMessages(ctx context.Context, practitionerID, sessionID string, pagination *requests.Pagination) ([]responses.ChatMessage, int, error)
	SendMessage(ctx context.Context, request *requests.SendMessage) (*responses.SendMessage, error)
	Ask(ctx context.Context, request *requests.Ask) (*responses.Ask, error)

	Transcribe(ctx context.Context, practitionerID string, fileHeader *multipart.FileHeader) (*responses.Transcription, error)
	AnalyzeAttachment(ctx context.Context, practitionerID, patientID, prompt string, fileHeader *multipart.FileHeader) (*responses.AttachmentAnalysis, error)
}

type ChatSessionRepository interface {
	Insert(ctx context.Context, session *models.ChatSession) error
	FindByID(ctx context.Context, sessionID string) (*models.ChatSession, error)
	FindByPractitioner(ctx context.Context, practitionerID string, offset, limit int) ([]models.ChatSession, error)
	CountByPractitioner(ctx context.Context, practitionerID string) (int, error)
	UpdateTitle(ctx context.Context, sessionID, title string, locked bool) error
	Touch(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}

type ChatMessageRepository interface {
	Insert(ctx context.Context, message *models.ChatMessage) error
	FindBySession(ctx context.Context, sessionID string, offset, limit int) ([]models.ChatMessage, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	FindByClientMessageID(ctx context.Context, sessionID, clientMessageID string) (*models.ChatMessage, error)
	FindReplyTo(ctx context.Context, sessionID, userMessageID string) (*models.ChatMessage, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// ChatMessageCache holds the newest page of a session's messages so the
// chat screen's initial load skips mongo entirely.
type ChatMessageCache interface {
	GetFirstPage(ctx context.Context, sessionID string) ([]models.ChatMessage, bool, error)
	SetFirstPage(ctx context.Context, sessionID string, messages []models.ChatMessage) error
	Invalidate(ctx context.Context, sessionID string) error
}
