package assistant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"medassist-service/internal/app/config"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"medassist-service/internal/pkg/utils"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const assistantSystemPrompt = "You are a clinical assistant for licensed medical practitioners. " +
	"Answer concisely, state uncertainty explicitly, and never invent patient data."

const defaultAttachmentPrompt = "Describe the clinically relevant findings in this attachment."

type assistantUsecase struct {
	Log                 *zap.Logger
	SessionRepository   contracts.ChatSessionRepository
	MessageRepository   contracts.ChatMessageRepository
	MessageCache        contracts.ChatMessageCache
	ModelClient         contracts.ModelClient
	PatientFhirClient   contracts.PatientFhirClient
	EncounterFhirClient contracts.EncounterFhirClient
	Storage             contracts.Storage
	EventPublisher      contracts.EventPublisher
	InternalConfig      *config.InternalConfig
}

func NewAssistantUsecase(
	logger *zap.Logger,
	sessionRepository contracts.ChatSessionRepository,
	messageRepository contracts.ChatMessageRepository,
	messageCache contracts.ChatMessageCache,
	modelClient contracts.ModelClient,
	patientFhirClient contracts.PatientFhirClient,
	encounterFhirClient contracts.EncounterFhirClient,
	storage contracts.Storage,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
) contracts.AssistantUsecase {
	return &assistantUsecase{
		Log:                 logger,
		SessionRepository:   sessionRepository,
		MessageRepository:   messageRepository,
		MessageCache:        messageCache,
		ModelClient:         modelClient,
		PatientFhirClient:   patientFhirClient,
		EncounterFhirClient: encounterFhirClient,
		Storage:             storage,
		EventPublisher:      eventPublisher,
		InternalConfig:      internalConfig,
	}
}

func (uc *assistantUsecase) ListSessions(ctx context.Context, practitionerID string, pagination *requests.Pagination) ([]responses.ChatSession, int, error) {
	offset := (pagination.Page - 1) * pagination.PageSize

	sessions, err := uc.SessionRepository.FindByPractitioner(ctx, practitionerID, offset, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.SessionRepository.CountByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.ChatSession, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, buildSessionResponse(&session))
	}
	return result, total, nil
}

func (uc *assistantUsecase) CreateSession(ctx context.Context, request *requests.CreateSession) (*responses.ChatSession, error) {
	utils.SanitizeCreateSessionRequest(request)

	now := time.Now()
	session := &models.ChatSession{
		ID:             uuid.NewString(),
		PractitionerID: request.PractitionerID,
		Title:          request.Title,
		TitleLocked:    request.Title != "",
		PatientID:      request.PatientID,
		EncounterID:    request.EncounterID,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := uc.SessionRepository.Insert(ctx, session); err != nil {
		return nil, err
	}

	response := buildSessionResponse(session)
	return &response, nil
}

func (uc *assistantUsecase) RenameSession(ctx context.Context, request *requests.RenameSession) (*responses.ChatSession, error) {
	utils.SanitizeRenameSessionRequest(request)

	session, err := uc.findOwnedSession(ctx, request.PractitionerID, request.SessionID)
	if err != nil {
		return nil, err
	}

	if err := uc.SessionRepository.UpdateTitle(ctx, session.ID, request.Title, true); err != nil {
		return nil, err
	}

	session.Title = request.Title
	session.TitleLocked = true
	session.UpdatedAt = time.Now()
	response := buildSessionResponse(session)
	return &response, nil
}

func (uc *assistantUsecase) DeleteSession(ctx context.Context, practitionerID, sessionID string) error {
	session, err := uc.findOwnedSession(ctx, practitionerID, sessionID)
	if err != nil {
		return err
	}

	if err := uc.MessageRepository.DeleteBySession(ctx, session.ID); err != nil {
		return err
	}
	if err := uc.SessionRepository.Delete(ctx, session.ID); err != nil {
		return err
	}
	if err := uc.MessageCache.Invalidate(ctx, session.ID); err != nil {
		uc.Log.Warn("Failed to drop message cache for deleted session",
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (uc *assistantUsecase) ListMessages(ctx context.Context, practitionerID, sessionID string, pagination *requests.Pagination) ([]responses.ChatMessage, int, error) {
	session, err := uc.findOwnedSession(ctx, practitionerID, sessionID)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.MessageRepository.CountBySession(ctx, session.ID)
	if err != nil {
		return nil, 0, err
	}

	cacheable := pagination.Page == 1 && pagination.PageSize == constvars.DefaultMessagePageSize
	if cacheable {
		cached, found, err := uc.MessageCache.GetFirstPage(ctx, session.ID)
		if err == nil && found {
			return buildMessageResponses(cached), total, nil
		}
		if err != nil {
			uc.Log.Warn("Message cache read failed, falling back to database",
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Error(err),
			)
		}
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	messages, err := uc.MessageRepository.FindBySession(ctx, session.ID, offset, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if err := uc.MessageCache.SetFirstPage(ctx, session.ID, messages); err != nil {
			uc.Log.Warn("Message cache write failed",
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Error(err),
			)
		}
	}

	return buildMessageResponses(messages), total, nil
}

func (uc *assistantUsecase) SendMessage(ctx context.Context, request *requests.SendMessage) (*responses.SendMessage, error) {
	utils.SanitizeSendMessageRequest(request)

	session, err := uc.findOwnedSession(ctx, request.PractitionerID, request.SessionID)
	if err != nil {
		return nil, err
	}

	// Re-sends from the mobile client carry the same client message id;
	// replay the stored exchange instead of calling the model twice.
	var userMessage *models.ChatMessage
	if request.ClientMessageID != "" {
		existing, err := uc.MessageRepository.FindByClientMessageID(ctx, session.ID, request.ClientMessageID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			reply, err := uc.MessageRepository.FindReplyTo(ctx, session.ID, existing.ID)
			if err != nil {
				return nil, err
			}
			if reply != nil {
				return &responses.SendMessage{
					UserMessage:      buildMessageResponse(existing),
					AssistantMessage: buildMessageResponse(reply),
					SessionTitle:     session.Title,
				}, nil
			}
			// The earlier send persisted the user turn but failed before
			// the assistant reply; reuse the stored turn and call the
			// model again instead of inserting a duplicate.
			userMessage = existing
		}
	}

	// The user turn is persisted before the model call so the client's
	// optimistic entry survives an upstream failure.
	if userMessage == nil {
		channel := request.Channel
		if channel == "" {
			channel = constvars.MessageChannelText
		}

		userMessage = &models.ChatMessage{
			ID:              uuid.NewString(),
			SessionID:       session.ID,
			Role:            constvars.MessageRoleUser,
			Text:            request.Text,
			Channel:         channel,
			ClientMessageID: request.ClientMessageID,
			TimeModel: models.TimeModel{
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}
		if err := uc.MessageRepository.Insert(ctx, userMessage); err != nil {
			return nil, err
		}
		uc.invalidateCache(ctx, session.ID)
	}

	modelMessages, err := uc.buildModelMessages(ctx, session, request.PatientID, request.EncounterID)
	if err != nil {
		return nil, err
	}

	answer, err := uc.chatWithRetry(ctx, modelMessages)
	if err != nil {
		return nil, err
	}

	assistantMessage := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      constvars.MessageRoleAssistant,
		Text:      answer,
		Channel:   constvars.MessageChannelText,
		ReplyToID: userMessage.ID,
		TimeModel: models.TimeModel{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := uc.MessageRepository.Insert(ctx, assistantMessage); err != nil {
		return nil, err
	}
	uc.invalidateCache(ctx, session.ID)

	if err := uc.SessionRepository.Touch(ctx, session.ID); err != nil {
		return nil, err
	}

	sessionTitle := session.Title
	if sessionTitle == "" && !session.TitleLocked {
		sessionTitle = uc.autoTitle(ctx, session.ID, request.Text)
	}

	if err := uc.EventPublisher.Publish(ctx, constvars.EventAssistantMessageCreated, map[string]string{
		"session_id":      session.ID,
		"practitioner_id": session.PractitionerID,
		"message_id":      assistantMessage.ID,
	}); err != nil {
		uc.Log.Warn("Failed to publish assistant message event",
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
	}

	return &responses.SendMessage{
		UserMessage:      buildMessageResponse(userMessage),
		AssistantMessage: buildMessageResponse(assistantMessage),
		SessionTitle:     sessionTitle,
	}, nil
}

func (uc *assistantUsecase) Ask(ctx context.Context, request *requests.Ask) (*responses.Ask, error) {
	modelMessages, err := uc.buildContextPreamble(ctx, request.PatientID, request.EncounterID)
	if err != nil {
		return nil, err
	}
	modelMessages = append(modelMessages, contracts.ModelMessage{
		Role:    constvars.MessageRoleUser,
		Content: request.Text,
	})

	answer, err := uc.chatWithRetry(ctx, modelMessages)
	if err != nil {
		return nil, err
	}

	return &responses.Ask{Answer: answer}, nil
}

func (uc *assistantUsecase) Transcribe(ctx context.Context, practitionerID string, fileHeader *multipart.FileHeader) (*responses.Transcription, error) {
	data, err := uc.readAttachment(fileHeader)
	if err != nil {
		return nil, err
	}

	objectName := utils.GenerateObjectName(constvars.MinioAudioObjectPrefix, practitionerID, fileHeader.Filename)
	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	if _, err := uc.Storage.UploadObject(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, err
	}

	text, err := uc.ModelClient.Transcribe(ctx, fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return &responses.Transcription{
		Text:       text,
		ObjectName: objectName,
	}, nil
}

func (uc *assistantUsecase) AnalyzeAttachment(ctx context.Context, practitionerID, patientID, prompt string, fileHeader *multipart.FileHeader) (*responses.AttachmentAnalysis, error) {
	data, err := uc.readAttachment(fileHeader)
	if err != nil {
		return nil, err
	}

	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	isImage := strings.HasPrefix(contentType, "image/")
	isText := strings.HasPrefix(contentType, "text/") || strings.HasPrefix(contentType, constvars.MIMEApplicationJSON)
	if !isImage && !isText {
		return nil, exceptions.ErrAttachmentUnsupported(nil)
	}

	ownerID := patientID
	if ownerID == "" {
		ownerID = practitionerID
	}
	objectName := utils.GenerateObjectName(constvars.MinioAttachmentObjectPrefix, ownerID, fileHeader.Filename)
	if _, err := uc.Storage.UploadObject(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, err
	}

	if prompt == "" {
		prompt = defaultAttachmentPrompt
	}

	var analysis string
	if isImage {
		analysis, err = uc.ModelClient.AnalyzeImage(ctx, prompt, data, contentType)
	} else {
		analysis, err = uc.chatWithRetry(ctx, []contracts.ModelMessage{
			{Role: "system", Content: assistantSystemPrompt},
			{Role: constvars.MessageRoleUser, Content: fmt.Sprintf("%s\n\nAttachment content:\n%s", prompt, string(data))},
		})
	}
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, objectName, expiry)
	if err != nil {
		return nil, err
	}

	return &responses.AttachmentAnalysis{
		Analysis:   analysis,
		ObjectName: objectName,
		URL:        url,
	}, nil
}

func (uc *assistantUsecase) findOwnedSession(ctx context.Context, practitionerID, sessionID string) (*models.ChatSession, error) {
	session, err := uc.SessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	if session.PractitionerID != practitionerID {
		return nil, exceptions.ErrSessionWrongOwner(nil)
	}
	return session, nil
}

// chatWithRetry calls the model with a bounded retry counter. Three
// attempts, then the caller gets a 502 and the persisted user turn lets
// the client re-send safely.
func (uc *assistantUsecase) chatWithRetry(ctx context.Context, messages []contracts.ModelMessage) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= constvars.MaxModelCallAttempts; attempt++ {
		answer, err := uc.ModelClient.Chat(ctx, messages)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		uc.Log.Warn("Model call failed",
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Error(err),
		)

		if attempt == constvars.MaxModelCallAttempts {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		case <-ctx.Done():
			return "", exceptions.ErrModelCallFailed(ctx.Err(), attempt)
		}
	}
	return "", exceptions.ErrModelCallFailed(lastErr, constvars.MaxModelCallAttempts)
}

// buildModelMessages assembles system prompt, clinical context and the
// replayed history window for one session turn.
func (uc *assistantUsecase) buildModelMessages(ctx context.Context, session *models.ChatSession, patientIDOverride, encounterIDOverride string) ([]contracts.ModelMessage, error) {
	patientID := session.PatientID
	if patientIDOverride != "" {
		patientID = patientIDOverride
	}
	encounterID := session.EncounterID
	if encounterIDOverride != "" {
		encounterID = encounterIDOverride
	}

	modelMessages, err := uc.buildContextPreamble(ctx, patientID, encounterID)
	if err != nil {
		return nil, err
	}

	history, err := uc.MessageRepository.FindBySession(ctx, session.ID, 0, constvars.AssistantHistoryWindow)
	if err != nil {
		return nil, err
	}
	// History comes newest first; the model wants chronological order.
	for i := len(history) - 1; i >= 0; i-- {
		modelMessages = append(modelMessages, contracts.ModelMessage{
			Role:    history[i].Role,
			Content: history[i].Text,
		})
	}

	return modelMessages, nil
}

func (uc *assistantUsecase) buildContextPreamble(ctx context.Context, patientID, encounterID string) ([]contracts.ModelMessage, error) {
	systemPrompt := assistantSystemPrompt

	if patientID != "" {
		patient, err := uc.PatientFhirClient.GetPatientByID(ctx, patientID)
		if err != nil {
			return nil, err
		}
		systemPrompt += fmt.Sprintf("\nPatient context: %s, sex %s, born %s.", patient.Fullname, patient.Sex, patient.BirthDate)
	}

	if encounterID != "" {
		encounter, err := uc.EncounterFhirClient.GetEncounterByID(ctx, encounterID)
		if err != nil {
			return nil, err
		}
		systemPrompt += fmt.Sprintf("\nEncounter context: status %s, reason %s, started %s.", encounter.Status, encounter.Reason, encounter.PeriodStart)
	}

	return []contracts.ModelMessage{{Role: "system", Content: systemPrompt}}, nil
}

func (uc *assistantUsecase) autoTitle(ctx context.Context, sessionID, firstUserText string) string {
	title, err := uc.ModelClient.Summarize(ctx, firstUserText)
	if err != nil || strings.TrimSpace(title) == "" {
		title = firstUserText
	}
	title = strings.TrimSpace(title)
	// Truncate on runes so a multi-byte title is never cut mid-character.
	if runes := []rune(title); len(runes) > constvars.AssistantTitleMaxLength {
		title = string(runes[:constvars.AssistantTitleMaxLength])
	}

	if err := uc.SessionRepository.UpdateTitle(ctx, sessionID, title, false); err != nil {
		uc.Log.Warn("Failed to store auto-generated session title",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}
	return title
}

func (uc *assistantUsecase) invalidateCache(ctx context.Context, sessionID string) {
	if err := uc.MessageCache.Invalidate(ctx, sessionID); err != nil {
		uc.Log.Warn("Failed to invalidate message cache",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}
}

func (uc *assistantUsecase) readAttachment(fileHeader *multipart.FileHeader) ([]byte, error) {
	maxSize := uc.InternalConfig.Minio.AttachmentMaxUploadSizeInMB * 1024 * 1024
	if fileHeader.Size > maxSize {
		return nil, exceptions.ErrAttachmentTooLarge(nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}
	return data, nil
}

func buildSessionResponse(session *models.ChatSession) responses.ChatSession {
	return responses.ChatSession{
		ID:             session.ID,
		PractitionerID: session.PractitionerID,
		Title:          session.Title,
		PatientID:      session.PatientID,
		EncounterID:    session.EncounterID,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
}

func buildMessageResponse(message *models.ChatMessage) *responses.ChatMessage {
	if message == nil {
		return nil
	}
	return &responses.ChatMessage{
		ID:              message.ID,
		SessionID:       message.SessionID,
		Role:            message.Role,
		Text:            message.Text,
		Channel:         message.Channel,
		ClientMessageID: message.ClientMessageID,
		CreatedAt:       message.CreatedAt,
	}
}

func buildMessageResponses(messages []models.ChatMessage) []responses.ChatMessage {
	result := make([]responses.ChatMessage, 0, len(messages))
	for i := range messages {
		result = append(result, *buildMessageResponse(&messages[i]))
	}
	return result
}
