package assistant

import (
	"context"
	"errors"
	"io"
	"medassist-service/internal/app/config"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"sort"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions     map[string]*models.ChatSession
	touched      int
	titleUpdates []string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.ChatSession)}
}

func (r *fakeSessionRepo) Insert(ctx context.Context, session *models.ChatSession) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) FindByPractitioner(ctx context.Context, practitionerID string, offset, limit int) ([]models.ChatSession, error) {
	var result []models.ChatSession
	for _, session := range r.sessions {
		if session.PractitionerID == practitionerID {
			result = append(result, *session)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (r *fakeSessionRepo) CountByPractitioner(ctx context.Context, practitionerID string) (int, error) {
	count := 0
	for _, session := range r.sessions {
		if session.PractitionerID == practitionerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSessionRepo) UpdateTitle(ctx context.Context, sessionID, title string, locked bool) error {
	r.titleUpdates = append(r.titleUpdates, title)
	if session, ok := r.sessions[sessionID]; ok {
		session.Title = title
		session.TitleLocked = locked
	}
	return nil
}

func (r *fakeSessionRepo) Touch(ctx context.Context, sessionID string) error {
	r.touched++
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, sessionID string) error {
	delete(r.sessions, sessionID)
	return nil
}

type fakeMessageRepo struct {
	messages []models.ChatMessage
	finds    int
}

func (r *fakeMessageRepo) Insert(ctx context.Context, message *models.ChatMessage) error {
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) FindBySession(ctx context.Context, sessionID string, offset, limit int) ([]models.ChatMessage, error) {
	r.finds++
	var result []models.ChatMessage
	for _, message := range r.messages {
		if message.SessionID == sessionID {
			result = append(result, message)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeMessageRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	count := 0
	for _, message := range r.messages {
		if message.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) FindByClientMessageID(ctx context.Context, sessionID, clientMessageID string) (*models.ChatMessage, error) {
	for _, message := range r.messages {
		if message.SessionID == sessionID && message.ClientMessageID == clientMessageID {
			copied := message
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindReplyTo(ctx context.Context, sessionID, userMessageID string) (*models.ChatMessage, error) {
	for _, message := range r.messages {
		if message.SessionID == sessionID && message.ReplyToID == userMessageID {
			copied := message
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	var kept []models.ChatMessage
	for _, message := range r.messages {
		if message.SessionID != sessionID {
			kept = append(kept, message)
		}
	}
	r.messages = kept
	return nil
}

type fakeMessageCache struct {
	pages         map[string][]models.ChatMessage
	invalidations int
	sets          int
}

func newFakeMessageCache() *fakeMessageCache {
	return &fakeMessageCache{pages: make(map[string][]models.ChatMessage)}
}

func (c *fakeMessageCache) GetFirstPage(ctx context.Context, sessionID string) ([]models.ChatMessage, bool, error) {
	page, ok := c.pages[sessionID]
	return page, ok, nil
}

func (c *fakeMessageCache) SetFirstPage(ctx context.Context, sessionID string, messages []models.ChatMessage) error {
	c.sets++
	c.pages[sessionID] = messages
	return nil
}

func (c *fakeMessageCache) Invalidate(ctx context.Context, sessionID string) error {
	c.invalidations++
	delete(c.pages, sessionID)
	return nil
}

type fakeModelClient struct {
	chatCalls    int
	failuresLeft int
	chatAnswer   string
	chatMessages []contracts.ModelMessage
	summary      string
	summaryErr   error
}

func (m *fakeModelClient) Chat(ctx context.Context, messages []contracts.ModelMessage) (string, error) {
	m.chatCalls++
	m.chatMessages = messages
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return "", errors.New("upstream unavailable")
	}
	return m.chatAnswer, nil
}

func (m *fakeModelClient) Summarize(ctx context.Context, text string) (string, error) {
	return m.summary, m.summaryErr
}

func (m *fakeModelClient) Transcribe(ctx context.Context, fileName string, reader io.Reader) (string, error) {
	return "transcribed text", nil
}

func (m *fakeModelClient) AnalyzeImage(ctx context.Context, prompt string, imageData []byte, contentType string) (string, error) {
	return "image analysis", nil
}

type fakePatientClient struct {
	calls int
}

func (c *fakePatientClient) GetPatientByID(ctx context.Context, patientID string) (*responses.PatientProfile, error) {
	c.calls++
	return &responses.PatientProfile{ID: patientID, Fullname: "Siti Rahma", Sex: "female", BirthDate: "1990-04-12"}, nil
}

func (c *fakePatientClient) SearchPatientsByName(ctx context.Context, name string, offset, count int) ([]responses.PatientSummary, int, error) {
	return nil, 0, nil
}

type fakeEncounterClient struct {
	calls int
}

func (c *fakeEncounterClient) GetEncounterByID(ctx context.Context, encounterID string) (*responses.Encounter, error) {
	c.calls++
	return &responses.Encounter{ID: encounterID, Status: "in-progress", Reason: "headache"}, nil
}

func (c *fakeEncounterClient) ListEncountersByPatient(ctx context.Context, patientID string, offset, count int) ([]responses.Encounter, int, error) {
	return nil, 0, nil
}

type fakeStorage struct {
	uploads []string
}

func (s *fakeStorage) UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	s.uploads = append(s.uploads, objectName)
	return objectName, nil
}

func (s *fakeStorage) GetObjectUrlWithExpiryTime(ctx context.Context, objectName string, expiryTime time.Duration) (string, error) {
	return "https://storage.local/" + objectName, nil
}

func (s *fakeStorage) ListObjectsByPrefix(ctx context.Context, prefix string) ([]contracts.StorageObject, error) {
	return nil, nil
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	p.events = append(p.events, eventName)
	return nil
}

type usecaseFixture struct {
	usecase     contracts.AssistantUsecase
	sessionRepo *fakeSessionRepo
	messageRepo *fakeMessageRepo
	cache       *fakeMessageCache
	model       *fakeModelClient
	patients    *fakePatientClient
	encounters  *fakeEncounterClient
	storage     *fakeStorage
	publisher   *fakePublisher
}

func newUsecaseFixture() *usecaseFixture {
	fixture := &usecaseFixture{
		sessionRepo: newFakeSessionRepo(),
		messageRepo: &fakeMessageRepo{},
		cache:       newFakeMessageCache(),
		model:       &fakeModelClient{chatAnswer: "assistant answer"},
		patients:    &fakePatientClient{},
		encounters:  &fakeEncounterClient{},
		storage:     &fakeStorage{},
		publisher:   &fakePublisher{},
	}
	internalConfig := &config.InternalConfig{
		Minio: config.AppMinio{
			AttachmentMaxUploadSizeInMB:              10,
			MinioPreSignedUrlObjectExpiryTimeInHours: 1,
		},
	}
	fixture.usecase = NewAssistantUsecase(
		zap.NewNop(),
		fixture.sessionRepo,
		fixture.messageRepo,
		fixture.cache,
		fixture.model,
		fixture.patients,
		fixture.encounters,
		fixture.storage,
		fixture.publisher,
		internalConfig,
	)
	return fixture
}

func (f *usecaseFixture) seedSession(practitionerID string) *models.ChatSession {
	session := &models.ChatSession{
		ID:             "session-1",
		PractitionerID: practitionerID,
		TimeModel: models.TimeModel{
			CreatedAt: time.Now().Add(-time.Hour),
			UpdatedAt: time.Now().Add(-time.Hour),
		},
	}
	f.sessionRepo.sessions[session.ID] = session
	return session
}

func TestSendMessage(t *testing.T) {
	t.Run("persists both turns and publishes event", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.model.summary = "Headache triage"

		response, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID: "prac-1",
			SessionID:      "session-1",
			Text:           "Patient reports severe headache",
		})

		require.NoError(t, err)
		assert.Equal(t, constvars.MessageRoleUser, response.UserMessage.Role)
		assert.Equal(t, constvars.MessageRoleAssistant, response.AssistantMessage.Role)
		assert.Equal(t, "assistant answer", response.AssistantMessage.Text)
		assert.Len(t, fixture.messageRepo.messages, 2)
		assert.Equal(t, 1, fixture.sessionRepo.touched)
		assert.Equal(t, []string{constvars.EventAssistantMessageCreated}, fixture.publisher.events)
		assert.GreaterOrEqual(t, fixture.cache.invalidations, 1, "first page cache must be dropped after a new turn")
	})

	t.Run("keeps user turn when model fails after retry cap", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.model.failuresLeft = constvars.MaxModelCallAttempts + 1

		_, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID: "prac-1",
			SessionID:      "session-1",
			Text:           "hello",
		})

		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
		assert.Equal(t, constvars.MaxModelCallAttempts, fixture.model.chatCalls)

		// The failed turn stays so the client can re-send without losing input.
		require.Len(t, fixture.messageRepo.messages, 1)
		assert.Equal(t, constvars.MessageRoleUser, fixture.messageRepo.messages[0].Role)
	})

	t.Run("replays stored exchange on duplicate client message id", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		now := time.Now()
		fixture.messageRepo.messages = []models.ChatMessage{
			{
				ID: "msg-user", SessionID: "session-1", Role: constvars.MessageRoleUser,
				Text: "original", ClientMessageID: "11111111-1111-4111-8111-111111111111",
				TimeModel: models.TimeModel{CreatedAt: now.Add(-time.Minute)},
			},
			{
				ID: "msg-assistant", SessionID: "session-1", Role: constvars.MessageRoleAssistant,
				Text: "stored answer", ReplyToID: "msg-user",
				TimeModel: models.TimeModel{CreatedAt: now},
			},
		}

		response, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID:  "prac-1",
			SessionID:       "session-1",
			Text:            "original",
			ClientMessageID: "11111111-1111-4111-8111-111111111111",
		})

		require.NoError(t, err)
		assert.Equal(t, "stored answer", response.AssistantMessage.Text)
		assert.Zero(t, fixture.model.chatCalls, "duplicate send must not hit the model")
		assert.Len(t, fixture.messageRepo.messages, 2)
	})

	t.Run("re-send after model failure reuses stored turn and answers", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.model.failuresLeft = constvars.MaxModelCallAttempts
		clientMessageID := "22222222-2222-4222-8222-222222222222"

		_, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID:  "prac-1",
			SessionID:       "session-1",
			Text:            "hello",
			ClientMessageID: clientMessageID,
		})
		require.Error(t, err)
		require.Len(t, fixture.messageRepo.messages, 1)
		callsAfterFailure := fixture.model.chatCalls

		response, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID:  "prac-1",
			SessionID:       "session-1",
			Text:            "hello",
			ClientMessageID: clientMessageID,
		})

		require.NoError(t, err)
		require.NotNil(t, response.AssistantMessage)
		assert.Equal(t, "assistant answer", response.AssistantMessage.Text)
		assert.Greater(t, fixture.model.chatCalls, callsAfterFailure, "re-send must reach the model")
		require.Len(t, fixture.messageRepo.messages, 2, "stored user turn must be reused, not duplicated")
		assert.Equal(t, constvars.MessageRoleUser, fixture.messageRepo.messages[0].Role)
		assert.Equal(t, constvars.MessageRoleAssistant, fixture.messageRepo.messages[1].Role)
		assert.Equal(t, fixture.messageRepo.messages[0].ID, fixture.messageRepo.messages[1].ReplyToID)
	})

	t.Run("auto-titles untitled session from first exchange", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.model.summary = "Migraine assessment"

		response, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID: "prac-1",
			SessionID:      "session-1",
			Text:           "Patient with recurring migraine",
		})

		require.NoError(t, err)
		assert.Equal(t, "Migraine assessment", response.SessionTitle)
		assert.Equal(t, []string{"Migraine assessment"}, fixture.sessionRepo.titleUpdates)
		assert.False(t, fixture.sessionRepo.sessions["session-1"].TitleLocked, "auto titles stay unlocked")
	})

	t.Run("falls back to truncated text when summarization fails", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.model.summaryErr = errors.New("summarize down")

		longText := ""
		for i := 0; i < 30; i++ {
			longText += "headache "
		}

		response, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID: "prac-1",
			SessionID:      "session-1",
			Text:           longText,
		})

		require.NoError(t, err)
		assert.LessOrEqual(t, len(response.SessionTitle), constvars.AssistantTitleMaxLength)
		assert.NotEmpty(t, response.SessionTitle)
	})

	t.Run("truncates non-ascii fallback title on rune boundaries", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.model.summaryErr = errors.New("summarize down")

		longText := strings.Repeat("疼痛", 50)

		response, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID: "prac-1",
			SessionID:      "session-1",
			Text:           longText,
		})

		require.NoError(t, err)
		assert.True(t, utf8.ValidString(response.SessionTitle), "truncation must not split a rune")
		assert.LessOrEqual(t, len([]rune(response.SessionTitle)), constvars.AssistantTitleMaxLength)
	})

	t.Run("rejects session owned by another practitioner", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-other")

		_, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID: "prac-1",
			SessionID:      "session-1",
			Text:           "hello",
		})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("includes patient and encounter context in model prompt", func(t *testing.T) {
		fixture := newUsecaseFixture()
		session := fixture.seedSession("prac-1")
		session.PatientID = "patient-9"
		session.EncounterID = "encounter-3"

		_, err := fixture.usecase.SendMessage(context.Background(), &requests.SendMessage{
			PractitionerID: "prac-1",
			SessionID:      "session-1",
			Text:           "what was the complaint?",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, fixture.patients.calls)
		assert.Equal(t, 1, fixture.encounters.calls)
		require.NotEmpty(t, fixture.model.chatMessages)
		assert.Equal(t, "system", fixture.model.chatMessages[0].Role)
		assert.Contains(t, fixture.model.chatMessages[0].Content, "Siti Rahma")
		assert.Contains(t, fixture.model.chatMessages[0].Content, "headache")
	})
}

func TestListMessages(t *testing.T) {
	firstPage := &requests.Pagination{Page: 1, PageSize: constvars.DefaultMessagePageSize}

	t.Run("fills cache on miss and serves from it after", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.messageRepo.messages = []models.ChatMessage{
			{ID: "m1", SessionID: "session-1", Role: constvars.MessageRoleUser, Text: "hi",
				TimeModel: models.TimeModel{CreatedAt: time.Now()}},
		}

		_, total, err := fixture.usecase.ListMessages(context.Background(), "prac-1", "session-1", firstPage)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, 1, fixture.cache.sets)
		findsAfterMiss := fixture.messageRepo.finds

		messages, _, err := fixture.usecase.ListMessages(context.Background(), "prac-1", "session-1", firstPage)
		require.NoError(t, err)
		assert.Len(t, messages, 1)
		assert.Equal(t, findsAfterMiss, fixture.messageRepo.finds, "second read must be a cache hit")
	})

	t.Run("bypasses cache for non-default pages", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")

		_, _, err := fixture.usecase.ListMessages(context.Background(), "prac-1", "session-1",
			&requests.Pagination{Page: 2, PageSize: constvars.DefaultMessagePageSize})
		require.NoError(t, err)
		assert.Zero(t, fixture.cache.sets)
	})

	t.Run("returns newest messages first", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		now := time.Now()
		fixture.messageRepo.messages = []models.ChatMessage{
			{ID: "old", SessionID: "session-1", TimeModel: models.TimeModel{CreatedAt: now.Add(-time.Minute)}},
			{ID: "new", SessionID: "session-1", TimeModel: models.TimeModel{CreatedAt: now}},
		}

		messages, _, err := fixture.usecase.ListMessages(context.Background(), "prac-1", "session-1", firstPage)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "new", messages[0].ID)
		assert.Equal(t, "old", messages[1].ID)
	})
}

func TestDeleteSession(t *testing.T) {
	t.Run("removes session with its messages and cache", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.seedSession("prac-1")
		fixture.messageRepo.messages = []models.ChatMessage{
			{ID: "m1", SessionID: "session-1"},
			{ID: "m2", SessionID: "other-session"},
		}

		err := fixture.usecase.DeleteSession(context.Background(), "prac-1", "session-1")
		require.NoError(t, err)
		assert.Empty(t, fixture.sessionRepo.sessions)
		require.Len(t, fixture.messageRepo.messages, 1)
		assert.Equal(t, "other-session", fixture.messageRepo.messages[0].SessionID)
		assert.Equal(t, 1, fixture.cache.invalidations)
	})

	t.Run("unknown session returns not found", func(t *testing.T) {
		fixture := newUsecaseFixture()

		err := fixture.usecase.DeleteSession(context.Background(), "prac-1", "missing")
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestCreateSession(t *testing.T) {
	t.Run("locks title when client provides one", func(t *testing.T) {
		fixture := newUsecaseFixture()

		response, err := fixture.usecase.CreateSession(context.Background(), &requests.CreateSession{
			PractitionerID: "prac-1",
			Title:          "Ward round notes",
		})

		require.NoError(t, err)
		stored := fixture.sessionRepo.sessions[response.ID]
		require.NotNil(t, stored)
		assert.True(t, stored.TitleLocked)
	})

	t.Run("leaves empty title unlocked for auto-titling", func(t *testing.T) {
		fixture := newUsecaseFixture()

		response, err := fixture.usecase.CreateSession(context.Background(), &requests.CreateSession{
			PractitionerID: "prac-1",
		})

		require.NoError(t, err)
		assert.False(t, fixture.sessionRepo.sessions[response.ID].TitleLocked)
	})
}
