package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
)

// Redis key formats. Every key the service writes is declared here so the
// keyspace can be audited in one place.
const (
	RedisKeyLoginSessionFormat     = "login_session:%s"
	RedisKeyMessageFirstPageFormat = "assistant:messages:%s:first_page"
	RedisKeyAppointmentDraftFormat = "appointment_draft:%s"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleTool      = "tool"

	MessageChannelText  = "text"
	MessageChannelAudio = "audio"
)

const (
	// MaxModelCallAttempts bounds the retry counter on upstream model calls.
	MaxModelCallAttempts = 3

	DefaultMessagePageSize = 20
	MaxMessagePageSize     = 100

	// AssistantHistoryWindow is how many prior turns are replayed to the model.
	AssistantHistoryWindow = 20

	// AssistantTitleMaxLength truncates auto-generated session titles.
	AssistantTitleMaxLength = 80
)

const (
	MinioAudioObjectPrefix      = "audio"
	MinioAttachmentObjectPrefix = "attachments"
)

const (
	EventAssistantMessageCreated = "assistant.message.created"
	EventAppointmentBooked       = "appointment.booked"
)

const AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
