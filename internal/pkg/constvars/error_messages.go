package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"uuid":     "must be a valid UUID",
	"datetime": "must be a valid timestamp",
	"password": "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientInvalidUsernameOrPassword     = "invalid email or password"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientSessionNotFound               = "conversation not found"
	ErrClientDraftNotFound                 = "appointment draft not found or expired"
	ErrClientDraftIncomplete               = "appointment draft is missing required fields"
	ErrClientAssistantUnavailable          = "the assistant is unavailable right now, please try again"
	ErrClientAttachmentTooLarge            = "attachment exceeds the maximum upload size"
	ErrClientAttachmentUnsupported         = "this attachment type cannot be analyzed"
	ErrClientPatientNotFound               = "patient not found"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerParseSessionData     = "cannot parse session data"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevMissingSessionData         = "session data missing from context"
	ErrDevURLParamIDValidationFailed = "invalid url param: %s"

	// Authentication messages
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevInvalidCredentials        = "invalid credentials"
	ErrDevFailedToHashPassword      = "failed to hash password"
	ErrDevPractitionerNotExists     = "practitioner account does not exist"
	ErrDevPractitionerMismatch      = "authenticated practitioner does not match url param"

	// Mongo messages
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"

	// Redis messages
	ErrDevRedisGetNoData  = "failed to get data from redis for key: %s"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	// Minio messages
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket: %s"
	ErrDevMinioFailedToPresignObject = "failed to presign object in bucket: %s"
	ErrDevMinioFailedToListObjects   = "failed to list objects in bucket: %s"

	// Upstream messages
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevCreateFHIRResource       = "failed to create FHIR %s"
	ErrDevGetFHIRResource          = "failed to get FHIR %s"
	ErrDevSearchFHIRResource       = "failed to search FHIR %s"
	ErrDevDecodeFHIRResponse       = "failed to decode FHIR %s response"
	ErrDevModelCallFailed          = "model call failed after %d attempts"
	ErrDevModelTranscriptionFailed = "audio transcription failed"
	ErrDevModelEmptyCompletion     = "model returned an empty completion"

	// Queue messages
	ErrDevQueuePublishFailed = "failed to publish message to queue"
	ErrDevQueueNotConfirmed  = "broker did not confirm publish"

	// Assistant messages
	ErrDevSessionNotFound       = "chat session not found"
	ErrDevSessionWrongOwner     = "chat session belongs to another practitioner"
	ErrDevDraftNotFound         = "appointment draft not found"
	ErrDevDraftWrongOwner       = "appointment draft belongs to another practitioner"
	ErrDevDraftIncomplete       = "appointment draft incomplete"
	ErrDevAttachmentTooLarge    = "attachment too large"
	ErrDevAttachmentUnsupported = "unsupported attachment content type"
)
