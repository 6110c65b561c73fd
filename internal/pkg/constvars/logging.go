package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingEndpointKey       = "endpoint"
	LoggingMethodKey         = "method"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingPractitionerIDKey = "practitioner_id"
	LoggingSessionIDKey      = "session_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingDraftIDKey        = "draft_id"
	LoggingEventKey          = "event"
	LoggingAttemptKey        = "attempt"
	LoggingObjectNameKey     = "object_name"
)
