package constvars

const (
	LoginSuccessMessage  = "Successfully logged in"
	LogoutSuccessMessage = "Successfully logged out"

	SessionListSuccessMessage    = "Successfully fetched sessions"
	SessionCreateSuccessMessage  = "Successfully created session"
	SessionRenameSuccessMessage  = "Successfully renamed session"
	SessionDeleteSuccessMessage  = "Successfully deleted session"
	MessageListSuccessMessage    = "Successfully fetched messages"
	MessageSendSuccessMessage    = "Successfully sent message"
	AskSuccessMessage            = "Successfully asked the assistant"
	TranscribeSuccessMessage     = "Successfully transcribed audio"
	AnalyzeSuccessMessage        = "Successfully analyzed attachment"

	PatientProfileSuccessMessage     = "Successfully fetched patient profile"
	PatientEncountersSuccessMessage  = "Successfully fetched patient encounters"
	PatientAttachmentsSuccessMessage = "Successfully fetched patient attachments"
	PatientSearchSuccessMessage      = "Successfully searched patients"

	AppointmentDraftCreateSuccessMessage = "Successfully created appointment draft"
	AppointmentDraftUpdateSuccessMessage = "Successfully updated appointment draft"
	AppointmentDraftGetSuccessMessage    = "Successfully fetched appointment draft"
	AppointmentSubmitSuccessMessage      = "Successfully booked appointment"
	AppointmentListSuccessMessage        = "Successfully fetched appointments"
	AppointmentSlotsSuccessMessage       = "Successfully fetched available slots"
)
