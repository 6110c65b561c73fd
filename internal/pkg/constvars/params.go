package constvars

const (
	URLParamPractitionerID = "practitioner_id"
	URLParamSessionID      = "session_id"
	URLParamPatientID      = "patient_id"
	URLParamDraftID        = "draft_id"
)

const (
	QueryParamPage           = "page"
	QueryParamPageSize       = "page_size"
	QueryParamName           = "name"
	QueryParamDate           = "date"
	QueryParamPractitionerID = "practitioner_id"
)

const (
	MultipartFieldAudio     = "audio"
	MultipartFieldFile      = "file"
	MultipartFieldPatientID = "patient_id"
	MultipartFieldPrompt    = "prompt"
)
