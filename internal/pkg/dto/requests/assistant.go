package requests

type CreateSession struct {
	PractitionerID string `json:"-"`
	Title          string `json:"title" validate:"max=120"`
	PatientID      string `json:"patient_id"`
	EncounterID    string `json:"encounter_id"`
}

type RenameSession struct {
	PractitionerID string `json:"-"`
	SessionID      string `json:"-"`
	Title          string `json:"title" validate:"required,max=120"`
}

type SendMessage struct {
	PractitionerID  string `json:"-"`
	SessionID       string `json:"-"`
	Text            string `json:"text" validate:"required,max=8000"`
	Channel         string `json:"channel" validate:"message_channel"`
	ClientMessageID string `json:"client_message_id" validate:"omitempty,uuid"`
	// Optional per-turn context override; when empty the session's own
	// patient/encounter ids apply.
	PatientID   string `json:"patient_id"`
	EncounterID string `json:"encounter_id"`
}

type Ask struct {
	PractitionerID string `json:"-"`
	Text           string `json:"text" validate:"required,max=8000"`
	PatientID      string `json:"patient_id"`
	EncounterID    string `json:"encounter_id"`
}
