package responses

import "time"

type ChatSession struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitioner_id"`
	Title          string    `json:"title"`
	PatientID      string    `json:"patient_id,omitempty"`
	EncounterID    string    `json:"encounter_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	Role            string    `json:"role"`
	Text            string    `json:"text"`
	Channel         string    `json:"channel"`
	ClientMessageID string    `json:"client_message_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type SendMessage struct {
	UserMessage      *ChatMessage `json:"user_message"`
	AssistantMessage *ChatMessage `json:"assistant_message"`
	SessionTitle     string       `json:"session_title"`
}

type Ask struct {
	Answer string `json:"answer"`
}

type Transcription struct {
	Text       string `json:"text"`
	ObjectName string `json:"object_name"`
}

type AttachmentAnalysis struct {
	Analysis   string `json:"analysis"`
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}
