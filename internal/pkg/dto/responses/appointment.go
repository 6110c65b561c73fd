package responses

import "time"

type AppointmentDraft struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitioner_id"`
	PatientID      string    `json:"patient_id,omitempty"`
	SlotStart      string    `json:"slot_start,omitempty"`
	SlotEnd        string    `json:"slot_end,omitempty"`
	Complaint      string    `json:"complaint,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Step           int       `json:"step"`
	CreatedAt      time.Time `json:"created_at"`
}

type Appointment struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	PractitionerID string `json:"practitioner_id"`
	PatientID      string `json:"patient_id"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Description    string `json:"description,omitempty"`
}

type Slot struct {
	ID     string `json:"id"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}
