package models

import "time"

// AppointmentDraft mirrors the mobile booking wizard's form state. It lives
// in redis with a TTL and is deleted on submit.
type AppointmentDraft struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitionerId"`
	PatientID      string    `json:"patientId,omitempty"`
	SlotStart      string    `json:"slotStart,omitempty"`
	SlotEnd        string    `json:"slotEnd,omitempty"`
	Complaint      string    `json:"complaint,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Step           int       `json:"step"`
	CreatedAt      time.Time `json:"createdAt"`
}
