package requests

type CreateAppointmentDraft struct {
	PractitionerID string `json:"-"`
	PatientID      string `json:"patient_id"`
}

// UpdateAppointmentDraft carries one wizard step. Fields are merged into
// the stored draft, last write wins.
type UpdateAppointmentDraft struct {
	DraftID        string `json:"-"`
	PractitionerID string `json:"-"`
	PatientID      string `json:"patient_id"`
	SlotStart      string `json:"slot_start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	SlotEnd        string `json:"slot_end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Complaint      string `json:"complaint" validate:"max=2000"`
	Notes          string `json:"notes" validate:"max=4000"`
	Step           int    `json:"step" validate:"omitempty,min=1,max=4"`
}
