package constvars

const (
	ResourcePatient     = "Patient"
	ResourceEncounter   = "Encounter"
	ResourceAppointment = "Appointment"
	ResourceSlot        = "Slot"
)

const (
	FhirSlotStatusFree = "free"

	FhirAppointmentStatusBooked = "booked"
)
