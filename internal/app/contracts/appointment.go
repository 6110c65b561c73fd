package contracts

import (
	"context"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	CreateDraft(ctx context.Context, request *requests.CreateAppointmentDraft) (*responses.AppointmentDraft, error)
	UpdateDraft(ctx context.Context, request *requests.UpdateAppointmentDraft) (*responses.AppointmentDraft, error)
	GetDraft(ctx context.Context, practitionerID, draftID string) (*responses.AppointmentDraft, error)
	SubmitDraft(ctx context.Context, practitionerID, draftID string) (*responses.Appointment, error)
	ListAppointments(ctx context.Context, practitionerID, date string) ([]responses.Appointment, error)
	ListFreeSlots(ctx context.Context, practitionerID, date string) ([]responses.Slot, error)
}

type AppointmentDraftRepository interface {
	Save(ctx context.Context, draft *models.AppointmentDraft) error
	Find(ctx context.Context, draftID string) (*models.AppointmentDraft, error)
	Delete(ctx context.Context, draftID string) error
}

type AppointmentFhirClient interface {
	CreateAppointment(ctx context.Context, draft *models.AppointmentDraft) (*responses.Appointment, error)
	ListAppointmentsByPractitionerAndDate(ctx context.Context, practitionerID, date string) ([]responses.Appointment, error)
}

type SlotFhirClient interface {
	ListFreeSlotsByPractitionerAndDate(ctx context.Context, practitionerID, date string) ([]responses.Slot, error)
}
