package appointments

import (
	"context"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type appointmentUsecase struct {
	Log                   *zap.Logger
	DraftRepository       contracts.AppointmentDraftRepository
	AppointmentFhirClient contracts.AppointmentFhirClient
	SlotFhirClient        contracts.SlotFhirClient
	EventPublisher        contracts.EventPublisher
}

func NewAppointmentUsecase(
	logger *zap.Logger,
	draftRepository contracts.AppointmentDraftRepository,
	appointmentFhirClient contracts.AppointmentFhirClient,
	slotFhirClient contracts.SlotFhirClient,
	eventPublisher contracts.EventPublisher,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		Log:                   logger,
		DraftRepository:       draftRepository,
		AppointmentFhirClient: appointmentFhirClient,
		SlotFhirClient:        slotFhirClient,
		EventPublisher:        eventPublisher,
	}
}

func (uc *appointmentUsecase) CreateDraft(ctx context.Context, request *requests.CreateAppointmentDraft) (*responses.AppointmentDraft, error) {
	draft := &models.AppointmentDraft{
		ID:             uuid.NewString(),
		PractitionerID: request.PractitionerID,
		PatientID:      request.PatientID,
		Step:           1,
		CreatedAt:      time.Now(),
	}

	if err := uc.DraftRepository.Save(ctx, draft); err != nil {
		return nil, err
	}

	response := buildDraftResponse(draft)
	return &response, nil
}

// UpdateDraft merges one wizard step into the stored draft. Concurrent
// updates resolve last write wins.
func (uc *appointmentUsecase) UpdateDraft(ctx context.Context, request *requests.UpdateAppointmentDraft) (*responses.AppointmentDraft, error) {
	draft, err := uc.findOwnedDraft(ctx, request.PractitionerID, request.DraftID)
	if err != nil {
		return nil, err
	}

	if request.PatientID != "" {
		draft.PatientID = request.PatientID
	}
	if request.SlotStart != "" {
		draft.SlotStart = request.SlotStart
	}
	if request.SlotEnd != "" {
		draft.SlotEnd = request.SlotEnd
	}
	if request.Complaint != "" {
		draft.Complaint = request.Complaint
	}
	if request.Notes != "" {
		draft.Notes = request.Notes
	}
	if request.Step > draft.Step {
		draft.Step = request.Step
	}

	if err := uc.DraftRepository.Save(ctx, draft); err != nil {
		return nil, err
	}

	response := buildDraftResponse(draft)
	return &response, nil
}

func (uc *appointmentUsecase) GetDraft(ctx context.Context, practitionerID, draftID string) (*responses.AppointmentDraft, error) {
	draft, err := uc.findOwnedDraft(ctx, practitionerID, draftID)
	if err != nil {
		return nil, err
	}

	response := buildDraftResponse(draft)
	return &response, nil
}

func (uc *appointmentUsecase) SubmitDraft(ctx context.Context, practitionerID, draftID string) (*responses.Appointment, error) {
	draft, err := uc.findOwnedDraft(ctx, practitionerID, draftID)
	if err != nil {
		return nil, err
	}

	if draft.PatientID == "" {
		return nil, exceptions.ErrDraftIncomplete(nil, "patient_id")
	}
	if draft.SlotStart == "" {
		return nil, exceptions.ErrDraftIncomplete(nil, "slot_start")
	}
	if draft.SlotEnd == "" {
		return nil, exceptions.ErrDraftIncomplete(nil, "slot_end")
	}

	appointment, err := uc.AppointmentFhirClient.CreateAppointment(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := uc.DraftRepository.Delete(ctx, draft.ID); err != nil {
		uc.Log.Warn("Failed to delete submitted appointment draft",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.Error(err),
		)
	}

	if err := uc.EventPublisher.Publish(ctx, constvars.EventAppointmentBooked, map[string]string{
		"appointment_id":  appointment.ID,
		"practitioner_id": draft.PractitionerID,
		"patient_id":      draft.PatientID,
	}); err != nil {
		uc.Log.Warn("Failed to publish appointment booked event",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.Error(err),
		)
	}

	return appointment, nil
}

func (uc *appointmentUsecase) ListAppointments(ctx context.Context, practitionerID, date string) ([]responses.Appointment, error) {
	return uc.AppointmentFhirClient.ListAppointmentsByPractitionerAndDate(ctx, practitionerID, date)
}

func (uc *appointmentUsecase) ListFreeSlots(ctx context.Context, practitionerID, date string) ([]responses.Slot, error) {
	return uc.SlotFhirClient.ListFreeSlotsByPractitionerAndDate(ctx, practitionerID, date)
}

func (uc *appointmentUsecase) findOwnedDraft(ctx context.Context, practitionerID, draftID string) (*models.AppointmentDraft, error) {
	draft, err := uc.DraftRepository.Find(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, exceptions.ErrDraftNotFound(nil)
	}
	if draft.PractitionerID != practitionerID {
		return nil, exceptions.ErrDraftWrongOwner(nil)
	}
	return draft, nil
}

func buildDraftResponse(draft *models.AppointmentDraft) responses.AppointmentDraft {
	return responses.AppointmentDraft{
		ID:             draft.ID,
		PractitionerID: draft.PractitionerID,
		PatientID:      draft.PatientID,
		SlotStart:      draft.SlotStart,
		SlotEnd:        draft.SlotEnd,
		Complaint:      draft.Complaint,
		Notes:          draft.Notes,
		Step:           draft.Step,
		CreatedAt:      draft.CreatedAt,
	}
}
