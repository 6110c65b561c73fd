package appointments

import (
	"context"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDraftRepo struct {
	drafts map[string]*models.AppointmentDraft
	saves  int
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*models.AppointmentDraft)}
}

func (r *fakeDraftRepo) Save(ctx context.Context, draft *models.AppointmentDraft) error {
	r.saves++
	copied := *draft
	r.drafts[draft.ID] = &copied
	return nil
}

func (r *fakeDraftRepo) Find(ctx context.Context, draftID string) (*models.AppointmentDraft, error) {
	draft, ok := r.drafts[draftID]
	if !ok {
		return nil, nil
	}
	copied := *draft
	return &copied, nil
}

func (r *fakeDraftRepo) Delete(ctx context.Context, draftID string) error {
	delete(r.drafts, draftID)
	return nil
}

type fakeAppointmentClient struct {
	created []*models.AppointmentDraft
}

func (c *fakeAppointmentClient) CreateAppointment(ctx context.Context, draft *models.AppointmentDraft) (*responses.Appointment, error) {
	c.created = append(c.created, draft)
	return &responses.Appointment{
		ID:             "appt-1",
		Status:         constvars.FhirAppointmentStatusBooked,
		PractitionerID: draft.PractitionerID,
		PatientID:      draft.PatientID,
		Start:          draft.SlotStart,
		End:            draft.SlotEnd,
	}, nil
}

func (c *fakeAppointmentClient) ListAppointmentsByPractitionerAndDate(ctx context.Context, practitionerID, date string) ([]responses.Appointment, error) {
	return nil, nil
}

type fakeSlotClient struct{}

func (c *fakeSlotClient) ListFreeSlotsByPractitionerAndDate(ctx context.Context, practitionerID, date string) ([]responses.Slot, error) {
	return []responses.Slot{{ID: "slot-1", Status: constvars.FhirSlotStatusFree}}, nil
}

type fakeEventPublisher struct {
	events []string
}

func (p *fakeEventPublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	p.events = append(p.events, eventName)
	return nil
}

type appointmentFixture struct {
	usecase   contracts.AppointmentUsecase
	drafts    *fakeDraftRepo
	fhir      *fakeAppointmentClient
	publisher *fakeEventPublisher
}

func newAppointmentFixture() *appointmentFixture {
	fixture := &appointmentFixture{
		drafts:    newFakeDraftRepo(),
		fhir:      &fakeAppointmentClient{},
		publisher: &fakeEventPublisher{},
	}
	fixture.usecase = NewAppointmentUsecase(
		zap.NewNop(),
		fixture.drafts,
		fixture.fhir,
		&fakeSlotClient{},
		fixture.publisher,
	)
	return fixture
}

func TestAppointmentDraftWizard(t *testing.T) {
	t.Run("create starts at step one", func(t *testing.T) {
		fixture := newAppointmentFixture()

		draft, err := fixture.usecase.CreateDraft(context.Background(), &requests.CreateAppointmentDraft{
			PractitionerID: "prac-1",
			PatientID:      "patient-1",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, draft.Step)
		assert.Equal(t, "patient-1", draft.PatientID)
	})

	t.Run("updates merge into the stored draft", func(t *testing.T) {
		fixture := newAppointmentFixture()
		created, err := fixture.usecase.CreateDraft(context.Background(), &requests.CreateAppointmentDraft{
			PractitionerID: "prac-1",
		})
		require.NoError(t, err)

		_, err = fixture.usecase.UpdateDraft(context.Background(), &requests.UpdateAppointmentDraft{
			DraftID:        created.ID,
			PractitionerID: "prac-1",
			PatientID:      "patient-1",
			Step:           2,
		})
		require.NoError(t, err)

		updated, err := fixture.usecase.UpdateDraft(context.Background(), &requests.UpdateAppointmentDraft{
			DraftID:        created.ID,
			PractitionerID: "prac-1",
			SlotStart:      "2026-09-01T09:00:00+07:00",
			SlotEnd:        "2026-09-01T09:30:00+07:00",
			Step:           3,
		})
		require.NoError(t, err)

		assert.Equal(t, "patient-1", updated.PatientID, "earlier step data survives later updates")
		assert.Equal(t, "2026-09-01T09:00:00+07:00", updated.SlotStart)
		assert.Equal(t, 3, updated.Step)
	})

	t.Run("step never moves backwards", func(t *testing.T) {
		fixture := newAppointmentFixture()
		created, err := fixture.usecase.CreateDraft(context.Background(), &requests.CreateAppointmentDraft{
			PractitionerID: "prac-1",
		})
		require.NoError(t, err)

		_, err = fixture.usecase.UpdateDraft(context.Background(), &requests.UpdateAppointmentDraft{DraftID: created.ID, PractitionerID: "prac-1", Step: 3})
		require.NoError(t, err)

		updated, err := fixture.usecase.UpdateDraft(context.Background(), &requests.UpdateAppointmentDraft{DraftID: created.ID, PractitionerID: "prac-1", Step: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Step)
	})

	t.Run("unknown draft returns not found", func(t *testing.T) {
		fixture := newAppointmentFixture()

		_, err := fixture.usecase.GetDraft(context.Background(), "prac-1", "missing")
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("rejects draft owned by another practitioner", func(t *testing.T) {
		fixture := newAppointmentFixture()
		created, err := fixture.usecase.CreateDraft(context.Background(), &requests.CreateAppointmentDraft{
			PractitionerID: "prac-owner",
		})
		require.NoError(t, err)

		_, err = fixture.usecase.GetDraft(context.Background(), "prac-intruder", created.ID)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)

		_, err = fixture.usecase.UpdateDraft(context.Background(), &requests.UpdateAppointmentDraft{
			DraftID:        created.ID,
			PractitionerID: "prac-intruder",
			PatientID:      "patient-1",
		})
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}

func TestSubmitDraft(t *testing.T) {
	seedCompleteDraft := func(fixture *appointmentFixture) string {
		draft := &models.AppointmentDraft{
			ID:             "draft-1",
			PractitionerID: "prac-1",
			PatientID:      "patient-1",
			SlotStart:      "2026-09-01T09:00:00+07:00",
			SlotEnd:        "2026-09-01T09:30:00+07:00",
			Step:           4,
		}
		fixture.drafts.drafts[draft.ID] = draft
		return draft.ID
	}

	t.Run("books the appointment and clears the draft", func(t *testing.T) {
		fixture := newAppointmentFixture()
		draftID := seedCompleteDraft(fixture)

		appointment, err := fixture.usecase.SubmitDraft(context.Background(), "prac-1", draftID)
		require.NoError(t, err)
		assert.Equal(t, constvars.FhirAppointmentStatusBooked, appointment.Status)
		assert.Empty(t, fixture.drafts.drafts, "submitted draft must be deleted")
		assert.Equal(t, []string{constvars.EventAppointmentBooked}, fixture.publisher.events)
	})

	t.Run("rejects draft missing a slot", func(t *testing.T) {
		fixture := newAppointmentFixture()
		fixture.drafts.drafts["draft-1"] = &models.AppointmentDraft{
			ID:             "draft-1",
			PractitionerID: "prac-1",
			PatientID:      "patient-1",
		}

		_, err := fixture.usecase.SubmitDraft(context.Background(), "prac-1", "draft-1")
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		assert.Empty(t, fixture.fhir.created, "incomplete draft must never reach the FHIR server")
	})

	t.Run("rejects draft missing a patient", func(t *testing.T) {
		fixture := newAppointmentFixture()
		fixture.drafts.drafts["draft-1"] = &models.AppointmentDraft{
			ID:             "draft-1",
			PractitionerID: "prac-1",
			SlotStart:      "2026-09-01T09:00:00+07:00",
			SlotEnd:        "2026-09-01T09:30:00+07:00",
		}

		_, err := fixture.usecase.SubmitDraft(context.Background(), "prac-1", "draft-1")
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	})

	t.Run("rejects submit by another practitioner", func(t *testing.T) {
		fixture := newAppointmentFixture()
		draftID := seedCompleteDraft(fixture)

		_, err := fixture.usecase.SubmitDraft(context.Background(), "prac-intruder", draftID)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		assert.Empty(t, fixture.fhir.created)
		assert.NotEmpty(t, fixture.drafts.drafts, "foreign submit must not consume the draft")
	})
}
