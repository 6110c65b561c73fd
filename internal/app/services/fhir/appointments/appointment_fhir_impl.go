package appointments

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

type appointmentFhirClient struct {
	BaseUrl string
}

func NewAppointmentFhirClient(baseUrl string) contracts.AppointmentFhirClient {
	return &appointmentFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceAppointment),
	}
}

func (c *appointmentFhirClient) CreateAppointment(ctx context.Context, draft *models.AppointmentDraft) (*responses.Appointment, error) {
	resource := map[string]interface{}{
		"resourceType": constvars.ResourceAppointment,
		"status":       constvars.FhirAppointmentStatusBooked,
		"description":  draft.Complaint,
		"comment":      draft.Notes,
		"start":        draft.SlotStart,
		"end":          draft.SlotEnd,
		"participant": []map[string]interface{}{
			{
				"actor":  map[string]string{"reference": fmt.Sprintf("Practitioner/%s", draft.PractitionerID)},
				"status": "accepted",
			},
			{
				"actor":  map[string]string{"reference": fmt.Sprintf("%s/%s", constvars.ResourcePatient, draft.PatientID)},
				"status": "accepted",
			},
		},
	}

	requestJSON, err := json.Marshal(resource)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourceAppointment)
	}

	if resp.StatusCode != constvars.StatusCreated && resp.StatusCode != constvars.StatusOK {
		diagnostics := gjson.GetBytes(body, "issue.0.diagnostics").String()
		return nil, exceptions.ErrCreateFHIRResource(fmt.Errorf("%s", diagnostics), constvars.ResourceAppointment)
	}

	appointment := buildAppointment(gjson.ParseBytes(body))
	return &appointment, nil
}

func (c *appointmentFhirClient) ListAppointmentsByPractitionerAndDate(ctx context.Context, practitionerID, date string) ([]responses.Appointment, error) {
	searchURL := fmt.Sprintf("%s?actor=Practitioner/%s&date=%s&_sort=date", c.BaseUrl, practitionerID, date)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, searchURL, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceAppointment)
	}

	if resp.StatusCode != constvars.StatusOK {
		diagnostics := gjson.GetBytes(body, "issue.0.diagnostics").String()
		return nil, exceptions.ErrSearchFHIRResource(fmt.Errorf("%s", diagnostics), constvars.ResourceAppointment)
	}

	entries := gjson.GetBytes(body, "entry").Array()
	appointments := make([]responses.Appointment, 0, len(entries))
	for _, entry := range entries {
		appointments = append(appointments, buildAppointment(entry.Get("resource")))
	}
	return appointments, nil
}

func buildAppointment(resource gjson.Result) responses.Appointment {
	appointment := responses.Appointment{
		ID:          resource.Get("id").String(),
		Status:      resource.Get("status").String(),
		Start:       resource.Get("start").String(),
		End:         resource.Get("end").String(),
		Description: resource.Get("description").String(),
	}

	for _, participant := range resource.Get("participant").Array() {
		reference := participant.Get("actor.reference").String()
		switch {
		case strings.HasPrefix(reference, "Practitioner/"):
			appointment.PractitionerID = strings.TrimPrefix(reference, "Practitioner/")
		case strings.HasPrefix(reference, constvars.ResourcePatient+"/"):
			appointment.PatientID = strings.TrimPrefix(reference, constvars.ResourcePatient+"/")
		}
	}
	return appointment
}
