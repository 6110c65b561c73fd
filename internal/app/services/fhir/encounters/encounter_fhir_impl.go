package encounters

import (
	"context"
	"fmt"
	"io"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"net/http"

	"github.com/tidwall/gjson"
)

type encounterFhirClient struct {
	BaseUrl string
}

func NewEncounterFhirClient(baseUrl string) contracts.EncounterFhirClient {
	return &encounterFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceEncounter),
	}
}

func (c *encounterFhirClient) GetEncounterByID(ctx context.Context, encounterID string) (*responses.Encounter, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s", c.BaseUrl, encounterID))
	if err != nil {
		return nil, err
	}

	encounter := buildEncounter(gjson.ParseBytes(body))
	return &encounter, nil
}

func (c *encounterFhirClient) ListEncountersByPatient(ctx context.Context, patientID string, offset, count int) ([]responses.Encounter, int, error) {
	searchURL := fmt.Sprintf("%s?patient=%s/%s&_sort=-date&_count=%d&_getpagesoffset=%d",
		c.BaseUrl, constvars.ResourcePatient, patientID, count, offset)
	body, err := c.get(ctx, searchURL)
	if err != nil {
		return nil, 0, err
	}

	bundle := gjson.ParseBytes(body)
	total := int(bundle.Get("total").Int())

	entries := bundle.Get("entry").Array()
	encounters := make([]responses.Encounter, 0, len(entries))
	for _, entry := range entries {
		encounters = append(encounters, buildEncounter(entry.Get("resource")))
	}
	return encounters, total, nil
}

func (c *encounterFhirClient) get(ctx context.Context, resourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, resourceURL, nil)
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
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceEncounter)
	}

	if resp.StatusCode == constvars.StatusNotFound {
		return nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourceEncounter)
	}
	if resp.StatusCode != constvars.StatusOK {
		diagnostics := gjson.GetBytes(body, "issue.0.diagnostics").String()
		return nil, exceptions.ErrGetFHIRResource(fmt.Errorf("%s", diagnostics), constvars.ResourceEncounter)
	}
	return body, nil
}

func buildEncounter(resource gjson.Result) responses.Encounter {
	return responses.Encounter{
		ID:          resource.Get("id").String(),
		Status:      resource.Get("status").String(),
		Class:       resource.Get("class.code").String(),
		Reason:      resource.Get("reasonCode.0.text").String(),
		PeriodStart: resource.Get("period.start").String(),
		PeriodEnd:   resource.Get("period.end").String(),
	}
}
