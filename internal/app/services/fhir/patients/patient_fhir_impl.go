package patients

import (
	"context"
	"fmt"
	"io"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/responses"
	"medassist-service/internal/pkg/exceptions"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

type patientFhirClient struct {
	BaseUrl string
}

func NewPatientFhirClient(baseUrl string) contracts.PatientFhirClient {
	return &patientFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourcePatient),
	}
}

func (c *patientFhirClient) GetPatientByID(ctx context.Context, patientID string) (*responses.PatientProfile, error) {
	body, err := fetchFhirResource(ctx, fmt.Sprintf("%s/%s", c.BaseUrl, patientID), constvars.ResourcePatient)
	if err != nil {
		return nil, err
	}

	profile := buildPatientProfile(gjson.ParseBytes(body))
	return &profile, nil
}

func (c *patientFhirClient) SearchPatientsByName(ctx context.Context, name string, offset, count int) ([]responses.PatientSummary, int, error) {
	searchURL := fmt.Sprintf("%s?name=%s&_count=%d&_getpagesoffset=%d", c.BaseUrl, url.QueryEscape(name), count, offset)
	body, err := fetchFhirResource(ctx, searchURL, constvars.ResourcePatient)
	if err != nil {
		return nil, 0, err
	}

	bundle := gjson.ParseBytes(body)
	total := int(bundle.Get("total").Int())

	entries := bundle.Get("entry").Array()
	summaries := make([]responses.PatientSummary, 0, len(entries))
	for _, entry := range entries {
		resource := entry.Get("resource")
		summaries = append(summaries, responses.PatientSummary{
			ID:        resource.Get("id").String(),
			Fullname:  buildHumanName(resource),
			BirthDate: resource.Get("birthDate").String(),
			Sex:       resource.Get("gender").String(),
		})
	}
	return summaries, total, nil
}

// fetchFhirResource does a GET against the FHIR server and surfaces the
// first OperationOutcome issue on a non-200 response.
func fetchFhirResource(ctx context.Context, resourceURL, resourceName string) ([]byte, error) {
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
		return nil, exceptions.ErrGetFHIRResource(err, resourceName)
	}

	if resp.StatusCode == constvars.StatusNotFound {
		return nil, exceptions.ErrFHIRResourceNotFound(nil, resourceName)
	}
	if resp.StatusCode != constvars.StatusOK {
		diagnostics := gjson.GetBytes(body, "issue.0.diagnostics").String()
		return nil, exceptions.ErrGetFHIRResource(fmt.Errorf("%s", diagnostics), resourceName)
	}
	return body, nil
}

func buildPatientProfile(resource gjson.Result) responses.PatientProfile {
	profile := responses.PatientProfile{
		ID:        resource.Get("id").String(),
		Fullname:  buildHumanName(resource),
		Sex:       resource.Get("gender").String(),
		BirthDate: resource.Get("birthDate").String(),
	}

	for _, telecom := range resource.Get("telecom").Array() {
		switch telecom.Get("system").String() {
		case "email":
			profile.Email = telecom.Get("value").String()
		case "phone":
			profile.WhatsAppNumber = telecom.Get("value").String()
		}
	}

	if address := resource.Get("address.0"); address.Exists() {
		profile.HomeAddress = address.Get("text").String()
		if profile.HomeAddress == "" {
			profile.HomeAddress = address.Get("line.0").String()
		}
	}
	return profile
}

func buildHumanName(resource gjson.Result) string {
	name := resource.Get("name.0")
	if !name.Exists() {
		return ""
	}
	if text := name.Get("text").String(); text != "" {
		return text
	}

	fullname := ""
	for _, given := range name.Get("given").Array() {
		if fullname != "" {
			fullname += " "
		}
		fullname += given.String()
	}
	if family := name.Get("family").String(); family != "" {
		if fullname != "" {
			fullname += " "
		}
		fullname += family
	}
	return fullname
}
