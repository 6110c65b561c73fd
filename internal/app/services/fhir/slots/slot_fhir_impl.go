package slots

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

type slotFhirClient struct {
	BaseUrl string
}

func NewSlotFhirClient(baseUrl string) contracts.SlotFhirClient {
	return &slotFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceSlot),
	}
}

func (c *slotFhirClient) ListFreeSlotsByPractitionerAndDate(ctx context.Context, practitionerID, date string) ([]responses.Slot, error) {
	searchURL := fmt.Sprintf("%s?schedule.actor=Practitioner/%s&start=%s&status=%s&_sort=start",
		c.BaseUrl, practitionerID, date, constvars.FhirSlotStatusFree)

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
		return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceSlot)
	}

	if resp.StatusCode != constvars.StatusOK {
		diagnostics := gjson.GetBytes(body, "issue.0.diagnostics").String()
		return nil, exceptions.ErrSearchFHIRResource(fmt.Errorf("%s", diagnostics), constvars.ResourceSlot)
	}

	entries := gjson.GetBytes(body, "entry").Array()
	slots := make([]responses.Slot, 0, len(entries))
	for _, entry := range entries {
		resource := entry.Get("resource")
		slots = append(slots, responses.Slot{
			ID:     resource.Get("id").String(),
			Start:  resource.Get("start").String(),
			End:    resource.Get("end").String(),
			Status: resource.Get("status").String(),
		})
	}
	return slots, nil
}
