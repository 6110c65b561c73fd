package responses

type Login struct {
	Token          string `json:"token"`
	PractitionerID string `json:"practitioner_id"`
	Fullname       string `json:"fullname"`
}
