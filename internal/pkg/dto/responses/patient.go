package responses

type PatientProfile struct {
	ID             string `json:"id"`
	Fullname       string `json:"fullname"`
	Email          string `json:"email,omitempty"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`
	Sex            string `json:"sex,omitempty"`
	BirthDate      string `json:"birth_date,omitempty"`
	HomeAddress    string `json:"home_address,omitempty"`
}

type PatientSummary struct {
	ID        string `json:"id"`
	Fullname  string `json:"fullname"`
	BirthDate string `json:"birth_date,omitempty"`
	Sex       string `json:"sex,omitempty"`
}

type Encounter struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Class       string `json:"class,omitempty"`
	Reason      string `json:"reason,omitempty"`
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`
}

type PatientAttachment struct {
	ObjectName   string `json:"object_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified"`
	URL          string `json:"url"`
}
