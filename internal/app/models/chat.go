package models

// ChatSession is one assistant conversation thread owned by a practitioner.
// PatientID/EncounterID, when set, are injected as clinical context into
// every model call made within the session.
type ChatSession struct {
	ID             string `bson:"_id,omitempty"`
	PractitionerID string `bson:"practitionerId"`
	Title          string `bson:"title"`
	// TitleLocked is set once the practitioner renames the session, so
	// auto-titling never overwrites a chosen name.
	TitleLocked bool   `bson:"titleLocked"`
	PatientID   string `bson:"patientId,omitempty"`
	EncounterID string `bson:"encounterId,omitempty"`
	TimeModel   `bson:",inline"`
}

type ChatMessage struct {
	ID        string `bson:"_id,omitempty"`
	SessionID string `bson:"sessionId"`
	Role      string `bson:"role"`
	Text      string `bson:"text"`
	Channel   string `bson:"channel"`
	// ClientMessageID is the id the mobile client generated for its
	// optimistic UI entry; re-sends with the same id are deduplicated.
	ClientMessageID string `bson:"clientMessageId,omitempty"`
	// ReplyToID links an assistant turn back to the user turn it answers.
	ReplyToID string `bson:"replyToId,omitempty"`
	TimeModel `bson:",inline"`
}
