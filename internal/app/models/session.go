package models

import "time"

// LoginSession is the redis-backed auth session referenced by the JWT.
type LoginSession struct {
	SessionID      string    `json:"sessionId"`
	PractitionerID string    `json:"practitionerId"`
	Email          string    `json:"email"`
	Fullname       string    `json:"fullname"`
	ExpiresAt      time.Time `json:"expiresAt"`
}
