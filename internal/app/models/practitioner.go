package models

type PractitionerAccount struct {
	ID        string `bson:"_id,omitempty"`
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	Fullname  string `bson:"fullname"`
	Active    bool   `bson:"active"`
	TimeModel `bson:",inline"`
}
