package models

import "time"

// Meeting is the descriptor returned by the external meeting provisioner.
// It is embedded in the owning Booking and never mutated elsewhere.
type Meeting struct {
	ID              string    `bson:"id" json:"id"`
	Topic           string    `bson:"topic" json:"topic"`
	JoinURL         string    `bson:"joinUrl" json:"joinUrl"`
	HostURL         string    `bson:"hostUrl,omitempty" json:"hostUrl,omitempty"`
	Password        string    `bson:"password,omitempty" json:"password,omitempty"`
	StartTime       time.Time `bson:"startTime" json:"startTime"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
}
