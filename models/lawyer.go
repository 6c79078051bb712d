package models

import "time"

// Lawyer holds the fields of the lawyers collection the chat service touches. The
// rest of the profile is owned by the profile service. Empty ids and names are left
// out so a Lawyer can be used as a $set document for presence updates.
type Lawyer struct {
	ID       string    `json:"_id" bson:"_id,omitempty"`
	Name     string    `json:"name" bson:"name,omitempty"`
	IsOnline bool      `json:"isOnline" bson:"isOnline"`
	LastSeen time.Time `json:"lastSeen" bson:"lastSeen"`
}
