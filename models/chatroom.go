package models

import "time"

// Roles a chat participant can hold
const (
	RoleClient = "client"
	RoleLawyer = "lawyer"
)

// ChatRoom holds the structure for the chatrooms collection in mongo
type ChatRoom struct {
	ID             string    `json:"roomId" bson:"_id"`
	LawyerID       string    `json:"lawyerId" bson:"lawyerId"`
	ClientID       string    `json:"clientId" bson:"clientId"`
	ParticipantIDs []string  `json:"participantIds" bson:"participantIds"`
	LastMessage    string    `json:"lastMessage" bson:"lastMessage"`
	LastMessageAt  time.Time `json:"lastMessageAt" bson:"lastMessageAt"`
	IsActive       bool      `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// EndSessionResponse is returned once a room has been marked inactive
type EndSessionResponse struct {
	RoomID   string `json:"roomId"`
	IsActive bool   `json:"isActive"`
}
