package models

import "time"

// ChatMessage holds the structure for the chatmessages collection in mongo. The same
// record is what room members receive on messageReceived.
type ChatMessage struct {
	RoomID                 string    `json:"roomId" bson:"roomId"`
	MessageID              string    `json:"messageId" bson:"messageId"`
	SenderID               string    `json:"senderId" bson:"senderId"`
	SenderRole             string    `json:"senderRole" bson:"senderRole"`
	SenderName             string    `json:"senderName" bson:"senderName"`
	Text                   string    `json:"text" bson:"text"`
	Timestamp              time.Time `json:"timestamp" bson:"timestamp"`
	IsDocumentNotification bool      `json:"isDocumentNotification,omitempty" bson:"isDocumentNotification,omitempty"`
	DocumentID             string    `json:"documentId,omitempty" bson:"documentId,omitempty"`
}
