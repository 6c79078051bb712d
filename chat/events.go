package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/linesmerrill/legal-chat-api/models"
)

// Inbound event names
const (
	EventIdentify    = "identify"
	EventJoinRoom    = "joinRoom"
	EventLeaveRoom   = "leaveRoom"
	EventSendMessage = "sendMessage"
	EventTyping      = "typing"
	EventDisconnect  = "disconnect"
)

// Outbound event names
const (
	EventRoomHistory     = "roomHistory"
	EventMemberJoined    = "memberJoined"
	EventRoomCreated     = "roomCreated"
	EventMessageReceived = "messageReceived"
	EventUserTyping      = "userTyping"
	EventMessageRejected = "messageRejected"
)

var validate = validator.New()

// Event is one inbound protocol event
type Event interface {
	Name() string
}

// Identify announces who is behind a connection
type Identify struct {
	UserID      string `json:"userId" validate:"required,excludes=_"`
	Role        string `json:"role" validate:"required,oneof=client lawyer"`
	DisplayName string `json:"displayName"`
}

// JoinRoom subscribes to a room, creating it if needed
type JoinRoom struct {
	LawyerID string `json:"lawyerId" validate:"omitempty,excludes=_"`
	ClientID string `json:"clientId" validate:"omitempty,excludes=_"`
	RoomID   string `json:"roomId" validate:"required"`
}

// LeaveRoom unsubscribes from a room channel
type LeaveRoom struct {
	RoomID string `json:"roomId" validate:"required"`
}

// SendMessage posts a message to a room
type SendMessage struct {
	RoomID                 string `json:"roomId" validate:"required"`
	Text                   string `json:"text" validate:"required"`
	MessageID              string `json:"messageId" validate:"required"`
	SenderName             string `json:"senderName"`
	IsDocumentNotification bool   `json:"isDocumentNotification"`
	DocumentID             string `json:"documentId"`
}

// Typing is a typing indicator for a room
type Typing struct {
	RoomID   string `json:"roomId" validate:"required"`
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// Disconnect is raised by the transport when a connection goes away
type Disconnect struct {
	Reason string `json:"reason"`
}

func (Identify) Name() string    { return EventIdentify }
func (JoinRoom) Name() string    { return EventJoinRoom }
func (LeaveRoom) Name() string   { return EventLeaveRoom }
func (SendMessage) Name() string { return EventSendMessage }
func (Typing) Name() string      { return EventTyping }
func (Disconnect) Name() string  { return EventDisconnect }

// RoomHistory is sent to a connection that just joined a room
type RoomHistory struct {
	RoomID   string               `json:"roomId"`
	Messages []models.ChatMessage `json:"messages"`
}

// MemberJoined tells existing room members who joined
type MemberJoined struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	RoomID      string `json:"roomId"`
}

// RoomCreated reaches the lawyer's personal channel when a client opens a room
type RoomCreated struct {
	RoomID     string    `json:"roomId"`
	ClientID   string    `json:"clientId"`
	ClientName string    `json:"clientName"`
	Timestamp  time.Time `json:"timestamp"`
}

// UserTyping is the typing indicator fanned out to the other room members
type UserTyping struct {
	RoomID      string `json:"roomId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	IsTyping    bool   `json:"isTyping"`
	Role        string `json:"role"`
}

// MessageRejected tells the sender a message was not accepted
type MessageRejected struct {
	RoomID    string `json:"roomId"`
	MessageID string `json:"messageId"`
	Reason    string `json:"reason"`
}

// DecodeEvent turns a named json payload into a typed event. Validation happens in
// the router so malformed payloads are logged in one place.
func DecodeEvent(name string, data []byte) (Event, error) {
	var ev Event
	switch name {
	case EventIdentify:
		ev = &Identify{}
	case EventJoinRoom:
		ev = &JoinRoom{}
	case EventLeaveRoom:
		ev = &LeaveRoom{}
	case EventSendMessage:
		ev = &SendMessage{}
	case EventTyping:
		ev = &Typing{}
	default:
		return nil, fmt.Errorf("decode %q: %w", name, ErrUnknownEvent)
	}
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, ev); err != nil {
			return nil, fmt.Errorf("decode %q: %w", name, err)
		}
	}
	return deref(ev), nil
}

func deref(ev Event) Event {
	switch e := ev.(type) {
	case *Identify:
		return *e
	case *JoinRoom:
		return *e
	case *LeaveRoom:
		return *e
	case *SendMessage:
		return *e
	case *Typing:
		return *e
	}
	return ev
}
