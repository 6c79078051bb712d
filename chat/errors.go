package chat

import "errors"

var (
	// ErrRoomNotFound is returned when a message targets a room that is not in memory
	ErrRoomNotFound = errors.New("room not found")
	// ErrNotIdentified is returned for room events from a connection that never identified
	ErrNotIdentified = errors.New("connection has not identified")
	// ErrNotParticipant is returned when the identity is neither the lawyer nor the client of a room
	ErrNotParticipant = errors.New("user is not a participant of the room")
	// ErrRoomMismatch is returned when a joinRoom roomId does not match its lawyerId and clientId
	ErrRoomMismatch = errors.New("room id does not match participants")
	// ErrUnknownEvent is returned by DecodeEvent for event names the router does not handle
	ErrUnknownEvent = errors.New("unknown event")
)
