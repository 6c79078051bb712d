// Package docs Legal Chat API.
//
// Documentation of the legal consultation chat API. Realtime traffic runs over
// /socket.io/ and /ws; the routes below are the REST side.
//
//	Schemes: https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/legal-chat-api/api/handlers"
	"github.com/linesmerrill/legal-chat-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api and how many chat connections are identified.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/chat/rooms chat createRoom
// Gets the room for a lawyer and client, creating it if needed.
// responses:
//   200: chatRoomResponse
//   400: errorResponse

// swagger:parameters createRoom
type createRoomParamsWrapper struct {
	// in:body
	Body handlers.CreateRoomRequest
}

// A single chat room
// swagger:response chatRoomResponse
type chatRoomResponseWrapper struct {
	// in:body
	Body models.ChatRoom
}

// swagger:route GET /api/v1/chat/rooms chat roomsByParticipant
// Lists the rooms a participant takes part in, most recently active first.
// responses:
//   200: chatRoomsResponse

// swagger:parameters roomsByParticipant
type roomsByParticipantParamsWrapper struct {
	// in:query
	// required: true
	ParticipantID string `json:"participantId"`
	// in:query
	// enum: client,lawyer
	Role string `json:"role"`
}

// swagger:response chatRoomsResponse
type chatRoomsResponseWrapper struct {
	// in:body
	Body []models.ChatRoom
}

// swagger:route GET /api/v1/chat/rooms/{room_id}/messages chat roomMessages
// Gets one page of a room's message log, oldest first.
// responses:
//   200: chatMessagesResponse

// swagger:parameters roomMessages endSession
type roomIDParamsWrapper struct {
	// in:path
	RoomID string `json:"room_id"`
}

// swagger:response chatMessagesResponse
type chatMessagesResponseWrapper struct {
	// in:body
	Body struct {
		Data       []models.ChatMessage `json:"data"`
		Page       int                  `json:"page"`
		Limit      int                  `json:"limit"`
		TotalCount int64                `json:"totalCount"`
		TotalPages int                  `json:"totalPages"`
	}
}

// swagger:route PUT /api/v1/chat/rooms/{room_id}/end chat endSession
// Ends the consultation. The room and its messages are kept.
// responses:
//   200: endSessionResponse
//   500: errorResponse

// swagger:response endSessionResponse
type endSessionResponseWrapper struct {
	// in:body
	Body models.EndSessionResponse
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
