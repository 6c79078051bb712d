package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/api"
	"github.com/linesmerrill/legal-chat-api/chat"
	"github.com/linesmerrill/legal-chat-api/config"
	"github.com/linesmerrill/legal-chat-api/models"
)

var validate = validator.New()

var (
	errMissingParticipant = errors.New("missing participantId")
	errInvalidRole        = errors.New("role must be client or lawyer")
	errPairMismatch       = errors.New("room belongs to another lawyer and client")
)

// Chat exported for testing purposes
type Chat struct {
	History chat.History
	Rooms   *chat.RoomStore
}

// CreateRoomRequest is the body of the create room endpoint
type CreateRoomRequest struct {
	LawyerID string `json:"lawyerId" validate:"required,excludes=_"`
	ClientID string `json:"clientId" validate:"required,excludes=_"`
}

// CreateRoomHandler returns the room for a lawyer/client pair, creating it if needed
func (c Chat) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("lawyerId and clientId are required and may not contain _", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	room, created := c.Rooms.GetOrCreate(ctx, req.LawyerID, req.ClientID)
	if !room.IsPair(req.LawyerID, req.ClientID) {
		config.ErrorStatus("failed to create chat room", http.StatusConflict, w, errPairMismatch)
		return
	}
	zap.S().Debugw("create room requested",
		"roomId", room.ID,
		"created", created,
	)

	dbResp, err := c.History.Room(ctx, room.ID)
	if err != nil {
		config.ErrorStatus("failed to get chat room", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RoomsByParticipantHandler lists the rooms a user takes part in
func (c Chat) RoomsByParticipantHandler(w http.ResponseWriter, r *http.Request) {
	participantID := r.URL.Query().Get("participantId")
	if participantID == "" {
		config.ErrorStatus("query param participantId is required", http.StatusBadRequest, w, errMissingParticipant)
		return
	}
	role := r.URL.Query().Get("role")
	if role != "" && role != models.RoleClient && role != models.RoleLawyer {
		config.ErrorStatus("invalid role", http.StatusBadRequest, w, errInvalidRole)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.History.RoomsByParticipant(ctx, participantID, role)
	if err != nil {
		config.ErrorStatus("failed to get chat rooms", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.ChatRoom{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RoomMessagesHandler returns one page of a room's durable message log, oldest first
func (c Chat) RoomMessagesHandler(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["room_id"]
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || Limit <= 0 {
		Limit = 50
	}
	Page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || Page < 1 {
		Page = 1
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, totalCount, err := c.History.MessageLog(ctx, roomID, Page, Limit)
	if err != nil {
		config.ErrorStatus("failed to get chat messages", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.ChatMessage{}
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(Limit)))

	response := map[string]interface{}{
		"data":       dbResp,
		"page":       Page,
		"limit":      Limit,
		"totalCount": totalCount,
		"totalPages": totalPages,
	}

	b, err := json.Marshal(response)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EndSessionHandler marks a room inactive; its messages are kept
func (c Chat) EndSessionHandler(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["room_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.History.EndSession(ctx, roomID); err != nil {
		config.ErrorStatus("failed to end chat session", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Infow("chat session ended", "roomId", roomID)

	b, _ := json.Marshal(models.EndSessionResponse{RoomID: roomID, IsActive: false})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
