// Package chat is the real-time core of the consultation chat: it binds connections to
// identities, keeps rooms and their recent messages, drops duplicate sends and fans
// events out to room and personal channels.
package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/models"
)

// Reasons carried by messageRejected
const (
	RejectRoomNotFound   = "room_not_found"
	RejectNotParticipant = "not_participant"
)

// Router is the single entry point for protocol events. Transports call Dispatch from
// one goroutine per connection, so a connection's events are handled in order.
type Router struct {
	Hub       *Hub
	Registry  *Registry
	Rooms     *RoomStore
	Dedup     Deduplicator
	Store     Store
	Directory Directory

	now func() time.Time
}

// NewRouter wires the router. store and directory may be nil.
func NewRouter(hub *Hub, registry *Registry, rooms *RoomStore, dedup Deduplicator, store Store, directory Directory) *Router {
	return &Router{
		Hub:       hub,
		Registry:  registry,
		Rooms:     rooms,
		Dedup:     dedup,
		Store:     store,
		Directory: directory,
		now:       time.Now,
	}
}

// Stats is a point in time view of the live state
type Stats struct {
	ActiveConnections int `json:"activeConnections"`
	Rooms             int `json:"rooms"`
}

// Stats reports live state for health and the stats job
func (r *Router) Stats() Stats {
	return Stats{
		ActiveConnections: r.Registry.CountActive(),
		Rooms:             r.Rooms.Len(),
	}
}

// Dispatch handles ev for conn and never panics or returns an error; dropped events
// are logged.
func (r *Router) Dispatch(ctx context.Context, conn Conn, ev Event) {
	if ev == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Errorw("recovered from panic in chat handler",
				"connID", conn.ID(),
				"event", ev.Name(),
				"panic", rec,
			)
		}
	}()

	if err := r.Handle(ctx, conn, ev); err != nil {
		zap.S().Warnw("dropped chat event",
			"connID", conn.ID(),
			"event", ev.Name(),
			"error", err,
		)
	}
}

// Handle runs the transition for ev and returns why the event was dropped, if it was.
// A duplicate message is not an error.
func (r *Router) Handle(ctx context.Context, conn Conn, ev Event) error {
	switch e := ev.(type) {
	case Identify:
		return r.identify(ctx, conn, e)
	case JoinRoom:
		return r.joinRoom(ctx, conn, e)
	case LeaveRoom:
		return r.leaveRoom(conn, e)
	case SendMessage:
		return r.sendMessage(ctx, conn, e)
	case Typing:
		return r.typing(conn, e)
	case Disconnect:
		return r.disconnect(ctx, conn, e)
	default:
		return fmt.Errorf("%T: %w", ev, ErrUnknownEvent)
	}
}

func (r *Router) identify(ctx context.Context, conn Conn, e Identify) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid identify payload: %w", err)
	}
	id, ok := r.Registry.Register(conn, e.UserID, e.Role, e.DisplayName)
	if !ok {
		return fmt.Errorf("identify %s rejected by registry", conn.ID())
	}
	if id.Role == models.RoleLawyer {
		r.setOnline(ctx, id.UserID, true)
	}
	return nil
}

func (r *Router) joinRoom(ctx context.Context, conn Conn, e JoinRoom) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid joinRoom payload: %w", err)
	}
	id, ok := r.Registry.Lookup(conn.ID())
	if !ok {
		return ErrNotIdentified
	}

	var room *Room
	if e.LawyerID != "" && e.ClientID != "" {
		if RoomID(e.LawyerID, e.ClientID) != e.RoomID {
			return fmt.Errorf("join %s: %w", e.RoomID, ErrRoomMismatch)
		}
		if id.UserID != e.LawyerID && id.UserID != e.ClientID {
			return fmt.Errorf("join %s as %s: %w", e.RoomID, id.UserID, ErrNotParticipant)
		}
		room, _ = r.Rooms.GetOrCreate(ctx, e.LawyerID, e.ClientID)
		if !room.IsPair(e.LawyerID, e.ClientID) || !room.HasParticipant(id.UserID) {
			return fmt.Errorf("join %s as %s: %w", e.RoomID, id.UserID, ErrRoomMismatch)
		}
	} else {
		existing, ok := r.Rooms.Get(e.RoomID)
		if !ok {
			return fmt.Errorf("join %s: %w", e.RoomID, ErrRoomNotFound)
		}
		if !existing.HasParticipant(id.UserID) {
			return fmt.Errorf("join %s as %s: %w", e.RoomID, id.UserID, ErrNotParticipant)
		}
		room = existing
	}

	// subscribe and snapshot under the delivery lock so a concurrent send lands either
	// in the history or in the live stream, never both
	room.delivery.Lock()
	r.Hub.Subscribe(room.ID, conn)
	history := r.Rooms.ListRecent(room.ID)
	conn.Send(EventRoomHistory, RoomHistory{RoomID: room.ID, Messages: history})
	room.delivery.Unlock()

	r.Hub.Broadcast(room.ID, EventMemberJoined, MemberJoined{
		UserID:      id.UserID,
		Role:        id.Role,
		DisplayName: id.DisplayName,
		RoomID:      room.ID,
	}, conn.ID())

	if id.Role == models.RoleClient {
		r.Hub.Broadcast(PersonalChannel(room.LawyerID), EventRoomCreated, RoomCreated{
			RoomID:     room.ID,
			ClientID:   id.UserID,
			ClientName: id.DisplayName,
			Timestamp:  r.now(),
		})
	}

	zap.S().Debugw("joined chat room",
		"connID", conn.ID(),
		"roomId", room.ID,
		"userId", id.UserID,
		"historySize", len(history),
	)
	return nil
}

func (r *Router) leaveRoom(conn Conn, e LeaveRoom) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid leaveRoom payload: %w", err)
	}
	r.Hub.Unsubscribe(e.RoomID, conn.ID())
	return nil
}

func (r *Router) sendMessage(ctx context.Context, conn Conn, e SendMessage) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid sendMessage payload: %w", err)
	}
	id, ok := r.Registry.Lookup(conn.ID())
	if !ok {
		return ErrNotIdentified
	}

	// room checks run before dedup so a message dropped here can be retried once the
	// sender has joined
	room, ok := r.Rooms.Get(e.RoomID)
	if !ok {
		conn.Send(EventMessageRejected, MessageRejected{RoomID: e.RoomID, MessageID: e.MessageID, Reason: RejectRoomNotFound})
		return fmt.Errorf("send %s: %w", e.MessageID, ErrRoomNotFound)
	}
	if !room.HasParticipant(id.UserID) {
		conn.Send(EventMessageRejected, MessageRejected{RoomID: e.RoomID, MessageID: e.MessageID, Reason: RejectNotParticipant})
		return fmt.Errorf("send %s as %s: %w", e.MessageID, id.UserID, ErrNotParticipant)
	}

	senderName := e.SenderName
	if senderName == "" {
		senderName = id.DisplayName
	}
	msg := models.ChatMessage{
		RoomID:                 room.ID,
		MessageID:              e.MessageID,
		SenderID:               id.UserID,
		SenderRole:             id.Role,
		SenderName:             senderName,
		Text:                   e.Text,
		IsDocumentNotification: e.IsDocumentNotification,
		DocumentID:             e.DocumentID,
	}

	accepted, err := r.deliver(room, &msg)
	if err != nil || !accepted {
		return err
	}

	r.persist(ctx, msg)
	return nil
}

// deliver dedups, buffers and broadcasts msg while holding the room's delivery lock,
// which keeps broadcasts in arrival order per room.
func (r *Router) deliver(room *Room, msg *models.ChatMessage) (bool, error) {
	room.delivery.Lock()
	defer room.delivery.Unlock()

	if !r.Dedup.ShouldAccept(dedupKey(room.ID, msg.MessageID)) {
		zap.S().Debugw("duplicate chat message ignored",
			"roomId", room.ID,
			"messageId", msg.MessageID,
		)
		return false, nil
	}

	msg.Timestamp = r.now()
	if err := r.Rooms.AppendMessage(room.ID, *msg); err != nil {
		return false, err
	}

	r.Hub.Broadcast(room.ID, EventMessageReceived, *msg)
	if msg.SenderRole == models.RoleClient {
		// lawyer dashboards that have not joined the room channel yet
		r.Hub.Broadcast(PersonalChannel(room.LawyerID), EventMessageReceived, *msg, r.Hub.MemberIDs(room.ID)...)
	}
	return true, nil
}

// persist writes an accepted message. Failures are logged; live delivery already happened.
func (r *Router) persist(ctx context.Context, msg models.ChatMessage) {
	if r.Store == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	if err := r.Store.AppendMessageLog(ctx, msg.RoomID, msg); err != nil {
		zap.S().Errorw("failed to persist chat message",
			"roomId", msg.RoomID,
			"messageId", msg.MessageID,
			"error", err,
		)
	}
	if err := r.Store.RecordLastMessage(ctx, msg.RoomID, msg.Text, msg.Timestamp); err != nil {
		zap.S().Errorw("failed to update chat room summary",
			"roomId", msg.RoomID,
			"error", err,
		)
	}
}

func (r *Router) typing(conn Conn, e Typing) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid typing payload: %w", err)
	}
	id, ok := r.Registry.Lookup(conn.ID())
	if !ok {
		return ErrNotIdentified
	}
	if !r.Hub.IsSubscribed(e.RoomID, conn.ID()) {
		return fmt.Errorf("typing in %s: %w", e.RoomID, ErrNotParticipant)
	}

	r.Hub.Broadcast(e.RoomID, EventUserTyping, UserTyping{
		RoomID:      e.RoomID,
		UserID:      id.UserID,
		DisplayName: id.DisplayName,
		IsTyping:    e.IsTyping,
		Role:        id.Role,
	}, conn.ID())
	return nil
}

func (r *Router) disconnect(ctx context.Context, conn Conn, e Disconnect) error {
	id, ok := r.Registry.Unregister(conn.ID())
	if !ok {
		return nil
	}
	zap.S().Infow("chat connection closed",
		"connID", conn.ID(),
		"userId", id.UserID,
		"role", id.Role,
		"reason", e.Reason,
	)
	// a lawyer with another tab still open stays online
	if id.Role == models.RoleLawyer && r.Registry.ConnectionsForUser(id.UserID) == 0 {
		r.setOnline(ctx, id.UserID, false)
	}
	return nil
}

func (r *Router) setOnline(ctx context.Context, lawyerID string, online bool) {
	if r.Directory == nil {
		return
	}
	if err := r.Directory.SetOnline(context.WithoutCancel(ctx), lawyerID, online); err != nil {
		zap.S().Errorw("failed to update lawyer online status",
			"lawyerId", lawyerID,
			"online", online,
			"error", err,
		)
	}
}
