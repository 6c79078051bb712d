package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/api"
	"github.com/linesmerrill/legal-chat-api/chat"
	"github.com/linesmerrill/legal-chat-api/config"
	"github.com/linesmerrill/legal-chat-api/databases"
	"github.com/linesmerrill/legal-chat-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Chat     *chat.Router
	History  chat.History
	Metrics  *api.MetricsCollector
	SocketIO *SocketIO

	dbHelper databases.DatabaseHelper
	client   databases.ClientHelper
}

// New creates a new mux router and all the routes. Without a chat router wired by
// Initialize it falls back to an in-memory one with no persistence.
func (a *App) New() *mux.Router {
	if a.Chat == nil {
		a.Chat = newChatRouter(&a.Config, nil, nil, chat.NewMemoryDedup(a.Config.DedupCapacity))
	}
	if a.Metrics == nil {
		a.Metrics = api.NewMetricsCollector(0)
	}

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware(a.Metrics))

	c := Chat{History: a.History, Rooms: a.Chat.Rooms}
	ws := NewWebSocket(a.Chat, a.Config.AllowOrigins)

	// healthchex
	r.HandleFunc("/health", a.healthCheckHandler).Methods("GET")

	r.HandleFunc("/ws", ws.ChatWebSocketHandler)
	if a.SocketIO != nil {
		r.PathPrefix("/socket.io/").Handler(a.SocketIO)
	}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.Middleware, api.TimeoutMiddleware(api.RequestTimeout))

	apiCreate.HandleFunc("/metrics/summary", a.metricsSummaryHandler).Methods("GET")

	if a.History != nil {
		apiCreate.HandleFunc("/chat/rooms", c.CreateRoomHandler).Methods("POST")
		apiCreate.HandleFunc("/chat/rooms", c.RoomsByParticipantHandler).Methods("GET")
		apiCreate.HandleFunc("/chat/rooms/{room_id}/messages", c.RoomMessagesHandler).Methods("GET")
		apiCreate.HandleFunc("/chat/rooms/{room_id}/end", c.EndSessionHandler).Methods("PUT")
	}

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Info("legal-chat-api has connected to the database")

	messages := databases.NewChatMessageDatabase(a.dbHelper)
	if err := messages.EnsureIndexes(ctx); err != nil {
		zap.S().Errorw("failed to ensure chat message indexes", "error", err)
	}

	store := chat.NewMongoStore(databases.NewChatRoomDatabase(a.dbHelper), messages)
	directory := chat.NewMongoDirectory(databases.NewLawyerDatabase(a.dbHelper))
	a.History = store
	a.Chat = newChatRouter(&a.Config, store, directory, newDeduplicator(&a.Config))

	a.SocketIO = NewSocketIO(a.Chat, a.Config.AllowOrigins)
	a.SocketIO.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Close stops the background servers and disconnects from the database
func (a *App) Close(ctx context.Context) {
	if a.SocketIO != nil {
		if err := a.SocketIO.Close(); err != nil {
			zap.S().Warnw("failed to close socket.io server", "error", err)
		}
	}
	if a.Metrics != nil {
		a.Metrics.Stop()
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func newChatRouter(conf *config.Config, store chat.Store, directory chat.Directory, dedup chat.Deduplicator) *chat.Router {
	hub := chat.NewHub()
	rooms := chat.NewRoomStore(conf.RoomBufferSize, store)
	return chat.NewRouter(hub, chat.NewRegistry(hub), rooms, dedup, store, directory)
}

// newDeduplicator shares the dedup window through redis when REDIS_URL is set
func newDeduplicator(conf *config.Config) chat.Deduplicator {
	if conf.RedisURL == "" {
		return chat.NewMemoryDedup(conf.DedupCapacity)
	}
	zap.S().Infow("using redis dedup cache", "ttl", chat.DefaultRedisDedupTTL)
	return chat.NewRedisDedup(chat.NewRedisPool(conf.RedisURL), chat.DefaultRedisDedupTTL)
}

func (a *App) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive:             true,
		ActiveConnections: a.Chat.Stats().ActiveConnections,
	})
	_, _ = io.WriteString(w, string(b))
}

func (a *App) metricsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	response := map[string]interface{}{
		"summary":       a.Metrics.Summary(),
		"slowestRoutes": a.Metrics.SlowestRoutes(limit),
		"chat":          a.Chat.Stats(),
	}

	b, err := json.Marshal(response)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
