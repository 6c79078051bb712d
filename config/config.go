package config

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/models"
)

// Config holds the project config values
type Config struct {
	URL            string   `envconfig:"DB_URI" default:"mongodb://127.0.0.1:27017"`
	DatabaseName   string   `envconfig:"DB_NAME" default:"legal-chat"`
	BaseURL        string   `envconfig:"BASE_URL"`
	Port           string   `envconfig:"PORT" default:"8080"`
	Env            string   `envconfig:"ENV" default:"production"`
	RedisURL       string   `envconfig:"REDIS_URL"`
	DedupCapacity  int      `envconfig:"DEDUP_CAPACITY" default:"100"`
	RoomBufferSize int      `envconfig:"ROOM_BUFFER_SIZE" default:"50"`
	StatsSchedule  string   `envconfig:"STATS_SCHEDULE" default:"@every 1m"`
	AllowOrigins   []string `envconfig:"ALLOW_ORIGINS"`
}

// New sets up all config related services
func New() *Config {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		// fall back to the defaults, a bad variable must not keep the pod down
		fmt.Printf("failed to process env config: %v\n", err)
		c = Config{
			URL:            "mongodb://127.0.0.1:27017",
			DatabaseName:   "legal-chat",
			Port:           "8080",
			Env:            "production",
			DedupCapacity:  100,
			RoomBufferSize: 50,
			StatsSchedule:  "@every 1m",
		}
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(c.Env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return &c
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		resp.Response.Error = err.Error()
	}
	b, _ := json.Marshal(resp)
	_, _ = w.Write(b)
}
