package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/middleware"
	"github.com/classpad-app/classpad-backend/internal/service"
	ws "github.com/classpad-app/classpad-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the live scoreboard stream.
type WSHandler struct {
	rdb          *redis.Client
	classService *service.ClassService
	log          zerolog.Logger
	upgrader     websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, classService *service.ClassService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:          rdb,
		classService: classService,
		log:          log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
	}
}

// ScoreboardStream godoc
// WS /ws/v1/classes/:class_id/scoreboard
// Upgrades to WebSocket and forwards group score updates for one class as
// they land. The stream is one-way; client messages are read only to detect
// disconnects.
func (h *WSHandler) ScoreboardStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	classID := c.Param("class_id")
	if _, err := h.classService.GetClass(c.Request.Context(), classID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("user_id", claims.UserID).
		Str("class_id", classID).
		Logger()

	wsLog.Info().Msg("Scoreboard subscriber connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.ScoreboardChannel(classID))
	defer sub.Close()

	// Reader goroutine: the client never sends payloads, but reading is the
	// only way to observe the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Scoreboard subscriber disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				wsLog.Warn().Msg("Scoreboard subscription closed")
				return
			}
			var update service.ScoreUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				wsLog.Warn().Err(err).Msg("Invalid scoreboard payload")
				continue
			}
			event := ws.ScoreEvent{
				Event:     ws.EventScore,
				GroupName: update.GroupName,
				Stars:     update.Stars,
				Score:     update.Score,
			}
			if err := ws.WriteTyped(conn, event); err != nil {
				wsLog.Debug().Err(err).Msg("Scoreboard write failed")
				return
			}
		}
	}
}
