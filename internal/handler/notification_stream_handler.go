package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smitedu/institute-backend/internal/config"
	"github.com/smitedu/institute-backend/internal/middleware"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
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

// NotificationStreamHandler pushes broadcast notifications to connected
// clients over WebSocket. Every connection subscribes to the shared Redis
// channel that the fanout worker publishes to.
type NotificationStreamHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewNotificationStreamHandler creates a new NotificationStreamHandler.
func NewNotificationStreamHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *NotificationStreamHandler {
	return &NotificationStreamHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "notification_stream").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// NotificationStream godoc
// WS /ws/v1/notifications/stream?token=...
// Upgrades to WebSocket and forwards each broadcast notification as a
// JSON text frame until the client disconnects.
func (h *NotificationStreamHandler) NotificationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", claims.UserID).Logger()
	wsLog.Info().Msg("Client connected")

	ctx := c.Request.Context()
	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.NotificationChannel())
	defer pubsub.Close()

	// Drain reads so client close frames and pings are processed; the
	// stream itself is one-way.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				wsLog.Warn().Msg("Subscription channel closed")
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				wsLog.Debug().Msg("Client write failed, closing")
				return
			}
		case <-done:
			wsLog.Info().Msg("Client disconnected")
			return
		case <-ctx.Done():
			return
		}
	}
}
