package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supplysight/sync-agent/internal/cache"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/internal/ws"
)

type StatusHandler struct {
	config   *config.Config
	wsClient *ws.Client
	cache    *cache.Cache
}

func NewStatusHandler(cfg *config.Config, wsClient *ws.Client, snapCache *cache.Cache) *StatusHandler {
	return &StatusHandler{
		config:   cfg,
		wsClient: wsClient,
		cache:    snapCache,
	}
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "running",
		"bridge_id":  h.config.BridgeID,
		"version":    h.config.Version,
		"websocket":  string(h.wsClient.State()),
		"cache_mode": string(h.cache.Mode()),
	})
}

// Reconnect revives the WebSocket feed after its retry budget ran out.
func (h *StatusHandler) Reconnect(c *gin.Context) {
	if err := h.wsClient.Connect(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "WebSocket reconnect initiated",
		"websocket": string(h.wsClient.State()),
	})
}
