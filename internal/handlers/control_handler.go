package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supplysight/sync-agent/internal/backend"
	"github.com/supplysight/sync-agent/internal/store"
	"github.com/supplysight/sync-agent/pkg/types"
)

// ControlHandler proxies control operations straight to the backend. A
// successful write triggers an immediate resync so the local mirror reflects
// the new state before the next push arrives.
type ControlHandler struct {
	client  *backend.Client
	manager *store.Manager
}

func NewControlHandler(client *backend.Client, manager *store.Manager) *ControlHandler {
	return &ControlHandler{
		client:  client,
		manager: manager,
	}
}

func (h *ControlHandler) StartAgent(c *gin.Context) {
	agentID := c.Param("id")
	if err := h.client.StartAgent(c.Request.Context(), agentID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.manager.RefreshAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Agent started successfully",
		"agent_id": agentID,
	})
}

func (h *ControlHandler) StopAgent(c *gin.Context) {
	agentID := c.Param("id")
	if err := h.client.StopAgent(c.Request.Context(), agentID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.manager.RefreshAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Agent stopped successfully",
		"agent_id": agentID,
	})
}

func (h *ControlHandler) RestartAgent(c *gin.Context) {
	agentID := c.Param("id")
	if err := h.client.RestartAgent(c.Request.Context(), agentID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.manager.RefreshAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Agent restarted successfully",
		"agent_id": agentID,
	})
}

func (h *ControlHandler) GetAgentStatus(c *gin.Context) {
	status, err := h.client.GetAgentStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *ControlHandler) GetCommunicationLog(c *gin.Context) {
	entries, err := h.client.GetCommunicationLog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// --- Simulation ---

func (h *ControlHandler) GetSimulationResults(c *gin.Context) {
	results, err := h.client.GetSimulationResults(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *ControlHandler) StartSimulation(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.StartSimulation(c.Request.Context(), body.Name)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.manager.RefreshAll(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

func (h *ControlHandler) StopSimulation(c *gin.Context) {
	result, err := h.client.StopSimulation(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.manager.RefreshAll(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

// --- Settings ---

func (h *ControlHandler) UpdateSettings(c *gin.Context) {
	var settings types.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.UpdateSettings(c.Request.Context(), settings)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.manager.RefreshAll(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

func (h *ControlHandler) BackupSettings(c *gin.Context) {
	backup, err := h.client.BackupSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, backup)
}

// --- Knowledge graph ---

func (h *ControlHandler) QueryKnowledgeGraph(c *gin.Context) {
	var body struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.client.QueryKnowledgeGraph(c.Request.Context(), body.Query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
