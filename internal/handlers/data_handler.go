package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supplysight/sync-agent/internal/store"
)

// DataHandler serves the synchronized domain snapshots. Every response
// carries the data's source (live, cache, fallback) and timestamp so clients
// can render an explicit offline indicator instead of mistaking placeholder
// content for real empty results.
type DataHandler struct {
	manager *store.Manager
}

func NewDataHandler(manager *store.Manager) *DataHandler {
	return &DataHandler{manager: manager}
}

func snapshotResponse[T any](c *gin.Context, snap *store.Snapshot[T]) {
	value, source, updatedAt, ok := snap.Get()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data synchronized yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       value,
		"source":     string(source),
		"updated_at": updatedAt.Format(time.RFC3339Nano),
	})
}

func (h *DataHandler) GetAgents(c *gin.Context) {
	snapshotResponse(c, h.manager.Agents)
}

func (h *DataHandler) GetMetrics(c *gin.Context) {
	snapshotResponse(c, h.manager.Metrics)
}

func (h *DataHandler) GetInventory(c *gin.Context) {
	snapshotResponse(c, h.manager.Inventory)
}

func (h *DataHandler) GetDemand(c *gin.Context) {
	snapshotResponse(c, h.manager.Demand)
}

func (h *DataHandler) GetRoutes(c *gin.Context) {
	snapshotResponse(c, h.manager.Routes)
}

func (h *DataHandler) GetSuppliers(c *gin.Context) {
	snapshotResponse(c, h.manager.Suppliers)
}

func (h *DataHandler) GetBlockchain(c *gin.Context) {
	snapshotResponse(c, h.manager.Blockchain)
}

func (h *DataHandler) GetActivities(c *gin.Context) {
	snapshotResponse(c, h.manager.Activities)
}

func (h *DataHandler) GetAlerts(c *gin.Context) {
	snapshotResponse(c, h.manager.Alerts)
}

func (h *DataHandler) GetPerformanceAnalytics(c *gin.Context) {
	snapshotResponse(c, h.manager.Performance)
}

func (h *DataHandler) GetTrendAnalytics(c *gin.Context) {
	snapshotResponse(c, h.manager.Trends)
}

func (h *DataHandler) GetKnowledgeGraphNodes(c *gin.Context) {
	graph, source, updatedAt, ok := h.manager.KnowledgeGraph.Get()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data synchronized yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       gin.H{"nodes": graph.Nodes},
		"source":     string(source),
		"updated_at": updatedAt.Format(time.RFC3339Nano),
	})
}

func (h *DataHandler) GetKnowledgeGraphRelationships(c *gin.Context) {
	graph, source, updatedAt, ok := h.manager.KnowledgeGraph.Get()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data synchronized yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       gin.H{"relationships": graph.Relationships},
		"source":     string(source),
		"updated_at": updatedAt.Format(time.RFC3339Nano),
	})
}

func (h *DataHandler) GetSimulationStatus(c *gin.Context) {
	snapshotResponse(c, h.manager.Simulation)
}

func (h *DataHandler) GetSettings(c *gin.Context) {
	snapshotResponse(c, h.manager.Settings)
}
