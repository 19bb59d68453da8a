package types

import (
	"encoding/json"
	"time"
)

// WebSocket event types pushed by the backend.
const (
	UpdateTypeData            = "data_update"
	UpdateTypeAgent           = "agent_update"
	UpdateTypeSimulationStart = "simulation_start"
	UpdateTypeSimulationStop  = "simulation_stop"
)

// Update is the envelope for every inbound WebSocket frame. Data stays raw so
// each subscriber decodes only the portion it cares about.
type Update struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// DataUpdate is the payload of a data_update frame: a full refresh of every
// dashboard domain. Nil sections were not included in the push.
type DataUpdate struct {
	Agents     map[string]AgentStatus `json:"agents,omitempty"`
	Inventory  *InventorySnapshot     `json:"inventory,omitempty"`
	Demand     *DemandSnapshot        `json:"demand,omitempty"`
	Routes     *RouteSnapshot         `json:"routes,omitempty"`
	Suppliers  *SupplierSnapshot      `json:"suppliers,omitempty"`
	Blockchain *BlockchainSnapshot    `json:"blockchain,omitempty"`
}

// AgentUpdate is the payload of an agent_update frame.
type AgentUpdate struct {
	AgentID string `json:"agent_id"`
	Status  string `json:"status"`
}
