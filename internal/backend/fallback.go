package backend

import "github.com/supplysight/sync-agent/pkg/types"

// Static fallback payloads served when the backend is unreachable. The store
// layer substitutes these and marks the snapshot as fallback-sourced, so the
// dashboard keeps rendering instead of blanking out. Payloads are rebuilt on
// each call to keep callers from mutating shared state.

func FallbackAgents() []types.AgentStatus {
	names := []string{
		"Inventory Management",
		"Demand Forecasting",
		"Route Optimization",
		"Supplier Coordination",
	}

	agents := make([]types.AgentStatus, 0, len(names))
	for _, name := range names {
		agents = append(agents, types.AgentStatus{
			Name:   name,
			Status: types.AgentStatusConnecting,
			Uptime: "unknown",
		})
	}
	return agents
}

func FallbackMetrics() *types.SystemMetrics {
	return &types.SystemMetrics{
		SystemHealth: "unknown",
	}
}

func FallbackInventory() *types.InventorySnapshot {
	return &types.InventorySnapshot{
		Warehouses:    []string{},
		Products:      []types.InventoryItem{},
		LowStockItems: []types.InventoryItem{},
	}
}

func FallbackDemand() *types.DemandSnapshot {
	return &types.DemandSnapshot{
		Forecasts: []types.DemandForecast{},
	}
}

func FallbackRoutes() *types.RouteSnapshot {
	return &types.RouteSnapshot{
		ActiveRoutes: []types.RouteOptimization{},
	}
}

func FallbackSuppliers() *types.SupplierSnapshot {
	return &types.SupplierSnapshot{
		Suppliers: []types.SupplierInfo{},
	}
}

func FallbackBlockchain() *types.BlockchainSnapshot {
	return &types.BlockchainSnapshot{
		Transactions:  []types.BlockchainTransaction{},
		NetworkStatus: "disconnected",
	}
}

func FallbackActivities() []types.Activity {
	return []types.Activity{}
}

func FallbackAnalytics() map[string]interface{} {
	return map[string]interface{}{}
}

func FallbackKnowledgeGraph() *types.KnowledgeGraphSnapshot {
	return &types.KnowledgeGraphSnapshot{
		Nodes:         []types.KnowledgeGraphNode{},
		Relationships: []types.KnowledgeGraphRelationship{},
	}
}

func FallbackSimulation() *types.SimulationStatus {
	return &types.SimulationStatus{}
}

func FallbackSettings() types.Settings {
	return types.Settings{}
}

func FallbackAlerts() []types.Alert {
	return []types.Alert{}
}
