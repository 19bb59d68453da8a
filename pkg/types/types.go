package types

import "time"

// Agent status values reported by the backend.
const (
	AgentStatusActive     = "active"
	AgentStatusIdle       = "idle"
	AgentStatusStopped    = "stopped"
	AgentStatusRestarting = "restarting"
	AgentStatusSimulating = "simulating"
	AgentStatusConnecting = "connecting"
)

type AgentStatus struct {
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	Efficiency     float64   `json:"efficiency"`
	TasksCompleted int       `json:"tasks_completed"`
	LastActivity   time.Time `json:"last_activity"`
	Uptime         string    `json:"uptime"`
}

type SystemMetrics struct {
	ActiveAgents           int     `json:"active_agents"`
	TotalInventoryValue    float64 `json:"total_inventory_value"`
	PendingOrders          int     `json:"pending_orders"`
	ActiveRoutes           int     `json:"active_routes"`
	BlockchainTransactions int     `json:"blockchain_transactions"`
	SystemHealth           string  `json:"system_health"`
}

type InventoryItem struct {
	WarehouseID  string    `json:"warehouse_id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	ReorderPoint int       `json:"reorder_point"`
	UnitPrice    float64   `json:"unit_price"`
	LastUpdated  time.Time `json:"last_updated"`
}

// InventorySnapshot mirrors the backend's /inventory response shape.
type InventorySnapshot struct {
	Warehouses    []string        `json:"warehouses"`
	Products      []InventoryItem `json:"products"`
	TotalValue    float64         `json:"total_value"`
	LowStockItems []InventoryItem `json:"low_stock_items"`
}

type DemandForecast struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name,omitempty"`
	ForecastPeriod  string  `json:"forecast_period"`
	PredictedDemand int     `json:"predicted_demand"`
	ConfidenceScore float64 `json:"confidence_score"`
	SeasonalFactor  float64 `json:"seasonal_factor"`
	Trend           string  `json:"trend"`
}

type DemandSnapshot struct {
	Forecasts []DemandForecast `json:"forecasts"`
	Accuracy  float64          `json:"accuracy"`
	Trends    []DemandForecast `json:"trends,omitempty"`
}

type RouteOptimization struct {
	RouteID         string   `json:"route_id"`
	WarehouseID     string   `json:"warehouse_id"`
	Destinations    []string `json:"destinations"`
	TotalDistance   float64  `json:"total_distance"`
	EstimatedTime   float64  `json:"estimated_time"`
	EfficiencyScore float64  `json:"efficiency_score"`
	CostSavings     float64  `json:"cost_savings"`
}

type RouteSnapshot struct {
	ActiveRoutes   []RouteOptimization `json:"active_routes"`
	OptimizedToday int                 `json:"optimized_today"`
	TotalSavings   float64             `json:"total_savings"`
}

type SupplierInfo struct {
	SupplierID       string  `json:"supplier_id"`
	Name             string  `json:"name"`
	ReliabilityScore float64 `json:"reliability_score"`
	LeadTimeDays     int     `json:"lead_time_days"`
	CostPerUnit      float64 `json:"cost_per_unit"`
	QualityRating    float64 `json:"quality_rating"`
	ActiveOrders     int     `json:"active_orders"`
}

type SupplierSnapshot struct {
	Suppliers     []SupplierInfo `json:"suppliers"`
	ActiveOrders  int            `json:"active_orders"`
	PendingQuotes int            `json:"pending_quotes"`
}

type BlockchainTransaction struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
	Status        string    `json:"status"`
	AgentID       string    `json:"agent_id"`
}

type BlockchainSnapshot struct {
	Transactions  []BlockchainTransaction `json:"transactions"`
	WalletBalance float64                 `json:"wallet_balance"`
	NetworkStatus string                  `json:"network_status"`
}

type Activity struct {
	Time   string `json:"time"`
	Action string `json:"action"`
	Agent  string `json:"agent"`
	Type   string `json:"type"`
}

type Alert struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type KnowledgeGraphNode struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Name       string                 `json:"name"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

type KnowledgeGraphRelationship struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// KnowledgeGraphSnapshot is the mirrored graph structure: nodes and
// relationships fetched together so they stay consistent with each other.
type KnowledgeGraphSnapshot struct {
	Nodes         []KnowledgeGraphNode         `json:"nodes"`
	Relationships []KnowledgeGraphRelationship `json:"relationships"`
}

type KnowledgeGraphQueryResult struct {
	Query         string                   `json:"query"`
	Results       []map[string]interface{} `json:"results"`
	ExecutionTime string                   `json:"execution_time,omitempty"`
}

type SimulationStatus struct {
	IsRunning       bool                   `json:"is_running"`
	CurrentScenario string                 `json:"current_scenario"`
	Progress        float64                `json:"progress"`
	TotalCycles     int                    `json:"total_cycles,omitempty"`
	CompletedCycles int                    `json:"completed_cycles,omitempty"`
	StartTime       *time.Time             `json:"start_time,omitempty"`
	Results         map[string]interface{} `json:"results,omitempty"`
}

type SimulationResults struct {
	Scenario            string                 `json:"scenario"`
	Duration            string                 `json:"duration"`
	OrdersProcessed     int                    `json:"orders_processed"`
	TransactionsDone    int                    `json:"transactions_completed"`
	OptimizationSavings float64                `json:"optimization_savings"`
	AgentPerformance    map[string]interface{} `json:"agent_performance,omitempty"`
	BlockchainMetrics   map[string]interface{} `json:"blockchain_metrics,omitempty"`
}

// Settings is intentionally free-form: the backend owns the schema and the
// dashboard passes sections through untouched.
type Settings map[string]interface{}

type CommunicationLogEntry struct {
	ID          string    `json:"id"`
	FromAgent   string    `json:"from_agent"`
	ToAgent     string    `json:"to_agent"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	MessageType string    `json:"message_type"`
}
