package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/supplysight/sync-agent/pkg/types"
)

// --- Agents ---

func (c *Client) GetAgents(ctx context.Context) ([]types.AgentStatus, error) {
	var agents []types.AgentStatus
	if err := c.get(ctx, "/api/agents", &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *Client) GetAgentStatus(ctx context.Context, agentID string) (*types.AgentStatus, error) {
	var status types.AgentStatus
	if err := c.get(ctx, fmt.Sprintf("/api/agents/%s/status", url.PathEscape(agentID)), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) StartAgent(ctx context.Context, agentID string) error {
	return c.controlAgent(ctx, agentID, "start")
}

func (c *Client) StopAgent(ctx context.Context, agentID string) error {
	return c.controlAgent(ctx, agentID, "stop")
}

func (c *Client) RestartAgent(ctx context.Context, agentID string) error {
	return c.controlAgent(ctx, agentID, "restart")
}

func (c *Client) controlAgent(ctx context.Context, agentID, action string) error {
	if agentID == "" {
		return fmt.Errorf("agent id is required")
	}
	path := fmt.Sprintf("/api/agents/%s/%s", url.PathEscape(agentID), action)
	return c.post(ctx, path, nil, nil)
}

func (c *Client) GetCommunicationLog(ctx context.Context) ([]types.CommunicationLogEntry, error) {
	var entries []types.CommunicationLogEntry
	if err := c.get(ctx, "/api/agents/communication-log", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// --- Dashboard domains ---

func (c *Client) GetInventory(ctx context.Context) (*types.InventorySnapshot, error) {
	var snap types.InventorySnapshot
	if err := c.get(ctx, "/api/inventory", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) GetDemand(ctx context.Context) (*types.DemandSnapshot, error) {
	var snap types.DemandSnapshot
	if err := c.get(ctx, "/api/demand", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) GetRoutes(ctx context.Context) (*types.RouteSnapshot, error) {
	var snap types.RouteSnapshot
	if err := c.get(ctx, "/api/routes", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) GetSuppliers(ctx context.Context) (*types.SupplierSnapshot, error) {
	var snap types.SupplierSnapshot
	if err := c.get(ctx, "/api/suppliers", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) GetBlockchain(ctx context.Context) (*types.BlockchainSnapshot, error) {
	var snap types.BlockchainSnapshot
	if err := c.get(ctx, "/api/blockchain", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) GetMetrics(ctx context.Context) (*types.SystemMetrics, error) {
	var metrics types.SystemMetrics
	if err := c.get(ctx, "/api/metrics", &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (c *Client) GetActivities(ctx context.Context) ([]types.Activity, error) {
	var activities []types.Activity
	if err := c.get(ctx, "/api/activities", &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *Client) GetAlerts(ctx context.Context) ([]types.Alert, error) {
	var alerts []types.Alert
	if err := c.get(ctx, "/api/alerts", &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *Client) GetHealth(ctx context.Context) error {
	var health struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/api/health", &health); err != nil {
		return err
	}
	if health.Status != "healthy" {
		return fmt.Errorf("backend reports status %q", health.Status)
	}
	return nil
}

// --- Settings ---

func (c *Client) GetSettings(ctx context.Context) (types.Settings, error) {
	var settings types.Settings
	if err := c.get(ctx, "/api/settings", &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, settings types.Settings) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := c.put(ctx, "/api/settings", settings, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) BackupSettings(ctx context.Context) (map[string]interface{}, error) {
	var backup map[string]interface{}
	if err := c.get(ctx, "/api/settings/backup", &backup); err != nil {
		return nil, err
	}
	return backup, nil
}

// --- Analytics ---

func (c *Client) GetPerformanceAnalytics(ctx context.Context) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := c.get(ctx, "/api/analytics/performance", &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) GetTrendAnalytics(ctx context.Context) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := c.get(ctx, "/api/analytics/trends", &data); err != nil {
		return nil, err
	}
	return data, nil
}

// --- Knowledge graph ---

func (c *Client) GetKnowledgeGraphNodes(ctx context.Context) ([]types.KnowledgeGraphNode, error) {
	var resp struct {
		Nodes []types.KnowledgeGraphNode `json:"nodes"`
	}
	if err := c.get(ctx, "/api/knowledge-graph/nodes", &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

func (c *Client) GetKnowledgeGraphRelationships(ctx context.Context) ([]types.KnowledgeGraphRelationship, error) {
	var resp struct {
		Relationships []types.KnowledgeGraphRelationship `json:"relationships"`
	}
	if err := c.get(ctx, "/api/knowledge-graph/relationships", &resp); err != nil {
		return nil, err
	}
	return resp.Relationships, nil
}

func (c *Client) QueryKnowledgeGraph(ctx context.Context, query string) (*types.KnowledgeGraphQueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	var result types.KnowledgeGraphQueryResult
	body := map[string]string{"query": query}
	if err := c.post(ctx, "/api/knowledge-graph/query", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Simulation ---

func (c *Client) GetSimulationStatus(ctx context.Context) (*types.SimulationStatus, error) {
	var status types.SimulationStatus
	if err := c.get(ctx, "/api/simulation/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) GetSimulationResults(ctx context.Context) (*types.SimulationResults, error) {
	var results types.SimulationResults
	if err := c.get(ctx, "/api/simulation/results", &results); err != nil {
		return nil, err
	}
	return &results, nil
}

func (c *Client) StartSimulation(ctx context.Context, scenario string) (map[string]interface{}, error) {
	if scenario == "" {
		scenario = "default"
	}
	var result map[string]interface{}
	body := map[string]string{"name": scenario}
	if err := c.post(ctx, "/api/simulation/start", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) StopSimulation(ctx context.Context) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := c.post(ctx, "/api/simulation/stop", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// --- Approvals ---

func (c *Client) GetPendingApprovals(ctx context.Context) ([]types.PendingApproval, error) {
	var approvals []types.PendingApproval
	if err := c.get(ctx, "/api/approvals/pending", &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

func (c *Client) ProcessApprovalAction(ctx context.Context, approvalID string, action types.ApprovalAction) error {
	if approvalID == "" {
		return fmt.Errorf("approval id is required")
	}
	if action.Action != "approve" && action.Action != "reject" {
		return fmt.Errorf("invalid approval action: %q", action.Action)
	}
	path := fmt.Sprintf("/api/approvals/%s/action", url.PathEscape(approvalID))
	return c.post(ctx, path, action, nil)
}
