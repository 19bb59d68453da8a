package store

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/supplysight/sync-agent/internal/backend"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/pkg/types"
)

func testManager() *Manager {
	cfg := &config.Config{
		BridgeID:        "test-bridge",
		RefreshInterval: time.Minute,
	}
	return NewManager(cfg, nil, nil, nil)
}

func mustRaw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return data
}

func TestHandleDataUpdate(t *testing.T) {
	m := testManager()
	now := time.Now()

	payload := types.DataUpdate{
		Agents: map[string]types.AgentStatus{
			"supplier":  {Name: "Supplier Coordination", Status: "active"},
			"inventory": {Name: "Inventory Management", Status: "idle"},
		},
		Inventory: &types.InventorySnapshot{TotalValue: 12500},
	}

	m.handleDataUpdate(types.Update{
		Type:      types.UpdateTypeData,
		Data:      mustRaw(t, payload),
		Timestamp: now,
	})

	agents, source, ts, ok := m.Agents.Get()
	if !ok {
		t.Fatal("Expected agents snapshot to be set")
	}
	if source != SourceLive {
		t.Errorf("Expected source live, got %s", source)
	}
	if !ts.Equal(now) {
		t.Errorf("Expected timestamp %v, got %v", now, ts)
	}

	// Map keys come back as a stable, key-ordered list.
	if len(agents) != 2 {
		t.Fatalf("Expected 2 agents, got %d", len(agents))
	}
	if agents[0].Name != "Inventory Management" || agents[1].Name != "Supplier Coordination" {
		t.Errorf("Expected key-ordered agents, got [%s %s]", agents[0].Name, agents[1].Name)
	}

	inv, _, _, ok := m.Inventory.Get()
	if !ok {
		t.Fatal("Expected inventory snapshot to be set")
	}
	if inv.TotalValue != 12500 {
		t.Errorf("Expected total value 12500, got %v", inv.TotalValue)
	}

	// Sections absent from the push stay untouched.
	if _, _, _, ok := m.Demand.Get(); ok {
		t.Error("Expected demand snapshot to remain unset")
	}
}

func TestHandleDataUpdateStaleFrame(t *testing.T) {
	m := testManager()
	now := time.Now()

	m.Inventory.Apply(types.InventorySnapshot{TotalValue: 200}, SourceLive, now)

	payload := types.DataUpdate{
		Inventory: &types.InventorySnapshot{TotalValue: 100},
	}
	m.handleDataUpdate(types.Update{
		Type:      types.UpdateTypeData,
		Data:      mustRaw(t, payload),
		Timestamp: now.Add(-time.Second),
	})

	inv, _, _, _ := m.Inventory.Get()
	if inv.TotalValue != 200 {
		t.Errorf("Expected stale frame to be rejected, got total value %v", inv.TotalValue)
	}
}

func TestHandleDataUpdateMalformed(t *testing.T) {
	m := testManager()

	m.handleDataUpdate(types.Update{
		Type: types.UpdateTypeData,
		Data: json.RawMessage(`{broken`),
	})

	if _, _, _, ok := m.Agents.Get(); ok {
		t.Error("Expected malformed payload to be dropped")
	}
}

func TestHandleAgentUpdate(t *testing.T) {
	m := testManager()
	now := time.Now()

	m.Agents.Apply([]types.AgentStatus{
		{Name: "Inventory Management", Status: "active"},
		{Name: "Demand Forecasting", Status: "active"},
	}, SourceLive, now)

	m.handleAgentUpdate(types.Update{
		Type:      types.UpdateTypeAgent,
		Data:      mustRaw(t, types.AgentUpdate{AgentID: "inventory", Status: "stopped"}),
		Timestamp: now.Add(time.Second),
	})

	agents, _, _, _ := m.Agents.Get()
	if agents[0].Status != "stopped" {
		t.Errorf("Expected inventory agent stopped, got '%s'", agents[0].Status)
	}
	if agents[1].Status != "active" {
		t.Errorf("Expected demand agent untouched, got '%s'", agents[1].Status)
	}
}

func TestHandleSimulationStartStop(t *testing.T) {
	m := testManager()
	now := time.Now()

	m.Agents.Apply([]types.AgentStatus{
		{Name: "Inventory Management", Status: "active"},
		{Name: "Route Optimization", Status: "idle"},
	}, SourceLive, now)
	m.Simulation.Apply(types.SimulationStatus{IsRunning: false}, SourceLive, now)

	m.handleSimulationStart(types.Update{
		Type:      types.UpdateTypeSimulationStart,
		Timestamp: now.Add(time.Second),
	})

	agents, _, _, _ := m.Agents.Get()
	for _, agent := range agents {
		if agent.Status != types.AgentStatusSimulating {
			t.Errorf("Expected agent '%s' simulating, got '%s'", agent.Name, agent.Status)
		}
	}

	if sim, _, _, _ := m.Simulation.Get(); !sim.IsRunning {
		t.Error("Expected simulation status running after start frame")
	}

	m.handleSimulationStop(types.Update{
		Type:      types.UpdateTypeSimulationStop,
		Timestamp: now.Add(2 * time.Second),
	})

	agents, _, _, _ = m.Agents.Get()
	for _, agent := range agents {
		if agent.Status != types.AgentStatusActive {
			t.Errorf("Expected agent '%s' active, got '%s'", agent.Name, agent.Status)
		}
	}

	if sim, _, _, _ := m.Simulation.Get(); sim.IsRunning {
		t.Error("Expected simulation status stopped after stop frame")
	}
}

func TestAgentKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "Inventory Management", expected: "inventory"},
		{name: "Demand Forecasting", expected: "demand"},
		{name: "Route Optimization", expected: "route"},
		{name: "Supplier Coordination", expected: "supplier"},
		{name: "", expected: ""},
	}

	for _, tt := range tests {
		if got := agentKey(tt.name); got != tt.expected {
			t.Errorf("agentKey(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func backendClientFor(t *testing.T, serverURL string) *backend.Client {
	t.Helper()

	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("failed to split host/port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("failed to parse port: %v", err)
	}

	return backend.NewClient(&config.Config{
		BridgeID:       "test-bridge",
		BackendHost:    host,
		BackendPort:    port,
		RequestTimeout: 2 * time.Second,
	})
}

func TestRefreshAllFallback(t *testing.T) {
	// Nothing listens here, so every fetch fails.
	client := backend.NewClient(&config.Config{
		BridgeID:       "test-bridge",
		BackendHost:    "127.0.0.1",
		BackendPort:    1,
		RequestTimeout: 500 * time.Millisecond,
	})

	cfg := &config.Config{RefreshInterval: time.Minute}
	m := NewManager(cfg, client, nil, nil)

	m.RefreshAll(context.Background())

	agents, source, _, ok := m.Agents.Get()
	if !ok {
		t.Fatal("Expected agents snapshot to be set from fallback")
	}
	if source != SourceFallback {
		t.Errorf("Expected source fallback, got %s", source)
	}
	if len(agents) != 4 {
		t.Errorf("Expected 4 fallback agents, got %d", len(agents))
	}

	chain, source, _, _ := m.Blockchain.Get()
	if source != SourceFallback {
		t.Errorf("Expected blockchain source fallback, got %s", source)
	}
	if chain.NetworkStatus != "disconnected" {
		t.Errorf("Expected network status 'disconnected', got '%s'", chain.NetworkStatus)
	}

	// Analytics, knowledge graph, simulation, and settings degrade the same
	// way as every other mirrored domain.
	if _, source, _, ok := m.Performance.Get(); !ok || source != SourceFallback {
		t.Errorf("Expected performance analytics fallback, got ok=%v source=%s", ok, source)
	}
	if graph, source, _, ok := m.KnowledgeGraph.Get(); !ok || source != SourceFallback {
		t.Errorf("Expected knowledge graph fallback, got ok=%v source=%s", ok, source)
	} else if graph.Nodes == nil || len(graph.Nodes) != 0 {
		t.Errorf("Expected empty non-nil node list, got %v", graph.Nodes)
	}
	if sim, source, _, ok := m.Simulation.Get(); !ok || source != SourceFallback {
		t.Errorf("Expected simulation status fallback, got ok=%v source=%s", ok, source)
	} else if sim.IsRunning {
		t.Error("Expected fallback simulation status to be not running")
	}
	if _, source, _, ok := m.Settings.Get(); !ok || source != SourceFallback {
		t.Errorf("Expected settings fallback, got ok=%v source=%s", ok, source)
	}
}

func TestRefreshAllLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/agents":
			json.NewEncoder(w).Encode([]types.AgentStatus{
				{Name: "Inventory Management", Status: "active", Efficiency: 91.5},
			})
		case "/api/metrics":
			json.NewEncoder(w).Encode(types.SystemMetrics{ActiveAgents: 4, SystemHealth: "good"})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{})
		}
	}))
	defer server.Close()

	cfg := &config.Config{RefreshInterval: time.Minute}
	m := NewManager(cfg, backendClientFor(t, server.URL), nil, nil)

	m.RefreshAll(context.Background())

	agents, source, _, ok := m.Agents.Get()
	if !ok {
		t.Fatal("Expected agents snapshot to be set")
	}
	if source != SourceLive {
		t.Errorf("Expected source live, got %s", source)
	}
	if len(agents) != 1 || agents[0].Efficiency != 91.5 {
		t.Errorf("Expected live agent with efficiency 91.5, got %+v", agents)
	}

	metrics, source, _, _ := m.Metrics.Get()
	if source != SourceLive {
		t.Errorf("Expected metrics source live, got %s", source)
	}
	if metrics.SystemHealth != "good" {
		t.Errorf("Expected system health 'good', got '%s'", metrics.SystemHealth)
	}

	if _, source, _, ok := m.Settings.Get(); !ok || source != SourceLive {
		t.Errorf("Expected settings source live, got ok=%v source=%s", ok, source)
	}
	if _, source, _, ok := m.Simulation.Get(); !ok || source != SourceLive {
		t.Errorf("Expected simulation source live, got ok=%v source=%s", ok, source)
	}
}

func TestFallbackDoesNotClobberLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/agents":
			json.NewEncoder(w).Encode([]types.AgentStatus{
				{Name: "Inventory Management", Status: "active"},
			})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{})
		}
	}))

	cfg := &config.Config{RefreshInterval: time.Minute}
	m := NewManager(cfg, backendClientFor(t, server.URL), nil, nil)

	// First refresh succeeds; then the backend goes away.
	m.RefreshAll(context.Background())
	server.Close()
	m.RefreshAll(context.Background())

	agents, source, _, _ := m.Agents.Get()
	if source != SourceLive {
		t.Errorf("Expected live data to survive a failed refresh, got source %s", source)
	}
	if len(agents) != 1 || agents[0].Name != "Inventory Management" {
		t.Errorf("Expected original live agents, got %+v", agents)
	}
}
