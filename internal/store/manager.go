package store

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/supplysight/sync-agent/internal/backend"
	"github.com/supplysight/sync-agent/internal/cache"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/internal/ws"
	"github.com/supplysight/sync-agent/pkg/types"
)

const snapshotTTL = 24 * time.Hour

// Manager keeps a typed mirror of every dashboard domain: an initial REST
// fetch per domain, WebSocket subscriptions for pushed updates, and a
// periodic refresh as a safety net. Fetch failures substitute the static
// fallback payloads, tagged as such so the API can surface an offline
// indicator instead of passing placeholders off as real data.
type Manager struct {
	cfg      *config.Config
	client   *backend.Client
	wsClient *ws.Client
	cache    *cache.Cache

	Agents         *Snapshot[[]types.AgentStatus]
	Metrics        *Snapshot[types.SystemMetrics]
	Inventory      *Snapshot[types.InventorySnapshot]
	Demand         *Snapshot[types.DemandSnapshot]
	Routes         *Snapshot[types.RouteSnapshot]
	Suppliers      *Snapshot[types.SupplierSnapshot]
	Blockchain     *Snapshot[types.BlockchainSnapshot]
	Activities     *Snapshot[[]types.Activity]
	Alerts         *Snapshot[[]types.Alert]
	Performance    *Snapshot[map[string]interface{}]
	Trends         *Snapshot[map[string]interface{}]
	KnowledgeGraph *Snapshot[types.KnowledgeGraphSnapshot]
	Simulation     *Snapshot[types.SimulationStatus]
	Settings       *Snapshot[types.Settings]

	unsubs []func()
}

func NewManager(cfg *config.Config, client *backend.Client, wsClient *ws.Client, snapCache *cache.Cache) *Manager {
	return &Manager{
		cfg:      cfg,
		client:   client,
		wsClient: wsClient,
		cache:    snapCache,

		Agents:         NewSnapshot[[]types.AgentStatus](),
		Metrics:        NewSnapshot[types.SystemMetrics](),
		Inventory:      NewSnapshot[types.InventorySnapshot](),
		Demand:         NewSnapshot[types.DemandSnapshot](),
		Routes:         NewSnapshot[types.RouteSnapshot](),
		Suppliers:      NewSnapshot[types.SupplierSnapshot](),
		Blockchain:     NewSnapshot[types.BlockchainSnapshot](),
		Activities:     NewSnapshot[[]types.Activity](),
		Alerts:         NewSnapshot[[]types.Alert](),
		Performance:    NewSnapshot[map[string]interface{}](),
		Trends:         NewSnapshot[map[string]interface{}](),
		KnowledgeGraph: NewSnapshot[types.KnowledgeGraphSnapshot](),
		Simulation:     NewSnapshot[types.SimulationStatus](),
		Settings:       NewSnapshot[types.Settings](),
	}
}

// Start seeds state, subscribes to the push feed, and blocks refreshing
// periodically until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	m.seedFromCache()
	m.RefreshAll(ctx)
	m.subscribe()

	ticker := time.NewTicker(m.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.unsubscribeAll()
			return nil
		case <-ticker.C:
			m.RefreshAll(ctx)
		}
	}
}

func (m *Manager) subscribe() {
	m.unsubs = append(m.unsubs,
		m.wsClient.Subscribe(types.UpdateTypeData, m.handleDataUpdate),
		m.wsClient.Subscribe(types.UpdateTypeAgent, m.handleAgentUpdate),
		m.wsClient.Subscribe(types.UpdateTypeSimulationStart, m.handleSimulationStart),
		m.wsClient.Subscribe(types.UpdateTypeSimulationStop, m.handleSimulationStop),
	)
}

func (m *Manager) unsubscribeAll() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
}

// RefreshAll fetches every domain once. Each domain degrades independently:
// one failing endpoint does not block the others.
func (m *Manager) RefreshAll(ctx context.Context) {
	now := time.Now()

	if agents, err := m.client.GetAgents(ctx); err != nil {
		log.Printf("Agents fetch failed: %v", err)
		m.Agents.Apply(backend.FallbackAgents(), SourceFallback, now)
	} else {
		m.applyAgents(agents, now)
	}

	if metrics, err := m.client.GetMetrics(ctx); err != nil {
		log.Printf("Metrics fetch failed: %v", err)
		m.Metrics.Apply(*backend.FallbackMetrics(), SourceFallback, now)
	} else if m.Metrics.Apply(*metrics, SourceLive, now) {
		m.persist("metrics", *metrics)
	}

	if inv, err := m.client.GetInventory(ctx); err != nil {
		log.Printf("Inventory fetch failed: %v", err)
		m.Inventory.Apply(*backend.FallbackInventory(), SourceFallback, now)
	} else if m.Inventory.Apply(*inv, SourceLive, now) {
		m.persist("inventory", *inv)
	}

	if demand, err := m.client.GetDemand(ctx); err != nil {
		log.Printf("Demand fetch failed: %v", err)
		m.Demand.Apply(*backend.FallbackDemand(), SourceFallback, now)
	} else if m.Demand.Apply(*demand, SourceLive, now) {
		m.persist("demand", *demand)
	}

	if routes, err := m.client.GetRoutes(ctx); err != nil {
		log.Printf("Routes fetch failed: %v", err)
		m.Routes.Apply(*backend.FallbackRoutes(), SourceFallback, now)
	} else if m.Routes.Apply(*routes, SourceLive, now) {
		m.persist("routes", *routes)
	}

	if suppliers, err := m.client.GetSuppliers(ctx); err != nil {
		log.Printf("Suppliers fetch failed: %v", err)
		m.Suppliers.Apply(*backend.FallbackSuppliers(), SourceFallback, now)
	} else if m.Suppliers.Apply(*suppliers, SourceLive, now) {
		m.persist("suppliers", *suppliers)
	}

	if chain, err := m.client.GetBlockchain(ctx); err != nil {
		log.Printf("Blockchain fetch failed: %v", err)
		m.Blockchain.Apply(*backend.FallbackBlockchain(), SourceFallback, now)
	} else if m.Blockchain.Apply(*chain, SourceLive, now) {
		m.persist("blockchain", *chain)
	}

	if activities, err := m.client.GetActivities(ctx); err != nil {
		log.Printf("Activities fetch failed: %v", err)
		m.Activities.Apply(backend.FallbackActivities(), SourceFallback, now)
	} else if m.Activities.Apply(activities, SourceLive, now) {
		m.persist("activities", activities)
	}

	if alerts, err := m.client.GetAlerts(ctx); err != nil {
		log.Printf("Alerts fetch failed: %v", err)
		m.Alerts.Apply(backend.FallbackAlerts(), SourceFallback, now)
	} else if m.Alerts.Apply(alerts, SourceLive, now) {
		m.persist("alerts", alerts)
	}

	if perf, err := m.client.GetPerformanceAnalytics(ctx); err != nil {
		log.Printf("Performance analytics fetch failed: %v", err)
		m.Performance.Apply(backend.FallbackAnalytics(), SourceFallback, now)
	} else if m.Performance.Apply(perf, SourceLive, now) {
		m.persist("analytics-performance", perf)
	}

	if trends, err := m.client.GetTrendAnalytics(ctx); err != nil {
		log.Printf("Trend analytics fetch failed: %v", err)
		m.Trends.Apply(backend.FallbackAnalytics(), SourceFallback, now)
	} else if m.Trends.Apply(trends, SourceLive, now) {
		m.persist("analytics-trends", trends)
	}

	// Nodes and relationships are mirrored as one unit so the graph stays
	// internally consistent.
	nodes, nodesErr := m.client.GetKnowledgeGraphNodes(ctx)
	rels, relsErr := m.client.GetKnowledgeGraphRelationships(ctx)
	if nodesErr != nil || relsErr != nil {
		log.Printf("Knowledge graph fetch failed: nodes=%v relationships=%v", nodesErr, relsErr)
		m.KnowledgeGraph.Apply(*backend.FallbackKnowledgeGraph(), SourceFallback, now)
	} else {
		graph := types.KnowledgeGraphSnapshot{Nodes: nodes, Relationships: rels}
		if m.KnowledgeGraph.Apply(graph, SourceLive, now) {
			m.persist("knowledge-graph", graph)
		}
	}

	if sim, err := m.client.GetSimulationStatus(ctx); err != nil {
		log.Printf("Simulation status fetch failed: %v", err)
		m.Simulation.Apply(*backend.FallbackSimulation(), SourceFallback, now)
	} else if m.Simulation.Apply(*sim, SourceLive, now) {
		m.persist("simulation", *sim)
	}

	if settings, err := m.client.GetSettings(ctx); err != nil {
		log.Printf("Settings fetch failed: %v", err)
		m.Settings.Apply(backend.FallbackSettings(), SourceFallback, now)
	} else if m.Settings.Apply(settings, SourceLive, now) {
		m.persist("settings", settings)
	}
}

func (m *Manager) applyAgents(agents []types.AgentStatus, ts time.Time) {
	if m.Agents.Apply(agents, SourceLive, ts) {
		m.persist("agents", agents)
	}
}

func (m *Manager) persist(key string, value interface{}) {
	if m.cache != nil {
		m.cache.Set("snapshot:"+key, value, snapshotTTL)
	}
}

func (m *Manager) seedFromCache() {
	if m.cache == nil {
		return
	}

	// Cached snapshots are stale by definition; stamp them with the zero
	// time's successor so any real update wins.
	ts := time.Unix(0, 1)

	var agents []types.AgentStatus
	if m.cache.Get("snapshot:agents", &agents) {
		m.Agents.Apply(agents, SourceCache, ts)
	}
	var metrics types.SystemMetrics
	if m.cache.Get("snapshot:metrics", &metrics) {
		m.Metrics.Apply(metrics, SourceCache, ts)
	}
	var inv types.InventorySnapshot
	if m.cache.Get("snapshot:inventory", &inv) {
		m.Inventory.Apply(inv, SourceCache, ts)
	}
	var demand types.DemandSnapshot
	if m.cache.Get("snapshot:demand", &demand) {
		m.Demand.Apply(demand, SourceCache, ts)
	}
	var routes types.RouteSnapshot
	if m.cache.Get("snapshot:routes", &routes) {
		m.Routes.Apply(routes, SourceCache, ts)
	}
	var suppliers types.SupplierSnapshot
	if m.cache.Get("snapshot:suppliers", &suppliers) {
		m.Suppliers.Apply(suppliers, SourceCache, ts)
	}
	var chain types.BlockchainSnapshot
	if m.cache.Get("snapshot:blockchain", &chain) {
		m.Blockchain.Apply(chain, SourceCache, ts)
	}
	var perf map[string]interface{}
	if m.cache.Get("snapshot:analytics-performance", &perf) {
		m.Performance.Apply(perf, SourceCache, ts)
	}
	var trends map[string]interface{}
	if m.cache.Get("snapshot:analytics-trends", &trends) {
		m.Trends.Apply(trends, SourceCache, ts)
	}
	var graph types.KnowledgeGraphSnapshot
	if m.cache.Get("snapshot:knowledge-graph", &graph) {
		m.KnowledgeGraph.Apply(graph, SourceCache, ts)
	}
	var sim types.SimulationStatus
	if m.cache.Get("snapshot:simulation", &sim) {
		m.Simulation.Apply(sim, SourceCache, ts)
	}
	var settings types.Settings
	if m.cache.Get("snapshot:settings", &settings) {
		m.Settings.Apply(settings, SourceCache, ts)
	}
}

func (m *Manager) handleDataUpdate(update types.Update) {
	var payload types.DataUpdate
	if err := json.Unmarshal(update.Data, &payload); err != nil {
		log.Printf("Dropping malformed data_update payload: %v", err)
		return
	}

	ts := update.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	if payload.Agents != nil {
		m.applyAgents(flattenAgents(payload.Agents), ts)
	}
	if payload.Inventory != nil && m.Inventory.Apply(*payload.Inventory, SourceLive, ts) {
		m.persist("inventory", *payload.Inventory)
	}
	if payload.Demand != nil && m.Demand.Apply(*payload.Demand, SourceLive, ts) {
		m.persist("demand", *payload.Demand)
	}
	if payload.Routes != nil && m.Routes.Apply(*payload.Routes, SourceLive, ts) {
		m.persist("routes", *payload.Routes)
	}
	if payload.Suppliers != nil && m.Suppliers.Apply(*payload.Suppliers, SourceLive, ts) {
		m.persist("suppliers", *payload.Suppliers)
	}
	if payload.Blockchain != nil && m.Blockchain.Apply(*payload.Blockchain, SourceLive, ts) {
		m.persist("blockchain", *payload.Blockchain)
	}
}

func (m *Manager) handleAgentUpdate(update types.Update) {
	var payload types.AgentUpdate
	if err := json.Unmarshal(update.Data, &payload); err != nil {
		log.Printf("Dropping malformed agent_update payload: %v", err)
		return
	}

	ts := update.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	m.Agents.Update(ts, func(agents []types.AgentStatus) []types.AgentStatus {
		patched := make([]types.AgentStatus, len(agents))
		copy(patched, agents)
		for i := range patched {
			if agentKey(patched[i].Name) == payload.AgentID {
				patched[i].Status = payload.Status
				patched[i].LastActivity = ts
			}
		}
		return patched
	})
}

func (m *Manager) handleSimulationStart(update types.Update) {
	m.setAllAgentStatuses(update, types.AgentStatusSimulating)
	m.setSimulationRunning(update, true)
}

func (m *Manager) handleSimulationStop(update types.Update) {
	m.setAllAgentStatuses(update, types.AgentStatusActive)
	m.setSimulationRunning(update, false)
}

func (m *Manager) setSimulationRunning(update types.Update, running bool) {
	ts := update.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	m.Simulation.Update(ts, func(sim types.SimulationStatus) types.SimulationStatus {
		sim.IsRunning = running
		return sim
	})
}

func (m *Manager) setAllAgentStatuses(update types.Update, status string) {
	ts := update.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	m.Agents.Update(ts, func(agents []types.AgentStatus) []types.AgentStatus {
		patched := make([]types.AgentStatus, len(agents))
		copy(patched, agents)
		for i := range patched {
			patched[i].Status = status
		}
		return patched
	})
}

// flattenAgents converts the backend's keyed agent map into the list shape
// the REST endpoint uses, ordered by key for stable output.
func flattenAgents(agents map[string]types.AgentStatus) []types.AgentStatus {
	keys := make([]string, 0, len(agents))
	for key := range agents {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	list := make([]types.AgentStatus, 0, len(agents))
	for _, key := range keys {
		list = append(list, agents[key])
	}
	return list
}

// agentKey maps a display name to the backend's agent identifier, e.g.
// "Inventory Management" -> "inventory".
func agentKey(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
