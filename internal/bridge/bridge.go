package bridge

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/supplysight/sync-agent/internal/api"
	"github.com/supplysight/sync-agent/internal/approvals"
	"github.com/supplysight/sync-agent/internal/backend"
	"github.com/supplysight/sync-agent/internal/cache"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/internal/store"
	"github.com/supplysight/sync-agent/internal/ws"
)

// Bridge wires the whole daemon together: the backend REST client, the
// WebSocket feed, the synchronized store, the approval poller, the snapshot
// cache, and the local dashboard API.
type Bridge struct {
	config   *config.Config
	client   *backend.Client
	wsClient *ws.Client
	cache    *cache.Cache
	manager  *store.Manager
	poller   *approvals.Poller
	server   *http.Server

	wg sync.WaitGroup
}

func New(cfg *config.Config) *Bridge {
	client := backend.NewClient(cfg)
	wsClient := ws.NewClient(cfg)
	snapCache := cache.New(cfg)
	manager := store.NewManager(cfg, client, wsClient, snapCache)
	poller := approvals.NewPoller(cfg, client)

	router := api.NewRouter(cfg, client, wsClient, manager, poller, snapCache)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.ListenAddress, cfg.ListenPort),
		Handler: router,
	}

	return &Bridge{
		config:   cfg,
		client:   client,
		wsClient: wsClient,
		cache:    snapCache,
		manager:  manager,
		poller:   poller,
		server:   server,
	}
}

// Start runs the bridge until ctx is cancelled.
func (b *Bridge) Start(ctx context.Context) error {
	log.Printf("Starting sync bridge %s (backend: %s)", b.config.BridgeID, b.client.BaseURL())

	if err := b.client.GetHealth(ctx); err != nil {
		// Not fatal: the store degrades to fallback data and the WebSocket
		// client keeps retrying on its own schedule.
		log.Printf("Backend health check failed: %v (starting in degraded mode)", err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.manager.Start(ctx); err != nil {
			log.Printf("Store manager error: %v", err)
		}
	}()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.poller.Start(ctx); err != nil {
			log.Printf("Approval poller error: %v", err)
		}
	}()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.cache.StartHealthLoop(ctx)
	}()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		log.Printf("Local API listening on %s", b.server.Addr)
		if err := b.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("API server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down sync bridge...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server shutdown error: %v", err)
	}

	b.wsClient.Close()
	b.cache.Close()
	b.wg.Wait()

	return nil
}
