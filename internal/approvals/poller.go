package approvals

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/supplysight/sync-agent/internal/backend"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/pkg/types"
)

// Poller keeps the queue of pending agent approvals current. It polls the
// backend on a fixed interval, keeps only items still pending, and refreshes
// immediately after a successful approve/reject so the processed item drops
// out of the next snapshot without waiting for the tick.
type Poller struct {
	cfg    *config.Config
	client *backend.Client

	mu       sync.RWMutex
	pending  []types.PendingApproval
	lastPoll time.Time
	lastErr  error
}

func NewPoller(cfg *config.Config, client *backend.Client) *Poller {
	return &Poller{
		cfg:    cfg,
		client: client,
	}
}

// Start polls once immediately and then on every tick until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.Poll(ctx)

	ticker := time.NewTicker(p.cfg.ApprovalPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll fetches the queue once. A failed poll keeps the previous snapshot.
func (p *Poller) Poll(ctx context.Context) {
	approvals, err := p.client.GetPendingApprovals(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastPoll = time.Now()
	p.lastErr = err

	if err != nil {
		log.Printf("Approval poll failed: %v", err)
		return
	}

	pending := approvals[:0:0]
	for _, approval := range approvals {
		if approval.Status == types.ApprovalPending {
			pending = append(pending, approval)
		}
	}
	p.pending = pending
}

// Pending returns a copy of the current queue snapshot.
func (p *Poller) Pending() []types.PendingApproval {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]types.PendingApproval, len(p.pending))
	copy(out, p.pending)
	return out
}

// LastPoll reports when the queue was last fetched and the outcome.
func (p *Poller) LastPoll() (time.Time, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastPoll, p.lastErr
}

// Process submits an approve/reject decision and refreshes the queue on
// success. There is no optimistic removal: the item disappears when the
// backend confirms it is no longer pending.
func (p *Poller) Process(ctx context.Context, approvalID string, action types.ApprovalAction) error {
	if err := p.client.ProcessApprovalAction(ctx, approvalID, action); err != nil {
		return err
	}

	p.Poll(ctx)
	return nil
}
