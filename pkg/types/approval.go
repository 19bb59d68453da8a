package types

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
	ApprovalExpired  ApprovalStatus = "expired"
)

// PendingApproval is an action a backend agent wants a human to sign off on.
type PendingApproval struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	AgentID       string                 `json:"agent_id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Details       map[string]interface{} `json:"details,omitempty"`
	EstimatedCost *float64               `json:"estimated_cost,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	ExpiresAt     *time.Time             `json:"expires_at,omitempty"`
	Status        ApprovalStatus         `json:"status"`
}

type ApprovalAction struct {
	Action        string                 `json:"action"`
	Modifications map[string]interface{} `json:"modifications,omitempty"`
}
