package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUpdateEnvelopeDecoding(t *testing.T) {
	frame := `{
		"type": "data_update",
		"data": {
			"agents": {
				"inventory": {"name": "Inventory Management", "status": "active", "efficiency": 94.2}
			},
			"inventory": {"total_value": 125000.5, "warehouses": ["wh-1", "wh-2"]}
		},
		"timestamp": "2026-08-30T12:00:00Z"
	}`

	var update Update
	if err := json.Unmarshal([]byte(frame), &update); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}

	if update.Type != UpdateTypeData {
		t.Errorf("Expected type 'data_update', got '%s'", update.Type)
	}

	expected := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if !update.Timestamp.Equal(expected) {
		t.Errorf("Expected timestamp %v, got %v", expected, update.Timestamp)
	}

	// The payload stays raw until a subscriber decodes it.
	var payload DataUpdate
	if err := json.Unmarshal(update.Data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	agent, ok := payload.Agents["inventory"]
	if !ok {
		t.Fatal("Expected inventory agent in payload")
	}
	if agent.Efficiency != 94.2 {
		t.Errorf("Expected efficiency 94.2, got %v", agent.Efficiency)
	}

	if payload.Inventory == nil {
		t.Fatal("Expected inventory section")
	}
	if payload.Inventory.TotalValue != 125000.5 {
		t.Errorf("Expected total value 125000.5, got %v", payload.Inventory.TotalValue)
	}
	if len(payload.Inventory.Warehouses) != 2 {
		t.Errorf("Expected 2 warehouses, got %d", len(payload.Inventory.Warehouses))
	}

	// Sections absent from the frame decode to nil.
	if payload.Demand != nil {
		t.Error("Expected absent demand section to be nil")
	}
}

func TestAgentUpdateDecoding(t *testing.T) {
	frame := `{"type": "agent_update", "data": {"agent_id": "route", "status": "stopped"}}`

	var update Update
	if err := json.Unmarshal([]byte(frame), &update); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}

	var payload AgentUpdate
	if err := json.Unmarshal(update.Data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	if payload.AgentID != "route" {
		t.Errorf("Expected agent_id 'route', got '%s'", payload.AgentID)
	}
	if payload.Status != "stopped" {
		t.Errorf("Expected status 'stopped', got '%s'", payload.Status)
	}
}

func TestPendingApprovalOptionalFields(t *testing.T) {
	minimal := `{
		"id": "appr-1",
		"type": "purchase_order",
		"agent_id": "inventory",
		"title": "Reorder steel",
		"status": "pending",
		"created_at": "2026-08-30T09:00:00Z"
	}`

	var approval PendingApproval
	if err := json.Unmarshal([]byte(minimal), &approval); err != nil {
		t.Fatalf("failed to decode approval: %v", err)
	}

	if approval.Status != ApprovalPending {
		t.Errorf("Expected status pending, got %s", approval.Status)
	}
	if approval.EstimatedCost != nil {
		t.Error("Expected absent estimated_cost to be nil")
	}
	if approval.ExpiresAt != nil {
		t.Error("Expected absent expires_at to be nil")
	}

	full := `{
		"id": "appr-2",
		"status": "pending",
		"estimated_cost": 1299.99,
		"expires_at": "2026-08-31T09:00:00Z"
	}`

	if err := json.Unmarshal([]byte(full), &approval); err != nil {
		t.Fatalf("failed to decode approval: %v", err)
	}

	if approval.EstimatedCost == nil || *approval.EstimatedCost != 1299.99 {
		t.Errorf("Expected estimated_cost 1299.99, got %v", approval.EstimatedCost)
	}
	if approval.ExpiresAt == nil {
		t.Error("Expected expires_at to be set")
	}
}
