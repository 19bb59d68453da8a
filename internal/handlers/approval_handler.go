package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supplysight/sync-agent/internal/approvals"
	"github.com/supplysight/sync-agent/pkg/types"
)

type ApprovalHandler struct {
	poller *approvals.Poller
}

func NewApprovalHandler(poller *approvals.Poller) *ApprovalHandler {
	return &ApprovalHandler{poller: poller}
}

func (h *ApprovalHandler) ListPending(c *gin.Context) {
	pending := h.poller.Pending()
	lastPoll, lastErr := h.poller.LastPoll()

	resp := gin.H{
		"approvals": pending,
		"total":     len(pending),
		"last_poll": lastPoll.Format(time.RFC3339Nano),
	}
	if lastErr != nil {
		resp["poll_error"] = lastErr.Error()
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApprovalHandler) ProcessAction(c *gin.Context) {
	approvalID := c.Param("id")

	var action types.ApprovalAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if action.Action != "approve" && action.Action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be approve or reject"})
		return
	}

	if err := h.poller.Process(c.Request.Context(), approvalID, action); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Approval processed successfully",
		"approval_id": approvalID,
		"action":      action.Action,
	})
}
