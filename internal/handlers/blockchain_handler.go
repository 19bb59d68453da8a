package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/supplysight/sync-agent/internal/backend"
	"github.com/supplysight/sync-agent/pkg/types"
)

// BlockchainHandler forwards wallet, payment, and NFT operations. Requests
// failing local validation never reach the backend and come back as 400s;
// backend failures surface as 502s so the caller can tell them apart.
type BlockchainHandler struct {
	client *backend.Client
}

func NewBlockchainHandler(client *backend.Client) *BlockchainHandler {
	return &BlockchainHandler{client: client}
}

func isValidationError(err error) bool {
	// The client validates before dialing; those errors never wrap a
	// transport failure.
	msg := err.Error()
	return !strings.Contains(msg, "request failed") && !strings.Contains(msg, "HTTP ")
}

func (h *BlockchainHandler) writeError(c *gin.Context, err error) {
	if isValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func (h *BlockchainHandler) ProcessPayment(c *gin.Context) {
	var req types.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlockchainHandler) TransferSOL(c *gin.Context) {
	var req types.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.TransferSOL(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlockchainHandler) CreateWallet(c *gin.Context) {
	var req types.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.client.CreateWallet(c.Request.Context(), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

func (h *BlockchainHandler) GetWallet(c *gin.Context) {
	wallet, err := h.client.GetWallet(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

func (h *BlockchainHandler) GetTransactions(c *gin.Context) {
	txs, err := h.client.GetBlockchainTransactions(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"total":        len(txs),
	})
}

func (h *BlockchainHandler) CreateNFT(c *gin.Context) {
	var req types.CreateNFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.CreateNFT(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlockchainHandler) TransferNFT(c *gin.Context) {
	var req types.TransferNFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.TransferNFT(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlockchainHandler) UpdateNFT(c *gin.Context) {
	var req types.UpdateNFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.UpdateNFT(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlockchainHandler) GetNFT(c *gin.Context) {
	nft, err := h.client.GetProductNFT(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, nft)
}

func (h *BlockchainHandler) GetNFTsByOwner(c *gin.Context) {
	nfts, err := h.client.GetNFTsByOwner(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nfts":  nfts,
		"total": len(nfts),
	})
}
