package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/supplysight/sync-agent/pkg/types"
)

// Blockchain reads.

func (c *Client) GetWallet(ctx context.Context, name string) (*types.WalletInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("wallet name is required")
	}
	var wallet types.WalletInfo
	if err := c.get(ctx, fmt.Sprintf("/api/blockchain/wallet/%s", url.PathEscape(name)), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *Client) GetBlockchainTransactions(ctx context.Context) ([]types.BlockchainTransaction, error) {
	var txs []types.BlockchainTransaction
	if err := c.get(ctx, "/api/blockchain/transactions", &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) GetProductNFT(ctx context.Context, productID string) (*types.ProductNFT, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	var nft types.ProductNFT
	if err := c.get(ctx, fmt.Sprintf("/api/blockchain/nft/%s", url.PathEscape(productID)), &nft); err != nil {
		return nil, err
	}
	return &nft, nil
}

func (c *Client) GetNFTsByOwner(ctx context.Context, wallet string) ([]types.ProductNFT, error) {
	if wallet == "" {
		return nil, fmt.Errorf("wallet name is required")
	}
	var nfts []types.ProductNFT
	if err := c.get(ctx, fmt.Sprintf("/api/blockchain/nfts/owner/%s", url.PathEscape(wallet)), &nfts); err != nil {
		return nil, err
	}
	return nfts, nil
}

// Blockchain writes. Requests are validated locally before any network call so
// an obviously bad submission never reaches the backend.

func (c *Client) ProcessPayment(ctx context.Context, req types.PaymentRequest) (*types.TransactionResult, error) {
	if err := validateTransfer(req.FromWallet, req.ToWallet, req.Amount); err != nil {
		return nil, err
	}
	var result types.TransactionResult
	if err := c.post(ctx, "/api/process-payment", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) TransferSOL(ctx context.Context, req types.TransferRequest) (*types.TransactionResult, error) {
	if err := validateTransfer(req.FromWallet, req.ToWallet, req.Amount); err != nil {
		return nil, err
	}
	var result types.TransactionResult
	if err := c.post(ctx, "/api/blockchain/transfer", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateWallet(ctx context.Context, name string) (*types.WalletInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("wallet name is required")
	}
	var wallet types.WalletInfo
	if err := c.post(ctx, "/api/create-wallet", types.CreateWalletRequest{Name: name}, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *Client) CreateNFT(ctx context.Context, req types.CreateNFTRequest) (*types.TransactionResult, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if req.OwnerWallet == "" {
		return nil, fmt.Errorf("owner wallet is required")
	}
	var result types.TransactionResult
	if err := c.post(ctx, "/api/create-nft", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) TransferNFT(ctx context.Context, req types.TransferNFTRequest) (*types.TransactionResult, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if req.FromWallet == "" || req.ToWallet == "" {
		return nil, fmt.Errorf("both wallets are required")
	}
	var result types.TransactionResult
	if err := c.post(ctx, "/api/transfer-nft", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateNFT(ctx context.Context, req types.UpdateNFTRequest) (*types.TransactionResult, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	var result types.TransactionResult
	if err := c.post(ctx, "/api/update-nft", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func validateTransfer(from, to string, amount float64) error {
	if from == "" || to == "" {
		return fmt.Errorf("both wallets are required")
	}
	if from == to {
		return fmt.Errorf("sender and recipient wallets must differ")
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", amount)
	}
	return nil
}
