package types

// Request bodies for the backend's blockchain write endpoints.

type PaymentRequest struct {
	FromWallet string  `json:"from_wallet"`
	ToWallet   string  `json:"to_wallet"`
	Amount     float64 `json:"amount"`
	ProductID  string  `json:"product_id,omitempty"`
}

type TransferRequest struct {
	FromWallet string  `json:"from_wallet"`
	ToWallet   string  `json:"to_wallet"`
	Amount     float64 `json:"amount"`
	Memo       string  `json:"memo,omitempty"`
}

type CreateWalletRequest struct {
	Name string `json:"name"`
}

type CreateNFTRequest struct {
	ProductID   string                 `json:"product_id"`
	OwnerWallet string                 `json:"owner_wallet"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type TransferNFTRequest struct {
	ProductID  string `json:"product_id"`
	FromWallet string `json:"from_wallet"`
	ToWallet   string `json:"to_wallet"`
}

type UpdateNFTRequest struct {
	ProductID string                 `json:"product_id"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type WalletInfo struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
	Network string  `json:"network,omitempty"`
}

type ProductNFT struct {
	ProductID   string                 `json:"product_id"`
	MintAddress string                 `json:"mint_address"`
	OwnerWallet string                 `json:"owner_wallet"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// TransactionResult is the backend's generic response to blockchain writes.
type TransactionResult struct {
	Status    string `json:"status"`
	Signature string `json:"signature,omitempty"`
	Message   string `json:"message,omitempty"`
}
