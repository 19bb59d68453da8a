package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/supplysight/sync-agent/pkg/types"
)

func TestValidateTransfer(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		amount  float64
		wantErr bool
	}{
		{name: "valid transfer", from: "treasury", to: "supplier", amount: 10.5, wantErr: false},
		{name: "zero amount", from: "treasury", to: "supplier", amount: 0, wantErr: true},
		{name: "negative amount", from: "treasury", to: "supplier", amount: -5, wantErr: true},
		{name: "empty sender", from: "", to: "supplier", amount: 10, wantErr: true},
		{name: "empty recipient", from: "treasury", to: "", amount: 10, wantErr: true},
		{name: "same wallet", from: "treasury", to: "treasury", amount: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTransfer(tt.from, tt.to, tt.amount)
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(types.TransactionResult{Status: "confirmed", Signature: "sig-1"})
	}))
	defer server.Close()

	client := NewClient(testConfig())
	client.baseURL = server.URL

	t.Run("invalid payment never hits backend", func(t *testing.T) {
		_, err := client.ProcessPayment(context.Background(), types.PaymentRequest{
			FromWallet: "treasury",
			ToWallet:   "supplier",
			Amount:     -1,
		})
		if err == nil {
			t.Error("Expected error for negative amount")
		}
		if requests != 0 {
			t.Errorf("Expected no requests, got %d", requests)
		}
	})

	t.Run("valid payment", func(t *testing.T) {
		result, err := client.ProcessPayment(context.Background(), types.PaymentRequest{
			FromWallet: "treasury",
			ToWallet:   "supplier",
			Amount:     42.5,
		})
		if err != nil {
			t.Fatalf("ProcessPayment() failed: %v", err)
		}
		if result.Status != "confirmed" {
			t.Errorf("Expected status 'confirmed', got '%s'", result.Status)
		}
		if result.Signature != "sig-1" {
			t.Errorf("Expected signature 'sig-1', got '%s'", result.Signature)
		}
	})
}

func TestTransferSOLValidation(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(types.TransactionResult{Status: "confirmed"})
	}))
	defer server.Close()

	client := NewClient(testConfig())
	client.baseURL = server.URL

	_, err := client.TransferSOL(context.Background(), types.TransferRequest{
		FromWallet: "treasury",
		ToWallet:   "treasury",
		Amount:     5,
	})
	if err == nil {
		t.Error("Expected error for same-wallet transfer")
	}
	if requests != 0 {
		t.Errorf("Expected no requests, got %d", requests)
	}
}

func TestCreateNFTValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.TransactionResult{Status: "confirmed"})
	}))
	defer server.Close()

	client := NewClient(testConfig())
	client.baseURL = server.URL

	t.Run("missing product id", func(t *testing.T) {
		_, err := client.CreateNFT(context.Background(), types.CreateNFTRequest{OwnerWallet: "treasury"})
		if err == nil {
			t.Error("Expected error for missing product id")
		}
	})

	t.Run("missing owner wallet", func(t *testing.T) {
		_, err := client.CreateNFT(context.Background(), types.CreateNFTRequest{ProductID: "prod-1"})
		if err == nil {
			t.Error("Expected error for missing owner wallet")
		}
	})

	t.Run("valid request", func(t *testing.T) {
		result, err := client.CreateNFT(context.Background(), types.CreateNFTRequest{
			ProductID:   "prod-1",
			OwnerWallet: "treasury",
		})
		if err != nil {
			t.Fatalf("CreateNFT() failed: %v", err)
		}
		if result.Status != "confirmed" {
			t.Errorf("Expected status 'confirmed', got '%s'", result.Status)
		}
	})
}

func TestGetWallet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/blockchain/wallet/treasury" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(types.WalletInfo{Name: "treasury", Balance: 100.5})
	}))
	defer server.Close()

	client := NewClient(testConfig())
	client.baseURL = server.URL

	wallet, err := client.GetWallet(context.Background(), "treasury")
	if err != nil {
		t.Fatalf("GetWallet() failed: %v", err)
	}

	if wallet.Name != "treasury" {
		t.Errorf("Expected wallet 'treasury', got '%s'", wallet.Name)
	}

	if wallet.Balance != 100.5 {
		t.Errorf("Expected balance 100.5, got %v", wallet.Balance)
	}

	if _, err := client.GetWallet(context.Background(), ""); err == nil {
		t.Error("Expected error for empty wallet name")
	}
}
