package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/carrot"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/hogyzen12/carrot-go/internal/storage"
	"github.com/hogyzen12/carrot-go/internal/types"
	"github.com/hogyzen12/carrot-go/internal/utils"
)

type transactHandler struct {
	client *carrot.Client
}

func NewTransactHandler(client *carrot.Client) *transactHandler {
	return &transactHandler{client: client}
}

type transactRequest struct {
	Mint   string `json:"mint"`
	Amount uint64 `json:"amount"`
}

type transactResponse struct {
	Signature string `json:"signature"`
}

type insufficientBalanceResponse struct {
	Error     string `json:"error"`
	Required  uint64 `json:"required"`
	Available uint64 `json:"available"`
}

func (h *transactHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, types.ActionDeposit)
}

func (h *transactHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, types.ActionWithdraw)
}

func (h *transactHandler) transact(w http.ResponseWriter, r *http.Request, action string) {
	if config.Payer == nil {
		http.Error(w, "no payer wallet configured", http.StatusServiceUnavailable)
		return
	}

	decoded, err := utils.Decode[transactRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mint, err := solana.PublicKeyFromBase58(decoded.Mint)
	if err != nil {
		http.Error(w, "invalid mint address", http.StatusBadRequest)
		return
	}

	var signature solana.Signature
	if action == types.ActionDeposit {
		signature, err = h.client.Deposit(config.Payer, mint, decoded.Amount)
	} else {
		signature, err = h.client.Withdraw(config.Payer, mint, decoded.Amount)
	}

	if err != nil {
		writeTransactError(w, err)
		return
	}

	recordActivity(&types.Activity{
		Wallet:    config.Payer.PublicKey().String(),
		Mint:      mint.String(),
		Action:    action,
		Amount:    decoded.Amount,
		Signature: signature.String(),
		Timestamp: time.Now().Unix(),
	})

	utils.Encode(w, r, http.StatusOK, transactResponse{Signature: signature.String()})
}

func writeTransactError(w http.ResponseWriter, err error) {
	var insufficient *types.InsufficientBalanceError
	var submission *types.SubmissionError

	switch {
	case errors.Is(err, types.ErrUnsupportedAsset), errors.Is(err, types.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &insufficient):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		payload := insufficientBalanceResponse{
			Error:     "insufficient balance",
			Required:  insufficient.Required,
			Available: insufficient.Available,
		}
		json.NewEncoder(w).Encode(payload)
	case errors.As(err, &submission):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// recordActivity persists a confirmed submission. Storage failures are
// logged, not surfaced: the on-chain transaction already happened.
func recordActivity(activity *types.Activity) {
	if storage.Activity != nil {
		if err := storage.Activity.SetActivity(activity); err != nil {
			log.Printf("failed to record activity %s: %v", activity.Signature, err)
		}
	}
	if storage.Submissions != nil {
		if err := storage.Submissions.Set(activity); err != nil {
			log.Printf("failed to cache submission %s: %v", activity.Signature, err)
		}
	}
}
