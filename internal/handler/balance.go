package handler

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/hogyzen12/carrot-go/internal/carrot"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/hogyzen12/carrot-go/internal/utils"
)

type balanceHandler struct {
	client *carrot.Client
}

func NewBalanceHandler(client *carrot.Client) *balanceHandler {
	return &balanceHandler{client: client}
}

type balanceResponse struct {
	Owner   string `json:"owner"`
	Mint    string `json:"mint"`
	Amount  uint64 `json:"amount"`
	UiScale uint8  `json:"decimals"`
}

func (h *balanceHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	owner, err := solana.PublicKeyFromBase58(chi.URLParam(r, "owner"))
	if err != nil {
		http.Error(w, "invalid owner address", http.StatusBadRequest)
		return
	}

	mint, err := solana.PublicKeyFromBase58(chi.URLParam(r, "mint"))
	if err != nil {
		http.Error(w, "invalid mint address", http.StatusBadRequest)
		return
	}

	if !config.IsSupportedAsset(mint) {
		http.Error(w, "unsupported asset mint", http.StatusBadRequest)
		return
	}

	amount, err := h.client.GetAssetBalance(owner, mint)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	decimals, _ := config.AssetDecimals(mint)
	utils.Encode(w, r, http.StatusOK, balanceResponse{
		Owner:   owner.String(),
		Mint:    mint.String(),
		Amount:  amount,
		UiScale: decimals,
	})
}

func (h *balanceHandler) GetCrt(w http.ResponseWriter, r *http.Request) {
	owner, err := solana.PublicKeyFromBase58(chi.URLParam(r, "owner"))
	if err != nil {
		http.Error(w, "invalid owner address", http.StatusBadRequest)
		return
	}

	amount, err := h.client.GetCrtBalance(owner)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.Encode(w, r, http.StatusOK, balanceResponse{
		Owner:   owner.String(),
		Mint:    config.CRT_MINT.String(),
		Amount:  amount,
		UiScale: config.CRT_DECIMALS,
	})
}
