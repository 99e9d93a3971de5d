package handler

import (
	"errors"
	"net/http"

	"github.com/hogyzen12/carrot-go/internal/carrot"
	"github.com/hogyzen12/carrot-go/internal/coder"
	"github.com/hogyzen12/carrot-go/internal/types"
	"github.com/hogyzen12/carrot-go/internal/utils"
)

type vaultHandler struct {
	client *carrot.Client
}

func NewVaultHandler(client *carrot.Client) *vaultHandler {
	return &vaultHandler{client: client}
}

func (h *vaultHandler) Get(w http.ResponseWriter, r *http.Request) {
	vault, err := h.client.FetchVault()

	if err != nil {
		switch {
		case errors.Is(err, types.ErrAccountNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, coder.ErrVaultDataTooShort), errors.Is(err, coder.ErrVaultDiscriminator):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	utils.Encode(w, r, http.StatusOK, vault)
}
