package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/accounts"
	"github.com/hogyzen12/carrot-go/internal/carrot"
	"github.com/hogyzen12/carrot-go/internal/coder"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/hogyzen12/carrot-go/internal/types"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	accountInfo map[solana.PublicKey][]byte
	balances    map[solana.PublicKey]uint64
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		accountInfo: make(map[solana.PublicKey][]byte),
		balances:    make(map[solana.PublicKey]uint64),
	}
}

func (s *stubGateway) GetAccountInfo(publicKey solana.PublicKey) ([]byte, error) {
	if data, ok := s.accountInfo[publicKey]; ok {
		return data, nil
	}
	return nil, types.ErrAccountNotFound
}

func (s *stubGateway) GetTokenAccountBalance(tokenAccount solana.PublicKey) (uint64, error) {
	if balance, ok := s.balances[tokenAccount]; ok {
		return balance, nil
	}
	return 0, types.ErrAccountNotFound
}

func (s *stubGateway) GetLatestBlockhash() (solana.Hash, error) {
	return solana.Hash{}, nil
}

func (s *stubGateway) SendAndConfirm(*solana.Transaction) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func serveRequest(t *testing.T, gateway carrot.Gateway, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	router := CreateRoutes(carrot.New(gateway))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))

	return recorder
}

func TestGetAssetBalanceRoute(t *testing.T) {
	gateway := newStubGateway()
	owner := solana.NewWallet().PublicKey()

	ata, err := accounts.UserAssetAccount(owner, config.USDC_MINT)
	require.NoError(t, err)
	gateway.balances[ata] = 42

	recorder := serveRequest(t, gateway, http.MethodGet, "/balance/"+owner.String()+"/"+config.USDC_MINT.String())
	require.Equal(t, http.StatusOK, recorder.Code)

	var response balanceResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Equal(t, uint64(42), response.Amount)
	require.Equal(t, uint8(6), response.UiScale)
}

func TestGetCrtBalanceRouteMissingAccountMeansZero(t *testing.T) {
	owner := solana.NewWallet().PublicKey()

	recorder := serveRequest(t, newStubGateway(), http.MethodGet, "/balance/"+owner.String())
	require.Equal(t, http.StatusOK, recorder.Code)

	var response balanceResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Equal(t, uint64(0), response.Amount)
	require.Equal(t, config.CRT_MINT.String(), response.Mint)
}

func TestGetBalanceRejectsBadAddress(t *testing.T) {
	recorder := serveRequest(t, newStubGateway(), http.MethodGet, "/balance/not-a-key")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetBalanceRejectsUnsupportedMint(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	recorder := serveRequest(t, newStubGateway(), http.MethodGet, "/balance/"+owner.String()+"/"+mint.String())
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetVaultRoute(t *testing.T) {
	gateway := newStubGateway()

	vault := &coder.Vault{
		Authority: solana.NewWallet().PublicKey(),
		Shares:    config.CRT_MINT,
		Assets: []coder.Asset{
			{Mint: config.USDC_MINT, Decimals: 6, Ata: solana.NewWallet().PublicKey(), Oracle: solana.NewWallet().PublicKey()},
		},
	}
	data, err := coder.NewVaultCoder().Encode(vault)
	require.NoError(t, err)
	gateway.accountInfo[config.VAULT_ADDRESS] = data

	recorder := serveRequest(t, gateway, http.MethodGet, "/vault")
	require.Equal(t, http.StatusOK, recorder.Code)

	var decoded coder.Vault
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	require.Equal(t, config.CRT_MINT, decoded.Shares)
	require.Len(t, decoded.Assets, 1)
}

func TestGetVaultRouteMissingVault(t *testing.T) {
	recorder := serveRequest(t, newStubGateway(), http.MethodGet, "/vault")
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetVaultRouteMalformedVault(t *testing.T) {
	gateway := newStubGateway()
	gateway.accountInfo[config.VAULT_ADDRESS] = []byte{0xde, 0xad}

	recorder := serveRequest(t, gateway, http.MethodGet, "/vault")
	require.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestActivityRoutesWithoutStorage(t *testing.T) {
	recorder := serveRequest(t, newStubGateway(), http.MethodGet, "/activity")
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestActivityRejectsBadSignature(t *testing.T) {
	recorder := serveRequest(t, newStubGateway(), http.MethodGet, "/activity/zzzz")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
