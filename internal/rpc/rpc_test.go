package rpc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/types"
	"github.com/stretchr/testify/require"
)

func rpcServer(t *testing.T, handler func(method string, params json.RawMessage) (interface{}, *RPCError)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int             `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handler(req.Method, req.Params)

		response := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
		}
		if rpcErr != nil {
			response["error"] = rpcErr
		} else {
			response["result"] = result
		}

		json.NewEncoder(w).Encode(response)
	}))
}

func TestGetAccountInfo(t *testing.T) {
	payload := []byte{1, 2, 3, 4}

	server := rpcServer(t, func(method string, _ json.RawMessage) (interface{}, *RPCError) {
		require.Equal(t, "getAccountInfo", method)
		return map[string]interface{}{
			"value": map[string]interface{}{
				"data":     []string{base64.StdEncoding.EncodeToString(payload), "base64"},
				"lamports": 1,
			},
		}, nil
	})
	defer server.Close()

	client := NewClient(server.URL)

	data, err := client.GetAccountInfo(solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestGetAccountInfoNotFound(t *testing.T) {
	server := rpcServer(t, func(string, json.RawMessage) (interface{}, *RPCError) {
		return map[string]interface{}{"value": nil}, nil
	})
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetAccountInfo(solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, types.ErrAccountNotFound)
}

func TestGetTokenAccountBalance(t *testing.T) {
	server := rpcServer(t, func(method string, _ json.RawMessage) (interface{}, *RPCError) {
		require.Equal(t, "getTokenAccountBalance", method)
		return map[string]interface{}{
			"value": map[string]interface{}{
				"amount":   "1000000",
				"decimals": 6,
			},
		}, nil
	})
	defer server.Close()

	client := NewClient(server.URL)

	balance, err := client.GetTokenAccountBalance(solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), balance)
}

func TestGetTokenAccountBalanceMissingAccount(t *testing.T) {
	server := rpcServer(t, func(string, json.RawMessage) (interface{}, *RPCError) {
		return nil, &RPCError{Code: -32602, Message: "Invalid param: could not find account"}
	})
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetTokenAccountBalance(solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, types.ErrAccountNotFound)
}

func TestGetLatestBlockhash(t *testing.T) {
	hash := solana.MustPublicKeyFromBase58("CarrotwivhMpDnm27EHmRLeQ683Z1PufuqEmBZvD282s")

	server := rpcServer(t, func(method string, _ json.RawMessage) (interface{}, *RPCError) {
		require.Equal(t, "getLatestBlockhash", method)
		return map[string]interface{}{
			"value": map[string]interface{}{"blockhash": hash.String()},
		}, nil
	})
	defer server.Close()

	client := NewClient(server.URL)

	blockhash, err := client.GetLatestBlockhash()
	require.NoError(t, err)
	require.Equal(t, hash.String(), blockhash.String())
}

func TestSendAndConfirm(t *testing.T) {
	user := solana.NewWallet()
	tx := buildTestTransaction(t, user)
	signature := tx.Signatures[0]

	var statusPolls int
	server := rpcServer(t, func(method string, _ json.RawMessage) (interface{}, *RPCError) {
		switch method {
		case "sendTransaction":
			return signature.String(), nil
		case "getSignatureStatuses":
			statusPolls++
			return map[string]interface{}{
				"value": []interface{}{
					map[string]interface{}{"confirmationStatus": "confirmed", "err": nil},
				},
			}, nil
		default:
			return nil, &RPCError{Code: -32601, Message: fmt.Sprintf("unexpected method %s", method)}
		}
	})
	defer server.Close()

	client := NewClient(server.URL, WithConfirmTimeout(5*time.Second))

	got, err := client.SendAndConfirm(tx)
	require.NoError(t, err)
	require.Equal(t, signature, got)
	require.Equal(t, 1, statusPolls)
}

func TestSendAndConfirmSurfacesOnChainFailure(t *testing.T) {
	user := solana.NewWallet()
	tx := buildTestTransaction(t, user)
	signature := tx.Signatures[0]

	server := rpcServer(t, func(method string, _ json.RawMessage) (interface{}, *RPCError) {
		switch method {
		case "sendTransaction":
			return signature.String(), nil
		default:
			return map[string]interface{}{
				"value": []interface{}{
					map[string]interface{}{"confirmationStatus": "processed", "err": map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}},
				},
			}, nil
		}
	})
	defer server.Close()

	client := NewClient(server.URL, WithConfirmTimeout(5*time.Second))

	_, err := client.SendAndConfirm(tx)

	var submission *types.SubmissionError
	require.ErrorAs(t, err, &submission)
}

func TestSendTransactionRejection(t *testing.T) {
	server := rpcServer(t, func(string, json.RawMessage) (interface{}, *RPCError) {
		return nil, &RPCError{Code: -32002, Message: "Blockhash not found"}
	})
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.SendTransaction(buildTestTransaction(t, solana.NewWallet()))

	var submission *types.SubmissionError
	require.ErrorAs(t, err, &submission)
}

func buildTestTransaction(t *testing.T, user *solana.Wallet) *solana.Transaction {
	t.Helper()

	ix := solana.NewInstruction(
		solana.SystemProgramID,
		[]*solana.AccountMeta{solana.Meta(user.PublicKey()).WRITE().SIGNER()},
		[]byte{0},
	)

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		solana.Hash{1},
		solana.TransactionPayer(user.PublicKey()),
	)
	require.NoError(t, err)

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(user.PublicKey()) {
			return &user.PrivateKey
		}
		return nil
	})
	require.NoError(t, err)

	return tx
}
