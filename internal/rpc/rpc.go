package rpc

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/types"
)

type RequestBody struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type ResponseBody struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is a node-side rejection, preserved verbatim for the caller.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type AccountInfo struct {
	Value *AccountInfoValue `json:"value"`
}

type AccountInfoValue struct {
	Data       []string `json:"data"`
	Owner      string   `json:"owner"`
	Lamports   uint64   `json:"lamports"`
	Executable bool     `json:"executable"`
}

type BlockhashResult struct {
	Value BlockhashValue `json:"value"`
}

type BlockhashValue struct {
	Blockhash string `json:"blockhash"`
}

type TokenBalanceResult struct {
	Value *TokenAmount `json:"value"`
}

type TokenAmount struct {
	Amount   string `json:"amount"`
	Decimals uint8  `json:"decimals"`
}

type SignatureStatusesResult struct {
	Value []*SignatureStatus `json:"value"`
}

type SignatureStatus struct {
	ConfirmationStatus string          `json:"confirmationStatus"`
	Err                json.RawMessage `json:"err"`
}

const (
	defaultConfirmTimeout = 60 * time.Second
	defaultPollInterval   = 2 * time.Second
)

// Client is the only component in the library that touches the network. It
// speaks plain JSON-RPC against the configured endpoint.
type Client struct {
	httpUrl        string
	wsUrl          string
	httpClient     *http.Client
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

type Option func(*Client)

// WithWsUrl enables websocket-based signature confirmation. Without it the
// client polls getSignatureStatuses over HTTP.
func WithWsUrl(url string) Option {
	return func(c *Client) { c.wsUrl = url }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Client) { c.confirmTimeout = d }
}

func NewClient(httpUrl string, opts ...Option) *Client {
	c := &Client{
		httpUrl:        httpUrl,
		httpClient:     &http.Client{},
		confirmTimeout: defaultConfirmTimeout,
		pollInterval:   defaultPollInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) CallRPC(method string, params interface{}) (*ResponseBody, error) {
	requestBody := RequestBody{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	reqBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.httpUrl, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var responseBody ResponseBody
	if err := json.Unmarshal(body, &responseBody); err != nil {
		return nil, err
	}

	if responseBody.Error != nil {
		return nil, responseBody.Error
	}

	return &responseBody, nil
}

// GetAccountInfo fetches the raw account bytes at publicKey. Missing accounts
// surface as types.ErrAccountNotFound.
func (c *Client) GetAccountInfo(publicKey solana.PublicKey) ([]byte, error) {
	reqParams := []interface{}{
		publicKey,
		map[string]interface{}{
			"encoding":   "base64",
			"commitment": "confirmed",
		},
	}

	response, err := c.CallRPC("getAccountInfo", reqParams)
	if err != nil {
		return nil, err
	}

	var accountInfo AccountInfo
	if err := json.Unmarshal(response.Result, &accountInfo); err != nil {
		return nil, err
	}

	if accountInfo.Value == nil || len(accountInfo.Value.Data) == 0 {
		return nil, types.ErrAccountNotFound
	}

	return base64.StdEncoding.DecodeString(accountInfo.Value.Data[0])
}

// GetTokenAccountBalance returns the raw token amount held by a token
// account. A token account that does not exist yet maps to
// types.ErrAccountNotFound; the caller decides whether that means zero.
func (c *Client) GetTokenAccountBalance(tokenAccount solana.PublicKey) (uint64, error) {
	reqParams := []interface{}{
		tokenAccount,
		map[string]interface{}{
			"commitment": "confirmed",
		},
	}

	response, err := c.CallRPC("getTokenAccountBalance", reqParams)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && strings.Contains(rpcErr.Message, "could not find account") {
			return 0, types.ErrAccountNotFound
		}
		return 0, err
	}

	var result TokenBalanceResult
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return 0, err
	}

	if result.Value == nil {
		return 0, types.ErrAccountNotFound
	}

	return strconv.ParseUint(result.Value.Amount, 10, 64)
}

func (c *Client) GetLatestBlockhash() (solana.Hash, error) {
	params := []interface{}{
		map[string]interface{}{
			"commitment": "confirmed",
		},
	}

	response, err := c.CallRPC("getLatestBlockhash", params)
	if err != nil {
		return solana.Hash{}, err
	}

	var result BlockhashResult
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return solana.Hash{}, err
	}

	return solana.HashFromBase58(result.Value.Blockhash)
}

// SendTransaction submits a signed transaction and returns its signature.
// Node rejections come back as *types.SubmissionError.
func (c *Client) SendTransaction(transaction *solana.Transaction) (solana.Signature, error) {
	msg, err := transaction.MarshalBinary()
	if err != nil {
		return solana.Signature{}, err
	}
	txBase64 := base64.StdEncoding.EncodeToString(msg)

	params := []interface{}{
		txBase64,
		map[string]interface{}{
			"encoding":            "base64",
			"skipPreflight":       false,
			"preflightCommitment": "confirmed",
		},
	}

	response, err := c.CallRPC("sendTransaction", params)
	if err != nil {
		return solana.Signature{}, &types.SubmissionError{Err: err}
	}

	var sigStr string
	if err := json.Unmarshal(response.Result, &sigStr); err != nil {
		return solana.Signature{}, err
	}

	return solana.SignatureFromBase58(sigStr)
}

// ConfirmSignature blocks until the signature reaches confirmed commitment,
// polling getSignatureStatuses. An on-chain failure or an expired blockhash
// ends in *types.SubmissionError.
func (c *Client) ConfirmSignature(signature solana.Signature) error {
	deadline := time.Now().Add(c.confirmTimeout)

	for time.Now().Before(deadline) {
		params := []interface{}{
			[]string{signature.String()},
			map[string]interface{}{
				"searchTransactionHistory": false,
			},
		}

		response, err := c.CallRPC("getSignatureStatuses", params)
		if err != nil {
			return err
		}

		var result SignatureStatusesResult
		if err := json.Unmarshal(response.Result, &result); err != nil {
			return err
		}

		if len(result.Value) > 0 && result.Value[0] != nil {
			status := result.Value[0]
			if len(status.Err) > 0 && string(status.Err) != "null" {
				return &types.SubmissionError{
					Err: fmt.Errorf("transaction %s failed on chain: %s", signature, status.Err),
				}
			}
			switch status.ConfirmationStatus {
			case "confirmed", "finalized":
				return nil
			}
		}

		time.Sleep(c.pollInterval)
	}

	return &types.SubmissionError{
		Err: fmt.Errorf("transaction %s not confirmed within %s", signature, c.confirmTimeout),
	}
}

// SendAndConfirm submits the transaction and waits for confirmation,
// preferring the websocket subscription when one is configured.
func (c *Client) SendAndConfirm(transaction *solana.Transaction) (solana.Signature, error) {
	signature, err := c.SendTransaction(transaction)
	if err != nil {
		return solana.Signature{}, err
	}

	if c.wsUrl != "" {
		err := c.confirmViaWebSocket(signature)
		if err == nil {
			return signature, nil
		}
		var subErr *types.SubmissionError
		if errors.As(err, &subErr) {
			return solana.Signature{}, err
		}
		// Subscription-level trouble only, fall through to polling.
	}

	if err := c.ConfirmSignature(signature); err != nil {
		return solana.Signature{}, err
	}

	return signature, nil
}
