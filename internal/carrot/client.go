package carrot

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/accounts"
	"github.com/hogyzen12/carrot-go/internal/coder"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/hogyzen12/carrot-go/internal/instructions"
	"github.com/hogyzen12/carrot-go/internal/rpc"
	"github.com/hogyzen12/carrot-go/internal/types"
)

// Gateway is the transport the client needs. rpc.Client satisfies it; tests
// substitute stubs.
type Gateway interface {
	GetAccountInfo(publicKey solana.PublicKey) ([]byte, error)
	GetTokenAccountBalance(tokenAccount solana.PublicKey) (uint64, error)
	GetLatestBlockhash() (solana.Hash, error)
	SendAndConfirm(transaction *solana.Transaction) (solana.Signature, error)
}

// Client deposits whitelisted stablecoins into the Carrot vault for CRT and
// redeems CRT back. It holds no mutable state; every call re-derives and
// re-fetches what it needs, so concurrent use with distinct wallets is safe.
type Client struct {
	gateway Gateway
}

func New(gateway Gateway) *Client {
	return &Client{gateway: gateway}
}

// NewFromEndpoint wires a Client to a JSON-RPC endpoint.
func NewFromEndpoint(httpUrl string, opts ...rpc.Option) *Client {
	return New(rpc.NewClient(httpUrl, opts...))
}

// Deposit sends assetMint tokens to the vault and mints CRT to the user.
// It fails locally on an unsupported mint, a zero amount, or an insufficient
// asset balance, without touching the signing path.
func (c *Client) Deposit(user *solana.Wallet, assetMint solana.PublicKey, amount uint64) (solana.Signature, error) {
	if err := validate(assetMint, amount); err != nil {
		return solana.Signature{}, err
	}

	userKey := user.PublicKey()

	available, err := c.GetAssetBalance(userKey, assetMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if available < amount {
		return solana.Signature{}, &types.InsufficientBalanceError{Required: amount, Available: available}
	}

	vault, err := c.FetchVault()
	if err != nil {
		return solana.Signature{}, err
	}

	issueIx, err := instructions.MakeIssueInstruction(&instructions.CarrotInstructionParams{
		User:              userKey,
		AssetMint:         assetMint,
		Amount:            amount,
		RemainingAccounts: vault.RemainingAccounts(),
	})
	if err != nil {
		return solana.Signature{}, err
	}

	// Deposits mint CRT, so the CRT account is the one that may be missing.
	prelude, err := c.planCreateAta(userKey, config.CRT_MINT)
	if err != nil {
		return solana.Signature{}, err
	}

	return c.signAndSubmit(user, append(prelude, issueIx))
}

// Withdraw burns the user's CRT and returns assetMint tokens. The pre-flight
// check runs against the CRT balance, since that is what the program debits.
func (c *Client) Withdraw(user *solana.Wallet, assetMint solana.PublicKey, amount uint64) (solana.Signature, error) {
	if err := validate(assetMint, amount); err != nil {
		return solana.Signature{}, err
	}

	userKey := user.PublicKey()

	available, err := c.GetCrtBalance(userKey)
	if err != nil {
		return solana.Signature{}, err
	}
	if available < amount {
		return solana.Signature{}, &types.InsufficientBalanceError{Required: amount, Available: available}
	}

	vault, err := c.FetchVault()
	if err != nil {
		return solana.Signature{}, err
	}

	redeemIx, err := instructions.MakeRedeemInstruction(&instructions.CarrotInstructionParams{
		User:              userKey,
		AssetMint:         assetMint,
		Amount:            amount,
		RemainingAccounts: vault.RemainingAccounts(),
	})
	if err != nil {
		return solana.Signature{}, err
	}

	prelude, err := c.planCreateAta(userKey, assetMint)
	if err != nil {
		return solana.Signature{}, err
	}

	return c.signAndSubmit(user, append(prelude, redeemIx))
}

// GetAssetBalance returns the user's holdings of a whitelisted asset. A
// missing token account means zero holdings, not an error.
func (c *Client) GetAssetBalance(owner, assetMint solana.PublicKey) (uint64, error) {
	ata, err := accounts.UserAssetAccount(owner, assetMint)
	if err != nil {
		return 0, err
	}
	return c.tokenBalanceOrZero(ata)
}

// GetCrtBalance returns the user's CRT holdings, zero when no account exists.
func (c *Client) GetCrtBalance(owner solana.PublicKey) (uint64, error) {
	ata, err := accounts.UserShareAccount(owner)
	if err != nil {
		return 0, err
	}
	return c.tokenBalanceOrZero(ata)
}

// FetchVault reads and decodes the vault account. Here a missing account is
// an error: the vault must exist for the protocol to function at all.
func (c *Client) FetchVault() (*coder.Vault, error) {
	data, err := c.gateway.GetAccountInfo(config.VAULT_ADDRESS)
	if err != nil {
		if errors.Is(err, types.ErrAccountNotFound) {
			return nil, fmt.Errorf("vault %s: %w", config.VAULT_ADDRESS, types.ErrAccountNotFound)
		}
		return nil, err
	}

	return coder.NewVaultCoder().Decode(data)
}

func (c *Client) tokenBalanceOrZero(ata solana.PublicKey) (uint64, error) {
	balance, err := c.gateway.GetTokenAccountBalance(ata)
	if err != nil {
		if errors.Is(err, types.ErrAccountNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

func (c *Client) planCreateAta(user, mint solana.PublicKey) ([]solana.Instruction, error) {
	tokenProgram := config.TokenProgramForMint(mint)

	ata, err := accounts.DeriveAssociatedTokenAddress(user, mint, tokenProgram)
	if err != nil {
		return nil, err
	}

	exists := true
	if _, err := c.gateway.GetAccountInfo(ata); err != nil {
		if !errors.Is(err, types.ErrAccountNotFound) {
			return nil, err
		}
		exists = false
	}

	if instructions.PlanAssociatedAccount(exists) == instructions.UseExisting {
		return nil, nil
	}

	createIx, err := instructions.MakeCreateAtaIdempotentInstruction(user, user, mint, tokenProgram)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{createIx}, nil
}

// signAndSubmit fetches the blockhash immediately before signing; fetching
// it any earlier risks expiry while accounts are being resolved.
func (c *Client) signAndSubmit(user *solana.Wallet, ixs []solana.Instruction) (solana.Signature, error) {
	blockhash, err := c.gateway.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(ixs, blockhash, solana.TransactionPayer(user.PublicKey()))
	if err != nil {
		return solana.Signature{}, err
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(user.PublicKey()) {
			return &user.PrivateKey
		}
		return nil
	}); err != nil {
		return solana.Signature{}, err
	}

	return c.gateway.SendAndConfirm(tx)
}

func validate(assetMint solana.PublicKey, amount uint64) error {
	if !config.IsSupportedAsset(assetMint) {
		return types.ErrUnsupportedAsset
	}
	if amount == 0 {
		return types.ErrInvalidAmount
	}
	return nil
}
