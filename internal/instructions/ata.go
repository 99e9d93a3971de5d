package instructions

import (
	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/accounts"
)

// AtaPlan decides how a transaction obtains its destination token account.
type AtaPlan uint8

const (
	// UseExisting means the associated token account already holds data.
	UseExisting AtaPlan = iota
	// CreateThenUse means an idempotent create precedes the vault call.
	CreateThenUse
)

// PlanAssociatedAccount maps on-chain existence to a plan. The create is
// idempotent, so a concurrent creation between the check and the submission
// is harmless.
func PlanAssociatedAccount(exists bool) AtaPlan {
	if exists {
		return UseExisting
	}
	return CreateThenUse
}

// createIdempotent is instruction 1 of the associated-token program.
const createIdempotent = 1

// MakeCreateAtaIdempotentInstruction builds the idempotent create for the
// (owner, mint) associated account under the given token program. solana-go's
// bundled builder covers neither the idempotent variant nor Token-2022 mints,
// so the accounts are laid out by hand.
func MakeCreateAtaIdempotentInstruction(payer, owner, mint, tokenProgramID solana.PublicKey) (solana.Instruction, error) {
	ata, err := accounts.DeriveAssociatedTokenAddress(owner, mint, tokenProgramID)
	if err != nil {
		return nil, err
	}

	accountMetas := []*solana.AccountMeta{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(ata).WRITE(),
		solana.Meta(owner),
		solana.Meta(mint),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(tokenProgramID),
	}

	return solana.NewInstruction(
		solana.SPLAssociatedTokenAccountProgramID,
		accountMetas,
		[]byte{createIdempotent},
	), nil
}
