package instructions

import (
	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/accounts"
	"github.com/hogyzen12/carrot-go/internal/coder"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/hogyzen12/carrot-go/internal/types"
)

// CarrotInstructionKind selects between the two program entry points.
type CarrotInstructionKind uint8

const (
	KindIssue CarrotInstructionKind = iota
	KindRedeem
)

// CarrotInstruction is a single issue or redeem call. Account order is fixed
// by the on-chain program and must not be reordered.
type CarrotInstruction struct {
	Kind   CarrotInstructionKind
	Amount uint64

	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

type CarrotInstructionParams struct {
	User              solana.PublicKey
	AssetMint         solana.PublicKey
	Amount            uint64
	RemainingAccounts []solana.PublicKey
}

func (inst *CarrotInstruction) ProgramID() solana.PublicKey {
	return config.CARROT_PROGRAM_ID
}

func (inst *CarrotInstruction) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *CarrotInstruction) Data() ([]byte, error) {
	c := coder.NewCarrotInstructionCoder()
	if inst.Kind == KindRedeem {
		return c.EncodeRedeem(coder.RedeemArgs{Amount: inst.Amount})
	}
	return c.EncodeIssue(coder.IssueArgs{Amount: inst.Amount})
}

// MakeIssueInstruction builds the deposit call: asset tokens in, CRT out.
func MakeIssueInstruction(params *CarrotInstructionParams) (*CarrotInstruction, error) {
	return makeCarrotInstruction(KindIssue, params)
}

// MakeRedeemInstruction builds the withdrawal call: CRT burned, asset out.
func MakeRedeemInstruction(params *CarrotInstructionParams) (*CarrotInstruction, error) {
	return makeCarrotInstruction(KindRedeem, params)
}

func makeCarrotInstruction(kind CarrotInstructionKind, params *CarrotInstructionParams) (*CarrotInstruction, error) {
	if !config.IsSupportedAsset(params.AssetMint) {
		return nil, types.ErrUnsupportedAsset
	}
	if params.Amount == 0 {
		return nil, types.ErrInvalidAmount
	}

	userShareAta, err := accounts.UserShareAccount(params.User)
	if err != nil {
		return nil, err
	}
	userAssetAta, err := accounts.UserAssetAccount(params.User, params.AssetMint)
	if err != nil {
		return nil, err
	}
	vaultAssetAta, err := accounts.VaultAssetAccount(params.AssetMint)
	if err != nil {
		return nil, err
	}

	ins := &CarrotInstruction{
		Kind:   kind,
		Amount: params.Amount,
	}

	accountMetas := []*solana.AccountMeta{
		solana.Meta(config.VAULT_ADDRESS).WRITE(),
		solana.Meta(config.CRT_MINT).WRITE(),
		solana.Meta(userShareAta).WRITE(),
		solana.Meta(params.AssetMint),
		solana.Meta(vaultAssetAta).WRITE(),
		solana.Meta(userAssetAta).WRITE(),
		solana.Meta(params.User).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(config.TokenProgramForMint(params.AssetMint)),
		solana.Meta(config.TOKEN_2022_ID),
		solana.Meta(config.LOG_PROGRAM_ID),
	}

	// The program walks every reserve ATA and oracle on each call.
	for _, account := range params.RemainingAccounts {
		accountMetas = append(accountMetas, solana.Meta(account).WRITE())
	}

	ins.AccountMetaSlice = accountMetas

	return ins, nil
}
