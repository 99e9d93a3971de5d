package accounts

import (
	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/config"
)

// DeriveVaultAddress derives the vault PDA for the given Carrot program
// deployment from the seeds [VAULT_SEED, CRT_MINT]. The returned bump proves
// the address is off-curve. Derivation only fails if no valid bump exists,
// which cannot happen for the fixed mainnet seeds.
func DeriveVaultAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{config.VAULT_SEED, config.CRT_MINT.Bytes()},
		programID,
	)
}

// DeriveAssociatedTokenAddress derives the canonical token account of
// (owner, mint) under the given token program. solana-go's built-in helper
// assumes the legacy token program, so the three-seed derivation is spelled
// out to cover Token-2022 mints as well.
func DeriveAssociatedTokenAddress(owner, mint, tokenProgramID solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), tokenProgramID.Bytes(), mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	return addr, err
}

// UserShareAccount returns the user's CRT token account.
func UserShareAccount(user solana.PublicKey) (solana.PublicKey, error) {
	return DeriveAssociatedTokenAddress(user, config.CRT_MINT, config.TOKEN_2022_ID)
}

// UserAssetAccount returns the user's token account for a whitelisted asset.
func UserAssetAccount(user, assetMint solana.PublicKey) (solana.PublicKey, error) {
	return DeriveAssociatedTokenAddress(user, assetMint, config.TokenProgramForMint(assetMint))
}

// VaultAssetAccount returns the vault's reserve token account for an asset.
func VaultAssetAccount(assetMint solana.PublicKey) (solana.PublicKey, error) {
	return DeriveAssociatedTokenAddress(config.VAULT_ADDRESS, assetMint, config.TokenProgramForMint(assetMint))
}
