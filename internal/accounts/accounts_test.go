package accounts

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/stretchr/testify/require"
)

var testUser = solana.MustPublicKeyFromBase58("RnGrVx38FRDJUyH6pS6QHFHikbTrs9m1csNiJPWHaZA")

func TestDeriveVaultAddress(t *testing.T) {
	vault, _, err := DeriveVaultAddress(config.CARROT_PROGRAM_ID)
	require.NoError(t, err)
	require.Equal(t, config.VAULT_ADDRESS, vault)
}

func TestDeriveVaultAddressDeterminism(t *testing.T) {
	first, firstBump, err := DeriveVaultAddress(config.CARROT_PROGRAM_ID)
	require.NoError(t, err)

	second, secondBump, err := DeriveVaultAddress(config.CARROT_PROGRAM_ID)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, firstBump, secondBump)
}

func TestVaultAddressIsOffCurve(t *testing.T) {
	vault, _, err := DeriveVaultAddress(config.CARROT_PROGRAM_ID)
	require.NoError(t, err)
	require.False(t, vault.IsOnCurve(), "a PDA must never be a valid signing key")
}

func TestUserShareAccount(t *testing.T) {
	ata, err := UserShareAccount(testUser)
	require.NoError(t, err)
	require.Equal(t, "DQQ7otzQpMZmZE4RAdicJnAQbacFAwoxz4XzhUtPK7u9", ata.String())
}

func TestUserAssetAccount(t *testing.T) {
	ata, err := UserAssetAccount(testUser, config.USDC_MINT)
	require.NoError(t, err)
	require.Equal(t, "EWuWVR2hBWiNwStMNpBLDimQJXb9wJTtNjbo3mHWuw9U", ata.String())
}

func TestVaultAssetAccount(t *testing.T) {
	ata, err := VaultAssetAccount(config.USDC_MINT)
	require.NoError(t, err)
	require.Equal(t, "Gfedc4JEmMahEMBJXcXfLHWgNs9d7UzLPq1tkba5S11U", ata.String())
}

func TestDeriveAssociatedTokenAddressDeterminism(t *testing.T) {
	first, err := DeriveAssociatedTokenAddress(testUser, config.USDC_MINT, solana.TokenProgramID)
	require.NoError(t, err)

	second, err := DeriveAssociatedTokenAddress(testUser, config.USDC_MINT, solana.TokenProgramID)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestTokenProgramSelection(t *testing.T) {
	require.Equal(t, solana.TokenProgramID, config.TokenProgramForMint(config.USDC_MINT))
	require.Equal(t, solana.TokenProgramID, config.TokenProgramForMint(config.USDT_MINT))
	require.Equal(t, config.TOKEN_2022_ID, config.TokenProgramForMint(config.PYUSD_MINT))
	require.Equal(t, config.TOKEN_2022_ID, config.TokenProgramForMint(config.CRT_MINT))
}
