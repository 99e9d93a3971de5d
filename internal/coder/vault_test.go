package coder

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func sampleVault() *Vault {
	return &Vault{
		Authority: solana.MustPublicKeyFromBase58("RnGrVx38FRDJUyH6pS6QHFHikbTrs9m1csNiJPWHaZA"),
		Shares:    solana.MustPublicKeyFromBase58("CRTx1JouZhzSU6XytsE42UQraoGqiHgxabocVfARTy2s"),
		Fee: Fee{
			RedemptionFeeBps:         10,
			RedemptionFeeAccumulated: 12345,
			ManagementFeeBps:         50,
			ManagementFeeLastUpdate:  1_700_000_000,
			ManagementFeeAccumulated: 67890,
			PerformanceFeeBps:        100,
		},
		Paused:        false,
		AssetIndex:    2,
		StrategyIndex: 1,
		Assets: []Asset{
			{
				AssetID:  0,
				Mint:     solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
				Decimals: 6,
				Ata:      solana.MustPublicKeyFromBase58("Gfedc4JEmMahEMBJXcXfLHWgNs9d7UzLPq1tkba5S11U"),
				Oracle:   solana.NewWallet().PublicKey(),
			},
			{
				AssetID:  1,
				Mint:     solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"),
				Decimals: 6,
				Ata:      solana.NewWallet().PublicKey(),
				Oracle:   solana.NewWallet().PublicKey(),
			},
		},
		Strategies: []StrategyRecord{
			{StrategyID: 0, AssetID: 0, Balance: 1_000_000_000, NetEarnings: -250},
		},
	}
}

func TestVaultRoundTrip(t *testing.T) {
	c := NewVaultCoder()
	vault := sampleVault()

	data, err := c.Encode(vault)
	require.NoError(t, err)
	require.Equal(t, VaultAccountDiscriminator[:], data[:8])

	decoded, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, vault, decoded)
}

func TestVaultDecodeRejectsTruncatedBuffer(t *testing.T) {
	c := NewVaultCoder()

	data, err := c.Encode(sampleVault())
	require.NoError(t, err)

	for _, cut := range []int{0, 4, 8, vaultAccountMinSize - 1, len(data) - 1} {
		_, err := c.Decode(data[:cut])
		require.Error(t, err, "truncated at %d bytes", cut)
		require.ErrorIs(t, err, ErrVaultDataTooShort)
	}
}

func TestVaultDecodeRejectsWrongDiscriminator(t *testing.T) {
	c := NewVaultCoder()

	data, err := c.Encode(sampleVault())
	require.NoError(t, err)

	data[0] ^= 0xff
	_, err = c.Decode(data)
	require.ErrorIs(t, err, ErrVaultDiscriminator)
}

func TestRemainingAccounts(t *testing.T) {
	vault := sampleVault()

	remaining := vault.RemainingAccounts()
	require.Len(t, remaining, 4)
	require.Equal(t, vault.Assets[0].Ata, remaining[0])
	require.Equal(t, vault.Assets[0].Oracle, remaining[1])
	require.Equal(t, vault.Assets[1].Ata, remaining[2])
	require.Equal(t, vault.Assets[1].Oracle, remaining[3])
}
