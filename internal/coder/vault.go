package coder

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// VaultAccountDiscriminator tags the vault account type, per anchor's
// sha256("account:" + name)[..8] convention.
var VaultAccountDiscriminator = anchorAccountDiscriminator("Vault")

// vaultAccountMinSize is the discriminator plus every fixed-width field and
// the two vector length prefixes. Anything shorter cannot be a vault account.
const vaultAccountMinSize = 8 + 32 + 32 + feeSize + 1 + 2 + 2 + 4 + 4

const feeSize = 2 + 8 + 2 + 8 + 8 + 2

var (
	ErrVaultDataTooShort  = errors.New("vault account data too short")
	ErrVaultDiscriminator = errors.New("vault account discriminator mismatch")
)

// Fee is the vault's fee configuration, basis-point rates plus accumulators.
type Fee struct {
	RedemptionFeeBps         uint16
	RedemptionFeeAccumulated uint64
	ManagementFeeBps         uint16
	ManagementFeeLastUpdate  int64
	ManagementFeeAccumulated uint64
	PerformanceFeeBps        uint16
}

// Asset is one whitelisted reserve asset tracked by the vault.
type Asset struct {
	AssetID  uint16
	Mint     solana.PublicKey
	Decimals uint8
	Ata      solana.PublicKey
	Oracle   solana.PublicKey
}

// StrategyRecord tracks the balance a strategy holds for one asset.
type StrategyRecord struct {
	StrategyID  uint16
	AssetID     uint16
	Balance     uint64
	NetEarnings int64
}

// Vault mirrors the on-chain vault account layout. The client only ever
// reads a snapshot of it; all mutation happens inside the program.
type Vault struct {
	Authority     solana.PublicKey
	Shares        solana.PublicKey
	Fee           Fee
	Paused        bool
	AssetIndex    uint16
	StrategyIndex uint16
	Assets        []Asset
	Strategies    []StrategyRecord
}

// RemainingAccounts returns every asset's reserve ATA and oracle, flattened
// in vault order. The program expects them appended to issue and redeem
// instructions.
func (v *Vault) RemainingAccounts() []solana.PublicKey {
	out := make([]solana.PublicKey, 0, len(v.Assets)*2)
	for _, asset := range v.Assets {
		out = append(out, asset.Ata, asset.Oracle)
	}
	return out
}

// VaultCoder decodes the vault account from raw account bytes.
type VaultCoder struct{}

func NewVaultCoder() *VaultCoder {
	return &VaultCoder{}
}

// Decode validates length and discriminator before interpreting any field.
// A truncated or mistagged buffer always fails, never yields a partial vault.
func (coder *VaultCoder) Decode(data []byte) (*Vault, error) {
	if len(data) < vaultAccountMinSize {
		return nil, fmt.Errorf("%w: %d bytes, expected at least %d", ErrVaultDataTooShort, len(data), vaultAccountMinSize)
	}

	if !bytes.Equal(data[:8], VaultAccountDiscriminator[:]) {
		return nil, ErrVaultDiscriminator
	}

	var vault Vault
	if err := vault.UnmarshalWithDecoder(bin.NewBorshDecoder(data[8:])); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVaultDataTooShort, err)
	}

	return &vault, nil
}

// Encode serializes a vault back to account bytes, discriminator included.
func (coder *VaultCoder) Encode(vault *Vault) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBorshEncoder(buf)

	if err := encoder.WriteBytes(VaultAccountDiscriminator[:], false); err != nil {
		return nil, err
	}
	if err := vault.MarshalWithEncoder(encoder); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v *Vault) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if v.Authority, err = readPublicKey(decoder); err != nil {
		return err
	}
	if v.Shares, err = readPublicKey(decoder); err != nil {
		return err
	}
	if err = v.Fee.UnmarshalWithDecoder(decoder); err != nil {
		return err
	}
	if v.Paused, err = decoder.ReadBool(); err != nil {
		return err
	}
	if v.AssetIndex, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if v.StrategyIndex, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}

	assetCount, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return err
	}
	v.Assets = make([]Asset, assetCount)
	for i := range v.Assets {
		if err = v.Assets[i].UnmarshalWithDecoder(decoder); err != nil {
			return err
		}
	}

	strategyCount, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return err
	}
	v.Strategies = make([]StrategyRecord, strategyCount)
	for i := range v.Strategies {
		if err = v.Strategies[i].UnmarshalWithDecoder(decoder); err != nil {
			return err
		}
	}

	return nil
}

func (v *Vault) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(v.Authority.Bytes(), false); err != nil {
		return err
	}
	if err := encoder.WriteBytes(v.Shares.Bytes(), false); err != nil {
		return err
	}
	if err := v.Fee.MarshalWithEncoder(encoder); err != nil {
		return err
	}
	if err := encoder.WriteBool(v.Paused); err != nil {
		return err
	}
	if err := encoder.WriteUint16(v.AssetIndex, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteUint16(v.StrategyIndex, binary.LittleEndian); err != nil {
		return err
	}

	if err := encoder.WriteUint32(uint32(len(v.Assets)), binary.LittleEndian); err != nil {
		return err
	}
	for i := range v.Assets {
		if err := v.Assets[i].MarshalWithEncoder(encoder); err != nil {
			return err
		}
	}

	if err := encoder.WriteUint32(uint32(len(v.Strategies)), binary.LittleEndian); err != nil {
		return err
	}
	for i := range v.Strategies {
		if err := v.Strategies[i].MarshalWithEncoder(encoder); err != nil {
			return err
		}
	}

	return nil
}

func (f *Fee) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if f.RedemptionFeeBps, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if f.RedemptionFeeAccumulated, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if f.ManagementFeeBps, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if f.ManagementFeeLastUpdate, err = decoder.ReadInt64(binary.LittleEndian); err != nil {
		return err
	}
	if f.ManagementFeeAccumulated, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	f.PerformanceFeeBps, err = decoder.ReadUint16(binary.LittleEndian)
	return err
}

func (f *Fee) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint16(f.RedemptionFeeBps, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteUint64(f.RedemptionFeeAccumulated, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteUint16(f.ManagementFeeBps, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteInt64(f.ManagementFeeLastUpdate, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteUint64(f.ManagementFeeAccumulated, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteUint16(f.PerformanceFeeBps, binary.LittleEndian)
}

func (a *Asset) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if a.AssetID, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if a.Mint, err = readPublicKey(decoder); err != nil {
		return err
	}
	if a.Decimals, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if a.Ata, err = readPublicKey(decoder); err != nil {
		return err
	}
	a.Oracle, err = readPublicKey(decoder)
	return err
}

func (a *Asset) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint16(a.AssetID, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteBytes(a.Mint.Bytes(), false); err != nil {
		return err
	}
	if err := encoder.WriteUint8(a.Decimals); err != nil {
		return err
	}
	if err := encoder.WriteBytes(a.Ata.Bytes(), false); err != nil {
		return err
	}
	return encoder.WriteBytes(a.Oracle.Bytes(), false)
}

func (s *StrategyRecord) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if s.StrategyID, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if s.AssetID, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if s.Balance, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	s.NetEarnings, err = decoder.ReadInt64(binary.LittleEndian)
	return err
}

func (s *StrategyRecord) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint16(s.StrategyID, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteUint16(s.AssetID, binary.LittleEndian); err != nil {
		return err
	}
	if err := encoder.WriteUint64(s.Balance, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteInt64(s.NetEarnings, binary.LittleEndian)
}

func readPublicKey(decoder *bin.Decoder) (solana.PublicKey, error) {
	raw, err := decoder.ReadNBytes(32)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(raw), nil
}

func anchorAccountDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var disc [8]byte
	copy(disc[:], sum[:8])
	return disc
}
