package coder

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeIssuePayload(t *testing.T) {
	c := NewCarrotInstructionCoder()

	// 1 USDC at 6 decimals.
	data, err := c.EncodeIssue(IssueArgs{Amount: 1_000_000})
	require.NoError(t, err)

	require.Len(t, data, 16)
	require.Equal(t, IssueDiscriminator[:], data[:8])
	require.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[8:]))
}

func TestEncodeRedeemPayload(t *testing.T) {
	c := NewCarrotInstructionCoder()

	data, err := c.EncodeRedeem(RedeemArgs{Amount: 500_000_000})
	require.NoError(t, err)

	require.Len(t, data, 16)
	require.Equal(t, RedeemDiscriminator[:], data[:8])
	require.Equal(t, uint64(500_000_000), binary.LittleEndian.Uint64(data[8:]))
}

func TestPayloadRoundTrip(t *testing.T) {
	c := NewCarrotInstructionCoder()

	for _, amount := range []uint64{0, 1, 1_000_000, math.MaxUint64} {
		issue, err := c.EncodeIssue(IssueArgs{Amount: amount})
		require.NoError(t, err)
		decoded, err := c.Decode(issue)
		require.NoError(t, err)
		require.Equal(t, IssueArgs{Amount: amount}, decoded)

		redeem, err := c.EncodeRedeem(RedeemArgs{Amount: amount})
		require.NoError(t, err)
		decoded, err = c.Decode(redeem)
		require.NoError(t, err)
		require.Equal(t, RedeemArgs{Amount: amount}, decoded)
	}
}

func TestDecodeRejectsShortPayload(t *testing.T) {
	c := NewCarrotInstructionCoder()

	_, err := c.Decode(IssueDiscriminator[:])
	require.Error(t, err)
}

func TestDecodeRejectsUnknownDiscriminator(t *testing.T) {
	c := NewCarrotInstructionCoder()

	data := make([]byte, InstructionPayloadSize)
	_, err := c.Decode(data)
	require.ErrorIs(t, err, ErrUnknownDiscriminator)
}
