package coder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Anchor instruction discriminators for the Carrot program, computed as
// sha256("global:issue")[..8] and sha256("global:redeem")[..8]. Fixed protocol
// contract with the on-chain program.
var (
	IssueDiscriminator  = [8]byte{190, 1, 98, 214, 81, 99, 222, 247}
	RedeemDiscriminator = [8]byte{184, 12, 86, 149, 70, 196, 97, 225}
)

// InstructionPayloadSize is discriminator plus a little-endian u64 amount.
const InstructionPayloadSize = 8 + 8

var ErrUnknownDiscriminator = errors.New("unknown instruction discriminator")

// IssueArgs are the arguments of the issue (deposit) instruction.
type IssueArgs struct {
	Amount uint64
}

// RedeemArgs are the arguments of the redeem (withdraw) instruction.
type RedeemArgs struct {
	Amount uint64
}

// CarrotInstructionCoder encodes and decodes Carrot instruction payloads.
type CarrotInstructionCoder struct{}

func NewCarrotInstructionCoder() *CarrotInstructionCoder {
	return &CarrotInstructionCoder{}
}

func (coder *CarrotInstructionCoder) EncodeIssue(args IssueArgs) ([]byte, error) {
	return encodePayload(IssueDiscriminator, args.Amount)
}

func (coder *CarrotInstructionCoder) EncodeRedeem(args RedeemArgs) ([]byte, error) {
	return encodePayload(RedeemDiscriminator, args.Amount)
}

// Decode decodes an instruction payload back into IssueArgs or RedeemArgs.
func (coder *CarrotInstructionCoder) Decode(data []byte) (interface{}, error) {
	if len(data) < InstructionPayloadSize {
		return nil, fmt.Errorf("instruction payload too short: %d bytes", len(data))
	}

	var disc [8]byte
	copy(disc[:], data[:8])

	decoder := bin.NewBorshDecoder(data[8:])
	amount, err := decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	switch disc {
	case IssueDiscriminator:
		return IssueArgs{Amount: amount}, nil
	case RedeemDiscriminator:
		return RedeemArgs{Amount: amount}, nil
	default:
		return nil, ErrUnknownDiscriminator
	}
}

func encodePayload(discriminator [8]byte, amount uint64) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBorshEncoder(buf)

	if err := encoder.WriteBytes(discriminator[:], false); err != nil {
		return nil, err
	}
	if err := encoder.WriteUint64(amount, binary.LittleEndian); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
