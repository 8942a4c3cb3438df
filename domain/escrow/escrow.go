package escrow

import (
	"time"

	"github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/domain"
)

// InstructionType tags what the payments collaborator must do with the value.
type InstructionType string

const (
	// InstructionHold marks the attached value of an accepted bid as escrowed.
	InstructionHold InstructionType = "hold"
	// InstructionRefund returns escrowed value to a bidder.
	InstructionRefund InstructionType = "refund"
	// InstructionTransfer disburses escrowed value to the seller.
	InstructionTransfer InstructionType = "transfer"
)

// Instruction is an order to the external payments system. The state machine
// only issues instructions; it never moves value itself.
type Instruction struct {
	Type      InstructionType  `json:"type" bson:"type"`
	AuctionId domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Account   domain.Address   `json:"account" bson:"account"`
	Amount    int64            `json:"amount" bson:"amount"`
	IssuedAt  time.Time        `json:"issuedAt" bson:"issuedAt"`
}

// FindInstructionsOptions for querying the instruction audit trail
type FindInstructionsOptions struct {
	AuctionId *domain.AuctionId
	Type      *InstructionType
}

type FindInstructionsOptionsFunc func(*FindInstructionsOptions) error

func GetFindInstructionsOptions(opts ...FindInstructionsOptionsFunc) (FindInstructionsOptions, error) {
	res := FindInstructionsOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithAuctionId(id domain.AuctionId) FindInstructionsOptionsFunc {
	return func(options *FindInstructionsOptions) error {
		options.AuctionId = &id
		return nil
	}
}

func WithType(t InstructionType) FindInstructionsOptionsFunc {
	return func(options *FindInstructionsOptions) error {
		options.Type = &t
		return nil
	}
}

// Ledger receives escrow instructions from the auction state machine.
// Instructions are issued only after the auction record write has succeeded.
type Ledger interface {
	Hold(ctx ctx.Ctx, id domain.AuctionId, from domain.Address, amount int64) error
	Refund(ctx ctx.Ctx, id domain.AuctionId, to domain.Address, amount int64) error
	Transfer(ctx ctx.Ctx, id domain.AuctionId, to domain.Address, amount int64) error
	FindInstructions(ctx ctx.Ctx, opts ...FindInstructionsOptionsFunc) ([]*Instruction, error)
}
