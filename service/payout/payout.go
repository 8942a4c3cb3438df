package payout

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/base/log"
	"github.com/phoenix-escrow/goapi/base/metrics"
	"github.com/phoenix-escrow/goapi/domain"
	"github.com/phoenix-escrow/goapi/domain/escrow"
	"github.com/phoenix-escrow/goapi/service/query"
)

var timeNow = time.Now

// impl records every instruction to the audit trail and emits a metric per
// instruction type. Value movement itself happens in the external payments
// system that tails the trail.
type impl struct {
	q       query.Mongo
	metrics metrics.Service
}

type LedgerCfg struct {
	Q query.Mongo
}

func NewLedger(cfg *LedgerCfg) escrow.Ledger {
	return &impl{
		q:       cfg.Q,
		metrics: metrics.New("payout"),
	}
}

func (im *impl) issue(c bCtx.Ctx, typ escrow.InstructionType, id domain.AuctionId, account domain.Address, amount int64) error {
	ins := &escrow.Instruction{
		Type:      typ,
		AuctionId: id,
		Account:   account,
		Amount:    amount,
		IssuedAt:  timeNow().UTC(),
	}

	if err := im.q.Insert(c, domain.TableEscrowInstructions, ins); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"type":      typ,
			"auctionId": id,
		}).Error("q.Insert failed")
		return err
	}

	im.metrics.BumpSum(string(typ), 1)
	c.WithFields(log.Fields{
		"type":      typ,
		"auctionId": id,
		"account":   account,
		"amount":    amount,
	}).Info("escrow instruction issued")
	return nil
}

func (im *impl) Hold(c bCtx.Ctx, id domain.AuctionId, from domain.Address, amount int64) error {
	return im.issue(c, escrow.InstructionHold, id, from, amount)
}

func (im *impl) Refund(c bCtx.Ctx, id domain.AuctionId, to domain.Address, amount int64) error {
	return im.issue(c, escrow.InstructionRefund, id, to, amount)
}

func (im *impl) Transfer(c bCtx.Ctx, id domain.AuctionId, to domain.Address, amount int64) error {
	return im.issue(c, escrow.InstructionTransfer, id, to, amount)
}

func (im *impl) FindInstructions(c bCtx.Ctx, optFns ...escrow.FindInstructionsOptionsFunc) ([]*escrow.Instruction, error) {
	opts, err := escrow.GetFindInstructionsOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetFindInstructionsOptions failed")
		return nil, err
	}

	qry := bson.M{}
	if opts.AuctionId != nil {
		qry["auctionId"] = *opts.AuctionId
	}
	if opts.Type != nil {
		qry["type"] = *opts.Type
	}

	res := []*escrow.Instruction{}
	// _id order is insertion order, which issuedAt cannot guarantee at ms resolution
	if err := im.q.Search(c, domain.TableEscrowInstructions, 0, 0, "_id", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
