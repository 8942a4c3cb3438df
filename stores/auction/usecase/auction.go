package usecase

import (
	"time"

	bCtx "github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/base/log"
	"github.com/phoenix-escrow/goapi/domain"
	"github.com/phoenix-escrow/goapi/domain/auction"
	"github.com/phoenix-escrow/goapi/domain/escrow"
)

const (
	defaultMinDuration = 24 * time.Hour
	defaultMaxDuration = 365 * 24 * time.Hour
)

type AuctionUseCaseCfg struct {
	Repo   auction.Repo
	Ledger escrow.Ledger
	// Owner is the platform operator allowed to act on disputes.
	Owner           domain.Address
	MinBidIncrement int64
	MinDuration     time.Duration
	MaxDuration     time.Duration
	// Clock is swappable for tests. Defaults to time.Now.
	Clock func() time.Time
}

type auctionUseCaseImpl struct {
	repo            auction.Repo
	ledger          escrow.Ledger
	owner           domain.Address
	minBidIncrement int64
	minDuration     time.Duration
	maxDuration     time.Duration
	clock           func() time.Time
}

func NewAuctionUseCase(cfg *AuctionUseCaseCfg) auction.UseCase {
	im := &auctionUseCaseImpl{
		repo:            cfg.Repo,
		ledger:          cfg.Ledger,
		owner:           cfg.Owner,
		minBidIncrement: cfg.MinBidIncrement,
		minDuration:     cfg.MinDuration,
		maxDuration:     cfg.MaxDuration,
		clock:           cfg.Clock,
	}
	if im.minDuration == 0 {
		im.minDuration = defaultMinDuration
	}
	if im.maxDuration == 0 {
		im.maxDuration = defaultMaxDuration
	}
	if im.clock == nil {
		im.clock = time.Now
	}
	return im
}

func (im *auctionUseCaseImpl) Initialize(ctx bCtx.Ctx) error {
	if err := im.repo.ResetCounter(ctx); err != nil {
		ctx.WithField("err", err).Error("repo.ResetCounter failed")
		return err
	}
	return nil
}

func (im *auctionUseCaseImpl) Create(ctx bCtx.Ctx, seller domain.Address, payload *auction.CreatePayload) (*auction.CreateResult, error) {
	if seller.IsEmpty() {
		return nil, domain.ErrUnauthorized
	}
	if payload.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if payload.StartingPrice <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if payload.Duration < im.minDuration || payload.Duration > im.maxDuration {
		return nil, domain.ErrInvalidInput
	}
	if payload.ReservePrice != nil && *payload.ReservePrice < payload.StartingPrice {
		return nil, domain.ErrInvalidInput
	}

	id, err := im.repo.NextId(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("repo.NextId failed")
		return nil, err
	}

	now := im.clock().UTC()
	a := &auction.Auction{
		Id:            id,
		Seller:        seller.ToLower(),
		Description:   payload.Description,
		StartingPrice: payload.StartingPrice,
		ReservePrice:  payload.ReservePrice,
		Status:        auction.StatusActive,
		CreatedAt:     now,
		EndTime:       now.Add(payload.Duration),
	}
	if err := im.repo.Upsert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Upsert failed")
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"id":     id,
		"seller": a.Seller,
	}).Info("auction created")
	return &auction.CreateResult{AuctionId: id, Seller: a.Seller}, nil
}

func (im *auctionUseCaseImpl) PlaceBid(ctx bCtx.Ctx, id domain.AuctionId, bidder domain.Address, value int64) (*auction.PlaceBidResult, error) {
	if bidder.IsEmpty() {
		return nil, domain.ErrUnauthorized
	}

	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.Status != auction.StatusActive {
		return nil, domain.ErrAuctionNotActive
	}
	now := im.clock().UTC()
	if now.After(a.EndTime) {
		return nil, domain.ErrAuctionEnded
	}
	if value <= 0 {
		return nil, domain.ErrNoValueAttached
	}
	if value <= a.Floor() || value < a.Floor()+im.minBidIncrement {
		return nil, domain.ErrBidTooLow
	}

	outbid := a.CurrentBid
	bid := auction.Bid{
		Bidder:   bidder.ToLower(),
		Amount:   value,
		PlacedAt: now,
	}
	a.CurrentBid = &bid
	a.Bids = append(a.Bids, bid)

	// the record and its escrow instructions must land together
	run := func(c bCtx.Ctx) error {
		if err := im.repo.Upsert(c, a); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("repo.Upsert failed")
			return err
		}
		if err := im.ledger.Hold(c, id, bid.Bidder, bid.Amount); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("ledger.Hold failed")
			return err
		}
		if outbid != nil {
			if err := im.ledger.Refund(c, id, outbid.Bidder, outbid.Amount); err != nil {
				c.WithFields(log.Fields{
					"err": err,
					"id":  id,
				}).Error("ledger.Refund failed")
				return err
			}
		}
		return nil
	}
	if err := im.repo.RunWithTransaction(ctx, run); err != nil {
		return nil, err
	}

	return &auction.PlaceBidResult{AuctionId: id, Bidder: bid.Bidder, Amount: bid.Amount}, nil
}

func (im *auctionUseCaseImpl) End(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Address) (*auction.EndResult, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.Status != auction.StatusActive {
		return nil, domain.ErrAuctionNotActive
	}
	now := im.clock().UTC()
	// before the deadline only the seller may close; once expired anyone can
	if now.Before(a.EndTime) && !a.IsSeller(caller) {
		return nil, domain.ErrUnauthorized
	}

	switch {
	case !a.HasBid():
		a.Status = auction.StatusEndedNoBids
	case a.ReservePrice != nil && a.CurrentBid.Amount < *a.ReservePrice:
		a.Status = auction.StatusEndedNoSale
	default:
		a.Status = auction.StatusSold
	}

	if err := im.repo.Upsert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Upsert failed")
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"id":      id,
		"status":  a.Status,
		"outcome": a.Status.Outcome(),
	}).Info("auction ended")
	return &auction.EndResult{AuctionId: id, Status: a.Status, Outcome: a.Status.Outcome()}, nil
}

func (im *auctionUseCaseImpl) Release(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Address) (*auction.ReleaseResult, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.IsSeller(caller) {
		return nil, domain.ErrUnauthorized
	}
	if a.Status != auction.StatusSold {
		return nil, domain.ErrAuctionNotEnded
	}

	amount := a.EscrowedAmount()
	a.Status = auction.StatusCompleted
	a.Settlement = auction.SettlementReleased

	// settle and record the transfer instruction atomically, or a failed
	// transfer would leave a completed record with the payout lost
	run := func(c bCtx.Ctx) error {
		if err := im.repo.Upsert(c, a); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("repo.Upsert failed")
			return err
		}
		if err := im.ledger.Transfer(c, id, a.Seller, amount); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("ledger.Transfer failed")
			return err
		}
		return nil
	}
	if err := im.repo.RunWithTransaction(ctx, run); err != nil {
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"id":     id,
		"amount": amount,
	}).Info("escrow released")
	return &auction.ReleaseResult{AuctionId: id, Status: a.Status, Seller: a.Seller, Amount: amount}, nil
}

func (im *auctionUseCaseImpl) Refund(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Address) (*auction.RefundResult, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.IsSeller(caller) && !a.IsHighestBidder(caller) {
		return nil, domain.ErrUnauthorized
	}
	if a.Status != auction.StatusEndedNoSale {
		return nil, domain.ErrAuctionNotEnded
	}

	bidder := a.CurrentBid.Bidder
	amount := a.EscrowedAmount()
	a.Status = auction.StatusCompleted
	a.Settlement = auction.SettlementRefunded

	run := func(c bCtx.Ctx) error {
		if err := im.repo.Upsert(c, a); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("repo.Upsert failed")
			return err
		}
		if err := im.ledger.Refund(c, id, bidder, amount); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("ledger.Refund failed")
			return err
		}
		return nil
	}
	if err := im.repo.RunWithTransaction(ctx, run); err != nil {
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"id":     id,
		"amount": amount,
	}).Info("escrow refunded")
	return &auction.RefundResult{AuctionId: id, Status: a.Status, Bidder: bidder, Amount: amount}, nil
}

func (im *auctionUseCaseImpl) Cancel(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Address) (*auction.CancelResult, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.IsSeller(caller) {
		return nil, domain.ErrUnauthorized
	}
	if a.Status != auction.StatusActive {
		return nil, domain.ErrAuctionNotActive
	}
	// once value is held there is nothing cancellation can do with it
	if a.HasBid() {
		return nil, domain.ErrInvalidInput
	}

	a.Status = auction.StatusCancelled
	if err := im.repo.Upsert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Upsert failed")
		return nil, err
	}

	ctx.WithField("id", id).Info("auction cancelled")
	return &auction.CancelResult{AuctionId: id, Status: a.Status}, nil
}

func (im *auctionUseCaseImpl) Dispute(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Address, reason string) (*auction.DisputeResult, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.IsSeller(caller) && !a.IsHighestBidder(caller) {
		return nil, domain.ErrUnauthorized
	}
	if a.Status == auction.StatusCompleted || a.Status == auction.StatusDisputed {
		return nil, domain.ErrInvalidInput
	}

	a.Status = auction.StatusDisputed
	a.DisputedBy = caller.ToLower()
	a.DisputeReason = reason

	if err := im.repo.Upsert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Upsert failed")
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"id":       id,
		"disputer": a.DisputedBy,
	}).Info("auction disputed")
	return &auction.DisputeResult{AuctionId: id, Disputer: a.DisputedBy, Reason: reason, Status: a.Status}, nil
}

func (im *auctionUseCaseImpl) Resolve(ctx bCtx.Ctx, id domain.AuctionId, caller domain.Address) error {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if !im.owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if a.Status != auction.StatusDisputed {
		return domain.ErrInvalidInput
	}

	// Escrow stays frozen until a resolution transition exists.
	return domain.ErrNotImplemented
}

func (im *auctionUseCaseImpl) Get(ctx bCtx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		if err != domain.ErrNotFound {
			ctx.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("repo.FindOne failed")
		}
		return nil, err
	}
	return a, nil
}

const defaultListLimit = 10

func (im *auctionUseCaseImpl) List(ctx bCtx.Ctx, startAfter *domain.AuctionId, limit *int) ([]*auction.Auction, error) {
	opts := []auction.FindAllOptionsFunc{}
	if startAfter != nil {
		opts = append(opts, auction.WithIdGT(*startAfter))
	}
	if limit != nil && *limit > 0 {
		opts = append(opts, auction.WithLimit(*limit))
	} else {
		opts = append(opts, auction.WithLimit(defaultListLimit))
	}

	res, err := im.repo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionUseCaseImpl) ListActive(ctx bCtx.Ctx) ([]*auction.Auction, error) {
	res, err := im.repo.FindAll(ctx, auction.WithStatus(auction.StatusActive))
	if err != nil {
		ctx.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionUseCaseImpl) Count(ctx bCtx.Ctx) (int64, error) {
	cnt, err := im.repo.Count(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("repo.Count failed")
		return 0, err
	}
	return cnt, nil
}
