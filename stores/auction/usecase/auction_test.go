package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/base/ptr"
	"github.com/phoenix-escrow/goapi/domain"
	"github.com/phoenix-escrow/goapi/domain/auction"
	mockAuction "github.com/phoenix-escrow/goapi/domain/auction/mocks"
	mockEscrow "github.com/phoenix-escrow/goapi/domain/escrow/mocks"
)

var (
	mockCtx = ctx.Background()

	seller = domain.Address("phoenix1seller")
	alice  = domain.Address("phoenix1alice")
	bob    = domain.Address("phoenix1bob")
	owner  = domain.Address("phoenix1owner")

	errLedgerDown = errors.New("instruction write failed")
)

type testsuite struct {
	suite.Suite
	mockRepo   *mockAuction.Repo
	mockLedger *mockEscrow.Ledger
	now        time.Time
	subject    auction.UseCase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockAuction.Repo{}
	t.mockLedger = &mockEscrow.Ledger{}
	// storage transactions run their body directly against the mocks
	t.mockRepo.On("RunWithTransaction", mock.Anything, mock.Anything).Return(
		func(c ctx.Ctx, run func(ctx.Ctx) error) error { return run(c) },
	).Maybe()
	t.now = time.Unix(1700000000, 0).UTC()
	t.subject = NewAuctionUseCase(&AuctionUseCaseCfg{
		Repo:   t.mockRepo,
		Ledger: t.mockLedger,
		Owner:  owner,
		Clock:  func() time.Time { return t.now },
	})
}

func (t *testsuite) activeAuction() *auction.Auction {
	return &auction.Auction{
		Id:            1,
		Seller:        seller,
		Description:   "vintage synth",
		StartingPrice: 1000,
		Status:        auction.StatusActive,
		CreatedAt:     t.now.Add(-time.Hour),
		EndTime:       t.now.Add(24 * time.Hour),
	}
}

func (t *testsuite) TestInitialize() {
	t.mockRepo.On("ResetCounter", mockCtx).Return(nil).Once()
	t.NoError(t.subject.Initialize(mockCtx))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestCreateAllocatesSequentialIds() {
	t.mockRepo.On("NextId", mockCtx).Return(domain.AuctionId(1), nil).Once()
	t.mockRepo.On("NextId", mockCtx).Return(domain.AuctionId(2), nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Twice()

	payload := &auction.CreatePayload{
		Description:   "vintage synth",
		StartingPrice: 1000,
		Duration:      72 * time.Hour,
	}

	res, err := t.subject.Create(mockCtx, seller, payload)
	t.NoError(err)
	t.Equal(domain.AuctionId(1), res.AuctionId)
	t.Equal(seller, res.Seller)

	res, err = t.subject.Create(mockCtx, seller, payload)
	t.NoError(err)
	t.Equal(domain.AuctionId(2), res.AuctionId)
}

func (t *testsuite) TestCreateWritesActiveRecord() {
	var written *auction.Auction
	t.mockRepo.On("NextId", mockCtx).Return(domain.AuctionId(7), nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).(*auction.Auction)
	}).Return(nil).Once()

	_, err := t.subject.Create(mockCtx, seller, &auction.CreatePayload{
		Description:   "vintage synth",
		StartingPrice: 1000,
		ReservePrice:  ptr.Int64(2000),
		Duration:      72 * time.Hour,
	})
	t.NoError(err)
	t.Equal(domain.AuctionId(7), written.Id)
	t.Equal(auction.StatusActive, written.Status)
	t.Equal(t.now, written.CreatedAt)
	t.Equal(t.now.Add(72*time.Hour), written.EndTime)
	t.Nil(written.CurrentBid)
	t.Equal(int64(2000), *written.ReservePrice)
}

func (t *testsuite) TestCreateValidation() {
	cases := []struct {
		name    string
		seller  domain.Address
		payload *auction.CreatePayload
		wantErr error
	}{
		{
			name:    "empty seller",
			seller:  domain.EmptyAddress,
			payload: &auction.CreatePayload{Description: "x", StartingPrice: 1, Duration: 48 * time.Hour},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "empty description",
			seller:  seller,
			payload: &auction.CreatePayload{StartingPrice: 1, Duration: 48 * time.Hour},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "zero starting price",
			seller:  seller,
			payload: &auction.CreatePayload{Description: "x", Duration: 48 * time.Hour},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "duration too short",
			seller:  seller,
			payload: &auction.CreatePayload{Description: "x", StartingPrice: 1, Duration: time.Hour},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "duration too long",
			seller:  seller,
			payload: &auction.CreatePayload{Description: "x", StartingPrice: 1, Duration: 366 * 24 * time.Hour},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "reserve below starting price",
			seller:  seller,
			payload: &auction.CreatePayload{Description: "x", StartingPrice: 100, ReservePrice: ptr.Int64(50), Duration: 48 * time.Hour},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, c := range cases {
		_, err := t.subject.Create(mockCtx, c.seller, c.payload)
		t.Equal(c.wantErr, err, c.name)
	}
	t.mockRepo.AssertNotCalled(t.T(), "NextId", mockCtx)
	t.mockRepo.AssertNotCalled(t.T(), "Upsert", mockCtx, mock.Anything)
}

func (t *testsuite) TestPlaceBid() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()
	t.mockLedger.On("Hold", mockCtx, domain.AuctionId(1), alice, int64(1500)).Return(nil).Once()

	res, err := t.subject.PlaceBid(mockCtx, 1, alice, 1500)
	t.NoError(err)
	t.Equal(int64(1500), res.Amount)
	t.Equal(alice, res.Bidder)
	t.Equal(int64(1500), a.CurrentBid.Amount)
	t.Len(a.Bids, 1)
	t.mockLedger.AssertExpectations(t.T())
	t.mockLedger.AssertNotCalled(t.T(), "Refund", mockCtx, domain.AuctionId(1), mock.Anything, mock.Anything)
}

func (t *testsuite) TestPlaceBidRefundsOutbid() {
	a := t.activeAuction()
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now.Add(-time.Minute)}
	a.Bids = []auction.Bid{*a.CurrentBid}

	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()
	t.mockLedger.On("Hold", mockCtx, domain.AuctionId(1), bob, int64(2000)).Return(nil).Once()
	t.mockLedger.On("Refund", mockCtx, domain.AuctionId(1), alice, int64(1500)).Return(nil).Once()

	res, err := t.subject.PlaceBid(mockCtx, 1, bob, 2000)
	t.NoError(err)
	t.Equal(int64(2000), res.Amount)
	t.Len(a.Bids, 2)
	t.mockLedger.AssertExpectations(t.T())
}

func (t *testsuite) TestPlaceBidRejections() {
	t.mockLedger.On("Hold", mockCtx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// below starting price on a fresh auction
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil)
	_, err := t.subject.PlaceBid(mockCtx, 1, alice, 1000)
	t.Equal(domain.ErrBidTooLow, err, "bid equal to starting price")

	_, err = t.subject.PlaceBid(mockCtx, 1, alice, 0)
	t.Equal(domain.ErrNoValueAttached, err, "no value attached")

	// not above the standing bid
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	_, err = t.subject.PlaceBid(mockCtx, 1, bob, 1400)
	t.Equal(domain.ErrBidTooLow, err, "bid below standing bid")

	// past the deadline
	a.CurrentBid = nil
	a.EndTime = t.now.Add(-time.Second)
	_, err = t.subject.PlaceBid(mockCtx, 1, alice, 5000)
	t.Equal(domain.ErrAuctionEnded, err, "expired auction")

	// not active
	a.EndTime = t.now.Add(time.Hour)
	a.Status = auction.StatusSold
	_, err = t.subject.PlaceBid(mockCtx, 1, alice, 5000)
	t.Equal(domain.ErrAuctionNotActive, err, "ended auction")

	t.mockRepo.AssertNotCalled(t.T(), "Upsert", mockCtx, mock.Anything)
}

func (t *testsuite) TestPlaceBidMissingAuction() {
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(9)).Return(nil, domain.ErrNotFound)

	// a missing auction is reported before the attached value is inspected
	_, err := t.subject.PlaceBid(mockCtx, 9, alice, 0)
	t.Equal(domain.ErrNotFound, err)

	_, err = t.subject.PlaceBid(mockCtx, 9, alice, 1500)
	t.Equal(domain.ErrNotFound, err)
}

func (t *testsuite) TestPlaceBidHoldFailurePropagates() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()
	t.mockLedger.On("Hold", mockCtx, domain.AuctionId(1), alice, int64(1500)).Return(errLedgerDown).Once()

	_, err := t.subject.PlaceBid(mockCtx, 1, alice, 1500)
	t.Equal(errLedgerDown, err)
	t.mockLedger.AssertExpectations(t.T())
}

func (t *testsuite) TestPlaceBidMinIncrement() {
	subject := NewAuctionUseCase(&AuctionUseCaseCfg{
		Repo:            t.mockRepo,
		Ledger:          t.mockLedger,
		MinBidIncrement: 100,
		Clock:           func() time.Time { return t.now },
	})

	a := t.activeAuction()
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil)
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil)
	t.mockLedger.On("Hold", mockCtx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	t.mockLedger.On("Refund", mockCtx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := subject.PlaceBid(mockCtx, 1, bob, 1599)
	t.Equal(domain.ErrBidTooLow, err)

	_, err = subject.PlaceBid(mockCtx, 1, bob, 1600)
	t.NoError(err)
}

func (t *testsuite) TestEndBySeller() {
	a := t.activeAuction()
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()

	res, err := t.subject.End(mockCtx, 1, seller)
	t.NoError(err)
	t.Equal(auction.StatusSold, res.Status)
	t.Equal("sold", res.Outcome)
}

func (t *testsuite) TestEndEarlyByNonSellerUnauthorized() {
	a := t.activeAuction()
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()

	_, err := t.subject.End(mockCtx, 1, alice)
	t.Equal(domain.ErrUnauthorized, err)
	t.Equal(auction.StatusActive, a.Status)
	t.mockRepo.AssertNotCalled(t.T(), "Upsert", mockCtx, mock.Anything)
}

func (t *testsuite) TestEndExpiredByAnyone() {
	a := t.activeAuction()
	a.EndTime = t.now.Add(-time.Minute)
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()

	res, err := t.subject.End(mockCtx, 1, bob)
	t.NoError(err)
	t.Equal(auction.StatusEndedNoBids, res.Status)
	t.Equal("no_bids", res.Outcome)
}

func (t *testsuite) TestEndReserveNotMet() {
	a := t.activeAuction()
	a.ReservePrice = ptr.Int64(3000)
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()

	res, err := t.subject.End(mockCtx, 1, seller)
	t.NoError(err)
	t.Equal(auction.StatusEndedNoSale, res.Status)
	t.Equal("reserve_not_met", res.Outcome)
}

func (t *testsuite) TestEndTwiceRejected() {
	a := t.activeAuction()
	a.Status = auction.StatusSold
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()

	_, err := t.subject.End(mockCtx, 1, seller)
	t.Equal(domain.ErrAuctionNotActive, err)
}

func (t *testsuite) TestRelease() {
	a := t.activeAuction()
	a.Status = auction.StatusSold
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()
	t.mockLedger.On("Transfer", mockCtx, domain.AuctionId(1), seller, int64(1500)).Return(nil).Once()

	res, err := t.subject.Release(mockCtx, 1, seller)
	t.NoError(err)
	t.Equal(auction.StatusCompleted, res.Status)
	t.Equal(int64(1500), res.Amount)
	t.Equal(auction.SettlementReleased, a.Settlement)
	t.Equal(int64(0), a.EscrowedAmount())
	t.mockLedger.AssertExpectations(t.T())
	t.mockRepo.AssertCalled(t.T(), "RunWithTransaction", mockCtx, mock.Anything)
}

func (t *testsuite) TestReleaseRetryableAfterTransferFailure() {
	// each attempt reloads the stored record, which a failed transfer
	// must have left untouched
	soldRecord := func(ctx.Ctx, domain.AuctionId) *auction.Auction {
		a := t.activeAuction()
		a.Status = auction.StatusSold
		a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
		return a
	}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(soldRecord, nil)
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil)
	t.mockLedger.On("Transfer", mockCtx, domain.AuctionId(1), seller, int64(1500)).Return(errLedgerDown).Once()
	t.mockLedger.On("Transfer", mockCtx, domain.AuctionId(1), seller, int64(1500)).Return(nil).Once()

	_, err := t.subject.Release(mockCtx, 1, seller)
	t.Equal(errLedgerDown, err)

	res, err := t.subject.Release(mockCtx, 1, seller)
	t.NoError(err)
	t.Equal(auction.StatusCompleted, res.Status)
	t.Equal(int64(1500), res.Amount)
	t.mockLedger.AssertExpectations(t.T())
}

func (t *testsuite) TestReleaseNotReentrant() {
	a := t.activeAuction()
	a.Status = auction.StatusCompleted
	a.Settlement = auction.SettlementReleased
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()

	_, err := t.subject.Release(mockCtx, 1, seller)
	t.Equal(domain.ErrAuctionNotEnded, err)
	t.mockLedger.AssertNotCalled(t.T(), "Transfer", mockCtx, mock.Anything, mock.Anything, mock.Anything)
}

func (t *testsuite) TestReleaseOnlySeller() {
	a := t.activeAuction()
	a.Status = auction.StatusSold
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()

	_, err := t.subject.Release(mockCtx, 1, alice)
	t.Equal(domain.ErrUnauthorized, err)
}

func (t *testsuite) TestRefund() {
	a := t.activeAuction()
	a.Status = auction.StatusEndedNoSale
	a.ReservePrice = ptr.Int64(3000)
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()
	t.mockLedger.On("Refund", mockCtx, domain.AuctionId(1), alice, int64(1500)).Return(nil).Once()

	res, err := t.subject.Refund(mockCtx, 1, alice)
	t.NoError(err)
	t.Equal(auction.StatusCompleted, res.Status)
	t.Equal(alice, res.Bidder)
	t.Equal(auction.SettlementRefunded, a.Settlement)
	t.mockLedger.AssertExpectations(t.T())
	t.mockRepo.AssertCalled(t.T(), "RunWithTransaction", mockCtx, mock.Anything)
}

func (t *testsuite) TestRefundOnlyAfterReserveMiss() {
	a := t.activeAuction()
	a.Status = auction.StatusSold
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()

	_, err := t.subject.Refund(mockCtx, 1, alice)
	t.Equal(domain.ErrAuctionNotEnded, err)
}

func (t *testsuite) TestCancel() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()

	res, err := t.subject.Cancel(mockCtx, 1, seller)
	t.NoError(err)
	t.Equal(auction.StatusCancelled, res.Status)
}

func (t *testsuite) TestCancelWithBidRejected() {
	a := t.activeAuction()
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()

	_, err := t.subject.Cancel(mockCtx, 1, seller)
	t.Equal(domain.ErrInvalidInput, err)
	t.mockRepo.AssertNotCalled(t.T(), "Upsert", mockCtx, mock.Anything)
}

func (t *testsuite) TestDispute() {
	a := t.activeAuction()
	a.Status = auction.StatusSold
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil).Once()
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil).Once()

	res, err := t.subject.Dispute(mockCtx, 1, alice, "item not as described")
	t.NoError(err)
	t.Equal(auction.StatusDisputed, res.Status)
	t.Equal(alice, res.Disputer)
	t.Equal(alice, a.DisputedBy)
	// escrow stays frozen
	t.Equal(int64(1500), a.EscrowedAmount())
}

func (t *testsuite) TestDisputeAuthorization() {
	a := t.activeAuction()
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil)

	_, err := t.subject.Dispute(mockCtx, 1, bob, "sour grapes")
	t.Equal(domain.ErrUnauthorized, err)

	a.Status = auction.StatusCompleted
	_, err = t.subject.Dispute(mockCtx, 1, alice, "too late")
	t.Equal(domain.ErrInvalidInput, err)
}

func (t *testsuite) TestResolveRemainsUnimplemented() {
	a := t.activeAuction()
	a.Status = auction.StatusDisputed
	a.CurrentBid = &auction.Bid{Bidder: alice, Amount: 1500, PlacedAt: t.now}
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil)

	t.Equal(domain.ErrUnauthorized, t.subject.Resolve(mockCtx, 1, alice))
	t.Equal(domain.ErrNotImplemented, t.subject.Resolve(mockCtx, 1, owner))
	t.mockRepo.AssertNotCalled(t.T(), "Upsert", mockCtx, mock.Anything)
}

func (t *testsuite) TestListBuildsCursorOptions() {
	t.mockRepo.On("FindAll", mockCtx, mock.Anything, mock.Anything).Return([]*auction.Auction{{Id: 3}}, nil).Once()

	startAfter := domain.AuctionId(2)
	res, err := t.subject.List(mockCtx, &startAfter, ptr.Int(1))
	t.NoError(err)
	t.Len(res, 1)
	t.Equal(domain.AuctionId(3), res[0].Id)

	call := t.mockRepo.Calls[0]
	opts, err := auction.GetFindAllOptions(
		call.Arguments.Get(1).(auction.FindAllOptionsFunc),
		call.Arguments.Get(2).(auction.FindAllOptionsFunc),
	)
	t.NoError(err)
	t.Equal(domain.AuctionId(2), *opts.IdGT)
	t.Equal(1, *opts.Limit)
}

func (t *testsuite) TestListDefaultLimit() {
	t.mockRepo.On("FindAll", mockCtx, mock.Anything).Return([]*auction.Auction{}, nil).Once()

	_, err := t.subject.List(mockCtx, nil, nil)
	t.NoError(err)

	call := t.mockRepo.Calls[0]
	opts, err := auction.GetFindAllOptions(call.Arguments.Get(1).(auction.FindAllOptionsFunc))
	t.NoError(err)
	t.Nil(opts.IdGT)
	t.Equal(10, *opts.Limit)
}

func (t *testsuite) TestCount() {
	t.mockRepo.On("Count", mockCtx).Return(int64(5), nil).Once()

	cnt, err := t.subject.Count(mockCtx)
	t.NoError(err)
	t.Equal(int64(5), cnt)
}

func (t *testsuite) TestWorkedLifecycle() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, domain.AuctionId(1)).Return(a, nil)
	t.mockRepo.On("Upsert", mockCtx, mock.Anything).Return(nil)
	t.mockLedger.On("Hold", mockCtx, domain.AuctionId(1), alice, int64(1500)).Return(nil).Once()
	t.mockLedger.On("Transfer", mockCtx, domain.AuctionId(1), seller, int64(1500)).Return(nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, 1, alice, 1500)
	t.NoError(err)

	_, err = t.subject.PlaceBid(mockCtx, 1, bob, 1400)
	t.Equal(domain.ErrBidTooLow, err)

	endRes, err := t.subject.End(mockCtx, 1, seller)
	t.NoError(err)
	t.Equal(auction.StatusSold, endRes.Status)

	relRes, err := t.subject.Release(mockCtx, 1, seller)
	t.NoError(err)
	t.Equal(int64(1500), relRes.Amount)

	_, err = t.subject.Release(mockCtx, 1, seller)
	t.Equal(domain.ErrAuctionNotEnded, err)
	t.mockLedger.AssertExpectations(t.T())
}
