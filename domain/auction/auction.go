package auction

import (
	"time"

	"github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/domain"
)

// Status is the auction lifecycle state. Active is the only state that
// admits bids; everything else is terminal for bid/end purposes.
type Status string

const (
	StatusActive      Status = "active"
	StatusSold        Status = "sold"
	StatusEndedNoSale Status = "ended_no_sale"
	StatusEndedNoBids Status = "ended_no_bids"
	StatusCancelled   Status = "cancelled"
	StatusDisputed    Status = "disputed"
	StatusCompleted   Status = "completed"
)

func (s Status) IsTerminal() bool {
	return s != StatusActive
}

// Outcome is the closing disposition echoed to the caller of End.
func (s Status) Outcome() string {
	switch s {
	case StatusSold:
		return "sold"
	case StatusEndedNoSale:
		return "reserve_not_met"
	case StatusEndedNoBids:
		return "no_bids"
	default:
		return string(s)
	}
}

// Settlement records how the escrowed value was ultimately disposed.
type Settlement string

const (
	SettlementNone     Settlement = ""
	SettlementReleased Settlement = "released"
	SettlementRefunded Settlement = "refunded"
)

// Bid is immutable once accepted.
type Bid struct {
	Bidder   domain.Address `json:"bidder" bson:"bidder"`
	Amount   int64          `json:"amount" bson:"amount"`
	PlacedAt time.Time      `json:"placedAt" bson:"placedAt"`
}

type Auction struct {
	Id            domain.AuctionId `json:"id" bson:"id"`
	Seller        domain.Address   `json:"seller" bson:"seller"`
	Description   string           `json:"description" bson:"description"`
	StartingPrice int64            `json:"startingPrice" bson:"startingPrice"`
	ReservePrice  *int64           `json:"reservePrice,omitempty" bson:"reservePrice,omitempty"`
	CurrentBid    *Bid             `json:"currentBid,omitempty" bson:"currentBid,omitempty"`
	// Bids is the append-only history of every accepted bid.
	Bids       []Bid      `json:"bids" bson:"bids"`
	Status     Status     `json:"status" bson:"status"`
	Settlement Settlement `json:"settlement,omitempty" bson:"settlement,omitempty"`
	// DisputedBy and DisputeReason are set once a dispute freezes the auction.
	DisputedBy    domain.Address `json:"disputedBy,omitempty" bson:"disputedBy,omitempty"`
	DisputeReason string         `json:"disputeReason,omitempty" bson:"disputeReason,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	EndTime       time.Time      `json:"endTime" bson:"endTime"`
}

// Floor is the amount a new bid must exceed.
func (a *Auction) Floor() int64 {
	if a.CurrentBid != nil {
		return a.CurrentBid.Amount
	}
	return a.StartingPrice
}

func (a *Auction) HasBid() bool {
	return a.CurrentBid != nil
}

func (a *Auction) IsSeller(addr domain.Address) bool {
	return a.Seller.Equals(addr)
}

func (a *Auction) IsHighestBidder(addr domain.Address) bool {
	return a.CurrentBid != nil && a.CurrentBid.Bidder.Equals(addr)
}

// EscrowedAmount is the value currently held on behalf of the highest bid.
// It stays equal to the winning amount through end and dispute, and drops to
// zero once a settlement is recorded.
func (a *Auction) EscrowedAmount() int64 {
	if a.CurrentBid == nil || a.Settlement != SettlementNone {
		return 0
	}
	return a.CurrentBid.Amount
}

// Counter is the persisted allocation scalar backing auction ids.
type Counter struct {
	Name  string `json:"name" bson:"name"`
	Value int64  `json:"value" bson:"value"`
}

// CounterAuctions names the auction id counter document.
const CounterAuctions = "auctions"

type FindAllOptions struct {
	IdGT   *domain.AuctionId
	Status *Status
	Limit  *int
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithIdGT(id domain.AuctionId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IdGT = &id
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithLimit(limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Limit = &limit
		return nil
	}
}

// Repo is the Auction Store: a durable id-keyed record table plus the
// allocation counter. It performs no validation; all business rules live in
// the state machine use case.
type Repo interface {
	// NextId allocates and persists a new unique, strictly increasing id.
	NextId(ctx ctx.Ctx) (domain.AuctionId, error)
	// ResetCounter zeroes the allocation counter. One-time initialization only.
	ResetCounter(ctx ctx.Ctx) error
	// FindOne returns the record for id or domain.ErrNotFound.
	FindOne(ctx ctx.Ctx, id domain.AuctionId) (*Auction, error)
	// Upsert replaces the record for the auction's id, creating it if absent.
	Upsert(ctx ctx.Ctx, a *Auction) error
	// FindAll returns records matching the options in ascending id order.
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	// Count returns the number of ids ever allocated, not the number of
	// surviving records.
	Count(ctx ctx.Ctx) (int64, error)
	// RunWithTransaction runs `run` inside a storage transaction. Writes
	// issued through the ctx handed to `run` commit or abort together.
	RunWithTransaction(ctx ctx.Ctx, run func(ctx.Ctx) error) error
}

type CreatePayload struct {
	Description   string
	StartingPrice int64
	ReservePrice  *int64
	Duration      time.Duration
}

type CreateResult struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Seller    domain.Address   `json:"seller"`
}

type PlaceBidResult struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Bidder    domain.Address   `json:"bidder"`
	Amount    int64            `json:"amount"`
}

type EndResult struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Status    Status           `json:"status"`
	Outcome   string           `json:"outcome"`
}

type ReleaseResult struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Status    Status           `json:"status"`
	Seller    domain.Address   `json:"seller"`
	Amount    int64            `json:"amount"`
}

type RefundResult struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Status    Status           `json:"status"`
	Bidder    domain.Address   `json:"bidder"`
	Amount    int64            `json:"amount"`
}

type CancelResult struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Status    Status           `json:"status"`
}

type DisputeResult struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Disputer  domain.Address   `json:"disputer"`
	Reason    string           `json:"reason"`
	Status    Status           `json:"status"`
}

// UseCase is the Auction State Machine. Every write loads the record,
// validates, computes the next record and performs a single store write;
// nothing is written on an error path.
type UseCase interface {
	Initialize(ctx ctx.Ctx) error

	Create(ctx ctx.Ctx, seller domain.Address, payload *CreatePayload) (*CreateResult, error)
	PlaceBid(ctx ctx.Ctx, id domain.AuctionId, bidder domain.Address, value int64) (*PlaceBidResult, error)
	End(ctx ctx.Ctx, id domain.AuctionId, caller domain.Address) (*EndResult, error)
	Release(ctx ctx.Ctx, id domain.AuctionId, caller domain.Address) (*ReleaseResult, error)
	Refund(ctx ctx.Ctx, id domain.AuctionId, caller domain.Address) (*RefundResult, error)
	Cancel(ctx ctx.Ctx, id domain.AuctionId, caller domain.Address) (*CancelResult, error)
	Dispute(ctx ctx.Ctx, id domain.AuctionId, caller domain.Address, reason string) (*DisputeResult, error)
	// Resolve is the deliberate gap left by the dispute flow: no transition
	// resolves a disputed auction back to a terminal state yet.
	Resolve(ctx ctx.Ctx, id domain.AuctionId, caller domain.Address) error

	Get(ctx ctx.Ctx, id domain.AuctionId) (*Auction, error)
	List(ctx ctx.Ctx, startAfter *domain.AuctionId, limit *int) ([]*Auction, error)
	ListActive(ctx ctx.Ctx) ([]*Auction, error)
	Count(ctx ctx.Ctx) (int64, error)
}
