package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phoenix-escrow/goapi/base/ptr"
)

func TestFloor(t *testing.T) {
	req := require.New(t)

	a := &Auction{StartingPrice: 1000}
	req.Equal(int64(1000), a.Floor())
	req.False(a.HasBid())

	a.CurrentBid = &Bid{Bidder: "bidder1", Amount: 1500, PlacedAt: time.Now()}
	req.Equal(int64(1500), a.Floor())
	req.True(a.HasBid())
}

func TestEscrowedAmount(t *testing.T) {
	req := require.New(t)

	a := &Auction{StartingPrice: 1000, Status: StatusActive}
	req.Equal(int64(0), a.EscrowedAmount())

	a.CurrentBid = &Bid{Bidder: "bidder1", Amount: 1500}
	req.Equal(int64(1500), a.EscrowedAmount())

	a.Status = StatusSold
	req.Equal(int64(1500), a.EscrowedAmount())

	a.Status = StatusDisputed
	req.Equal(int64(1500), a.EscrowedAmount())

	a.Status = StatusCompleted
	a.Settlement = SettlementReleased
	req.Equal(int64(0), a.EscrowedAmount())
}

func TestStatusIsTerminal(t *testing.T) {
	req := require.New(t)

	req.False(StatusActive.IsTerminal())
	for _, s := range []Status{StatusSold, StatusEndedNoSale, StatusEndedNoBids, StatusCancelled, StatusDisputed, StatusCompleted} {
		req.True(s.IsTerminal(), string(s))
	}
}

func TestStatusOutcome(t *testing.T) {
	req := require.New(t)

	req.Equal("sold", StatusSold.Outcome())
	req.Equal("reserve_not_met", StatusEndedNoSale.Outcome())
	req.Equal("no_bids", StatusEndedNoBids.Outcome())
	req.Equal("cancelled", StatusCancelled.Outcome())
}

func TestGetFindAllOptions(t *testing.T) {
	req := require.New(t)

	opts, err := GetFindAllOptions(WithIdGT(2), WithStatus(StatusActive), WithLimit(10))
	req.NoError(err)
	req.Equal(int64(2), int64(*opts.IdGT))
	req.Equal(StatusActive, *opts.Status)
	req.Equal(*ptr.Int(10), *opts.Limit)
}
