package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/base/delivery"
	"github.com/phoenix-escrow/goapi/base/metrics"
	"github.com/phoenix-escrow/goapi/domain"
	"github.com/phoenix-escrow/goapi/domain/auction"
	"github.com/phoenix-escrow/goapi/domain/escrow"
	authMiddleware "github.com/phoenix-escrow/goapi/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	auction auction.UseCase
	ledger  escrow.Ledger
}

func New(
	e *echo.Echo,
	auctionUC auction.UseCase,
	ledger escrow.Ledger,
	authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("auction")

	h := &handler{auctionUC, ledger}

	gs := e.Group("/auctions")

	gs.GET("", h.list)

	gs.GET("/active", h.listActive)

	gs.GET("/count", h.count)

	gs.POST("", h.create, authMiddleware.Auth())

	g := e.Group("/auction/:id")

	g.GET("", h.get)

	g.POST("/bids", h.placeBid, authMiddleware.Auth())

	g.POST("/end", h.end, authMiddleware.Auth())

	g.POST("/release", h.release, authMiddleware.Auth())

	g.POST("/refund", h.refund, authMiddleware.Auth())

	g.POST("/cancel", h.cancel, authMiddleware.Auth())

	g.POST("/dispute", h.dispute, authMiddleware.Auth())

	g.POST("/resolve", h.resolve, authMiddleware.Auth())

	g.GET("/instructions", h.instructions, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func statusOf(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrInvalidInput, domain.ErrBidTooLow, domain.ErrNoValueAttached:
		return http.StatusBadRequest
	case domain.ErrAuctionNotActive, domain.ErrAuctionEnded, domain.ErrAuctionNotEnded:
		return http.StatusConflict
	case domain.ErrNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func parseAuctionId(c echo.Context) (domain.AuctionId, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return domain.AuctionId(id), nil
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	type params struct {
		Description   string `json:"description" validate:"required"`
		StartingPrice int64  `json:"startingPrice" validate:"required"`
		ReservePrice  *int64 `json:"reservePrice"`
		DurationDays  int64  `json:"durationDays" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Create(ctx, seller, &auction.CreatePayload{
		Description:   p.Description,
		StartingPrice: p.StartingPrice,
		ReservePrice:  p.ReservePrice,
		Duration:      time.Duration(p.DurationDays) * 24 * time.Hour,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	met.BumpSum("create.count", 1)
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	bidder := c.Get("address").(domain.Address)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Amount int64 `json:"amount" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.PlaceBid(ctx, id, bidder, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	met.BumpSum("bid.count", 1, "auctionId", fmt.Sprint(id))
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) end(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.End(ctx, id, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	met.BumpSum("end.count", 1, "outcome", res.Outcome)
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) release(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Release(ctx, id, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) refund(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Refund(ctx, id, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Cancel(ctx, id, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) dispute(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Reason string `json:"reason" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Dispute(ctx, id, caller, p.Reason)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	met.BumpSum("dispute.count", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.Resolve(ctx, id, caller); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Get(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		StartAfter *domain.AuctionId `query:"startAfter"`
		Limit      *int              `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.auction.List(ctx, p.StartAfter, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.ListActive(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) count(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cnt, err := h.auction.Count(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	res := struct {
		Count int64 `json:"count"`
	}{
		Count: cnt,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) instructions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.ledger.FindInstructions(ctx, escrow.WithAuctionId(id))
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
