package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/base/log"
	"github.com/phoenix-escrow/goapi/domain"
	"github.com/phoenix-escrow/goapi/domain/auction"
	"github.com/phoenix-escrow/goapi/service/query"
)

type auctionRepoImpl struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionRepoImpl{q}
}

func (im *auctionRepoImpl) counterSelector() bson.M {
	return bson.M{"name": auction.CounterAuctions}
}

func (im *auctionRepoImpl) NextId(ctx bCtx.Ctx) (domain.AuctionId, error) {
	counter := &auction.Counter{}
	if err := im.q.Increment(ctx, domain.TableCounters, im.counterSelector(), counter, "value", int64(1)); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("q.Increment failed")
		return 0, err
	}
	return domain.AuctionId(counter.Value), nil
}

func (im *auctionRepoImpl) ResetCounter(ctx bCtx.Ctx) error {
	counter := &auction.Counter{Name: auction.CounterAuctions, Value: 0}
	if err := im.q.Upsert(ctx, domain.TableCounters, im.counterSelector(), counter); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *auctionRepoImpl) FindOne(ctx bCtx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	qry := bson.M{"id": id}
	res := &auction.Auction{}
	err := im.q.FindOne(ctx, domain.TableAuctions, qry, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionRepoImpl) Upsert(ctx bCtx.Ctx, a *auction.Auction) error {
	selector := bson.M{"id": a.Id}
	if err := im.q.Upsert(ctx, domain.TableAuctions, selector, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *auctionRepoImpl) FindAll(ctx bCtx.Ctx, optFns ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{}
	if opts.IdGT != nil {
		qry["id"] = bson.M{"$gt": *opts.IdGT}
	}
	if opts.Status != nil {
		qry["status"] = *opts.Status
	}

	limit := 0
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []*auction.Auction{}
	if err := im.q.Search(ctx, domain.TableAuctions, 0, limit, "id", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionRepoImpl) Count(ctx bCtx.Ctx) (int64, error) {
	counter := &auction.Counter{}
	err := im.q.FindOne(ctx, domain.TableCounters, im.counterSelector(), counter)
	if err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("q.FindOne failed")
		return 0, err
	}
	return counter.Value, nil
}

func (im *auctionRepoImpl) RunWithTransaction(ctx bCtx.Ctx, run func(bCtx.Ctx) error) error {
	return im.q.RunWithTransaction(ctx, run)
}
