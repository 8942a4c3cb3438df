package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/base/database/mongoclient"
	"github.com/phoenix-escrow/goapi/base/log"
	bValidator "github.com/phoenix-escrow/goapi/base/validator"
	"github.com/phoenix-escrow/goapi/domain"
	mmiddleware "github.com/phoenix-escrow/goapi/middleware"
	"github.com/phoenix-escrow/goapi/service/payout"
	"github.com/phoenix-escrow/goapi/service/query"
	auction_delivery "github.com/phoenix-escrow/goapi/stores/auction/delivery/http"
	auction_repository "github.com/phoenix-escrow/goapi/stores/auction/repository"
	auction_usecase "github.com/phoenix-escrow/goapi/stores/auction/usecase"
	auth_delivery "github.com/phoenix-escrow/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/phoenix-escrow/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/phoenix-escrow/goapi/stores/auth/usecase"
	hc_delivery "github.com/phoenix-escrow/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/phoenix-escrow/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/phoenix-escrow/goapi/stores/healthcheck/usecase"
)

func init() {
	configPath := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	ledger := payout.NewLedger(&payout.LedgerCfg{Q: q})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	auctionRepo := auction_repository.NewAuctionRepo(q)

	hc := hc_usecase.New(hcRepo)
	auction := auction_usecase.NewAuctionUseCase(&auction_usecase.AuctionUseCaseCfg{
		Repo:            auctionRepo,
		Ledger:          ledger,
		Owner:           domain.Address(viper.GetString("auction.owner")).ToLower(),
		MinBidIncrement: viper.GetInt64("auction.minBidIncrement"),
		MinDuration:     time.Duration(viper.GetInt64("auction.minDurationDays")) * 24 * time.Hour,
		MaxDuration:     time.Duration(viper.GetInt64("auction.maxDurationDays")) * 24 * time.Hour,
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))

	if viper.GetBool("auction.resetCounterOnBoot") {
		if err := auction.Initialize(context); err != nil {
			context.WithField("err", err).Panic("auction.Initialize failed")
		}
	}

	adminAddresses := viper.GetStringSlice("admin.addresses")
	auth_middleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	auction_delivery.New(e, auction, ledger, auth_middleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, auth_middleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
