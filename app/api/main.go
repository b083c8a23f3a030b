package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/database/mongoclient"
	"github.com/aurabay/goapi/base/log"
	bValidator "github.com/aurabay/goapi/base/validator"
	"github.com/aurabay/goapi/domain"
	mmiddleware "github.com/aurabay/goapi/middleware"
	"github.com/aurabay/goapi/service/chain"
	"github.com/aurabay/goapi/service/query"
	account_delivery "github.com/aurabay/goapi/stores/account/delivery/http"
	account_repository "github.com/aurabay/goapi/stores/account/repository"
	account_usecase "github.com/aurabay/goapi/stores/account/usecase"
	auth_delivery "github.com/aurabay/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/aurabay/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/aurabay/goapi/stores/auth/usecase"
	hc_delivery "github.com/aurabay/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/aurabay/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/aurabay/goapi/stores/healthcheck/usecase"
	launchpad_delivery "github.com/aurabay/goapi/stores/launchpad/delivery/http"
	launchpad_repository "github.com/aurabay/goapi/stores/launchpad/repository"
	launchpad_usecase "github.com/aurabay/goapi/stores/launchpad/usecase"
	marketplace_delivery "github.com/aurabay/goapi/stores/marketplace/delivery/http"
	marketplace_usecase "github.com/aurabay/goapi/stores/marketplace/usecase"
	order_repository "github.com/aurabay/goapi/stores/order/repository"
	paytoken_delivery "github.com/aurabay/goapi/stores/paytoken/delivery/http"
	paytoken_repository "github.com/aurabay/goapi/stores/paytoken/repository"
	paytoken_usecase "github.com/aurabay/goapi/stores/paytoken/usecase"
	settlement_usecase "github.com/aurabay/goapi/stores/settlement/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
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

	mmiddleware.SetupCache()

	// init chain lcd client
	context.Info("init chain client")
	chainClient := chain.NewClient(&chain.ClientCfg{
		LcdUrl:     viper.GetString("chain.lcdUrl"),
		HttpClient: http.Client{},
		Timeout:    viper.GetDuration("chain.timeout"),
	})

	marketAddress := domain.Address(viper.GetString("market.address")).ToLower()
	feeCollector := domain.Address(viper.GetString("market.feeCollector")).ToLower()

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	accountRepo := account_repository.New(q)
	paytokenRepo := paytoken_repository.New(q)
	orderRepo := order_repository.New(q)
	launchpadRepo := launchpad_repository.NewLaunchpadRepo(q)
	phaseRepo := launchpad_repository.NewPhaseRepo(q)
	whitelistRepo := launchpad_repository.NewWhitelistRepo(q)
	slotRepo := launchpad_repository.NewSlotRepo(q)

	hc := hc_usecase.New(hcRepo)
	account := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Repo: accountRepo,
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), account)
	paytoken := paytoken_usecase.New(paytokenRepo)
	settlement := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		NftQuerier: chainClient,
	})
	marketplace := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		OrderRepo:     orderRepo,
		PayTokenRepo:  paytokenRepo,
		Settlement:    settlement,
		NftQuerier:    chainClient,
		TokenQuerier:  chainClient,
		ChainClient:   chainClient,
		TxRunner:      q,
		MarketAddress: marketAddress,
	})
	launchpad := launchpad_usecase.New(&launchpad_usecase.LaunchpadUseCaseCfg{
		Repo:          launchpadRepo,
		PhaseRepo:     phaseRepo,
		WhitelistRepo: whitelistRepo,
		SlotRepo:      slotRepo,
		TokenQuerier:  chainClient,
		ChainClient:   chainClient,
		TxRunner:      q,
		MarketAddress: marketAddress,
		FeeCollector:  feeCollector,
	})

	adminAddresses := viper.GetStringSlice("admin.addresses")
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	account_delivery.New(e, account)
	paytoken_delivery.New(e, paytoken, authMiddleware)
	marketplace_delivery.New(e, marketplace, authMiddleware)
	launchpad_delivery.New(e, launchpad, authMiddleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

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
