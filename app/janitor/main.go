package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/database/mongoclient"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/base/metrics"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/order"
	"github.com/aurabay/goapi/service/chain"
	"github.com/aurabay/goapi/service/query"
	marketplace_usecase "github.com/aurabay/goapi/stores/marketplace/usecase"
	order_repository "github.com/aurabay/goapi/stores/order/repository"
	paytoken_repository "github.com/aurabay/goapi/stores/paytoken/repository"
	settlement_usecase "github.com/aurabay/goapi/stores/settlement/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/janitor/config.yaml", "config file path")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// janitor periodically removes expired listings and offers so queries
// never serve dead orders
func main() {
	context := bCtx.Background()
	met := metrics.New("janitor")

	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	chainClient := chain.NewClient(&chain.ClientCfg{
		LcdUrl:     viper.GetString("chain.lcdUrl"),
		HttpClient: http.Client{},
		Timeout:    viper.GetDuration("chain.timeout"),
	})

	settlement := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		NftQuerier: chainClient,
	})
	marketplace := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		OrderRepo:     order_repository.New(q),
		PayTokenRepo:  paytoken_repository.New(q),
		Settlement:    settlement,
		NftQuerier:    chainClient,
		TokenQuerier:  chainClient,
		ChainClient:   chainClient,
		TxRunner:      q,
		MarketAddress: domain.Address(viper.GetString("market.address")).ToLower(),
	})

	interval := viper.GetDuration("janitor.sweepInterval")
	if interval == 0 {
		interval = time.Minute
	}

	pool := goroutines.NewPool(2)
	defer pool.Release()

	sweep := func(typ order.Type) func() {
		return func() {
			count, err := marketplace.SweepExpired(context, typ)
			if err != nil {
				context.WithFields(log.Fields{
					"type": typ,
					"err":  err,
				}).Error("sweep expired orders failed")
				return
			}
			if count > 0 {
				met.BumpSum("sweep.removed", float64(count), "type", string(typ))
				context.WithFields(log.Fields{
					"type":  typ,
					"count": count,
				}).Info("swept expired orders")
			}
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	for {
		select {
		case <-ticker.C:
			if err := pool.Schedule(sweep(order.TypeListing)); err != nil {
				context.WithField("err", err).Error("schedule listing sweep failed")
			}
			if err := pool.Schedule(sweep(order.TypeOffer)); err != nil {
				context.WithField("err", err).Error("schedule offer sweep failed")
			}
		case sig := <-quit:
			log.Log().WithField("signal", sig).Info("received signal")
			return
		}
	}
}
