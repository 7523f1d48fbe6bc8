package main

import (
	"fmt"
	"log"
	"net/http"

	"SellerWithMarket/internal/config"
	"SellerWithMarket/internal/database"
	httphandler "SellerWithMarket/internal/handlers/http"
	"SellerWithMarket/internal/marketapi"
	"SellerWithMarket/internal/sellerapi"
	"SellerWithMarket/internal/sync"
	"SellerWithMarket/internal/telegram"
	"SellerWithMarket/internal/version"
	"SellerWithMarket/pkg/logging"

	"github.com/julienschmidt/httprouter"
)

func main() {
	logger := logging.GetLogger()
	logger.Info("Start Main")
	v := version.GetVersion()
	logger.Infof("Version %s", v.String())
	defer logger.Info("End Main")

	cfg := config.GetConfig()

	go sync.SyncStockServiceWithRecovered()
	go telegram.BotStart()

	router := httprouter.New()

	router.GET("/", httphandler.HandlerOtherAll)
	router.GET("/syncs", httphandler.HandlerSyncRuns)
	router.POST("/sync/run", httphandler.HandlerSyncRun)

	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.SERVICE.PORT), router))
}

func init() {
	logger := logging.GetLogger()

	logger.Println("Start main init...")
	defer logger.Println("End main init.")
	cfg := config.GetConfig()

	logging.SetDebug(cfg.LOG.Debug)

	_ = sellerapi.NewAPI(cfg.SELLER.URL, cfg.SELLER.ClientID, cfg.SELLER.Token)

	_ = marketapi.NewAPI(cfg.MARKET.URL, cfg.MARKET.Token, cfg.MARKET.CampaignFBSID, "FBS")
	_ = marketapi.NewAPI(cfg.MARKET.URL, cfg.MARKET.Token, cfg.MARKET.CampaignDBSID, "DBS")

	if database.Exists(database.DB_NAME) != true {
		logger.Info(database.DB_NAME, " not exist")
		err := database.CreateDB(database.DB_NAME)
		if err != nil {
			logger.Fatalf("%s, %v", database.DB_NAME, err)
		}
	} else {
		logger.Info(database.DB_NAME, " exist")
	}
}
