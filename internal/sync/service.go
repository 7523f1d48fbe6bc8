package sync

import (
	stderrors "errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"SellerWithMarket/internal/config"
	"SellerWithMarket/internal/database"
	"SellerWithMarket/internal/inventory"
	"SellerWithMarket/internal/marketapi"
	"SellerWithMarket/internal/sellerapi"
	"SellerWithMarket/internal/telegram"
	"SellerWithMarket/pkg/logging"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Result - итог синхронизации одного маркетплейса за один проход
type Result struct {
	Marketplace  string
	Campaign     string
	StocksTotal  int
	StocksInSale int
	PricesTotal  int
}

var syncRunning int32

// Running сообщает, идет ли синхронизация прямо сейчас
func Running() bool {
	return atomic.LoadInt32(&syncRunning) == 1
}

// SyncStockServiceWithRecovered перезапускает сервис синхронизации после паники
func SyncStockServiceWithRecovered() {
	logger := logging.GetLogger()
	logger.Println("Start Service SyncStockServiceWithRecovered")
	defer logger.Println("End Service SyncStockServiceWithRecovered")

	index := 0 //количество перезапусков при панике
	for {
		SyncStockService()
		index++

		if index == 3 {
			break
		}
	}
	telegram.SendMessageToTelegramWithLogError("перезапуск SyncStockService() прекращен")
}

// SyncStockService - основной цикл: скачать остатки, обновить оба маркетплейса, уснуть
func SyncStockService() {

	logger := logging.GetLogger()
	logger.Println("Start Service SyncStock")
	defer logger.Println("End Service SyncStock")

	defer func() {
		if r := recover(); r != nil {
			telegram.SendMessageToTelegramWithLogError(fmt.Sprintf("произошла критическая ошибка, синхронизация будет перезапущена, ошибка: %v", r))
		}
	}()

	cfg := config.GetConfig()

	for {
		timeStart := time.Now()

		RunOnce()

		logger.Infof("Полное время обновления: %s", time.Now().Sub(timeStart))
		logger.Infof("time sleep %d minuts\n", cfg.STOCKSYNC.Timeout)

		time.Sleep(time.Minute * time.Duration(cfg.STOCKSYNC.Timeout))
	}
}

// RunOnce выполняет один проход синхронизации по всем маркетплейсам.
// Повторный вызов во время работы ничего не делает
func RunOnce() {

	logger := logging.GetLogger()
	logger.Println("RunOnce:>Start")
	defer logger.Println("RunOnce:>End")

	if !atomic.CompareAndSwapInt32(&syncRunning, 0, 1) {
		logger.Info("Синхронизация уже выполняется, пропускаем запуск")
		return
	}
	defer atomic.StoreInt32(&syncRunning, 0)

	cfg := config.GetConfig()

	DB, err := sqlx.Connect("sqlite3", database.DB_NAME)
	if err != nil {
		logger.Errorf("failed sqlx.Connect; %v", err)
		return
	}
	defer func(db *sqlx.DB) {
		err := db.Close()
		if err != nil {
			logger.Errorf("failed close sqlx.Connect, err: %v", err)
		}
	}(DB)

	records, err := inventory.Download()
	if err != nil {
		reportSyncError("Не удалось скачать остатки поставщика", err)
		return
	}

	if cfg.STOCKSYNC.SyncSeller == 1 {
		startedAt := time.Now()
		result, err := SyncSeller(sellerapi.GetAPI(), records)
		saveRun(DB, "Seller", "", startedAt, result, err)
	}

	if cfg.STOCKSYNC.SyncMarket == 1 {
		startedAt := time.Now()
		result, err := SyncMarket(marketapi.GetAPI("FBS"), records, cfg.MARKET.WarehouseFBSID, "FBS")
		saveRun(DB, "Market", "FBS", startedAt, result, err)

		startedAt = time.Now()
		result, err = SyncMarket(marketapi.GetAPI("DBS"), records, cfg.MARKET.WarehouseDBSID, "DBS")
		saveRun(DB, "Market", "DBS", startedAt, result, err)
	}
}

// saveRun пишет итог в журнал и отчитывается оператору
func saveRun(DB *sqlx.DB, marketplace, campaign string, startedAt time.Time, result *Result, err error) {

	logger := logging.GetLogger()
	cfg := config.GetConfig()

	run := &database.SyncRun{
		MARKETPLACE: marketplace,
		CAMPAIGN:    campaign,
		STATUS:      "OK",
		STARTED_AT:  startedAt.Format("2006-01-02 15:04:05"),
		FINISHED_AT: time.Now().Format("2006-01-02 15:04:05"),
	}

	if err != nil {
		run.STATUS = "ERROR"
		run.ERROR = err.Error()
		reportSyncError(fmt.Sprintf("Ошибка при синхронизации %s %s", marketplace, campaign), err)
	} else {
		run.STOCKS_TOTAL = result.StocksTotal
		run.STOCKS_IN_SALE = result.StocksInSale
		run.PRICES_TOTAL = result.PricesTotal
		logger.Infof("Синхронизация %s %s выполнена успешно. Остатков: %d, в продаже: %d, цен: %d",
			marketplace, campaign, result.StocksTotal, result.StocksInSale, result.PricesTotal)
		if cfg.STOCKSYNC.TelegramReport == 1 {
			err := telegram.SendMessage(fmt.Sprintf("Синхронизация %s %s выполнена успешно. Остатков: %d, в продаже: %d, цен: %d",
				marketplace, campaign, result.StocksTotal, result.StocksInSale, result.PricesTotal))
			if err != nil {
				logger.Errorf("failed telegram.SendMessage(), error: %v", err)
			}
		}
	}

	if err := database.SaveSyncRun(DB, run); err != nil {
		logger.Errorf("failed database.SaveSyncRun(), error: %v", err)
	}
}

// reportSyncError различает для оператора таймаут, ошибку соединения и все остальное
func reportSyncError(prefix string, err error) {

	var netErr net.Error
	var opErr *net.OpError

	switch {
	case stderrors.As(err, &netErr) && netErr.Timeout():
		telegram.SendMessageToTelegramWithLogError(fmt.Sprintf("%s: превышено время ожидания: %v", prefix, err))
	case stderrors.As(err, &opErr):
		telegram.SendMessageToTelegramWithLogError(fmt.Sprintf("%s: ошибка соединения: %v", prefix, err))
	default:
		telegram.SendMessageToTelegramWithLogError(fmt.Sprintf("%s: %v", prefix, err))
	}
}
