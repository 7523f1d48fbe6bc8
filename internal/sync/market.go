package sync

import (
	"strconv"
	"time"

	"SellerWithMarket/internal/inventory"
	"SellerWithMarket/internal/marketapi"
	models "SellerWithMarket/internal/marketapi/models"
	"SellerWithMarket/pkg/logging"

	"github.com/pkg/errors"
)

// Размеры частей по лимитам эндпоинтов Market
const (
	LIMIT_MARKET_UPDATE_STOCKS = 2000
	LIMIT_MARKET_UPDATE_PRICES = 500
)

// CreateMarketStocks собирает остатки для Market.
// Каждый артикул из offerIDs попадает в результат ровно один раз:
// сначала товары из остатков поставщика, затем артикулы без остатков с нулем.
// offerIDs не меняется, работаем с копией.
func CreateMarketStocks(records []inventory.Record, offerIDs []string, warehouseID string) ([]models.Sku, error) {

	rest := make([]string, len(offerIDs))
	copy(rest, offerIDs)

	date := time.Now().UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")

	stocks := make([]models.Sku, 0, len(offerIDs))
	for _, watch := range records {
		if !containsOfferID(rest, watch.Code) {
			continue
		}
		stock, err := StockCount(watch.Quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка в строке остатков, код товара: %s", watch.Code)
		}
		stocks = append(stocks, models.Sku{
			Sku:         watch.Code,
			WarehouseID: warehouseID,
			Items: []models.StockCountItem{
				{
					Count:     stock,
					Type:      "FIT",
					UpdatedAt: date,
				},
			},
		})
		rest = removeOfferID(rest, watch.Code)
	}

	// Добавим недостающее из загруженного
	for _, offerID := range rest {
		stocks = append(stocks, models.Sku{
			Sku:         offerID,
			WarehouseID: warehouseID,
			Items: []models.StockCountItem{
				{
					Count:     0,
					Type:      "FIT",
					UpdatedAt: date,
				},
			},
		})
	}

	return stocks, nil
}

// CreateMarketPrices собирает цены для Market.
// Товары, которых нет на маркетплейсе, пропускаются
func CreateMarketPrices(records []inventory.Record, offerIDs []string) ([]models.OfferPrice, error) {

	known := offerIDSet(offerIDs)

	var prices []models.OfferPrice
	for _, watch := range records {
		if _, ok := known[watch.Code]; !ok {
			continue
		}
		value, err := strconv.Atoi(PriceConversion(watch.Price))
		if err != nil {
			return nil, errors.Wrapf(err, "некорректная цена %q, код товара: %s", watch.Price, watch.Code)
		}
		prices = append(prices, models.OfferPrice{
			ID: watch.Code,
			Price: models.Price{
				Value:      value,
				CurrencyID: "RUR",
			},
		})
	}

	return prices, nil
}

// UploadMarketStocks обновляет остатки на Market и возвращает два списка:
// товары с ненулевым остатком и все товары
func UploadMarketStocks(api marketapi.MARKETAPI, records []inventory.Record, warehouseID string) ([]models.Sku, []models.Sku, error) {

	logger := logging.GetLogger()
	logger.Println("UploadMarketStocks:>Start")
	defer logger.Println("UploadMarketStocks:>End")

	offerIDs, err := api.GetOfferIDs()
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка при выполнении GetOfferIDs")
	}

	stocks, err := CreateMarketStocks(records, offerIDs, warehouseID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка при выполнении CreateMarketStocks")
	}

	parts, err := Divide(stocks, LIMIT_MARKET_UPDATE_STOCKS)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка при выполнении Divide")
	}
	for _, part := range parts {
		if _, err := api.UpdateStocks(part); err != nil {
			return nil, nil, errors.Wrap(err, "ошибка при выполнении UpdateStocks")
		}
	}

	var notEmpty []models.Sku
	for _, stock := range stocks {
		if len(stock.Items) > 0 && stock.Items[0].Count != 0 {
			notEmpty = append(notEmpty, stock)
		}
	}

	return notEmpty, stocks, nil
}

// UploadMarketPrices обновляет цены на Market
func UploadMarketPrices(api marketapi.MARKETAPI, records []inventory.Record) ([]models.OfferPrice, error) {

	logger := logging.GetLogger()
	logger.Println("UploadMarketPrices:>Start")
	defer logger.Println("UploadMarketPrices:>End")

	offerIDs, err := api.GetOfferIDs()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении GetOfferIDs")
	}

	prices, err := CreateMarketPrices(records, offerIDs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении CreateMarketPrices")
	}

	parts, err := Divide(prices, LIMIT_MARKET_UPDATE_PRICES)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении Divide")
	}
	for _, part := range parts {
		if _, err := api.UpdatePrices(part); err != nil {
			return nil, errors.Wrap(err, "ошибка при выполнении UpdatePrices")
		}
	}

	return prices, nil
}

// SyncMarket выполняет полный цикл для одной кампании Market: остатки, затем цены.
// Артикулы запрашиваются один раз, каждое преобразование получает свою копию
func SyncMarket(api marketapi.MARKETAPI, records []inventory.Record, warehouseID, campaign string) (*Result, error) {

	logger := logging.GetLogger()
	logger.Infof("Start SyncMarket %s", campaign)
	defer logger.Infof("End SyncMarket %s", campaign)

	offerIDs, err := api.GetOfferIDs()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении GetOfferIDs")
	}
	logger.Infof("Артикулов на Market %s: %d", campaign, len(offerIDs))

	// Обновить остатки
	stocks, err := CreateMarketStocks(records, offerIDs, warehouseID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении CreateMarketStocks")
	}
	stockParts, err := Divide(stocks, LIMIT_MARKET_UPDATE_STOCKS)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении Divide")
	}
	for _, part := range stockParts {
		if _, err := api.UpdateStocks(part); err != nil {
			return nil, errors.Wrap(err, "ошибка при выполнении UpdateStocks")
		}
	}

	// Поменять цены
	prices, err := CreateMarketPrices(records, offerIDs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении CreateMarketPrices")
	}
	priceParts, err := Divide(prices, LIMIT_MARKET_UPDATE_PRICES)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении Divide")
	}
	for _, part := range priceParts {
		if _, err := api.UpdatePrices(part); err != nil {
			return nil, errors.Wrap(err, "ошибка при выполнении UpdatePrices")
		}
	}

	result := &Result{
		Marketplace: "Market",
		Campaign:    campaign,
		StocksTotal: len(stocks),
		PricesTotal: len(prices),
	}
	for _, stock := range stocks {
		if len(stock.Items) > 0 && stock.Items[0].Count != 0 {
			result.StocksInSale++
		}
	}

	return result, nil
}
