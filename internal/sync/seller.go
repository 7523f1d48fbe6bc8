package sync

import (
	"SellerWithMarket/internal/inventory"
	"SellerWithMarket/internal/sellerapi"
	models "SellerWithMarket/internal/sellerapi/models"
	"SellerWithMarket/pkg/logging"

	"github.com/pkg/errors"
)

// Размеры частей по лимитам эндпоинтов Seller
const (
	LIMIT_SELLER_UPDATE_STOCKS = 100
	LIMIT_SELLER_UPDATE_PRICES = 900
	LIMIT_SELLER_UPLOAD_PRICES = 1000
)

// CreateSellerStocks собирает остатки для Seller.
// Каждый артикул из offerIDs попадает в результат ровно один раз:
// сначала товары из остатков поставщика, затем артикулы без остатков с нулем.
// offerIDs не меняется, работаем с копией.
func CreateSellerStocks(records []inventory.Record, offerIDs []string) ([]models.StockItem, error) {

	rest := make([]string, len(offerIDs))
	copy(rest, offerIDs)

	stocks := make([]models.StockItem, 0, len(offerIDs))
	for _, watch := range records {
		if !containsOfferID(rest, watch.Code) {
			continue
		}
		stock, err := StockCount(watch.Quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка в строке остатков, код товара: %s", watch.Code)
		}
		stocks = append(stocks, models.StockItem{OfferID: watch.Code, Stock: stock})
		rest = removeOfferID(rest, watch.Code)
	}

	// Добавим недостающее из загруженного
	for _, offerID := range rest {
		stocks = append(stocks, models.StockItem{OfferID: offerID, Stock: 0})
	}

	return stocks, nil
}

// CreateSellerPrices собирает цены для Seller.
// Товары, которых нет на маркетплейсе, пропускаются
func CreateSellerPrices(records []inventory.Record, offerIDs []string) []models.PriceItem {

	known := offerIDSet(offerIDs)

	var prices []models.PriceItem
	for _, watch := range records {
		if _, ok := known[watch.Code]; !ok {
			continue
		}
		prices = append(prices, models.PriceItem{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      "RUB",
			OfferID:           watch.Code,
			OldPrice:          "0",
			Price:             PriceConversion(watch.Price),
		})
	}

	return prices
}

// UploadSellerStocks обновляет остатки на Seller и возвращает два списка:
// товары с ненулевым остатком и все товары
func UploadSellerStocks(api sellerapi.SELLERAPI, records []inventory.Record) ([]models.StockItem, []models.StockItem, error) {

	logger := logging.GetLogger()
	logger.Println("UploadSellerStocks:>Start")
	defer logger.Println("UploadSellerStocks:>End")

	offerIDs, err := api.GetOfferIDs()
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка при выполнении GetOfferIDs")
	}

	stocks, err := CreateSellerStocks(records, offerIDs)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка при выполнении CreateSellerStocks")
	}

	parts, err := Divide(stocks, LIMIT_SELLER_UPDATE_STOCKS)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка при выполнении Divide")
	}
	for _, part := range parts {
		if _, err := api.UpdateStocks(part); err != nil {
			return nil, nil, errors.Wrap(err, "ошибка при выполнении UpdateStocks")
		}
	}

	var notEmpty []models.StockItem
	for _, stock := range stocks {
		if stock.Stock != 0 {
			notEmpty = append(notEmpty, stock)
		}
	}

	return notEmpty, stocks, nil
}

// UploadSellerPrices обновляет цены на Seller
func UploadSellerPrices(api sellerapi.SELLERAPI, records []inventory.Record) ([]models.PriceItem, error) {

	logger := logging.GetLogger()
	logger.Println("UploadSellerPrices:>Start")
	defer logger.Println("UploadSellerPrices:>End")

	offerIDs, err := api.GetOfferIDs()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении GetOfferIDs")
	}

	prices := CreateSellerPrices(records, offerIDs)

	parts, err := Divide(prices, LIMIT_SELLER_UPLOAD_PRICES)
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

// SyncSeller выполняет полный цикл для Seller: остатки, затем цены.
// Артикулы запрашиваются один раз, каждое преобразование получает свою копию
func SyncSeller(api sellerapi.SELLERAPI, records []inventory.Record) (*Result, error) {

	logger := logging.GetLogger()
	logger.Info("Start SyncSeller")
	defer logger.Info("End SyncSeller")

	offerIDs, err := api.GetOfferIDs()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении GetOfferIDs")
	}
	logger.Infof("Артикулов на Seller: %d", len(offerIDs))

	// Обновить остатки
	stocks, err := CreateSellerStocks(records, offerIDs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении CreateSellerStocks")
	}
	stockParts, err := Divide(stocks, LIMIT_SELLER_UPDATE_STOCKS)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении Divide")
	}
	for _, part := range stockParts {
		if _, err := api.UpdateStocks(part); err != nil {
			return nil, errors.Wrap(err, "ошибка при выполнении UpdateStocks")
		}
	}

	// Поменять цены
	prices := CreateSellerPrices(records, offerIDs)
	priceParts, err := Divide(prices, LIMIT_SELLER_UPDATE_PRICES)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при выполнении Divide")
	}
	for _, part := range priceParts {
		if _, err := api.UpdatePrices(part); err != nil {
			return nil, errors.Wrap(err, "ошибка при выполнении UpdatePrices")
		}
	}

	result := &Result{
		Marketplace: "Seller",
		StocksTotal: len(stocks),
		PricesTotal: len(prices),
	}
	for _, stock := range stocks {
		if stock.Stock != 0 {
			result.StocksInSale++
		}
	}

	return result, nil
}
