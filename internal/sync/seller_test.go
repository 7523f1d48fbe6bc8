package sync

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"SellerWithMarket/internal/inventory"
	"SellerWithMarket/internal/sellerapi"
	models "SellerWithMarket/internal/sellerapi/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateSellerStocks(t *testing.T) {
	Assert := assert.New(t)

	offerIDs := []string{"A", "B", "C"}
	records := []inventory.Record{
		{Code: "A", Quantity: ">10", Price: "100.00"},
		{Code: "B", Quantity: "1", Price: "50.00"},
	}

	stocks, err := CreateSellerStocks(records, offerIDs)
	Assert.NoError(err)

	Assert.Equal([]models.StockItem{
		{OfferID: "A", Stock: 100},
		{OfferID: "B", Stock: 0},
		{OfferID: "C", Stock: 0},
	}, stocks)

	// длина результата всегда равна числу артикулов
	Assert.Len(stocks, len(offerIDs))

	// исходный список артикулов не тронут
	Assert.Equal([]string{"A", "B", "C"}, offerIDs)
}

func TestCreateSellerStocksSkipsUnknown(t *testing.T) {
	Assert := assert.New(t)

	offerIDs := []string{"A"}
	records := []inventory.Record{
		{Code: "A", Quantity: "3"},
		{Code: "X", Quantity: "7"}, //нет на маркетплейсе
	}

	stocks, err := CreateSellerStocks(records, offerIDs)
	Assert.NoError(err)
	Assert.Equal([]models.StockItem{{OfferID: "A", Stock: 3}}, stocks)
}

func TestCreateSellerStocksBadQuantity(t *testing.T) {
	Assert := assert.New(t)

	offerIDs := []string{"A"}
	records := []inventory.Record{{Code: "A", Quantity: "нет"}}

	_, err := CreateSellerStocks(records, offerIDs)
	Assert.Error(err)
}

func TestCreateSellerPrices(t *testing.T) {
	Assert := assert.New(t)

	offerIDs := []string{"A", "C"}
	records := []inventory.Record{
		{Code: "A", Quantity: "2", Price: "100.00"},
		{Code: "B", Quantity: "2", Price: "50.00"},
	}

	prices := CreateSellerPrices(records, offerIDs)

	Assert.Equal([]models.PriceItem{
		{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      "RUB",
			OfferID:           "A",
			OldPrice:          "0",
			Price:             "100",
		},
	}, prices)
}

// сервер Seller c заданным списком артикулов, считает размеры частей update-запросов
func newSellerServer(t *testing.T, offerIDs []string, stockBatches, priceBatches *[]int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/product/list":
			items := make([]models.ProductListItem, 0, len(offerIDs))
			for i, id := range offerIDs {
				items = append(items, models.ProductListItem{ProductID: int64(i + 1), OfferID: id})
			}
			resp := models.ProductListResponse{Result: models.ProductListResult{
				Items:  items,
				Total:  len(items),
				LastID: "",
			}}
			_ = json.NewEncoder(w).Encode(resp)
		case "/v1/product/import/stocks":
			var req models.ImportStocksRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			*stockBatches = append(*stockBatches, len(req.Stocks))
			_ = json.NewEncoder(w).Encode(models.ImportStocksResponse{})
		case "/v1/product/import/prices":
			var req models.ImportPricesRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			*priceBatches = append(*priceBatches, len(req.Prices))
			_ = json.NewEncoder(w).Encode(models.ImportPricesResponse{})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestUploadSellerStocksChunking(t *testing.T) {
	Assert := assert.New(t)

	// 250 артикулов, остатков у поставщика нет - все уходят нулями
	offerIDs := make([]string, 250)
	for i := range offerIDs {
		offerIDs[i] = fmt.Sprintf("OFFER-%03d", i)
	}

	var stockBatches, priceBatches []int
	server := newSellerServer(t, offerIDs, &stockBatches, &priceBatches)
	defer server.Close()

	api := sellerapi.NewAPI(server.URL, "client", "token")

	notEmpty, stocks, err := UploadSellerStocks(api, nil)
	Assert.NoError(err)

	// 250 позиций частями по 100: ровно 3 запроса 100, 100, 50
	Assert.Equal([]int{100, 100, 50}, stockBatches)
	Assert.Len(stocks, 250)
	Assert.Empty(notEmpty)
}

func TestUploadSellerStocksAbortsOnError(t *testing.T) {
	Assert := assert.New(t)

	offerIDs := make([]string, 250)
	for i := range offerIDs {
		offerIDs[i] = fmt.Sprintf("OFFER-%03d", i)
	}

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/product/list":
			items := make([]models.ProductListItem, 0, len(offerIDs))
			for _, id := range offerIDs {
				items = append(items, models.ProductListItem{OfferID: id})
			}
			_ = json.NewEncoder(w).Encode(models.ProductListResponse{Result: models.ProductListResult{Items: items, Total: len(items)}})
		case "/v1/product/import/stocks":
			calls++
			if calls == 2 {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(models.ErrorSeller{Code: 500, Message: "internal"})
				return
			}
			_ = json.NewEncoder(w).Encode(models.ImportStocksResponse{})
		}
	}))
	defer server.Close()

	api := sellerapi.NewAPI(server.URL, "client", "token")

	_, _, err := UploadSellerStocks(api, nil)
	Assert.Error(err)

	// после ошибки оставшиеся части не отправляются
	Assert.Equal(2, calls)
}

func TestSyncSeller(t *testing.T) {
	Assert := assert.New(t)

	offerIDs := []string{"A", "B", "C"}
	records := []inventory.Record{
		{Code: "A", Quantity: ">10", Price: "5'990.00 руб."},
		{Code: "B", Quantity: "1", Price: "50.00"},
	}

	var stockBatches, priceBatches []int
	server := newSellerServer(t, offerIDs, &stockBatches, &priceBatches)
	defer server.Close()

	api := sellerapi.NewAPI(server.URL, "client", "token")

	result, err := SyncSeller(api, records)
	Assert.NoError(err)

	Assert.Equal("Seller", result.Marketplace)
	Assert.Equal(3, result.StocksTotal)
	Assert.Equal(1, result.StocksInSale) //только A с остатком 100
	Assert.Equal(2, result.PricesTotal)

	Assert.Equal([]int{3}, stockBatches)
	Assert.Equal([]int{2}, priceBatches)
}
