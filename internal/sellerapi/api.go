package sellerapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"SellerWithMarket/internal/sellerapi/models"
	"SellerWithMarket/pkg/logging"

	"github.com/pkg/errors"
)

// LIMIT_PRODUCT_LIST - размер страницы списка товаров
const LIMIT_PRODUCT_LIST = 1000

// MAX_PAGES - предохранитель от бесконечной пагинации со стороны API
const MAX_PAGES = 1000

type SELLERAPI interface {
	ProductList(lastID string) (*models.ProductListResult, error)
	GetOfferIDs() ([]string, error)
	UpdateStocks(stocks []models.StockItem) (*models.ImportStocksResponse, error)
	UpdatePrices(prices []models.PriceItem) (*models.ImportPricesResponse, error)
}

var sellerapiGlobal *sellerapi

type sellerapi struct {
	url      string
	clientID string
	token    string
}

func (s *sellerapi) post(endpoint string, payload interface{}) ([]byte, error) {

	logger := logging.GetLogger()

	url := fmt.Sprintf("%s/%s", s.url, endpoint)
	logger.Debugf("Request:\n%s", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при json.Marshal; endpoint: %s", endpoint)
	}
	logger.Debugf("Body:\n%s", body)

	client := &http.Client{}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Client-Id", s.clientID)
	req.Header.Set("Api-Key", s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при отправке запроса в Seller Api, endpoint: %s", endpoint)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Errorf("failed Body.Close()")
		}
	}(resp.Body)

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при ioutil.ReadAll(resp.Body): error: %v", err)
	}
	logger.Debugf("Response:\n%s", respBody)

	if resp.StatusCode != http.StatusOK {
		var ErrorSeller models.ErrorSeller
		err := json.Unmarshal(respBody, &ErrorSeller)
		if err != nil {
			return nil, errors.New(fmt.Sprintf("API Seller: status: %d; body: %s", resp.StatusCode, respBody))
		}
		return nil, &ErrorSeller
	}

	return respBody, nil
}

func (s *sellerapi) ProductList(lastID string) (*models.ProductListResult, error) {

	logger := logging.GetLogger()
	logger.Println("ProductList:>Start")
	defer logger.Println("ProductList:>End")

	payload := models.ProductListRequest{
		Filter: models.ProductListFilter{Visibility: "ALL"},
		LastID: lastID,
		Limit:  LIMIT_PRODUCT_LIST,
	}

	respBody, err := s.post("v2/product/list", payload)
	if err != nil {
		return nil, err
	}

	ProductList := new(models.ProductListResponse)
	err = json.Unmarshal(respBody, ProductList)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при json.Unmarshal(): error: %v", err)
	}

	return &ProductList.Result, nil
}

// GetOfferIDs собирает артикулы всех товаров магазина, листая список постранично
func (s *sellerapi) GetOfferIDs() ([]string, error) {

	logger := logging.GetLogger()
	logger.Println("GetOfferIDs:>Start")
	defer logger.Println("GetOfferIDs:>End")

	lastID := ""
	var products []models.ProductListItem

	for page := 0; ; page++ {
		if page == MAX_PAGES {
			return nil, errors.New(fmt.Sprintf("API Seller не завершил пагинацию за %d страниц", MAX_PAGES))
		}

		result, err := s.ProductList(lastID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка при выполнении ProductList")
		}

		products = append(products, result.Items...)
		lastID = result.LastID

		logger.Debugf("Product count: %d / %d", len(products), result.Total)

		if result.Total == len(products) {
			break
		}
		if len(result.Items) == 0 {
			return nil, errors.New("API Seller вернул пустую страницу до достижения total")
		}
	}

	offerIDs := make([]string, 0, len(products))
	for _, product := range products {
		offerIDs = append(offerIDs, product.OfferID)
	}

	logger.Infof("AllOfferIDs len = %d", len(offerIDs))

	return offerIDs, nil
}

func (s *sellerapi) UpdateStocks(stocks []models.StockItem) (*models.ImportStocksResponse, error) {

	logger := logging.GetLogger()
	logger.Println("UpdateStocks:>Start")
	defer logger.Println("UpdateStocks:>End")

	payload := models.ImportStocksRequest{Stocks: stocks}

	respBody, err := s.post("v1/product/import/stocks", payload)
	if err != nil {
		return nil, err
	}

	response := new(models.ImportStocksResponse)
	err = json.Unmarshal(respBody, response)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при json.Unmarshal(): error: %v", err)
	}

	return response, nil
}

func (s *sellerapi) UpdatePrices(prices []models.PriceItem) (*models.ImportPricesResponse, error) {

	logger := logging.GetLogger()
	logger.Println("UpdatePrices:>Start")
	defer logger.Println("UpdatePrices:>End")

	payload := models.ImportPricesRequest{Prices: prices}

	respBody, err := s.post("v1/product/import/prices", payload)
	if err != nil {
		return nil, err
	}

	response := new(models.ImportPricesResponse)
	err = json.Unmarshal(respBody, response)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при json.Unmarshal(): error: %v", err)
	}

	return response, nil
}

func NewAPI(url, clientID, token string) SELLERAPI {

	sellerapiGlobal = &sellerapi{
		url:      url,
		clientID: clientID,
		token:    token,
	}

	return sellerapiGlobal
}

func GetAPI() SELLERAPI {
	return sellerapiGlobal
}
