package marketapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"

	"SellerWithMarket/internal/marketapi/models"
	"SellerWithMarket/pkg/logging"

	"github.com/pkg/errors"
)

// LIMIT_OFFER_MAPPING_ENTRIES - размер страницы списка товаров
const LIMIT_OFFER_MAPPING_ENTRIES = 200

// MAX_PAGES - предохранитель от бесконечной пагинации со стороны API
const MAX_PAGES = 1000

type MARKETAPI interface {
	OfferMappingEntries(pageToken string) (*models.OfferMappingEntriesResult, error)
	GetOfferIDs() ([]string, error)
	UpdateStocks(skus []models.Sku) (*models.UpdateStocksResponse, error)
	UpdatePrices(offers []models.OfferPrice) (*models.UpdatePricesResponse, error)
}

// экземпляры по имени кампании, как FBS/DBS
var marketapiGlobal = make(map[string]*marketapi)

type marketapi struct {
	url        string
	token      string
	campaignID string
}

func (m *marketapi) do(method, endpoint string, query map[string]string, payload interface{}) ([]byte, error) {

	logger := logging.GetLogger()

	url := fmt.Sprintf("%s/campaigns/%s/%s", m.url, m.campaignID, endpoint)
	logger.Debugf("Request:\n%s %s", method, url)

	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка при json.Marshal; endpoint: %s", endpoint)
		}
		logger.Debugf("Body:\n%s", body)
		reqBody = bytes.NewReader(body)
	}

	client := &http.Client{}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", m.token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	params := req.URL.Query()
	for key, value := range query {
		params.Add(key, value)
	}
	req.URL.RawQuery = params.Encode()
	logger.Debugf("RawQuery: %s", req.URL.RawQuery)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при отправке запроса в Market Api, endpoint: %s", endpoint)
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
		var ErrorMarket models.ErrorMarket
		err := json.Unmarshal(respBody, &ErrorMarket)
		if err != nil || len(ErrorMarket.Errors) == 0 {
			return nil, errors.New(fmt.Sprintf("API Market: status: %d; body: %s", resp.StatusCode, respBody))
		}
		return nil, &ErrorMarket
	}

	return respBody, nil
}

func (m *marketapi) OfferMappingEntries(pageToken string) (*models.OfferMappingEntriesResult, error) {

	logger := logging.GetLogger()
	logger.Println("OfferMappingEntries:>Start")
	defer logger.Println("OfferMappingEntries:>End")

	query := map[string]string{
		"limit": strconv.Itoa(LIMIT_OFFER_MAPPING_ENTRIES),
	}
	if pageToken != "" {
		query["page_token"] = pageToken
	}

	respBody, err := m.do(http.MethodGet, "offer-mapping-entries", query, nil)
	if err != nil {
		return nil, err
	}

	response := new(models.OfferMappingEntriesResponse)
	err = json.Unmarshal(respBody, response)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при json.Unmarshal(): error: %v", err)
	}

	return &response.Result, nil
}

// GetOfferIDs собирает артикулы всех товаров кампании, листая список по page_token
func (m *marketapi) GetOfferIDs() ([]string, error) {

	logger := logging.GetLogger()
	logger.Println("GetOfferIDs:>Start")
	defer logger.Println("GetOfferIDs:>End")

	pageToken := ""
	var entries []models.OfferMappingEntry

	for page := 0; ; page++ {
		if page == MAX_PAGES {
			return nil, errors.New(fmt.Sprintf("API Market не завершил пагинацию за %d страниц", MAX_PAGES))
		}

		result, err := m.OfferMappingEntries(pageToken)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка при выполнении OfferMappingEntries")
		}

		entries = append(entries, result.OfferMappingEntries...)
		pageToken = result.Paging.NextPageToken

		logger.Debugf("Entries count: %d", len(entries))

		if pageToken == "" {
			break
		}
	}

	offerIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		offerIDs = append(offerIDs, entry.Offer.ShopSku)
	}

	logger.Infof("AllOfferIDs len = %d", len(offerIDs))

	return offerIDs, nil
}

func (m *marketapi) UpdateStocks(skus []models.Sku) (*models.UpdateStocksResponse, error) {

	logger := logging.GetLogger()
	logger.Println("UpdateStocks:>Start")
	defer logger.Println("UpdateStocks:>End")

	payload := models.UpdateStocksRequest{Skus: skus}

	respBody, err := m.do(http.MethodPut, "offers/stocks", nil, payload)
	if err != nil {
		return nil, err
	}

	response := new(models.UpdateStocksResponse)
	err = json.Unmarshal(respBody, response)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при json.Unmarshal(): error: %v", err)
	}

	return response, nil
}

func (m *marketapi) UpdatePrices(offers []models.OfferPrice) (*models.UpdatePricesResponse, error) {

	logger := logging.GetLogger()
	logger.Println("UpdatePrices:>Start")
	defer logger.Println("UpdatePrices:>End")

	payload := models.UpdatePricesRequest{Offers: offers}

	respBody, err := m.do(http.MethodPost, "offer-prices/updates", nil, payload)
	if err != nil {
		return nil, err
	}

	response := new(models.UpdatePricesResponse)
	err = json.Unmarshal(respBody, response)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при json.Unmarshal(): error: %v", err)
	}

	return response, nil
}

func NewAPI(url, token, campaignID, name string) MARKETAPI {

	api := &marketapi{
		url:        url,
		token:      token,
		campaignID: campaignID,
	}
	marketapiGlobal[name] = api

	return api
}

func GetAPI(name string) MARKETAPI {
	return marketapiGlobal[name]
}
