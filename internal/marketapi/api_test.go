package marketapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"SellerWithMarket/internal/marketapi/models"

	"github.com/stretchr/testify/assert"
)

func TestGetOfferIDs(t *testing.T) {
	Assert := assert.New(t)

	pages := []models.OfferMappingEntriesResponse{
		{Result: models.OfferMappingEntriesResult{
			Paging: models.Paging{NextPageToken: "p1"},
			OfferMappingEntries: []models.OfferMappingEntry{
				{Offer: models.Offer{ShopSku: "x"}},
				{Offer: models.Offer{ShopSku: "y"}},
			},
		}},
		{Result: models.OfferMappingEntriesResult{
			Paging: models.Paging{NextPageToken: ""},
			OfferMappingEntries: []models.OfferMappingEntry{
				{Offer: models.Offer{ShopSku: "z"}},
			},
		}},
	}

	calls := 0
	var pageTokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Assert.Equal("/campaigns/camp-1/offer-mapping-entries", r.URL.Path)
		Assert.Equal("Bearer token", r.Header.Get("Authorization"))
		Assert.Equal(strconv.Itoa(LIMIT_OFFER_MAPPING_ENTRIES), r.URL.Query().Get("limit"))

		pageTokens = append(pageTokens, r.URL.Query().Get("page_token"))

		_ = json.NewEncoder(w).Encode(pages[calls])
		calls++
	}))
	defer server.Close()

	api := NewAPI(server.URL, "token", "camp-1", "TEST")

	offerIDs, err := api.GetOfferIDs()
	Assert.NoError(err)
	Assert.Equal([]string{"x", "y", "z"}, offerIDs)

	// остановились на пустом nextPageToken
	Assert.Equal(2, calls)
	Assert.Equal([]string{"", "p1"}, pageTokens)
}

func TestGetOfferIDsNeverEndingCursor(t *testing.T) {
	Assert := assert.New(t)

	// курсор никогда не пустеет - ограничиваемся бюджетом страниц
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(models.OfferMappingEntriesResponse{
			Result: models.OfferMappingEntriesResult{
				Paging: models.Paging{NextPageToken: "again"},
				OfferMappingEntries: []models.OfferMappingEntry{
					{Offer: models.Offer{ShopSku: "x"}},
				},
			},
		})
	}))
	defer server.Close()

	api := NewAPI(server.URL, "token", "camp-1", "TEST")

	_, err := api.GetOfferIDs()
	Assert.Error(err)
	Assert.Equal(MAX_PAGES, calls)
}

func TestUpdateStocksHTTPError(t *testing.T) {
	Assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorMarket{
			Status: "ERROR",
			Errors: []models.ErrorMarketItem{{Code: "BAD_REQUEST", Message: "unknown warehouse"}},
		})
	}))
	defer server.Close()

	api := NewAPI(server.URL, "token", "camp-1", "TEST")

	_, err := api.UpdateStocks([]models.Sku{{Sku: "A", WarehouseID: "wh-1"}})
	Assert.Error(err)

	var errorMarket *models.ErrorMarket
	Assert.ErrorAs(err, &errorMarket)
	Assert.Equal("ERROR", errorMarket.Status)
}

func TestNewAPIRegistry(t *testing.T) {
	Assert := assert.New(t)

	fbs := NewAPI("http://example.com", "token", "camp-fbs", "FBS")
	dbs := NewAPI("http://example.com", "token", "camp-dbs", "DBS")

	Assert.Equal(fbs, GetAPI("FBS"))
	Assert.Equal(dbs, GetAPI("DBS"))
	Assert.NotEqual(GetAPI("FBS"), GetAPI("DBS"))
}
