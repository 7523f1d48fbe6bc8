package models

type StockItem struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

type ImportStocksRequest struct {
	Stocks []StockItem `json:"stocks"`
}

type ImportStocksResultItem struct {
	ProductID int64    `json:"product_id"`
	OfferID   string   `json:"offer_id"`
	Updated   bool     `json:"updated"`
	Errors    []string `json:"errors"`
}

type ImportStocksResponse struct {
	Result []ImportStocksResultItem `json:"result"`
}
