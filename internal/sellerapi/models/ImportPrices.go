package models

type PriceItem struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

type ImportPricesRequest struct {
	Prices []PriceItem `json:"prices"`
}

type ImportPricesResultItem struct {
	ProductID int64    `json:"product_id"`
	OfferID   string   `json:"offer_id"`
	Updated   bool     `json:"updated"`
	Errors    []string `json:"errors"`
}

type ImportPricesResponse struct {
	Result []ImportPricesResultItem `json:"result"`
}
