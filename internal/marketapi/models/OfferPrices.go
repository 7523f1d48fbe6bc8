package models

type Price struct {
	Value      int    `json:"value"`
	CurrencyID string `json:"currencyId"`
}

type OfferPrice struct {
	ID    string `json:"id"`
	Price Price  `json:"price"`
}

type UpdatePricesRequest struct {
	Offers []OfferPrice `json:"offers"`
}

type UpdatePricesResponse struct {
	Status string `json:"status"`
}
