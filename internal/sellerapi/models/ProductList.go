package models

type ProductListFilter struct {
	Visibility string `json:"visibility"`
}

type ProductListRequest struct {
	Filter ProductListFilter `json:"filter"`
	LastID string            `json:"last_id"`
	Limit  int               `json:"limit"`
}

type ProductListItem struct {
	ProductID int64  `json:"product_id"`
	OfferID   string `json:"offer_id"`
}

type ProductListResult struct {
	Items  []ProductListItem `json:"items"`
	Total  int               `json:"total"`
	LastID string            `json:"last_id"`
}

type ProductListResponse struct {
	Result ProductListResult `json:"result"`
}
