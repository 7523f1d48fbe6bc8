package models

type StockCountItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

type Sku struct {
	Sku         string           `json:"sku"`
	WarehouseID string           `json:"warehouseId"`
	Items       []StockCountItem `json:"items"`
}

type UpdateStocksRequest struct {
	Skus []Sku `json:"skus"`
}

type UpdateStocksResponse struct {
	Status string `json:"status"`
}
