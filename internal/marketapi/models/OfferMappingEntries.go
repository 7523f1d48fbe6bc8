package models

type Offer struct {
	ShopSku string `json:"shopSku"`
	Name    string `json:"name"`
}

type OfferMappingEntry struct {
	Offer Offer `json:"offer"`
}

type Paging struct {
	NextPageToken string `json:"nextPageToken"`
}

type OfferMappingEntriesResult struct {
	Paging              Paging              `json:"paging"`
	OfferMappingEntries []OfferMappingEntry `json:"offerMappingEntries"`
}

type OfferMappingEntriesResponse struct {
	Status string                    `json:"status"`
	Result OfferMappingEntriesResult `json:"result"`
}
