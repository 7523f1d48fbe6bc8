package database

const DB_NAME = "db.db"

type SyncRun struct {
	ID             int    `db:"ID" json:"id"`
	MARKETPLACE    string `db:"Marketplace" json:"marketplace"`
	CAMPAIGN       string `db:"Campaign" json:"campaign"`
	STOCKS_TOTAL   int    `db:"StocksTotal" json:"stocks_total"`
	STOCKS_IN_SALE int    `db:"StocksInSale" json:"stocks_in_sale"`
	PRICES_TOTAL   int    `db:"PricesTotal" json:"prices_total"`
	STATUS         string `db:"Status" json:"status"`
	ERROR          string `db:"Error" json:"error"`
	STARTED_AT     string `db:"StartedAt" json:"started_at"`
	FINISHED_AT    string `db:"FinishedAt" json:"finished_at"`
}

const DB_SCHEMA = `CREATE TABLE SyncRun (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Marketplace text,
	Campaign text,
	StocksTotal integer,
	StocksInSale integer,
	PricesTotal integer,
	Status text,
	Error text,
	StartedAt text,
	FinishedAt text
);
`
