package database

import (
	"os"

	"SellerWithMarket/pkg/logging"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

func CreateDB(dbname string) error {

	logger := logging.GetLogger()
	logger.Info("CreateDB:>Start")
	defer logger.Info("CreateDB:>End")

	logger.Info("CreateDB:>Creating ", dbname)

	db, err := sqlx.Open("sqlite3", dbname)
	if err != nil {
		logger.Fatal(err)
		return err
	}
	defer func(db *sqlx.DB) {
		err := db.Close()
		if err != nil {
			logger.Error(err)
		}
	}(db)

	logger.Info(dbname, " created")

	db.MustExec(DB_SCHEMA)
	return nil
}

// SaveSyncRun записывает итог синхронизации в журнал
func SaveSyncRun(db *sqlx.DB, run *SyncRun) error {

	logger := logging.GetLogger()
	logger.Println("SaveSyncRun:>Start")
	defer logger.Println("SaveSyncRun:>End")

	insert := `INSERT INTO SyncRun (Marketplace, Campaign, StocksTotal, StocksInSale, PricesTotal, Status, Error, StartedAt, FinishedAt)
	VALUES (:Marketplace, :Campaign, :StocksTotal, :StocksInSale, :PricesTotal, :Status, :Error, :StartedAt, :FinishedAt)`
	exec, err := db.NamedExec(insert, run)
	if err != nil {
		return errors.Wrapf(err, "failed INSERT: %s", insert)
	}

	id, err := exec.LastInsertId()
	if err != nil {
		return errors.Wrapf(err, "failed INSERT: %s", insert)
	}
	if id == 0 {
		return errors.New("INSERT failed, ID = 0 ")
	}
	logger.Println("INSERT OK. ID: ", id)

	return nil
}

// LastSyncRuns возвращает последние записи журнала, новые первыми
func LastSyncRuns(db *sqlx.DB, limit int) ([]SyncRun, error) {

	logger := logging.GetLogger()
	logger.Println("LastSyncRuns:>Start")
	defer logger.Println("LastSyncRuns:>End")

	var runs []SyncRun
	query := `SELECT * FROM SyncRun ORDER BY ID DESC LIMIT $1`
	err := db.Select(&runs, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed SELECT to dbsqlite")
	}

	return runs, nil
}
