package httphandler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"SellerWithMarket/internal/database"
	"SellerWithMarket/internal/sync"
	"SellerWithMarket/internal/version"
	"SellerWithMarket/pkg/logging"

	"github.com/jmoiron/sqlx"
	"github.com/julienschmidt/httprouter"
	_ "github.com/mattn/go-sqlite3"
)

func HandlerOtherAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerOtherAll")
	defer logger.Info("End HandlerOtherAll")

	v := version.GetVersion()
	_, err := fmt.Fprintf(w, "Version %s", v.String())
	if err != nil {
		logger.Errorf("failed to send response, error: %v", err)
		return
	}
}

// HandlerSyncRuns отдает последние записи журнала синхронизаций
func HandlerSyncRuns(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerSyncRuns")
	defer logger.Info("End HandlerSyncRuns")

	DB, err := sqlx.Connect("sqlite3", database.DB_NAME)
	if err != nil {
		logger.Errorf("failed sqlx.Connect; %v", err)
		http.Error(w, "database unavailable", http.StatusInternalServerError)
		return
	}
	defer func(db *sqlx.DB) {
		err := db.Close()
		if err != nil {
			logger.Errorf("failed close sqlx.Connect, err: %v", err)
		}
	}(DB)

	runs, err := database.LastSyncRuns(DB, 20)
	if err != nil {
		logger.Errorf("failed database.LastSyncRuns, error: %v", err)
		http.Error(w, "database unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(runs)
	if err != nil {
		logger.Errorf("failed to send response, error: %v", err)
		return
	}
}

// HandlerSyncRun запускает внеочередную синхронизацию
func HandlerSyncRun(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerSyncRun")
	defer logger.Info("End HandlerSyncRun")

	if sync.Running() {
		http.Error(w, "sync already running", http.StatusConflict)
		return
	}

	go sync.RunOnce()

	w.WriteHeader(http.StatusAccepted)
	_, err := fmt.Fprint(w, "sync started")
	if err != nil {
		logger.Errorf("failed to send response, error: %v", err)
		return
	}
}
