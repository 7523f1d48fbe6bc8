package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/gcfg.v1"
)

type (
	Config struct {
		SELLER struct {
			URL      string
			ClientID string
			Token    string
		}
		MARKET struct {
			URL            string
			Token          string
			CampaignFBSID  string
			CampaignDBSID  string
			WarehouseFBSID string
			WarehouseDBSID string
		}
		INVENTORY struct {
			URL          string
			File         string
			HeaderOffset int
		}
		STOCKSYNC struct {
			Timeout        int
			SyncSeller     int
			SyncMarket     int
			TelegramReport int
		}
		TELEGRAM struct {
			BotToken string
			ChatID   int64
			Debug    int
		}
		LOG struct {
			Debug int
		}
		SERVICE struct {
			PORT int
		}
		DBSQLITE struct {
			DB string
		}
	}
)

var cfg Config
var once sync.Once

func GetConfig() *Config {
	once.Do(func() {
		err := os.MkdirAll("logs", 0770)
		if err != nil {
			fmt.Println(err)
		}

		file, err := os.OpenFile("logs/config.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			fmt.Println(err)
		}

		multiWriter := io.MultiWriter(file, os.Stdout)

		logger := log.New(multiWriter, "MAIN ", log.Ldate|log.Ltime|log.Lshortfile)

		logger.Print("Config:>Read application configurations")

		err = gcfg.ReadFileInto(&cfg, "./config/config.ini")
		if err != nil {
			logger.Fatalf("Config:>Failed to parse gcfg data: %s", err)
		} else {
			logger.Print("Config:>Config is read")
		}

		if cfg.INVENTORY.HeaderOffset == 0 {
			cfg.INVENTORY.HeaderOffset = 17
		}
		if cfg.INVENTORY.File == "" {
			cfg.INVENTORY.File = "ostatki.xlsx"
		}
	})

	return &cfg
}
