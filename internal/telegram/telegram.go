package telegram

import (
	"fmt"
	"strings"

	"SellerWithMarket/internal/config"
	"SellerWithMarket/internal/database"
	"SellerWithMarket/internal/version"
	"SellerWithMarket/pkg/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// SendMessage отправляет сообщение оператору в чат из конфига
func SendMessage(text string) error {

	cfg := config.GetConfig()

	bot, err := tgbotapi.NewBotAPI(cfg.TELEGRAM.BotToken)
	if err != nil {
		return errors.Wrap(err, "ошибка при tgbotapi.NewBotAPI")
	}

	msg := tgbotapi.NewMessage(cfg.TELEGRAM.ChatID, text)
	_, err = bot.Send(msg)
	if err != nil {
		return errors.Wrap(err, "ошибка при bot.Send")
	}

	return nil
}

func SendMessageToTelegramWithLogError(text string) {

	logger := logging.GetLogger()
	logger.Error(text)

	if err := SendMessage(text); err != nil {
		logger.Errorf("failed telegram.SendMessage(), error: %v", err)
	}
}

// BotStart запускает бота; по команде /status отвечает итогами последних синхронизаций
func BotStart() {

	logger := logging.GetLogger()
	logger.Println("Start BotStart")
	defer logger.Println("End BotStart")

	cfg := config.GetConfig()

	bot, err := tgbotapi.NewBotAPI(cfg.TELEGRAM.BotToken)
	if err != nil {
		logger.Errorf("failed tgbotapi.NewBotAPI, error: %v", err)
		return
	}
	bot.Debug = cfg.TELEGRAM.Debug == 1

	logger.Infof("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		logger.Errorf("failed bot.GetUpdatesChan, error: %v", err)
		return
	}

	for update := range updates {
		if update.Message == nil {
			continue
		}

		switch update.Message.Command() {
		case "status":
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, statusText())
			if _, err := bot.Send(msg); err != nil {
				logger.Errorf("failed bot.Send, error: %v", err)
			}
		case "version":
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("Version %s", version.GetVersion().String()))
			if _, err := bot.Send(msg); err != nil {
				logger.Errorf("failed bot.Send, error: %v", err)
			}
		}
	}
}

func statusText() string {

	logger := logging.GetLogger()

	DB, err := sqlx.Connect("sqlite3", database.DB_NAME)
	if err != nil {
		logger.Errorf("failed sqlx.Connect; %v", err)
		return "Журнал синхронизаций недоступен"
	}
	defer func(db *sqlx.DB) {
		err := db.Close()
		if err != nil {
			logger.Errorf("failed close sqlx.Connect, err: %v", err)
		}
	}(DB)

	runs, err := database.LastSyncRuns(DB, 5)
	if err != nil {
		logger.Errorf("failed database.LastSyncRuns, error: %v", err)
		return "Журнал синхронизаций недоступен"
	}
	if len(runs) == 0 {
		return "Синхронизаций еще не было"
	}

	var lines []string
	for _, run := range runs {
		if run.STATUS == "OK" {
			lines = append(lines, fmt.Sprintf("%s %s %s: остатков %d (в продаже %d), цен %d",
				run.FINISHED_AT, run.MARKETPLACE, run.CAMPAIGN, run.STOCKS_TOTAL, run.STOCKS_IN_SALE, run.PRICES_TOTAL))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s %s: ошибка: %s",
				run.FINISHED_AT, run.MARKETPLACE, run.CAMPAIGN, run.ERROR))
		}
	}

	return strings.Join(lines, "\n")
}
