package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"moneytracker/internal/config"
	"moneytracker/internal/consumer"
	"moneytracker/internal/producer"
	"moneytracker/internal/repository"
	"moneytracker/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found")
	}

	cfg := config.Config{}
	if err := env.Parse(&cfg); err != nil {
		logrus.Fatalf("couldn't parse config: %v", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logrus.Fatalf("couldn't create telegram bot: %v", err)
	}

	fileRepo := repository.NewFile(cfg.DataFile)
	data, err := fileRepo.Load()
	if err != nil {
		logrus.Fatalf("couldn't load the ledger, refusing to start: %v", err)
	}

	ledger := service.NewLedger(fileRepo, data, time.Now)
	chats := service.NewChats(repository.NewChatsLocalStorage())

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.Timeout
	updatesChan := bot.GetUpdatesChan(u)

	hub := consumer.NewHub(bot, updatesChan, validator.New(), ledger, chats)
	go hub.Consume(ctx)

	recap := producer.NewRecap(bot, ledger, chats)
	go recap.Produce(ctx)

	logrus.Infof("moneytracker bot %s started", bot.Self.UserName)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit
	cancel()
	<-time.After(2 * time.Second)
}
