// Package consumer
package consumer

import (
	"context"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"moneytracker/internal/service"
)

// Hub fans incoming updates out to one consumer per chat. Each chat gets its
// own goroutine and channel, so conversation state stays single-threaded
// while different chats proceed concurrently against the ledger's lock.
type Hub struct {
	bot             *tgbotapi.BotAPI
	updatesChan     tgbotapi.UpdatesChannel
	validator       *validator.Validate
	ledger          *service.Ledger
	chats           service.Chats
	expenseChannels map[int64]chan tgbotapi.Update
}

func NewHub(bot *tgbotapi.BotAPI, updatesChan tgbotapi.UpdatesChannel, validator *validator.Validate,
	ledger *service.Ledger, chats service.Chats) *Hub {
	return &Hub{
		bot:             bot,
		updatesChan:     updatesChan,
		validator:       validator,
		ledger:          ledger,
		chats:           chats,
		expenseChannels: make(map[int64]chan tgbotapi.Update),
	}
}

func (h *Hub) Consume(ctx context.Context) {
	logrus.Info("hub consumer started")
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("hub consumer stopped: %v", ctx.Err())
			return
		case update := <-h.updatesChan:
			chatID, ok := chatOf(update)
			if !ok {
				logrus.Info("hub consumer skipped update without a chat")
				continue
			}
			ch, ok := h.expenseChannels[chatID]
			if !ok {
				// first touch with the chat
				logrus.Infof("first touch with chat %d", chatID)
				ch = make(chan tgbotapi.Update)
				h.expenseChannels[chatID] = ch
				go NewExpense(h.bot, chatID, ch, h.validator, h.ledger, h.chats).Consume(ctx)
			}
			ch <- update
		}
	}
}

func chatOf(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}
