// Package producer
package producer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"moneytracker/internal/model"
	"moneytracker/internal/service"
)

// Recap pushes the previous day's summary to every subscribed chat shortly
// after each local midnight. Chats with no entries are skipped; send failures
// are logged and not retried.
type Recap struct {
	bot    *tgbotapi.BotAPI
	ledger *service.Ledger
	chats  service.Chats
}

func NewRecap(bot *tgbotapi.BotAPI, ledger *service.Ledger, chats service.Chats) *Recap {
	return &Recap{
		bot:    bot,
		ledger: ledger,
		chats:  chats,
	}
}

func (r *Recap) Produce(ctx context.Context) {
	logrus.Info("recap producer started")
	timer := time.NewTimer(durationUntilMidnight(time.Now()))
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("recap producer stopped: %v", ctx.Err())
			return
		case <-timer.C:
			now := time.Now()
			logrus.Infof("recap producer: midnight triggered at %v", now)
			r.sendRecaps(now)
			timer.Reset(durationUntilMidnight(time.Now()))
		}
	}
}

func (r *Recap) sendRecaps(now time.Time) {
	yesterday := now.AddDate(0, 0, -1)
	for chatID, userID := range r.chats.Subscribers() {
		summary, err := r.ledger.DailySummary(userID, yesterday)
		if errors.Is(err, service.ErrNoEntries) {
			logrus.Debugf("recap producer skipped chat %d: user %s has no entries", chatID, userID)
			continue
		}
		if err != nil {
			logrus.Errorf("recap producer couldn't get daily summary for user %s: %v", userID, err)
			continue
		}
		if err = r.sendRecap(chatID, summary); err != nil {
			logrus.Error(err)
		}
	}
}

func (r *Recap) sendRecap(chatID int64, summary model.DaySummary) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, convertToRecap(summary)))
	if err != nil {
		return fmt.Errorf("recap producer couldn't send recap to chat %d: %v", chatID, err)
	}
	return nil
}

func convertToRecap(summary model.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Recap for %s:\n", summary.Date)
	for _, entry := range summary.Entries {
		fmt.Fprintf(&b, "%s: $%.2f (%s)\n", entry.Label, entry.Amount, entry.Category)
	}
	fmt.Fprintf(&b, "\n💰 Total: $%.2f", summary.Total)
	return b.String()
}

// durationUntilMidnight returns the time left until the next local midnight.
func durationUntilMidnight(now time.Time) time.Duration {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}
