package consumer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"moneytracker/internal/model"
	"moneytracker/internal/service"
)

const (
	startCommand         = "start"
	undoCommand          = "undo"
	summaryCommand       = "summary"
	weekCommand          = "week"
	monthCommand         = "month"
	monthCategoryCommand = "month_category"
	recapCommand         = "recap"
	norecapCommand       = "norecap"
)

const labelMaxLength = 200

var (
	errBadFormat = errors.New("expected format: name amount")
	errBadAmount = errors.New("amount must be a number")
)

// pendingExpense is a staged "label amount" waiting for its category.
type pendingExpense struct {
	label  string
	amount float64
}

// Expense serves a single chat. Between the "label amount" message and the
// category button press it holds the pending expense; a new expense message
// replaces whatever was still pending. Only a completed triple reaches the
// ledger.
type Expense struct {
	bot         *tgbotapi.BotAPI
	chatID      int64
	updatesChan chan tgbotapi.Update
	validator   *validator.Validate
	ledger      *service.Ledger
	chats       service.Chats
	pending     *pendingExpense
}

func NewExpense(bot *tgbotapi.BotAPI, chatID int64, updatesChan chan tgbotapi.Update,
	validator *validator.Validate, ledger *service.Ledger, chats service.Chats) *Expense {
	return &Expense{
		bot:         bot,
		chatID:      chatID,
		updatesChan: updatesChan,
		validator:   validator,
		ledger:      ledger,
		chats:       chats,
	}
}

func (e *Expense) Consume(ctx context.Context) {
	logrus.Infof("expense consumer started for chat %d", e.chatID)
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("expense consumer for chat %d stopped: %v", e.chatID, ctx.Err())
			return
		case update := <-e.updatesChan:
			e.handle(update)
		}
	}
}

func (e *Expense) handle(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		e.handleCategorySelection(update.CallbackQuery)
	case update.Message == nil:
		logrus.Infof("expense consumer for chat %d skipped update without a message", e.chatID)
	case update.Message.IsCommand():
		e.handleCommand(update.Message)
	default:
		e.handleExpenseMessage(update.Message)
	}
}

func (e *Expense) handleCommand(message *tgbotapi.Message) {
	userID := userIDOf(message.From)
	switch message.Command() {
	case startCommand:
		if err := e.sendMessage(message, welcomeText); err != nil {
			logrus.Errorf("expense consumer couldn't reply to /start: %v", err)
		}
	case undoCommand:
		e.handleUndo(message, userID)
	case summaryCommand:
		e.handleDailySummary(message, userID)
	case weekCommand:
		e.handleWeeklySummary(message, userID)
	case monthCommand:
		e.handleMonthlyDailySummary(message, userID)
	case monthCategoryCommand:
		e.handleMonthlyCategorySummary(message, userID)
	case recapCommand:
		e.chats.Subscribe(e.chatID, userID)
		logrus.Infof("chat %d subscribed to the daily recap", e.chatID)
		if err := e.sendMessage(message, "You will receive a recap of each day's expenses at midnight. Send /norecap to stop."); err != nil {
			logrus.Errorf("expense consumer couldn't reply to /recap: %v", err)
		}
	case norecapCommand:
		e.chats.Unsubscribe(e.chatID)
		logrus.Infof("chat %d unsubscribed from the daily recap", e.chatID)
		if err := e.sendMessage(message, "Daily recap disabled."); err != nil {
			logrus.Errorf("expense consumer couldn't reply to /norecap: %v", err)
		}
	default:
		logrus.Infof("unknown command: %s", message.Text)
	}
}

// handleExpenseMessage parses a "label amount" report and stages it until the
// user picks a category from the keyboard.
func (e *Expense) handleExpenseMessage(message *tgbotapi.Message) {
	label, amount, err := parseExpense(message.Text)
	if errors.Is(err, errBadFormat) {
		if err = e.sendMessage(message, "⚠️ Please enter in format: name amount"); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}
	if errors.Is(err, errBadAmount) {
		if err = e.sendMessage(message, "⚠️ Amount must be a number."); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}

	if !e.validate(label, fmt.Sprintf("required,max=%d", labelMaxLength)) {
		logrus.Errorf("expense consumer received a label that failed validation in chat %d", e.chatID)
		if err = e.sendMessage(message, fmt.Sprintf("⚠️ The name must be at most %d characters.", labelMaxLength)); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}

	if e.pending != nil {
		logrus.Infof("expense consumer replaced the pending expense in chat %d", e.chatID)
	}
	e.pending = &pendingExpense{label: label, amount: amount}

	if err = e.sendCategoryKeyboard(message, label, amount); err != nil {
		e.pending = nil
		logrus.Errorf("expense consumer couldn't request a category: %v", err)
	}
}

// handleCategorySelection completes a staged expense: the callback data is
// the chosen category, and only now does the entry reach the ledger.
func (e *Expense) handleCategorySelection(query *tgbotapi.CallbackQuery) {
	if _, err := e.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logrus.Errorf("expense consumer couldn't answer callback query: %v", err)
	}

	if e.pending == nil {
		if err := e.editMessage(query.Message.MessageID, "⚠️ No pending expense found."); err != nil {
			logrus.Errorf("expense consumer edit message error: %v", err)
		}
		return
	}

	category, err := model.ParseCategory(query.Data)
	if err != nil {
		logrus.Errorf("expense consumer received callback with unknown category %q in chat %d", query.Data, e.chatID)
		if err = e.editMessage(query.Message.MessageID, "⚠️ Unknown category."); err != nil {
			logrus.Errorf("expense consumer edit message error: %v", err)
		}
		return
	}

	pending := *e.pending
	e.pending = nil

	summary, err := e.ledger.Record(userIDOf(query.From), pending.label, pending.amount, category)
	if err != nil {
		logrus.Errorf("expense consumer couldn't record the expense: %v", err)
		if err = e.editMessage(query.Message.MessageID, "⚠️ Couldn't save your expense, it was not recorded. Please send it again."); err != nil {
			logrus.Errorf("expense consumer edit message error: %v", err)
		}
		return
	}

	text := fmt.Sprintf("✅ Recorded: %s - $%.2f (%s)\n\n🧾 Today's summary:\n%s",
		pending.label, pending.amount, category, formatDaySummary(summary))
	if err = e.editMessage(query.Message.MessageID, text); err != nil {
		logrus.Errorf("expense consumer edit message error: %v", err)
		return
	}
	logrus.Infof("user %s added expense %s: %.2f (%s)", userIDOf(query.From), pending.label, pending.amount, category)
}

func (e *Expense) handleUndo(message *tgbotapi.Message, userID string) {
	removed, summary, err := e.ledger.UndoLast(userID)
	if errors.Is(err, service.ErrNothingToUndo) {
		if err = e.sendMessage(message, "⚠️ No expenses to undo today."); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}
	if err != nil {
		logrus.Errorf("expense consumer couldn't undo for user %s: %v", userID, err)
		if err = e.sendMessage(message, "⚠️ Couldn't undo, your last entry is still recorded."); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}

	updated := "No expenses today."
	if len(summary.Entries) > 0 {
		updated = formatDaySummary(summary)
	}
	text := fmt.Sprintf("✅ Removed last entry: %s - $%.2f (%s)\n\n🧾 Updated summary:\n%s",
		removed.Label, removed.Amount, removed.Category, updated)
	if err = e.sendMessage(message, text); err != nil {
		logrus.Errorf("expense consumer send message error: %v", err)
	}
}

func (e *Expense) handleDailySummary(message *tgbotapi.Message, userID string) {
	summary, err := e.ledger.DailySummary(userID, time.Now())
	if errors.Is(err, service.ErrNoEntries) {
		if err = e.sendMessage(message, "No expenses today."); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}
	if err != nil {
		logrus.Errorf("expense consumer couldn't get daily summary for user %s: %v", userID, err)
		return
	}
	if err = e.sendMessage(message, "🧾 Today's summary:\n"+formatDaySummary(summary)); err != nil {
		logrus.Errorf("expense consumer send message error: %v", err)
	}
}

func (e *Expense) handleWeeklySummary(message *tgbotapi.Message, userID string) {
	week := e.ledger.WeeklySummary(userID)
	if err := e.sendMessage(message, "🧾 Weekly summary:\n"+formatWeekSummary(week)); err != nil {
		logrus.Errorf("expense consumer send message error: %v", err)
	}
}

func (e *Expense) handleMonthlyDailySummary(message *tgbotapi.Message, userID string) {
	month, err := e.ledger.MonthlyDailySummary(userID)
	if errors.Is(err, service.ErrNoEntries) {
		if err = e.sendMessage(message, "No expenses recorded this month."); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}
	if err != nil {
		logrus.Errorf("expense consumer couldn't get monthly summary for user %s: %v", userID, err)
		return
	}
	if err = e.sendMessage(message, "🧾 Monthly daily summary:\n"+formatMonthSummary(month)); err != nil {
		logrus.Errorf("expense consumer send message error: %v", err)
	}
}

func (e *Expense) handleMonthlyCategorySummary(message *tgbotapi.Message, userID string) {
	summary, err := e.ledger.MonthlyCategorySummary(userID)
	if errors.Is(err, service.ErrNoEntries) {
		if err = e.sendMessage(message, "No expenses recorded this month."); err != nil {
			logrus.Errorf("expense consumer send message error: %v", err)
		}
		return
	}
	if err != nil {
		logrus.Errorf("expense consumer couldn't get category summary for user %s: %v", userID, err)
		return
	}
	if err = e.sendMessage(message, "🧾 Monthly category summary:\n"+formatCategorySummary(summary)); err != nil {
		logrus.Errorf("expense consumer send message error: %v", err)
	}
}

func (e *Expense) sendCategoryKeyboard(message *tgbotapi.Message, label string, amount float64) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(model.Categories))
	for _, category := range model.Categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(string(category), string(category))))
	}

	msg := tgbotapi.NewMessage(e.chatID, fmt.Sprintf("Select a category for \"%s - $%.2f\":", label, amount))
	msg.ReplyToMessageID = message.MessageID
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	_, err := e.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("sendCategoryKeyboard, telegram bot couldn't send message: %v", err)
	}
	return nil
}

func (e *Expense) sendMessage(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(e.chatID, text)
	msg.ReplyToMessageID = message.MessageID

	_, err := e.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("sendMessage, telegram bot couldn't send message: %v", err)
	}
	return nil
}

func (e *Expense) editMessage(messageID int, text string) error {
	_, err := e.bot.Send(tgbotapi.NewEditMessageText(e.chatID, messageID, text))
	if err != nil {
		return fmt.Errorf("editMessage, telegram bot couldn't edit message: %v", err)
	}
	return nil
}

func (e *Expense) validate(value string, tags string) bool {
	err := e.validator.Var(value, tags)
	if err != nil {
		return false
	}
	return true
}

// parseExpense splits "iced latte 4.50" into label "iced latte" and amount
// 4.50: every word but the last is the label, the last word is the amount.
func parseExpense(text string) (string, float64, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", 0, errBadFormat
	}
	amount, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return "", 0, errBadAmount
	}
	return strings.Join(fields[:len(fields)-1], " "), amount, nil
}

func userIDOf(from *tgbotapi.User) string {
	return strconv.FormatInt(from.ID, 10)
}
