package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"moneytracker/internal/model"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Expected empty-state outcomes, not faults. Callers distinguish them
// with errors.Is and render friendly text.
var (
	ErrNothingToUndo = errors.New("nothing to undo today")
	ErrNoEntries     = errors.New("no entries for the period")
)

// Saver persists the whole ledger after a mutation.
type Saver interface {
	Save(model.Ledger) error
}

// Ledger is the expense engine. It owns the in-memory ledger, applies
// mutations with write-through persistence and computes every summary fresh
// from entry-level amounts. A single readers-writer lock serializes access;
// mutations hold the write lock across both the in-memory change and the
// save, so a crash right after a reply leaves disk consistent with what the
// user was told.
type Ledger struct {
	mu    sync.RWMutex
	saver Saver
	data  model.Ledger
	now   func() time.Time
}

// NewLedger builds the engine around data loaded at startup. The clock is
// injected so date-dependent aggregation is testable.
func NewLedger(saver Saver, data model.Ledger, now func() time.Time) *Ledger {
	if data == nil {
		data = make(model.Ledger)
	}
	return &Ledger{
		saver: saver,
		data:  data,
		now:   now,
	}
}

// Record appends an expense to today's bucket, persists the ledger and
// returns the updated day. If the save fails the append is rolled back and
// the error returned, so memory never silently diverges from disk.
// Zero and negative amounts are accepted on purpose: refunds and corrections
// are reported the same way expenses are.
func (l *Ledger) Record(userID, label string, amount float64, category model.Category) (model.DaySummary, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.DaySummary{}, errors.New("label must not be empty")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.DaySummary{}, fmt.Errorf("amount must be a finite number, got %v", amount)
	}
	if _, err := model.ParseCategory(string(category)); err != nil {
		return model.DaySummary{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.now().Format(dayLayout)
	user, existed := l.data[userID]
	if !existed {
		user = make(model.UserLedger)
		l.data[userID] = user
	}
	prev := user[day]
	user[day] = append(user[day], model.Entry{Label: label, Amount: amount, Category: category})

	if err := l.saver.Save(l.data); err != nil {
		if prev == nil {
			delete(user, day)
		} else {
			user[day] = prev
		}
		if !existed {
			delete(l.data, userID)
		}
		return model.DaySummary{}, fmt.Errorf("ledger couldn't persist the new entry: %w", err)
	}
	return daySummary(day, user[day]), nil
}

// UndoLast removes the most recently added entry of today's bucket and
// persists the ledger. Entries from previous days are out of reach, matching
// the "undo my last message" mental model. Returns ErrNothingToUndo when
// today's bucket is empty or absent.
func (l *Ledger) UndoLast(userID string) (model.Entry, model.DaySummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.now().Format(dayLayout)
	entries := l.data[userID][day]
	if len(entries) == 0 {
		return model.Entry{}, model.DaySummary{}, ErrNothingToUndo
	}

	removed := entries[len(entries)-1]
	l.data[userID][day] = entries[:len(entries)-1]

	if err := l.saver.Save(l.data); err != nil {
		l.data[userID][day] = entries
		return model.Entry{}, model.DaySummary{}, fmt.Errorf("ledger couldn't persist the undo: %w", err)
	}
	return removed, daySummary(day, l.data[userID][day]), nil
}

// DailySummary reports the entries recorded for userID on the given date.
// Callers usually pass today; the recap producer passes yesterday.
func (l *Ledger) DailySummary(userID string, on time.Time) (model.DaySummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	day := on.Format(dayLayout)
	entries := l.data[userID][day]
	if len(entries) == 0 {
		return model.DaySummary{}, ErrNoEntries
	}
	return daySummary(day, entries), nil
}

// WeeklySummary reports per-day totals for the 7 calendar days ending today,
// today first. Days without entries still get a zero row: the shape is fixed
// no matter how sparse the data is.
func (l *Ledger) WeeklySummary(userID string) model.WeekSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	today := l.now()
	week := model.WeekSummary{Days: make([]model.DayTotal, 0, 7)}
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, -i).Format(dayLayout)
		var total float64
		for _, entry := range l.data[userID][day] {
			total += entry.Amount
		}
		week.Days = append(week.Days, model.DayTotal{Date: day, Total: total})
		week.Total += total
	}
	return week
}

// MonthlyDailySummary reports one row per day of the current month that has
// entries, in ascending date order. Unlike the weekly view, empty days
// produce no row at all.
func (l *Ledger) MonthlyDailySummary(userID string) (model.MonthSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var month model.MonthSummary
	for _, day := range l.monthDays(userID) {
		entries := l.data[userID][day]
		if len(entries) == 0 {
			continue
		}
		var total float64
		for _, entry := range entries {
			total += entry.Amount
		}
		month.Days = append(month.Days, model.DayTotal{Date: day, Total: total})
		month.Total += total
	}
	if len(month.Days) == 0 {
		return model.MonthSummary{}, ErrNoEntries
	}
	return month, nil
}

// MonthlyCategorySummary reports per-category totals for the current month,
// each with its share of the month total rounded to one decimal. Categories
// appear in order of first appearance within the month: dates ascending,
// entries in insertion order. A month total of exactly zero yields
// ErrNoEntries, which also keeps the division safe.
func (l *Ledger) MonthlyCategorySummary(userID string) (model.CategorySummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	totals := make(map[model.Category]float64)
	var order []model.Category
	var monthTotal float64
	for _, day := range l.monthDays(userID) {
		for _, entry := range l.data[userID][day] {
			if _, ok := totals[entry.Category]; !ok {
				order = append(order, entry.Category)
			}
			totals[entry.Category] += entry.Amount
			monthTotal += entry.Amount
		}
	}
	if monthTotal == 0 {
		return model.CategorySummary{}, ErrNoEntries
	}

	summary := model.CategorySummary{Total: monthTotal}
	for _, category := range order {
		summary.Categories = append(summary.Categories, model.CategoryTotal{
			Category: category,
			Total:    totals[category],
			Percent:  math.Round(totals[category]/monthTotal*1000) / 10,
		})
	}
	return summary, nil
}

// monthDays returns the user's date keys that fall in the current month,
// sorted ascending. Callers must hold at least the read lock.
func (l *Ledger) monthDays(userID string) []string {
	prefix := l.now().Format(monthLayout) + "-"
	var days []string
	for day := range l.data[userID] {
		if strings.HasPrefix(day, prefix) {
			days = append(days, day)
		}
	}
	sort.Strings(days)
	return days
}

// daySummary copies the entries so callers never alias the ledger's slices.
func daySummary(day string, entries []model.Entry) model.DaySummary {
	summary := model.DaySummary{
		Date:    day,
		Entries: make([]model.Entry, len(entries)),
	}
	copy(summary.Entries, entries)
	for _, entry := range entries {
		summary.Total += entry.Amount
	}
	return summary
}
