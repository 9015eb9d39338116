package model

import "fmt"

// Category classifies an Entry. The set is closed: users pick one from a
// keyboard, they cannot invent their own.
type Category string

const (
	Food          Category = "Food"
	Drinks        Category = "Drinks"
	Entertainment Category = "Entertainment"
	Misc          Category = "Misc."
	Transport     Category = "Transport"
	Travel        Category = "Travel"
	Housing       Category = "Housing"
)

// Categories lists the fixed set in menu order.
var Categories = []Category{Food, Drinks, Entertainment, Misc, Transport, Travel, Housing}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s", s)
}

// Entry is one recorded expense
type Entry struct {
	Label    string   `json:"label"`
	Amount   float64  `json:"amount"`
	Category Category `json:"category"`
}

// UserLedger maps an ISO date (2006-01-02) to the entries recorded that day,
// in the order they were reported.
type UserLedger map[string][]Entry

// Ledger maps a user id to their per-day entries. It is the root entity:
// the whole structure is persisted after every mutation.
type Ledger map[string]UserLedger

// DaySummary is one day's entries with their total.
type DaySummary struct {
	Date    string
	Entries []Entry
	Total   float64
}

// DayTotal is one row of a weekly or monthly view.
type DayTotal struct {
	Date  string
	Total float64
}

// WeekSummary always holds exactly 7 rows, today first.
type WeekSummary struct {
	Days  []DayTotal
	Total float64
}

// MonthSummary holds one row per day of the current month that has entries,
// in ascending date order.
type MonthSummary struct {
	Days  []DayTotal
	Total float64
}

// CategoryTotal is one category's monthly total and its share of the month,
// rounded to one decimal.
type CategoryTotal struct {
	Category Category
	Total    float64
	Percent  float64
}

// CategorySummary lists categories in order of first appearance in the month.
type CategorySummary struct {
	Categories []CategoryTotal
	Total      float64
}
