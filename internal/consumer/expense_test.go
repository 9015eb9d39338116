package consumer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"moneytracker/internal/model"
)

func TestParseExpense(t *testing.T) {
	testTable := []struct {
		name   string
		text   string
		label  string
		amount float64
		err    error
	}{
		{
			name:   "label and integer amount",
			text:   "coffee 5",
			label:  "coffee",
			amount: 5,
		},
		{
			name:   "label and decimal amount",
			text:   "lunch 12.50",
			label:  "lunch",
			amount: 12.50,
		},
		{
			name:   "multi-word label",
			text:   "iced latte 4.50",
			label:  "iced latte",
			amount: 4.50,
		},
		{
			name:   "extra whitespace",
			text:   "  coffee   5  ",
			label:  "coffee",
			amount: 5,
		},
		{
			name: "missing amount",
			text: "coffee",
			err:  errBadFormat,
		},
		{
			name: "amount only",
			text: "5",
			err:  errBadFormat,
		},
		{
			name: "non-numeric amount",
			text: "coffee five",
			err:  errBadAmount,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			label, amount, err := parseExpense(testCase.text)
			if testCase.err != nil {
				require.ErrorIs(t, err, testCase.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.label, label)
			require.Equal(t, testCase.amount, amount)
		})
	}
}

func TestFormatDaySummary(t *testing.T) {
	summary := model.DaySummary{
		Date: "2024-05-15",
		Entries: []model.Entry{
			{Label: "coffee", Amount: 5, Category: model.Food},
			{Label: "lunch", Amount: 12.50, Category: model.Food},
		},
		Total: 17.50,
	}

	require.Equal(t,
		"coffee: $5.00 (Food)\nlunch: $12.50 (Food)\n\n💰 Total: $17.50",
		formatDaySummary(summary))
}

func TestFormatWeekSummary(t *testing.T) {
	week := model.WeekSummary{
		Days: []model.DayTotal{
			{Date: "2024-05-15", Total: 5},
			{Date: "2024-05-14", Total: 0},
			{Date: "2024-05-13", Total: 11},
		},
		Total: 16,
	}

	require.Equal(t,
		"2024-05-15: $5.00\n2024-05-14: $0.00\n2024-05-13: $11.00\n\n💰 Total week: $16.00",
		formatWeekSummary(week))
}

func TestFormatMonthSummary(t *testing.T) {
	month := model.MonthSummary{
		Days: []model.DayTotal{
			{Date: "2024-05-01", Total: 5},
			{Date: "2024-05-15", Total: 12.50},
		},
		Total: 17.50,
	}

	require.Equal(t,
		"2024-05-01: $5.00\n2024-05-15: $12.50\n\n💰 Total month: $17.50",
		formatMonthSummary(month))
}

func TestFormatCategorySummary(t *testing.T) {
	summary := model.CategorySummary{
		Categories: []model.CategoryTotal{
			{Category: model.Food, Total: 30, Percent: 75},
			{Category: model.Transport, Total: 10, Percent: 25},
		},
		Total: 40,
	}

	require.Equal(t,
		"Food: $30.00 (75.0%)\nTransport: $10.00 (25.0%)\n\n💰 Total month: $40.00",
		formatCategorySummary(summary))
}
