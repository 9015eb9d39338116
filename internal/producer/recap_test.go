package producer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"moneytracker/internal/model"
)

func Test_DurationUntilMidnight(t *testing.T) {
	testTable := []struct {
		name   string
		now    time.Time
		result time.Duration
	}{
		{
			name:   "middle of the day",
			now:    time.Date(2023, 6, 28, 15, 30, 0, 0, time.UTC),
			result: 8*time.Hour + 30*time.Minute,
		},
		{
			name:   "just before midnight",
			now:    time.Date(2023, 6, 28, 23, 59, 30, 0, time.UTC),
			result: 30 * time.Second,
		},
		{
			name:   "exactly midnight",
			now:    time.Date(2023, 6, 28, 0, 0, 0, 0, time.UTC),
			result: 24 * time.Hour,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.result, durationUntilMidnight(testCase.now))
		})
	}
}

func Test_ConvertToRecap(t *testing.T) {
	summary := model.DaySummary{
		Date: "2024-05-14",
		Entries: []model.Entry{
			{Label: "coffee", Amount: 5, Category: model.Food},
			{Label: "bus", Amount: 2.40, Category: model.Transport},
		},
		Total: 7.40,
	}

	require.Equal(t,
		"🧾 Recap for 2024-05-14:\ncoffee: $5.00 (Food)\nbus: $2.40 (Transport)\n\n💰 Total: $7.40",
		convertToRecap(summary))
}
