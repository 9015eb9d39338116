package consumer

import (
	"fmt"
	"strings"

	"moneytracker/internal/model"
)

const welcomeText = `👋 Welcome to MoneyTracker Bot!

Send me an expense like:
coffee 5
lunch 12.50

Commands:
/summary - Today's expenses
/week - Weekly summary
/month - Monthly daily totals
/month_category - Monthly category summary
/undo - Remove last entry
/recap - Get yesterday's summary every midnight`

func formatDaySummary(summary model.DaySummary) string {
	var b strings.Builder
	for _, entry := range summary.Entries {
		fmt.Fprintf(&b, "%s: $%.2f (%s)\n", entry.Label, entry.Amount, entry.Category)
	}
	fmt.Fprintf(&b, "\n💰 Total: $%.2f", summary.Total)
	return b.String()
}

func formatWeekSummary(week model.WeekSummary) string {
	var b strings.Builder
	for _, day := range week.Days {
		fmt.Fprintf(&b, "%s: $%.2f\n", day.Date, day.Total)
	}
	fmt.Fprintf(&b, "\n💰 Total week: $%.2f", week.Total)
	return b.String()
}

func formatMonthSummary(month model.MonthSummary) string {
	var b strings.Builder
	for _, day := range month.Days {
		fmt.Fprintf(&b, "%s: $%.2f\n", day.Date, day.Total)
	}
	fmt.Fprintf(&b, "\n💰 Total month: $%.2f", month.Total)
	return b.String()
}

func formatCategorySummary(summary model.CategorySummary) string {
	var b strings.Builder
	for _, category := range summary.Categories {
		fmt.Fprintf(&b, "%s: $%.2f (%.1f%%)\n", category.Category, category.Total, category.Percent)
	}
	fmt.Fprintf(&b, "\n💰 Total month: $%.2f", summary.Total)
	return b.String()
}
