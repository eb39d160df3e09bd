// internal/domain/insight.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Insight types.
const (
	InsightSpendingAlert = "spending_alert"
	InsightSavingsTip    = "savings_tip"
)

// Insight is a rule-derived advisory shown on the dashboard.
type Insight struct {
	ID          int64          `db:"id" json:"id"`
	UserID      int64          `db:"user_id" json:"user_id"`
	InsightType string         `db:"insight_type" json:"insight_type"`
	Message     string         `db:"message" json:"message"`
	Data        map[string]any `db:"-" json:"data"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

const uncategorized = "other"

// GenerateInsights derives advisories from recent transactions: a
// spending alert for every category whose spend this calendar month
// exceeds last month's by more than 20%, a savings tip when active
// goals exist alongside spending, and a generic tip when nothing else
// fires. Pure function of its inputs; no model call.
func GenerateInsights(transactions []Transaction, goals []Goal, now time.Time) []Insight {
	thisMonth := map[string]decimal.Decimal{}
	lastMonth := map[string]decimal.Decimal{}
	totalExpense := decimal.Zero

	curYear, curMonth, _ := now.Date()
	prev := now.AddDate(0, -1, -now.Day()+1) // first day of previous month
	prevYear, prevMonth, _ := prev.Date()

	for _, t := range transactions {
		if !t.Amount.IsNegative() {
			continue
		}
		cat := uncategorized
		if t.Category != nil && *t.Category != "" {
			cat = *t.Category
		}
		y, m, _ := t.CreatedAt.Date()
		abs := t.Amount.Abs()
		switch {
		case y == curYear && m == curMonth:
			thisMonth[cat] = thisMonth[cat].Add(abs)
			totalExpense = totalExpense.Add(abs)
		case y == prevYear && m == prevMonth:
			lastMonth[cat] = lastMonth[cat].Add(abs)
		}
	}

	var insights []Insight
	threshold := decimal.NewFromFloat(1.2)
	hundred := decimal.NewFromInt(100)
	for cat, thisVal := range thisMonth {
		lastVal, ok := lastMonth[cat]
		if !ok || !lastVal.IsPositive() {
			continue
		}
		if thisVal.GreaterThan(lastVal.Mul(threshold)) {
			pct := thisVal.Sub(lastVal).Div(lastVal).Mul(hundred).Round(0)
			insights = append(insights, Insight{
				InsightType: InsightSpendingAlert,
				Message:     fmt.Sprintf("Your %q spending is up %s%% from last month.", cat, pct.String()),
				Data: map[string]any{
					"category":   cat,
					"this_month": thisVal.String(),
					"last_month": lastVal.String(),
				},
			})
		}
	}

	if len(goals) > 0 && totalExpense.IsPositive() {
		insights = append(insights, Insight{
			InsightType: InsightSavingsTip,
			Message:     "Turn on automatic splitting to route part of your income into your goals.",
			Data:        map[string]any{"goals_count": len(goals)},
		})
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			InsightType: InsightSavingsTip,
			Message:     "Track your spending by category to manage your budget better.",
			Data:        map[string]any{},
		})
	}

	return insights
}
