// internal/domain/ledger.go
package domain

import (
	"sort"

	"github.com/shopspring/decimal"

	"kumbara-api/internal/util"
)

// currencyPlaces is the minor-unit precision for all monetary amounts.
const currencyPlaces = 2

// EntryMeta carries caller-supplied metadata into planned ledger entries.
type EntryMeta struct {
	UserID      int64
	Category    *string
	Description *string
}

// GoalDelta is a pending credit against a goal's accumulated amount.
type GoalDelta struct {
	GoalID int64
	Amount decimal.Decimal
}

// IncomePlan is the computed outcome of applying an income event:
// per-goal credits, the leftover credited to the main balance, and the
// ledger entries that record the movement. The caller must persist the
// plan as a single atomic unit.
type IncomePlan struct {
	NewBalance decimal.Decimal
	Remaining  decimal.Decimal
	GoalDeltas []GoalDelta
	Entries    []*Transaction
}

// PlanIncome distributes an incoming amount across the active split
// rules and credits the leftover to the main balance.
//
// Rules are applied in priority order (ties broken by id). If the rule
// percentages sum to zero or exceed 100, splitting is skipped entirely
// and the full amount stays on the main balance.
func PlanIncome(balance, amount decimal.Decimal, rules []AutomaticSplitRule, meta EntryMeta) (*IncomePlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	ordered := make([]AutomaticSplitRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].ID < ordered[j].ID
	})

	totalPct := decimal.Zero
	for _, r := range ordered {
		totalPct = totalPct.Add(r.Percentage)
	}

	plan := &IncomePlan{Remaining: amount}

	// The income entry records the full credit; split transfers then
	// walk the running balance down to the committed final balance.
	running := balance.Add(amount)
	income := NewTransaction(meta.UserID, TransactionTypeIncome, amount, running, SourceManual)
	income.Category = meta.Category
	income.Description = meta.Description
	plan.Entries = append(plan.Entries, income)

	hundred := decimal.NewFromInt(100)
	if totalPct.IsPositive() && totalPct.LessThanOrEqual(hundred) {
		for _, r := range ordered {
			part := amount.Mul(r.Percentage).Div(hundred).Round(currencyPlaces)
			plan.Remaining = plan.Remaining.Sub(part)
			running = running.Sub(part)

			plan.GoalDeltas = append(plan.GoalDeltas, GoalDelta{GoalID: r.GoalID, Amount: part})

			goalID := r.GoalID
			entry := NewTransaction(meta.UserID, TransactionTypeTransfer, part.Neg(), running, SourceAutomaticSplit)
			entry.Category = meta.Category
			entry.Description = meta.Description
			entry.GoalID = &goalID
			plan.Entries = append(plan.Entries, entry)
		}
	}

	plan.NewBalance = balance.Add(plan.Remaining)
	return plan, nil
}

// ExpensePlan is the computed outcome of applying an expense, including
// an optional round-up entry and goal credit.
type ExpensePlan struct {
	NewBalance decimal.Decimal
	RoundUp    decimal.Decimal
	GoalDelta  *GoalDelta
	Entries    []*Transaction
}

// PlanExpense debits an expense from the balance and, if a round-up
// rule is active, rounds the amount up to the rule's denomination and
// diverts the difference to the rule's destination.
//
// The expense itself must be affordable; the round-up is dropped
// silently when balance cannot cover amount plus round-up, so the
// primary expense always succeeds if affordable alone.
func PlanExpense(balance, amount decimal.Decimal, rule *RoundUpRule, meta EntryMeta) (*ExpensePlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}
	if balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	roundUp := decimal.Zero
	if rule != nil && rule.IsActive {
		m := rule.Multiple()
		rounded := amount.Div(m).Ceil().Mul(m)
		roundUp = rounded.Sub(amount).Round(currencyPlaces)
	}
	if balance.LessThan(amount.Add(roundUp)) {
		roundUp = decimal.Zero
	}

	plan := &ExpensePlan{
		NewBalance: balance.Sub(amount).Sub(roundUp),
		RoundUp:    roundUp,
	}

	expense := NewTransaction(meta.UserID, TransactionTypeExpense, amount.Neg(), plan.NewBalance, SourceManual)
	expense.Category = meta.Category
	expense.Description = meta.Description
	if roundUp.IsPositive() {
		ru := roundUp
		expense.RoundUpAmount = &ru
	}
	plan.Entries = append(plan.Entries, expense)

	if roundUp.IsPositive() {
		entry := NewTransaction(meta.UserID, TransactionTypeRoundUp, roundUp.Neg(), plan.NewBalance, SourceRoundUp)
		entry.Description = meta.Description
		if rule.DestinationType == RoundUpDestinationGoal && rule.GoalID != nil {
			goalID := *rule.GoalID
			entry.GoalID = &goalID
			plan.GoalDelta = &GoalDelta{GoalID: goalID, Amount: roundUp}
		}
		plan.Entries = append(plan.Entries, entry)
	}

	return plan, nil
}
