// internal/domain/settlement.go
package domain

import (
	"sort"

	"github.com/shopspring/decimal"

	"kumbara-api/internal/util"
)

// settleEpsilon is the tolerance below which a balance counts as settled.
var settleEpsilon = decimal.NewFromFloat(0.01)

// SplitEqual divides an expense evenly across the group. Every member
// other than the payer owes the rounded per-person share; the payer's
// own share is absorbed, so any rounding remainder stays with the payer.
func SplitEqual(expenseID int64, total decimal.Decimal, payerID int64, memberIDs []int64) []DebtSplit {
	if len(memberIDs) == 0 {
		return nil
	}
	perPerson := total.Div(decimal.NewFromInt(int64(len(memberIDs)))).Round(currencyPlaces)

	splits := make([]DebtSplit, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id == payerID {
			continue
		}
		splits = append(splits, DebtSplit{ExpenseID: expenseID, UserID: id, Amount: perPerson})
	}
	return splits
}

// CustomSplitInput is one member's requested share of a custom split.
type CustomSplitInput struct {
	UserID int64           `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// SplitCustom emits one debt per provided entry. The entries must sum
// to the expense total within the settlement tolerance.
func SplitCustom(expenseID int64, total decimal.Decimal, inputs []CustomSplitInput) ([]DebtSplit, error) {
	sum := decimal.Zero
	for _, in := range inputs {
		if in.Amount.IsNegative() {
			return nil, util.ErrInvalidAmount
		}
		sum = sum.Add(in.Amount)
	}
	if sum.Sub(total).Abs().GreaterThan(settleEpsilon) {
		return nil, util.ErrSplitMismatch
	}

	splits := make([]DebtSplit, 0, len(inputs))
	for _, in := range inputs {
		splits = append(splits, DebtSplit{ExpenseID: expenseID, UserID: in.UserID, Amount: in.Amount})
	}
	return splits, nil
}

// Contribution is one person's total paid into a shared pool.
type Contribution struct {
	UserID     int64           `db:"user_id" json:"user_id"`
	AmountPaid decimal.Decimal `db:"amount_paid" json:"amount_paid"`
}

// Transfer is a pairwise payment that moves a debtor toward the average.
type Transfer struct {
	FromUserID int64           `json:"from_user_id"`
	ToUserID   int64           `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// NetDebts computes a minimal set of pairwise transfers equalizing
// everyone to the average contribution. Greedy matching of the
// most-negative debtor against the most-positive creditor yields at
// most N-1 transfers and drives every net position to zero within the
// settlement tolerance.
func NetDebts(contributions []Contribution) []Transfer {
	if len(contributions) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, c := range contributions {
		total = total.Add(c.AmountPaid)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(contributions))))

	type position struct {
		userID  int64
		balance decimal.Decimal
	}
	var debtors, creditors []position
	for _, c := range contributions {
		bal := c.AmountPaid.Sub(avg)
		switch {
		case bal.LessThan(settleEpsilon.Neg()):
			debtors = append(debtors, position{c.UserID, bal})
		case bal.GreaterThan(settleEpsilon):
			creditors = append(creditors, position{c.UserID, bal})
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].balance.LessThan(debtors[j].balance)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].balance.GreaterThan(creditors[j].balance)
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		owed := debtors[i].balance.Neg()
		due := creditors[j].balance
		amount := decimal.Min(owed, due)

		transfers = append(transfers, Transfer{
			FromUserID: debtors[i].userID,
			ToUserID:   creditors[j].userID,
			Amount:     amount.Round(currencyPlaces),
		})

		debtors[i].balance = debtors[i].balance.Add(amount)
		creditors[j].balance = creditors[j].balance.Sub(amount)
		if debtors[i].balance.Abs().LessThanOrEqual(settleEpsilon) {
			i++
		}
		if creditors[j].balance.Abs().LessThanOrEqual(settleEpsilon) {
			j++
		}
	}
	return transfers
}
