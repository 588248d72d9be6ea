package core

import (
	"sort"
	"strings"
	"time"
)

// DefaultNearLimitThreshold is the warning threshold, in percent, for
// credit card usage.
const DefaultNearLimitThreshold = 80.0

type (
	// MonthSummary is the derived income/expense picture of one month.
	// It is never persisted.
	MonthSummary struct {
		Month            MonthKey `json:"month"`
		TotalIncome      Money    `json:"totalIncome"`
		TotalExpense     Money    `json:"totalExpense"`
		Balance          Money    `json:"balance"` // income − expense, signed
		TransactionCount int      `json:"transactionCount"`
	}

	// CategoryExpense is one row of a month's expense breakdown. The
	// Category is the snapshot of the first transaction encountered for
	// that id. PercentOfTotal is the share of the month's total expense,
	// zero when the month has no expenses.
	CategoryExpense struct {
		Category       Category `json:"category"`
		Total          Money    `json:"total"`
		PercentOfTotal float64  `json:"percentOfTotal"`
	}

	// TrendPoint is one month of a spending trend series.
	TrendPoint struct {
		Month   MonthKey `json:"month"`
		Income  Money    `json:"income"`
		Expense Money    `json:"expense"`
		Balance Money    `json:"balance"`
	}

	// BudgetStatus pairs a budget with the spending it tracks.
	BudgetStatus struct {
		Budget      Budget  `json:"budget"`
		Spent       Money   `json:"spent"`
		PercentUsed float64 `json:"percentUsed"`
		OverBudget  bool    `json:"overBudget"`
	}
)

// All functions below are pure: they never mutate their inputs, never
// touch persistence, and return well-defined zero results for empty or
// degenerate input. Time-relative calculations take "today" as an
// explicit parameter.

// inMonth reports whether a transaction's date falls in the bucket.
// A pure string-prefix check, matching how dates are stored.
func inMonth(t Transaction, month MonthKey) bool {
	return len(month) == 7 && strings.HasPrefix(t.Date, string(month))
}

// TransactionsInMonth filters transactions to one month bucket,
// preserving relative input order.
func TransactionsInMonth(transactions []Transaction, month MonthKey) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if inMonth(t, month) {
			out = append(out, t)
		}
	}
	return out
}

// SummarizeMonth computes the income, expense, balance and count of a
// month bucket. Disjoint month keys partition the input: every
// well-formed transaction belongs to exactly one bucket.
func SummarizeMonth(transactions []Transaction, month MonthKey) MonthSummary {
	s := MonthSummary{Month: month}
	for _, t := range transactions {
		if !inMonth(t, month) {
			continue
		}
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
		s.TransactionCount++
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// SortByDateDesc returns a new slice ordered newest first. The sort is
// stable: transactions sharing a date keep their relative input order.
// Lexicographic comparison is chronological for ISO date strings.
func SortByDateDesc(transactions []Transaction) []Transaction {
	out := append([]Transaction(nil), transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// TotalBalance sums account balances. A plain signed sum: overdrawn
// accounts subtract, no weighting by account type.
func TotalBalance(accounts []Account) Money {
	var total Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// ExpensesByCategory groups a month's expense transactions by category
// id and returns rows ordered by descending total. Ties keep
// first-encountered order, so the result is deterministic for a given
// input order.
func ExpensesByCategory(transactions []Transaction, month MonthKey) []CategoryExpense {
	var (
		order      []string
		totals     = make(map[string]Money)
		cats       = make(map[string]Category)
		monthTotal Money
	)
	for _, t := range transactions {
		if t.Type != Expense || !inMonth(t, month) {
			continue
		}
		id := t.Category.ID
		if _, seen := totals[id]; !seen {
			order = append(order, id)
			cats[id] = t.Category
		}
		totals[id] = totals[id].Add(t.Amount)
		monthTotal = monthTotal.Add(t.Amount)
	}

	out := make([]CategoryExpense, 0, len(order))
	for _, id := range order {
		out = append(out, CategoryExpense{Category: cats[id], Total: totals[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	for i := range out {
		out[i].PercentOfTotal = percent(out[i].Total.Cents, monthTotal.Cents)
	}
	return out
}

// GoalProgressPercent returns the raw, uncapped completion percentage
// of a goal. Over-achieved goals exceed 100; a zero target yields 0.
// Clamping to [0,100] for rendering is a presentation concern.
func GoalProgressPercent(goal Goal) float64 {
	return percent(goal.CurrentAmount.Cents, goal.TargetAmount.Cents)
}

// MonthsRemaining returns the whole-month calendar difference between
// today and the goal deadline, floored at 0. Unparsable deadlines count
// as already passed.
func MonthsRemaining(goal Goal, today time.Time) int {
	deadline, err := time.Parse("2006-01-02", goal.Deadline)
	if err != nil {
		return 0
	}
	months := (deadline.Year()-today.Year())*12 + int(deadline.Month()) - int(today.Month())
	if months < 0 {
		return 0
	}
	return months
}

// RequiredMonthlyContribution returns how much must be saved per month
// to reach the goal by its deadline, rounded half-up to the cent. Met
// or over-achieved goals need 0 regardless of deadline; a passed
// deadline divides by one month, never by zero.
func RequiredMonthlyContribution(goal Goal, today time.Time) Money {
	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.Cents <= 0 {
		return Money{}
	}
	months := int64(MonthsRemaining(goal, today))
	if months < 1 {
		months = 1
	}
	return Money{Cents: (remaining.Cents + months/2) / months}
}

// AvailableCardLimit sums limit − usedLimit over credit cards. Debit
// cards and cards without a limit contribute 0; a card used past its
// limit contributes its (negative) overdraft.
func AvailableCardLimit(cards []Card) Money {
	var total Money
	for _, c := range cards {
		if c.Type != CardCredit || c.Limit.Cents == 0 {
			continue
		}
		total = total.Add(c.Limit.Sub(c.UsedLimit))
	}
	return total
}

// IsNearLimit reports whether a credit card's usage has crossed the
// warning threshold (in percent). Debit cards and cards without a
// positive limit are never near their limit.
func IsNearLimit(card Card, thresholdPercent float64) bool {
	if card.Type != CardCredit || card.Limit.Cents <= 0 {
		return false
	}
	return percent(card.UsedLimit.Cents, card.Limit.Cents) >= thresholdPercent
}

// DaysUntilDue returns the number of days from today until the next
// occurrence of the card's due day, rolling into the next month when
// the day has already passed. The boolean is false when the card has no
// usable due day. Due days past a month's end normalize forward the way
// calendar construction does (the 31st in April lands on May 1st).
func DaysUntilDue(card Card, today time.Time) (int, bool) {
	if card.DueDay < 1 || card.DueDay > 31 {
		return 0, false
	}
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(today.Year(), today.Month(), card.DueDay, 0, 0, 0, 0, time.UTC)
	if due.Before(base) {
		due = time.Date(today.Year(), today.Month()+1, card.DueDay, 0, 0, 0, 0, time.UTC)
	}
	return int(due.Sub(base).Hours() / 24), true
}

// LastMonthsTrend builds an n-point income/expense series ending at
// current, oldest first. Each point is a full SummarizeMonth pass over
// the snapshot.
func LastMonthsTrend(transactions []Transaction, current MonthKey, n int) []TrendPoint {
	out := make([]TrendPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		month := AddMonths(current, -i)
		s := SummarizeMonth(transactions, month)
		out = append(out, TrendPoint{
			Month:   month,
			Income:  s.TotalIncome,
			Expense: s.TotalExpense,
			Balance: s.Balance,
		})
	}
	return out
}

// Last6MonthsTrend is the dashboard's six-month series, oldest first.
func Last6MonthsTrend(transactions []Transaction, current MonthKey) []TrendPoint {
	return LastMonthsTrend(transactions, current, 6)
}

// PercentOfSalarySpent returns a month's expenses as a percentage of
// the monthly salary, 0 when no salary is recorded.
func PercentOfSalarySpent(summary MonthSummary, salary Money) float64 {
	return percent(summary.TotalExpense.Cents, salary.Cents)
}

// BudgetUsage reports spending against each budget defined for the
// month, in input budget order.
func BudgetUsage(transactions []Transaction, budgets []Budget, month MonthKey) []BudgetStatus {
	var spent map[string]Money
	out := make([]BudgetStatus, 0)
	for _, b := range budgets {
		if MonthKey(b.Month) != month {
			continue
		}
		if spent == nil {
			spent = make(map[string]Money)
			for _, t := range transactions {
				if t.Type == Expense && inMonth(t, month) {
					spent[t.Category.ID] = spent[t.Category.ID].Add(t.Amount)
				}
			}
		}
		used := spent[b.CategoryID]
		out = append(out, BudgetStatus{
			Budget:      b,
			Spent:       used,
			PercentUsed: percent(used.Cents, b.Amount.Cents),
			OverBudget:  used.Cents > b.Amount.Cents,
		})
	}
	return out
}

// percent returns part/whole*100, guarding division by zero. Ratios in
// this package must never propagate NaN or Inf.
func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
