package core

import (
	"reflect"
	"testing"
	"time"
)

func tx(desc string, cents int64, typ TransactionType, catID, date string) Transaction {
	cat, ok := CategoryByID(catID)
	if !ok {
		cat = Category{ID: catID, Name: catID, Type: typ}
	}
	return Transaction{
		ID:          desc,
		Description: desc,
		Amount:      Money{Cents: cents},
		Type:        typ,
		Category:    cat,
		Date:        date,
	}
}

func sampleTransactions() []Transaction {
	return []Transaction{
		tx("groceries", 10000, Expense, "food", "2024-03-05"),
		tx("salary", 5000, Income, "salary", "2024-03-10"),
		tx("restaurant", 3000, Expense, "food", "2024-04-01"),
	}
}

func TestSummarizeMonth(t *testing.T) {
	trans := sampleTransactions()

	got := SummarizeMonth(trans, "2024-03")
	want := MonthSummary{
		Month:            "2024-03",
		TotalIncome:      Money{Cents: 5000},
		TotalExpense:     Money{Cents: 10000},
		Balance:          Money{Cents: -5000},
		TransactionCount: 2,
	}
	if got != want {
		t.Fatalf("SummarizeMonth = %+v, want %+v", got, want)
	}
}

func TestSummarizeMonthEmptyAndMissing(t *testing.T) {
	got := SummarizeMonth(nil, "2024-03")
	if got.TotalIncome.Cents != 0 || got.TotalExpense.Cents != 0 || got.Balance.Cents != 0 || got.TransactionCount != 0 {
		t.Fatalf("empty input should yield zeroed summary, got %+v", got)
	}

	got = SummarizeMonth(sampleTransactions(), "2020-01")
	if got.TransactionCount != 0 {
		t.Fatalf("month with no transactions should yield zero count, got %+v", got)
	}
}

func TestSummarizeMonthBalanceIdentity(t *testing.T) {
	trans := sampleTransactions()
	for _, month := range []MonthKey{"2024-03", "2024-04", "2020-01"} {
		s := SummarizeMonth(trans, month)
		if s.Balance != s.TotalIncome.Sub(s.TotalExpense) {
			t.Errorf("month %s: balance %v != income-expense %v", month, s.Balance, s.TotalIncome.Sub(s.TotalExpense))
		}
	}
}

func TestSummarizeMonthIgnoresMalformedDates(t *testing.T) {
	trans := []Transaction{
		tx("ok", 100, Expense, "food", "2024-03-05"),
		tx("garbage", 999, Expense, "food", "not-a-date"),
		tx("short", 999, Expense, "food", "2024"),
	}
	s := SummarizeMonth(trans, "2024-03")
	if s.TotalExpense.Cents != 100 || s.TransactionCount != 1 {
		t.Fatalf("malformed dates must match no bucket, got %+v", s)
	}
}

func TestTransactionsInMonthPartition(t *testing.T) {
	trans := sampleTransactions()

	march := TransactionsInMonth(trans, "2024-03")
	april := TransactionsInMonth(trans, "2024-04")
	if len(march) != 2 || len(april) != 1 {
		t.Fatalf("partition sizes = %d, %d; want 2, 1", len(march), len(april))
	}

	// No overlap, no omission across disjoint buckets.
	seen := map[string]int{}
	for _, tr := range append(march, april...) {
		seen[tr.ID]++
	}
	if len(seen) != len(trans) {
		t.Fatalf("union covers %d transactions, want %d", len(seen), len(trans))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("transaction %s counted %d times", id, n)
		}
	}
}

func TestTransactionsInMonthPreservesOrder(t *testing.T) {
	trans := []Transaction{
		tx("a", 1, Expense, "food", "2024-03-20"),
		tx("b", 2, Expense, "food", "2024-03-01"),
		tx("c", 3, Expense, "food", "2024-03-10"),
	}
	got := TransactionsInMonth(trans, "2024-03")
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Fatalf("position %d = %s, want %s (input order must be preserved)", i, got[i].ID, want)
		}
	}
}

func TestSortByDateDesc(t *testing.T) {
	trans := []Transaction{
		tx("old", 1, Expense, "food", "2024-01-05"),
		tx("tie1", 2, Expense, "food", "2024-02-10"),
		tx("tie2", 3, Expense, "food", "2024-02-10"),
		tx("new", 4, Expense, "food", "2024-03-01"),
	}
	got := SortByDateDesc(trans)

	want := []string{"new", "tie1", "tie2", "old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
	// Non-mutating: the input keeps its order.
	if trans[0].ID != "old" {
		t.Fatalf("input slice was mutated")
	}
}

func TestTotalBalance(t *testing.T) {
	if got := TotalBalance(nil); got.Cents != 0 {
		t.Fatalf("TotalBalance(nil) = %d, want 0", got.Cents)
	}

	accounts := []Account{
		{Name: "checking", Type: AccountChecking, Balance: Money{Cents: 150000}},
		{Name: "overdrawn", Type: AccountChecking, Balance: Money{Cents: -20000}},
		{Name: "savings", Type: AccountSavings, Balance: Money{Cents: 5000}},
	}
	if got := TotalBalance(accounts); got.Cents != 135000 {
		t.Fatalf("TotalBalance = %d, want 135000", got.Cents)
	}
}

func TestExpensesByCategory(t *testing.T) {
	trans := []Transaction{
		tx("rent", 90000, Expense, "home", "2024-03-01"),
		tx("groceries", 10000, Expense, "food", "2024-03-05"),
		tx("salary", 500000, Income, "salary", "2024-03-10"),
		tx("restaurant", 15000, Expense, "food", "2024-03-12"),
		tx("bus", 2500, Expense, "transport", "2024-03-15"),
		tx("april rent", 90000, Expense, "home", "2024-04-01"),
	}

	got := ExpensesByCategory(trans, "2024-03")
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}

	// Descending by total.
	for i := 0; i+1 < len(got); i++ {
		if got[i].Total.Cents < got[i+1].Total.Cents {
			t.Fatalf("rows not descending: %v before %v", got[i].Total, got[i+1].Total)
		}
	}
	if got[0].Category.ID != "home" || got[0].Total.Cents != 90000 {
		t.Fatalf("top row = %s/%d, want home/90000", got[0].Category.ID, got[0].Total.Cents)
	}
	if got[1].Category.ID != "food" || got[1].Total.Cents != 25000 {
		t.Fatalf("second row = %s/%d, want food/25000", got[1].Category.ID, got[1].Total.Cents)
	}

	// Percent shares: 90000+25000+2500 = 117500 total expense.
	if p := got[0].PercentOfTotal; p < 76.5 || p > 76.7 {
		t.Fatalf("home share = %f, want about 76.6", p)
	}

	// Idempotent: same input, same output.
	again := ExpensesByCategory(trans, "2024-03")
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("second run differs: %+v vs %+v", got, again)
	}
}

func TestExpensesByCategoryTiesKeepFirstEncountered(t *testing.T) {
	trans := []Transaction{
		tx("a", 5000, Expense, "food", "2024-03-01"),
		tx("b", 5000, Expense, "transport", "2024-03-02"),
	}
	got := ExpensesByCategory(trans, "2024-03")
	if got[0].Category.ID != "food" || got[1].Category.ID != "transport" {
		t.Fatalf("tie order = %s, %s; want food, transport", got[0].Category.ID, got[1].Category.ID)
	}
}

func TestExpensesByCategoryEmpty(t *testing.T) {
	if got := ExpensesByCategory(nil, "2024-03"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestExpensesByCategoryFiltersMonthAndType(t *testing.T) {
	trans := []Transaction{
		tx("t1", 10000, Expense, "food", "2024-03-05"),
		tx("t2", 5000, Income, "salary", "2024-03-10"),
		tx("t3", 3000, Expense, "food", "2024-04-01"),
	}
	got := ExpensesByCategory(trans, "2024-03")
	if len(got) != 1 || got[0].Category.ID != "food" || got[0].Total.Cents != 10000 {
		t.Fatalf("got %+v, want single food row of 10000", got)
	}
}

func TestGoalProgressPercent(t *testing.T) {
	cases := []struct {
		name string
		goal Goal
		want float64
	}{
		{"half way", Goal{TargetAmount: Money{Cents: 120000}, CurrentAmount: Money{Cents: 60000}}, 50},
		{"over-achieved stays raw", Goal{TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 150000}}, 150},
		{"zero target guards division", Goal{CurrentAmount: Money{Cents: 60000}}, 0},
		{"nothing saved", Goal{TargetAmount: Money{Cents: 100000}}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GoalProgressPercent(tc.goal); got != tc.want {
				t.Fatalf("GoalProgressPercent = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestMonthsRemaining(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		deadline string
		want     int
	}{
		{"six months out", "2024-09-15", 6},
		{"same month", "2024-03-28", 0},
		{"next year", "2025-01-01", 10},
		{"already passed", "2023-12-31", 0},
		{"unparsable", "soon", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := Goal{Deadline: tc.deadline}
			if got := MonthsRemaining(g, today); got != tc.want {
				t.Fatalf("MonthsRemaining(%q) = %d, want %d", tc.deadline, got, tc.want)
			}
		})
	}
}

func TestRequiredMonthlyContribution(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	goal := Goal{
		TargetAmount:  Money{Cents: 120000},
		CurrentAmount: Money{Cents: 60000},
		Deadline:      "2024-09-15", // 6 whole months away
	}
	if got := RequiredMonthlyContribution(goal, today); got.Cents != 10000 {
		t.Fatalf("contribution = %d, want 10000 (600.00 over 6 months)", got.Cents)
	}

	met := Goal{TargetAmount: Money{Cents: 50000}, CurrentAmount: Money{Cents: 50000}, Deadline: "2030-01-01"}
	if got := RequiredMonthlyContribution(met, today); got.Cents != 0 {
		t.Fatalf("met goal needs %d, want 0", got.Cents)
	}

	over := Goal{TargetAmount: Money{Cents: 50000}, CurrentAmount: Money{Cents: 80000}, Deadline: "2030-01-01"}
	if got := RequiredMonthlyContribution(over, today); got.Cents != 0 {
		t.Fatalf("over-achieved goal needs %d, want 0 (never negative)", got.Cents)
	}

	// Passed deadline divides by one month, not zero.
	passed := Goal{TargetAmount: Money{Cents: 30000}, CurrentAmount: Money{Cents: 10000}, Deadline: "2023-01-01"}
	if got := RequiredMonthlyContribution(passed, today); got.Cents != 20000 {
		t.Fatalf("passed-deadline contribution = %d, want 20000", got.Cents)
	}
}

func TestAvailableCardLimit(t *testing.T) {
	cards := []Card{
		{Name: "visa", Type: CardCredit, Limit: Money{Cents: 100000}, UsedLimit: Money{Cents: 85000}},
		{Name: "debit", Type: CardDebit},
		{Name: "no limit", Type: CardCredit},
	}
	if got := AvailableCardLimit(cards); got.Cents != 15000 {
		t.Fatalf("AvailableCardLimit = %d, want 15000", got.Cents)
	}
	if got := AvailableCardLimit(nil); got.Cents != 0 {
		t.Fatalf("AvailableCardLimit(nil) = %d, want 0", got.Cents)
	}
}

func TestIsNearLimit(t *testing.T) {
	cases := []struct {
		name string
		card Card
		want bool
	}{
		{"85 percent used", Card{Type: CardCredit, Limit: Money{Cents: 100000}, UsedLimit: Money{Cents: 85000}}, true},
		{"exactly at threshold", Card{Type: CardCredit, Limit: Money{Cents: 100000}, UsedLimit: Money{Cents: 80000}}, true},
		{"below threshold", Card{Type: CardCredit, Limit: Money{Cents: 100000}, UsedLimit: Money{Cents: 79999}}, false},
		{"debit card", Card{Type: CardDebit, Limit: Money{Cents: 100000}, UsedLimit: Money{Cents: 99999}}, false},
		{"zero limit guards division", Card{Type: CardCredit, UsedLimit: Money{Cents: 99999}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNearLimit(tc.card, DefaultNearLimitThreshold); got != tc.want {
				t.Fatalf("IsNearLimit = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDaysUntilDue(t *testing.T) {
	today := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		dueDay   int
		wantDays int
		wantOK   bool
	}{
		{"due day passed rolls to next month", 10, 26, true},
		{"due day today", 15, 0, true},
		{"due day later this month", 25, 10, true},
		{"no due day", 0, 0, false},
		{"out of range", 40, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := Card{Type: CardCredit, DueDay: tc.dueDay}
			days, ok := DaysUntilDue(card, today)
			if ok != tc.wantOK || days != tc.wantDays {
				t.Fatalf("DaysUntilDue(dueDay=%d) = %d, %v; want %d, %v", tc.dueDay, days, ok, tc.wantDays, tc.wantOK)
			}
		})
	}
}

func TestDaysUntilDueNeverNegative(t *testing.T) {
	card := Card{Type: CardCredit, DueDay: 1}
	for day := 1; day <= 28; day++ {
		today := time.Date(2024, 2, day, 0, 0, 0, 0, time.UTC)
		days, ok := DaysUntilDue(card, today)
		if !ok || days < 0 {
			t.Fatalf("day %d: DaysUntilDue = %d, %v", day, days, ok)
		}
	}
}

func TestLast6MonthsTrend(t *testing.T) {
	trans := []Transaction{
		tx("nov expense", 1000, Expense, "food", "2023-11-20"),
		tx("jan income", 2000, Income, "salary", "2024-01-05"),
		tx("apr expense", 3000, Expense, "food", "2024-04-10"),
	}

	got := Last6MonthsTrend(trans, "2024-04")
	if len(got) != 6 {
		t.Fatalf("got %d points, want 6", len(got))
	}

	// Oldest to newest, rolling over the year boundary.
	wantMonths := []MonthKey{"2023-11", "2023-12", "2024-01", "2024-02", "2024-03", "2024-04"}
	for i, m := range wantMonths {
		if got[i].Month != m {
			t.Fatalf("point %d month = %s, want %s", i, got[i].Month, m)
		}
	}

	if got[0].Expense.Cents != 1000 {
		t.Fatalf("2023-11 expense = %d, want 1000", got[0].Expense.Cents)
	}
	if got[2].Income.Cents != 2000 || got[2].Balance.Cents != 2000 {
		t.Fatalf("2024-01 point = %+v, want income and balance 2000", got[2])
	}
	if got[5].Expense.Cents != 3000 || got[5].Balance.Cents != -3000 {
		t.Fatalf("2024-04 point = %+v, want expense 3000, balance -3000", got[5])
	}
}

func TestPercentOfSalarySpent(t *testing.T) {
	s := MonthSummary{TotalExpense: Money{Cents: 150000}}
	if got := PercentOfSalarySpent(s, Money{Cents: 300000}); got != 50 {
		t.Fatalf("PercentOfSalarySpent = %f, want 50", got)
	}
	if got := PercentOfSalarySpent(s, Money{}); got != 0 {
		t.Fatalf("zero salary must yield 0, got %f", got)
	}
}

func TestBudgetUsage(t *testing.T) {
	trans := []Transaction{
		tx("groceries", 40000, Expense, "food", "2024-03-05"),
		tx("restaurant", 20000, Expense, "food", "2024-03-12"),
		tx("bus", 2500, Expense, "transport", "2024-03-15"),
	}
	budgets := []Budget{
		{ID: "b1", CategoryID: "food", Amount: Money{Cents: 50000}, Month: "2024-03"},
		{ID: "b2", CategoryID: "transport", Amount: Money{Cents: 10000}, Month: "2024-03"},
		{ID: "b3", CategoryID: "food", Amount: Money{Cents: 50000}, Month: "2024-04"},
	}

	got := BudgetUsage(trans, budgets, "2024-03")
	if len(got) != 2 {
		t.Fatalf("got %d statuses, want 2 (other months excluded)", len(got))
	}
	if got[0].Spent.Cents != 60000 || !got[0].OverBudget || got[0].PercentUsed != 120 {
		t.Fatalf("food status = %+v, want spent 60000, over budget, 120%%", got[0])
	}
	if got[1].Spent.Cents != 2500 || got[1].OverBudget || got[1].PercentUsed != 25 {
		t.Fatalf("transport status = %+v, want spent 2500, 25%%", got[1])
	}
}
