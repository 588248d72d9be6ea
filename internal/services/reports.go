package services

import (
	"context"
	"fmt"
	"time"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

// recentTransactionLimit caps the dashboard's recent activity list.
const recentTransactionLimit = 10

// Overview is the assembled dashboard payload for one month. Every
// number in it is derived on demand from stored records.
type Overview struct {
	Summary             core.MonthSummary      `json:"summary"`
	Categories          []core.CategoryExpense `json:"categories"`
	Trend               []core.TrendPoint      `json:"trend"`
	TotalBalance        core.Money             `json:"totalBalance"`
	AvailableCardLimit  core.Money             `json:"availableCardLimit"`
	PercentSalarySpent  float64                `json:"percentSalarySpent"`
	Budgets             []core.BudgetStatus    `json:"budgets"`
	RecentTransactions  []core.Transaction     `json:"recentTransactions"`
	OnboardingCompleted bool                   `json:"onboardingCompleted"`
}

// MonthOverview assembles the dashboard for the given month. It reads
// one snapshot per collection and hands everything to the engine; no
// derived value is read back from storage.
func (s *FinanceService) MonthOverview(ctx context.Context, month core.MonthKey, today time.Time) (Overview, error) {
	if !core.ValidMonthKey(month) {
		return Overview{}, fmt.Errorf("month %q: %w", month, core.ErrInvalidMonthKey)
	}

	transactions, err := s.ListTransactions(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list transactions: %w", err)
	}
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list accounts: %w", err)
	}
	cards, err := s.ListCards(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list cards: %w", err)
	}
	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list budgets: %w", err)
	}
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("load profile: %w", err)
	}

	summary := core.SummarizeMonth(transactions, month)
	recent := core.SortByDateDesc(core.TransactionsInMonth(transactions, month))
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	overview := Overview{
		Summary:            summary,
		Categories:         core.ExpensesByCategory(transactions, month),
		Trend:              core.Last6MonthsTrend(transactions, month),
		TotalBalance:       core.TotalBalance(accounts),
		AvailableCardLimit: core.AvailableCardLimit(cards),
		Budgets:            core.BudgetUsage(transactions, budgets, month),
		RecentTransactions: recent,
	}
	if profile != nil {
		overview.PercentSalarySpent = core.PercentOfSalarySpent(summary, profile.MonthlySalary)
		overview.OnboardingCompleted = profile.OnboardingCompleted
	}
	return overview, nil
}

// Trend returns an n-month income/expense series ending at the given
// month, oldest first.
func (s *FinanceService) Trend(ctx context.Context, month core.MonthKey, months int) ([]core.TrendPoint, error) {
	if !core.ValidMonthKey(month) {
		return nil, fmt.Errorf("month %q: %w", month, core.ErrInvalidMonthKey)
	}
	if months < 1 {
		months = 6
	}
	transactions, err := storage.ListAs[core.Transaction](ctx, s.store, storage.CollectionTransactions)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return core.LastMonthsTrend(transactions, month, months), nil
}
