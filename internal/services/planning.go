package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

// BudgetInput carries the caller-supplied fields of a budget.
type BudgetInput struct {
	CategoryID string
	Amount     core.Money
	Month      string
}

// ProfileUpdate carries a partial profile change. Nil fields keep the
// stored value.
type ProfileUpdate struct {
	Name          *string
	Age           *int
	MonthlySalary *core.Money
}

// OnboardingInput is the payload of the one-time onboarding flow.
type OnboardingInput struct {
	Name          string
	Age           int
	MonthlySalary core.Money
	Survey        *core.SurveyAnswers
}

// UpsertBudget creates or replaces the budget for the input's
// (category, month) pair. There is at most one budget per pair; writing
// an existing pair keeps its id and position.
func (s *FinanceService) UpsertBudget(ctx context.Context, in BudgetInput) (core.Budget, error) {
	b := core.Budget{
		ID:         uuid.NewString(),
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Month:      in.Month,
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if category, ok := core.CategoryByID(in.CategoryID); !ok || category.Type != core.Expense {
		return core.Budget{}, fmt.Errorf("category %q: %w", in.CategoryID, core.ErrUnknownCategory)
	}

	existing, err := s.ListBudgets(ctx)
	if err != nil {
		return core.Budget{}, fmt.Errorf("list budgets: %w", err)
	}
	for _, prev := range existing {
		if prev.CategoryID == b.CategoryID && prev.Month == b.Month {
			b.ID = prev.ID
			break
		}
	}

	if err := storage.PutAs(ctx, s.store, storage.CollectionBudgets, b.ID, b); err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	s.logger.InfoContext(ctx, "budget saved",
		log.FieldRecordID, b.ID, log.FieldCategory, b.CategoryID, log.FieldMonth, b.Month)
	return b, nil
}

func (s *FinanceService) DeleteBudget(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, storage.CollectionBudgets, id); err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	return nil
}

func (s *FinanceService) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return storage.ListAs[core.Budget](ctx, s.store, storage.CollectionBudgets)
}

// GetProfile returns the singleton profile, or nil when onboarding has
// never run.
func (s *FinanceService) GetProfile(ctx context.Context) (*core.UserProfile, error) {
	return storage.SingletonAs[core.UserProfile](ctx, s.store, storage.SingletonUserProfile)
}

// UpdateProfile merges a partial update into the stored profile. It
// fails when no profile exists yet; onboarding creates the initial one.
func (s *FinanceService) UpdateProfile(ctx context.Context, update ProfileUpdate) (core.UserProfile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return core.UserProfile{}, fmt.Errorf("load profile: %w", storage.ErrNotFound)
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Age != nil {
		profile.Age = *update.Age
	}
	if update.MonthlySalary != nil {
		profile.MonthlySalary = *update.MonthlySalary
	}
	if err := profile.Validate(); err != nil {
		return core.UserProfile{}, err
	}
	if err := storage.PutSingletonAs(ctx, s.store, storage.SingletonUserProfile, *profile); err != nil {
		return core.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return *profile, nil
}

// CompleteOnboarding creates the profile singleton with the survey
// answers and marks onboarding done. Running it again replaces the
// profile wholesale.
func (s *FinanceService) CompleteOnboarding(ctx context.Context, in OnboardingInput) (core.UserProfile, error) {
	profile := core.UserProfile{
		Name:                in.Name,
		Age:                 in.Age,
		MonthlySalary:       in.MonthlySalary,
		OnboardingCompleted: true,
		Survey:              in.Survey,
		CreatedAt:           s.now(),
	}
	if err := profile.Validate(); err != nil {
		return core.UserProfile{}, err
	}
	if err := storage.PutSingletonAs(ctx, s.store, storage.SingletonUserProfile, profile); err != nil {
		return core.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	s.logger.InfoContext(ctx, "onboarding completed")
	return profile, nil
}
