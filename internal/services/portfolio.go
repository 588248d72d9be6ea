package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

// AccountInput carries the caller-supplied fields of an account.
type AccountInput struct {
	Name    string
	Type    core.AccountType
	Balance core.Money
	Icon    string
	Color   string
}

// CardInput carries the caller-supplied fields of a card. AccountID is
// a weak reference and is stored as given, even when no such account
// exists.
type CardInput struct {
	Name       string
	Type       core.CardType
	LastDigits string
	Limit      core.Money
	UsedLimit  core.Money
	ClosingDay int
	DueDay     int
	AccountID  string
	Color      string
}

// GoalInput carries the caller-supplied fields of a savings goal.
type GoalInput struct {
	Name                string
	TargetAmount        core.Money
	CurrentAmount       core.Money
	Deadline            string
	Icon                string
	Color               string
	AccountID           string
	MonthlyContribution core.Money
}

func (s *FinanceService) CreateAccount(ctx context.Context, in AccountInput) (core.Account, error) {
	a := core.Account{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Type:      in.Type,
		Balance:   in.Balance,
		Icon:      in.Icon,
		Color:     in.Color,
		CreatedAt: s.now(),
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionAccounts, a.ID, a); err != nil {
		return core.Account{}, fmt.Errorf("save account: %w", err)
	}
	s.logger.InfoContext(ctx, "account created", log.FieldRecordID, a.ID)
	return a, nil
}

func (s *FinanceService) UpdateAccount(ctx context.Context, id string, in AccountInput) (core.Account, error) {
	existing, err := storage.GetAs[core.Account](ctx, s.store, storage.CollectionAccounts, id)
	if err != nil {
		return core.Account{}, fmt.Errorf("load account %s: %w", id, err)
	}
	a := core.Account{
		ID:        existing.ID,
		Name:      in.Name,
		Type:      in.Type,
		Balance:   in.Balance,
		Icon:      in.Icon,
		Color:     in.Color,
		CreatedAt: existing.CreatedAt,
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionAccounts, a.ID, a); err != nil {
		return core.Account{}, fmt.Errorf("save account: %w", err)
	}
	return a, nil
}

// DeleteAccount removes an account. Cards and goals referencing it keep
// their accountId; the reference is allowed to dangle.
func (s *FinanceService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, storage.CollectionAccounts, id); err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return nil
}

func (s *FinanceService) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return storage.ListAs[core.Account](ctx, s.store, storage.CollectionAccounts)
}

// LookupAccount resolves a weak account reference. The boolean is false
// when the account does not exist, which is a valid state rather than
// an error.
func (s *FinanceService) LookupAccount(ctx context.Context, id string) (core.Account, bool, error) {
	a, err := storage.GetAs[core.Account](ctx, s.store, storage.CollectionAccounts, id)
	if errors.Is(err, storage.ErrNotFound) {
		return core.Account{}, false, nil
	}
	if err != nil {
		return core.Account{}, false, fmt.Errorf("load account %s: %w", id, err)
	}
	return a, true, nil
}

func (s *FinanceService) CreateCard(ctx context.Context, in CardInput) (core.Card, error) {
	c := s.cardFromInput(uuid.NewString(), s.now(), in)
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionCards, c.ID, c); err != nil {
		return core.Card{}, fmt.Errorf("save card: %w", err)
	}
	s.logger.InfoContext(ctx, "card created", log.FieldRecordID, c.ID)
	return c, nil
}

func (s *FinanceService) UpdateCard(ctx context.Context, id string, in CardInput) (core.Card, error) {
	existing, err := storage.GetAs[core.Card](ctx, s.store, storage.CollectionCards, id)
	if err != nil {
		return core.Card{}, fmt.Errorf("load card %s: %w", id, err)
	}
	c := s.cardFromInput(existing.ID, existing.CreatedAt, in)
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionCards, c.ID, c); err != nil {
		return core.Card{}, fmt.Errorf("save card: %w", err)
	}
	return c, nil
}

func (s *FinanceService) cardFromInput(id string, createdAt time.Time, in CardInput) core.Card {
	return core.Card{
		ID:         id,
		Name:       in.Name,
		Type:       in.Type,
		LastDigits: in.LastDigits,
		Limit:      in.Limit,
		UsedLimit:  in.UsedLimit,
		ClosingDay: in.ClosingDay,
		DueDay:     in.DueDay,
		AccountID:  in.AccountID,
		Color:      in.Color,
		CreatedAt:  createdAt,
	}
}

func (s *FinanceService) DeleteCard(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, storage.CollectionCards, id); err != nil {
		return fmt.Errorf("delete card %s: %w", id, err)
	}
	return nil
}

func (s *FinanceService) ListCards(ctx context.Context) ([]core.Card, error) {
	return storage.ListAs[core.Card](ctx, s.store, storage.CollectionCards)
}

func (s *FinanceService) CreateGoal(ctx context.Context, in GoalInput) (core.Goal, error) {
	g := s.goalFromInput(uuid.NewString(), s.now(), in)
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionGoals, g.ID, g); err != nil {
		return core.Goal{}, fmt.Errorf("save goal: %w", err)
	}
	s.logger.InfoContext(ctx, "goal created", log.FieldRecordID, g.ID)
	return g, nil
}

func (s *FinanceService) UpdateGoal(ctx context.Context, id string, in GoalInput) (core.Goal, error) {
	existing, err := storage.GetAs[core.Goal](ctx, s.store, storage.CollectionGoals, id)
	if err != nil {
		return core.Goal{}, fmt.Errorf("load goal %s: %w", id, err)
	}
	g := s.goalFromInput(existing.ID, existing.CreatedAt, in)
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionGoals, g.ID, g); err != nil {
		return core.Goal{}, fmt.Errorf("save goal: %w", err)
	}
	return g, nil
}

func (s *FinanceService) goalFromInput(id string, createdAt time.Time, in GoalInput) core.Goal {
	return core.Goal{
		ID:                  id,
		Name:                in.Name,
		TargetAmount:        in.TargetAmount,
		CurrentAmount:       in.CurrentAmount,
		Deadline:            in.Deadline,
		Icon:                in.Icon,
		Color:               in.Color,
		AccountID:           in.AccountID,
		MonthlyContribution: in.MonthlyContribution,
		CreatedAt:           createdAt,
	}
}

func (s *FinanceService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, storage.CollectionGoals, id); err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	return nil
}

func (s *FinanceService) ListGoals(ctx context.Context) ([]core.Goal, error) {
	return storage.ListAs[core.Goal](ctx, s.store, storage.CollectionGoals)
}
