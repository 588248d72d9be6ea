// Package services glues storage and the finance engine together:
// input validation, id assignment, category snapshotting and report
// assembly live here.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

// FinanceService orchestrates all reads and writes against the store.
// Reads work on whole-collection snapshots; derived numbers are
// computed by the core engine and never persisted.
type FinanceService struct {
	store  storage.Store
	logger *log.Logger
	now    func() time.Time
}

// NewFinanceService creates a service using the given store. The clock
// defaults to time.Now and can be overridden with WithClock.
func NewFinanceService(store storage.Store, logger *log.Logger) *FinanceService {
	return &FinanceService{
		store:  store,
		logger: logger.WithComponent(log.ComponentFinance),
		now:    time.Now,
	}
}

// WithClock replaces the service clock. Intended for tests.
func (s *FinanceService) WithClock(now func() time.Time) *FinanceService {
	s.now = now
	return s
}

// TransactionInput carries the caller-supplied fields of a transaction.
// The category is referenced by id and snapshotted from the catalog at
// write time.
type TransactionInput struct {
	Description string
	Amount      core.Money
	Type        core.TransactionType
	CategoryID  string
	Date        string
}

func (s *FinanceService) buildTransaction(id string, createdAt time.Time, in TransactionInput) (core.Transaction, error) {
	category, ok := core.CategoryByID(in.CategoryID)
	if !ok {
		return core.Transaction{}, fmt.Errorf("category %q: %w", in.CategoryID, core.ErrUnknownCategory)
	}
	t := core.Transaction{
		ID:          id,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    category,
		Date:        in.Date,
		CreatedAt:   createdAt,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// CreateTransaction validates the input, snapshots its category and
// persists a new transaction.
func (s *FinanceService) CreateTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	t, err := s.buildTransaction(uuid.NewString(), s.now(), in)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionTransactions, t.ID, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.logger.InfoContext(ctx, "transaction created",
		log.FieldRecordID, t.ID, log.FieldAmountCents, t.Amount.Cents, log.FieldCategory, t.Category.ID)
	return t, nil
}

// UpdateTransaction replaces an existing transaction wholesale, keeping
// its id and creation time.
func (s *FinanceService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	existing, err := storage.GetAs[core.Transaction](ctx, s.store, storage.CollectionTransactions, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transaction %s: %w", id, err)
	}
	t, err := s.buildTransaction(existing.ID, existing.CreatedAt, in)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := storage.PutAs(ctx, s.store, storage.CollectionTransactions, t.ID, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	return t, nil
}

// DeleteTransaction removes a transaction. Deleting an absent id is not
// an error.
func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, storage.CollectionTransactions, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "transaction deleted", log.FieldRecordID, id)
	return nil
}

// ListTransactions returns a snapshot of all transactions in insertion
// order.
func (s *FinanceService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return storage.ListAs[core.Transaction](ctx, s.store, storage.CollectionTransactions)
}

// Close releases the underlying store.
func (s *FinanceService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
