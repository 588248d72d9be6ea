// Package storage persists JSON-serializable records in named
// collections with last-write-wins semantics. It is a key-value
// document store: callers read whole snapshots, transform them in
// memory, and write whole records back. There is no partial update and
// no cross-process consistency guarantee.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names. They keep the original storage keys so an exported
// data dump stays recognizable.
const (
	CollectionTransactions = "cashup_transactions"
	CollectionAccounts     = "cashup_accounts"
	CollectionCards        = "cashup_cards"
	CollectionGoals        = "cashup_goals"
	CollectionBudgets      = "cashup_budgets"

	SingletonUserProfile = "cashup_user_profile"
)

// ErrNotFound is returned when a record or singleton does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary: raw JSON documents keyed by
// collection and id, plus singleton values keyed by name. List returns
// records in insertion order, stable across updates.
type Store interface {
	List(ctx context.Context, collection string) ([][]byte, error)
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Put(ctx context.Context, collection, id string, record []byte) error
	Remove(ctx context.Context, collection, id string) error
	GetSingleton(ctx context.Context, key string) ([]byte, error)
	PutSingleton(ctx context.Context, key string, value []byte) error
	Close() error
}

// ListAs reads a whole collection snapshot into typed records.
func ListAs[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	raw, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, doc := range raw {
		var rec T
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", collection, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetAs reads one typed record. Returns ErrNotFound when absent.
func GetAs[T any](ctx context.Context, s Store, collection, id string) (T, error) {
	var rec T
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(doc, &rec); err != nil {
		return rec, fmt.Errorf("decode %s record %s: %w", collection, id, err)
	}
	return rec, nil
}

// PutAs writes one typed record, replacing any existing record with the
// same id.
func PutAs[T any](ctx context.Context, s Store, collection, id string, record T) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", collection, id, err)
	}
	return s.Put(ctx, collection, id, doc)
}

// SingletonAs reads a typed singleton. Returns (nil, nil) when the
// singleton has never been written.
func SingletonAs[T any](ctx context.Context, s Store, key string) (*T, error) {
	doc, err := s.GetSingleton(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var value T
	if err := json.Unmarshal(doc, &value); err != nil {
		return nil, fmt.Errorf("decode singleton %s: %w", key, err)
	}
	return &value, nil
}

// PutSingletonAs writes a typed singleton, replacing any prior value.
func PutSingletonAs[T any](ctx context.Context, s Store, key string, value T) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode singleton %s: %w", key, err)
	}
	return s.PutSingleton(ctx, key, doc)
}
