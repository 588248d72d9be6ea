package memory

import (
	"context"
	"testing"

	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

func TestMemoryStoreBehavesLikeSQLite(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Get(ctx, storage.CollectionAccounts, "a1"); err != storage.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for _, id := range []string{"b", "a"} {
		if err := s.Put(ctx, storage.CollectionAccounts, id, []byte(`{"id":"`+id+`"}`)); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	// Update keeps position, insertion order preserved.
	s.Put(ctx, storage.CollectionAccounts, "b", []byte(`{"id":"b","v":2}`))

	docs, err := s.List(ctx, storage.CollectionAccounts)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || string(docs[0]) != `{"id":"b","v":2}` || string(docs[1]) != `{"id":"a"}` {
		t.Fatalf("unexpected listing: %q", docs)
	}

	if err := s.Remove(ctx, storage.CollectionAccounts, "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, storage.CollectionAccounts, "ghost"); err != nil {
		t.Fatalf("remove absent should be a no-op: %v", err)
	}
	docs, _ = s.List(ctx, storage.CollectionAccounts)
	if len(docs) != 1 || string(docs[0]) != `{"id":"a"}` {
		t.Fatalf("after remove: %q", docs)
	}
}

func TestMemoryStoreSingletons(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetSingleton(ctx, storage.SingletonUserProfile); err != storage.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	s.PutSingleton(ctx, storage.SingletonUserProfile, []byte(`{"name":"Ana"}`))
	s.PutSingleton(ctx, storage.SingletonUserProfile, []byte(`{"name":"Bea"}`))
	doc, err := s.GetSingleton(ctx, storage.SingletonUserProfile)
	if err != nil || string(doc) != `{"name":"Bea"}` {
		t.Fatalf("singleton = %s, %v", doc, err)
	}
}

func TestMemoryStoreIsolatesBuffers(t *testing.T) {
	s := New()
	ctx := context.Background()

	buf := []byte(`{"id":"x"}`)
	s.Put(ctx, storage.CollectionCards, "x", buf)
	buf[2] = '_'

	doc, err := s.Get(ctx, storage.CollectionCards, "x")
	if err != nil || string(doc) != `{"id":"x"}` {
		t.Fatalf("store shared caller's buffer: %s, %v", doc, err)
	}

	doc[2] = '_'
	again, _ := s.Get(ctx, storage.CollectionCards, "x")
	if string(again) != `{"id":"x"}` {
		t.Fatalf("store leaked internal buffer: %s", again)
	}
}
