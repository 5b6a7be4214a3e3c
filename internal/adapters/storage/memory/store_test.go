package memory

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"horse-control/internal/ports/store"
)

func TestStore_MissingKeyLeavesFallbackIntact(t *testing.T) {
	s := NewStore()

	got := []string{"fallback"}
	err := s.Load(context.Background(), "missing", &got)
	if !errors.Is(err, store.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("fallback must stay intact, got %v", got)
	}
}

func TestStore_RoundTripIsolatesCallers(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	saved := []string{"a", "b"}
	if err := s.Save(ctx, "k", saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutar lo guardado no afecta lo que otro caller lee.
	saved[0] = "mutated"

	var got []string
	if err := s.Load(ctx, "k", &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[0] != "a" || got[1] != "b" {
		t.Fatalf("store must isolate callers, got %v", got)
	}
}

func TestFlaky_RateZeroNeverFails(t *testing.T) {
	s := &Flaky{Inner: NewStore(), Rate: 0}
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		if err := s.Save(ctx, "k", i); err != nil {
			t.Fatalf("rate 0 must never fail: %v", err)
		}
	}
}

func TestFlaky_RateOneAlwaysFails(t *testing.T) {
	s := &Flaky{Inner: NewStore(), Rate: 1, Rand: rand.New(rand.NewSource(1))}
	ctx := context.Background()

	if err := s.Save(ctx, "k", "v"); !errors.Is(err, ErrSimulated) {
		t.Fatalf("expected ErrSimulated, got %v", err)
	}
	var v string
	if err := s.Load(ctx, "k", &v); !errors.Is(err, ErrSimulated) {
		t.Fatalf("expected ErrSimulated, got %v", err)
	}
}
