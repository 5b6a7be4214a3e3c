package memory

import (
	"context"
	"errors"
	"math/rand"

	"horse-control/internal/ports/store"
)

var ErrSimulated = errors.New("simulated storage failure")

// Flaky envuelve otro Store y falla con probabilidad Rate.
// Rate 0 (producción) nunca falla; sirve para probar que los callers
// no asumen que el repositorio es infalible.
type Flaky struct {
	Inner store.Store
	Rate  float64
	Rand  *rand.Rand // opcional; nil usa el global
}

func (f *Flaky) Load(ctx context.Context, key string, v any) error {
	if f.fail() {
		return ErrSimulated
	}
	return f.Inner.Load(ctx, key, v)
}

func (f *Flaky) Save(ctx context.Context, key string, v any) error {
	if f.fail() {
		return ErrSimulated
	}
	return f.Inner.Save(ctx, key, v)
}

func (f *Flaky) fail() bool {
	if f.Rate <= 0 {
		return false
	}
	if f.Rand != nil {
		return f.Rand.Float64() < f.Rate
	}
	return rand.Float64() < f.Rate
}
