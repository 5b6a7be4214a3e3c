// Package kv implementa los repositorios de dominio sobre el puerto
// store.Store: cada colección es un único documento JSON que se lee,
// modifica y vuelve a grabar entero. Un mutex por colección serializa
// las mutaciones, que es todo lo que este modelo de un solo proceso
// necesita.
package kv

import (
	"context"
	"errors"
	"sync"

	"horse-control/internal/platform/metrics"
	"horse-control/internal/ports/store"
)

type collection[T any] struct {
	st  store.Store
	key string
	mu  sync.Mutex
}

func newCollection[T any](st store.Store, key string) *collection[T] {
	return &collection[T]{st: st, key: key}
}

// load devuelve la colección completa; clave ausente = lista vacía.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := c.st.Load(ctx, c.key, &items); err != nil && !errors.Is(err, store.ErrNoDocument) {
		metrics.StoreErrors.WithLabelValues("load").Inc()
		return nil, err
	}
	return items, nil
}

// mutate ejecuta fn bajo el lock de la colección y persiste lo que
// devuelva. Si fn falla no se escribe nada.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if err := c.st.Save(ctx, c.key, items); err != nil {
		metrics.StoreErrors.WithLabelValues("save").Inc()
		return err
	}
	return nil
}
