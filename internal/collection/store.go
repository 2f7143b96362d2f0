// Package collection implements the in-memory record store behind each
// admin listing. Loads always replace the whole list, and every mutation
// re-fetches through the active loader so the displayed state reflects
// server truth.
package collection

import (
	"context"
	"errors"
)

// ErrBusy is returned when a mutation is attempted while another
// operation on the same store has not settled yet.
var ErrBusy = errors.New("another operation is still in progress")

// Loader fetches a full replacement list from the server.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Store holds the current list for one screen. It is not safe for
// concurrent use; each screen owns exactly one store.
type Store[T any] struct {
	loadAll Loader[T]
	active  Loader[T]
	items   []T
	loadErr string
	busy    bool
}

// New creates a store whose unfiltered view comes from loadAll.
func New[T any](loadAll Loader[T]) *Store[T] {
	return &Store[T]{loadAll: loadAll, active: loadAll}
}

// Items returns the currently loaded list. After a failed load this is
// still the previous successful result.
func (s *Store[T]) Items() []T {
	return s.items
}

// Err returns the user-visible message from the last failed load, or ""
// when the last load succeeded.
func (s *Store[T]) Err() string {
	return s.loadErr
}

// Busy reports whether a load or mutation is currently in flight.
func (s *Store[T]) Busy() bool {
	return s.busy
}

func (s *Store[T]) run(ctx context.Context, loader Loader[T]) error {
	s.busy = true
	defer func() { s.busy = false }()

	items, err := loader(ctx)
	if err != nil {
		// Keep the previous list on screen; the caller retries explicitly.
		s.loadErr = err.Error()
		return err
	}
	s.items = items
	s.loadErr = ""
	return nil
}

// LoadAll replaces the list with the full unfiltered collection and
// makes it the active view.
func (s *Store[T]) LoadAll(ctx context.Context) error {
	s.active = s.loadAll
	return s.run(ctx, s.active)
}

// LoadWith replaces the list through a server-side filter endpoint and
// makes that filter the active view, so later reloads preserve it.
func (s *Store[T]) LoadWith(ctx context.Context, loader Loader[T]) error {
	s.active = loader
	return s.run(ctx, loader)
}

// Reload re-fetches the active view. Used after every mutation.
func (s *Store[T]) Reload(ctx context.Context) error {
	return s.run(ctx, s.active)
}

// Mutate runs a single mutating action (create, update, delete, restore)
// and reloads the active view on success. The store is never patched
// directly. A second mutation while one is in flight fails with ErrBusy.
func (s *Store[T]) Mutate(ctx context.Context, action func(ctx context.Context) error) error {
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	err := action(ctx)
	s.busy = false
	if err != nil {
		return err
	}
	return s.Reload(ctx)
}
