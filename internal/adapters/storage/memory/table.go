package memory

import (
	"errors"
	"strings"
	"sync"

	"pawcare/internal/platform/apperr"
)

var (
	ErrNotFound = apperr.ErrNotFound
	ErrExists   = errors.New("already exists")
)

// table es la colección en memoria que comparten todos los repos:
// mapa por id más un slice con el orden de inserción para List.
type table[T any] struct {
	mu    sync.RWMutex
	byID  map[string]T
	order []string
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{
		byID:  make(map[string]T),
		clone: clone,
	}
}

func (t *table[T]) create(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if strings.TrimSpace(id) == "" {
		return errors.New("id required")
	}
	if _, exists := t.byID[id]; exists {
		return ErrExists
	}
	t.byID[id] = t.clone(v)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return t.clone(v), nil
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.byID[id]))
	}
	return out
}

func (t *table[T]) update(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[id]; !exists {
		return ErrNotFound
	}
	t.byID[id] = t.clone(v)
	return nil
}

func (t *table[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[id]; !exists {
		return ErrNotFound
	}
	delete(t.byID, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}
