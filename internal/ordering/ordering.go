// Package ordering implements the persisted reorder list used by the
// allergy, dietary-preference, and class-video tables: rows are displayed in
// a canonical order and a drag-drop reorder rewrites the order number of
// every row in the scope as one dense zero-based sequence.
package ordering

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"infinite-flow-backend/internal/apperr"
)

type Item struct {
	ID          string
	Name        string
	OrderNumber *int
}

type Update struct {
	ID          string
	OrderNumber int
}

// Store is the scope's external record store. UpdateOrder applies the batch
// best-effort; the store is not guaranteed to be atomic across rows.
type Store interface {
	ListItems(ctx context.Context) ([]Item, error)
	UpdateOrder(ctx context.Context, updates []Update) error
}

// Sorted returns a copy in canonical display order: order number ascending,
// rows without one last, ties broken by name ascending case-insensitive.
func Sorted(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.OrderNumber == nil && b.OrderNumber == nil:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case a.OrderNumber == nil:
			return false
		case b.OrderNumber == nil:
			return true
		case *a.OrderNumber != *b.OrderNumber:
			return *a.OrderNumber < *b.OrderNumber
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
	return out
}

// List serializes reorders for one scope. A single in-flight flag rejects
// concurrent drags; rapid successive reorders are not queued.
type List struct {
	store Store
	busy  atomic.Bool
}

func NewList(store Store) *List {
	return &List{store: store}
}

// Reorder moves the item at fromIndex to toIndex within the canonical order
// and persists a dense zero-based order number for every item in the scope.
// itemID must match the item currently at fromIndex: a mismatch means the
// caller was looking at a filtered or stale view, and the reorder is
// rejected before any write.
//
// On a write failure the scope is refetched and the store's state is
// returned alongside the error, so the caller resynchronizes to whatever
// actually persisted instead of trusting local state.
func (l *List) Reorder(ctx context.Context, itemID string, fromIndex, toIndex int) ([]Item, error) {
	if !l.busy.CompareAndSwap(false, true) {
		return nil, apperr.New(apperr.KindConflict, "a reorder for this scope is already in progress")
	}
	defer l.busy.Store(false)

	items, err := l.store.ListItems(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "failed to load items for reorder", err)
	}

	sorted := Sorted(items)
	n := len(sorted)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return nil, apperr.Validationf("reorder index out of range: from=%d to=%d size=%d", fromIndex, toIndex, n)
	}
	if sorted[fromIndex].ID != itemID {
		return nil, apperr.New(apperr.KindConflict, "item is no longer at the given position, refresh and retry")
	}

	moved := make([]Item, 0, n)
	moved = append(moved, sorted[:fromIndex]...)
	moved = append(moved, sorted[fromIndex+1:]...)
	moved = append(moved[:toIndex], append([]Item{sorted[fromIndex]}, moved[toIndex:]...)...)

	updates := make([]Update, n)
	changed := false
	for i := range moved {
		updates[i] = Update{ID: moved[i].ID, OrderNumber: i}
		if moved[i].OrderNumber == nil || *moved[i].OrderNumber != i {
			changed = true
		}
		order := i
		moved[i].OrderNumber = &order
	}

	// Dropping an item on its own slot with an already-dense sequence is a
	// no-op; skip the write entirely.
	if !changed {
		return moved, nil
	}

	if err := l.store.UpdateOrder(ctx, updates); err != nil {
		wrapped := apperr.Wrap(apperr.KindExternal, "failed to persist new order", err)
		refreshed, ferr := l.store.ListItems(ctx)
		if ferr != nil {
			return nil, wrapped
		}
		return Sorted(refreshed), wrapped
	}

	return moved, nil
}
