package ordering_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-flow-backend/internal/apperr"
	"infinite-flow-backend/internal/ordering"
)

type fakeStore struct {
	items       []ordering.Item
	listCalls   int
	updateCalls int
	updates     []ordering.Update
	failUpdate  error
	listGate    chan struct{}
	// listEntered is closed the first time a caller reaches ListItems,
	// before it parks on listGate.
	listEntered chan struct{}
	// refreshed replaces items after a failed update, mimicking a store
	// where part of the batch persisted.
	refreshed []ordering.Item
}

func (f *fakeStore) ListItems(ctx context.Context) ([]ordering.Item, error) {
	if f.listEntered != nil {
		close(f.listEntered)
		f.listEntered = nil
	}
	if f.listGate != nil {
		<-f.listGate
	}
	f.listCalls++
	out := make([]ordering.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeStore) UpdateOrder(ctx context.Context, updates []ordering.Update) error {
	f.updateCalls++
	f.updates = updates
	if f.failUpdate != nil {
		if f.refreshed != nil {
			f.items = f.refreshed
		}
		return f.failUpdate
	}
	// Apply the batch so a subsequent list sees the new order.
	byID := make(map[string]int, len(updates))
	for _, u := range updates {
		byID[u.ID] = u.OrderNumber
	}
	for i := range f.items {
		if n, ok := byID[f.items[i].ID]; ok {
			order := n
			f.items[i].OrderNumber = &order
		}
	}
	return nil
}

func intPtr(n int) *int { return &n }

func orderNumbers(t *testing.T, items []ordering.Item) []int {
	t.Helper()
	out := make([]int, len(items))
	for i, it := range items {
		require.NotNil(t, it.OrderNumber, "item %s has no order number", it.ID)
		out[i] = *it.OrderNumber
	}
	return out
}

func names(items []ordering.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestSorted_TieBreakByNameCaseInsensitive(t *testing.T) {
	items := []ordering.Item{
		{ID: "1", Name: "banana", OrderNumber: intPtr(0)},
		{ID: "2", Name: "Apple", OrderNumber: intPtr(0)},
		{ID: "3", Name: "cherry", OrderNumber: intPtr(0)},
	}

	sorted := ordering.Sorted(items)

	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(sorted))
}

func TestSorted_MissingOrderNumbersLast(t *testing.T) {
	items := []ordering.Item{
		{ID: "1", Name: "zucchini"},
		{ID: "2", Name: "apple", OrderNumber: intPtr(1)},
		{ID: "3", Name: "Mango"},
		{ID: "4", Name: "beet", OrderNumber: intPtr(0)},
	}

	sorted := ordering.Sorted(items)

	assert.Equal(t, []string{"beet", "apple", "Mango", "zucchini"}, names(sorted))
}

func TestReorder_MoveRewritesDenseSequence(t *testing.T) {
	store := &fakeStore{items: []ordering.Item{
		{ID: "a", Name: "A", OrderNumber: intPtr(0)},
		{ID: "b", Name: "B", OrderNumber: intPtr(1)},
		{ID: "c", Name: "C", OrderNumber: intPtr(2)},
	}}
	list := ordering.NewList(store)

	items, err := list.Reorder(context.Background(), "a", 0, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, names(items))
	assert.Equal(t, []int{0, 1, 2}, orderNumbers(t, items))
	assert.Equal(t, 1, store.updateCalls)
	assert.Len(t, store.updates, 3)
}

func TestReorder_SparseOrdersNormalized(t *testing.T) {
	// Orders 10/20/nil must come out as 0..2 even though the moved item
	// stays in place.
	store := &fakeStore{items: []ordering.Item{
		{ID: "a", Name: "A", OrderNumber: intPtr(10)},
		{ID: "b", Name: "B", OrderNumber: intPtr(20)},
		{ID: "c", Name: "C"},
	}}
	list := ordering.NewList(store)

	items, err := list.Reorder(context.Background(), "a", 0, 0)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, orderNumbers(t, items))
	assert.Equal(t, 1, store.updateCalls)
}

func TestReorder_NoOpSkipsWrite(t *testing.T) {
	store := &fakeStore{items: []ordering.Item{
		{ID: "a", Name: "A", OrderNumber: intPtr(0)},
		{ID: "b", Name: "B", OrderNumber: intPtr(1)},
	}}
	list := ordering.NewList(store)

	items, err := list.Reorder(context.Background(), "b", 1, 1)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, orderNumbers(t, items))
	assert.Equal(t, 0, store.updateCalls, "already-dense drop on own slot must not write")
}

func TestReorder_ReorderTwiceIsStable(t *testing.T) {
	store := &fakeStore{items: []ordering.Item{
		{ID: "a", Name: "A", OrderNumber: intPtr(0)},
		{ID: "b", Name: "B", OrderNumber: intPtr(1)},
		{ID: "c", Name: "C", OrderNumber: intPtr(2)},
	}}
	list := ordering.NewList(store)

	first, err := list.Reorder(context.Background(), "c", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, names(first))

	// Dropping the same item on its new slot changes nothing further.
	second, err := list.Reorder(context.Background(), "c", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, names(second))
	assert.Equal(t, 1, store.updateCalls)
}

func TestReorder_IndexOutOfRange(t *testing.T) {
	store := &fakeStore{items: []ordering.Item{
		{ID: "a", Name: "A", OrderNumber: intPtr(0)},
	}}
	list := ordering.NewList(store)

	_, err := list.Reorder(context.Background(), "a", 0, 5)

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, 0, store.updateCalls)
}

func TestReorder_StaleViewRejected(t *testing.T) {
	store := &fakeStore{items: []ordering.Item{
		{ID: "a", Name: "A", OrderNumber: intPtr(0)},
		{ID: "b", Name: "B", OrderNumber: intPtr(1)},
	}}
	list := ordering.NewList(store)

	// The caller believes "b" sits at index 0; it does not.
	_, err := list.Reorder(context.Background(), "b", 0, 1)

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, 0, store.updateCalls, "stale view must be rejected before any write")
}

func TestReorder_WriteFailureReturnsStoreState(t *testing.T) {
	store := &fakeStore{
		items: []ordering.Item{
			{ID: "a", Name: "A", OrderNumber: intPtr(0)},
			{ID: "b", Name: "B", OrderNumber: intPtr(1)},
			{ID: "c", Name: "C", OrderNumber: intPtr(2)},
		},
		failUpdate: errors.New("connection reset"),
		// Only the first row of the batch persisted before the failure.
		refreshed: []ordering.Item{
			{ID: "a", Name: "A", OrderNumber: intPtr(2)},
			{ID: "b", Name: "B", OrderNumber: intPtr(1)},
			{ID: "c", Name: "C", OrderNumber: intPtr(2)},
		},
	}
	list := ordering.NewList(store)

	items, err := list.Reorder(context.Background(), "a", 0, 2)

	require.Error(t, err)
	assert.Equal(t, apperr.KindExternal, apperr.KindOf(err))
	// The returned list reflects whatever the store actually holds, in
	// canonical order, not the optimistic local result.
	assert.Equal(t, []string{"B", "A", "C"}, names(items))
	assert.Equal(t, 2, store.listCalls, "failed write must refetch the scope")
}

func TestReorder_ConcurrentReorderConflicts(t *testing.T) {
	store := &fakeStore{
		items: []ordering.Item{
			{ID: "a", Name: "A", OrderNumber: intPtr(0)},
			{ID: "b", Name: "B", OrderNumber: intPtr(1)},
		},
		listGate:    make(chan struct{}),
		listEntered: make(chan struct{}),
	}
	list := ordering.NewList(store)
	entered := store.listEntered

	done := make(chan error, 1)
	go func() {
		_, err := list.Reorder(context.Background(), "a", 0, 1)
		done <- err
	}()

	// Once the first reorder is parked inside ListItems it holds the
	// in-flight flag, so a second one must be rejected rather than queued.
	<-entered
	_, err := list.Reorder(context.Background(), "a", 0, 1)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	close(store.listGate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.updateCalls)
}
