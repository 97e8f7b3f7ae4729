package docstore_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
)

type item struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"nome"`
	Status string `json:"estado"`
	Qty    int    `json:"quantidade"`
}

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	id, err := store.Create(ctx, "itens", item{ID: "ignorado", Name: "Arroz", Qty: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NotEqual(t, "ignorado", id)

	doc, err := store.Get(ctx, "itens", id)
	require.NoError(t, err)
	var got item
	require.NoError(t, doc.Decode(&got))
	assert.Equal(t, "Arroz", got.Name)
	assert.Equal(t, 3, got.Qty)
	assert.Empty(t, got.ID)

	require.NoError(t, store.Update(ctx, "itens", id, map[string]interface{}{"quantidade": 7}))
	doc, err = store.Get(ctx, "itens", id)
	require.NoError(t, err)
	require.NoError(t, doc.Decode(&got))
	assert.Equal(t, "Arroz", got.Name, "update parcial preserva os outros campos")
	assert.Equal(t, 7, got.Qty)

	require.NoError(t, store.Set(ctx, "itens", id, item{Name: "Massa"}))
	doc, err = store.Get(ctx, "itens", id)
	require.NoError(t, err)
	require.NoError(t, doc.Decode(&got))
	assert.Equal(t, "Massa", got.Name)
	assert.Equal(t, 0, got.Qty)

	require.NoError(t, store.Delete(ctx, "itens", id))
	_, err = store.Get(ctx, "itens", id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMemoryStore_MissingDocument(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	assert.True(t, apperror.IsNotFound(store.Set(ctx, "itens", "x", item{})))
	assert.True(t, apperror.IsNotFound(store.Update(ctx, "itens", "x", map[string]interface{}{"nome": "a"})))
	assert.True(t, apperror.IsNotFound(store.Delete(ctx, "itens", "x")))
}

func TestMemoryStore_FindFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	for _, it := range []item{
		{Name: "c", Status: "NOVO", Qty: 2},
		{Name: "a", Status: "RECUSADO", Qty: 1},
		{Name: "b", Status: "NOVO", Qty: 9},
	} {
		_, err := store.Create(ctx, "itens", it)
		require.NoError(t, err)
	}

	docs, err := store.Find(ctx, docstore.Query{Collection: "itens", Field: "estado", Value: "NOVO", OrderBy: "nome"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, []string{"b", "c"}, names(t, docs))

	docs, err = store.Find(ctx, docstore.Query{Collection: "itens", OrderBy: docstore.FieldCreatedAt, Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, names(t, docs))

	docs, err = store.Find(ctx, docstore.Query{Collection: "itens", OrderBy: "quantidade", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names(t, docs))

	docs, err = store.Find(ctx, docstore.Query{Collection: "vazia"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

type namedStatus string

func TestMemoryStore_FindByNamedType(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	_, err := store.Create(ctx, "itens", item{Name: "a", Status: "NOVO"})
	require.NoError(t, err)

	docs, err := store.Find(ctx, docstore.Query{Collection: "itens", Field: "estado", Value: namedStatus("NOVO")})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMemoryStore_SubscribeDeliversSnapshots(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	snapshots := make(chan []string, 10)
	sub, err := store.Subscribe(ctx, docstore.Query{Collection: "itens", Field: "estado", Value: "NOVO"},
		func(docs []docstore.Document) { snapshots <- names(t, docs) },
		func(err error) { t.Errorf("erro inesperado: %v", err) })
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Empty(t, waitSnapshot(t, snapshots), "snapshot inicial")

	_, err = store.Create(ctx, "itens", item{Name: "a", Status: "NOVO"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		select {
		case s := <-snapshots:
			return len(s) == 1 && s[0] == "a"
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_NoCallbackAfterCancel(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	var calls atomic.Int64
	var mu sync.Mutex
	cancelled := false
	sub, err := store.Subscribe(ctx, docstore.Query{Collection: "itens"},
		func([]docstore.Document) {
			mu.Lock()
			defer mu.Unlock()
			if cancelled {
				t.Error("callback depois de Cancel")
			}
			calls.Add(1)
		}, nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	sub.Cancel()
	mu.Lock()
	cancelled = true
	mu.Unlock()

	for i := 0; i < 20; i++ {
		_, err := store.Create(ctx, "itens", item{Name: "x"})
		require.NoError(t, err)
	}
	time.Sleep(50 * time.Millisecond)
	sub.Cancel()
}

func TestMemoryStore_CancelledContextEndsSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := docstore.NewMemoryStore()

	var calls atomic.Int64
	_, err := store.Subscribe(ctx, docstore.Query{Collection: "itens"},
		func([]docstore.Document) { calls.Add(1) },
		func(err error) { t.Errorf("erro inesperado: %v", err) })
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	_, err = store.Create(context.Background(), "itens", item{Name: "x"})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

func names(t *testing.T, docs []docstore.Document) []string {
	t.Helper()
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		var it item
		require.NoError(t, d.Decode(&it))
		out = append(out, it.Name)
	}
	return out
}

func waitSnapshot(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("snapshot não entregue")
		return nil
	}
}
