//go:build unit

package previewstore_test

import (
	"testing"
	"time"

	"ops-console/internal/domain/upload"
	"ops-console/internal/infra/previewstore"
	"ops-console/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*previewstore.Store, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return previewstore.New(clk, 20*time.Minute), clk
}

func stageOne(store *previewstore.Store) *upload.Preview {
	rows := []upload.PreviewRow{{RowNumber: 2, Status: upload.StatusOK}}
	return store.Create(upload.TypeMenuStock, rows, upload.Summarize(rows), uuid.New())
}

func TestStoreCreateAndGet(t *testing.T) {
	store, clk := newStore(t)

	p := stageOne(store)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, clk.Now(), p.CreatedAt)
	assert.Equal(t, clk.Now().Add(20*time.Minute), p.ExpiresAt)
	assert.Nil(t, p.AppliedAt)

	got, ok := store.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)

	_, ok = store.Get(uuid.New())
	assert.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	t.Run("alive just before the deadline", func(t *testing.T) {
		store, clk := newStore(t)
		p := stageOne(store)

		clk.Add(20*time.Minute - time.Second)
		_, ok := store.Get(p.ID)
		assert.True(t, ok)
	})

	t.Run("gone at the deadline", func(t *testing.T) {
		store, clk := newStore(t)
		p := stageOne(store)

		clk.Add(20 * time.Minute)
		_, ok := store.Get(p.ID)
		assert.False(t, ok)
	})

	t.Run("expired record is physically removed on access", func(t *testing.T) {
		store, clk := newStore(t)
		p := stageOne(store)

		clk.Add(time.Hour)
		require.Equal(t, 1, store.Len())
		_, _ = store.Get(p.ID)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("expired record cannot be applied", func(t *testing.T) {
		store, clk := newStore(t)
		p := stageOne(store)

		clk.Add(time.Hour)
		_, ok := store.MarkApplied(p.ID)
		assert.False(t, ok)
	})
}

func TestStoreMarkApplied(t *testing.T) {
	store, clk := newStore(t)
	p := stageOne(store)

	clk.Add(5 * time.Minute)
	applied, ok := store.MarkApplied(p.ID)
	require.True(t, ok)
	require.NotNil(t, applied.AppliedAt)
	assert.Equal(t, clk.Now(), *applied.AppliedAt)

	// The record stays visible until the TTL runs out
	got, ok := store.Get(p.ID)
	require.True(t, ok)
	assert.NotNil(t, got.AppliedAt)

	_, ok = store.MarkApplied(uuid.New())
	assert.False(t, ok)
}

func TestStorePruneExpired(t *testing.T) {
	store, clk := newStore(t)

	old := stageOne(store)
	clk.Add(15 * time.Minute)
	fresh := stageOne(store)
	clk.Add(10 * time.Minute) // old is past its TTL, fresh is not

	store.PruneExpired()

	assert.Equal(t, 1, store.Len())
	_, ok := store.Get(old.ID)
	assert.False(t, ok)
	_, ok = store.Get(fresh.ID)
	assert.True(t, ok)
}

func TestStoreDelete(t *testing.T) {
	store, _ := newStore(t)
	p := stageOne(store)

	store.Delete(p.ID)
	_, ok := store.Get(p.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}
