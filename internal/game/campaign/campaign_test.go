package campaign

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSetUnset(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.CheckStatus("boss_dead"))

	m.SetStatus("boss_dead")
	m.SetStatus("boss_dead")
	m.SetStatus("")
	assert.True(t, m.CheckStatus("boss_dead"))
	assert.False(t, m.CheckStatus(""))
	assert.Equal(t, []string{"boss_dead"}, m.Statuses())

	m.UnsetStatus("boss_dead")
	assert.False(t, m.CheckStatus("boss_dead"))
	assert.Empty(t, m.Statuses())
}

func TestManagerNoStore(t *testing.T) {
	m := NewManager(nil)
	assert.ErrorIs(t, m.Load(context.Background()), ErrNoStore)
	assert.ErrorIs(t, m.Save(context.Background()), ErrNoStore)
}

func TestManagerLoadSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("gate_open", "")

	m := NewManager(store)
	require.NoError(t, m.Load(ctx))
	assert.True(t, m.CheckStatus("gate_open"))

	m.SetStatus("zeta")
	m.SetStatus("alpha")
	require.NoError(t, m.Save(ctx))

	got, err := store.LoadStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gate_open", "zeta"}, got)
}

type failingStore struct{ err error }

func (s failingStore) LoadStatuses(context.Context) ([]string, error) { return nil, s.err }
func (s failingStore) SaveStatuses(context.Context, []string) error  { return s.err }

func TestManagerStoreErrorsWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	m := NewManager(failingStore{err: boom})
	assert.ErrorIs(t, m.Load(context.Background()), boom)
	assert.ErrorIs(t, m.Save(context.Background()), boom)
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager(nil)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('a' + i))
			for range 100 {
				m.SetStatus(name)
				_ = m.CheckStatus(name)
				_ = m.Statuses()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, m.Statuses(), 8)
}
