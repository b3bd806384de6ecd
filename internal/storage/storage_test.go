package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
)

// brokenStore всегда отвечает ошибкой.
type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (brokenStore) Set(string, string) error         { return errors.New("disk on fire") }

func newState() *entity.State {
	s := entity.NewState(defs.DefaultLibrary(), event.NewBus())
	s.Start()
	return s
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	_, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("k", "v"))
	v, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("slot", `{"wave":3}`))
	v, ok, err := s.Get("slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"wave":3}`, v)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Set("slot", "x"), ErrClosed)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Close())

	s, err = OpenBadgerStore(dir)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := OpenInMemoryBadger()
	require.NoError(t, err)
	defer store.Close()
	saves := NewSaveManager(store)

	src := newState()
	src.AddScore(1234)
	src.SetWave(4)
	src.AddResource(defs.ResourceTokens, 55)
	src.UnlockAchievement("first_blood", map[string]interface{}{"element": "fire"})
	require.NoError(t, saves.Save(src))

	raw, ok, err := store.Get(config.SaveKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"score":1234`)

	dst := newState()
	require.NoError(t, saves.Load(dst))
	assert.Equal(t, 1234, dst.Score)
	assert.Equal(t, 4, dst.Wave)
	assert.Equal(t, 55, dst.LivePlayer().Tokens)
	assert.True(t, dst.HasAchievement("first_blood"))
	assert.Equal(t, src.SessionID, dst.SessionID)
	assert.Nil(t, dst.Boss())
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		s := newState()
		s.AddScore(10)
		err := NewSaveManager(NewMemoryStore()).Load(s)
		assert.ErrorIs(t, err, ErrNoSave)
		assert.Zero(t, s.Score)
		assert.False(t, s.IsStarted())
	})
	t.Run("corrupt", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(config.SaveKey, "{not json"))
		s := newState()
		s.SetWave(7)
		assert.Error(t, NewSaveManager(store).Load(s))
		assert.Equal(t, 1, s.Wave)
	})
	t.Run("store error", func(t *testing.T) {
		s := newState()
		err := NewSaveManager(brokenStore{}).Load(s)
		assert.Error(t, err)
		assert.Equal(t, defs.DefaultBalance().Player.MaxHealth, s.LivePlayer().Health)
	})
}

func TestSaveWrapsStoreErrors(t *testing.T) {
	err := NewSaveManager(brokenStore{}).Save(newState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
