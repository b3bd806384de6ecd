// internal/storage/save.go
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/logging"
)

// ErrNoSave — под ключом сохранения ничего нет.
var ErrNoSave = errors.New("no saved game")

// SaveManager пишет снимок состояния в KVStore как JSON.
type SaveManager struct {
	store KVStore
	key   string
	log   *logging.Logger
}

func NewSaveManager(store KVStore) *SaveManager {
	return &SaveManager{store: store, key: config.SaveKey, log: logging.For("save")}
}

// Save сериализует снимок state.
func (m *SaveManager) Save(state *entity.State) error {
	if m.store == nil || state == nil {
		return errors.New("save manager is not configured")
	}
	data, err := json.Marshal(state.GetSnapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := m.store.Set(m.key, string(data)); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	m.log.Debugf("saved %d bytes under %s", len(data), m.key)
	return nil
}

// Load восстанавливает state из сохранения. Если сохранения нет или оно
// повреждено, state сбрасывается к значениям по умолчанию и возвращается ошибка.
func (m *SaveManager) Load(state *entity.State) error {
	if m.store == nil || state == nil {
		return errors.New("save manager is not configured")
	}
	raw, ok, err := m.store.Get(m.key)
	if err != nil {
		m.log.Warnf("failed to read save, using defaults: %v", err)
		state.Reset()
		return fmt.Errorf("failed to read save: %w", err)
	}
	if !ok {
		state.Reset()
		return ErrNoSave
	}

	var snap entity.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		m.log.Warnf("corrupt save, using defaults: %v", err)
		state.Reset()
		return fmt.Errorf("failed to unmarshal save: %w", err)
	}
	state.RestoreFromSnapshot(snap)
	m.log.Infof("loaded save: wave %d, score %d", snap.Wave, snap.Score)
	return nil
}
