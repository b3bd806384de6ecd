package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
)

func TestExporterCountsEvents(t *testing.T) {
	bus := event.NewBus()
	e := NewExporter(bus)

	bus.Emit(event.KillRecorded, event.KillData{Element: defs.ElementFire, Kills: 1, Combo: 1})
	bus.Emit(event.KillRecorded, event.KillData{Element: defs.ElementFire, Kills: 2, Combo: 2})
	bus.Emit(event.WaveStarted, event.WaveData{Wave: 3})
	bus.Emit(event.DamageDealt, event.DamageData{Amount: 12.5})
	bus.Emit(event.PlayerDamaged, event.DamageData{Amount: 4})
	bus.Emit(event.CurrencyCollected, event.LootData{Type: defs.LootToken, Value: 5})
	bus.Emit(event.LootCollected, event.LootData{Type: defs.LootMana, Value: 20})
	bus.Emit(event.BossDefeated, event.BossDefeatedData{Element: defs.ElementDark})
	bus.Emit(event.GameOver, 4200)
	e.ObserveFrame(1.0 / 60)

	assert.Equal(t, 2.0, testutil.ToFloat64(e.kills.WithLabelValues("fire")))
	assert.Equal(t, 3.0, testutil.ToFloat64(e.wave))
	assert.Equal(t, 12.5, testutil.ToFloat64(e.damageDealt))
	assert.Equal(t, 4.0, testutil.ToFloat64(e.damageTaken))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.lootCollected.WithLabelValues(string(defs.LootToken))))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.lootCollected.WithLabelValues(string(defs.LootMana))))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.bosses.WithLabelValues("dark")))
	assert.Equal(t, 4200.0, testutil.ToFloat64(e.lastScore))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.frames))
}

func TestExporterCloseUnsubscribes(t *testing.T) {
	bus := event.NewBus()
	e := NewExporter(bus)
	e.Close()

	bus.Emit(event.DamageDealt, event.DamageData{Amount: 10})
	assert.Zero(t, testutil.ToFloat64(e.damageDealt))
	assert.Zero(t, bus.HandlerCount(event.DamageDealt))
}

func TestHandlerServesRegistry(t *testing.T) {
	e := NewExporter(nil)
	e.ObserveFrame(0.01)

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "dragon_hunter_frames_total 1"))
}

func TestTwoExportersDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewExporter(event.NewBus())
		NewExporter(event.NewBus())
	})
}
