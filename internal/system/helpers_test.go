package system

import (
	"testing"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/utils"
)

// world собирает системы так же, как игра, но без ввода и рендера.
type world struct {
	state   *entity.State
	bus     *event.Bus
	prng    *utils.PRNGService
	effects *ElementEffectSystem
	loot    *LootSystem
	waves   *WaveSystem
	boss    *BossSystem
	skills  *BossSkillSystem
	combat  *CombatSystem
}

func newWorld(t *testing.T) *world {
	t.Helper()
	lib := defs.DefaultLibrary()
	bus := event.NewBus()
	state := entity.NewState(lib, bus)
	state.Start()
	prng := utils.NewPRNGService(7)

	w := &world{state: state, bus: bus, prng: prng}
	w.effects = NewElementEffectSystem(state, lib.Elements, bus)
	w.loot = NewLootSystem(state, bus, prng)
	w.waves = NewWaveSystem(state, bus, prng, w.loot, w.effects)
	w.boss = NewBossSystem(state, bus, prng, w.effects, w.waves, w.loot)
	w.skills = NewBossSkillSystem(state, bus, prng)
	w.combat = NewCombatSystem(state, bus, prng, w.effects, w.boss, w.loot)
	return w
}

// record собирает все события данного типа.
func record(bus *event.Bus, t event.EventType) *[]event.Event {
	var got []event.Event
	bus.On(t, func(e event.Event) { got = append(got, e) })
	return &got
}

// spawnBoss кладёт дракона из n звеньев в точку (x, y).
func (w *world) spawnBoss(element defs.ElementType, n int, x, y float64) *component.Dragon {
	d := BuildDragon(w.state, element, w.state.Wave, n, x, y)
	w.state.SetBoss(d)
	return d
}

func (w *world) simpleDragon(x, y, health float64) *component.SimpleDragon {
	d := &component.SimpleDragon{
		Size: 20, Health: health, MaxHealth: health, Speed: 50, BaseSpeed: 50,
		Element: defs.ElementNormal,
	}
	d.X, d.Y = x, y
	w.state.AddDragon(d)
	return d
}

// movePlayerAway уводит игрока в угол, чтобы не мешал контактом.
func (w *world) movePlayerAway() *component.Player {
	p := w.state.LivePlayer()
	p.X, p.Y = 20, 20
	return p
}
