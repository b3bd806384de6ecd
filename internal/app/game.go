// internal/app/game.go
package app

import (
	"errors"
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/interfaces"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/metrics"
	"dragon-hunter/internal/storage"
	"dragon-hunter/internal/system"
	"dragon-hunter/internal/types"
	"dragon-hunter/internal/ui"
	"dragon-hunter/internal/utils"
)

// Game holds the main game state and logic.
type Game struct {
	Lib   *defs.Library
	State *entity.State
	Bus   *event.Bus
	Rng   *utils.PRNGService

	EffectSystem        *system.ElementEffectSystem
	ModifierSystem      *system.ModifierSystem
	AbilitySystem       *system.AbilitySystem
	AbilityEffectSystem *system.AbilityEffectSystem
	LootSystem          *system.LootSystem
	WaveSystem          *system.WaveSystem
	BossSystem          *system.BossSystem
	BossSkillSystem     *system.BossSkillSystem
	CombatSystem        *system.CombatSystem
	ProjectileSystem    *system.ProjectileSystem
	MovementSystem      *system.MovementSystem
	PlayerSystem        *system.PlayerSystem
	UpgradeSystem       *system.UpgradeSystem
	VisualEffectSystem  *system.VisualEffectSystem
	StateSystem         *system.StateSystem
	RenderSystem        *system.RenderSystem

	Hotbar      *ui.Hotbar
	PauseButton *ui.PauseButton
	Indicator   *ui.StateIndicator
	ShopPanel   *ui.ShopPanel

	Saves   *storage.SaveManager
	Metrics *metrics.Exporter

	input       interfaces.InputSource
	prevKeys    map[interfaces.Key]bool
	prevPointer bool
	log         *logging.Logger
}

// NewGame собирает все системы вокруг одного State и одной шины.
// store может быть nil: тогда сохранение живёт только в памяти процесса.
func NewGame(lib *defs.Library, seed int64, store storage.KVStore) *Game {
	if lib == nil {
		panic("library cannot be nil")
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}

	bus := event.NewBus()
	state := entity.NewState(lib, bus)
	rng := utils.NewPRNGService(seed)

	g := &Game{
		Lib:      lib,
		State:    state,
		Bus:      bus,
		Rng:      rng,
		Saves:    storage.NewSaveManager(store),
		prevKeys: make(map[interfaces.Key]bool),
		log:      logging.For("game"),
	}

	g.EffectSystem = system.NewElementEffectSystem(state, lib.Elements, bus)
	g.EffectSystem.SetTargetSource(g.chainTargets)
	g.ModifierSystem = system.NewModifierSystem(state)
	g.AbilitySystem = system.NewAbilitySystem(lib, state, bus)
	g.AbilityEffectSystem = system.NewAbilityEffectSystem(state, bus, g.EffectSystem, g.ModifierSystem, g.AbilitySystem)
	g.LootSystem = system.NewLootSystem(state, bus, rng)
	g.WaveSystem = system.NewWaveSystem(state, bus, rng, g.LootSystem, g.EffectSystem)
	g.BossSystem = system.NewBossSystem(state, bus, rng, g.EffectSystem, g.WaveSystem, g.LootSystem)
	g.BossSkillSystem = system.NewBossSkillSystem(state, bus, rng)
	g.CombatSystem = system.NewCombatSystem(state, bus, rng, g.EffectSystem, g.BossSystem, g.LootSystem)
	g.ProjectileSystem = system.NewProjectileSystem(state, bus)
	g.MovementSystem = system.NewMovementSystem(state)
	g.PlayerSystem = system.NewPlayerSystem(state, bus)
	g.UpgradeSystem = system.NewUpgradeSystem(state, bus)
	g.VisualEffectSystem = system.NewVisualEffectSystem(state, bus, rng)
	g.StateSystem = system.NewStateSystem(state, g, bus, g.EffectSystem)
	g.RenderSystem = system.NewRenderSystem(state, g.BossSkillSystem)

	g.initUI()

	listener := &GameEventListener{game: g}
	bus.Subscribe(event.BossDefeated, listener)
	bus.Subscribe(event.GameStateChanged, listener)

	return g
}

func (g *Game) initUI() {
	g.Hotbar = ui.NewHotbar(g.AbilitySystem.Definitions())
	pauseButtonX := float64(config.ScreenWidth - config.IndicatorOffsetX - 40)
	g.PauseButton = ui.NewPauseButton(pauseButtonX, config.IndicatorOffsetX, 9, config.TextLightColor, config.RunningColor)
	g.Indicator = ui.NewStateIndicator(config.ScreenWidth-config.IndicatorOffsetX, config.IndicatorOffsetX, config.IndicatorRadius)
	g.ShopPanel = ui.NewShopPanel()
}

// SetInput задаёт источник ввода, который опрашивается в каждом кадре.
func (g *Game) SetInput(in interfaces.InputSource) { g.input = in }

// AttachMetrics подключает экспортёр метрик к шине игры.
func (g *Game) AttachMetrics() *metrics.Exporter {
	if g.Metrics == nil {
		g.Metrics = metrics.NewExporter(g.Bus)
	}
	return g.Metrics
}

// chainTargets — куда может перескочить цепная молния. От игрока цепь
// не прыгает: других игроков нет.
func (g *Game) chainTargets(origin component.Target) []component.Target {
	if p := g.State.LivePlayer(); p != nil && origin != nil && origin.TargetID() == p.ID {
		return nil
	}
	var out []component.Target
	if boss := g.State.LiveBoss(); boss.Alive() {
		for _, seg := range boss.Segments {
			if seg.Alive() {
				out = append(out, seg)
			}
		}
	}
	for _, d := range g.State.LiveDragons() {
		if d.Alive() {
			out = append(out, d)
		}
	}
	return out
}

// AddSimpleDragon добавляет внешнего врага без сегментов.
func (g *Game) AddSimpleDragon(x, y, health float64, element defs.ElementType) types.EntityID {
	return g.State.AddDragon(&component.SimpleDragon{
		Position:  component.Position{X: x, Y: y},
		Size:      18,
		Health:    health,
		MaxHealth: health,
		Speed:     60,
		BaseSpeed: 60,
		Damage:    8,
		Element:   element,
	})
}

// Frame принимает время с прошлого кадра, ограничивает шаг и обновляет игру.
func (g *Game) Frame(wallDelta float64) {
	dt := math.Max(0, math.Min(wallDelta, config.MaxDeltaTime))
	g.Update(dt)
}

// Update выполняет один шаг симуляции в фиксированном порядке систем.
func (g *Game) Update(deltaTime float64) {
	g.Bus.Flush()
	g.handleInterfaceInput(deltaTime)

	if !g.State.Running() {
		return
	}
	g.State.GameTime += deltaTime

	g.handleAbilityInput()
	g.MovementSystem.MovePlayer(deltaTime, g.heldKeys())
	g.MovementSystem.Update(deltaTime)

	g.ProjectileSystem.AutoFire(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.WaveSystem.Update(deltaTime)
	g.BossSystem.Update(deltaTime)
	g.BossSkillSystem.Update(deltaTime)
	g.CombatSystem.Update(deltaTime)
	g.LootSystem.Update(deltaTime, g.State.LivePlayer())

	g.EffectSystem.Update(deltaTime)
	g.BossSystem.ReapDeadSegments() // горение и яд тоже убивают звенья
	g.ModifierSystem.Update(deltaTime)
	g.AbilitySystem.Update(deltaTime)

	g.VisualEffectSystem.Update(deltaTime)
	g.StateSystem.Update(deltaTime)

	if g.Metrics != nil {
		g.Metrics.ObserveFrame(deltaTime)
	}
	g.endInputFrame()
}

func (g *Game) heldKeys() map[interfaces.Key]bool {
	if g.input == nil {
		return nil
	}
	return g.input.HeldKeys()
}

func (g *Game) justPressed(k interfaces.Key) bool {
	keys := g.heldKeys()
	return keys[k] && !g.prevKeys[k]
}

// pointerClicked — кнопка мыши нажата в этом кадре и не была нажата в прошлом.
func (g *Game) pointerClicked() (float64, float64, bool) {
	if g.input == nil || !g.input.PointerDown() || g.prevPointer {
		return 0, 0, false
	}
	x, y := g.input.PointerPosition()
	return x, y, true
}

// handleInterfaceInput обрабатывает паузу и клики по интерфейсу. Работает
// и на паузе, поэтому идёт до проверки Running.
func (g *Game) handleInterfaceInput(deltaTime float64) {
	g.PauseButton.Update(deltaTime)
	g.Indicator.Update(deltaTime)
	g.ShopPanel.Update(deltaTime)

	if g.justPressed(interfaces.KeyPause) {
		g.HandlePauseClick()
	}

	if x, y, ok := g.pointerClicked(); ok {
		switch {
		case g.PauseButton.IsClicked(x, y):
			g.HandlePauseClick()
		case g.Indicator.IsClicked(x, y):
			g.Indicator.HandleClick()
			g.ShopPanel.Toggle()
		case g.ShopPanel.Contains(x, y):
			if kind, hit := g.ShopPanel.HitTest(x, y); hit {
				if res := g.UpgradeSystem.Purchase(kind); !res.Success {
					g.log.Debugf("upgrade %s rejected: %s", kind, res.Reason)
				}
			}
		default:
			if id, hit := g.Hotbar.HitTest(x, y); hit && g.State.Running() {
				g.AbilitySystem.Activate(id, event.CastContext{Source: "hotbar", X: x, Y: y, Time: g.State.GameTime})
			}
		}
	}

	if !g.State.Running() {
		g.endInputFrame()
	}
}

func (g *Game) handleAbilityInput() {
	for i, key := range interfaces.AbilityKeys {
		if !g.justPressed(key) {
			continue
		}
		id, ok := g.Hotbar.AbilityAt(i)
		if !ok {
			continue
		}
		p := g.State.LivePlayer()
		ctx := event.CastContext{Source: "key", Time: g.State.GameTime}
		if p != nil {
			ctx.X, ctx.Y = p.X, p.Y
		}
		g.AbilitySystem.Activate(id, ctx)
	}
}

func (g *Game) endInputFrame() {
	clear(g.prevKeys)
	for k, v := range g.heldKeys() {
		g.prevKeys[k] = v
	}
	g.prevPointer = g.input != nil && g.input.PointerDown()
}

// HandlePauseClick переключает паузу из кнопки или клавиши.
func (g *Game) HandlePauseClick() {
	if g.State.IsPaused() {
		g.Resume()
	} else {
		g.Pause()
	}
}

// Affordable сообщает, хватает ли ресурсов на умение прямо сейчас.
func (g *Game) Affordable(id string) bool {
	res := g.AbilitySystem.CanActivate(id)
	return res.Success || res.Reason == system.ReasonCooldown
}

// ---- interfaces.GameContext ----

func (g *Game) Start() {
	if g.State.Start() {
		g.log.Infof("game started, session %s", g.State.SessionID)
	}
}

func (g *Game) Pause() {
	if g.State.Pause() {
		g.PauseButton.SetPaused(true)
	}
}

func (g *Game) Resume() {
	if g.State.Resume() {
		g.PauseButton.SetPaused(false)
	}
}

// Restart начинает партию заново. Рекорд и достижения сохраняются.
func (g *Game) Restart() {
	g.EffectSystem.Clear()
	g.AbilitySystem.Reset()
	g.ShopPanel.Hide()
	g.State.Restart()
	g.PauseButton.SetPaused(false)
}

// Save пишет снимок в хранилище.
func (g *Game) Save() error {
	if err := g.Saves.Save(g.State); err != nil {
		return err
	}
	g.Bus.Emit(event.GameSaved, g.State.SessionID)
	return nil
}

// Load восстанавливает снимок. Если сохранения нет, партия начинается
// с чистого состояния и ErrNoSave не считается ошибкой.
// GameLoaded отправляет сам State при восстановлении снимка.
func (g *Game) Load() error {
	g.EffectSystem.Clear()
	g.AbilitySystem.Reset()
	err := g.Saves.Load(g.State)
	if errors.Is(err, storage.ErrNoSave) {
		return nil
	}
	return err
}

func (g *Game) IsOver() bool   { return g.State.IsOver() }
func (g *Game) IsPaused() bool { return g.State.IsPaused() }

var _ interfaces.GameContext = (*Game)(nil)

// GameEventListener обрабатывает события, важные для основного игрового цикла.
type GameEventListener struct {
	game *Game
}

// OnEvent обрабатывает события, на которые подписан слушатель.
func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.BossDefeated:
		// автосохранение после каждого побеждённого босса
		if err := l.game.Save(); err != nil {
			l.game.log.Warnf("autosave failed: %v", err)
		}
	case event.GameStateChanged:
		if data, ok := e.Data.(event.GameStateData); ok && data.Flag == entity.FlagPaused {
			l.game.PauseButton.SetPaused(data.Value)
		}
	}
}
