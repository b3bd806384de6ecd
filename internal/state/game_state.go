// internal/state/game_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	game "dragon-hunter/internal/app"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/ui"
	"dragon-hunter/pkg/render"
)

// Убеждаемся, что GameState соответствует интерфейсу State
var _ State = (*GameState)(nil)

// GameState — состояние игры
type GameState struct {
	sm     *StateMachine
	game   *game.Game
	canvas *render.EbitenCanvas

	health *ui.PlayerHealthIndicator
	level  *ui.PlayerLevelIndicator
	wave   *ui.WaveIndicator
	score  *ui.ScoreIndicator
	boss   *ui.BossHealthIndicator
}

func NewGameState(sm *StateMachine, g *game.Game) *GameState {
	g.SetInput(NewEbitenInput())
	return &GameState{
		sm:     sm,
		game:   g,
		canvas: render.NewEbitenCanvas(),
		health: ui.NewPlayerHealthIndicator(10, 60),
		level:  ui.NewPlayerLevelIndicator(10, 110),
		wave:   ui.NewWaveIndicator(config.ScreenWidth/2, 24),
		score:  ui.NewScoreIndicator(10, 16),
		boss:   ui.NewBossHealthIndicator(config.ScreenWidth/2, 34),
	}
}

// Game отдаёт игровую логику для соседних состояний.
func (g *GameState) Game() *game.Game { return g.game }

// Enter запускает или продолжает партию: после загрузки она может
// оказаться на паузе или ещё в меню.
func (g *GameState) Enter() {
	switch {
	case g.game.IsPaused():
		g.game.Resume()
	case !g.game.State.IsStarted():
		g.game.Start()
	}
}

func (g *GameState) Update(deltaTime float64) {
	if g.game.IsOver() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.game.Restart()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.sm.SetState(NewMenuState(g.sm, g.game))
		}
		return
	}

	g.game.Frame(deltaTime)

	if g.game.IsPaused() {
		g.sm.SetState(NewPauseState(g.sm, g))
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	c := g.canvas
	c.Begin(screen)
	g.game.RenderSystem.Draw(c)

	st := g.game.State
	p := st.Player()
	shield := 0.0
	if p.Shield.Active() {
		shield = p.Shield.Absorb
	}

	var bossElement *defs.Element
	if boss := st.LiveBoss(); boss.Alive() {
		el := g.game.Lib.Elements.GetElement(boss.Element)
		bossElement = &el
		cur, max := boss.TotalHealth()
		g.boss.Draw(c, cur, max, len(boss.Segments), el.Colors.Primary)
	}

	g.score.Draw(c, st.Score, st.HighScore, st.Combo, config.TextLightColor)
	g.health.Draw(c, p.Health, p.MaxHealth, p.Mana, p.MaxMana, shield, st.Lives)
	g.level.Draw(c, p.Level, p.Experience, p.XPToNextLevel)
	g.wave.Draw(c, st.Wave, bossElement)

	stateColor := color.Color(config.RunningColor)
	if st.IsPaused() {
		stateColor = config.PausedColor
	}
	g.game.Indicator.Draw(c, stateColor)
	g.game.PauseButton.Draw(c)
	g.game.Hotbar.Draw(c, g.game.AbilitySystem.Status(), g.game.Affordable)
	g.game.ShopPanel.Draw(c, g.game.UpgradeSystem, p.Tokens)

	if st.IsOver() {
		drawCenteredBanner(c, "GAME OVER", "R - restart   Esc - menu")
	}
}

func (g *GameState) Exit() {
	// Ничего не делаем при выходе
}

// drawCenteredBanner затемняет экран и пишет две строки по центру.
func drawCenteredBanner(c *render.EbitenCanvas, title, hint string) {
	c.FillRect(0, 0, config.ScreenWidth, config.ScreenHeight, config.PausedOverlay)
	cx, cy := float64(config.ScreenWidth)/2, float64(config.ScreenHeight)/2
	c.Text(title, cx-ui.TextWidth(title)/2, cy-10, color.White)
	c.Text(hint, cx-ui.TextWidth(hint)/2, cy+14, render.WithAlpha(config.TextLightColor, 200))
}
