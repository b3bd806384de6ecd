package entity

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"dragon-hunter/internal/event"
)

// Состояния жизненного цикла партии.
const (
	PhaseMenu    = "menu"
	PhasePaused  = "paused"
	PhaseRunning = "running"
	PhaseOver    = "over"
)

// Флаги для SetGameState.
const (
	FlagStarted = "started"
	FlagPaused  = "paused"
	FlagOver    = "over"
)

// Lifecycle wraps the FSM that mirrors the started/paused/over flags.
type Lifecycle struct {
	fsm   *fsm.FSM
	state *State
}

func newLifecycle(s *State) *Lifecycle {
	l := &Lifecycle{state: s}
	l.fsm = fsm.NewFSM(
		PhaseMenu,
		fsm.Events{
			{Name: "start", Src: []string{PhaseMenu, PhaseOver}, Dst: PhaseRunning},
			{Name: "pause", Src: []string{PhaseRunning}, Dst: PhasePaused},
			{Name: "resume", Src: []string{PhasePaused}, Dst: PhaseRunning},
			{Name: "end", Src: []string{PhaseRunning, PhasePaused}, Dst: PhaseOver},
		},
		fsm.Callbacks{
			"enter_" + PhaseRunning: func(_ context.Context, e *fsm.Event) {
				if e.Src == PhasePaused {
					s.setFlag(FlagPaused, false)
					return
				}
				s.setFlag(FlagStarted, true)
				s.setFlag(FlagOver, false)
				s.setFlag(FlagPaused, false)
				s.emit(event.GameStarted, s.Wave)
			},
			"enter_" + PhasePaused: func(_ context.Context, _ *fsm.Event) {
				s.setFlag(FlagPaused, true)
			},
			"enter_" + PhaseOver: func(_ context.Context, _ *fsm.Event) {
				s.setFlag(FlagPaused, false)
				s.setFlag(FlagOver, true)
				s.emit(event.GameOver, s.Score)
			},
		},
	)
	return l
}

// Current returns the FSM state name.
func (l *Lifecycle) Current() string { return l.fsm.Current() }

// Can reports whether the named transition is allowed now.
func (l *Lifecycle) Can(name string) bool { return l.fsm.Can(name) }

func (l *Lifecycle) fire(name string) bool {
	err := l.fsm.Event(context.Background(), name)
	if err == nil {
		return true
	}
	var noTransition fsm.NoTransitionError
	if !errors.As(err, &noTransition) {
		l.state.log.Debugf("lifecycle %s from %s rejected: %v", name, l.fsm.Current(), err)
	}
	return false
}

// sync moves the FSM to the phase implied by the flags without callbacks.
func (l *Lifecycle) sync() {
	s := l.state
	phase := PhaseMenu
	switch {
	case s.over:
		phase = PhaseOver
	case s.started && s.paused:
		phase = PhasePaused
	case s.started:
		phase = PhaseRunning
	}
	l.fsm.SetState(phase)
}

func (s *State) setFlag(flag string, value bool) {
	var cur *bool
	switch flag {
	case FlagStarted:
		cur = &s.started
	case FlagPaused:
		cur = &s.paused
	case FlagOver:
		cur = &s.over
	default:
		s.log.Warnf("unknown game state flag %q", flag)
		return
	}
	if *cur == value {
		return
	}
	*cur = value
	s.emit(event.GameStateChanged, event.GameStateData{Flag: flag, Value: value})
}

// SetGameState toggles one of started/paused/over directly and emits
// GameStateChanged. The lifecycle phase follows the flags.
func (s *State) SetGameState(flag string, value bool) {
	s.setFlag(flag, value)
	s.lifecycle.sync()
}

// Lifecycle exposes the phase machine.
func (s *State) Lifecycle() *Lifecycle { return s.lifecycle }

func (s *State) IsStarted() bool { return s.started }
func (s *State) IsPaused() bool  { return s.paused }
func (s *State) IsOver() bool    { return s.over }

// Running — симуляция должна шагать.
func (s *State) Running() bool { return s.started && !s.paused && !s.over }

// Start begins a game from the menu or after game over.
func (s *State) Start() bool { return s.lifecycle.fire("start") }

// Pause only works while started and not over.
func (s *State) Pause() bool { return s.lifecycle.fire("pause") }

// Resume returns from pause.
func (s *State) Resume() bool { return s.lifecycle.fire("resume") }

// EndGame switches to the terminal state.
func (s *State) EndGame() bool { return s.lifecycle.fire("end") }

// Restart resets all scalars and collections, then starts again. High score
// and achievements survive.
func (s *State) Restart() {
	s.resetScalars()
	s.started, s.paused, s.over = false, false, false
	s.lifecycle.sync()
	s.emit(event.GameRestarted, s.SessionID)
	s.Start()
}

// Reset returns to a fresh session in the menu phase. High score and
// achievements are kept.
func (s *State) Reset() {
	s.resetScalars()
	s.started, s.paused, s.over = false, false, false
	s.lifecycle.sync()
}

// HandlePlayerDeath resolves a player at or below zero health: with lives
// left a life is spent and health refilled, otherwise the game ends.
// Returns true when the game is over.
func (s *State) HandlePlayerDeath() bool {
	p := s.player
	if p == nil || p.Health > 0 {
		return s.over
	}
	if s.Lives > 0 {
		s.Lives--
		p.Health = p.MaxHealth
		p.InvulnerableTimer = s.lib.Balance.Player.HitInvulnerable * 3
		s.emit(event.LifeLost, event.LifeLostData{LivesLeft: s.Lives})
		return false
	}
	p.Health = 0
	s.EndGame()
	return true
}
