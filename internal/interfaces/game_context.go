// internal/interfaces/game_context.go
package interfaces

// GameContext — то, что экранные состояния (меню, пауза) могут делать с игрой.
type GameContext interface {
	Start()
	Pause()
	Resume()
	Restart()
	Save() error
	Load() error
	IsOver() bool
	IsPaused() bool
}
