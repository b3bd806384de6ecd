// internal/component/visual.go
package component

import "image/color"

// DamageFlash указывает, что сущность должна быть отрисована цветом урона.
type DamageFlash struct {
	Timer    float64 // Сколько времени эффект уже активен
	Duration float64 // Общая продолжительность эффекта
}

// Active — вспышка ещё видна.
func (f DamageFlash) Active() bool { return f.Duration > 0 && f.Timer < f.Duration }

// Particle — декоративная частица.
type Particle struct {
	Position
	Velocity
	Life    float64
	MaxLife float64
	Size    float64
	Color   color.RGBA
}

// DamageNumber — всплывающая цифра урона (или надпись).
type DamageNumber struct {
	Position
	Text  string
	Life  float64
	Color color.RGBA
}
