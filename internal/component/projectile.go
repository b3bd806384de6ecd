// internal/component/projectile.go
package component

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
)

// Bullet представляет летящий снаряд игрока.
type Bullet struct {
	ID types.EntityID
	Position
	Velocity
	Damage      float64
	Element     defs.ElementType
	Penetration int     // сколько ещё целей пробьёт после попадания
	Radius      float64 //
	Life        float64 // оставшееся время жизни
	Hit         map[types.EntityID]bool
}

// Clone returns a copy with its own hit set.
func (b *Bullet) Clone() Bullet {
	c := *b
	if b.Hit != nil {
		c.Hit = make(map[types.EntityID]bool, len(b.Hit))
		for k, v := range b.Hit {
			c.Hit[k] = v
		}
	}
	return c
}

// MarkHit remembers a target so a penetrating bullet hits it only once.
func (b *Bullet) MarkHit(id types.EntityID) {
	if b.Hit == nil {
		b.Hit = make(map[types.EntityID]bool)
	}
	b.Hit[id] = true
}
