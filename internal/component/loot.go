package component

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
)

// Loot — выпавший предмет. До примагничивания падает под гравитацией,
// после летит к игроку.
type Loot struct {
	ID types.EntityID
	Position
	Velocity
	Type       defs.LootType
	Value      int
	Age        float64
	Magnetized bool
	Lifetime   float64
}
