// internal/ui/hotbar.go
package ui

import (
	"image/color"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/interfaces"
)

// Slot — ячейка панели умений и её область клика.
type Slot struct {
	AbilityID string
	Name      string
	Hotkey    string
	Rect      Rect
}

// Hotbar — нижняя панель умений. Ячейки раскладываются по центру один раз.
type Hotbar struct {
	slots []Slot
}

// NewHotbar раскладывает умения в порядке их объявления.
func NewHotbar(abilities []defs.AbilityDefinition) *Hotbar {
	n := len(abilities)
	size := float64(config.HotbarSlotSize)
	gap := float64(config.HotbarSlotGap)
	total := float64(n)*size + float64(max(n-1, 0))*gap
	x := (config.ScreenWidth - total) / 2
	y := float64(config.ScreenHeight - config.HotbarMarginBot - config.HotbarSlotSize)

	h := &Hotbar{slots: make([]Slot, 0, n)}
	for i, a := range abilities {
		h.slots = append(h.slots, Slot{
			AbilityID: a.ID,
			Name:      a.Name,
			Hotkey:    a.Hotkey,
			Rect:      Rect{X: x + float64(i)*(size+gap), Y: y, W: size, H: size},
		})
	}
	return h
}

// Slots returns a copy of the slot layout.
func (h *Hotbar) Slots() []Slot {
	out := make([]Slot, len(h.slots))
	copy(out, h.slots)
	return out
}

// AbilityAt returns the ability bound to slot i.
func (h *Hotbar) AbilityAt(i int) (string, bool) {
	if i < 0 || i >= len(h.slots) {
		return "", false
	}
	return h.slots[i].AbilityID, true
}

// HitTest возвращает умение под точкой (x, y).
func (h *Hotbar) HitTest(x, y float64) (string, bool) {
	for _, s := range h.slots {
		if s.Rect.Contains(x, y) {
			return s.AbilityID, true
		}
	}
	return "", false
}

// Draw рисует ячейки с затемнением по оставшемуся кулдауну.
// affordable сообщает, хватает ли ресурсов на умение.
func (h *Hotbar) Draw(c interfaces.Canvas, status []event.AbilityStatusEntry, affordable func(id string) bool) {
	c.FillRect(0, config.ArenaHeight, config.ScreenWidth, config.HotbarHeight, config.HotbarBackColor)

	byID := make(map[string]event.AbilityStatusEntry, len(status))
	for _, s := range status {
		byID[s.AbilityID] = s
	}

	for _, s := range h.slots {
		r := s.Rect
		st := byID[s.AbilityID]
		c.FillRect(r.X, r.Y, r.W, r.H, config.HotbarReadyColor)

		if st.Cooldown > 0 && st.Remaining > 0 {
			frac := st.Remaining / st.Cooldown
			if frac > 1 {
				frac = 1
			}
			c.FillRect(r.X, r.Y, r.W, r.H*frac, config.HotbarCoolColor)
		}
		border := color.Color(config.TextLightColor)
		if affordable != nil && !affordable(s.AbilityID) {
			border = config.PausedColor
		}
		strokeRect(c, r, 2, border)

		c.Text(s.Hotkey, r.X+4, r.Y+14, config.TextLightColor)
		label := s.Name
		if len(label) > 8 {
			label = label[:8]
		}
		c.Text(label, r.X+r.W/2-TextWidth(label)/2, r.Y+r.H-8, config.TextLightColor)
	}
}
