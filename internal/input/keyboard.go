//go:build ebiten

package input

import "github.com/hajimehoshi/ebiten/v2"

// Keyboard polls ebiten key state. Arrow keys and WASD move; Q waters and E
// fertilizes.
type Keyboard struct {
	bindings map[Key][]ebiten.Key
}

// NewKeyboard returns the default binding set.
func NewKeyboard() *Keyboard {
	return &Keyboard{bindings: map[Key][]ebiten.Key{
		KeyUp:        {ebiten.KeyArrowUp, ebiten.KeyW},
		KeyDown:      {ebiten.KeyArrowDown, ebiten.KeyS},
		KeyLeft:      {ebiten.KeyArrowLeft, ebiten.KeyA},
		KeyRight:     {ebiten.KeyArrowRight, ebiten.KeyD},
		KeyWater:     {ebiten.KeyQ},
		KeyFertilize: {ebiten.KeyE},
	}}
}

// Update implements Producer.
func (kb *Keyboard) Update(sink Sink) {
	for key, physical := range kb.bindings {
		down := false
		for _, ek := range physical {
			if ebiten.IsKeyPressed(ek) {
				down = true
				break
			}
		}
		sink.Set(key, down)
	}
}
