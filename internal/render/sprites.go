//go:build ebiten

package render

import (
	"fmt"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"grove/internal/config"
	"grove/internal/sims/garden"
)

// Sprites holds the decoded sprite sheets. A nil *Sprites makes the renderer
// fall back to flat shapes.
type Sprites struct {
	Background *ebiten.Image
	Idle       *ebiten.Image
	Walk       *ebiten.Image
	Tree       *ebiten.Image

	FrameW, FrameH int
}

// LoadSprites decodes every configured image. It returns nil without error
// when no sprite is configured.
func LoadSprites(cfg config.Sprites) (*Sprites, error) {
	if !cfg.Configured() {
		return nil, nil
	}
	s := &Sprites{FrameW: cfg.FrameWidth, FrameH: cfg.FrameHeight}
	if s.FrameW <= 0 {
		s.FrameW = 32
	}
	if s.FrameH <= 0 {
		s.FrameH = 32
	}
	load := func(path string, dst **ebiten.Image) error {
		if path == "" {
			return nil
		}
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return fmt.Errorf("failed to load sprite %s: %w", path, err)
		}
		*dst = img
		return nil
	}
	for _, item := range []struct {
		path string
		dst  **ebiten.Image
	}{
		{cfg.Background, &s.Background},
		{cfg.PlayerIdle, &s.Idle},
		{cfg.PlayerWalk, &s.Walk},
		{cfg.Tree, &s.Tree},
	} {
		if err := load(item.path, item.dst); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Player returns the sheet for a movement state, or nil when none is loaded.
func (s *Sprites) Player(state garden.MoveState) *ebiten.Image {
	if s == nil {
		return nil
	}
	if state == garden.Walking {
		return s.Walk
	}
	return s.Idle
}
