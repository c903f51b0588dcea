package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/opd-ai/go-fireworks/pkg/engine"
)

// Game adapts a show to ebiten.Game. Update ticks the show and Draw replays
// the frame it produced.
type Game struct {
	show    *engine.Show
	surface *Surface
}

// NewGame creates a game for show.
func NewGame(show *engine.Show) *Game {
	return &Game{
		show:    show,
		surface: NewSurface(),
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.step()
	return nil
}

func (g *Game) step() {
	g.show.Tick()
	g.show.Draw(g.surface)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Render(screen)
}

// Layout implements ebiten.Game. The logical screen always matches the
// show's bounds and ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.show.Bounds()
	return int(b.Width), int(b.Height)
}

// Run opens a window and blocks until it is closed.
func Run(show *engine.Show, title string, game *Game) error {
	b := show.Bounds()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(b.Width), int(b.Height))
	if fps := show.Config.Timing.FrameRate; fps > 0 {
		ebiten.SetTPS(fps)
	}
	return ebiten.RunGame(game)
}
