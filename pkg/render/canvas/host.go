package canvas

import (
	"context"

	"github.com/tfriedel6/canvas/sdlcanvas"

	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// Run opens an SDL window the size of the show and renders a frame per
// vertical refresh until the window is closed or Escape is pressed.
func Run(ctx context.Context, show *engine.Show, title string, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	b := show.Bounds()
	wnd, cv, err := sdlcanvas.CreateWindow(int(b.Width), int(b.Height), title)
	if err != nil {
		return logging.WrapError(err, "create %s window", "sdl")
	}
	defer wnd.Destroy()

	surface := NewSurface(cv)
	wnd.KeyDown = func(scancode int, rn rune, name string) {
		if quitKey(name, rn) {
			logger.Info(ctx, "quit requested")
			wnd.Close()
		}
	}
	wnd.SizeChange = func(w, h int) {
		show.SetBounds(float64(w), float64(h))
	}

	wnd.MainLoop(func() {
		if ctx.Err() != nil {
			wnd.Close()
			return
		}
		show.Frame(surface)
	})
	return nil
}

func quitKey(name string, rn rune) bool {
	return name == "Escape" || rn == 'q' || rn == 'Q'
}
