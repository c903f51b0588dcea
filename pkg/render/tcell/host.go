package tcell

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// NewScreen creates and initializes a terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return screen, nil
}

// Host runs a show in a terminal until the user quits or the context ends.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	show    *engine.Show
	logger  *logging.Logger
}

// NewHost binds a show to a screen and sizes the show to the terminal.
func NewHost(screen tcell.Screen, show *engine.Show, scale float64, logger *logging.Logger) *Host {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	h := &Host{
		screen:  screen,
		surface: NewSurface(screen, scale),
		show:    show,
		logger:  logger,
	}
	h.show.SetBounds(h.surface.SurfaceSize())
	return h
}

// Surface returns the surface the show draws on.
func (h *Host) Surface() *Surface {
	return h.surface
}

// Run renders a frame every interval. It returns nil when the user quits
// and ctx.Err() when the context ends. The screen is not finalized.
func (h *Host) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.show.Start(interval)
	defer h.show.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.handleEvent(ctx, ev) {
				return nil
			}
		case <-ticker.C:
			h.show.Frame(h.surface)
		}
	}
}

// handleEvent reacts to input. It returns false when the show should end.
func (h *Host) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if quitKey(ev.Key(), ev.Rune()) {
			h.logger.Info(ctx, "quit requested")
			return false
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.surface.Resize()
		w, ht := h.surface.SurfaceSize()
		h.show.SetBounds(w, ht)
		h.logger.Debug(ctx, "terminal resized", "width", w, "height", ht)
	}
	return true
}

func quitKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}
