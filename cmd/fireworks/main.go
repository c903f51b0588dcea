// cmd/fireworks/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-fireworks/pkg/app"
	"github.com/opd-ai/go-fireworks/pkg/render"
	tcellrender "github.com/opd-ai/go-fireworks/pkg/render/tcell"
)

const (
	asciiColumns = 80
	asciiRows    = 24
)

func main() {
	opts := app.RegisterFlags(flag.CommandLine)
	renderer := flag.String("renderer", "tcell", "Renderer type: 'tcell', 'ascii' or 'null'")
	scale := flag.Float64("scale", 8, "Surface units per terminal column (tcell and ascii)")
	colorize := flag.Bool("color", true, "Use 24-bit color escapes (ascii only)")
	if err := opts.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		app.Fatal(err)
	}

	if opts.CreateDefault {
		if err := app.WriteDefault(opts); err != nil {
			app.Fatal(err)
		}
		fmt.Printf("Default configuration saved to %s\n", opts.ConfigPath)
		return
	}

	// The terminal renderers draw on stdout.
	opts.LogToStdout = *renderer == "null"

	session, err := app.NewSession(opts)
	if err != nil {
		app.Fatal(err)
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(session.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, session, *renderer, *scale, *colorize)
	if err == nil || errors.Is(err, context.Canceled) {
		session.Logger.Info(ctx, "Show stopped", "launched", session.Show.Launched())
		return
	}
	session.Logger.Error(ctx, "Show failed", err, "renderer", *renderer)
	session.Close()
	app.Fatal(err)
}

// run hosts the show on the selected renderer until it stops.
func run(ctx context.Context, session *app.Session, renderer string, scale float64, colorize bool) error {
	interval := session.Config.FrameInterval()
	show := session.Show

	switch renderer {
	case "tcell":
		screen, err := tcellrender.NewScreen()
		if err != nil {
			return err
		}
		defer screen.Fini()
		return tcellrender.NewHost(screen, show, scale, session.Logger).Run(ctx, interval)

	case "ascii":
		term := newASCIIRenderer(scale, colorize, os.Stdout)
		show.SetBounds(term.SurfaceSize())
		return show.Run(ctx, term, interval)

	case "null":
		return show.Run(ctx, render.NewNullRenderer(session.Logger), interval)

	default:
		return fmt.Errorf("unknown renderer %q", renderer)
	}
}

// newASCIIRenderer creates the fixed-size terminal renderer.
func newASCIIRenderer(scale float64, colorize bool, out io.Writer) *render.TerminalRenderer {
	term := render.NewTerminalRenderer(asciiColumns, asciiRows, scale, out)
	term.Colorize = colorize
	return term
}
