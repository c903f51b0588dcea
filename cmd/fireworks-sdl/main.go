// cmd/fireworks-sdl/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-fireworks/pkg/app"
	canvasrender "github.com/opd-ai/go-fireworks/pkg/render/canvas"
)

func main() {
	opts := app.RegisterFlags(flag.CommandLine)
	title := flag.String("title", "Fireworks", "Window title")
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

	opts.LogToStdout = true
	session, err := app.NewSession(opts)
	if err != nil {
		app.Fatal(err)
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(session.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = canvasrender.Run(ctx, session.Show, *title, session.Logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		session.Logger.Error(ctx, "Window closed with error", err)
		session.Close()
		os.Exit(1)
	}
}
