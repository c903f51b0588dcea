// cmd/fireworks-engo/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/opd-ai/go-fireworks/pkg/app"
	engorender "github.com/opd-ai/go-fireworks/pkg/render/engo"
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

	// engo.Run blocks until the window closes.
	engorender.Run(session.Show, *title, engorender.NewFireworksScene(session.Show, session.Logger))
}
