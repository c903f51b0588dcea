// Package app wires the pieces every fireworks binary needs: flags,
// configuration, logging, the show and optional sound.
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/go-fireworks/pkg/audio"
	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/event"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// Options holds the command line flags shared by the binaries.
type Options struct {
	ConfigPath    string
	CreateDefault bool
	LogPath       string
	Width         int
	Height        int
	Seed          uint64
	Sound         bool

	// LogToStdout is used when no log file is given. Terminal renderers
	// own stdout and leave it false.
	LogToStdout bool

	soundSet bool
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Options {
	opts := &Options{}
	fs.StringVar(&opts.ConfigPath, "config", "fireworks.json", "Path to configuration file")
	fs.BoolVar(&opts.CreateDefault, "default", false, "Write the default configuration file and exit")
	fs.StringVar(&opts.LogPath, "log", "", "Write JSON logs to this file")
	fs.IntVar(&opts.Width, "width", 0, "Canvas width (overrides config)")
	fs.IntVar(&opts.Height, "height", 0, "Canvas height (overrides config)")
	fs.Uint64Var(&opts.Seed, "seed", 0, "Random seed (overrides config, 0 keeps it)")
	fs.BoolVar(&opts.Sound, "sound", false, "Play launch and explosion sounds (overrides config)")
	return opts
}

// Parse parses args into fs and records which optional flags were set.
func (o *Options) Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "sound" {
			o.soundSet = true
		}
	})
	return nil
}

// Apply copies flag overrides onto cfg.
func (o *Options) Apply(cfg *config.ShowConfig) {
	if o.Width > 0 {
		cfg.Canvas.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Canvas.Height = o.Height
	}
	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	if o.soundSet {
		cfg.Sound = o.Sound
	}
}

// Session is a configured show ready to be hosted.
type Session struct {
	Ctx    context.Context
	Config *config.ShowConfig
	Logger *logging.Logger
	Bus    *event.Bus
	Show   *engine.Show
	Sound  *audio.SoundManager

	logFile *os.File
}

// WriteDefault saves the default configuration to the config path.
func WriteDefault(opts *Options) error {
	return config.SaveConfig(config.DefaultConfig(), opts.ConfigPath)
}

// NewSession loads the configuration and builds the show.
func NewSession(opts *Options) (*Session, error) {
	s := &Session{}

	var w io.Writer = io.Discard
	switch {
	case opts.LogPath != "":
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, logging.WrapError(err, "open log file %s", opts.LogPath)
		}
		s.logFile = f
		w = f
	case opts.LogToStdout:
		w = os.Stdout
	}
	s.Logger = logging.NewLoggerWithWriter(w)
	s.Ctx = logging.WithCorrelationID(context.Background(), "")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		s.Close()
		return nil, err
	}
	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	s.Config = cfg

	s.Bus = event.NewEventBus()
	s.Show = engine.NewShow(cfg,
		engine.WithEventBus(s.Bus),
		engine.WithLogger(s.Logger),
		engine.WithContext(s.Ctx),
	)

	if cfg.Sound {
		s.Sound = audio.NewSoundManager(cfg.Seed)
		if err := s.Sound.Initialize(); err != nil {
			// The show runs silently without an audio device.
			s.Logger.Warn(s.Ctx, "sound disabled", "error", err.Error())
			s.Sound = nil
		} else {
			s.Sound.Attach(s.Bus)
		}
	}

	s.Logger.Info(s.Ctx, "session ready",
		"width", cfg.Canvas.Width,
		"height", cfg.Canvas.Height,
		"fireworks", cfg.Launch.Total,
		"sound", s.Sound != nil,
	)
	return s, nil
}

// Close releases the audio device and the log file.
func (s *Session) Close() {
	if s.Sound != nil {
		s.Sound.Cleanup()
	}
	if s.Logger != nil && s.Show != nil {
		s.Logger.Info(s.Ctx, "session closed", "explosions", s.Show.Explosions())
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// Fatal prints err to stderr and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "fireworks: %v\n", err)
	os.Exit(1)
}
