// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// ShowSystem advances the show once per engo frame and draws it through
// the pooled renderer.
type ShowSystem struct {
	show     *engine.Show
	renderer *EngoRenderer
}

// NewShowSystem creates a system driving show.
func NewShowSystem(show *engine.Show, renderer *EngoRenderer) *ShowSystem {
	return &ShowSystem{show: show, renderer: renderer}
}

// Update satisfies the ecs.System interface. The show measures frame time
// with its own clock, so dt is ignored.
func (s *ShowSystem) Update(dt float32) {
	s.show.Frame(s.renderer)
}

// Remove satisfies the ecs.System interface
func (s *ShowSystem) Remove(basic ecs.BasicEntity) {}

// fontURL is the asset name the embedded Go Regular font is loaded under.
const fontURL = "goregular.ttf"

// FireworksScene represents the show scene in Engo
type FireworksScene struct {
	show     *engine.Show
	renderer *EngoRenderer
	input    *InputSystem
	logger   *logging.Logger
}

// NewFireworksScene creates a new show scene
func NewFireworksScene(show *engine.Show, logger *logging.Logger) *FireworksScene {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &FireworksScene{
		show:     show,
		renderer: NewEngoRenderer(),
		input:    NewInputSystem(),
		logger:   logger,
	}
}

// Type returns the scene type (required by Engo)
func (scene *FireworksScene) Type() string {
	return "FireworksScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *FireworksScene) Preload() {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		scene.logger.Warn(context.Background(), "overlay font unavailable", "error", err.Error())
	}
}

// loadFont builds the overlay font from the preloaded asset.
func loadFont() (*common.Font, error) {
	font := &common.Font{URL: fontURL, FG: color.White, Size: labelSize}
	if err := font.CreatePreloaded(); err != nil {
		return nil, err
	}
	return font, nil
}

// Setup is called when the scene starts (required by Engo)
func (scene *FireworksScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(context.Background(), "unexpected engo updater", nil)
		return
	}
	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	scene.renderer.Bind(renderSystem)

	if font, err := loadFont(); err != nil {
		scene.logger.Warn(context.Background(), "overlay disabled", "error", err.Error())
	} else {
		scene.renderer.SetFont(font)
	}

	world.AddSystem(scene.input)
	world.AddSystem(NewShowSystem(scene.show, scene.renderer))

	scene.logger.Info(context.Background(), "engo scene ready",
		"width", scene.show.Bounds().Width,
		"height", scene.show.Bounds().Height,
	)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *FireworksScene) Exit() {
	scene.renderer.Release()
	scene.logger.Info(context.Background(), "engo scene closed", "explosions", scene.show.Explosions())
}

// Run opens a window sized to the show and blocks until it closes.
func Run(show *engine.Show, title string, scene *FireworksScene) {
	b := show.Bounds()
	engo.Run(engo.RunOptions{
		Title:  title,
		Width:  int(b.Width),
		Height: int(b.Height),
		VSync:  true,
	}, scene)
}
