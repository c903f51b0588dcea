// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// buttonQuit is registered by SetupInputBindings.
const buttonQuit = "quit"

// InputSystem handles the quit keys of the show window.
type InputSystem struct {
	// justPressed reports whether a named button went down this frame.
	justPressed func(name string) bool
	exit        func()
}

// NewInputSystem creates a new input system reading engo's input manager.
func NewInputSystem() *InputSystem {
	return &InputSystem{
		justPressed: func(name string) bool {
			return engo.Input.Button(name).JustPressed()
		},
		exit: engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update closes the window when a quit key is hit.
func (is *InputSystem) Update(dt float32) {
	if is.justPressed(buttonQuit) {
		is.exit()
	}
}

// SetupInputBindings sets up the key bindings for the show
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape, engo.KeyQ)
}
