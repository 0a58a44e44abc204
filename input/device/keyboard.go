// Package device reads ebiten keyboard and gamepad state into input.State.
// It is kept apart from input so headless packages never link ebiten.
package device

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cubeling/input"
)

const stickDeadzone = 0.2

var keyBindings = [input.ActionCount][]ebiten.Key{
	input.ActionRotate: {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	input.ActionAttach: {ebiten.KeyE, ebiten.KeySpace},
	input.ActionDetach: {ebiten.KeyQ, ebiten.KeyBackspace},
}

var padBindings = [input.ActionCount][]ebiten.StandardGamepadButton{
	input.ActionRotate: {ebiten.StandardGamepadButtonFrontTopLeft},
	input.ActionAttach: {ebiten.StandardGamepadButtonRightBottom},
	input.ActionDetach: {ebiten.StandardGamepadButtonRightRight},
}

// Keyboard reads the keyboard and the first standard gamepad.
type Keyboard struct {
	input.State
	turn float32
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Update polls devices. Call it exactly once per frame.
func (k *Keyboard) Update() {
	if k == nil {
		return
	}

	var move mgl32.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move[1] -= 1
	}

	var turn float32
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		turn -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		turn += 1
	}

	var held, just [input.ActionCount]bool
	for a, keys := range keyBindings {
		for _, key := range keys {
			held[a] = held[a] || ebiten.IsKeyPressed(key)
			just[a] = just[a] || inpututil.IsKeyJustPressed(key)
		}
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// Stick Y grows downward.
			move = mgl32.Vec2{float32(lx), float32(-ly)}
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > stickDeadzone {
			turn = float32(rx)
		}

		for a, buttons := range padBindings {
			for _, b := range buttons {
				held[a] = held[a] || ebiten.IsStandardGamepadButtonPressed(id, b)
				just[a] = just[a] || inpututil.IsStandardGamepadButtonJustPressed(id, b)
			}
		}
	}

	k.turn = turn
	k.Set(move, held, just)
}

// CameraTurn is the camera yaw input in [-1, 1].
func (k *Keyboard) CameraTurn() float32 {
	if k == nil {
		return 0
	}
	return k.turn
}
