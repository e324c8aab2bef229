package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

// Input samples keyboard and mouse into a sim.InputFrame. The simulation
// polls it once per update tick.
type Input struct {
	frame   sim.InputFrame
	restart bool
}

func NewInput() *Input {
	return &Input{}
}

// Update snapshots device state for the coming ticks.
func (in *Input) Update(g *Game) {
	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X += 1
	}

	frame := sim.InputFrame{Move: move, Slot: -1}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		frame.Fire = true
		frame.AimAngle = aimAngle(g)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		frame.Slot = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		frame.Slot = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		frame.UseHealthKit = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		frame.UseAbility = true
	}

	in.frame = frame
	in.restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// Poll implements sim.InputProvider.
func (in *Input) Poll() sim.InputFrame {
	frame := in.frame
	// Discrete flags are one-shot; movement persists between snapshots.
	in.frame.Fire = false
	in.frame.UseHealthKit = false
	in.frame.UseAbility = false
	in.frame.Slot = -1
	return frame
}

// RestartRequested reports whether R was pressed this frame.
func (in *Input) RestartRequested() bool {
	return in.restart
}

// aimAngle converts the cursor position to a world-space angle from the
// human combatant.
func aimAngle(g *Game) float64 {
	mx, my := ebiten.CursorPosition()
	world := screenToWorld(g.match, float64(mx), float64(my))
	h := g.match.Human()
	if h == nil {
		return 0
	}
	return world.Sub(h.Pos).ToAngle()
}
