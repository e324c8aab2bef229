package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/hollowstem/zonefall/sim"
)

// viewScale maps world units to pixels so the whole arena fits the window.
const viewScale = 0.36

func worldToScreen(p cp.Vector) (float32, float32) {
	return float32(p.X*viewScale) + baseWidth/2, float32(p.Y*viewScale) + baseHeight/2
}

func screenToWorld(m *sim.Match, x, y float64) cp.Vector {
	return cp.Vector{
		X: (x - baseWidth/2) / viewScale,
		Y: (y - baseHeight/2) / viewScale,
	}
}

func drawMatch(screen *ebiten.Image, m *sim.Match) {
	if m == nil {
		return
	}
	screen.Fill(color.RGBA{R: 24, G: 28, B: 24, A: 255})

	// Arena and safe zone.
	cx, cy := worldToScreen(cp.Vector{})
	vector.StrokeCircle(screen, cx, cy, float32(m.Config.ArenaRadius*viewScale), 2, colornames.Slategray, true)
	zx, zy := worldToScreen(m.Zone.Center)
	vector.StrokeCircle(screen, zx, zy, float32(m.Zone.Radius*viewScale), 2, colornames.Deepskyblue, true)

	for _, w := range m.Config.Water {
		x, y := worldToScreen(w.Center)
		vector.DrawFilledCircle(screen, x, y, float32(w.Radius*viewScale), colornames.Midnightblue, true)
	}
	for _, b := range m.Config.Bushes {
		x, y := worldToScreen(b.Center)
		vector.DrawFilledCircle(screen, x, y, float32(b.Radius*viewScale), colornames.Darkgreen, true)
	}
	for _, o := range m.Config.Obstacles {
		x, y := worldToScreen(o.Center)
		vector.DrawFilledCircle(screen, x, y, float32(o.Radius*viewScale), colornames.Dimgray, true)
	}

	for _, p := range m.Pickups {
		if !p.Active {
			continue
		}
		x, y := worldToScreen(p.Pos)
		clr := colornames.Gold
		if !p.IsWeapon() {
			clr = colornames.Lightgreen
		}
		vector.DrawFilledCircle(screen, x, y, 4, clr, true)
		if p.Progress > 0 {
			frac := p.Progress / m.Config.PickupDuration
			vector.StrokeCircle(screen, x, y, float32(6+frac*6), 1, colornames.White, true)
		}
	}

	for _, e := range m.Effects {
		x, y := worldToScreen(e.Pos)
		switch e.Type {
		case sim.EffectSlam, sim.EffectExplosion:
			vector.StrokeCircle(screen, x, y, float32(e.Radius*viewScale), 2, colornames.Orange, true)
		case sim.EffectDash:
			vector.StrokeCircle(screen, x, y, 8, 1, colornames.White, true)
		}
	}

	for _, p := range m.Projectiles {
		x, y := worldToScreen(p.Pos)
		vector.DrawFilledCircle(screen, x, y, 3, colornames.Orangered, true)
	}

	for _, c := range m.Roster {
		x, y := worldToScreen(c.Pos)
		clr := colornames.Tomato
		if c.Mode == sim.ControlHuman {
			clr = colornames.Aquamarine
		}
		if !c.Alive {
			clr = colornames.Gray
		}
		vector.DrawFilledCircle(screen, x, y, float32(c.Radius*viewScale*1.6), clr, true)

		// Facing tick.
		tip := c.Pos.Add(cp.ForAngle(c.Facing).Mult(float64(c.Radius) * 1.6))
		tx, ty := worldToScreen(tip)
		vector.StrokeLine(screen, x, y, tx, ty, 1, colornames.White, true)

		// Health and shield bars.
		if c.Alive {
			barW := float32(20)
			frac := float32(c.Health / c.MaxHealth)
			vector.DrawFilledRect(screen, x-barW/2, y-16, barW*frac, 2, colornames.Limegreen, false)
			if c.Shield > 0 {
				vector.DrawFilledRect(screen, x-barW/2, y-19, barW*float32(c.Shield/100), 2, colornames.Lightblue, false)
			}
		}
	}
}
