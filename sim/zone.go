package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/common"
)

// ZonePhase is one entry of the safe-zone schedule: at Start seconds the
// zone begins shrinking toward Radius, dealing Damage per damage tick to
// combatants left outside.
type ZonePhase struct {
	Start  float64
	Radius float64
	Damage float64
}

// SafeZone is the shrinking circular boundary. Radius is non-increasing
// within a shrink window and constant between windows; the active phase
// index never decreases.
type SafeZone struct {
	Center         cp.Vector
	Radius         float64
	Phases         []ZonePhase
	ShrinkDuration float64
	DamageInterval float64

	phase        int // index of the active phase, -1 before the first
	shrinkFrom   float64
	nextDamageAt float64
}

// NewSafeZone creates a zone at full radius with the given schedule.
func NewSafeZone(center cp.Vector, radius float64, phases []ZonePhase, shrinkDuration, damageInterval float64) *SafeZone {
	return &SafeZone{
		Center:         center,
		Radius:         radius,
		Phases:         phases,
		ShrinkDuration: shrinkDuration,
		DamageInterval: damageInterval,
		phase:          -1,
	}
}

// ActivePhase returns the index of the last phase whose start has passed,
// or -1 before the first.
func (z *SafeZone) ActivePhase(now float64) int {
	if z == nil {
		return -1
	}
	idx := -1
	for i, p := range z.Phases {
		if now >= p.Start {
			idx = i
		}
	}
	return idx
}

// TargetRadius computes the radius at now: a linear shrink from the radius
// held when the active phase began down to the phase radius, then constant.
func (z *SafeZone) TargetRadius(now float64) float64 {
	if z == nil {
		return 0
	}
	idx := z.ActivePhase(now)
	if idx < 0 {
		return z.Radius
	}
	if idx != z.phase {
		z.phase = idx
		z.shrinkFrom = z.Radius
	}
	p := z.Phases[idx]
	if z.ShrinkDuration <= 0 {
		return p.Radius
	}
	t := common.Clamp((now-p.Start)/z.ShrinkDuration, 0, 1)
	r := common.Lerp(z.shrinkFrom, p.Radius, t)
	if r > z.Radius {
		return z.Radius
	}
	return r
}

// DamageDue reports whether a damage tick is owed at now and advances the
// interval clock when it is.
func (z *SafeZone) DamageDue(now float64) bool {
	if z == nil || z.DamageInterval <= 0 {
		return false
	}
	if now < z.nextDamageAt {
		return false
	}
	z.nextDamageAt = now + z.DamageInterval
	return true
}

// DamagePerTick returns the active phase's damage, or zero before the
// first phase.
func (z *SafeZone) DamagePerTick(now float64) float64 {
	idx := z.ActivePhase(now)
	if idx < 0 {
		return 0
	}
	return z.Phases[idx].Damage
}

// Contains reports whether a point is inside the current radius.
func (z *SafeZone) Contains(p cp.Vector) bool {
	if z == nil {
		return true
	}
	return p.Distance(z.Center) <= z.Radius
}
