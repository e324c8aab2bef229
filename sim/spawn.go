package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	spawnRingStep    = 60.0
	spawnRingSlots   = 12
	spawnRingCount   = 8
	spawnObstaclePad = 4.0
)

// ResolveSpawn finds a position near preferred that is off obstacles, inside
// the arena, and at least minGap from every roster member. It searches an
// expanding ring pattern, then the map spawn list, and finally falls back to
// the arena center rather than failing.
func (m *Match) ResolveSpawn(preferred cp.Vector, minGap float64) cp.Vector {
	if m.spawnOK(preferred, minGap) {
		return preferred
	}
	for ring := 1; ring <= spawnRingCount; ring++ {
		r := float64(ring) * spawnRingStep
		for i := 0; i < spawnRingSlots; i++ {
			a := 2 * math.Pi * float64(i) / spawnRingSlots
			p := preferred.Add(cp.ForAngle(a).Mult(r))
			if m.spawnOK(p, minGap) {
				return p
			}
		}
	}
	for _, p := range m.Config.SpawnPoints {
		if m.spawnOK(p, minGap) {
			return p
		}
	}
	return cp.Vector{}
}

// RandomSpawn picks a uniformly random arena point and resolves it.
func (m *Match) RandomSpawn(minGap float64) cp.Vector {
	r := m.Config.ArenaRadius * 0.9 * math.Sqrt(m.Rand.Float64())
	a := 2 * math.Pi * m.Rand.Float64()
	return m.ResolveSpawn(cp.ForAngle(a).Mult(r), minGap)
}

func (m *Match) spawnOK(p cp.Vector, minGap float64) bool {
	if p.Length() > m.Config.ArenaRadius-DefaultCombatantRadius {
		return false
	}
	for _, o := range m.Config.Obstacles {
		if p.Distance(o.Center) < o.Radius+DefaultCombatantRadius+spawnObstaclePad {
			return false
		}
	}
	if minGap > 0 {
		for _, c := range m.Roster {
			if c.Alive && p.Distance(c.Pos) < minGap {
				return false
			}
		}
	}
	return true
}
