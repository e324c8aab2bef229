package system

import "github.com/hollowstem/zonefall/sim"

// ZoneSystem shrinks the safe zone on its phase schedule and applies
// periodic boundary damage. Boundary damage is environmental: it bypasses
// attacker attribution but still burns shield before health and can kill.
type ZoneSystem struct{}

func NewZoneSystem() *ZoneSystem {
	return &ZoneSystem{}
}

func (s *ZoneSystem) Update(m *sim.Match, dt float64) {
	if m == nil || m.Zone == nil {
		return
	}
	z := m.Zone
	now := m.Elapsed

	z.Radius = z.TargetRadius(now)

	if !z.DamageDue(now) {
		return
	}
	damage := z.DamagePerTick(now)
	if damage <= 0 {
		return
	}
	for _, c := range m.Roster {
		if !c.Alive {
			continue
		}
		if c.Pos.Distance(z.Center) > z.Radius {
			m.ApplyDamage(nil, c, damage)
		}
	}
}
