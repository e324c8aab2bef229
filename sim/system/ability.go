package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

// AbilitySystem executes combatant specials against their cooldowns and
// sweeps transient effect and stun records each tick.
type AbilitySystem struct{}

func NewAbilitySystem() *AbilitySystem {
	return &AbilitySystem{}
}

// Activate runs the combatant's ability. It returns false with no side
// effect when the combatant has no ability or the cooldown is still
// running; on success it sets the cooldown and publishes abilityUsed.
func (s *AbilitySystem) Activate(m *sim.Match, c *sim.Combatant) bool {
	if m == nil || c == nil || !c.Alive || c.Ability == nil || c.AbilityCooldown > 0 {
		return false
	}
	ab := c.Ability

	switch ab.Kind {
	case sim.AbilityDash:
		s.dash(m, c, ab)
	case sim.AbilitySlam:
		s.slam(m, c, ab)
	default:
		return false
	}

	c.AbilityCooldown = ab.Cooldown
	m.Events.Publish(sim.EventAbilityUsed, sim.AbilityUsed{Character: c, Ability: ab.Kind})
	return true
}

// dash translates the caster along its facing, projecting the endpoint
// back onto the arena boundary when the unclamped target would exit.
func (s *AbilitySystem) dash(m *sim.Match, c *sim.Combatant, ab *sim.Ability) {
	dir := cp.ForAngle(c.Facing)
	target := c.Pos.Add(dir.Mult(ab.DashDistance))

	limit := m.Config.ArenaRadius
	if target.Length() > limit {
		target = projectOntoCircle(c.Pos, dir, limit)
	}

	c.Pos = target
	eff := &sim.Effect{
		Type:   sim.EffectDash,
		Source: c,
		Pos:    c.Pos,
	}
	eff.Window.Begin(m.Elapsed, 0.25)
	m.Effects = append(m.Effects, eff)
}

// slam damages and stuns every other living combatant in radius, each
// exactly once.
func (s *AbilitySystem) slam(m *sim.Match, c *sim.Combatant, ab *sim.Ability) {
	now := m.Elapsed
	for _, o := range m.Roster {
		if o == c || !o.Alive {
			continue
		}
		if o.Pos.Distance(c.Pos) > ab.Radius {
			continue
		}
		m.ApplyDamage(c, o, ab.Damage)
		if o.Alive {
			o.Stun.Begin(now, ab.StunDuration)
		}
	}
	eff := &sim.Effect{
		Type:   sim.EffectSlam,
		Source: c,
		Pos:    c.Pos,
		Radius: ab.Radius,
	}
	eff.Window.Begin(now, 0.4)
	m.Effects = append(m.Effects, eff)
}

// Update clears expired stun windows and drops expired effect records.
func (s *AbilitySystem) Update(m *sim.Match, dt float64) {
	if m == nil {
		return
	}
	m.SweepExpired()
}

// projectOntoCircle finds the point where the ray from pos along dir
// crosses the circle of the given radius about the origin.
func projectOntoCircle(pos, dir cp.Vector, radius float64) cp.Vector {
	b := 2 * pos.Dot(dir)
	c0 := pos.Dot(pos) - radius*radius
	disc := b*b - 4*c0
	if disc < 0 {
		// Ray never crosses; the caster is already outside, stay put.
		return pos
	}
	t := (-b + math.Sqrt(disc)) / 2
	if t < 0 {
		return pos
	}
	return pos.Add(dir.Mult(t))
}
