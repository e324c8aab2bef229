package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

// maxAimSpread is the dispersion in radians a zero-accuracy bot aims with.
const maxAimSpread = 0.35

// AISystem drives bot-controlled combatants: throttled decision making
// against a jittered skill profile, perception with foliage concealment,
// movement and attack intents, opportunistic ability use, and each bot's
// own pickup negotiation.
type AISystem struct {
	physics *PhysicsSystem
	combat  *CombatSystem
	ability *AbilitySystem
	pickups *PickupSystem
	scripts *policyScripts
}

func NewAISystem(physics *PhysicsSystem, combat *CombatSystem, ability *AbilitySystem, pickups *PickupSystem) *AISystem {
	return &AISystem{
		physics: physics,
		combat:  combat,
		ability: ability,
		pickups: pickups,
		scripts: newPolicyScripts(),
	}
}

func (s *AISystem) Update(m *sim.Match, dt float64) {
	if m == nil {
		return
	}
	now := m.Elapsed
	for _, c := range m.Roster {
		if c.Mode != sim.ControlBot || !c.Alive || c.AI == nil {
			continue
		}
		ai := c.AI
		if c.Stunned(now) {
			c.Vel = cp.Vector{}
			continue
		}

		if now >= ai.NextDecision {
			s.decide(m, c, ai)
			ai.NextDecision = now + ai.Profile.ReactionInterval
		}

		s.act(m, c, ai)
		s.pickups.Negotiate(m, c, dt)
	}
}

// decide re-evaluates the policy once per reaction interval.
func (s *AISystem) decide(m *sim.Match, c *sim.Combatant, ai *sim.AIState) {
	ai.Target = s.perceive(m, c, ai)

	if ai.Target == nil {
		s.wander(m, c, ai)
		return
	}

	action := s.scripts.action(m, c, ai)
	switch action {
	case policyWander:
		ai.Target = nil
		s.wander(m, c, ai)
		return
	case policyRetreat:
		s.engage(m, c, ai, -1)
	default:
		s.engage(m, c, ai, 0)
	}
}

// perceive returns the nearest living combatant in perception range.
// Foliage between a bot and the human suppresses detection outside close
// range.
func (s *AISystem) perceive(m *sim.Match, c *sim.Combatant, ai *sim.AIState) *sim.Combatant {
	var best *sim.Combatant
	bestD := ai.Profile.PerceptionRange
	for _, o := range m.Roster {
		if o == c || !o.Alive {
			continue
		}
		d := o.Pos.Distance(c.Pos)
		if d > bestD {
			continue
		}
		if o.Mode == sim.ControlHuman && d > m.Config.BushSightRange && s.physics.BushBetween(c.Pos, o.Pos) {
			continue
		}
		best = o
		bestD = d
	}
	return best
}

func (s *AISystem) wander(m *sim.Match, c *sim.Combatant, ai *sim.AIState) {
	ai.WantFire = false
	ai.WantAbility = false

	if !ai.HasWander || c.Pos.Distance(ai.Wander) < 40 {
		// Wander toward somewhere comfortably inside the zone.
		r := m.Zone.Radius * 0.8 * math.Sqrt(m.Rand.Float64())
		a := 2 * math.Pi * m.Rand.Float64()
		ai.Wander = m.Zone.Center.Add(cp.ForAngle(a).Mult(r))
		ai.HasWander = true
	}

	dir := ai.Wander.Sub(c.Pos)
	if dir.Length() > 0 {
		dir = dir.Normalize()
	}
	ai.DesiredVel = dir.Mult(c.MoveSpeed * 0.6)
	ai.AimAngle = dir.ToAngle()
}

// engage closes or holds distance per aggression, strafes, and aims with
// accuracy-scaled dispersion. bias forces retreat when negative.
func (s *AISystem) engage(m *sim.Match, c *sim.Combatant, ai *sim.AIState, bias float64) {
	t := ai.Target
	toTarget := t.Pos.Sub(c.Pos)
	dist := toTarget.Length()
	dir := cp.Vector{X: 1}
	if dist > 0 {
		dir = toTarget.Mult(1 / dist)
	}

	weaponRange := 200.0
	if w := c.ActiveWeapon(); w != nil {
		weaponRange = w.Range()
	}

	preferred := weaponRange * (1 - 0.5*ai.Profile.Aggression)
	radial := 0.0
	switch {
	case bias < 0 || dist < preferred*0.85:
		radial = -1
	case dist > preferred*1.15:
		radial = 1
	}

	if m.Rand.Float64() < 0.25 {
		ai.StrafeDir = -ai.StrafeDir
	}
	tangent := dir.Perp().Mult(ai.StrafeDir * ai.Profile.StrafeStrength)

	vel := dir.Mult(radial).Add(tangent)
	if l := vel.Length(); l > 1 {
		vel = vel.Mult(1 / l)
	}
	ai.DesiredVel = vel.Mult(c.MoveSpeed)

	spread := (1 - ai.Profile.AimAccuracy) * maxAimSpread
	ai.AimAngle = dir.ToAngle() + m.Rand.NormFloat64()*spread
	ai.WantFire = dist <= weaponRange

	// One opportunistic ability roll per reaction interval while engaged.
	prob := ai.Profile.AbilityChance * ai.Profile.ReactionInterval
	ai.WantAbility = m.Rand.Float64() < prob
}

// act applies the stored intent every tick between decisions.
func (s *AISystem) act(m *sim.Match, c *sim.Combatant, ai *sim.AIState) {
	c.Vel = ai.DesiredVel
	c.Facing = ai.AimAngle

	if ai.WantFire && ai.Target != nil && ai.Target.Alive {
		if w := c.ActiveWeapon(); w != nil && w.Ready() {
			s.combat.Fire(m, c, w, ai.AimAngle)
		}
	}
	if ai.WantAbility {
		if s.ability.Activate(m, c) {
			ai.WantAbility = false
		}
	}
}
