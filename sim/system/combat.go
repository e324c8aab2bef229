package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/common"
	"github.com/hollowstem/zonefall/sim"
)

// muzzleOffset keeps a fresh projectile from immediately sweeping into its
// own shooter.
const muzzleOffset = 2.0

// CombatSystem resolves weapon fire: instantaneous cones, swept
// projectiles, area arcs, and burst sequences. It also advances in-flight
// projectiles, applies damage, and attributes kills.
type CombatSystem struct {
	physics *PhysicsSystem
	bursts  []burstState
}

type burstState struct {
	owner     *sim.Combatant
	weapon    *sim.Weapon
	aim       float64
	remaining int
	nextAt    float64
}

func NewCombatSystem(physics *PhysicsSystem) *CombatSystem {
	return &CombatSystem{physics: physics}
}

// Fire discharges a weapon at aim. A running cooldown makes it a no-op; on
// success the cooldown resets and the shot dispatches by attack kind.
func (s *CombatSystem) Fire(m *sim.Match, attacker *sim.Combatant, w *sim.Weapon, aim float64) bool {
	if m == nil || attacker == nil || !attacker.Alive || w == nil || !w.Ready() {
		return false
	}
	w.Cooldown = w.Def.Cooldown
	attacker.Facing = aim
	m.Events.Publish(sim.EventWeaponFired, sim.WeaponFired{Character: attacker, Weapon: w})

	switch w.Def.Kind {
	case sim.WeaponCone:
		s.fireCone(m, attacker, w, aim)
	case sim.WeaponProjectile:
		s.spawnProjectile(m, attacker, w, aim)
	case sim.WeaponArea:
		s.spawnArc(m, attacker, w, aim)
	case sim.WeaponBurst:
		s.spawnProjectile(m, attacker, w, aim)
		if w.Def.BurstCount > 1 {
			s.bursts = append(s.bursts, burstState{
				owner:     attacker,
				weapon:    w,
				aim:       aim,
				remaining: w.Def.BurstCount - 1,
				nextAt:    m.Elapsed + w.Def.BurstDelay,
			})
		}
	}
	return true
}

// fireCone damages every other living combatant inside the range and the
// cone half-angle, once per target regardless of overlap.
func (s *CombatSystem) fireCone(m *sim.Match, attacker *sim.Combatant, w *sim.Weapon, aim float64) {
	halfCone := w.Def.ConeAngle * math.Pi / 180 / 2
	rng := w.Range()
	for _, o := range m.Roster {
		if o == attacker || !o.Alive {
			continue
		}
		d := o.Pos.Sub(attacker.Pos)
		if d.Length() > rng {
			continue
		}
		if math.Abs(common.AngleDiff(d.ToAngle(), aim)) > halfCone {
			continue
		}
		m.ApplyDamage(attacker, o, w.Damage())
	}
	eff := &sim.Effect{Type: sim.EffectMuzzle, Source: attacker, Pos: attacker.Pos}
	eff.Window.Begin(m.Elapsed, 0.15)
	m.Effects = append(m.Effects, eff)
}

func (s *CombatSystem) spawnProjectile(m *sim.Match, attacker *sim.Combatant, w *sim.Weapon, aim float64) {
	dir := cp.ForAngle(aim)
	speed := w.Def.Speed
	m.Projectiles = append(m.Projectiles, &sim.Projectile{
		Owner:    attacker,
		Kind:     sim.WeaponProjectile,
		Pos:      attacker.Pos.Add(dir.Mult(attacker.Radius + muzzleOffset)),
		Vel:      dir.Mult(speed),
		Damage:   w.Damage(),
		Lifetime: w.Range() / speed,
	})
}

// spawnArc launches an area shot toward the ranged target point; impact
// damage lands on arrival or lifetime end.
func (s *CombatSystem) spawnArc(m *sim.Match, attacker *sim.Combatant, w *sim.Weapon, aim float64) {
	dir := cp.ForAngle(aim)
	speed := w.Def.Speed
	target := attacker.Pos.Add(dir.Mult(w.Range()))
	m.Projectiles = append(m.Projectiles, &sim.Projectile{
		Owner:           attacker,
		Kind:            sim.WeaponArea,
		Pos:             attacker.Pos.Add(dir.Mult(attacker.Radius + muzzleOffset)),
		Vel:             dir.Mult(speed),
		Damage:          w.Damage(),
		Target:          target,
		ExplosionRadius: w.Def.ExplosionRadius,
		Lifetime:        w.Range() / speed,
	})
}

// Update advances pending bursts and in-flight projectiles.
func (s *CombatSystem) Update(m *sim.Match, dt float64) {
	if m == nil {
		return
	}
	s.advanceBursts(m)
	s.advanceProjectiles(m, dt)
}

func (s *CombatSystem) advanceBursts(m *sim.Match) {
	kept := s.bursts[:0]
	for i := range s.bursts {
		b := s.bursts[i]
		if b.owner == nil || !b.owner.Alive {
			continue
		}
		for b.remaining > 0 && m.Elapsed >= b.nextAt {
			s.spawnProjectile(m, b.owner, b.weapon, b.aim)
			b.remaining--
			b.nextAt += b.weapon.Def.BurstDelay
		}
		if b.remaining > 0 {
			kept = append(kept, b)
		}
	}
	s.bursts = kept
}

func (s *CombatSystem) advanceProjectiles(m *sim.Match, dt float64) {
	kept := m.Projectiles[:0]
	for _, p := range m.Projectiles {
		next := p.Pos.Add(p.Vel.Mult(dt))
		p.Age += dt

		if p.Kind == sim.WeaponArea {
			// Arcs fly over obstacles and detonate at the target point.
			if p.Age >= p.Lifetime || next.Distance(p.Target) <= p.Vel.Length()*dt {
				s.explode(m, p, p.Target)
				continue
			}
			p.Pos = next
			kept = append(kept, p)
			continue
		}

		target, hitT, hit := s.sweep(m, p, next)
		obstacleT, obstacleHit := s.physics.ObstacleHit(p.Pos, next)

		switch {
		case hit && (!obstacleHit || hitT <= obstacleT):
			m.ApplyDamage(p.Owner, target, p.Damage)
		case obstacleHit:
			// Absorbed by terrain, no damage.
		case p.Age >= p.Lifetime:
			// Flew its full range without a hit.
		default:
			p.Pos = next
			kept = append(kept, p)
		}
	}
	m.Projectiles = kept
}

// sweep finds the nearest living combatant the segment from p.Pos to next
// intersects, excluding the shooter.
func (s *CombatSystem) sweep(m *sim.Match, p *sim.Projectile, next cp.Vector) (*sim.Combatant, float64, bool) {
	var best *sim.Combatant
	bestT := math.Inf(1)
	for _, o := range m.Roster {
		if o == p.Owner || !o.Alive {
			continue
		}
		if t, ok := segmentCircleHit(p.Pos, next, o.Pos, o.Radius); ok && t < bestT {
			best = o
			bestT = t
		}
	}
	return best, bestT, best != nil
}

// explode applies area damage once to every living combatant within the
// explosion radius of the impact point, the shooter included.
func (s *CombatSystem) explode(m *sim.Match, p *sim.Projectile, at cp.Vector) {
	for _, o := range m.Roster {
		if !o.Alive {
			continue
		}
		if o.Pos.Distance(at) <= p.ExplosionRadius {
			m.ApplyDamage(p.Owner, o, p.Damage)
		}
	}
	eff := &sim.Effect{Type: sim.EffectExplosion, Pos: at, Radius: p.ExplosionRadius}
	eff.Window.Begin(m.Elapsed, 0.35)
	m.Effects = append(m.Effects, eff)
}
