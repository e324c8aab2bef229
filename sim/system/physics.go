package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

// PhysicsSystem owns the Chipmunk space: static circle shapes for map
// obstacles and one dynamic circle body per combatant. Combatant positions
// stay authoritative on the Combatant record; each tick the system pushes
// positions and movement intents into the space, steps it, and reads the
// resolved positions back, clamped to the arena circle.
type PhysicsSystem struct {
	cfg   *sim.MatchConfig
	space *cp.Space

	bodies map[int]*bodyEntry
}

type bodyEntry struct {
	body  *cp.Body
	shape *cp.Shape
}

// NewPhysicsSystem builds the space and its static obstacle shapes.
func NewPhysicsSystem(cfg *sim.MatchConfig) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10

	s := &PhysicsSystem{
		cfg:    cfg,
		space:  space,
		bodies: make(map[int]*bodyEntry),
	}
	for _, o := range cfg.Obstacles {
		shape := cp.NewCircle(space.StaticBody, o.Radius, o.Center)
		shape.SetElasticity(0)
		shape.SetFriction(0.6)
		space.AddShape(shape)
	}
	return s
}

// Add registers a combatant body. Rotation is fixed; the facing angle is
// simulation state, not a physics property.
func (s *PhysicsSystem) Add(c *sim.Combatant) {
	if s == nil || c == nil {
		return
	}
	if _, ok := s.bodies[c.ID]; ok {
		return
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(c.Pos)
	shape := cp.NewCircle(body, c.Radius, cp.Vector{})
	shape.SetElasticity(0)
	shape.SetFriction(0)
	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.bodies[c.ID] = &bodyEntry{body: body, shape: shape}
}

// Remove releases a combatant's body and shape.
func (s *PhysicsSystem) Remove(c *sim.Combatant) {
	if s == nil || c == nil {
		return
	}
	entry, ok := s.bodies[c.ID]
	if !ok {
		return
	}
	s.space.RemoveShape(entry.shape)
	s.space.RemoveBody(entry.body)
	delete(s.bodies, c.ID)
}

// Update integrates movement intents and resolves obstacle and
// entity collision for every combatant.
func (s *PhysicsSystem) Update(m *sim.Match, dt float64) {
	if s == nil || m == nil {
		return
	}
	now := m.Elapsed

	for _, c := range m.Roster {
		entry, ok := s.bodies[c.ID]
		if !ok {
			continue
		}
		// Positions may have been teleported (dash) since the last step.
		entry.body.SetPosition(c.Pos)

		vel := c.Vel
		if !c.Alive || c.Stunned(now) {
			vel = cp.Vector{}
		} else if s.inWater(c.Pos) {
			vel = vel.Mult(0.5)
		}
		entry.body.SetVelocityVector(vel)
	}

	s.space.Step(dt)

	limit := s.cfg.ArenaRadius
	for _, c := range m.Roster {
		entry, ok := s.bodies[c.ID]
		if !ok {
			continue
		}
		pos := entry.body.Position()
		if max := limit - c.Radius; pos.Length() > max {
			pos = pos.Normalize().Mult(max)
			entry.body.SetPosition(pos)
		}
		c.Pos = pos
	}
}

func (s *PhysicsSystem) inWater(p cp.Vector) bool {
	for _, w := range s.cfg.Water {
		if w.Contains(p) {
			return true
		}
	}
	return false
}

// BushBetween reports whether any bush intersects the segment a..b.
// Foliage blocks bot sight lines, never movement.
func (s *PhysicsSystem) BushBetween(a, b cp.Vector) bool {
	for _, bush := range s.cfg.Bushes {
		if _, ok := segmentCircleHit(a, b, bush.Center, bush.Radius); ok {
			return true
		}
	}
	return false
}

// ObstacleHit returns the earliest fraction along a..b where the segment
// enters an obstacle.
func (s *PhysicsSystem) ObstacleHit(a, b cp.Vector) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, o := range s.cfg.Obstacles {
		if t, ok := segmentCircleHit(a, b, o.Center, o.Radius); ok && t < best {
			best = t
			found = true
		}
	}
	return best, found
}

// segmentCircleHit returns the smallest t in [0,1] where a+(b-a)t enters
// the circle, if any.
func segmentCircleHit(a, b, center cp.Vector, radius float64) (float64, bool) {
	d := b.Sub(a)
	f := a.Sub(center)

	aa := d.Dot(d)
	if aa == 0 {
		if f.Length() <= radius {
			return 0, true
		}
		return 0, false
	}
	bb := 2 * f.Dot(d)
	cc := f.Dot(f) - radius*radius
	if cc <= 0 {
		// Starting inside counts as an immediate hit.
		return 0, true
	}
	disc := bb*bb - 4*aa*cc
	if disc < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(disc)
	t := (-bb - sqrtD) / (2 * aa)
	if t >= 0 && t <= 1 {
		return t, true
	}
	return 0, false
}
