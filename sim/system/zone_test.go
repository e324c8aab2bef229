package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

func TestZoneSystem(t *testing.T) {
	newZoneMatch := func(t *testing.T) *sim.Match {
		cfg := testConfig()
		cfg.ZonePhases = []sim.ZonePhase{{Start: 0, Radius: 100, Damage: 5}}
		cfg.ShrinkDuration = 0.5
		cfg.DamageInterval = 1
		return testMatch(t, cfg)
	}

	t.Run("damages only combatants outside", func(t *testing.T) {
		m := newZoneMatch(t)
		inside := addFighter(m, cp.Vector{X: 50})
		outside := addFighter(m, cp.Vector{X: 600})

		m.Elapsed = 1
		s := NewZoneSystem()
		s.Update(m, 1.0/60)

		if inside.Health != 100 {
			t.Errorf("inside Health = %v, want untouched", inside.Health)
		}
		if outside.Health != 95 {
			t.Errorf("outside Health = %v, want 95", outside.Health)
		}
		if m.Zone.Radius != 100 {
			t.Errorf("Zone.Radius = %v, want fully shrunk to 100", m.Zone.Radius)
		}
	})

	t.Run("respects the damage interval", func(t *testing.T) {
		m := newZoneMatch(t)
		c := addFighter(m, cp.Vector{X: 600})

		s := NewZoneSystem()
		m.Elapsed = 1
		s.Update(m, 1.0/60)
		m.Elapsed = 1.5
		s.Update(m, 1.0/60)
		if c.Health != 95 {
			t.Errorf("Health = %v, want a single damage tick inside the interval", c.Health)
		}

		m.Elapsed = 2.1
		s.Update(m, 1.0/60)
		if c.Health != 90 {
			t.Errorf("Health = %v, want a second tick after the interval", c.Health)
		}
	})

	t.Run("boundary damage burns shield first and can kill", func(t *testing.T) {
		m := newZoneMatch(t)
		c := addFighter(m, cp.Vector{X: 600})
		c.Shield = 3
		c.Health = 4

		var killed int
		var killer *sim.Combatant
		m.Events.Subscribe(sim.EventCharacterKilled, func(evt sim.Event) {
			killed++
			killer = evt.Data.(sim.CharacterKilled).Attacker
		})

		s := NewZoneSystem()
		m.Elapsed = 1
		s.Update(m, 1.0/60)
		if c.Shield != 0 || c.Health != 2 {
			t.Errorf("Shield = %v Health = %v, want 0 and 2", c.Shield, c.Health)
		}

		m.Elapsed = 2.1
		s.Update(m, 1.0/60)
		if c.Alive {
			t.Error("expected the zone to kill")
		}
		if killed != 1 || killer != nil {
			t.Errorf("expected one environmental kill, got %d with attacker %v", killed, killer)
		}
	})

	t.Run("no damage before the first phase", func(t *testing.T) {
		cfg := testConfig() // first phase starts at 45s
		m := testMatch(t, cfg)
		c := addFighter(m, cp.Vector{X: 800})

		s := NewZoneSystem()
		m.Elapsed = 10
		s.Update(m, 1.0/60)
		if c.Health != 100 {
			t.Errorf("Health = %v, want untouched before the schedule", c.Health)
		}
	})
}
