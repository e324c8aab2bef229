package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

func dropAt(m *sim.Match, pos cp.Vector, w *sim.Weapon) *sim.Pickup {
	p := &sim.Pickup{Pos: pos, Active: true, Weapon: w}
	m.Pickups = append(m.Pickups, p)
	return p
}

func TestSpawnInitial(t *testing.T) {
	cfg := testConfig()
	cfg.LootWeapons = 4
	cfg.LootKits = 2
	cfg.LootShields = 3
	m := testMatch(t, cfg)

	NewPickupSystem().SpawnInitial(m)
	if len(m.Pickups) != 9 {
		t.Fatalf("expected 9 pickups, got %d", len(m.Pickups))
	}
	weapons := 0
	for _, p := range m.Pickups {
		if !p.Active {
			t.Error("expected every spawned pickup active")
		}
		if p.IsWeapon() {
			weapons++
		}
	}
	if weapons != 4 {
		t.Errorf("expected 4 weapon pickups, got %d", weapons)
	}
}

func TestNegotiation(t *testing.T) {
	dt := 1.0 / 60

	t.Run("progress accumulates to completion", func(t *testing.T) {
		m := testMatch(t, testConfig())
		c := addFighter(m, cp.Vector{X: 400})
		c.Slots[0] = nil
		p := dropAt(m, c.Pos, weaponByName("repeater", sim.TierRare))
		s := NewPickupSystem()

		var events int
		m.Events.Subscribe(sim.EventWeaponPickedUp, func(sim.Event) { events++ })

		res := s.Negotiate(m, c, 0.5)
		if res.OK || p.Progress != 0.5 || p.Owner != c.ID {
			t.Fatalf("expected partial progress, got %+v pickup %+v", res, p)
		}

		s.Negotiate(m, c, 0.5)
		res = s.Negotiate(m, c, 0.5)
		if !res.OK {
			t.Fatal("expected the pickup to complete at the duration")
		}
		if p.Active {
			t.Error("expected the pickup consumed")
		}
		if c.Slots[0] == nil || c.Slots[0].Def.Name != "repeater" {
			t.Errorf("expected the weapon in slot 0, got %v", c.Slots[0])
		}
		if events != 1 {
			t.Errorf("pickup events = %d, want 1", events)
		}
	})

	t.Run("walking away resets progress", func(t *testing.T) {
		m := testMatch(t, testConfig())
		c := addFighter(m, cp.Vector{X: 400})
		c.Slots[0] = nil
		p := dropAt(m, c.Pos, weaponByName("repeater", sim.TierCommon))
		s := NewPickupSystem()

		m.BeginTick(dt)
		s.Negotiate(m, c, 0.5)
		s.Sweep(m)
		if p.Progress != 0.5 {
			t.Fatalf("Progress = %v, want kept while touched", p.Progress)
		}

		// Next tick the combatant is gone; nobody touches the pickup.
		m.BeginTick(dt)
		s.Sweep(m)
		if p.Progress != 0 || p.Owner != 0 {
			t.Errorf("expected a full reset, got progress %v owner %d", p.Progress, p.Owner)
		}
	})

	t.Run("a new negotiator restarts progress", func(t *testing.T) {
		m := testMatch(t, testConfig())
		a := addFighter(m, cp.Vector{X: 400})
		b := addFighter(m, cp.Vector{X: 410})
		a.Slots[0] = nil
		b.Slots[0] = nil
		p := dropAt(m, cp.Vector{X: 400}, weaponByName("repeater", sim.TierCommon))
		s := NewPickupSystem()

		s.Negotiate(m, a, 1.0)
		if p.Owner != a.ID {
			t.Fatalf("Owner = %d, want %d", p.Owner, a.ID)
		}

		a.Pos = cp.Vector{X: 600} // a leaves; b is now nearest
		s.Negotiate(m, b, 0.5)
		if p.Owner != b.ID {
			t.Errorf("Owner = %d, want the new negotiator %d", p.Owner, b.ID)
		}
		if p.Progress != 0.5 {
			t.Errorf("Progress = %v, want restarted at 0.5", p.Progress)
		}
	})

	t.Run("ineligible negotiation blocks with zero progress", func(t *testing.T) {
		m := testMatch(t, testConfig())
		c := addFighter(m, cp.Vector{X: 400})
		c.Slots[0] = weaponByName("repeater", sim.TierEpic)
		c.Slots[1] = weaponByName("scattergun", sim.TierEpic)
		p := dropAt(m, c.Pos, weaponByName("repeater", sim.TierCommon))
		s := NewPickupSystem()

		res := s.Negotiate(m, c, 0.5)
		if res.OK {
			t.Fatal("expected the negotiation blocked")
		}
		if res.Reason != sim.BlockLowerTier {
			t.Errorf("Reason = %q, want %q", res.Reason, sim.BlockLowerTier)
		}
		if p.Progress != 0 {
			t.Errorf("Progress = %v, want 0 while blocked", p.Progress)
		}
	})

	t.Run("out of range pickups are ignored", func(t *testing.T) {
		m := testMatch(t, testConfig())
		c := addFighter(m, cp.Vector{X: 400})
		p := dropAt(m, cp.Vector{X: 500}, weaponByName("repeater", sim.TierCommon))
		s := NewPickupSystem()

		s.Negotiate(m, c, 0.5)
		if p.Owner != 0 || p.Progress != 0 {
			t.Errorf("expected no negotiation out of range, got %+v", p)
		}
	})
}

func TestWeaponSwap(t *testing.T) {
	t.Run("full inventory swap drops the displaced weapon", func(t *testing.T) {
		m := testMatch(t, testConfig())
		c := addFighter(m, cp.Vector{X: 400})
		c.Slots[0] = weaponByName("repeater", sim.TierCommon)
		c.Slots[1] = weaponByName("scattergun", sim.TierCommon)
		pos := c.Pos
		dropAt(m, pos, weaponByName("repeater", sim.TierEpic))
		s := NewPickupSystem()

		s.Negotiate(m, c, 1.0)
		res := s.Negotiate(m, c, 1.0)
		if !res.OK {
			t.Fatal("expected the swap to complete")
		}
		if c.Slots[0].Tier != sim.TierEpic {
			t.Errorf("slot 0 tier = %d, want the epic replacement", c.Slots[0].Tier)
		}

		var dropped *sim.Pickup
		for _, p := range m.Pickups {
			if p.Active && p.IsWeapon() {
				dropped = p
			}
		}
		if dropped == nil {
			t.Fatal("expected the displaced weapon on the ground")
		}
		if dropped.Weapon.Tier != sim.TierCommon || dropped.Weapon.Def.Name != "repeater" {
			t.Errorf("dropped weapon = %+v, want the displaced common repeater", dropped.Weapon)
		}
		if dropped.Pos != pos {
			t.Errorf("dropped at %v, want the pickup position %v", dropped.Pos, pos)
		}
	})

	t.Run("consumables apply their effect", func(t *testing.T) {
		m := testMatch(t, testConfig())
		c := addFighter(m, cp.Vector{X: 400})
		c.Shield = 70
		m.Pickups = append(m.Pickups, &sim.Pickup{Pos: c.Pos, Active: true, Consumable: sim.ConsumableShieldCell})
		s := NewPickupSystem()

		s.Negotiate(m, c, 1.0)
		res := s.Negotiate(m, c, 1.0)
		if !res.OK {
			t.Fatal("expected the pickup to complete")
		}
		if c.Shield != 100 {
			t.Errorf("Shield = %v, want capped at 100", c.Shield)
		}
	})
}

func TestDropWeapon(t *testing.T) {
	m := testMatch(t, testConfig())
	c := addFighter(m, cp.Vector{X: 123})
	c.Slots[0] = weaponByName("repeater", sim.TierRare)
	c.Slots[0].Cooldown = 0.4
	c.ActiveSlot = 0

	NewPickupSystem().DropWeapon(m, c)
	if c.Slots[0] != nil {
		t.Error("expected the slot emptied")
	}
	if len(m.Pickups) != 1 {
		t.Fatalf("expected one ground pickup, got %d", len(m.Pickups))
	}
	p := m.Pickups[0]
	if p.Pos != c.Pos || !p.IsWeapon() || p.Weapon.Tier != sim.TierRare {
		t.Errorf("unexpected drop %+v", p)
	}
	if p.Weapon.Cooldown != 0 {
		t.Errorf("Cooldown = %v, want reset on drop", p.Weapon.Cooldown)
	}

	t.Run("empty hands drop nothing", func(t *testing.T) {
		NewPickupSystem().DropWeapon(m, c)
		if len(m.Pickups) != 1 {
			t.Errorf("expected no extra pickup, got %d", len(m.Pickups))
		}
	})
}
