package system

import (
	"math"

	"github.com/hollowstem/zonefall/sim"
)

// PickupSystem owns ground loot: initial spawning, death drops, and the
// timer-gated negotiation a combatant goes through to acquire an item.
// Progress only advances while the same combatant stays continuously in
// range and eligible; anything else resets it to zero.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem {
	return &PickupSystem{}
}

// SpawnInitial scatters the configured loot across the arena.
func (s *PickupSystem) SpawnInitial(m *sim.Match) {
	if m == nil {
		return
	}
	cfg := m.Config
	for i := 0; i < cfg.LootWeapons && len(cfg.WeaponDefs) > 0; i++ {
		def := cfg.WeaponDefs[m.Rand.Intn(len(cfg.WeaponDefs))]
		tier := sim.RollTier(m.Rand, cfg.TierRatios)
		m.Pickups = append(m.Pickups, &sim.Pickup{
			Pos:    m.RandomSpawn(0),
			Active: true,
			Weapon: sim.NewWeapon(def, tier),
		})
	}
	for i := 0; i < cfg.LootKits; i++ {
		m.Pickups = append(m.Pickups, &sim.Pickup{
			Pos:        m.RandomSpawn(0),
			Active:     true,
			Consumable: sim.ConsumableHealthKit,
		})
	}
	for i := 0; i < cfg.LootShields; i++ {
		m.Pickups = append(m.Pickups, &sim.Pickup{
			Pos:        m.RandomSpawn(0),
			Active:     true,
			Consumable: sim.ConsumableShieldCell,
		})
	}
}

// DropWeapon turns a dead combatant's active weapon into ground loot where
// it fell.
func (s *PickupSystem) DropWeapon(m *sim.Match, c *sim.Combatant) {
	if m == nil || c == nil {
		return
	}
	w := c.ActiveWeapon()
	if w == nil {
		return
	}
	c.Slots[c.ActiveSlot] = nil
	w.Cooldown = 0
	m.Pickups = append(m.Pickups, &sim.Pickup{
		Pos:    c.Pos,
		Active: true,
		Weapon: w,
	})
}

// Negotiate advances pickup progress for one combatant against the nearest
// active pickup in range. The structured result reports either completion
// or the blocking reason.
func (s *PickupSystem) Negotiate(m *sim.Match, c *sim.Combatant, dt float64) sim.PickupResult {
	if m == nil || c == nil || !c.Alive {
		return sim.PickupResult{}
	}
	p := s.nearestInRange(m, c)
	if p == nil {
		return sim.PickupResult{}
	}
	p.Touch(m.Tick())

	reason := sim.Eligibility(c, p)
	if reason != sim.BlockNone {
		p.Reset(reason)
		return sim.PickupResult{Reason: reason}
	}

	if p.Owner != c.ID {
		// A different combatant entering range restarts negotiation.
		p.Reset(sim.BlockNone)
		p.Owner = c.ID
	}
	p.Blocked = sim.BlockNone
	p.Progress += dt
	if p.Progress < m.Config.PickupDuration {
		return sim.PickupResult{}
	}

	s.complete(m, c, p)
	return sim.PickupResult{OK: true}
}

// Sweep resets negotiation on pickups nobody touched this tick, so walking
// away always zeroes progress.
func (s *PickupSystem) Sweep(m *sim.Match) {
	if m == nil {
		return
	}
	for _, p := range m.Pickups {
		if p.Active && p.Owner != 0 && !p.Touched(m.Tick()) {
			p.Reset(sim.BlockNone)
		}
	}
}

func (s *PickupSystem) nearestInRange(m *sim.Match, c *sim.Combatant) *sim.Pickup {
	var best *sim.Pickup
	bestD := math.Inf(1)
	for _, p := range m.Pickups {
		if !p.Active {
			continue
		}
		d := p.Pos.Distance(c.Pos)
		if d <= m.Config.PickupRadius && d < bestD {
			best = p
			bestD = d
		}
	}
	return best
}

func (s *PickupSystem) complete(m *sim.Match, c *sim.Combatant, p *sim.Pickup) {
	if p.IsWeapon() {
		s.takeWeapon(m, c, p)
	} else {
		s.takeConsumable(m, c, p)
	}
	p.Active = false
	p.Reset(sim.BlockNone)
}

func (s *PickupSystem) takeWeapon(m *sim.Match, c *sim.Combatant, p *sim.Pickup) {
	w := p.Weapon
	p.Weapon = nil

	slot := c.FreeSlot()
	if slot < 0 {
		slot = sim.ReplaceSlot(c, w)
		if slot < 0 {
			slot = c.ActiveSlot
		}
		if held := c.Slots[slot]; held != nil {
			// The displaced weapon drops in place of the taken one.
			held.Cooldown = 0
			m.Pickups = append(m.Pickups, &sim.Pickup{Pos: p.Pos, Active: true, Weapon: held})
		}
	}
	c.Slots[slot] = w
	m.Events.Publish(sim.EventWeaponPickedUp, sim.WeaponPickedUp{Character: c, Kind: w.Def.Kind, Tier: w.Tier})
}

func (s *PickupSystem) takeConsumable(m *sim.Match, c *sim.Combatant, p *sim.Pickup) {
	switch p.Consumable {
	case sim.ConsumableHealthKit:
		c.HealthKits++
	case sim.ConsumableShieldCell:
		c.Shield = math.Min(c.Shield+50, 100)
	}
	m.Events.Publish(sim.EventConsumablePickedUp, sim.ConsumablePickedUp{Character: c, Kind: p.Consumable})
}
