package sim

import "github.com/jakecoffman/cp"

// ConsumableKind identifies non-weapon ground items.
type ConsumableKind string

const (
	ConsumableHealthKit  ConsumableKind = "health_kit"
	ConsumableShieldCell ConsumableKind = "shield_cell"
)

// BlockReason explains why pickup negotiation cannot advance.
type BlockReason string

const (
	BlockNone           BlockReason = ""
	BlockDuplicate      BlockReason = "duplicate"
	BlockLowerTier      BlockReason = "lower_tier"
	BlockInventoryFull  BlockReason = "inventory_full"
	BlockShieldFull     BlockReason = "shield_full"
	BlockHealthKitsFull BlockReason = "health_kits_full"
)

// PickupResult is the structured outcome of one negotiation tick.
type PickupResult struct {
	OK     bool
	Reason BlockReason
}

// Pickup is a ground item a combatant can acquire by standing in range for
// the required duration. Progress belongs to at most one combatant; any
// eligibility loss or owner change resets it.
type Pickup struct {
	Pos    cp.Vector
	Active bool

	Weapon     *Weapon        // weapon pickups
	Consumable ConsumableKind // consumable pickups, "" for weapons

	Progress float64 // seconds accumulated by Owner
	Owner    int     // combatant ID currently negotiating, 0 for none
	Blocked  BlockReason

	touched uint64 // tick stamp of the last negotiation attempt
}

// IsWeapon reports whether the pickup holds a weapon.
func (p *Pickup) IsWeapon() bool {
	return p != nil && p.Weapon != nil
}

// Touch stamps the pickup as negotiated during the given tick.
func (p *Pickup) Touch(tick uint64) {
	if p != nil {
		p.touched = tick
	}
}

// Touched reports whether the pickup was negotiated during the given tick.
func (p *Pickup) Touched(tick uint64) bool {
	return p != nil && p.touched == tick
}

// Reset clears negotiation progress and records why.
func (p *Pickup) Reset(reason BlockReason) {
	if p == nil {
		return
	}
	p.Progress = 0
	p.Owner = 0
	p.Blocked = reason
}

// Eligibility decides whether c may make progress on p. Weapon rules:
// duplicate kind+tier, strictly lower tier than the slot it would replace,
// or a full inventory with no replaceable slot all block. Consumable rules:
// caps block.
func Eligibility(c *Combatant, p *Pickup) BlockReason {
	if c == nil || p == nil || !p.Active {
		return BlockInventoryFull
	}
	if !p.IsWeapon() {
		switch p.Consumable {
		case ConsumableHealthKit:
			if c.HealthKits >= MaxHealthKits {
				return BlockHealthKitsFull
			}
		case ConsumableShieldCell:
			if c.Shield >= 100 {
				return BlockShieldFull
			}
		}
		return BlockNone
	}

	w := p.Weapon
	if c.HasWeapon(w.Def.Kind, w.Tier) {
		return BlockDuplicate
	}
	if c.FreeSlot() >= 0 {
		return BlockNone
	}
	slot := ReplaceSlot(c, w)
	if slot < 0 {
		return BlockInventoryFull
	}
	held := c.Slots[slot]
	if held != nil && held.Def.Kind == w.Def.Kind {
		if w.Tier < held.Tier {
			return BlockLowerTier
		}
		return BlockNone
	}
	// Replacing a different kind is only worth it for a strictly higher tier.
	if held != nil && w.Tier <= held.Tier {
		return BlockInventoryFull
	}
	return BlockNone
}

// ReplaceSlot picks the slot a new weapon would displace when the inventory
// is full: a slot holding the same kind if any, otherwise the lowest tier.
func ReplaceSlot(c *Combatant, w *Weapon) int {
	if c == nil || w == nil {
		return -1
	}
	lowest := -1
	for i, held := range c.Slots {
		if held == nil {
			continue
		}
		if held.Def.Kind == w.Def.Kind {
			return i
		}
		if lowest < 0 || held.Tier < c.Slots[lowest].Tier {
			lowest = i
		}
	}
	return lowest
}
