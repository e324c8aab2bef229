package sim

// WeaponKind dispatches how a weapon resolves its shots.
type WeaponKind string

const (
	WeaponCone       WeaponKind = "cone"
	WeaponProjectile WeaponKind = "projectile"
	WeaponArea       WeaponKind = "area"
	WeaponBurst      WeaponKind = "burst"
)

// Weapon tiers scale damage and range off the base definition.
const (
	TierCommon = 1
	TierRare   = 2
	TierEpic   = 3
)

var tierMultiplier = map[int]float64{
	TierCommon: 1.0,
	TierRare:   1.35,
	TierEpic:   1.75,
}

// TierMultiplier returns the damage/range scale for a tier, defaulting to
// the common multiplier for out-of-range tiers.
func TierMultiplier(tier int) float64 {
	if m, ok := tierMultiplier[tier]; ok {
		return m
	}
	return tierMultiplier[TierCommon]
}

// WeaponDef is the immutable base definition a weapon instance derives from.
type WeaponDef struct {
	Name            string
	Kind            WeaponKind
	BaseDamage      float64
	BaseRange       float64
	Cooldown        float64 // seconds between shots
	Speed           float64 // projectile/area arc speed
	ConeAngle       float64 // full cone width in degrees
	ExplosionRadius float64 // area impact radius
	BurstCount      int
	BurstDelay      float64 // seconds between burst shots
}

// Weapon is one weapon instance. It is value-like: exactly one inventory
// slot or one ground pickup owns it at a time, and transfer is a move.
type Weapon struct {
	Def      WeaponDef
	Tier     int
	Cooldown float64 // seconds until the weapon may fire again
}

// NewWeapon creates a weapon instance of the given tier.
func NewWeapon(def WeaponDef, tier int) *Weapon {
	if tier < TierCommon {
		tier = TierCommon
	}
	if tier > TierEpic {
		tier = TierEpic
	}
	return &Weapon{Def: def, Tier: tier}
}

// Damage is the per-hit damage scaled by tier.
func (w *Weapon) Damage() float64 {
	if w == nil {
		return 0
	}
	return w.Def.BaseDamage * TierMultiplier(w.Tier)
}

// Range is the effective range scaled by tier.
func (w *Weapon) Range() float64 {
	if w == nil {
		return 0
	}
	return w.Def.BaseRange * TierMultiplier(w.Tier)
}

// Ready reports whether the weapon may fire.
func (w *Weapon) Ready() bool {
	return w != nil && w.Cooldown <= 0
}
