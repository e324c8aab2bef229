package sim

import "github.com/jakecoffman/cp"

// ControlMode tags who drives a combatant.
type ControlMode int

const (
	ControlHuman ControlMode = iota
	ControlBot
)

// WeaponSlots is the inventory size of every combatant.
const WeaponSlots = 2

// MaxHealthKits caps carried health kits.
const MaxHealthKits = 3

// AbilityKind dispatches how an ability resolves.
type AbilityKind string

const (
	AbilityDash AbilityKind = "dash"
	AbilitySlam AbilityKind = "slam"
)

// Ability is the immutable definition of a combatant special.
type Ability struct {
	Kind         AbilityKind
	Cooldown     float64
	DashDistance float64
	Radius       float64
	Damage       float64
	StunDuration float64
}

// SkillProfile tunes one AI difficulty tier. Per-bot jitter is applied once
// at spawn so bots of the same tier do not act in lockstep.
type SkillProfile struct {
	ReactionInterval float64 // seconds between decision re-evaluations
	PerceptionRange  float64
	AimAccuracy      float64 // 0..1, 1 is perfect
	Aggression       float64 // 0..1, closes distance when high
	StrafeStrength   float64 // tangential speed fraction
	AbilityChance    float64 // per-second probability while engaged
	PolicyScript     string  // optional tengo policy override
}

// AIState is the mutable per-bot decision state. Populated only for
// bot-controlled combatants.
type AIState struct {
	Profile      SkillProfile
	Tier         string
	NextDecision float64 // match time of the next policy evaluation
	Target       *Combatant
	Wander       cp.Vector // current wander waypoint
	HasWander    bool
	StrafeDir    float64 // +1 or -1
	DesiredVel   cp.Vector
	AimAngle     float64
	WantFire     bool
	WantAbility  bool
}

// Combatant is any character in the match, human- or bot-controlled.
// Branching happens on Mode, never on a subtype.
type Combatant struct {
	ID     int
	Name   string
	Mode   ControlMode
	Pos    cp.Vector
	Vel    cp.Vector
	Facing float64 // radians

	Health    float64
	MaxHealth float64
	Shield    float64 // 0..100
	Radius    float64 // hitbox radius
	MoveSpeed float64

	Stun Window

	Slots      [WeaponSlots]*Weapon
	ActiveSlot int
	HealthKits int

	Ability         *Ability
	AbilityCooldown float64

	Alive bool

	AI *AIState // bot-controlled only
}

// ActiveWeapon returns the weapon in the active slot, or nil.
func (c *Combatant) ActiveWeapon() *Weapon {
	if c == nil || c.ActiveSlot < 0 || c.ActiveSlot >= WeaponSlots {
		return nil
	}
	return c.Slots[c.ActiveSlot]
}

// Stunned reports whether the combatant's stun window is active at now.
func (c *Combatant) Stunned(now float64) bool {
	if c == nil || !c.Stun.Active {
		return false
	}
	return !c.Stun.Expired(now)
}

// HasWeapon reports whether any slot holds a weapon of the given kind and tier.
func (c *Combatant) HasWeapon(kind WeaponKind, tier int) bool {
	if c == nil {
		return false
	}
	for _, w := range c.Slots {
		if w != nil && w.Def.Kind == kind && w.Tier == tier {
			return true
		}
	}
	return false
}

// FreeSlot returns the index of the first empty slot, or -1.
func (c *Combatant) FreeSlot() int {
	if c == nil {
		return -1
	}
	for i, w := range c.Slots {
		if w == nil {
			return i
		}
	}
	return -1
}
