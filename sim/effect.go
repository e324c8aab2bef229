package sim

import "github.com/jakecoffman/cp"

// EffectType identifies a transient visual record.
type EffectType string

const (
	EffectDash      EffectType = "dash"
	EffectSlam      EffectType = "slam"
	EffectExplosion EffectType = "explosion"
	EffectMuzzle    EffectType = "muzzle"
)

// Effect is a short-lived, render-only record. Damage and stun are applied
// when the effect is created; nothing reads it back for gameplay.
type Effect struct {
	Type   EffectType
	Source *Combatant // nil for fixed-position effects
	Pos    cp.Vector
	Radius float64
	Window Window
}

// Projectile is a moving point swept against combatant hitboxes each tick.
// Area arcs reuse the same record with a target point; on arrival or
// lifetime end they explode instead of requiring a direct hit.
type Projectile struct {
	Owner  *Combatant
	Kind   WeaponKind // WeaponProjectile or WeaponArea
	Pos    cp.Vector
	Vel    cp.Vector
	Damage float64

	Target          cp.Vector // area arcs only
	ExplosionRadius float64

	Age      float64
	Lifetime float64
}
