package sim

import (
	"errors"
	"log"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/common"
	"github.com/hollowstem/zonefall/maps"
)

// Circle is a static map feature: an obstacle, bush, or water patch.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// Contains reports whether p lies inside the circle.
func (c Circle) Contains(p cp.Vector) bool {
	return p.Distance(c.Center) <= c.Radius
}

// Documented defaults substituted for missing map fields. Out-of-range
// values are clamped, not rejected; only a wholly absent descriptor fails
// match creation.
const (
	DefaultArenaRadius     = 900.0
	DefaultTickRate        = 60.0
	DefaultBotCount        = 11
	DefaultPickupRadius    = 28.0
	DefaultPickupDuration  = 1.5
	DefaultHealthKitHeal   = 40.0
	DefaultShrinkDuration  = 20.0
	DefaultDamageInterval  = 1.0
	DefaultCombatantRadius = 16.0
	DefaultMoveSpeed       = 160.0
	DefaultMaxHealth       = 100.0
	DefaultBushSightRange  = 90.0
	DefaultMinSpawnGap     = 80.0

	MinBotCount  = 1
	MaxBotCount  = 50
	MinSpeedMult = 0.5
	MaxSpeedMult = 5.0
)

// ErrNoMap is returned when match creation receives no map descriptor.
var ErrNoMap = errors.New("sim: no map descriptor")

// MatchConfig is the validated runtime configuration of one match. It is
// built once at match start; systems never re-validate it per tick.
type MatchConfig struct {
	Name        string
	ArenaRadius float64
	TickRate    float64
	SpeedMult   float64

	Obstacles   []Circle
	Bushes      []Circle
	Water       []Circle
	SpawnPoints []cp.Vector

	ZonePhases     []ZonePhase
	ShrinkDuration float64
	DamageInterval float64

	WeaponDefs  []WeaponDef
	LootWeapons int
	LootKits    int
	LootShields int
	TierRatios  [3]float64 // common/rare/epic, normalized

	BotCount     int
	SkillTiers   map[string]SkillProfile
	Distribution map[string]float64

	Seed int64

	PickupRadius   float64
	PickupDuration float64
	HealthKitHeal  float64
	BushSightRange float64
	MinSpawnGap    float64

	DefaultAbility Ability
}

// BuildConfig converts a yaml map descriptor into a validated MatchConfig,
// substituting documented defaults for missing fields and clamping
// out-of-range values. Warnings go to the log, never to gameplay.
func BuildConfig(spec *maps.MapSpec) (*MatchConfig, error) {
	if spec == nil {
		return nil, ErrNoMap
	}

	cfg := &MatchConfig{
		Name:           spec.Name,
		ArenaRadius:    spec.ArenaRadius,
		TickRate:       DefaultTickRate,
		SpeedMult:      spec.SpeedMultiplier,
		ShrinkDuration: spec.Zone.ShrinkDuration,
		DamageInterval: spec.Zone.DamageInterval,
		LootWeapons:    spec.Loot.Weapons,
		LootKits:       spec.Loot.HealthKits,
		LootShields:    spec.Loot.ShieldCells,
		BotCount:       spec.Bots.Count,
		Seed:           spec.MatchSeed,
		PickupRadius:   DefaultPickupRadius,
		PickupDuration: DefaultPickupDuration,
		HealthKitHeal:  DefaultHealthKitHeal,
		BushSightRange: DefaultBushSightRange,
		MinSpawnGap:    DefaultMinSpawnGap,
		DefaultAbility: Ability{
			Kind:         AbilityDash,
			Cooldown:     8,
			DashDistance: 150,
			Radius:       120,
			Damage:       20,
			StunDuration: 1.2,
		},
	}

	if cfg.ArenaRadius <= 0 {
		log.Printf("sim: map %q missing arena radius, using %v", spec.Name, DefaultArenaRadius)
		cfg.ArenaRadius = DefaultArenaRadius
	}
	if cfg.SpeedMult == 0 {
		cfg.SpeedMult = 1
	}
	if v := common.Clamp(cfg.SpeedMult, MinSpeedMult, MaxSpeedMult); v != cfg.SpeedMult {
		log.Printf("sim: map %q speed multiplier %v clamped to %v", spec.Name, cfg.SpeedMult, v)
		cfg.SpeedMult = v
	}
	if cfg.BotCount == 0 {
		cfg.BotCount = DefaultBotCount
	}
	if cfg.BotCount < MinBotCount || cfg.BotCount > MaxBotCount {
		v := int(common.Clamp(float64(cfg.BotCount), MinBotCount, MaxBotCount))
		log.Printf("sim: map %q bot count %d clamped to %d", spec.Name, cfg.BotCount, v)
		cfg.BotCount = v
	}
	if cfg.ShrinkDuration <= 0 {
		cfg.ShrinkDuration = DefaultShrinkDuration
	}
	if cfg.DamageInterval <= 0 {
		cfg.DamageInterval = DefaultDamageInterval
	}

	cfg.Obstacles = circlesFromSpec(spec.Obstacles)
	cfg.Bushes = circlesFromSpec(spec.Bushes)
	cfg.Water = circlesFromSpec(spec.Water)
	for _, p := range spec.SpawnPoints {
		cfg.SpawnPoints = append(cfg.SpawnPoints, cp.Vector{X: p.X, Y: p.Y})
	}

	cfg.ZonePhases = zonePhasesFromSpec(spec, cfg.ArenaRadius)
	cfg.WeaponDefs = weaponDefsFromSpec(spec.Weapons)
	cfg.TierRatios = normalizeTierRatios(spec.Loot.TierRatios, spec.Name)
	if cfg.LootWeapons <= 0 {
		cfg.LootWeapons = cfg.BotCount + 4
	}
	if cfg.LootKits <= 0 {
		cfg.LootKits = cfg.BotCount / 2
	}
	if cfg.LootShields <= 0 {
		cfg.LootShields = cfg.BotCount / 2
	}

	cfg.SkillTiers, cfg.Distribution = skillTiersFromSpec(spec.Bots)
	return cfg, nil
}

func circlesFromSpec(in []maps.CircleSpec) []Circle {
	out := make([]Circle, 0, len(in))
	for _, c := range in {
		if c.Radius <= 0 {
			continue
		}
		out = append(out, Circle{Center: cp.Vector{X: c.X, Y: c.Y}, Radius: c.Radius})
	}
	return out
}

func zonePhasesFromSpec(spec *maps.MapSpec, arenaRadius float64) []ZonePhase {
	if len(spec.Zone.Phases) == 0 {
		log.Printf("sim: map %q missing zone phases, using default schedule", spec.Name)
		return []ZonePhase{
			{Start: 45, Radius: arenaRadius * 0.65, Damage: 2},
			{Start: 105, Radius: arenaRadius * 0.4, Damage: 4},
			{Start: 165, Radius: arenaRadius * 0.18, Damage: 8},
			{Start: 225, Radius: arenaRadius * 0.05, Damage: 12},
		}
	}
	phases := make([]ZonePhase, 0, len(spec.Zone.Phases))
	for _, p := range spec.Zone.Phases {
		phases = append(phases, ZonePhase{Start: p.Start, Radius: p.Radius, Damage: p.Damage})
	}
	sort.Slice(phases, func(i, j int) bool { return phases[i].Start < phases[j].Start })
	// Radii must be non-increasing across the schedule.
	for i := 1; i < len(phases); i++ {
		if phases[i].Radius > phases[i-1].Radius {
			log.Printf("sim: map %q zone phase %d radius %v exceeds previous, clamping", spec.Name, i, phases[i].Radius)
			phases[i].Radius = phases[i-1].Radius
		}
	}
	return phases
}

func weaponDefsFromSpec(in []maps.WeaponSpec) []WeaponDef {
	if len(in) == 0 {
		return DefaultWeaponDefs()
	}
	out := make([]WeaponDef, 0, len(in))
	for _, w := range in {
		def := WeaponDef{
			Name:            w.Name,
			Kind:            WeaponKind(w.Kind),
			BaseDamage:      w.Damage,
			BaseRange:       w.Range,
			Cooldown:        w.Cooldown,
			Speed:           w.Speed,
			ConeAngle:       w.ConeAngle,
			ExplosionRadius: w.ExplosionRadius,
			BurstCount:      w.BurstCount,
			BurstDelay:      w.BurstDelay,
		}
		switch def.Kind {
		case WeaponCone, WeaponProjectile, WeaponArea, WeaponBurst:
		default:
			log.Printf("sim: weapon %q has unknown kind %q, skipping", w.Name, w.Kind)
			continue
		}
		if def.Kind != WeaponCone && def.Speed <= 0 {
			def.Speed = 600
		}
		if def.Kind == WeaponBurst && def.BurstCount <= 0 {
			def.BurstCount = 3
		}
		if def.Kind == WeaponBurst && def.BurstDelay <= 0 {
			def.BurstDelay = 0.08
		}
		out = append(out, def)
	}
	if len(out) == 0 {
		return DefaultWeaponDefs()
	}
	return out
}

// DefaultWeaponDefs is the built-in arsenal used when a map supplies none.
func DefaultWeaponDefs() []WeaponDef {
	return []WeaponDef{
		{Name: "scattergun", Kind: WeaponCone, BaseDamage: 15, BaseRange: 150, Cooldown: 0.9, ConeAngle: 45},
		{Name: "repeater", Kind: WeaponProjectile, BaseDamage: 12, BaseRange: 420, Cooldown: 0.45, Speed: 620},
		{Name: "lobber", Kind: WeaponArea, BaseDamage: 28, BaseRange: 360, Cooldown: 1.6, Speed: 420, ExplosionRadius: 70},
		{Name: "triplet", Kind: WeaponBurst, BaseDamage: 8, BaseRange: 380, Cooldown: 1.1, Speed: 640, BurstCount: 3, BurstDelay: 0.08},
	}
}

func normalizeTierRatios(in []float64, mapName string) [3]float64 {
	ratios := [3]float64{0.6, 0.3, 0.1}
	if len(in) == 0 {
		return ratios
	}
	var picked [3]float64
	sum := 0.0
	for i := 0; i < 3 && i < len(in); i++ {
		if in[i] < 0 {
			in[i] = 0
		}
		picked[i] = in[i]
		sum += in[i]
	}
	if sum <= 0 {
		log.Printf("sim: map %q tier ratios sum to zero, using defaults", mapName)
		return ratios
	}
	for i := range picked {
		picked[i] /= sum
	}
	return picked
}

// DefaultSkillTiers are the built-in AI difficulty profiles.
func DefaultSkillTiers() map[string]SkillProfile {
	return map[string]SkillProfile{
		"rookie": {
			ReactionInterval: 0.7,
			PerceptionRange:  280,
			AimAccuracy:      0.5,
			Aggression:       0.35,
			StrafeStrength:   0.3,
			AbilityChance:    0.05,
		},
		"regular": {
			ReactionInterval: 0.45,
			PerceptionRange:  360,
			AimAccuracy:      0.72,
			Aggression:       0.55,
			StrafeStrength:   0.5,
			AbilityChance:    0.12,
		},
		"veteran": {
			ReactionInterval: 0.25,
			PerceptionRange:  460,
			AimAccuracy:      0.9,
			Aggression:       0.75,
			StrafeStrength:   0.7,
			AbilityChance:    0.22,
		},
	}
}

func skillTiersFromSpec(bots maps.BotsSpec) (map[string]SkillProfile, map[string]float64) {
	tiers := DefaultSkillTiers()
	for name, t := range bots.Tiers {
		p, ok := tiers[name]
		if !ok {
			p = tiers["regular"]
		}
		if t.ReactionInterval > 0 {
			p.ReactionInterval = t.ReactionInterval
		}
		if t.PerceptionRange > 0 {
			p.PerceptionRange = t.PerceptionRange
		}
		if t.AimAccuracy > 0 {
			p.AimAccuracy = common.Clamp(t.AimAccuracy, 0, 1)
		}
		if t.Aggression > 0 {
			p.Aggression = common.Clamp(t.Aggression, 0, 1)
		}
		if t.StrafeStrength > 0 {
			p.StrafeStrength = common.Clamp(t.StrafeStrength, 0, 1)
		}
		if t.AbilityChance > 0 {
			p.AbilityChance = common.Clamp(t.AbilityChance, 0, 1)
		}
		p.PolicyScript = t.PolicyScript
		tiers[name] = p
	}

	dist := map[string]float64{"rookie": 0.35, "regular": 0.45, "veteran": 0.2}
	if len(bots.Distribution) > 0 {
		sum := 0.0
		for _, v := range bots.Distribution {
			if v > 0 {
				sum += v
			}
		}
		if sum > 0 {
			dist = make(map[string]float64, len(bots.Distribution))
			for name, v := range bots.Distribution {
				if v <= 0 {
					continue
				}
				if _, ok := tiers[name]; !ok {
					log.Printf("sim: skill distribution names unknown tier %q, ignoring", name)
					continue
				}
				dist[name] = v / sum
			}
			if len(dist) == 0 {
				dist = map[string]float64{"regular": 1}
			}
		}
	}
	return tiers, dist
}
