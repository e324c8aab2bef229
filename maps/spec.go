package maps

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MapSpec is the yaml map descriptor the simulation consumes. Missing
// fields fall back to documented defaults at match start; the records here
// stay loose on purpose and are validated exactly once by sim.BuildConfig.
type MapSpec struct {
	Name            string       `yaml:"name"`
	ArenaRadius     float64      `yaml:"arena_radius"`
	SpeedMultiplier float64      `yaml:"speed_multiplier"`
	MatchSeed       int64        `yaml:"match_seed"`
	Obstacles       []CircleSpec `yaml:"obstacles"`
	Bushes          []CircleSpec `yaml:"bushes"`
	Water           []CircleSpec `yaml:"water"`
	SpawnPoints     []PointSpec  `yaml:"spawn_points"`
	Zone            ZoneSpec     `yaml:"zone"`
	Loot            LootSpec     `yaml:"loot"`
	Bots            BotsSpec     `yaml:"bots"`
	Weapons         []WeaponSpec `yaml:"weapons"`
}

type CircleSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ZoneSpec struct {
	Phases         []ZonePhaseSpec `yaml:"phases"`
	ShrinkDuration float64         `yaml:"shrink_duration"`
	DamageInterval float64         `yaml:"damage_interval"`
}

type ZonePhaseSpec struct {
	Start  float64 `yaml:"start"`
	Radius float64 `yaml:"radius"`
	Damage float64 `yaml:"damage"`
}

type LootSpec struct {
	Weapons     int       `yaml:"weapons"`
	HealthKits  int       `yaml:"health_kits"`
	ShieldCells int       `yaml:"shield_cells"`
	TierRatios  []float64 `yaml:"tier_ratios"`
}

type BotsSpec struct {
	Count        int                      `yaml:"count"`
	Distribution map[string]float64       `yaml:"distribution"`
	Tiers        map[string]SkillTierSpec `yaml:"tiers"`
}

type SkillTierSpec struct {
	ReactionInterval float64 `yaml:"reaction_interval"`
	PerceptionRange  float64 `yaml:"perception_range"`
	AimAccuracy      float64 `yaml:"aim_accuracy"`
	Aggression       float64 `yaml:"aggression"`
	StrafeStrength   float64 `yaml:"strafe_strength"`
	AbilityChance    float64 `yaml:"ability_chance"`
	PolicyScript     string  `yaml:"policy_script"`
}

type WeaponSpec struct {
	Name            string  `yaml:"name"`
	Kind            string  `yaml:"kind"`
	Damage          float64 `yaml:"damage"`
	Range           float64 `yaml:"range"`
	Cooldown        float64 `yaml:"cooldown"`
	Speed           float64 `yaml:"speed"`
	ConeAngle       float64 `yaml:"cone_angle"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
	BurstCount      int     `yaml:"burst_count"`
	BurstDelay      float64 `yaml:"burst_delay"`
}

// LoadSpec loads and unmarshals any yaml spec by filename.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("maps: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("maps: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadMapSpec loads a map descriptor by name ("arena" or "arena.yaml").
func LoadMapSpec(name string) (*MapSpec, error) {
	if name == "" {
		name = "arena"
	}
	if len(name) < 5 || name[len(name)-5:] != ".yaml" {
		name += ".yaml"
	}
	spec, err := LoadSpec[MapSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
