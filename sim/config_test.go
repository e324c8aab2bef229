package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/hollowstem/zonefall/maps"
)

func TestBuildConfig(t *testing.T) {
	t.Run("nil spec fails", func(t *testing.T) {
		if _, err := BuildConfig(nil); !errors.Is(err, ErrNoMap) {
			t.Errorf("expected ErrNoMap, got %v", err)
		}
	})

	t.Run("empty spec gets documented defaults", func(t *testing.T) {
		cfg, err := BuildConfig(&maps.MapSpec{Name: "bare"})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.ArenaRadius != DefaultArenaRadius {
			t.Errorf("ArenaRadius = %v, want %v", cfg.ArenaRadius, DefaultArenaRadius)
		}
		if cfg.BotCount != DefaultBotCount {
			t.Errorf("BotCount = %d, want %d", cfg.BotCount, DefaultBotCount)
		}
		if cfg.SpeedMult != 1 {
			t.Errorf("SpeedMult = %v, want 1", cfg.SpeedMult)
		}
		if len(cfg.ZonePhases) != 4 {
			t.Errorf("expected 4 default zone phases, got %d", len(cfg.ZonePhases))
		}
		if len(cfg.WeaponDefs) != len(DefaultWeaponDefs()) {
			t.Errorf("expected the default arsenal, got %d defs", len(cfg.WeaponDefs))
		}
		if cfg.LootWeapons <= 0 || cfg.LootKits <= 0 || cfg.LootShields <= 0 {
			t.Error("expected loot counts derived from bot count")
		}
	})

	t.Run("out of range values are clamped", func(t *testing.T) {
		cfg, err := BuildConfig(&maps.MapSpec{
			Name:            "wild",
			SpeedMultiplier: 10,
			Bots:            maps.BotsSpec{Count: 500},
		})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.SpeedMult != MaxSpeedMult {
			t.Errorf("SpeedMult = %v, want %v", cfg.SpeedMult, MaxSpeedMult)
		}
		if cfg.BotCount != MaxBotCount {
			t.Errorf("BotCount = %d, want %d", cfg.BotCount, MaxBotCount)
		}
	})

	t.Run("tier ratios normalize", func(t *testing.T) {
		cfg, err := BuildConfig(&maps.MapSpec{
			Name: "ratios",
			Loot: maps.LootSpec{TierRatios: []float64{2, 1, 1}},
		})
		if err != nil {
			t.Fatal(err)
		}
		want := [3]float64{0.5, 0.25, 0.25}
		for i := range want {
			if math.Abs(cfg.TierRatios[i]-want[i]) > 1e-9 {
				t.Errorf("TierRatios[%d] = %v, want %v", i, cfg.TierRatios[i], want[i])
			}
		}
	})

	t.Run("zone radii are forced non-increasing", func(t *testing.T) {
		cfg, err := BuildConfig(&maps.MapSpec{
			Name: "badzone",
			Zone: maps.ZoneSpec{Phases: []maps.ZonePhaseSpec{
				{Start: 10, Radius: 300, Damage: 2},
				{Start: 60, Radius: 600, Damage: 4},
			}},
		})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.ZonePhases[1].Radius > cfg.ZonePhases[0].Radius {
			t.Errorf("expected later phase clamped, got %v after %v",
				cfg.ZonePhases[1].Radius, cfg.ZonePhases[0].Radius)
		}
	})

	t.Run("unknown weapon kinds are skipped", func(t *testing.T) {
		cfg, err := BuildConfig(&maps.MapSpec{
			Name: "weapons",
			Weapons: []maps.WeaponSpec{
				{Name: "ok", Kind: "projectile", Damage: 10, Range: 300, Cooldown: 0.5, Speed: 500},
				{Name: "bogus", Kind: "laser", Damage: 99},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(cfg.WeaponDefs) != 1 || cfg.WeaponDefs[0].Name != "ok" {
			t.Errorf("expected only the valid weapon, got %+v", cfg.WeaponDefs)
		}
	})

	t.Run("skill tier overrides merge onto defaults", func(t *testing.T) {
		cfg, err := BuildConfig(&maps.MapSpec{
			Name: "tiers",
			Bots: maps.BotsSpec{
				Tiers: map[string]maps.SkillTierSpec{
					"veteran": {AimAccuracy: 0.99, PolicyScript: "aggressive.tengo"},
				},
				Distribution: map[string]float64{"veteran": 3, "rookie": 1},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		vet := cfg.SkillTiers["veteran"]
		if vet.AimAccuracy != 0.99 {
			t.Errorf("AimAccuracy = %v, want 0.99", vet.AimAccuracy)
		}
		if vet.PolicyScript != "aggressive.tengo" {
			t.Errorf("PolicyScript = %q", vet.PolicyScript)
		}
		if vet.ReactionInterval <= 0 {
			t.Error("expected untouched fields to keep defaults")
		}
		if math.Abs(cfg.Distribution["veteran"]-0.75) > 1e-9 {
			t.Errorf("Distribution[veteran] = %v, want 0.75", cfg.Distribution["veteran"])
		}
		if _, ok := cfg.Distribution["regular"]; ok {
			t.Error("expected explicit distribution to replace the default")
		}
	})
}
