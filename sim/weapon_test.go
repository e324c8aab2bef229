package sim

import (
	"math"
	"testing"
)

func TestTierMultiplier(t *testing.T) {
	tests := []struct {
		name string
		tier int
		want float64
	}{
		{"common", TierCommon, 1.0},
		{"rare", TierRare, 1.35},
		{"epic", TierEpic, 1.75},
		{"below range falls back to common", 0, 1.0},
		{"above range falls back to common", 9, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierMultiplier(tt.tier); got != tt.want {
				t.Errorf("TierMultiplier(%d) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func TestWeaponScaling(t *testing.T) {
	def := WeaponDef{Name: "scattergun", Kind: WeaponCone, BaseDamage: 15, BaseRange: 150, Cooldown: 0.9}

	t.Run("damage and range scale by tier", func(t *testing.T) {
		w := NewWeapon(def, TierRare)
		if got, want := w.Damage(), 15*1.35; math.Abs(got-want) > 1e-9 {
			t.Errorf("Damage() = %v, want %v", got, want)
		}
		if got, want := w.Range(), 150*1.35; math.Abs(got-want) > 1e-9 {
			t.Errorf("Range() = %v, want %v", got, want)
		}
	})

	t.Run("tier is clamped to the valid band", func(t *testing.T) {
		if w := NewWeapon(def, 0); w.Tier != TierCommon {
			t.Errorf("expected tier clamped up to common, got %d", w.Tier)
		}
		if w := NewWeapon(def, 7); w.Tier != TierEpic {
			t.Errorf("expected tier clamped down to epic, got %d", w.Tier)
		}
	})

	t.Run("ready tracks cooldown", func(t *testing.T) {
		w := NewWeapon(def, TierCommon)
		if !w.Ready() {
			t.Error("expected fresh weapon to be ready")
		}
		w.Cooldown = 0.3
		if w.Ready() {
			t.Error("expected cooling weapon to not be ready")
		}
	})

	t.Run("nil weapon is inert", func(t *testing.T) {
		var w *Weapon
		if w.Ready() || w.Damage() != 0 || w.Range() != 0 {
			t.Error("expected nil weapon to report zero values")
		}
	})
}
