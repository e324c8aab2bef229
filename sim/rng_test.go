package sim

import "testing"

func TestNewRand(t *testing.T) {
	t.Run("same seed, same sequence", func(t *testing.T) {
		a, b := NewRand(12), NewRand(12)
		for i := 0; i < 10; i++ {
			if a.Float64() != b.Float64() {
				t.Fatal("expected identical sequences for the same seed")
			}
		}
	})

	t.Run("zero seed maps to a fixed one", func(t *testing.T) {
		a, b := NewRand(0), NewRand(1)
		if a.Float64() != b.Float64() {
			t.Error("expected seed 0 to behave like seed 1")
		}
	})
}

func TestJitter(t *testing.T) {
	r := NewRand(3)
	for i := 0; i < 200; i++ {
		v := Jitter(r, 0.45, 0.15, 0.1, 2)
		if v < 0.45*0.85-1e-9 || v > 0.45*1.15+1e-9 {
			t.Fatalf("jitter %v outside the ±15%% band", v)
		}
	}

	t.Run("clamps to the bounds", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			if v := Jitter(r, 10, 0.5, 0, 11); v > 11 {
				t.Fatalf("jitter %v above the hi bound", v)
			}
		}
	})

	t.Run("nil source clamps only", func(t *testing.T) {
		if v := Jitter(nil, 5, 0.5, 0, 3); v != 3 {
			t.Errorf("Jitter(nil) = %v, want clamped 3", v)
		}
	})
}

func TestRollTier(t *testing.T) {
	r := NewRand(9)
	tests := []struct {
		name   string
		ratios [3]float64
		want   int
	}{
		{"all common", [3]float64{1, 0, 0}, TierCommon},
		{"all rare", [3]float64{0, 1, 0}, TierRare},
		{"all epic", [3]float64{0, 0, 1}, TierEpic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				if got := RollTier(r, tt.ratios); got != tt.want {
					t.Fatalf("RollTier() = %d, want %d", got, tt.want)
				}
			}
		})
	}

	t.Run("nil source defaults to common", func(t *testing.T) {
		if got := RollTier(nil, [3]float64{0, 0, 1}); got != TierCommon {
			t.Errorf("RollTier(nil) = %d, want common", got)
		}
	})
}
