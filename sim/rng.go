package sim

import (
	"math/rand"

	"github.com/hollowstem/zonefall/common"
)

// NewRand returns the match PRNG. Each match seeds exactly one generator so
// bot jitter and loot rolls reproduce from the configured seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Jitter perturbs v by up to ±frac of itself, clamped to [lo, hi].
func Jitter(r *rand.Rand, v, frac, lo, hi float64) float64 {
	if r == nil {
		return common.Clamp(v, lo, hi)
	}
	j := v * (1 + frac*(2*r.Float64()-1))
	return common.Clamp(j, lo, hi)
}

// RollTier picks a weapon tier from normalized common/rare/epic ratios.
func RollTier(r *rand.Rand, ratios [3]float64) int {
	if r == nil {
		return TierCommon
	}
	roll := r.Float64()
	if roll < ratios[0] {
		return TierCommon
	}
	if roll < ratios[0]+ratios[1] {
		return TierRare
	}
	return TierEpic
}
