package sim

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestResolveSpawn(t *testing.T) {
	t.Run("clear preferred point is used as-is", func(t *testing.T) {
		m, _ := NewExhibition(testConfig())
		p := cp.Vector{X: 100, Y: 50}
		if got := m.ResolveSpawn(p, 0); got != p {
			t.Errorf("ResolveSpawn() = %v, want the preferred point %v", got, p)
		}
	})

	t.Run("avoids obstacles", func(t *testing.T) {
		cfg := testConfig()
		cfg.Obstacles = []Circle{{Center: cp.Vector{X: 100}, Radius: 40}}
		m, _ := NewExhibition(cfg)

		got := m.ResolveSpawn(cp.Vector{X: 100}, 0)
		for _, o := range cfg.Obstacles {
			if got.Distance(o.Center) < o.Radius+DefaultCombatantRadius {
				t.Errorf("spawn %v overlaps obstacle at %v", got, o.Center)
			}
		}
	})

	t.Run("keeps the minimum gap to the roster", func(t *testing.T) {
		m, _ := NewExhibition(testConfig())
		other := m.AddCombatant(ControlBot, "regular")
		other.Pos = cp.Vector{X: 200}

		got := m.ResolveSpawn(cp.Vector{X: 200}, 80)
		if got.Distance(other.Pos) < 80 {
			t.Errorf("spawn %v within the gap of %v", got, other.Pos)
		}
	})

	t.Run("stays inside the arena", func(t *testing.T) {
		m, _ := NewExhibition(testConfig())
		got := m.ResolveSpawn(cp.Vector{X: 2000}, 0)
		if got.Length() > m.Config.ArenaRadius-DefaultCombatantRadius {
			t.Errorf("spawn %v outside the arena", got)
		}
	})
}

func TestRandomSpawn(t *testing.T) {
	m, _ := NewExhibition(testConfig())
	for i := 0; i < 50; i++ {
		p := m.RandomSpawn(0)
		if p.Length() > m.Config.ArenaRadius-DefaultCombatantRadius {
			t.Fatalf("random spawn %v outside the arena", p)
		}
	}
}
