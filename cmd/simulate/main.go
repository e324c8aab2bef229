package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/hollowstem/zonefall/maps"
	"github.com/hollowstem/zonefall/sim"
	"github.com/hollowstem/zonefall/sim/system"
)

// maxMatchSeconds caps a run so a stalemate cannot spin forever. The final
// zone phase damages everyone outside a near-zero circle, so real matches
// finish well before this.
const maxMatchSeconds = 900

func main() {
	mapName := flag.String("map", "arena", "map name in maps/ (basename, .yaml optional)")
	seed := flag.Int64("seed", 0, "seed for the first match (0 keeps the map seed); later matches increment it")
	count := flag.Int("n", 1, "number of matches to run")
	flag.Parse()

	if *count < 1 {
		log.Fatal("simulate: -n must be at least 1")
	}

	spec, err := maps.LoadMapSpec(*mapName)
	if err != nil {
		log.Fatal(err)
	}

	wins := map[string]int{}
	for i := 0; i < *count; i++ {
		if *seed != 0 {
			spec.MatchSeed = *seed + int64(i)
		}
		winner, err := runMatch(spec, *count == 1)
		if err != nil {
			log.Fatal(err)
		}
		wins[winner]++
	}

	if *count > 1 {
		names := make([]string, 0, len(wins))
		for name := range wins {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if wins[names[i]] != wins[names[j]] {
				return wins[names[i]] > wins[names[j]]
			}
			return names[i] < names[j]
		})
		fmt.Printf("%d matches:\n", *count)
		for _, name := range names {
			fmt.Printf("  %4d  %s\n", wins[name], name)
		}
	}
}

// runMatch drives a bot-only match to completion and returns the winner's
// name. verbose additionally prints the full per-combatant stat lines.
func runMatch(spec *maps.MapSpec, verbose bool) (string, error) {
	cfg, err := sim.BuildConfig(spec)
	if err != nil {
		return "", err
	}
	m, err := sim.NewExhibition(cfg)
	if err != nil {
		return "", err
	}
	d := system.NewDirector(m, nil)

	// Eliminated bots leave the roster, so capture names up front.
	names := make(map[int]string, len(m.Roster))
	for _, c := range m.Roster {
		names[c.ID] = c.Name
	}

	dt := 1.0 / float64(cfg.TickRate)
	steps := int(maxMatchSeconds * float64(cfg.TickRate))
	for i := 0; i < steps && m.Phase == sim.PhasePlaying; i++ {
		d.Step(dt)
	}
	if m.Phase == sim.PhasePlaying {
		return "", fmt.Errorf("simulate: match did not finish within %ds (seed %d)", maxMatchSeconds, cfg.Seed)
	}

	winner := "nobody"
	if m.Winner != nil {
		winner = m.Winner.Name
	}
	fmt.Printf("seed %d: %s wins after %.1fs\n", cfg.Seed, winner, m.Elapsed)

	if verbose {
		printStats(m, names)
	}
	return winner, nil
}

func printStats(m *sim.Match, names map[int]string) {
	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return m.Stats.For(ids[i]).Placement < m.Stats.For(ids[j]).Placement
	})

	w := os.Stdout
	fmt.Fprintf(w, "%4s  %-12s  %5s  %7s  %7s  %5s\n", "#", "name", "kills", "dealt", "taken", "abil")
	for _, id := range ids {
		s := m.Stats.For(id)
		fmt.Fprintf(w, "%4d  %-12s  %5d  %7.0f  %7.0f  %5d\n",
			s.Placement, names[id], s.Kills, s.DamageDealt, s.DamageTaken, s.AbilityUses)
	}
}
