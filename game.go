package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/hollowstem/zonefall/maps"
	"github.com/hollowstem/zonefall/sim"
	"github.com/hollowstem/zonefall/sim/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Game hosts one match behind the fixed-timestep loop and renders a debug
// view of the authoritative state. All mutation happens inside loop update
// steps; Draw only reads.
type Game struct {
	mapName string
	seed    int64

	match    *sim.Match
	director *system.Director
	loop     *sim.Loop
	input    *Input
	watcher  *maps.Watcher

	alpha float64
}

// NewGame loads the map and starts a match.
func NewGame(mapName string, seed int64, watch bool) (*Game, error) {
	g := &Game{
		mapName: mapName,
		seed:    seed,
		input:   NewInput(),
	}
	if err := g.startMatch(); err != nil {
		return nil, err
	}

	if watch {
		w, err := maps.NewWatcher("maps", "maps/scripts")
		if err != nil {
			log.Printf("game: map watcher unavailable: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) startMatch() error {
	spec, err := maps.LoadMapSpec(g.mapName)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if g.seed != 0 {
		spec.MatchSeed = g.seed
	}
	cfg, err := sim.BuildConfig(spec)
	if err != nil {
		return err
	}
	match, err := sim.NewMatch(cfg)
	if err != nil {
		return err
	}

	g.match = match
	g.director = system.NewDirector(match, g.input)
	g.director.OnFinish = func(stats *sim.Stats) {
		for id, row := range stats.All() {
			log.Printf("game: stats combatant=%d kills=%d dealt=%.0f taken=%.0f placement=%d",
				id, row.Kills, row.DamageDealt, row.DamageTaken, row.Placement)
		}
	}
	g.loop = sim.NewLoop(cfg.TickRate, g.director.Step, func(alpha float64) {
		g.alpha = alpha
	})
	g.loop.Start()
	return nil
}

func (g *Game) Update() error {
	if g.watcher != nil {
		select {
		case name := <-g.watcher.Events:
			log.Printf("game: %s changed, restarting match", name)
			g.loop.Stop()
			if err := g.startMatch(); err != nil {
				log.Printf("game: restart failed: %v", err)
			}
		default:
		}
	}

	g.input.Update(g)

	if g.match.Phase != sim.PhasePlaying && g.input.RestartRequested() {
		g.loop.Stop()
		if err := g.startMatch(); err != nil {
			return err
		}
	}

	g.loop.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawMatch(screen, g.match)

	msg := fmt.Sprintf("FPS: %.0f  t=%.1fs  alive=%d  phase=%s",
		ebiten.ActualFPS(), g.match.Elapsed, g.match.AliveCount(), g.match.Phase)
	if g.match.Phase != sim.PhasePlaying {
		msg += "  (R to restart)"
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
