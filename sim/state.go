package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/jakecoffman/cp"
)

// Phase is the match lifecycle state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseVictory
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseVictory:
		return "victory"
	case PhaseGameOver:
		return "game-over"
	}
	return "unknown"
}

// Match is the authoritative state of one running match. It has a single
// writer (the update step); the render callback only reads it.
type Match struct {
	Config  *MatchConfig
	Phase   Phase
	Elapsed float64

	Roster      []*Combatant
	Pickups     []*Pickup
	Projectiles []*Projectile
	Effects     []*Effect
	Zone        *SafeZone

	Events *Bus
	Stats  *Stats
	Rand   *rand.Rand

	Winner *Combatant

	tick      uint64
	finalized bool
	nextID    int
}

// NewMatch creates a match with one human-controlled combatant plus the
// configured bot count. A nil config is the only hard failure.
func NewMatch(cfg *MatchConfig) (*Match, error) {
	return newMatch(cfg, true)
}

// NewExhibition creates a bot-only match for headless balance runs.
func NewExhibition(cfg *MatchConfig) (*Match, error) {
	return newMatch(cfg, false)
}

func newMatch(cfg *MatchConfig, withHuman bool) (*Match, error) {
	if cfg == nil {
		return nil, ErrNoMap
	}
	m := &Match{
		Config: cfg,
		Phase:  PhasePlaying,
		Events: NewBus(),
		Rand:   NewRand(cfg.Seed),
	}
	m.Stats = NewStats(m.Events)
	m.Zone = NewSafeZone(cp.Vector{}, cfg.ArenaRadius, cfg.ZonePhases, cfg.ShrinkDuration, cfg.DamageInterval)

	if withHuman {
		m.AddCombatant(ControlHuman, "")
	}
	for i := 0; i < cfg.BotCount; i++ {
		m.AddCombatant(ControlBot, m.rollTier())
	}
	return m, nil
}

// AddCombatant spawns a combatant of the given control mode. Bots receive a
// jittered copy of the named skill tier profile.
func (m *Match) AddCombatant(mode ControlMode, tier string) *Combatant {
	m.nextID++
	c := &Combatant{
		ID:         m.nextID,
		Mode:       mode,
		Health:     DefaultMaxHealth,
		MaxHealth:  DefaultMaxHealth,
		Radius:     DefaultCombatantRadius,
		MoveSpeed:  DefaultMoveSpeed * m.Config.SpeedMult,
		Alive:      true,
		HealthKits: 1,
	}
	if mode == ControlHuman {
		c.Name = "player"
	} else {
		c.Name = fmt.Sprintf("bot-%d", c.ID)
	}

	c.Pos = m.RandomSpawn(m.Config.MinSpawnGap)

	// Everyone starts with a common-tier weapon and the default ability.
	if len(m.Config.WeaponDefs) > 0 {
		def := m.Config.WeaponDefs[m.Rand.Intn(len(m.Config.WeaponDefs))]
		c.Slots[0] = NewWeapon(def, TierCommon)
	}
	ab := m.Config.DefaultAbility
	if mode == ControlBot && m.Rand.Float64() < 0.5 {
		ab.Kind = AbilitySlam
	}
	c.Ability = &ab

	if mode == ControlBot {
		c.AI = m.newAIState(tier)
	}
	m.Roster = append(m.Roster, c)
	return c
}

func (m *Match) newAIState(tier string) *AIState {
	profile, ok := m.Config.SkillTiers[tier]
	if !ok {
		profile = DefaultSkillTiers()["regular"]
		tier = "regular"
	}
	// One-shot jitter keeps same-tier bots from hive-mind behavior.
	r := m.Rand
	profile.ReactionInterval = Jitter(r, profile.ReactionInterval, 0.15, 0.1, 2)
	profile.PerceptionRange = Jitter(r, profile.PerceptionRange, 0.15, 100, 800)
	profile.AimAccuracy = Jitter(r, profile.AimAccuracy, 0.15, 0.05, 1)
	profile.Aggression = Jitter(r, profile.Aggression, 0.15, 0.05, 1)
	profile.StrafeStrength = Jitter(r, profile.StrafeStrength, 0.15, 0, 1)
	profile.AbilityChance = Jitter(r, profile.AbilityChance, 0.15, 0, 1)
	return &AIState{
		Profile:   profile,
		Tier:      tier,
		StrafeDir: pickStrafeDir(r.Float64()),
	}
}

func pickStrafeDir(roll float64) float64 {
	if roll < 0.5 {
		return -1
	}
	return 1
}

func (m *Match) rollTier() string {
	// Sorted keys keep tier rolls reproducible for a given seed.
	names := make([]string, 0, len(m.Config.Distribution))
	for name := range m.Config.Distribution {
		names = append(names, name)
	}
	sort.Strings(names)

	roll := m.Rand.Float64()
	acc := 0.0
	last := "regular"
	for _, name := range names {
		acc += m.Config.Distribution[name]
		last = name
		if roll < acc {
			return name
		}
	}
	return last
}

// Human returns the human-controlled combatant, or nil in exhibition mode.
func (m *Match) Human() *Combatant {
	for _, c := range m.Roster {
		if c.Mode == ControlHuman {
			return c
		}
	}
	return nil
}

// AliveCount returns the number of living combatants.
func (m *Match) AliveCount() int {
	n := 0
	for _, c := range m.Roster {
		if c.Alive {
			n++
		}
	}
	return n
}

// Tick is the current update tick number.
func (m *Match) Tick() uint64 {
	return m.tick
}

// BeginTick advances match time and the tick counter.
func (m *Match) BeginTick(dt float64) {
	m.tick++
	m.Elapsed += dt
}

// ApplyDamage subtracts from shield first, then health, floors at zero, and
// marks death exactly once. A nil attacker is environmental damage and
// publishes zoneDamage instead of characterDamaged. Damaging an already
// dead combatant is a no-op.
func (m *Match) ApplyDamage(attacker, target *Combatant, amount float64) {
	if target == nil || !target.Alive || amount <= 0 {
		return
	}
	absorbed := math.Min(target.Shield, amount)
	target.Shield -= absorbed
	target.Health -= amount - absorbed
	if target.Health < 0 {
		target.Health = 0
	}

	if attacker != nil {
		m.Events.Publish(EventCharacterDamaged, CharacterDamaged{Attacker: attacker, Target: target, Damage: amount})
	} else {
		m.Events.Publish(EventZoneDamage, ZoneDamage{Character: target, Damage: amount})
	}

	if target.Health == 0 {
		target.Alive = false
		target.Vel = cp.Vector{}
		m.Stats.For(target.ID).Placement = m.AliveCount() + 1
		m.Events.Publish(EventCharacterKilled, CharacterKilled{Attacker: attacker, Target: target})
	}
}

// UseHealthKit consumes one kit if available and healing is possible.
func (m *Match) UseHealthKit(c *Combatant) bool {
	if c == nil || !c.Alive || c.HealthKits <= 0 || c.Health >= c.MaxHealth {
		return false
	}
	c.HealthKits--
	c.Health = math.Min(c.Health+m.Config.HealthKitHeal, c.MaxHealth)
	m.Events.Publish(EventHealthKitUsed, HealthKitUsed{Character: c})
	return true
}

// AdvanceCooldowns ticks weapon and ability cooldowns for every combatant.
func (m *Match) AdvanceCooldowns(dt float64) {
	for _, c := range m.Roster {
		if !c.Alive {
			continue
		}
		for _, w := range c.Slots {
			if w != nil && w.Cooldown > 0 {
				w.Cooldown = math.Max(0, w.Cooldown-dt)
			}
		}
		if c.AbilityCooldown > 0 {
			c.AbilityCooldown = math.Max(0, c.AbilityCooldown-dt)
		}
	}
}

// SweepExpired clears expired stun windows and drops expired effects, once
// per tick.
func (m *Match) SweepExpired() {
	now := m.Elapsed
	for _, c := range m.Roster {
		if c.Stun.Active && c.Stun.Expired(now) {
			c.Stun.Clear()
		}
	}
	kept := m.Effects[:0]
	for _, e := range m.Effects {
		if !e.Window.Expired(now) {
			kept = append(kept, e)
		}
	}
	m.Effects = kept
}

// RemoveDeadBots drops bot-controlled corpses from the roster on the tick
// they die and returns them so callers can drop loot and release physics
// bodies. The human corpse stays for the renderer.
func (m *Match) RemoveDeadBots() []*Combatant {
	var removed []*Combatant
	kept := m.Roster[:0]
	for _, c := range m.Roster {
		if c.Mode == ControlBot && !c.Alive {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	m.Roster = kept
	return removed
}

// EvaluateEnd checks the end condition and transitions the phase at most
// once: victory when exactly one combatant is alive and it is the human,
// game over when the human is dead. Exhibition matches end as victory for
// the last bot standing.
func (m *Match) EvaluateEnd() bool {
	if m.Phase != PhasePlaying {
		return false
	}
	human := m.Human()
	alive := m.AliveCount()

	if human == nil {
		if alive <= 1 {
			m.Phase = PhaseVictory
			m.Winner = m.lastAlive()
			return true
		}
		return false
	}
	if !human.Alive {
		m.Phase = PhaseGameOver
		return true
	}
	if alive == 1 {
		m.Phase = PhaseVictory
		m.Winner = human
		return true
	}
	return false
}

func (m *Match) lastAlive() *Combatant {
	for _, c := range m.Roster {
		if c.Alive {
			return c
		}
	}
	return nil
}

// FinalizeOnce runs end-of-match bookkeeping exactly once, handing the
// whole statistics block to the consumer. Later ticks are no-ops.
func (m *Match) FinalizeOnce(consumer func(*Stats)) bool {
	if m.finalized {
		return false
	}
	m.finalized = true
	if m.Winner != nil {
		m.Stats.For(m.Winner.ID).Placement = 1
	}
	if consumer != nil {
		consumer(m.Stats)
	}
	return true
}
