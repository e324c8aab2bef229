package sim

// CombatantStats accumulates one combatant's scoring over the match.
type CombatantStats struct {
	DamageDealt float64
	DamageTaken float64
	Kills       int
	HealthKits  int
	Shields     int
	AbilityUses int
	Placement   int // 1 for the winner, 0 until eliminated or match end
}

// Stats tracks per-combatant statistics by subscribing to the event bus.
// It is handed off whole to an external progression consumer at match end.
type Stats struct {
	byID map[int]*CombatantStats
}

// NewStats creates a tracker subscribed to the bus.
func NewStats(bus *Bus) *Stats {
	s := &Stats{byID: make(map[int]*CombatantStats)}
	if bus == nil {
		return s
	}
	bus.Subscribe(EventCharacterDamaged, func(evt Event) {
		d, ok := evt.Data.(CharacterDamaged)
		if !ok {
			return
		}
		if d.Attacker != nil {
			s.For(d.Attacker.ID).DamageDealt += d.Damage
		}
		if d.Target != nil {
			s.For(d.Target.ID).DamageTaken += d.Damage
		}
	})
	bus.Subscribe(EventZoneDamage, func(evt Event) {
		d, ok := evt.Data.(ZoneDamage)
		if !ok || d.Character == nil {
			return
		}
		s.For(d.Character.ID).DamageTaken += d.Damage
	})
	bus.Subscribe(EventCharacterKilled, func(evt Event) {
		d, ok := evt.Data.(CharacterKilled)
		if !ok || d.Attacker == nil {
			return
		}
		s.For(d.Attacker.ID).Kills++
	})
	bus.Subscribe(EventHealthKitUsed, func(evt Event) {
		d, ok := evt.Data.(HealthKitUsed)
		if !ok || d.Character == nil {
			return
		}
		s.For(d.Character.ID).HealthKits++
	})
	bus.Subscribe(EventConsumablePickedUp, func(evt Event) {
		d, ok := evt.Data.(ConsumablePickedUp)
		if !ok || d.Character == nil || d.Kind != ConsumableShieldCell {
			return
		}
		s.For(d.Character.ID).Shields++
	})
	bus.Subscribe(EventAbilityUsed, func(evt Event) {
		d, ok := evt.Data.(AbilityUsed)
		if !ok || d.Character == nil {
			return
		}
		s.For(d.Character.ID).AbilityUses++
	})
	return s
}

// For returns the stats row for a combatant ID, creating it on first use.
func (s *Stats) For(id int) *CombatantStats {
	if s.byID == nil {
		s.byID = make(map[int]*CombatantStats)
	}
	row, ok := s.byID[id]
	if !ok {
		row = &CombatantStats{}
		s.byID[id] = row
	}
	return row
}

// All returns every recorded row keyed by combatant ID.
func (s *Stats) All() map[int]*CombatantStats {
	return s.byID
}
