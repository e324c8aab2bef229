package sim

// EventType names a match event on the bus.
type EventType string

const (
	EventWeaponFired        EventType = "weaponFired"
	EventCharacterDamaged   EventType = "characterDamaged"
	EventCharacterKilled    EventType = "characterKilled"
	EventAbilityUsed        EventType = "abilityUsed"
	EventHealthKitUsed      EventType = "healthKitUsed"
	EventConsumablePickedUp EventType = "consumablePickedUp"
	EventWeaponPickedUp     EventType = "weaponPickedUp"
	EventZoneDamage         EventType = "zoneDamage"
)

// Event is a named match event with a typed payload.
type Event struct {
	Type EventType
	Data any
}

// WeaponFired is the payload for EventWeaponFired.
type WeaponFired struct {
	Character *Combatant
	Weapon    *Weapon
}

// CharacterDamaged is the payload for EventCharacterDamaged. Attacker is nil
// for environmental damage.
type CharacterDamaged struct {
	Attacker *Combatant
	Target   *Combatant
	Damage   float64
}

// CharacterKilled is the payload for EventCharacterKilled. Attacker is nil
// for environmental kills.
type CharacterKilled struct {
	Attacker *Combatant
	Target   *Combatant
}

// AbilityUsed is the payload for EventAbilityUsed.
type AbilityUsed struct {
	Character *Combatant
	Ability   AbilityKind
}

// HealthKitUsed is the payload for EventHealthKitUsed.
type HealthKitUsed struct {
	Character *Combatant
}

// ConsumablePickedUp is the payload for EventConsumablePickedUp.
type ConsumablePickedUp struct {
	Character *Combatant
	Kind      ConsumableKind
}

// WeaponPickedUp is the payload for EventWeaponPickedUp.
type WeaponPickedUp struct {
	Character *Combatant
	Kind      WeaponKind
	Tier      int
}

// ZoneDamage is the payload for EventZoneDamage.
type ZoneDamage struct {
	Character *Combatant
	Damage    float64
}

// Handler receives a published event.
type Handler func(evt Event)

// Bus dispatches events synchronously to subscribers. The simulation
// publishes regardless of subscriber presence.
type Bus struct {
	handlers map[EventType][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(t EventType, h Handler) {
	if b == nil || h == nil {
		return
	}
	if b.handlers == nil {
		b.handlers = make(map[EventType][]Handler)
	}
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish delivers an event to all handlers registered for its type.
func (b *Bus) Publish(t EventType, data any) {
	if b == nil || len(b.handlers) == 0 {
		return
	}
	evt := Event{Type: t, Data: data}
	for _, h := range b.handlers[t] {
		if h != nil {
			h(evt)
		}
	}
}
