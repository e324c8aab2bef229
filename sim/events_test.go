package sim

import "testing"

func TestBus(t *testing.T) {
	t.Run("delivers typed payloads", func(t *testing.T) {
		bus := NewBus()
		var got CharacterDamaged
		bus.Subscribe(EventCharacterDamaged, func(evt Event) {
			d, ok := evt.Data.(CharacterDamaged)
			if !ok {
				t.Fatalf("unexpected payload type %T", evt.Data)
			}
			got = d
		})

		target := &Combatant{ID: 2}
		bus.Publish(EventCharacterDamaged, CharacterDamaged{Target: target, Damage: 12})
		if got.Target != target || got.Damage != 12 {
			t.Errorf("expected payload to round-trip, got %+v", got)
		}
	})

	t.Run("handlers run in subscription order", func(t *testing.T) {
		bus := NewBus()
		var order []int
		bus.Subscribe(EventWeaponFired, func(Event) { order = append(order, 1) })
		bus.Subscribe(EventWeaponFired, func(Event) { order = append(order, 2) })
		bus.Publish(EventWeaponFired, WeaponFired{})
		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("expected [1 2], got %v", order)
		}
	})

	t.Run("publish without subscribers is a no-op", func(t *testing.T) {
		bus := NewBus()
		bus.Publish(EventZoneDamage, ZoneDamage{Damage: 5})
	})

	t.Run("events only reach their own type", func(t *testing.T) {
		bus := NewBus()
		called := false
		bus.Subscribe(EventCharacterKilled, func(Event) { called = true })
		bus.Publish(EventCharacterDamaged, CharacterDamaged{})
		if called {
			t.Error("expected handler for a different type to stay silent")
		}
	})

	t.Run("nil handler is ignored", func(t *testing.T) {
		bus := NewBus()
		bus.Subscribe(EventAbilityUsed, nil)
		bus.Publish(EventAbilityUsed, AbilityUsed{})
	})
}
