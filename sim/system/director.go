package system

import (
	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

// Director runs one match update step in the fixed tick order: time, safe
// zone, human input and actions, human pickup negotiation, combatant
// timers, AI, physics, combat, effect expiry, bot corpse removal, and the
// end-condition check. The order is significant and never varies.
type Director struct {
	Match   *sim.Match
	Zone    *ZoneSystem
	Physics *PhysicsSystem
	Combat  *CombatSystem
	Ability *AbilitySystem
	AI      *AISystem
	Pickups *PickupSystem

	// OnFinish receives the whole statistics block exactly once when the
	// match ends.
	OnFinish func(*sim.Stats)

	input sim.InputProvider
}

// NewDirector wires the systems for a match and spawns its initial loot.
func NewDirector(m *sim.Match, input sim.InputProvider) *Director {
	physics := NewPhysicsSystem(m.Config)
	for _, c := range m.Roster {
		physics.Add(c)
	}
	combat := NewCombatSystem(physics)
	ability := NewAbilitySystem()
	pickups := NewPickupSystem()

	d := &Director{
		Match:   m,
		Zone:    NewZoneSystem(),
		Physics: physics,
		Combat:  combat,
		Ability: ability,
		AI:      NewAISystem(physics, combat, ability, pickups),
		Pickups: pickups,
		input:   input,
	}
	pickups.SpawnInitial(m)
	return d
}

// Step advances the match by one fixed timestep. Once the phase leaves
// playing, further steps are no-ops; finalization has already run.
func (d *Director) Step(dt float64) {
	m := d.Match
	if m == nil || m.Phase != sim.PhasePlaying {
		return
	}

	m.BeginTick(dt)
	d.Zone.Update(m, dt)

	if h := m.Human(); h != nil && h.Alive {
		var frame sim.InputFrame
		frame.Slot = -1
		if d.input != nil {
			frame = d.input.Poll()
		}
		d.applyHuman(m, h, frame)
		d.Pickups.Negotiate(m, h, dt)
	}

	m.AdvanceCooldowns(dt)
	d.AI.Update(m, dt)
	d.Pickups.Sweep(m)
	d.Physics.Update(m, dt)
	d.Combat.Update(m, dt)
	d.Ability.Update(m, dt)

	for _, c := range m.RemoveDeadBots() {
		d.Pickups.DropWeapon(m, c)
		d.Physics.Remove(c)
	}

	if m.EvaluateEnd() {
		m.FinalizeOnce(d.OnFinish)
	}
}

// applyHuman turns the polled input frame into movement and resolves the
// discrete action requests against cooldown and eligibility state.
func (d *Director) applyHuman(m *sim.Match, h *sim.Combatant, frame sim.InputFrame) {
	if h.Stunned(m.Elapsed) {
		h.Vel = cp.Vector{}
		return
	}

	move := frame.Move
	if l := move.Length(); l > 1 {
		move = move.Mult(1 / l)
	}
	h.Vel = move.Mult(h.MoveSpeed)
	if move.Length() > 0 {
		h.Facing = move.ToAngle()
	}

	if frame.Slot >= 0 && frame.Slot < sim.WeaponSlots {
		h.ActiveSlot = frame.Slot
	}
	if frame.Fire {
		d.Combat.Fire(m, h, h.ActiveWeapon(), frame.AimAngle)
	}
	if frame.UseHealthKit {
		m.UseHealthKit(h)
	}
	if frame.UseAbility {
		d.Ability.Activate(m, h)
	}
}
