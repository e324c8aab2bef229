package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/hollowstem/zonefall/maps"
	"github.com/hollowstem/zonefall/sim"
)

// Policy verbs a script may return. Anything else falls back to the
// built-in engage policy.
const (
	policyBuiltin = ""
	policyEngage  = "engage"
	policyRetreat = "retreat"
	policyWander  = "wander"
)

// engineFuncs are the perception facts exposed to policy scripts. Each is
// rebound per decision to the deciding bot.
var engineFuncs = []string{
	"has_target",
	"target_distance",
	"weapon_range",
	"health_frac",
	"aggression",
}

// policyScripts compiles and caches the optional tengo decision override a
// skill tier may carry. A script error disables the script for the match
// and the built-in policy takes over.
type policyScripts struct {
	compiled map[string]*tengo.Compiled
	failed   map[string]bool
}

func newPolicyScripts() *policyScripts {
	return &policyScripts{
		compiled: make(map[string]*tengo.Compiled),
		failed:   make(map[string]bool),
	}
}

// action consults the bot's tier script, if any, and returns a policy verb.
func (ps *policyScripts) action(m *sim.Match, c *sim.Combatant, ai *sim.AIState) string {
	path := ai.Profile.PolicyScript
	if ps == nil || path == "" || ps.failed[path] {
		return policyBuiltin
	}

	cpl, err := ps.get(path)
	if err != nil {
		log.Printf("ai: policy script %s: %v", path, err)
		ps.failed[path] = true
		return policyBuiltin
	}

	ps.bind(cpl, m, c, ai)
	if err := cpl.Run(); err != nil {
		log.Printf("ai: policy script %s run: %v", path, err)
		ps.failed[path] = true
		return policyBuiltin
	}

	switch v := strings.TrimSpace(cpl.Get("action").String()); v {
	case policyEngage, policyRetreat, policyWander:
		return v
	default:
		return policyBuiltin
	}
}

func (ps *policyScripts) get(path string) (*tengo.Compiled, error) {
	if cpl, ok := ps.compiled[path]; ok {
		return cpl, nil
	}

	src, err := maps.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, name := range engineFuncs {
		if err := script.Add(name, noopFact(name)); err != nil {
			return nil, err
		}
	}

	cpl, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	ps.compiled[path] = cpl
	return cpl, nil
}

// bind points the engine functions at the deciding bot.
func (ps *policyScripts) bind(cpl *tengo.Compiled, m *sim.Match, c *sim.Combatant, ai *sim.AIState) {
	dist := 0.0
	if ai.Target != nil {
		dist = ai.Target.Pos.Distance(c.Pos)
	}
	weaponRange := 0.0
	if w := c.ActiveWeapon(); w != nil {
		weaponRange = w.Range()
	}
	healthFrac := 0.0
	if c.MaxHealth > 0 {
		healthFrac = c.Health / c.MaxHealth
	}

	_ = cpl.Set("has_target", boolFact("has_target", ai.Target != nil))
	_ = cpl.Set("target_distance", floatFact("target_distance", dist))
	_ = cpl.Set("weapon_range", floatFact("weapon_range", weaponRange))
	_ = cpl.Set("health_frac", floatFact("health_frac", healthFrac))
	_ = cpl.Set("aggression", floatFact("aggression", ai.Profile.Aggression))
}

func noopFact(name string) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.UndefinedValue, nil
	}}
}

func boolFact(name string, v bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if v {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
}

func floatFact(name string, v float64) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: v}, nil
	}}
}
