package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/hollowstem/zonefall/sim"
)

func scriptedProfile(script string) sim.SkillProfile {
	p := sharpshooter()
	p.PolicyScript = script
	p.Aggression = 0.8
	return p
}

func TestPolicyScripts(t *testing.T) {
	t.Run("no script means the built-in policy", func(t *testing.T) {
		m := testMatch(t, testConfig())
		bot := addBot(m, cp.Vector{}, sharpshooter())

		ps := newPolicyScripts()
		if got := ps.action(m, bot, bot.AI); got != policyBuiltin {
			t.Errorf("action = %q, want the built-in fallback", got)
		}
	})

	t.Run("healthy bots with a target engage", func(t *testing.T) {
		m := testMatch(t, testConfig())
		bot := addBot(m, cp.Vector{}, scriptedProfile("aggressive.tengo"))
		bot.AI.Target = addFighter(m, cp.Vector{X: 100})

		ps := newPolicyScripts()
		if got := ps.action(m, bot, bot.AI); got != policyEngage {
			t.Errorf("action = %q, want %q", got, policyEngage)
		}
	})

	t.Run("hurt bots retreat", func(t *testing.T) {
		m := testMatch(t, testConfig())
		bot := addBot(m, cp.Vector{}, scriptedProfile("aggressive.tengo"))
		bot.AI.Target = addFighter(m, cp.Vector{X: 100})
		bot.Health = 20

		ps := newPolicyScripts()
		if got := ps.action(m, bot, bot.AI); got != policyRetreat {
			t.Errorf("action = %q, want %q", got, policyRetreat)
		}
	})

	t.Run("no target wanders", func(t *testing.T) {
		m := testMatch(t, testConfig())
		bot := addBot(m, cp.Vector{}, scriptedProfile("aggressive.tengo"))

		ps := newPolicyScripts()
		if got := ps.action(m, bot, bot.AI); got != policyWander {
			t.Errorf("action = %q, want %q", got, policyWander)
		}
	})

	t.Run("missing scripts disable themselves", func(t *testing.T) {
		m := testMatch(t, testConfig())
		bot := addBot(m, cp.Vector{}, scriptedProfile("missing.tengo"))
		bot.AI.Target = addFighter(m, cp.Vector{X: 100})

		ps := newPolicyScripts()
		if got := ps.action(m, bot, bot.AI); got != policyBuiltin {
			t.Errorf("action = %q, want the fallback after a load failure", got)
		}
		if !ps.failed["missing.tengo"] {
			t.Error("expected the script marked failed")
		}
		// Later calls skip the load entirely.
		if got := ps.action(m, bot, bot.AI); got != policyBuiltin {
			t.Errorf("action = %q, want the fallback from the failed cache", got)
		}
	})

	t.Run("compiled scripts are cached", func(t *testing.T) {
		m := testMatch(t, testConfig())
		bot := addBot(m, cp.Vector{}, scriptedProfile("aggressive.tengo"))
		bot.AI.Target = addFighter(m, cp.Vector{X: 100})

		ps := newPolicyScripts()
		ps.action(m, bot, bot.AI)
		if len(ps.compiled) != 1 {
			t.Fatalf("compiled cache = %d entries, want 1", len(ps.compiled))
		}
		ps.action(m, bot, bot.AI)
		if len(ps.compiled) != 1 {
			t.Errorf("compiled cache = %d entries, want still 1", len(ps.compiled))
		}
	})
}
