package agent

import (
	"testing"

	"github.com/Winipedia/notty/engine"
)

func TestPlayDecisionDiscardsWinningGroup(t *testing.T) {
	run := []engine.Card{cc(engine.ColorBlue, 4), cc(engine.ColorBlue, 5), cc(engine.ColorBlue, 6)}
	g := rig(t, [][]engine.Card{run, {cc(engine.ColorGreen, 1), cc(engine.ColorGreen, 3)}})

	a := newTestAgent(greedyConfig())
	d := NewDriver(a, testLogger())
	state := Featurize(g)

	action, err := d.PlayDecision(g)
	if err != nil {
		t.Fatalf("PlayDecision: %v", err)
	}
	if action != engine.ActionDiscardGroup {
		t.Fatalf("action = %v, want discard_group", action)
	}
	if !g.IsTerminal() || g.WinnerIndex() != 0 {
		t.Fatalf("discarding the whole hand did not win: terminal=%v winner=%d", g.IsTerminal(), g.WinnerIndex())
	}
	// Reward 100 (win) + 16 (group of 3); terminal bootstrap is 0, so
	// Q = 0 + 0.1 * 116 = 11.6.
	if got := a.Q(state, engine.ActionDiscardGroup); !almostEqual(got, 11.6) {
		t.Errorf("Q after winning discard = %v, want 11.6", got)
	}
}

func TestPlayDecisionCompletesExchange(t *testing.T) {
	g := rig(t, [][]engine.Card{
		{cc(engine.ColorBlue, 4), cc(engine.ColorRed, 7)},
		{cc(engine.ColorGreen, 1)},
	})
	a := newTestAgent(greedyConfig())
	a.set(Featurize(g), engine.ActionDrawAndDiscard, 5.0)
	d := NewDriver(a, testLogger())

	action, err := d.PlayDecision(g)
	if err != nil {
		t.Fatalf("PlayDecision: %v", err)
	}
	if action != engine.ActionDrawAndDiscard {
		t.Fatalf("action = %v, want draw_and_discard", action)
	}
	if g.DecisionCtx() != engine.CtxAwaitingAction {
		t.Error("exchange left pending after PlayDecision")
	}
	if size := g.CurrentPlayer().Hand.Size(); size != 2 {
		t.Errorf("hand size after exchange = %d, want 2", size)
	}
	if !g.Flags().DrawDiscarded {
		t.Error("exchange flag not consumed")
	}
}

func TestPlayTurnPassesControl(t *testing.T) {
	g := rig(t, [][]engine.Card{
		{cc(engine.ColorBlue, 4), cc(engine.ColorRed, 7)},
		{cc(engine.ColorGreen, 1), cc(engine.ColorYellow, 9)},
	})
	d := NewDriver(newTestAgent(greedyConfig()), testLogger())

	if err := d.PlayTurn(g); err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if !g.IsTerminal() && g.CurrentIndex() != 1 {
		t.Errorf("turn did not pass: current = %d", g.CurrentIndex())
	}
}

func TestDriverPlaysFullGame(t *testing.T) {
	g, err := engine.NewGame(engine.DefaultRules(), []engine.PlayerKind{engine.Computer, engine.Computer}, testRNG())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	cfg := DefaultConfig()
	cfg.SaveEvery = 0
	d := NewDriver(newTestAgent(cfg), testLogger())

	for turns := 0; !g.IsTerminal(); turns++ {
		if turns > 10000 {
			t.Fatal("game did not terminate within 10000 turns")
		}
		if err := d.PlayTurn(g); err != nil {
			t.Fatalf("PlayTurn: %v", err)
		}
	}
	if g.AbortError() != nil {
		t.Fatalf("game aborted: %v", g.AbortError())
	}
	if g.WinnerIndex() == engine.NoWinner && !g.IsStalemate() {
		t.Error("terminal game has neither winner nor stalemate")
	}
	if stats := d.Agent().Stats(); stats.TotalActions == 0 || stats.StatesLearned == 0 {
		t.Errorf("driver produced no learning: %+v", stats)
	}
}
