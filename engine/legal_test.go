package engine

import "testing"

func hasType(types []ActionType, want ActionType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func TestLegalActionsFreshTurn(t *testing.T) {
	g := newTestGame(t)
	legal := g.LegalActionTypes()
	for _, want := range []ActionType{ActionDrawCards, ActionStealCard, ActionDrawAndDiscard, ActionNextTurn, ActionPlayForMe} {
		if !hasType(legal, want) {
			t.Errorf("fresh turn: %v missing from legal set %v", want, legal)
		}
	}
	if hasType(legal, ActionDiscardOne) {
		t.Errorf("discard_one legal without a pending exchange")
	}
}

func TestLegalActionsFlagsConsume(t *testing.T) {
	g := newTestGame(t)
	if err := g.Apply(DrawCards(1)); err != nil {
		t.Fatalf("DrawCards: %v", err)
	}
	if hasType(g.LegalActionTypes(), ActionDrawCards) {
		t.Error("draw_cards legal after drawing this turn")
	}
	if err := g.Apply(StealCard(1)); err != nil {
		t.Fatalf("StealCard: %v", err)
	}
	if hasType(g.LegalActionTypes(), ActionStealCard) {
		t.Error("steal_card legal after stealing this turn")
	}

	// Flags reset for the player about to act.
	if err := g.Apply(NextTurn()); err != nil {
		t.Fatalf("NextTurn: %v", err)
	}
	legal := g.LegalActionTypes()
	if !hasType(legal, ActionDrawCards) || !hasType(legal, ActionStealCard) {
		t.Errorf("flags not reset on turn advance: legal = %v", legal)
	}
}

func TestLegalActionsPendingDiscard(t *testing.T) {
	g := newTestGame(t)
	if err := g.Apply(DrawAndDiscard()); err != nil {
		t.Fatalf("DrawAndDiscard: %v", err)
	}
	if g.DecisionCtx() != CtxAwaitingDiscard {
		t.Fatalf("ctx = %v, want CtxAwaitingDiscard", g.DecisionCtx())
	}
	legal := g.LegalActionTypes()
	if len(legal) != 1 || legal[0] != ActionDiscardOne {
		t.Errorf("pending exchange: legal = %v, want [discard_one]", legal)
	}
}

func TestLegalActionsHandAtCap(t *testing.T) {
	// 20 cards with no valid group: odd numbers only (no runs), each number
	// in just two colors (no sets).
	full := []Card{
		c(ColorRed, 1), c(ColorRed, 1), c(ColorRed, 3), c(ColorRed, 3), c(ColorRed, 5),
		c(ColorRed, 5), c(ColorRed, 7), c(ColorRed, 7), c(ColorRed, 9), c(ColorRed, 9),
		c(ColorBlue, 1), c(ColorBlue, 1), c(ColorBlue, 3), c(ColorBlue, 3), c(ColorBlue, 5),
		c(ColorBlue, 5), c(ColorBlue, 7), c(ColorBlue, 7), c(ColorBlue, 9), c(ColorBlue, 9),
	}
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{full, {c(ColorGreen, 1)}})

	legal := g.LegalActionTypes()
	if hasType(legal, ActionDrawCards) {
		t.Error("draw_cards legal at hand cap")
	}
	if hasType(legal, ActionStealCard) {
		t.Error("steal_card legal at hand cap")
	}
	// The exchange stays legal at cap: its forced discard restores the cap.
	if !hasType(legal, ActionDrawAndDiscard) {
		t.Error("draw_and_discard not legal at hand cap")
	}
	if hasType(legal, ActionDiscardGroup) {
		t.Error("discard_group legal without a valid group")
	}
}

func TestLegalActionsDiscardGroupAppears(t *testing.T) {
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{
		{c(ColorBlue, 4), c(ColorBlue, 5), c(ColorBlue, 6), c(ColorRed, 1)},
		{c(ColorGreen, 1), c(ColorGreen, 3)},
	})
	if !hasType(g.LegalActionTypes(), ActionDiscardGroup) {
		t.Error("discard_group missing with a valid run in hand")
	}
}

func TestLegalActionsStealNeedsNonEmptyOpponent(t *testing.T) {
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{
		{c(ColorBlue, 4)},
		{c(ColorGreen, 1)},
	})
	if !hasType(g.LegalActionTypes(), ActionStealCard) {
		t.Fatal("steal_card missing with a non-empty opponent")
	}
	g.players[1].Hand.cards = nil
	g.winner = NoWinner // keep the game running despite the empty hand
	if hasType(g.LegalActionTypes(), ActionStealCard) {
		t.Error("steal_card legal with all opponents empty-handed")
	}
}

func TestLegalActionsTerminal(t *testing.T) {
	g := newTestGame(t)
	g.winner = 0
	if got := g.LegalActionTypes(); got != nil {
		t.Errorf("terminal game has legal actions: %v", got)
	}
	if g.DecisionCtx() != CtxTerminal {
		t.Errorf("ctx = %v, want CtxTerminal", g.DecisionCtx())
	}
}
