package engine

import "testing"

func TestDrawCardsAtCapRejected(t *testing.T) {
	full := []Card{
		c(ColorRed, 1), c(ColorRed, 1), c(ColorRed, 3), c(ColorRed, 3), c(ColorRed, 5),
		c(ColorRed, 5), c(ColorRed, 7), c(ColorRed, 7), c(ColorRed, 9), c(ColorRed, 9),
		c(ColorBlue, 1), c(ColorBlue, 1), c(ColorBlue, 3), c(ColorBlue, 3), c(ColorBlue, 5),
		c(ColorBlue, 5), c(ColorBlue, 7), c(ColorBlue, 7), c(ColorBlue, 9), c(ColorBlue, 9),
	}
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{full, {c(ColorGreen, 1)}})

	err := g.Apply(DrawCards(1))
	limErr, ok := err.(*HandLimitError)
	if !ok {
		t.Fatalf("err = %v (%T), want *HandLimitError", err, err)
	}
	if limErr.HandSize != 20 || limErr.Requested != 1 {
		t.Errorf("HandLimitError = %+v, want HandSize 20 Requested 1", limErr)
	}
	if g.CurrentPlayer().Hand.Size() != 20 {
		t.Errorf("rejected draw mutated hand: size = %d, want 20", g.CurrentPlayer().Hand.Size())
	}
	if g.Flags().Drew {
		t.Error("rejected draw consumed the draw flag")
	}
}

func TestDrawCardsCountRange(t *testing.T) {
	g := newTestGame(t)
	for _, k := range []int{0, -1, 4} {
		if _, ok := g.Apply(DrawCards(k)).(*IllegalActionError); !ok {
			t.Errorf("DrawCards(%d) not rejected as illegal", k)
		}
	}
	if g.Flags().Drew {
		t.Error("rejected draws consumed the draw flag")
	}
}

func TestDrawCardsOncePerTurn(t *testing.T) {
	g := newTestGame(t)
	if err := g.Apply(DrawCards(2)); err != nil {
		t.Fatalf("first draw: %v", err)
	}
	if g.CurrentPlayer().Hand.Size() != 6 {
		t.Errorf("hand size = %d, want 6", g.CurrentPlayer().Hand.Size())
	}
	if _, ok := g.Apply(DrawCards(1)).(*IllegalActionError); !ok {
		t.Error("second draw in one turn not rejected")
	}
}

func TestStealMovesOneCard(t *testing.T) {
	g := newTestGame(t)
	victimBefore := multiset(g.Player(1).Hand.Cards())
	if err := g.Apply(StealCard(1)); err != nil {
		t.Fatalf("StealCard: %v", err)
	}
	if g.CurrentPlayer().Hand.Size() != 5 {
		t.Errorf("thief hand = %d cards, want 5", g.CurrentPlayer().Hand.Size())
	}
	if g.Player(1).Hand.Size() != 3 {
		t.Errorf("victim hand = %d cards, want 3", g.Player(1).Hand.Size())
	}
	// Every card still held by the victim was held before the steal.
	for card, n := range multiset(g.Player(1).Hand.Cards()) {
		if n > victimBefore[card] {
			t.Errorf("victim gained a copy of %s during the steal", card)
		}
	}
	if !g.Flags().Stole {
		t.Error("steal flag not set")
	}
}

func TestStealCanHandVictimTheWin(t *testing.T) {
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{
		{c(ColorBlue, 1), c(ColorRed, 2)},
		{c(ColorGreen, 9)},
	})
	if err := g.Apply(StealCard(1)); err != nil {
		t.Fatalf("StealCard: %v", err)
	}
	if !g.IsTerminal() || g.WinnerIndex() != 1 {
		t.Errorf("emptied victim did not win: terminal=%v winner=%d", g.IsTerminal(), g.WinnerIndex())
	}
	if !g.CurrentPlayer().Hand.ContainsAll([]Card{c(ColorGreen, 9)}) {
		t.Error("stolen card missing from the thief's hand")
	}
}

func TestStealRejectsBadTargets(t *testing.T) {
	g := newTestGame(t)
	for _, target := range []int{-1, 0, 2} {
		if _, ok := g.Apply(StealCard(target)).(*IllegalActionError); !ok {
			t.Errorf("StealCard(%d) not rejected as illegal", target)
		}
	}
	if g.Flags().Stole {
		t.Error("rejected steals consumed the steal flag")
	}
}

func TestDrawAndDiscardFlow(t *testing.T) {
	g := newTestGame(t)
	if err := g.Apply(DrawAndDiscard()); err != nil {
		t.Fatalf("DrawAndDiscard: %v", err)
	}
	if g.CurrentPlayer().Hand.Size() != 5 {
		t.Fatalf("hand size after draw half = %d, want 5", g.CurrentPlayer().Hand.Size())
	}
	if g.DecisionCtx() != CtxAwaitingDiscard {
		t.Fatalf("ctx = %v, want CtxAwaitingDiscard", g.DecisionCtx())
	}

	// Everything but the forced discard is rejected while the exchange is open.
	for _, a := range []Action{DrawCards(1), StealCard(1), DrawAndDiscard(), NextTurn()} {
		if _, ok := g.Apply(a).(*IllegalActionError); !ok {
			t.Errorf("%v accepted while a discard was pending", a.Type)
		}
	}

	// The discarded card must actually be in hand.
	var absent Card
	for n := uint8(MinNumber); n <= MaxNumber; n++ {
		candidate := c(ColorBlack, n)
		if !g.CurrentPlayer().Hand.ContainsAll([]Card{candidate}) {
			absent = candidate
			break
		}
	}
	if _, ok := g.Apply(DiscardOne(absent)).(*IllegalActionError); !ok {
		t.Errorf("DiscardOne(%s) of an absent card not rejected", absent)
	}

	// Any held card completes the exchange, not only the drawn one.
	card := g.CurrentPlayer().Hand.Cards()[0]
	if err := g.Apply(DiscardOne(card)); err != nil {
		t.Fatalf("DiscardOne: %v", err)
	}
	if g.CurrentPlayer().Hand.Size() != 4 {
		t.Errorf("hand size after exchange = %d, want 4", g.CurrentPlayer().Hand.Size())
	}
	if g.DecisionCtx() != CtxAwaitingAction {
		t.Errorf("ctx = %v, want CtxAwaitingAction", g.DecisionCtx())
	}

	// One exchange per turn.
	if _, ok := g.Apply(DrawAndDiscard()).(*IllegalActionError); !ok {
		t.Error("second exchange in one turn not rejected")
	}
}

func TestDiscardGroupWinsWhenHandEmpties(t *testing.T) {
	run := []Card{c(ColorBlue, 4), c(ColorBlue, 5), c(ColorBlue, 6)}
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{
		run,
		{c(ColorGreen, 1), c(ColorGreen, 3)},
	})
	if err := g.Apply(DiscardGroup(run)); err != nil {
		t.Fatalf("DiscardGroup: %v", err)
	}
	if !g.IsTerminal() || g.WinnerIndex() != 0 {
		t.Fatalf("empty hand did not win: terminal=%v winner=%d", g.IsTerminal(), g.WinnerIndex())
	}
	if g.IsStalemate() {
		t.Error("won game reported as stalemate")
	}
	if _, ok := g.Apply(NextTurn()).(*IllegalActionError); !ok {
		t.Error("finished game accepted a further action")
	}
	if totalCards(g) != 90 {
		t.Errorf("conservation broken after winning discard: %d", totalCards(g))
	}
}

func TestDiscardGroupInvalidLeavesStateUnchanged(t *testing.T) {
	hand := []Card{c(ColorBlue, 4), c(ColorBlue, 6), c(ColorBlue, 7), c(ColorRed, 1)}
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{
		hand,
		{c(ColorGreen, 1)},
	})
	err := g.Apply(DiscardGroup([]Card{c(ColorBlue, 4), c(ColorBlue, 6), c(ColorBlue, 7)}))
	if _, ok := err.(*InvalidGroupError); !ok {
		t.Fatalf("err = %v (%T), want *InvalidGroupError", err, err)
	}
	if g.CurrentPlayer().Hand.Size() != len(hand) || !g.CurrentPlayer().Hand.ContainsAll(hand) {
		t.Errorf("rejected discard mutated hand: %v", g.CurrentPlayer().Hand.Cards())
	}
}

func TestDiscardGroupRequiresHeldCards(t *testing.T) {
	g := rigGame(t, []PlayerKind{Computer, Computer}, [][]Card{
		{c(ColorBlue, 4), c(ColorBlue, 5), c(ColorRed, 1)},
		{c(ColorGreen, 1)},
	})
	// A valid run, but Blue6 is not in hand.
	err := g.Apply(DiscardGroup([]Card{c(ColorBlue, 4), c(ColorBlue, 5), c(ColorBlue, 6)}))
	if _, ok := err.(*IllegalActionError); !ok {
		t.Fatalf("err = %v (%T), want *IllegalActionError", err, err)
	}
	if g.CurrentPlayer().Hand.Size() != 3 {
		t.Errorf("rejected discard mutated hand: size = %d, want 3", g.CurrentPlayer().Hand.Size())
	}
}

func TestPlayForMeDelegates(t *testing.T) {
	g := newTestGame(t)
	deckBefore := g.DeckSize()
	handBefore := g.CurrentPlayer().Hand.Size()

	if err := g.Apply(PlayForMe()); err != ErrDelegated {
		t.Fatalf("Apply(PlayForMe) = %v, want ErrDelegated", err)
	}
	if g.DeckSize() != deckBefore || g.CurrentPlayer().Hand.Size() != handBefore {
		t.Error("delegation request mutated game state")
	}
	if g.CurrentIndex() != 0 {
		t.Errorf("delegation request advanced the turn to %d", g.CurrentIndex())
	}
}
