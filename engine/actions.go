package engine

import "fmt"

// Apply validates and applies one action for the current player. On
// rejection the game state is unchanged and the error explains why. After a
// successful mutation the win condition and game invariants are re-checked;
// an invariant violation aborts the game and is returned as *InvariantError.
func (g *Game) Apply(action Action) error {
	if g.abortErr != nil {
		return &IllegalActionError{Action: action.Type, Reason: "game aborted after invariant violation"}
	}
	if g.IsTerminal() {
		return &IllegalActionError{Action: action.Type, Reason: "game is over"}
	}
	if g.pendingDiscard && action.Type != ActionDiscardOne {
		return &IllegalActionError{Action: action.Type, Reason: "a draw-and-discard exchange is pending; a card must be discarded first"}
	}

	var err error
	switch action.Type {
	case ActionDrawCards:
		err = g.drawCards(action.Count)
	case ActionStealCard:
		err = g.stealCard(action.Target)
	case ActionDrawAndDiscard:
		err = g.drawAndDiscard()
	case ActionDiscardOne:
		err = g.discardOne(action.Card)
	case ActionDiscardGroup:
		err = g.discardGroup(action.Group)
	case ActionNextTurn:
		err = g.nextTurn()
	case ActionPlayForMe:
		return ErrDelegated
	default:
		return &IllegalActionError{Action: action.Type, Reason: "unknown action type"}
	}
	if err != nil {
		return err
	}

	if invErr := g.checkInvariants(); invErr != nil {
		return invErr
	}
	return nil
}

// drawCards draws k cards from the deck into the current hand. Rejected in
// full when the hand cannot take all k cards; never partially fills.
func (g *Game) drawCards(k int) error {
	if g.flags.Drew {
		return &IllegalActionError{Action: ActionDrawCards, Reason: "already drew this turn"}
	}
	if k < 1 || k > g.rules.MaxDrawCount {
		return &IllegalActionError{Action: ActionDrawCards, Reason: fmt.Sprintf("draw count %d outside [1, %d]", k, g.rules.MaxDrawCount)}
	}
	hand := g.CurrentPlayer().Hand
	if hand.Size()+k > g.rules.MaxHandSize {
		return &HandLimitError{HandSize: hand.Size(), Requested: k, Max: g.rules.MaxHandSize}
	}

	drawn, err := g.deck.DrawN(k)
	if err != nil {
		return err
	}
	if err := hand.AddAll(drawn); err != nil {
		// Unreachable after the cap check above; surface it rather than losing cards.
		g.deck.Return(drawn)
		return err
	}
	g.flags.Drew = true
	return nil
}

// stealCard shuffles the target's hand and moves one uniformly random card
// into the current hand.
func (g *Game) stealCard(target int) error {
	if g.flags.Stole {
		return &IllegalActionError{Action: ActionStealCard, Reason: "already stole this turn"}
	}
	if target < 0 || target >= len(g.players) {
		return &IllegalActionError{Action: ActionStealCard, Reason: fmt.Sprintf("target index %d out of range", target)}
	}
	if target == g.current {
		return &IllegalActionError{Action: ActionStealCard, Reason: "cannot steal from yourself"}
	}
	hand := g.CurrentPlayer().Hand
	if hand.IsFull() {
		return &HandLimitError{HandSize: hand.Size(), Requested: 1, Max: g.rules.MaxHandSize}
	}
	victim := g.players[target].Hand
	if victim.IsEmpty() {
		return &IllegalActionError{Action: ActionStealCard, Reason: "target has no cards to steal"}
	}

	victim.Shuffle(g.rng)
	card := victim.removeLast()
	if err := hand.Add(card); err != nil {
		victim.cards = append(victim.cards, card)
		return err
	}
	g.flags.Stole = true

	// The victim's hand may have just emptied; they win.
	g.checkWin()
	return nil
}

// drawAndDiscard draws exactly one card and leaves the exchange pending: the
// only legal follow-up is DiscardOne, returning any one card (not
// necessarily the drawn one) to the deck.
func (g *Game) drawAndDiscard() error {
	if g.flags.DrawDiscarded {
		return &IllegalActionError{Action: ActionDrawAndDiscard, Reason: "already exchanged this turn"}
	}
	card, err := g.deck.Draw()
	if err != nil {
		return err
	}
	if err := g.CurrentPlayer().Hand.Add(card); err != nil {
		g.deck.Return([]Card{card})
		return err
	}
	g.flags.DrawDiscarded = true
	g.pendingDiscard = true
	return nil
}

// discardOne completes a pending draw-and-discard exchange: the chosen card
// goes back to the deck, which reshuffles.
func (g *Game) discardOne(card Card) error {
	if !g.pendingDiscard {
		return &IllegalActionError{Action: ActionDiscardOne, Reason: "no draw-and-discard exchange is pending"}
	}
	hand := g.CurrentPlayer().Hand
	if !hand.Remove(card) {
		return &IllegalActionError{Action: ActionDiscardOne, Reason: fmt.Sprintf("card %s not in hand", card)}
	}
	g.deck.Return([]Card{card})
	g.pendingDiscard = false
	g.checkWin()
	return nil
}

// discardGroup validates the candidate, removes it from the hand, and
// returns the cards to the deck, which reshuffles. Not flag-limited.
func (g *Game) discardGroup(cards []Card) error {
	if ClassifyGroup(cards) == GroupInvalid {
		return &InvalidGroupError{Cards: cards}
	}
	hand := g.CurrentPlayer().Hand
	if !hand.RemoveAll(cards) {
		return &IllegalActionError{Action: ActionDiscardGroup, Reason: "hand does not contain all candidate cards"}
	}
	g.deck.Return(cards)
	g.checkWin()
	return nil
}

// nextTurn passes to the next player.
func (g *Game) nextTurn() error {
	g.advanceTurn()
	return nil
}
