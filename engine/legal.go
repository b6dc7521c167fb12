package engine

// DecisionCtx returns the kind of input the engine expects next.
func (g *Game) DecisionCtx() DecisionContext {
	if g.IsTerminal() {
		return CtxTerminal
	}
	if g.pendingDiscard {
		return CtxAwaitingDiscard
	}
	return CtxAwaitingAction
}

// LegalActionTypes returns the action types the current player may submit,
// in canonical enum order. Terminal games have none; a pending
// draw-and-discard exchange admits only DiscardOne.
func (g *Game) LegalActionTypes() []ActionType {
	switch g.DecisionCtx() {
	case CtxTerminal:
		return nil
	case CtxAwaitingDiscard:
		return []ActionType{ActionDiscardOne}
	}

	hand := g.CurrentPlayer().Hand
	var legal []ActionType

	// DrawCards: once per turn, room in hand, at least one card to draw.
	// An empty deck blocks drawing until a group discard replenishes it.
	if !g.flags.Drew && hand.Size() < g.rules.MaxHandSize && !g.deck.IsEmpty() {
		legal = append(legal, ActionDrawCards)
	}

	// StealCard: once per turn, some opponent holds a card, and the stolen
	// card must fit under the hand cap.
	if !g.flags.Stole && hand.Size() < g.rules.MaxHandSize && g.anyOpponentHasCards() {
		legal = append(legal, ActionStealCard)
	}

	// DrawAndDiscard: once per turn. Legal even at the hand cap: the forced
	// discard restores the cap before the turn can proceed.
	if !g.flags.DrawDiscarded && !g.deck.IsEmpty() {
		legal = append(legal, ActionDrawAndDiscard)
	}

	// DiscardGroup: re-evaluated every decision, never flag-limited.
	if HasValidGroup(hand.Cards()) {
		legal = append(legal, ActionDiscardGroup)
	}

	legal = append(legal, ActionNextTurn, ActionPlayForMe)
	return legal
}

// IsLegal reports whether the given action type may currently be submitted.
func (g *Game) IsLegal(t ActionType) bool {
	for _, l := range g.LegalActionTypes() {
		if l == t {
			return true
		}
	}
	return false
}

func (g *Game) anyOpponentHasCards() bool {
	for i, p := range g.players {
		if i != g.current && !p.Hand.IsEmpty() {
			return true
		}
	}
	return false
}
