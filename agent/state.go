// Package agent implements the tabular Q-learning player: a discretized
// view of the game state, an epsilon-greedy value learner over coarse
// action types, and the heuristics that turn a coarse choice into concrete
// action parameters. One Agent owns one Q-table and one persistence store;
// hosts embedding several computer players in parallel must give each its
// own Agent.
package agent

import (
	"fmt"

	"github.com/Winipedia/notty/engine"
)

// Deck-size buckets.
const (
	DeckLow  uint8 = iota // fewer than 30 cards
	DeckMid               // 30 to 59
	DeckHigh              // 60 or more
)

// StateKey is the discretized game state the learner sees. Two states with
// equal keys are indistinguishable to the agent even if the underlying
// hands and deck differ.
type StateKey struct {
	HandBucket uint8 // |hand| / 5, capped at 3
	DeckBucket uint8 // DeckLow, DeckMid, DeckHigh
	CanDiscard bool  // any valid group in the current hand
	OppBucket  uint8 // bucketed mean opponent hand size, same 4-way scale
}

func (k StateKey) String() string {
	return fmt.Sprintf("(h%d d%d c%t o%d)", k.HandBucket, k.DeckBucket, k.CanDiscard, k.OppBucket)
}

// Featurize projects the current player's view of g into a StateKey. Pure
// and deterministic: the same game state always yields the same key.
func Featurize(g *engine.Game) StateKey {
	hand := g.CurrentPlayer().Hand

	var oppTotal, oppCount int
	for _, idx := range g.OpponentIndices(g.CurrentIndex()) {
		oppTotal += g.Player(idx).Hand.Size()
		oppCount++
	}
	var oppAvg int
	if oppCount > 0 {
		oppAvg = oppTotal / oppCount
	}

	return StateKey{
		HandBucket: sizeBucket(hand.Size()),
		DeckBucket: deckBucket(g.DeckSize()),
		CanDiscard: engine.HasValidGroup(hand.Cards()),
		OppBucket:  sizeBucket(oppAvg),
	}
}

// sizeBucket maps a hand size to {0: 0-4, 1: 5-9, 2: 10-14, 3: 15+}.
func sizeBucket(n int) uint8 {
	b := n / 5
	if b > 3 {
		b = 3
	}
	return uint8(b)
}

func deckBucket(n int) uint8 {
	switch {
	case n < 30:
		return DeckLow
	case n < 60:
		return DeckMid
	default:
		return DeckHigh
	}
}
