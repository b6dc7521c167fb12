package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyDeck reports a draw that would take more cards than the deck holds.
// Draws are atomic against the deck state at call time: a later DiscardGroup
// that replenishes the deck never retries a failed draw.
var ErrEmptyDeck = errors.New("engine: not enough cards in deck")

// ErrDelegated is returned by Apply for PlayForMe. The engine state is
// unchanged; the host must resolve the turn through an AI driver
// (agent.Driver) and feed the resulting concrete actions back to Apply.
var ErrDelegated = errors.New("engine: play-for-me must be resolved by an agent driver")

// IllegalActionError reports an action whose precondition is unmet: a
// once-per-turn flag already consumed, an empty-handed steal target, or an
// action submitted in the wrong decision context. State is unchanged.
type IllegalActionError struct {
	Action ActionType
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("engine: illegal action %s: %s", e.Action, e.Reason)
}

// InvalidGroupError reports a DiscardGroup candidate that is neither a valid
// sequence nor a valid set. State is unchanged.
type InvalidGroupError struct {
	Cards []Card
}

func (e *InvalidGroupError) Error() string {
	return fmt.Sprintf("engine: cards %v do not form a valid group", e.Cards)
}

// HandLimitError reports a draw or steal that would push a hand past the cap.
// The action is rejected in full; no partial draw occurs.
type HandLimitError struct {
	HandSize  int
	Requested int
	Max       int
}

func (e *HandLimitError) Error() string {
	return fmt.Sprintf("engine: hand of %d cannot take %d more cards (cap %d)", e.HandSize, e.Requested, e.Max)
}

// InvariantError reports a violated game invariant (card-count mismatch or a
// hand over the cap). It indicates a core bug, not a user error: the affected
// game instance is aborted and the full state is carried in Dump for
// diagnosis.
type InvariantError struct {
	Reason string
	Dump   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: invariant violated: %s", e.Reason)
}
