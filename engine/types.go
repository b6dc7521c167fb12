package engine

import "github.com/google/uuid"

// ActionType identifies one of the closed set of turn actions.
type ActionType uint8

const (
	ActionDrawCards      ActionType = iota // 0: draw 1-3 cards from the deck
	ActionStealCard                        // 1: take a random card from an opponent
	ActionDrawAndDiscard                   // 2: draw one card, then return any one card
	ActionDiscardOne                       // 3: completes a pending DrawAndDiscard
	ActionDiscardGroup                     // 4: discard a valid sequence or set
	ActionNextTurn                         // 5: pass to the next player
	ActionPlayForMe                        // 6: delegate the decision to the AI policy
)

// NumActionTypes is the size of the action space.
const NumActionTypes = 7

// actionNames indexes ActionType to stable names, used for display and in
// the persisted Q-table format.
var actionNames = [NumActionTypes]string{
	"draw_cards",
	"steal_card",
	"draw_and_discard",
	"discard_one",
	"discard_group",
	"next_turn",
	"play_for_me",
}

// String returns the stable name of the action type.
func (t ActionType) String() string {
	if int(t) < len(actionNames) {
		return actionNames[t]
	}
	return "unknown"
}

// ParseActionType resolves a stable action name back to its ActionType.
func ParseActionType(name string) (ActionType, bool) {
	for i, n := range actionNames {
		if n == name {
			return ActionType(i), true
		}
	}
	return 0, false
}

// Action is a tagged variant: Type selects the action, and exactly the
// parameter fields relevant to that type are read by Apply.
type Action struct {
	Type   ActionType
	Count  int    // DrawCards: how many cards, 1..MaxDrawCount
	Target int    // StealCard: opponent player index
	Card   Card   // DiscardOne: the card returned to the deck
	Group  []Card // DiscardGroup: the candidate group
}

// DrawCards builds a draw action for k cards.
func DrawCards(k int) Action { return Action{Type: ActionDrawCards, Count: k} }

// StealCard builds a steal action against the player at target index.
func StealCard(target int) Action { return Action{Type: ActionStealCard, Target: target} }

// DrawAndDiscard builds the draw half of the draw-and-discard exchange.
func DrawAndDiscard() Action { return Action{Type: ActionDrawAndDiscard} }

// DiscardOne builds the discard half of the draw-and-discard exchange.
func DiscardOne(card Card) Action { return Action{Type: ActionDiscardOne, Card: card} }

// DiscardGroup builds a group discard action.
func DiscardGroup(cards []Card) Action { return Action{Type: ActionDiscardGroup, Group: cards} }

// NextTurn builds a pass action.
func NextTurn() Action { return Action{Type: ActionNextTurn} }

// PlayForMe builds a delegation action.
func PlayForMe() Action { return Action{Type: ActionPlayForMe} }

// TurnFlags tracks the once-per-turn actions already taken by the current
// player. All flags reset when the turn advances. DiscardGroup and NextTurn
// are unlimited and not tracked.
type TurnFlags struct {
	Drew          bool // DrawCards used this turn
	Stole         bool // StealCard used this turn
	DrawDiscarded bool // DrawAndDiscard used this turn
}

// PlayerKind distinguishes human-driven seats from computer seats.
type PlayerKind uint8

const (
	Human    PlayerKind = iota // 0
	Computer                   // 1
)

// String returns the display name of the player kind.
func (k PlayerKind) String() string {
	if k == Human {
		return "human"
	}
	return "computer"
}

// Player is one seat at the table.
type Player struct {
	ID   uuid.UUID
	Kind PlayerKind
	Hand *Hand
}

// DecisionContext describes what kind of input the engine expects next.
type DecisionContext uint8

const (
	CtxAwaitingAction  DecisionContext = iota // 0: current player picks a turn action
	CtxAwaitingDiscard                        // 1: mid DrawAndDiscard, one card must come back
	CtxTerminal                               // 2: game over, no actions accepted
)
