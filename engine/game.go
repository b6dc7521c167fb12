package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// NoWinner is the sentinel player index for a game without a winner.
const NoWinner = -1

// Game holds the complete authoritative state of one Notty game. It is not
// safe for concurrent use; the core is single-threaded and every action is
// applied atomically with respect to this state.
type Game struct {
	id      uuid.UUID
	rules   Rules
	players []*Player
	deck    *Deck
	rng     *rand.Rand

	current int
	flags   TurnFlags

	// pendingDiscard is set between the draw and discard halves of a
	// DrawAndDiscard exchange. While set, DiscardOne is the only legal action.
	pendingDiscard bool

	winner    int // NoWinner until a hand empties
	stalemate bool

	// abortErr is non-nil after an invariant violation; the game rejects all
	// further actions once set.
	abortErr *InvariantError
}

// NewGame builds a game: full deck, shuffled, InitialHandSize cards dealt to
// each player. kinds must have exactly rules.NumPlayers entries. The rng
// drives every random choice in the game (shuffles, steals).
func NewGame(rules Rules, kinds []PlayerKind, rng *rand.Rand) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if len(kinds) != rules.NumPlayers {
		return nil, fmt.Errorf("engine: got %d player kinds, rules require %d", len(kinds), rules.NumPlayers)
	}

	g := &Game{
		id:      uuid.New(),
		rules:   rules,
		deck:    NewDeck(rules, rng),
		rng:     rng,
		winner:  NoWinner,
		players: make([]*Player, 0, len(kinds)),
	}
	g.deck.Shuffle()

	for _, kind := range kinds {
		hand := NewHand(rules.MaxHandSize)
		dealt, err := g.deck.DrawN(rules.InitialHandSize)
		if err != nil {
			return nil, fmt.Errorf("engine: dealing opening hands: %w", err)
		}
		if err := hand.AddAll(dealt); err != nil {
			return nil, fmt.Errorf("engine: dealing opening hands: %w", err)
		}
		g.players = append(g.players, &Player{ID: uuid.New(), Kind: kind, Hand: hand})
	}

	return g, nil
}

// NewGameWithHands builds a game with predetermined opening hands; the deck
// holds every remaining card, shuffled. Hosts use this to restore a saved
// position, tests to script one. Hands may not use more copies of a card
// than the rules provide.
func NewGameWithHands(rules Rules, kinds []PlayerKind, hands [][]Card, rng *rand.Rand) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if len(kinds) != rules.NumPlayers {
		return nil, fmt.Errorf("engine: got %d player kinds, rules require %d", len(kinds), rules.NumPlayers)
	}
	if len(hands) != rules.NumPlayers {
		return nil, fmt.Errorf("engine: got %d hands, rules require %d", len(hands), rules.NumPlayers)
	}

	pool := make(map[Card]int, int(NumColors)*int(MaxNumber))
	for color := uint8(0); color < NumColors; color++ {
		for n := MinNumber; n <= MaxNumber; n++ {
			pool[NewCard(color, n)] = rules.CopiesPerCard
		}
	}

	g := &Game{
		id:      uuid.New(),
		rules:   rules,
		rng:     rng,
		winner:  NoWinner,
		players: make([]*Player, 0, len(kinds)),
	}
	for i, kind := range kinds {
		hand := NewHand(rules.MaxHandSize)
		if err := hand.AddAll(hands[i]); err != nil {
			return nil, fmt.Errorf("engine: hand %d: %w", i, err)
		}
		for _, card := range hands[i] {
			pool[card]--
			if pool[card] < 0 {
				return nil, fmt.Errorf("engine: hand %d uses more copies of %s than the rules provide", i, card)
			}
		}
		g.players = append(g.players, &Player{ID: uuid.New(), Kind: kind, Hand: hand})
	}

	deck := &Deck{cards: make([]Card, 0, rules.DeckSize()), rng: rng}
	for color := uint8(0); color < NumColors; color++ {
		for n := MinNumber; n <= MaxNumber; n++ {
			card := NewCard(color, n)
			for j := 0; j < pool[card]; j++ {
				deck.cards = append(deck.cards, card)
			}
		}
	}
	deck.Shuffle()
	g.deck = deck
	return g, nil
}

// ID returns the game's identity.
func (g *Game) ID() uuid.UUID { return g.id }

// Rules returns the rule settings this game was created with.
func (g *Game) Rules() Rules { return g.rules }

// NumPlayers returns the number of seats.
func (g *Game) NumPlayers() int { return len(g.players) }

// Player returns the player at index idx.
func (g *Game) Player(idx int) *Player { return g.players[idx] }

// CurrentIndex returns the index of the player whose turn it is.
func (g *Game) CurrentIndex() int { return g.current }

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player { return g.players[g.current] }

// OpponentIndices returns all player indices except idx, in seat order.
func (g *Game) OpponentIndices(idx int) []int {
	out := make([]int, 0, len(g.players)-1)
	for i := range g.players {
		if i != idx {
			out = append(out, i)
		}
	}
	return out
}

// DeckSize returns the number of cards left in the deck.
func (g *Game) DeckSize() int { return g.deck.Size() }

// Flags returns the current player's once-per-turn flags.
func (g *Game) Flags() TurnFlags { return g.flags }

// IsTerminal reports whether the game has ended (win, stalemate, or abort).
func (g *Game) IsTerminal() bool {
	return g.winner != NoWinner || g.stalemate || g.abortErr != nil
}

// Winner returns the winning player, or nil if the game is still running or
// ended without a winner.
func (g *Game) Winner() *Player {
	if g.winner == NoWinner {
		return nil
	}
	return g.players[g.winner]
}

// WinnerIndex returns the winning player's index, or NoWinner.
func (g *Game) WinnerIndex() int { return g.winner }

// IsStalemate reports whether the game ended with no winner because the deck
// was exhausted and no hand held a valid group.
func (g *Game) IsStalemate() bool { return g.stalemate }

// AbortError returns the invariant violation that aborted this game, or nil.
func (g *Game) AbortError() *InvariantError { return g.abortErr }

// checkWin scans every hand after a mutation; the first empty hand wins and
// the game becomes terminal immediately, short-circuiting the rest of the
// turn. A steal can therefore hand the win to its target.
func (g *Game) checkWin() {
	if g.IsTerminal() {
		return
	}
	for i, p := range g.players {
		if p.Hand.IsEmpty() {
			g.winner = i
			return
		}
	}
}

// advanceTurn rotates to the next seat and resets the once-per-turn flags
// for the player about to act.
//
// Stalemate policy: if the deck is empty and no player's hand contains any
// valid group, no draw can ever succeed again and group discards cannot
// replenish the deck, so the game is declared a stalemate (terminal, no
// winner) rather than looping on forced passes.
func (g *Game) advanceTurn() {
	if g.IsTerminal() {
		return
	}
	g.current = (g.current + 1) % len(g.players)
	g.flags = TurnFlags{}

	if g.deck.IsEmpty() && !g.anyPlayerHasGroup() {
		g.stalemate = true
	}
}

func (g *Game) anyPlayerHasGroup() bool {
	for _, p := range g.players {
		if HasValidGroup(p.Hand.Cards()) {
			return true
		}
	}
	return false
}

// checkInvariants verifies the conservation and cap invariants after every
// applied action:
//
//	|deck| + Σ|hand_i| == DeckSize()
//	0 ≤ |hand_i| ≤ MaxHandSize (the current player may sit at cap+1 while a
//	draw-and-discard exchange is pending; the forced discard restores it)
//
// A violation indicates a core bug. The game is aborted and the returned
// error carries a full state dump.
func (g *Game) checkInvariants() *InvariantError {
	total := g.deck.Size()
	for i, p := range g.players {
		size := p.Hand.Size()
		total += size
		limit := g.rules.MaxHandSize
		if g.pendingDiscard && i == g.current {
			limit++
		}
		if size < 0 || size > limit {
			return g.abort(fmt.Sprintf("player %d hand size %d exceeds cap %d", i, size, g.rules.MaxHandSize))
		}
	}
	if total != g.rules.DeckSize() {
		return g.abort(fmt.Sprintf("card conservation broken: deck %d + hands = %d, want %d",
			g.deck.Size(), total, g.rules.DeckSize()))
	}
	return nil
}

// abort marks the game unrecoverable and captures a state dump.
func (g *Game) abort(reason string) *InvariantError {
	err := &InvariantError{Reason: reason, Dump: g.dump()}
	g.abortErr = err
	return err
}

// dump renders the complete game state for diagnosis.
func (g *Game) dump() string {
	s := g.Snapshot()
	out := fmt.Sprintf("game %s current=%d deck=%d flags=%+v pendingDiscard=%v winner=%d stalemate=%v",
		g.id, g.current, g.deck.Size(), g.flags, g.pendingDiscard, g.winner, g.stalemate)
	for i, p := range s.Players {
		out += fmt.Sprintf("\n  player %d (%s, %s): %v", i, p.ID, p.Kind, p.Hand)
	}
	return out
}
