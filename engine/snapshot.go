package engine

import "github.com/google/uuid"

// PlayerSnapshot is a read-only copy of one seat for rendering.
type PlayerSnapshot struct {
	ID   uuid.UUID
	Kind PlayerKind
	Hand []Card
}

// GameSnapshot is a read-only view of the full game state for hosts and
// renderers. Mutating it has no effect on the game. Visibility filtering
// (hiding opponent hands from a human player) is the host's concern; the
// core exposes the authoritative state.
type GameSnapshot struct {
	ID             uuid.UUID
	Players        []PlayerSnapshot
	Current        int
	DeckSize       int
	Flags          TurnFlags
	PendingDiscard bool
	Winner         int // NoWinner while running or on stalemate
	Stalemate      bool
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() GameSnapshot {
	players := make([]PlayerSnapshot, len(g.players))
	for i, p := range g.players {
		players[i] = PlayerSnapshot{ID: p.ID, Kind: p.Kind, Hand: p.Hand.Cards()}
	}
	return GameSnapshot{
		ID:             g.id,
		Players:        players,
		Current:        g.current,
		DeckSize:       g.deck.Size(),
		Flags:          g.flags,
		PendingDiscard: g.pendingDiscard,
		Winner:         g.winner,
		Stalemate:      g.stalemate,
	}
}
