package engine

import "fmt"

// Rules holds configurable game rule settings.
type Rules struct {
	NumPlayers      int // 2 or 3
	InitialHandSize int // cards dealt to each hand at game start
	MaxHandSize     int // hard per-hand cap
	MaxDrawCount    int // most cards a single DrawCards action may take
	CopiesPerCard   int // identical copies of each color/number pair in the deck
}

// DefaultRules returns the standard Notty rules: a 90-card deck
// (5 colors × 9 numbers × 2 copies), 4-card opening hands, a 20-card
// hand cap, and up to 3 cards per draw.
func DefaultRules() Rules {
	return Rules{
		NumPlayers:      2,
		InitialHandSize: 4,
		MaxHandSize:     20,
		MaxDrawCount:    3,
		CopiesPerCard:   2,
	}
}

// DeckSize returns the total number of cards in play under these rules.
func (r Rules) DeckSize() int {
	return int(NumColors) * int(MaxNumber-MinNumber+1) * r.CopiesPerCard
}

// Validate checks the rule settings for internal consistency.
func (r Rules) Validate() error {
	if r.NumPlayers < 2 || r.NumPlayers > 3 {
		return fmt.Errorf("rules: NumPlayers must be 2 or 3, got %d", r.NumPlayers)
	}
	if r.InitialHandSize < 0 || r.InitialHandSize > r.MaxHandSize {
		return fmt.Errorf("rules: InitialHandSize %d outside [0, %d]", r.InitialHandSize, r.MaxHandSize)
	}
	if r.MaxHandSize <= 0 {
		return fmt.Errorf("rules: MaxHandSize must be positive, got %d", r.MaxHandSize)
	}
	if r.MaxDrawCount <= 0 {
		return fmt.Errorf("rules: MaxDrawCount must be positive, got %d", r.MaxDrawCount)
	}
	if r.CopiesPerCard <= 0 {
		return fmt.Errorf("rules: CopiesPerCard must be positive, got %d", r.CopiesPerCard)
	}
	if r.NumPlayers*r.InitialHandSize > r.DeckSize() {
		return fmt.Errorf("rules: cannot deal %d cards each to %d players from a %d-card deck",
			r.InitialHandSize, r.NumPlayers, r.DeckSize())
	}
	return nil
}
