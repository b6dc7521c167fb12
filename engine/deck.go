package engine

import "math/rand/v2"

// Deck is the pool of cards not currently held in any hand. Internally it is
// an ordered slice so that Shuffle is meaningful, but no ordering guarantee
// is promised on drawn cards; callers must treat it as a multiset.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck builds the full deck for the given rules (every color/number pair,
// CopiesPerCard times) in deterministic order. Shuffle before dealing.
func NewDeck(rules Rules, rng *rand.Rand) *Deck {
	cards := make([]Card, 0, rules.DeckSize())
	for copyIdx := 0; copyIdx < rules.CopiesPerCard; copyIdx++ {
		for color := uint8(0); color < NumColors; color++ {
			for number := MinNumber; number <= MaxNumber; number++ {
				cards = append(cards, NewCard(color, number))
			}
		}
	}
	return &Deck{cards: cards, rng: rng}
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int { return len(d.cards) }

// IsEmpty reports whether no cards remain.
func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }

// Shuffle randomizes the internal order. The multiset of contents is
// unchanged.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns one card, or ErrEmptyDeck if none remain.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return 0, ErrEmptyDeck
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// DrawN removes and returns exactly n cards. If fewer than n remain it
// returns ErrEmptyDeck and removes nothing.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[len(d.cards)-n:])
	d.cards = d.cards[:len(d.cards)-n]
	return drawn, nil
}

// Return adds cards back to the deck and reshuffles.
func (d *Deck) Return(cards []Card) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Cards returns a copy of the deck contents (for snapshots and tests).
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
