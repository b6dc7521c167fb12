package engine

import "math/rand/v2"

// Hand is one player's unordered card collection, capped at max cards.
type Hand struct {
	cards []Card
	max   int
}

// NewHand returns an empty hand with the given cap.
func NewHand(max int) *Hand {
	return &Hand{cards: make([]Card, 0, max), max: max}
}

// Size returns the number of cards held.
func (h *Hand) Size() int { return len(h.cards) }

// IsEmpty reports whether the hand holds no cards.
func (h *Hand) IsEmpty() bool { return len(h.cards) == 0 }

// IsFull reports whether the hand is at its cap.
func (h *Hand) IsFull() bool { return len(h.cards) >= h.max }

// Cards returns a copy of the hand contents.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Add places one card in the hand. The cap may be exceeded by exactly one
// card while a draw-and-discard exchange is pending; the engine enforces the
// cap at action level, so Add itself only guards against runaway growth.
func (h *Hand) Add(card Card) error {
	if len(h.cards) > h.max {
		return &HandLimitError{HandSize: len(h.cards), Requested: 1, Max: h.max}
	}
	h.cards = append(h.cards, card)
	return nil
}

// AddAll places cards in the hand, all or nothing.
func (h *Hand) AddAll(cards []Card) error {
	if len(h.cards)+len(cards) > h.max {
		return &HandLimitError{HandSize: len(h.cards), Requested: len(cards), Max: h.max}
	}
	h.cards = append(h.cards, cards...)
	return nil
}

// Remove takes one matching card out of the hand. Returns false if the hand
// holds no such card.
func (h *Hand) Remove(card Card) bool {
	for i, c := range h.cards {
		if c == card {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll takes a multiset of cards out of the hand, all or nothing.
// Returns false (and leaves the hand unchanged) if any card is missing,
// counting duplicates.
func (h *Hand) RemoveAll(cards []Card) bool {
	if !h.ContainsAll(cards) {
		return false
	}
	for _, c := range cards {
		h.Remove(c)
	}
	return true
}

// ContainsAll reports whether the hand holds every card in the given
// multiset, counting duplicates.
func (h *Hand) ContainsAll(cards []Card) bool {
	counts := make(map[Card]int, len(h.cards))
	for _, c := range h.cards {
		counts[c]++
	}
	for _, c := range cards {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

// Shuffle randomizes the hand order. Used before a steal so the removed card
// is uniformly random.
func (h *Hand) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(h.cards), func(i, j int) {
		h.cards[i], h.cards[j] = h.cards[j], h.cards[i]
	})
}

// removeLast pops the last card. Callers must ensure the hand is non-empty.
func (h *Hand) removeLast() Card {
	last := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	return last
}
