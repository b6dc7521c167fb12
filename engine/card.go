// Package engine implements the Notty card game rules.
//
// This package provides a pure, synchronous turn-action state machine:
// it computes legal actions, applies them, enforces hand/deck invariants,
// and detects the win condition. It performs no I/O and holds no logger;
// all randomness flows through an injected *rand.Rand so hosts and tests
// can seed it.
package engine

import "fmt"

// Color constants, packed into the upper 4 bits of Card.
const (
	ColorRed    uint8 = 0
	ColorGreen  uint8 = 1
	ColorYellow uint8 = 2
	ColorBlack  uint8 = 3
	ColorBlue   uint8 = 4
)

// NumColors is the number of distinct card colors.
const NumColors uint8 = 5

// Number bounds. Cards carry numbers 1 through 9.
const (
	MinNumber uint8 = 1
	MaxNumber uint8 = 9
)

// Card is a packed uint8: upper 4 bits = color, lower 4 bits = number (1-9).
// Cards are value objects; two cards with the same color and number are
// indistinguishable and may coexist in the deck.
type Card uint8

// NewCard constructs a Card from color and number.
func NewCard(color, number uint8) Card {
	return Card((color << 4) | (number & 0x0F))
}

// Color returns the color bits (upper 4).
func (c Card) Color() uint8 { return uint8(c) >> 4 }

// Number returns the number bits (lower 4).
func (c Card) Number() uint8 { return uint8(c) & 0x0F }

// colorNames indexes color constants to display names.
var colorNames = [NumColors]string{"Red", "Green", "Yellow", "Black", "Blue"}

// ColorName returns the display name for a color constant.
func ColorName(color uint8) string {
	if color < NumColors {
		return colorNames[color]
	}
	return fmt.Sprintf("Color(%d)", color)
}

// String renders the card as e.g. "Blue4".
func (c Card) String() string {
	return fmt.Sprintf("%s%d", ColorName(c.Color()), c.Number())
}
