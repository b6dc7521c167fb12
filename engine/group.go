package engine

import "sort"

// GroupKind classifies a candidate discard group.
type GroupKind uint8

const (
	GroupInvalid  GroupKind = iota // 0
	GroupSequence                  // 1: ≥3 same-color cards, consecutive distinct numbers
	GroupSet                       // 2: ≥4 same-number cards, pairwise distinct colors
)

// String returns the display name of the group kind.
func (k GroupKind) String() string {
	switch k {
	case GroupSequence:
		return "Sequence"
	case GroupSet:
		return "Set"
	default:
		return "Invalid"
	}
}

// MinSequenceLen and MinSetLen are the minimum group sizes for each shape.
const (
	MinSequenceLen = 3
	MinSetLen      = 4
)

// ClassifyGroup classifies a candidate multiset of cards. The input order is
// irrelevant and the slice is not modified.
//
// A Sequence is at least 3 cards of one color whose numbers, sorted, form a
// gap-free run of distinct integers. A Set is at least 4 cards of one number
// with no color repeated. Everything else is Invalid.
func ClassifyGroup(cards []Card) GroupKind {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number() < sorted[j].Number() })

	oneColor := true
	oneNumber := true
	uniqueColors := true
	consecutive := true
	seenColors := make(map[uint8]bool, len(sorted))
	for i, c := range sorted {
		if c.Color() != sorted[0].Color() {
			oneColor = false
		}
		if c.Number() != sorted[0].Number() {
			oneNumber = false
		}
		if seenColors[c.Color()] {
			uniqueColors = false
		}
		seenColors[c.Color()] = true
		if i > 0 && c.Number() != sorted[i-1].Number()+1 {
			consecutive = false
		}
	}

	if len(sorted) >= MinSequenceLen && oneColor && consecutive {
		return GroupSequence
	}
	if len(sorted) >= MinSetLen && oneNumber && uniqueColors {
		return GroupSet
	}
	return GroupInvalid
}

// HasValidGroup reports whether any subset of cards forms a valid group.
// It scans maximal same-color runs and same-number color counts rather than
// enumerating subsets, so it stays cheap for 20-card hands.
func HasValidGroup(cards []Card) bool {
	// Runs: per color, the distinct numbers held.
	var colorNumbers [NumColors][MaxNumber + 1]bool
	// Sets: per number, the distinct colors held.
	var numberColors [MaxNumber + 1][NumColors]bool

	for _, c := range cards {
		colorNumbers[c.Color()][c.Number()] = true
		numberColors[c.Number()][c.Color()] = true
	}

	for color := uint8(0); color < NumColors; color++ {
		run := 0
		for number := MinNumber; number <= MaxNumber; number++ {
			if colorNumbers[color][number] {
				run++
				if run >= MinSequenceLen {
					return true
				}
			} else {
				run = 0
			}
		}
	}
	for number := MinNumber; number <= MaxNumber; number++ {
		distinct := 0
		for color := uint8(0); color < NumColors; color++ {
			if numberColors[number][color] {
				distinct++
			}
		}
		if distinct >= MinSetLen {
			return true
		}
	}
	return false
}

// MaximalGroups returns every maximal valid group formable from cards: the
// longest consecutive same-color runs (length ≥3) and the largest
// distinct-color sets per number (size ≥4). Sub-groups contained in a longer
// run or larger set are not listed. Groups use one card per (color, number)
// even when duplicates are held.
func MaximalGroups(cards []Card) [][]Card {
	var colorNumbers [NumColors][MaxNumber + 1]bool
	var numberColors [MaxNumber + 1][NumColors]bool
	for _, c := range cards {
		colorNumbers[c.Color()][c.Number()] = true
		numberColors[c.Number()][c.Color()] = true
	}

	var groups [][]Card

	// Maximal same-color runs.
	for color := uint8(0); color < NumColors; color++ {
		start := MinNumber
		run := 0
		for number := MinNumber; number <= MaxNumber+1; number++ {
			if number <= MaxNumber && colorNumbers[color][number] {
				if run == 0 {
					start = number
				}
				run++
				continue
			}
			if run >= MinSequenceLen {
				group := make([]Card, 0, run)
				for n := start; n < start+uint8(run); n++ {
					group = append(group, NewCard(color, n))
				}
				groups = append(groups, group)
			}
			run = 0
		}
	}

	// Maximal distinct-color sets.
	for number := MinNumber; number <= MaxNumber; number++ {
		group := make([]Card, 0, NumColors)
		for color := uint8(0); color < NumColors; color++ {
			if numberColors[number][color] {
				group = append(group, NewCard(color, number))
			}
		}
		if len(group) >= MinSetLen {
			groups = append(groups, group)
		}
	}

	return groups
}
