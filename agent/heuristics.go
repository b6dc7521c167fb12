package agent

import (
	"github.com/Winipedia/notty/engine"
)

// The heuristics below resolve a coarse action choice into concrete
// parameters. They are greedy local rules, deliberately cheap: the learner
// picks WHAT to do, these pick HOW.

// ChooseDrawCount picks how many cards to draw, in [1, MaxDrawCount].
// Starts from a balanced 2 and adjusts for hand headroom, group potential,
// how close opponents are to winning, and how low the deck is running.
func ChooseDrawCount(g *engine.Game) int {
	hand := g.CurrentPlayer().Hand
	handSize := hand.Size()
	deckSize := g.DeckSize()
	cards := hand.Cards()

	count := 2
	switch {
	case handSize >= 18:
		count = 1
	case handSize <= 6:
		count = 3
	}

	potential := sequencePotential(cards) + setPotential(cards)
	if potential >= 3 {
		count = min(count+1, g.Rules().MaxDrawCount)
	} else if potential == 0 && handSize > 10 {
		count = max(count-1, 1)
	}

	// An opponent about to empty their hand calls for aggression.
	minOpp := g.Rules().MaxHandSize
	for _, idx := range g.OpponentIndices(g.CurrentIndex()) {
		if size := g.Player(idx).Hand.Size(); size < minOpp {
			minOpp = size
		}
	}
	if minOpp <= 4 {
		count = min(count+1, g.Rules().MaxDrawCount)
	}

	if deckSize < 10 {
		count = 1
	} else if deckSize < 20 {
		count = min(count, 2)
	}

	count = min(count, g.Rules().MaxHandSize-handSize, deckSize, g.Rules().MaxDrawCount)
	return max(count, 1)
}

// sequencePotential counts adjacent same-color number pairs in hand.
func sequencePotential(cards []engine.Card) int {
	var have [engine.NumColors][engine.MaxNumber + 2]bool
	for _, card := range cards {
		have[card.Color()][card.Number()] = true
	}
	potential := 0
	for color := range have {
		for n := engine.MinNumber; n < engine.MaxNumber; n++ {
			if have[color][n] && have[color][n+1] {
				potential++
			}
		}
	}
	return potential
}

// setPotential counts numbers held in at least 3 cards.
func setPotential(cards []engine.Card) int {
	var counts [engine.MaxNumber + 1]int
	for _, card := range cards {
		counts[card.Number()]++
	}
	potential := 0
	for _, n := range counts {
		if n >= 3 {
			potential++
		}
	}
	return potential
}

// ChooseStealTarget picks the opponent with the largest hand, skipping
// empty-handed opponents. First in seat order wins ties. Returns -1 when
// no opponent holds a card.
func ChooseStealTarget(g *engine.Game) int {
	target, best := -1, 0
	for _, idx := range g.OpponentIndices(g.CurrentIndex()) {
		if size := g.Player(idx).Hand.Size(); size > best {
			target, best = idx, size
		}
	}
	return target
}

// ChooseDiscardCard picks the held card least likely to ever join a group:
// each card scores by how many same-color and same-number companions it
// has, plus a bonus for same-color neighbors one number away. Lowest score
// goes; first in hand order wins ties.
func ChooseDiscardCard(g *engine.Game) engine.Card {
	cards := g.CurrentPlayer().Hand.Cards()

	var colorCounts [engine.NumColors]int
	var numberCounts [engine.MaxNumber + 1]int
	for _, card := range cards {
		colorCounts[card.Color()]++
		numberCounts[card.Number()]++
	}

	worst := cards[0]
	worstScore := -1
	for _, card := range cards {
		score := colorCounts[card.Color()]*2 + numberCounts[card.Number()]*2
		for _, other := range cards {
			if other.Color() == card.Color() && numberDistance(other.Number(), card.Number()) == 1 {
				score += 3
			}
		}
		if worstScore < 0 || score < worstScore {
			worst, worstScore = card, score
		}
	}
	return worst
}

func numberDistance(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// ChooseDiscardGroup picks the group to discard: the largest maximal valid
// group in hand; among equal sizes, the one whose removal leaves the most
// cards still adjacent to a potential group (a one-ply lookahead). Returns
// nil when the hand holds no valid group.
func ChooseDiscardGroup(g *engine.Game) []engine.Card {
	cards := g.CurrentPlayer().Hand.Cards()
	groups := engine.MaximalGroups(cards)
	if len(groups) == 0 {
		return nil
	}

	var best []engine.Card
	bestSynergy := -1
	for _, group := range groups {
		if best != nil && len(group) < len(best) {
			continue
		}
		synergy := remainingSynergy(cards, group)
		if best == nil || len(group) > len(best) || synergy > bestSynergy {
			best, bestSynergy = group, synergy
		}
	}
	return best
}

// remainingSynergy counts cards left in hand after removing group that
// still have a same-color neighbor one number away or at least two other
// copies of their number.
func remainingSynergy(cards, group []engine.Card) int {
	removed := make(map[engine.Card]int, len(group))
	for _, card := range group {
		removed[card]++
	}
	remaining := make([]engine.Card, 0, len(cards))
	for _, card := range cards {
		if removed[card] > 0 {
			removed[card]--
			continue
		}
		remaining = append(remaining, card)
	}

	var numberCounts [engine.MaxNumber + 1]int
	for _, card := range remaining {
		numberCounts[card.Number()]++
	}
	synergy := 0
	for _, card := range remaining {
		if numberCounts[card.Number()] >= 3 {
			synergy++
			continue
		}
		for _, other := range remaining {
			if other.Color() == card.Color() && numberDistance(other.Number(), card.Number()) == 1 {
				synergy++
				break
			}
		}
	}
	return synergy
}
