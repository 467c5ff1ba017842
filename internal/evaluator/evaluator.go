package evaluator

import (
	"sort"

	"github.com/cardroomhq/cardroom/internal/deck"
)

// Evaluate returns the best five-card HandRank that can be made from the
// given cards (5 to 7 of them). All five-card subsets are scored and the
// maximum kept; with 7 cards that is the usual C(7,5)=21 enumeration.
func Evaluate(cards []deck.Card) HandRank {
	if len(cards) == 5 {
		return Evaluate5([5]deck.Card(cards))
	}

	var best HandRank
	var combo [5]deck.Card
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo[0] = cards[a]
						combo[1] = cards[b]
						combo[2] = cards[c]
						combo[3] = cards[d]
						combo[4] = cards[e]
						if rank := Evaluate5(combo); rank > best {
							best = rank
						}
					}
				}
			}
		}
	}
	return best
}

// Evaluate5 scores exactly five cards
func Evaluate5(cards [5]deck.Card) HandRank {
	ranks := make([]int, 5)
	flush := true
	for i, c := range cards {
		ranks[i] = int(c.Rank)
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	straightHigh := straightTop(ranks)

	switch {
	case flush && straightHigh > 0:
		return makeRank(StraightFlush, straightHigh)
	case straightHigh > 0:
		return makeRank(Straight, straightHigh)
	case flush:
		return makeRank(Flush, ranks...)
	}

	// Group ranks by multiplicity, highest count first, then highest rank.
	type group struct {
		rank  int
		count int
	}
	var groups []group
	for _, r := range ranks {
		matched := false
		for i := range groups {
			if groups[i].rank == r {
				groups[i].count++
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, group{rank: r, count: 1})
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	tiebreaks := make([]int, 0, 5)
	for _, g := range groups {
		tiebreaks = append(tiebreaks, g.rank)
	}

	switch {
	case groups[0].count == 4:
		return makeRank(FourOfAKind, tiebreaks...)
	case groups[0].count == 3 && groups[1].count == 2:
		return makeRank(FullHouse, tiebreaks...)
	case groups[0].count == 3:
		return makeRank(ThreeOfAKind, tiebreaks...)
	case groups[0].count == 2 && groups[1].count == 2:
		return makeRank(TwoPair, tiebreaks...)
	case groups[0].count == 2:
		return makeRank(Pair, tiebreaks...)
	default:
		return makeRank(HighCard, tiebreaks...)
	}
}

// straightTop returns the top card of a straight formed by the five
// descending-sorted ranks, or 0 if they do not form one. The wheel
// (A-5-4-3-2) counts as a 5-high straight.
func straightTop(sorted []int) int {
	consecutive := true
	for i := 1; i < 5; i++ {
		if sorted[i] != sorted[i-1]-1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return sorted[0]
	}
	if sorted[0] == 14 && sorted[1] == 5 && sorted[2] == 4 && sorted[3] == 3 && sorted[4] == 2 {
		return 5
	}
	return 0
}
