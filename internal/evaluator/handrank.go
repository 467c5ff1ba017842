package evaluator

// Category enumerates poker hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is a totally ordered hand strength: the category in the high
// bits and up to five 4-bit tie-break ranks below, highest first. Two
// HandRanks compare correctly with <, == and >; equal values are an exact
// tie (split pot).
type HandRank uint32

const (
	categoryShift = 20
	tiebreakMask  = (1 << categoryShift) - 1
)

func makeRank(cat Category, tiebreaks ...int) HandRank {
	r := HandRank(cat) << categoryShift
	shift := categoryShift - 4
	for _, t := range tiebreaks {
		r |= HandRank(t) << shift
		shift -= 4
	}
	return r
}

// Category returns the hand's category
func (h HandRank) Category() Category {
	return Category(h >> categoryShift)
}

// Compare returns 1 if h is stronger than other, -1 if weaker, 0 on an exact tie
func (h HandRank) Compare(other HandRank) int {
	switch {
	case h > other:
		return 1
	case h < other:
		return -1
	default:
		return 0
	}
}

// String names the hand, reporting the ace-high straight flush as a royal
func (h HandRank) String() string {
	if h.Category() == StraightFlush && (h&tiebreakMask)>>16 == 14 {
		return "Royal Flush"
	}
	return h.Category().String()
}
