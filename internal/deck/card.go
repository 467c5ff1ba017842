package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the glyph used on the wire for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high (14) except when a wheel
// straight uses the ace low.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank token used on the wire
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Card represents a playing card. Immutable value type.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the wire encoding of a card, e.g. "A♠" or "10♥"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// MarshalJSON encodes the card as its string form
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its string form
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	card, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = card
	return nil
}

var suitGlyphs = map[string]Suit{
	"♠": Spades,
	"♥": Hearts,
	"♦": Diamonds,
	"♣": Clubs,
}

var rankTokens = map[string]Rank{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven,
	"8": Eight, "9": Nine, "10": Ten, "J": Jack, "Q": Queen, "K": King, "A": Ace,
}

// ParseCard parses the wire encoding back into a Card
func ParseCard(s string) (Card, error) {
	for glyph, suit := range suitGlyphs {
		if strings.HasSuffix(s, glyph) {
			token := strings.TrimSuffix(s, glyph)
			rank, ok := rankTokens[token]
			if !ok {
				return Card{}, fmt.Errorf("invalid rank token %q", token)
			}
			return Card{Rank: rank, Suit: suit}, nil
		}
	}
	return Card{}, fmt.Errorf("invalid card %q", s)
}
