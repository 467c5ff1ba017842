package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted indicates a deal was requested with too few cards left.
// With at most 9 players (18 hole cards), 3 burns and 5 board cards a
// 52-card deck cannot run out, so hitting this is a logic error upstream.
var ErrExhausted = errors.New("deck exhausted")

// Deck is an ordered 52-card deck. It is owned by a single hand and is
// not safe for concurrent use.
type Deck struct {
	cards []Card
	next  int
}

// New builds a full 52-card deck shuffled with the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Deal removes and returns the next n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards)-d.next {
		return nil, ErrExhausted
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards, nil
}

// Burn discards the next card.
func (d *Deck) Burn() error {
	_, err := d.Deal(1)
	return err
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
