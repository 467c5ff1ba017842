package game

import "github.com/cardroomhq/cardroom/internal/deck"

// twoCards marks a player as dealt in for tests that bypass NewHand
func twoCards() []deck.Card {
	return []deck.Card{
		deck.NewCard(deck.Ace, deck.Spades),
		deck.NewCard(deck.King, deck.Hearts),
	}
}
