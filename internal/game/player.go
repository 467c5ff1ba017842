package game

import "github.com/cardroomhq/cardroom/internal/deck"

// Player is a seated player. Chips persist across hands; the per-hand
// fields are reset by ResetForHand. Owned by a Room and only ever mutated
// from the room's worker goroutine.
type Player struct {
	ID   string
	Name string
	Seat int

	Chips      int
	HoleCards  []deck.Card
	Bet        int // wagered this street
	TotalBet   int // contributed this hand
	Folded     bool
	AllIn      bool
	SittingOut bool
}

// ResetForHand clears the per-hand fields
func (p *Player) ResetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
}

// InHand reports whether the player can still win a pot this hand
func (p *Player) InHand() bool {
	return !p.Folded && len(p.HoleCards) == 2
}

// CanAct reports whether the player is due further betting decisions
func (p *Player) CanAct() bool {
	return p.InHand() && !p.AllIn
}

// wager moves up to amount chips into the player's street bet, returning
// the amount actually moved. A stack shorter than the amount goes all-in.
func (p *Player) wager(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}
