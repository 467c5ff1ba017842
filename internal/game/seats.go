package game

// nextSeat returns the first seat strictly after from (wrapping) for which
// ok returns true, or -1 if none does within one lap.
func nextSeat(numSeats, from int, ok func(int) bool) int {
	for i := 1; i <= numSeats; i++ {
		seat := (from + i) % numSeats
		if ok(seat) {
			return seat
		}
	}
	return -1
}

// NextButton advances the dealer button to the next seat holding an
// eligible player, wrapping around. Returns from when no seat qualifies.
func NextButton(players []*Player, from int) int {
	seat := nextSeat(len(players), from, func(i int) bool {
		return Eligible(players[i])
	})
	if seat == -1 {
		return from
	}
	return seat
}

// Eligible reports whether a player can be dealt into the next hand
func Eligible(p *Player) bool {
	return p != nil && !p.SittingOut && p.Chips > 0
}
