package game

import "sort"

// Pot is a main or side pot. Eligible holds the seats that can win it.
// Pots[0] is the main pot (lowest contribution layer); later entries are
// side pots at ascending all-in thresholds.
type Pot struct {
	Amount   int
	Eligible []int
}

// BuildPots layers the players' total contributions into a main pot and
// side pots. It is a pure function of the current contributions, so the
// result is valid at any observation point: the pot amounts always sum to
// the chips the players have put in. Folded players' chips stay in the
// layers they reached, but folding forfeits eligibility everywhere.
func BuildPots(players []*Player) []Pot {
	maxContrib := 0
	for _, p := range players {
		if p.TotalBet > maxContrib {
			maxContrib = p.TotalBet
		}
	}
	if maxContrib == 0 {
		return nil
	}

	// Contribution thresholds: each distinct all-in level below the top,
	// then the top itself.
	seen := map[int]bool{}
	var levels []int
	for _, p := range players {
		if p.AllIn && p.TotalBet > 0 && p.TotalBet < maxContrib && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			levels = append(levels, p.TotalBet)
		}
	}
	sort.Ints(levels)
	levels = append(levels, maxContrib)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			slice := p.TotalBet - prev
			if slice <= 0 {
				continue
			}
			if slice > level-prev {
				slice = level - prev
			}
			pot.Amount += slice
			if !p.Folded && p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		if pot.Amount == 0 {
			prev = level
			continue
		}
		if len(pot.Eligible) == 0 && len(pots) > 0 {
			// Folded chips above every live stake fall into the pot below.
			pots[len(pots)-1].Amount += pot.Amount
			prev = level
			continue
		}
		pots = append(pots, pot)
		prev = level
	}
	return pots
}

// TotalPot sums all pot amounts
func TotalPot(pots []Pot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}

// splitPot divides amount among the winning seats. Odd chips go to the
// winner nearest clockwise from the button.
func splitPot(amount int, winners []int, button, numSeats int) map[int]int {
	if len(winners) == 0 || amount <= 0 {
		return nil
	}
	ordered := append([]int(nil), winners...)
	sort.Slice(ordered, func(i, j int) bool {
		return clockwiseFromButton(ordered[i], button, numSeats) < clockwiseFromButton(ordered[j], button, numSeats)
	})

	shares := make(map[int]int, len(ordered))
	each := amount / len(ordered)
	for _, seat := range ordered {
		shares[seat] = each
	}
	shares[ordered[0]] += amount % len(ordered)
	return shares
}

// clockwiseFromButton orders seats by distance clockwise from the button,
// with the button itself last.
func clockwiseFromButton(seat, button, numSeats int) int {
	return (seat - button - 1 + numSeats) % numSeats
}
