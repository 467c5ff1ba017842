package game

import "fmt"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "all_in"}[a]
}

// ParseAction maps a wire action token back to an Action
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "all_in":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("invalid action %q", s)
	}
}

// BettingRound tracks the open betting state for one street. Bet and raise
// amounts are to-amounts: the total the player's street bet becomes.
type BettingRound struct {
	CurrentBet int
	MinRaise   int
	BigBlind   int

	// Acted is cleared for everyone except the raiser whenever a full
	// raise reopens the action. A player whose flag is still set may only
	// call, fold or move all-in; a short all-in does not clear the flags.
	Acted []bool
}

// NewBettingRound opens a fresh round with no bet to call
func NewBettingRound(numPlayers, bigBlind int) *BettingRound {
	return &BettingRound{
		MinRaise: bigBlind,
		BigBlind: bigBlind,
		Acted:    make([]bool, numPlayers),
	}
}

// toCall returns the amount the player must add to match the current bet
func (br *BettingRound) toCall(p *Player) int {
	return br.CurrentBet - p.Bet
}

// validate checks whether the action is legal for the player right now.
// amount is the to-amount for Bet and Raise, ignored otherwise.
func (br *BettingRound) validate(p *Player, action Action, amount int) error {
	switch action {
	case Fold, AllIn:
		return nil

	case Check:
		if br.toCall(p) != 0 {
			return fmt.Errorf("%w: cannot check, %d to call", ErrIllegalAction, br.toCall(p))
		}
		return nil

	case Call:
		if br.toCall(p) <= 0 {
			return fmt.Errorf("%w: nothing to call", ErrIllegalAction)
		}
		return nil

	case Bet:
		if br.CurrentBet != 0 {
			return fmt.Errorf("%w: there is already a bet, raise instead", ErrIllegalAction)
		}
		return br.validateRaiseTo(p, amount, br.BigBlind)

	case Raise:
		if br.CurrentBet == 0 {
			return fmt.Errorf("%w: nothing to raise, bet instead", ErrIllegalAction)
		}
		if br.Acted[p.Seat] {
			return fmt.Errorf("%w: betting was not reopened", ErrIllegalAction)
		}
		return br.validateRaiseTo(p, amount, br.CurrentBet+br.MinRaise)

	default:
		return fmt.Errorf("%w: unknown action", ErrIllegalAction)
	}
}

func (br *BettingRound) validateRaiseTo(p *Player, amount, minimum int) error {
	total := p.Chips + p.Bet
	if amount > total {
		return fmt.Errorf("%w: insufficient chips", ErrIllegalAction)
	}
	// An all-in for less than the minimum is legal but handled as a short
	// raise: it does not reopen the betting.
	if amount < minimum && amount < total {
		return fmt.Errorf("%w: minimum is %d", ErrIllegalAction, minimum)
	}
	if amount <= br.CurrentBet {
		return fmt.Errorf("%w: must exceed current bet of %d", ErrIllegalAction, br.CurrentBet)
	}
	return nil
}

// recordRaise updates the round after p's street bet rose to a new high.
// A full raise reopens the action for all other players; a short all-in
// raise only lifts the amount to call.
func (br *BettingRound) recordRaise(p *Player) {
	increment := p.Bet - br.CurrentBet
	full := increment >= br.MinRaise
	br.CurrentBet = p.Bet
	if full {
		br.MinRaise = increment
		for i := range br.Acted {
			br.Acted[i] = false
		}
	}
	br.Acted[p.Seat] = true
}

// Complete reports whether the round is closed: every player still able
// to act has acted and matched the current bet. Posting a blind does not
// count as acting, which gives the big blind their preflop option.
func (br *BettingRound) Complete(players []*Player) bool {
	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if !br.Acted[p.Seat] || p.Bet != br.CurrentBet {
			return false
		}
	}
	return true
}
