package game

import (
	"errors"
	"testing"
)

func TestValidateCheck(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(2, 2)
	p := &Player{Seat: 0, Chips: 100}

	if err := br.validate(p, Check, 0); err != nil {
		t.Errorf("check with no bet should be legal: %v", err)
	}

	br.CurrentBet = 10
	if err := br.validate(p, Check, 0); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("check facing a bet = %v, want ErrIllegalAction", err)
	}
	// Having matched the bet already makes checking legal again
	p.Bet = 10
	if err := br.validate(p, Check, 0); err != nil {
		t.Errorf("check when matched should be legal: %v", err)
	}
}

func TestValidateCall(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(2, 2)
	p := &Player{Seat: 0, Chips: 100}

	if err := br.validate(p, Call, 0); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("call with nothing to call = %v, want ErrIllegalAction", err)
	}

	br.CurrentBet = 10
	if err := br.validate(p, Call, 0); err != nil {
		t.Errorf("call facing a bet should be legal: %v", err)
	}
}

func TestValidateBet(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(2, 2)
	p := &Player{Seat: 0, Chips: 100}

	if err := br.validate(p, Bet, 1); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("bet below the big blind = %v, want ErrIllegalAction", err)
	}
	if err := br.validate(p, Bet, 2); err != nil {
		t.Errorf("min bet should be legal: %v", err)
	}
	if err := br.validate(p, Bet, 101); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("bet beyond stack = %v, want ErrIllegalAction", err)
	}
	// Betting the whole stack is legal even below the minimum
	short := &Player{Seat: 1, Chips: 1}
	if err := br.validate(short, Bet, 1); err != nil {
		t.Errorf("all-in bet for less should be legal: %v", err)
	}

	br.CurrentBet = 10
	if err := br.validate(p, Bet, 20); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("bet when one is open = %v, want ErrIllegalAction", err)
	}
}

func TestValidateRaiseMinimum(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(2, 2)
	p := &Player{Seat: 0, Chips: 100}

	if err := br.validate(p, Raise, 10); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("raise with no open bet = %v, want ErrIllegalAction", err)
	}

	// Open of 10 with a 2 big blind: MinRaise starts at the blind, then a
	// raise to 20 sets it to 10, so the next raise must reach 30.
	opener := &Player{Seat: 1, Chips: 100}
	opener.wager(10)
	br.recordRaise(opener)
	if br.CurrentBet != 10 {
		t.Fatalf("CurrentBet = %d, want 10", br.CurrentBet)
	}

	if err := br.validate(p, Raise, 11); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("undersized raise = %v, want ErrIllegalAction", err)
	}
	if err := br.validate(p, Raise, 20); err != nil {
		t.Errorf("raise to 20 should be legal: %v", err)
	}

	p.wager(20)
	br.recordRaise(p)
	if br.MinRaise != 10 {
		t.Errorf("MinRaise = %d, want 10", br.MinRaise)
	}

	third := &Player{Seat: 0, Chips: 100}
	br.Acted[third.Seat] = false
	if err := br.validate(third, Raise, 29); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("raise to 29 = %v, want minimum 30", err)
	}
	if err := br.validate(third, Raise, 30); err != nil {
		t.Errorf("raise to 30 should be legal: %v", err)
	}
}

func TestFullRaiseReopensAction(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 2)
	a := &Player{Seat: 0, Chips: 100}
	b := &Player{Seat: 1, Chips: 100}

	a.wager(10)
	br.recordRaise(a)
	br.Acted[2] = true // seat 2 called

	b.wager(30)
	br.recordRaise(b)

	if br.Acted[0] || br.Acted[2] {
		t.Error("full raise should clear the other players' acted flags")
	}
	if !br.Acted[1] {
		t.Error("raiser keeps their acted flag")
	}
}

func TestShortAllInDoesNotReopen(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 2)
	a := &Player{Seat: 0, Chips: 100}
	shove := &Player{Seat: 1, Chips: 14}

	a.wager(10)
	br.recordRaise(a)
	br.Acted[2] = true

	// All-in to 14 is only a 4 raise against MinRaise 10: the amount to
	// call rises but the action does not reopen.
	shove.wager(shove.Chips)
	br.recordRaise(shove)

	if br.CurrentBet != 14 {
		t.Errorf("CurrentBet = %d, want 14", br.CurrentBet)
	}
	if !br.Acted[0] || !br.Acted[2] {
		t.Error("short all-in must not clear acted flags")
	}
	if err := br.validate(a, Raise, 30); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("raise after short all-in = %v, want ErrIllegalAction", err)
	}
	if err := br.validate(a, Call, 0); err != nil {
		t.Errorf("calling the short all-in should be legal: %v", err)
	}
}

func TestCompleteRequiresEveryoneActedAndMatched(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Seat: 0, Chips: 100, HoleCards: twoCards()},
		{Seat: 1, Chips: 100, HoleCards: twoCards()},
		{Seat: 2, Chips: 100, HoleCards: twoCards()},
	}
	br := NewBettingRound(3, 2)

	if br.Complete(players) {
		t.Error("round with nobody acted should not be complete")
	}

	players[0].wager(10)
	br.recordRaise(players[0])
	players[1].wager(10)
	br.Acted[1] = true

	if br.Complete(players) {
		t.Error("seat 2 has not acted")
	}

	players[2].Folded = true
	br.Acted[2] = true
	if !br.Complete(players) {
		t.Error("round should be complete once all live players matched")
	}
}

func TestCompleteGivesBigBlindOption(t *testing.T) {
	t.Parallel()

	// Preflop blinds are posted without setting acted flags, so even when
	// everyone has matched the big blind the round stays open for the BB.
	players := []*Player{
		{Seat: 0, Chips: 99, Bet: 1, HoleCards: twoCards()},  // SB
		{Seat: 1, Chips: 98, Bet: 2, HoleCards: twoCards()},  // BB
		{Seat: 2, Chips: 98, Bet: 2, HoleCards: twoCards()},  // caller
	}
	br := NewBettingRound(3, 2)
	br.CurrentBet = 2
	br.Acted[2] = true
	players[0].Bet = 2 // SB completed
	br.Acted[0] = true

	if br.Complete(players) {
		t.Error("big blind still has their option")
	}
	br.Acted[1] = true
	if !br.Complete(players) {
		t.Error("round should close after the big blind checks")
	}
}
