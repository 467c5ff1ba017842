package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/evaluator"
)

const (
	// MinPlayers and MaxPlayers bound how many players a hand can start with
	MinPlayers = 2
	MaxPlayers = 9
)

// ErrNotEnoughPlayers rejects starting a hand without 2-9 eligible players
var ErrNotEnoughPlayers = errors.New("need 2-9 eligible players to start a hand")

// Award records one player's winnings from a single pot
type Award struct {
	PlayerID string
	Amount   int
	HandName string // empty when the pot was won without a showdown
}

// Result describes how a completed hand paid out
type Result struct {
	Awards   []Award
	Showdown bool
}

// Hand is one played-out round of Texas Hold'em. It operates on the
// room's seat slice (Player.Seat == slice index); seats holding sitting-out
// or busted players are simply never dealt in. All methods must be called
// from the room's worker goroutine.
type Hand struct {
	players    []*Player
	button     int
	street     Street
	deck       *deck.Deck
	board      []deck.Card
	betting    *BettingRound
	toAct      int // seat index, -1 when nobody is due to act
	smallBlind int
	bigBlind   int

	startingStacks []int // for refunds if the hand has to be aborted
	complete       bool
	result         *Result
}

// NewHand shuffles, deals hole cards, posts the blinds and opens the
// preflop betting round. The button seat must hold an eligible player.
func NewHand(rng *rand.Rand, players []*Player, button, smallBlind, bigBlind int) (*Hand, error) {
	eligible := 0
	for _, p := range players {
		if Eligible(p) {
			eligible++
		}
	}
	if eligible < MinPlayers || eligible > MaxPlayers {
		return nil, fmt.Errorf("%w: have %d", ErrNotEnoughPlayers, eligible)
	}

	h := &Hand{
		players:        players,
		button:         button,
		street:         Preflop,
		deck:           deck.New(rng),
		smallBlind:     smallBlind,
		bigBlind:       bigBlind,
		startingStacks: make([]int, len(players)),
		betting:        NewBettingRound(len(players), bigBlind),
	}

	for seat, p := range players {
		h.startingStacks[seat] = p.Chips
		p.ResetForHand()
	}

	for seat, p := range players {
		if !Eligible(p) {
			continue
		}
		cards, err := h.deck.Deal(2)
		if err != nil {
			return nil, err
		}
		p.Seat = seat
		p.HoleCards = append([]deck.Card(nil), cards...)
	}

	if len(h.players[h.button].HoleCards) != 2 {
		h.button = h.nextDealtSeat(h.button)
	}
	h.postBlinds(eligible)
	return h, h.advanceIfNoneToAct()
}

func (h *Hand) postBlinds(numEligible int) {
	var sbSeat int
	if numEligible == 2 {
		// Heads-up: the button posts the small blind
		sbSeat = h.button
	} else {
		sbSeat = h.nextDealtSeat(h.button)
	}
	bbSeat := h.nextDealtSeat(sbSeat)

	// A blind-posting player shorter than the blind posts all-in for less
	h.players[sbSeat].wager(h.smallBlind)
	h.players[bbSeat].wager(h.bigBlind)
	h.betting.CurrentBet = h.bigBlind

	// Posting a blind is not acting: the big blind keeps their option
	h.toAct = h.nextActingSeat(bbSeat)
}

// Apply processes a voluntary action from the player whose turn it is.
// amount is the to-amount for bet and raise. Illegal actions leave all
// state untouched.
func (h *Hand) Apply(playerID string, action Action, amount int) error {
	if h.complete {
		return ErrHandComplete
	}
	seat := h.seatOf(playerID)
	if seat == -1 || seat != h.toAct {
		return ErrNotYourTurn
	}
	p := h.players[seat]

	if err := h.betting.validate(p, action, amount); err != nil {
		return err
	}

	switch action {
	case Fold:
		p.Folded = true
		h.betting.Acted[seat] = true
	case Check:
		h.betting.Acted[seat] = true
	case Call:
		p.wager(h.betting.toCall(p))
		h.betting.Acted[seat] = true
	case Bet, Raise:
		p.wager(amount - p.Bet)
		h.betting.recordRaise(p)
	case AllIn:
		p.wager(p.Chips)
		if p.Bet > h.betting.CurrentBet {
			h.betting.recordRaise(p)
		} else {
			h.betting.Acted[seat] = true
		}
	}

	return h.afterAction(seat)
}

// ForceFold folds a seat immediately regardless of turn order. Used for
// disconnects, leaves and turn timeouts.
func (h *Hand) ForceFold(playerID string) error {
	if h.complete {
		return nil
	}
	seat := h.seatOf(playerID)
	if seat == -1 || !h.players[seat].InHand() {
		return nil
	}
	p := h.players[seat]
	p.Folded = true
	h.betting.Acted[seat] = true

	if seat != h.toAct {
		// Not their turn: nothing else changes until action reaches the
		// folded seat, which nextActingSeat now skips.
		if h.liveCount() == 1 {
			h.finishUncontested()
		}
		return nil
	}
	return h.afterAction(seat)
}

func (h *Hand) afterAction(seat int) error {
	if h.liveCount() == 1 {
		h.finishUncontested()
		return nil
	}
	if h.betting.Complete(h.players) {
		return h.nextStreet()
	}
	h.toAct = h.nextActingSeat(seat)
	return nil
}

// nextStreet closes the current betting round, deals the next community
// cards and opens a fresh round. When nobody is left to act it keeps
// advancing until showdown.
func (h *Hand) nextStreet() error {
	for _, p := range h.players {
		p.Bet = 0
	}
	h.betting = NewBettingRound(len(h.players), h.bigBlind)

	switch h.street {
	case Preflop:
		h.street = Flop
		if err := h.dealBoard(3); err != nil {
			return err
		}
	case Flop:
		h.street = Turn
		if err := h.dealBoard(1); err != nil {
			return err
		}
	case Turn:
		h.street = River
		if err := h.dealBoard(1); err != nil {
			return err
		}
	case River:
		h.street = Showdown
		h.showdown()
		return nil
	case Showdown:
		return nil
	}

	h.toAct = h.nextActingSeat(h.button)
	return h.advanceIfNoneToAct()
}

// advanceIfNoneToAct runs out the remaining streets when everybody still
// in the hand is all-in.
func (h *Hand) advanceIfNoneToAct() error {
	if h.complete || h.toAct != -1 {
		return nil
	}
	if h.liveCount() == 1 {
		h.finishUncontested()
		return nil
	}
	return h.nextStreet()
}

func (h *Hand) dealBoard(n int) error {
	if err := h.deck.Burn(); err != nil {
		return err
	}
	cards, err := h.deck.Deal(n)
	if err != nil {
		return err
	}
	h.board = append(h.board, cards...)
	return nil
}

// showdown evaluates every live hand and awards each pot independently
func (h *Hand) showdown() {
	ranks := make(map[int]evaluator.HandRank)
	for seat, p := range h.players {
		if p.InHand() {
			ranks[seat] = evaluator.Evaluate(append(append([]deck.Card(nil), p.HoleCards...), h.board...))
		}
	}

	result := &Result{Showdown: true}
	for _, pot := range BuildPots(h.players) {
		best := evaluator.HandRank(0)
		var winners []int
		for _, seat := range pot.Eligible {
			rank, ok := ranks[seat]
			if !ok {
				continue
			}
			switch rank.Compare(best) {
			case 1:
				best = rank
				winners = []int{seat}
			case 0:
				winners = append(winners, seat)
			}
		}
		for seat, share := range splitPot(pot.Amount, winners, h.button, len(h.players)) {
			h.players[seat].Chips += share
			result.Awards = append(result.Awards, Award{
				PlayerID: h.players[seat].ID,
				Amount:   share,
				HandName: best.String(),
			})
		}
	}
	h.result = result
	h.complete = true
}

// finishUncontested pays the last live player without revealing cards or
// dealing further streets.
func (h *Hand) finishUncontested() {
	var winner *Player
	for _, p := range h.players {
		if p.InHand() {
			winner = p
			break
		}
	}
	total := TotalPot(BuildPots(h.players))
	winner.Chips += total
	h.result = &Result{Awards: []Award{{PlayerID: winner.ID, Amount: total}}}
	h.complete = true
	h.toAct = -1
}

// Abort refunds every seat to its pre-hand stack. Called when an internal
// invariant is violated; the hand must not continue with corrupted state.
func (h *Hand) Abort() {
	for seat, p := range h.players {
		p.Chips = h.startingStacks[seat]
		p.ResetForHand()
	}
	h.complete = true
	h.result = nil
	h.toAct = -1
}

func (h *Hand) seatOf(playerID string) int {
	for seat, p := range h.players {
		if p.ID == playerID {
			return seat
		}
	}
	return -1
}

// nextDealtSeat finds the next seat that was dealt into this hand
func (h *Hand) nextDealtSeat(from int) int {
	return nextSeat(len(h.players), from, func(i int) bool {
		return len(h.players[i].HoleCards) == 2
	})
}

// nextActingSeat finds the next seat still owed a betting decision
func (h *Hand) nextActingSeat(from int) int {
	return nextSeat(len(h.players), from, func(i int) bool {
		return h.players[i].CanAct()
	})
}

func (h *Hand) liveCount() int {
	count := 0
	for _, p := range h.players {
		if p.InHand() {
			count++
		}
	}
	return count
}

// Street returns the current street
func (h *Hand) Street() Street { return h.street }

// Board returns the community cards dealt so far
func (h *Hand) Board() []deck.Card { return h.board }

// Button returns the dealer button seat for this hand
func (h *Hand) Button() int { return h.button }

// Pots returns the current pot layering, valid mid-street
func (h *Hand) Pots() []Pot { return BuildPots(h.players) }

// CurrentBet returns the street's bet to call
func (h *Hand) CurrentBet() int { return h.betting.CurrentBet }

// ToAct returns the id of the player due to act, or "" if none
func (h *Hand) ToAct() string {
	if h.complete || h.toAct < 0 {
		return ""
	}
	return h.players[h.toAct].ID
}

// Complete reports whether the hand has finished
func (h *Hand) Complete() bool { return h.complete }

// Result returns the payout summary, nil until the hand completes or if
// it was aborted
func (h *Hand) Result() *Result { return h.result }
