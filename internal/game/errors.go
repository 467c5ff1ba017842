package game

import "errors"

var (
	// ErrIllegalAction rejects an action that the betting rules do not
	// permit right now. Room state is unchanged.
	ErrIllegalAction = errors.New("illegal action")

	// ErrNotYourTurn rejects an action from a player who is not the one
	// to act.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrHandComplete rejects actions arriving after the hand finished.
	ErrHandComplete = errors.New("hand is complete")
)
