package room

import "errors"

var (
	// ErrRoomFull rejects a join when every seat is taken
	ErrRoomFull = errors.New("room is full")

	// ErrRoomNotFound is returned by the registry for unknown room ids
	ErrRoomNotFound = errors.New("room not found")

	// ErrHandInProgress rejects starting a hand while one is being played
	ErrHandInProgress = errors.New("hand already in progress")

	// ErrNoHand rejects actions while the room is idle
	ErrNoHand = errors.New("no hand in progress")

	// ErrRoomClosed is returned when the room's worker has shut down
	ErrRoomClosed = errors.New("room is closed")

	// ErrUnknownPlayer rejects requests naming a player not seated here
	ErrUnknownPlayer = errors.New("player not in room")
)
