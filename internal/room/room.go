package room

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/game"
	"github.com/cardroomhq/cardroom/internal/protocol"
)

const mailboxSize = 64

// Config holds the table stakes and timing for one room.
type Config struct {
	SmallBlind  int
	BigBlind    int
	MaxPlayers  int
	TurnTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.SmallBlind <= 0 {
		c.SmallBlind = 1
	}
	if c.BigBlind <= c.SmallBlind {
		c.BigBlind = c.SmallBlind * 2
	}
	if c.MaxPlayers <= 0 || c.MaxPlayers > game.MaxPlayers {
		c.MaxPlayers = game.MaxPlayers
	}
	return c
}

// Room is a single poker table. All mutable state belongs to the worker
// goroutine started by NewRoom; public methods hand it a closure and
// wait for a reply, so callers never race each other. Read-only state
// queries are served from an atomically published view instead, keeping
// get_state off the worker entirely.
type Room struct {
	id      string
	cfg     Config
	logger  *log.Logger
	clock   quartz.Clock
	rng     *rand.Rand
	onEmpty func()

	cmds      chan func()
	closed    chan struct{}
	closeOnce sync.Once

	view atomic.Pointer[view]

	// worker-owned from here down
	players    []*game.Player
	clients    map[string]Client
	connected  map[string]bool
	button     int
	hand       *game.Hand
	lastResult *protocol.HandResult
	turnTimer  *quartz.Timer
}

// NewRoom starts the room worker. onEmpty is called (from its own
// goroutine) once the last player is gone, so the owner can drop the
// room from its registry.
func NewRoom(id string, cfg Config, rng *rand.Rand, logger *log.Logger, clock quartz.Clock, onEmpty func()) *Room {
	r := &Room{
		id:        id,
		cfg:       cfg.withDefaults(),
		logger:    logger.WithPrefix("room").With("room_id", id),
		clock:     clock,
		rng:       rng,
		onEmpty:   onEmpty,
		cmds:      make(chan func(), mailboxSize),
		closed:    make(chan struct{}),
		clients:   make(map[string]Client),
		connected: make(map[string]bool),
		button:    -1,
	}
	r.view.Store(r.snapshot())
	go r.run()
	return r
}

func (r *Room) run() {
	for {
		select {
		case fn := <-r.cmds:
			fn()
		case <-r.closed:
			r.stopTurnTimer()
			return
		}
	}
}

// do runs fn on the worker and waits for it to finish.
func (r *Room) do(fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}
	select {
	case r.cmds <- wrapped:
	case <-r.closed:
		return ErrRoomClosed
	}
	select {
	case <-done:
		return nil
	case <-r.closed:
		return ErrRoomClosed
	}
}

// enqueue schedules fn without waiting. Safe to call from the worker
// itself: a full mailbox hands off to a goroutine instead of blocking.
func (r *Room) enqueue(fn func()) {
	select {
	case r.cmds <- fn:
		return
	case <-r.closed:
		return
	default:
	}
	go func() {
		select {
		case r.cmds <- fn:
		case <-r.closed:
		}
	}()
}

func (r *Room) ID() string { return r.id }

// Info reports the lobby listing entry for this room.
func (r *Room) Info() protocol.RoomInfo { return r.view.Load().info }

// State renders the room as seen by one player, from the latest
// published view.
func (r *Room) State(playerID string) *protocol.GameState {
	return r.view.Load().renderFor(playerID)
}

// Close shuts the worker down. Pending do calls return ErrRoomClosed.
func (r *Room) Close() {
	r.closeOnce.Do(func() { close(r.closed) })
}

// Join seats a new player with a fresh identity and the given stack,
// acknowledges them, and broadcasts the new state. Joining mid-hand is
// allowed; the player is dealt in from the next hand onward.
func (r *Room) Join(c Client, name string, buyIn int) (string, error) {
	if buyIn <= 0 {
		return "", fmt.Errorf("%w: buy-in must be positive", game.ErrIllegalAction)
	}
	var (
		playerID string
		jerr     error
	)
	err := r.do(func() {
		if len(r.players) >= r.cfg.MaxPlayers {
			jerr = ErrRoomFull
			return
		}
		seat := len(r.players)
		if name == "" {
			name = fmt.Sprintf("player-%d", seat+1)
		}
		p := &game.Player{
			ID:    uuid.NewString(),
			Name:  name,
			Seat:  seat,
			Chips: buyIn,
		}
		r.players = append(r.players, p)
		r.clients[p.ID] = c
		r.connected[p.ID] = true
		playerID = p.ID
		r.logger.Info("player joined", "player_id", p.ID, "name", p.Name, "seat", seat, "chips", buyIn)

		// Ack before the state broadcast so the client learns its id
		// before it has to interpret a game_state.
		ack, err := protocol.NewMessage(protocol.TypeJoined, protocol.JoinedData{
			RoomID:   r.id,
			PlayerID: p.ID,
			Seat:     seat,
		})
		if err == nil {
			c.Send(ack)
		}
		r.publish()
	})
	if err != nil {
		return "", err
	}
	return playerID, jerr
}

// StartHand deals a new hand if the room is idle and enough players
// have chips. The button advances to the next eligible seat first.
func (r *Room) StartHand(playerID string) error {
	var serr error
	err := r.do(func() {
		if r.playerBy(playerID) == nil {
			serr = ErrUnknownPlayer
			return
		}
		if r.hand != nil && !r.hand.Complete() {
			serr = ErrHandInProgress
			return
		}
		next := game.NextButton(r.players, r.button)
		h, err := game.NewHand(r.rng, r.players, next, r.cfg.SmallBlind, r.cfg.BigBlind)
		if err != nil {
			serr = err
			return
		}
		r.hand = h
		r.button = h.Button()
		r.lastResult = nil
		r.logger.Info("hand started", "button", r.button, "players", len(r.players))
		r.postMutation()
	})
	if err != nil {
		return err
	}
	return serr
}

// Action applies a betting decision for the player whose turn it is.
func (r *Room) Action(playerID string, action game.Action, amount int) error {
	var aerr error
	err := r.do(func() {
		if r.playerBy(playerID) == nil {
			aerr = ErrUnknownPlayer
			return
		}
		if r.hand == nil || r.hand.Complete() {
			aerr = ErrNoHand
			return
		}
		if err := r.hand.Apply(playerID, action, amount); err != nil {
			if errors.Is(err, deck.ErrExhausted) {
				aerr = r.abortHand(err)
				return
			}
			aerr = err
			return
		}
		r.postMutation()
	})
	if err != nil {
		return err
	}
	return aerr
}

// Disconnect detaches a player's session. It never waits on the
// worker: the transport cuts a stalled client loose from inside a
// state broadcast, which runs on the worker itself, so the detach is
// queued and applied asynchronously. A live hand keeps the seat so pot
// arithmetic stays intact: with no turn clock configured the player is
// folded on the spot, otherwise the clock folds them when their turn
// comes. Seats of departed players are reclaimed once the hand ends,
// or immediately between hands.
func (r *Room) Disconnect(playerID string) {
	r.enqueue(func() {
		if r.playerBy(playerID) == nil {
			return
		}
		delete(r.clients, playerID)
		r.connected[playerID] = false
		r.logger.Info("player disconnected", "player_id", playerID)

		if r.hand != nil && !r.hand.Complete() {
			if r.cfg.TurnTimeout <= 0 {
				if err := r.hand.ForceFold(playerID); err == nil {
					r.postMutation()
					return
				}
			}
			r.publish()
			r.scheduleTurnTimer()
			return
		}
		r.removeParted()
		r.publish()
	})
}

// postMutation publishes the new state and, when the hand just ended,
// settles it: the terminal state (with any showdown reveal) goes out
// first, then busted stacks sit out, departed seats are reclaimed and
// the room returns to idle.
func (r *Room) postMutation() {
	if r.hand != nil && r.hand.Complete() {
		r.settleHand()
		return
	}
	r.publish()
	r.scheduleTurnTimer()
}

func (r *Room) settleHand() {
	res := r.hand.Result()
	if res != nil {
		hr := &protocol.HandResult{Showdown: res.Showdown}
		for _, a := range res.Awards {
			hr.Awards = append(hr.Awards, protocol.AwardView{
				PlayerID: a.PlayerID,
				Amount:   a.Amount,
				Hand:     a.HandName,
			})
			r.logger.Info("pot awarded", "player_id", a.PlayerID, "amount", a.Amount, "hand", a.HandName)
		}
		r.lastResult = hr
	}
	r.publish()

	r.hand = nil
	r.stopTurnTimer()
	for _, p := range r.players {
		if p.Chips == 0 {
			p.SittingOut = true
			r.logger.Info("player busted", "player_id", p.ID, "name", p.Name)
		}
	}
	r.removeParted()
	r.publish()
}

// abortHand unwinds a hand that cannot continue, restoring the stacks
// each player brought into it.
func (r *Room) abortHand(cause error) error {
	r.logger.Error("hand aborted", "err", cause)
	r.hand.Abort()
	r.hand = nil
	r.lastResult = nil
	r.stopTurnTimer()
	r.removeParted()
	r.publish()
	return fmt.Errorf("hand aborted: %w", cause)
}

// removeParted drops seats whose sessions are gone and reindexes the
// rest. Only called between hands.
func (r *Room) removeParted() {
	kept := r.players[:0]
	for _, p := range r.players {
		if r.connected[p.ID] {
			kept = append(kept, p)
		} else {
			delete(r.connected, p.ID)
			r.logger.Info("seat reclaimed", "player_id", p.ID, "name", p.Name)
		}
	}
	for i, p := range kept {
		p.Seat = i
	}
	r.players = kept
	if len(r.players) == 0 && r.onEmpty != nil {
		cb := r.onEmpty
		r.onEmpty = nil
		go cb()
	}
}

func (r *Room) publish() {
	v := r.snapshot()
	r.view.Store(v)
	for id, c := range r.clients {
		msg, err := protocol.NewMessage(protocol.TypeGameState, v.renderFor(id))
		if err != nil {
			r.logger.Error("encode state", "err", err)
			return
		}
		c.Send(msg)
	}
}

// scheduleTurnTimer arms the turn clock for whoever is next to act.
func (r *Room) scheduleTurnTimer() {
	r.stopTurnTimer()
	if r.cfg.TurnTimeout <= 0 || r.hand == nil || r.hand.Complete() {
		return
	}
	toAct := r.hand.ToAct()
	if toAct == "" {
		return
	}
	r.turnTimer = r.clock.AfterFunc(r.cfg.TurnTimeout, func() {
		r.enqueue(func() { r.foldExpired(toAct) })
	})
}

func (r *Room) stopTurnTimer() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

func (r *Room) foldExpired(playerID string) {
	if r.hand == nil || r.hand.Complete() || r.hand.ToAct() != playerID {
		return
	}
	r.logger.Info("turn clock expired", "player_id", playerID)
	if err := r.hand.ForceFold(playerID); err != nil {
		r.logger.Error("fold on expiry", "player_id", playerID, "err", err)
		return
	}
	r.postMutation()
}

func (r *Room) playerBy(id string) *game.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
