package room

import (
	"github.com/cardroomhq/cardroom/internal/deck"
	"github.com/cardroomhq/cardroom/internal/game"
	"github.com/cardroomhq/cardroom/internal/protocol"
)

// view is an immutable render of the room taken after a mutation. The
// worker goroutine builds it; readers render per-player copies from it
// without touching the worker. Hole cards live outside the shared base
// so each recipient only ever sees their own, until a showdown reveals
// the contested hands.
type view struct {
	info   protocol.RoomInfo
	base   protocol.GameState
	hole   map[string][]deck.Card
	live   map[string]bool
	reveal bool
}

// renderFor produces the game state as seen by one player. Everyone
// shares the base; hole cards are spliced in for the viewer and, after
// a showdown, for every player whose hand went to the reveal.
func (v *view) renderFor(playerID string) *protocol.GameState {
	gs := v.base
	players := make([]protocol.PlayerView, len(v.base.Players))
	copy(players, v.base.Players)
	for i := range players {
		id := players[i].ID
		if id == playerID || (v.reveal && v.live[id]) {
			players[i].HoleCards = v.hole[id]
		}
	}
	gs.Players = players
	return &gs
}

// snapshot renders the room's current state into a fresh view. Runs on
// the worker goroutine only.
func (r *Room) snapshot() *view {
	v := &view{
		base: protocol.GameState{
			RoomID:     r.id,
			HandPhase:  r.phase(),
			Button:     r.button,
			SmallBlind: r.cfg.SmallBlind,
			BigBlind:   r.cfg.BigBlind,
			LastResult: r.lastResult,
		},
		hole: make(map[string][]deck.Card),
		live: make(map[string]bool),
	}

	h := r.hand
	if h != nil {
		v.base.CommunityCards = h.Board()
		if !h.Complete() {
			v.base.ToAct = h.ToAct()
			v.base.CurrentBet = h.CurrentBet()
			for _, p := range h.Pots() {
				pv := protocol.PotView{Amount: p.Amount}
				for _, seat := range p.Eligible {
					pv.Eligible = append(pv.Eligible, r.players[seat].ID)
				}
				v.base.Pots = append(v.base.Pots, pv)
			}
		}
		if res := h.Result(); res != nil && res.Showdown {
			v.reveal = true
		}
	}

	for _, p := range r.players {
		pv := protocol.PlayerView{
			ID:     p.ID,
			Name:   p.Name,
			Chips:  p.Chips,
			Status: r.playerStatus(p),
		}
		if h != nil {
			pv.BetThisRound = p.Bet
		}
		if len(p.HoleCards) > 0 {
			cards := make([]deck.Card, len(p.HoleCards))
			copy(cards, p.HoleCards)
			v.hole[p.ID] = cards
		}
		if p.InHand() {
			v.live[p.ID] = true
		}
		v.base.Players = append(v.base.Players, pv)
	}

	v.info = protocol.RoomInfo{
		ID:          r.id,
		PlayerCount: len(r.players),
		MaxPlayers:  r.cfg.MaxPlayers,
		SmallBlind:  r.cfg.SmallBlind,
		BigBlind:    r.cfg.BigBlind,
		HandPhase:   v.base.HandPhase,
	}
	return v
}

func (r *Room) phase() string {
	h := r.hand
	switch {
	case h == nil:
		return "idle"
	case !h.Complete():
		return h.Street().String()
	case h.Result() != nil && h.Result().Showdown:
		return game.Showdown.String()
	default:
		return "idle"
	}
}

func (r *Room) playerStatus(p *game.Player) string {
	switch {
	case !r.connected[p.ID]:
		return "disconnected"
	case p.SittingOut:
		return "sitting_out"
	case r.hand != nil && p.Folded:
		return "folded"
	case r.hand != nil && p.AllIn:
		return "all_in"
	default:
		return "active"
	}
}
