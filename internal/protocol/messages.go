package protocol

import (
	"encoding/json"

	"github.com/cardroomhq/cardroom/internal/deck"
)

// MessageType tags a wire message
type MessageType string

// Wire message type constants
const (
	// Client to server messages
	TypeJoin      MessageType = "join"
	TypeStartHand MessageType = "start_hand"
	TypeAction    MessageType = "action"
	TypeGetState  MessageType = "get_state"
	TypeListRooms MessageType = "list_rooms"

	// Server to client messages
	TypeJoined    MessageType = "joined"
	TypeGameState MessageType = "game_state"
	TypeRoomList  MessageType = "room_list"
	TypeError     MessageType = "error"
)

// Message is the JSON envelope exchanged on the wire
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage wraps a payload in an envelope
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: messageType, Data: dataBytes}, nil
}

// Decode unmarshals the payload into v
func (m *Message) Decode(v interface{}) error {
	return json.Unmarshal(m.Data, v)
}

// Client → Server Messages

// JoinData seats a player. An absent room_id creates a new room.
type JoinData struct {
	RoomID     string `json:"room_id,omitempty"`
	Name       string `json:"name"`
	BuyInChips int    `json:"buy_in_chips"`
}

type StartHandData struct {
	RoomID string `json:"room_id"`
}

// ActionData carries a betting decision. Amount is the total the player's
// street bet becomes (to-amount) and only applies to bet and raise.
type ActionData struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
}

type GetStateData struct {
	RoomID string `json:"room_id"`
}

// Server → Client Messages

type JoinedData struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
}

// Error codes sent with TypeError
const (
	CodeIllegalAction  = "illegal_action"
	CodeNotYourTurn    = "not_your_turn"
	CodeRoomFull       = "room_full"
	CodeRoomNotFound   = "room_not_found"
	CodeHandInProgress = "hand_in_progress"
	CodeCannotStart    = "cannot_start"
	CodeInvalidMessage = "invalid_message"
	CodeInternal       = "internal_error"
)

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomInfo struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	SmallBlind  int    `json:"small_blind"`
	BigBlind    int    `json:"big_blind"`
	HandPhase   string `json:"hand_phase"`
}

type RoomListData struct {
	Rooms []RoomInfo `json:"rooms"`
}

// PlayerView is one seat as a particular client is allowed to see it.
// HoleCards is populated only for the client's own seat, or for every
// live seat once the hand reaches showdown.
type PlayerView struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Chips        int         `json:"chips"`
	Status       string      `json:"status"`
	BetThisRound int         `json:"bet_this_round"`
	HoleCards    []deck.Card `json:"hole_cards,omitempty"`
}

type PotView struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

type AwardView struct {
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
	Hand     string `json:"hand,omitempty"`
}

type HandResult struct {
	Awards   []AwardView `json:"awards"`
	Showdown bool        `json:"showdown"`
}

// GameState is the per-client room view pushed after every state change
type GameState struct {
	RoomID         string       `json:"room_id"`
	HandPhase      string       `json:"hand_phase"`
	CommunityCards []deck.Card  `json:"community_cards"`
	Pots           []PotView    `json:"pots"`
	Players        []PlayerView `json:"players"`
	ToAct          string       `json:"to_act,omitempty"`
	Button         int          `json:"button"`
	SmallBlind     int          `json:"small_blind"`
	BigBlind       int          `json:"big_blind"`
	CurrentBet     int          `json:"current_bet"`
	LastResult     *HandResult  `json:"last_result,omitempty"`
}
