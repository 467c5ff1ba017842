package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardroomhq/cardroom/internal/game"
	"github.com/cardroomhq/cardroom/internal/protocol"
	"github.com/cardroomhq/cardroom/internal/room"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client. Once the
// client joins a room the connection becomes that room's delivery
// channel for pushed state.
type Connection struct {
	conn      *websocket.Conn
	send      chan *protocol.Message
	registry  *room.Registry
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.RWMutex
	playerID string
	room     *room.Room
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, registry *room.Registry) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:     conn,
		send:     make(chan *protocol.Message, 256),
		registry: registry,
		logger:   logger.WithPrefix("conn"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection and detaches the player from their room
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
		if rm, playerID := c.session(); rm != nil {
			rm.Disconnect(playerID)
		}
	})
	return err
}

// Send queues a message for the client. A client that cannot drain its
// buffer is cut loose rather than allowed to stall a room broadcast.
func (c *Connection) Send(msg *protocol.Message) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("send buffer full, closing connection", "player", c.playerIDLocked())
		_ = c.Close()
	}
}

func (c *Connection) setSession(rm *room.Room, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = rm
	c.playerID = playerID
}

func (c *Connection) session() (*room.Room, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.room, c.playerID
}

func (c *Connection) playerIDLocked() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg protocol.Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *protocol.Message) {
	c.logger.Debug("received message", "type", msg.Type, "player", c.playerIDLocked())

	switch msg.Type {
	case protocol.TypeJoin:
		var data protocol.JoinData
		if err := msg.Decode(&data); err != nil {
			c.sendError(protocol.CodeInvalidMessage, "failed to parse join data")
			return
		}
		c.handleJoin(data)

	case protocol.TypeStartHand:
		c.handleStartHand()

	case protocol.TypeAction:
		var data protocol.ActionData
		if err := msg.Decode(&data); err != nil {
			c.sendError(protocol.CodeInvalidMessage, "failed to parse action data")
			return
		}
		c.handleAction(data)

	case protocol.TypeGetState:
		c.handleGetState()

	case protocol.TypeListRooms:
		c.handleListRooms()

	default:
		c.sendError(protocol.CodeInvalidMessage, "unknown message type: "+string(msg.Type))
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := protocol.NewMessage(protocol.TypeError, protocol.ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("failed to create error message", "error", err)
		return
	}
	c.Send(errorMsg)
}

// sendEngineError maps room and engine errors onto protocol codes
func (c *Connection) sendEngineError(err error) {
	switch {
	case errors.Is(err, room.ErrRoomFull):
		c.sendError(protocol.CodeRoomFull, err.Error())
	case errors.Is(err, room.ErrRoomNotFound):
		c.sendError(protocol.CodeRoomNotFound, err.Error())
	case errors.Is(err, room.ErrHandInProgress):
		c.sendError(protocol.CodeHandInProgress, err.Error())
	case errors.Is(err, game.ErrNotEnoughPlayers):
		c.sendError(protocol.CodeCannotStart, err.Error())
	case errors.Is(err, game.ErrNotYourTurn):
		c.sendError(protocol.CodeNotYourTurn, err.Error())
	case errors.Is(err, game.ErrIllegalAction), errors.Is(err, room.ErrNoHand):
		c.sendError(protocol.CodeIllegalAction, err.Error())
	default:
		c.sendError(protocol.CodeInternal, err.Error())
	}
}

func (c *Connection) handleJoin(data protocol.JoinData) {
	if rm, _ := c.session(); rm != nil {
		c.sendError(protocol.CodeInvalidMessage, "already in a room")
		return
	}
	if data.BuyInChips <= 0 {
		// Checked before any room is created on the player's behalf
		c.sendError(protocol.CodeIllegalAction, "buy-in must be positive")
		return
	}

	var rm *room.Room
	if data.RoomID == "" {
		rm = c.registry.Create()
	} else {
		var err error
		rm, err = c.registry.Get(data.RoomID)
		if err != nil {
			c.sendEngineError(err)
			return
		}
	}

	playerID, err := rm.Join(c, data.Name, data.BuyInChips)
	if err != nil {
		c.sendEngineError(err)
		return
	}
	c.setSession(rm, playerID)
	c.logger.Info("join", "room_id", rm.ID(), "player_id", playerID, "name", data.Name)
}

func (c *Connection) handleStartHand() {
	rm, playerID := c.session()
	if rm == nil {
		c.sendError(protocol.CodeRoomNotFound, "join a room first")
		return
	}
	if err := rm.StartHand(playerID); err != nil {
		c.sendEngineError(err)
	}
}

func (c *Connection) handleAction(data protocol.ActionData) {
	rm, playerID := c.session()
	if rm == nil {
		c.sendError(protocol.CodeRoomNotFound, "join a room first")
		return
	}
	if data.PlayerID != "" && data.PlayerID != playerID {
		c.sendError(protocol.CodeInvalidMessage, "player_id does not match this connection")
		return
	}
	action, err := game.ParseAction(data.Action)
	if err != nil {
		c.sendError(protocol.CodeInvalidMessage, err.Error())
		return
	}
	if err := rm.Action(playerID, action, data.Amount); err != nil {
		c.sendEngineError(err)
	}
}

func (c *Connection) handleGetState() {
	rm, playerID := c.session()
	if rm == nil {
		c.sendError(protocol.CodeRoomNotFound, "join a room first")
		return
	}
	msg, err := protocol.NewMessage(protocol.TypeGameState, rm.State(playerID))
	if err != nil {
		c.logger.Error("encode state", "error", err)
		return
	}
	c.Send(msg)
}

func (c *Connection) handleListRooms() {
	msg, err := protocol.NewMessage(protocol.TypeRoomList, protocol.RoomListData{
		Rooms: c.registry.List(),
	})
	if err != nil {
		c.logger.Error("encode room list", "error", err)
		return
	}
	c.Send(msg)
}
