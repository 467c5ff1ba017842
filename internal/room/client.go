package room

import "github.com/cardroomhq/cardroom/internal/protocol"

// Client is a connected session that can receive pushed messages. The
// transport owns delivery; Send must not block the caller.
type Client interface {
	Send(msg *protocol.Message)
}
