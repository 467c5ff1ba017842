package room

import (
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroomhq/cardroom/internal/protocol"
	"github.com/cardroomhq/cardroom/internal/randutil"
	"github.com/cardroomhq/cardroom/internal/roomid"
)

// Registry tracks every live room. Rooms remove themselves once their
// last player leaves.
type Registry struct {
	defaults Config
	logger   *log.Logger
	clock    quartz.Clock
	newRNG   func() *rand.Rand

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry(defaults Config, logger *log.Logger, clock quartz.Clock) *Registry {
	return &Registry{
		defaults: defaults.withDefaults(),
		logger:   logger,
		clock:    clock,
		newRNG:   randutil.NewCrypto,
		rooms:    make(map[string]*Room),
	}
}

// Create spins up a new room with the registry's default stakes.
func (reg *Registry) Create() *Room {
	id := roomid.New()
	r := NewRoom(id, reg.defaults, reg.newRNG(), reg.logger, reg.clock, func() {
		reg.remove(id)
	})
	reg.mu.Lock()
	reg.rooms[id] = r
	reg.mu.Unlock()
	reg.logger.Info("room created", "room_id", id)
	return r
}

func (reg *Registry) Get(id string) (*Room, error) {
	reg.mu.RLock()
	r, ok := reg.rooms[id]
	reg.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// List reports every room for the lobby, in stable id order.
func (reg *Registry) List() []protocol.RoomInfo {
	reg.mu.RLock()
	infos := make([]protocol.RoomInfo, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		infos = append(infos, r.Info())
	}
	reg.mu.RUnlock()
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

func (reg *Registry) remove(id string) {
	reg.mu.Lock()
	r, ok := reg.rooms[id]
	delete(reg.rooms, id)
	reg.mu.Unlock()
	if ok {
		r.Close()
		reg.logger.Info("room removed", "room_id", id)
	}
}

// CloseAll shuts every room down. Used on server shutdown.
func (reg *Registry) CloseAll() {
	reg.mu.Lock()
	for id, r := range reg.rooms {
		r.Close()
		delete(reg.rooms, id)
	}
	reg.mu.Unlock()
}
