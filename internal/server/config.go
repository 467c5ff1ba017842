package server

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroomhq/cardroom/internal/room"
)

// Config is the complete server configuration
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Room   *RoomSettings   `hcl:"room,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RoomSettings holds the stakes applied to every room the server creates
type RoomSettings struct {
	SmallBlind         int `hcl:"small_blind,optional"`
	BigBlind           int `hcl:"big_blind,optional"`
	MaxPlayers         int `hcl:"max_players,optional"`
	TurnTimeoutSeconds int `hcl:"turn_timeout_seconds,optional"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Room: &RoomSettings{
			SmallBlind: 1,
			BigBlind:   2,
			MaxPlayers: 9,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := DefaultConfig()
	if config.Server == nil {
		config.Server = def.Server
	}
	if config.Room == nil {
		config.Room = def.Room
	}
	if config.Server.Address == "" {
		config.Server.Address = def.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = def.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = def.Server.LogLevel
	}
	if config.Room.SmallBlind == 0 {
		config.Room.SmallBlind = def.Room.SmallBlind
	}
	if config.Room.BigBlind == 0 {
		config.Room.BigBlind = def.Room.BigBlind
	}
	if config.Room.MaxPlayers == 0 {
		config.Room.MaxPlayers = def.Room.MaxPlayers
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Room.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Room.BigBlind <= c.Room.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Room.MaxPlayers < 2 || c.Room.MaxPlayers > 9 {
		return fmt.Errorf("max players must be between 2 and 9")
	}
	if c.Room.TurnTimeoutSeconds < 0 {
		return fmt.Errorf("turn timeout must not be negative")
	}
	return nil
}

// ListenAddress returns the full listen address
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// SetListenAddress overrides the configured bind host and port from a
// host:port string, as given on the command line.
func (c *Config) SetListenAddress(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port in listen address %q: %w", addr, err)
	}
	c.Server.Address = host
	c.Server.Port = port
	return nil
}

// RoomConfig converts the room block into the stakes every new room uses
func (c *Config) RoomConfig() room.Config {
	return room.Config{
		SmallBlind:  c.Room.SmallBlind,
		BigBlind:    c.Room.BigBlind,
		MaxPlayers:  c.Room.MaxPlayers,
		TurnTimeout: time.Duration(c.Room.TurnTimeoutSeconds) * time.Second,
	}
}
