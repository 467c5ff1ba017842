package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("does-not-exist.hcl")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Address != "localhost" {
		t.Errorf("defaults = %s:%d, want localhost:8080", cfg.Server.Address, cfg.Server.Port)
	}
	if cfg.Room.SmallBlind != 1 || cfg.Room.BigBlind != 2 {
		t.Errorf("default stakes = %d/%d, want 1/2", cfg.Room.SmallBlind, cfg.Room.BigBlind)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfigFromHCL(t *testing.T) {
	t.Parallel()

	content := `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

room {
  small_blind          = 5
  big_blind            = 10
  max_players          = 6
  turn_timeout_seconds = 30
}
`
	path := filepath.Join(t.TempDir(), "cardroom.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != "0.0.0.0" || cfg.Server.Port != 9000 {
		t.Errorf("server = %s:%d, want 0.0.0.0:9000", cfg.Server.Address, cfg.Server.Port)
	}
	if cfg.ListenAddress() != "0.0.0.0:9000" {
		t.Errorf("ListenAddress() = %q", cfg.ListenAddress())
	}

	rc := cfg.RoomConfig()
	if rc.SmallBlind != 5 || rc.BigBlind != 10 || rc.MaxPlayers != 6 {
		t.Errorf("room config = %+v", rc)
	}
	if rc.TurnTimeout != 30*time.Second {
		t.Errorf("TurnTimeout = %v, want 30s", rc.TurnTimeout)
	}
}

func TestLoadConfigPartialFileGetsDefaults(t *testing.T) {
	t.Parallel()

	content := `
server {
  port = 9001
}
`
	path := filepath.Join(t.TempDir(), "cardroom.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Server.Address != "localhost" {
		t.Errorf("Address = %q, want default localhost", cfg.Server.Address)
	}
	if cfg.Room.BigBlind != 2 {
		t.Errorf("BigBlind = %d, want default 2", cfg.Room.BigBlind)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"zero small blind", func(c *Config) { c.Room.SmallBlind = 0 }},
		{"big blind below small", func(c *Config) { c.Room.BigBlind = 1; c.Room.SmallBlind = 1 }},
		{"too many players", func(c *Config) { c.Room.MaxPlayers = 10 }},
		{"one player", func(c *Config) { c.Room.MaxPlayers = 1 }},
		{"negative timeout", func(c *Config) { c.Room.TurnTimeoutSeconds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestSetListenAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr    string
		host    string
		port    int
		wantErr bool
	}{
		{addr: "0.0.0.0:9000", host: "0.0.0.0", port: 9000},
		{addr: ":9000", host: "", port: 9000},
		{addr: "example.com:80", host: "example.com", port: 80},
		{addr: "0.0.0.0", wantErr: true},
		{addr: "0.0.0.0:http", wantErr: true},
		{addr: "", wantErr: true},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		err := cfg.SetListenAddress(tt.addr)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SetListenAddress(%q) should fail", tt.addr)
			}
			continue
		}
		if err != nil {
			t.Errorf("SetListenAddress(%q): %v", tt.addr, err)
			continue
		}
		if cfg.Server.Address != tt.host || cfg.Server.Port != tt.port {
			t.Errorf("SetListenAddress(%q) = %s:%d, want %s:%d",
				tt.addr, cfg.Server.Address, cfg.Server.Port, tt.host, tt.port)
		}
		if got := cfg.ListenAddress(); got != tt.addr {
			t.Errorf("ListenAddress() = %q, want %q", got, tt.addr)
		}
	}
}
