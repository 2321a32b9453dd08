// Package server assembles the player's HTTP surface: the GGP wire
// endpoint, an optional admin introspection endpoint, and the
// configuration that wires them to a session and an optional history
// log.
package server

import (
	"fmt"
	"time"

	"github.com/roblaing/ggp-go-player/internal/historydb"
	"github.com/roblaing/ggp-go-player/internal/session"
	"github.com/roblaing/ggp-go-player/server/api"
)

// Config is the assembled configuration for a player server.
type Config struct {
	// PlayerName is reported in INFO responses.
	PlayerName string

	// ListenAddress is the address to bind, e.g. ":9147" or
	// "127.0.0.1:9147".
	ListenAddress string

	// AdminSecretHash is a bcrypt hash of the admin bearer secret. If
	// nil, the admin introspection routes are not mounted at all.
	AdminSecretHash []byte

	// HistoryDBPath, if non-empty, is the path to a SQLite file logging
	// completed matches.
	HistoryDBPath string

	// GraphvizPath, if non-empty, is the file each STOP dumps the
	// finished match's search tree to as Graphviz DOT.
	GraphvizPath string

	// UnauthDelayMillis is how long an admin request is held before an
	// error status is sent, to deprioritize abusive clients. Defaults to
	// 1000ms if zero.
	UnauthDelayMillis int
}

// FillDefaults returns a copy of cfg with unset fields set to their
// defaults.
func (cfg Config) FillDefaults() Config {
	out := cfg
	if out.PlayerName == "" {
		out.PlayerName = "ggp-go-player"
	}
	if out.ListenAddress == "" {
		out.ListenAddress = "127.0.0.1:9147"
	}
	if out.UnauthDelayMillis == 0 {
		out.UnauthDelayMillis = 1000
	}
	return out
}

// Validate returns an error if cfg has invalid field values.
func (cfg Config) Validate() error {
	if cfg.PlayerName == "" {
		return fmt.Errorf("player name must not be empty")
	}
	if cfg.ListenAddress == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

// UnauthDelay returns the configured admin-error delay as a
// time.Duration.
func (cfg Config) UnauthDelay() time.Duration {
	return time.Duration(cfg.UnauthDelayMillis) * time.Millisecond
}

// Server owns the assembled session, optional history log, and router.
type Server struct {
	cfg     Config
	session *session.Session
	history *historydb.DB
}

// New builds a Server from cfg, opening the history database if
// configured.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var hist *historydb.DB
	if cfg.HistoryDBPath != "" {
		var err error
		hist, err = historydb.Open(cfg.HistoryDBPath)
		if err != nil {
			return nil, fmt.Errorf("open history db: %w", err)
		}
	}

	return &Server{
		cfg:     cfg,
		session: session.New(cfg.PlayerName),
		history: hist,
	}, nil
}

// API builds the api.API used to construct HTTP handlers.
func (s *Server) API() api.API {
	return api.API{
		Session:      s.session,
		History:      s.history,
		UnauthDelay:  s.cfg.UnauthDelay(),
		GraphvizPath: s.cfg.GraphvizPath,
	}
}

// Close releases resources held by the server, such as the history
// database connection.
func (s *Server) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}
