// Package config loads engine and server tuning from a TOML file, the way
// server/config.go and internal/tqw load their own settings, via
// github.com/BurntSushi/toml.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/dao/inmem"
	"github.com/dekarrin/shrdlite/server/dao/sqlite"
)

// DBType is the type of a server persistence-layer connection.
type DBType string

func (dbt DBType) String() string { return string(dbt) }

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

const (
	MaxSecretSize = 64
	MinSecretSize = 32

	// DefaultListenAddress is used when no listen address is configured.
	DefaultListenAddress = "localhost:8080"

	// DefaultScenarioPath is the scenario file cmd/shrdlite loads when
	// none is given on the command line.
	DefaultScenarioPath = "scene.toml"
)

// ParseDBType parses a string found in a connection string into a DBType.
func ParseDBType(s string) (DBType, error) {
	switch strings.ToLower(s) {
	case DatabaseSQLite.String():
		return DatabaseSQLite, nil
	case DatabaseInMemory.String():
		return DatabaseInMemory, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// Database contains configuration settings for connecting to a
// persistence layer.
type Database struct {
	// Type selects which of this struct's other fields are relevant.
	Type DBType `toml:"type"`

	// DataDir is where to store data on disk. Only used for DatabaseSQLite.
	DataDir string `toml:"data_dir"`
}

// ParseDBConnString parses a "engine:params" (or bare "engine") connection
// string into a Database, the way server/config.go does for its --db flag.
func ParseDBConnString(s string) (Database, error) {
	var paramStr string
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 2 {
		paramStr = strings.TrimSpace(parts[1])
	}

	dbEng, err := ParseDBType(strings.TrimSpace(parts[0]))
	if err != nil {
		return Database{}, fmt.Errorf("unsupported DB engine: %w", err)
	}

	switch dbEng {
	case DatabaseInMemory:
		if paramStr != "" {
			return Database{}, fmt.Errorf("unsupported param(s) for in-memory DB engine: %s", paramStr)
		}
		return Database{Type: DatabaseInMemory}, nil
	case DatabaseSQLite:
		if paramStr == "" {
			return Database{}, fmt.Errorf("sqlite DB engine requires path to data directory after ':'")
		}
		return Database{Type: DatabaseSQLite, DataDir: paramStr}, nil
	default:
		return Database{}, fmt.Errorf("cannot specify DB engine 'none' (perhaps you wanted 'inmem'?)")
	}
}

// Connect performs all logic needed to connect to the configured DB and
// initialize the store for use.
func (db Database) Connect() (dao.Store, error) {
	switch db.Type {
	case DatabaseInMemory:
		return inmem.NewDatastore(), nil
	case DatabaseSQLite:
		if err := os.MkdirAll(db.DataDir, 0770); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := sqlite.NewDatastore(db.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// Engine holds tuning knobs for the interpreter/planner pipeline.
type Engine struct {
	// MaxStates is the MAX_STATES ceiling passed to internal/planner.Plan.
	// Zero means use internal/planner's own default.
	MaxStates int `toml:"max_states"`

	// ScenarioPath is the TOML scenario file cmd/shrdlite loads at
	// startup when none is given on the command line.
	ScenarioPath string `toml:"scenario_path"`
}

// Server holds tuning knobs for cmd/shrdlited.
type Server struct {
	// ListenAddress is the address the HTTP server binds to.
	ListenAddress string `toml:"listen_address"`

	// TokenSecret signs issued bearer tokens. If empty, a default
	// (dev-only) secret is used.
	TokenSecret string `toml:"token_secret"`

	// DB selects the persistence layer.
	DB Database `toml:"db"`

	// UnauthDelayMillis is added before a 401/403/500 response to
	// deprioritize misbehaving clients. Negative disables the delay.
	UnauthDelayMillis int `toml:"unauth_delay_millis"`
}

// UnauthDelay returns Server's UnauthDelayMillis as a time.Duration.
func (s Server) UnauthDelay() time.Duration {
	if s.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Millisecond * time.Duration(s.UnauthDelayMillis)
}

// Config is the top-level configuration for shrdlite tooling.
type Config struct {
	Engine Engine `toml:"engine"`
	Server Server `toml:"server"`
}

// FillDefaults returns a copy of cfg with unset fields set to their
// defaults.
func (cfg Config) FillDefaults() Config {
	filled := cfg

	if filled.Engine.ScenarioPath == "" {
		filled.Engine.ScenarioPath = DefaultScenarioPath
	}
	if filled.Server.ListenAddress == "" {
		filled.Server.ListenAddress = DefaultListenAddress
	}
	if filled.Server.TokenSecret == "" {
		filled.Server.TokenSecret = "DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!"
	}
	if filled.Server.DB.Type == DatabaseNone {
		filled.Server.DB = Database{Type: DatabaseInMemory}
	}
	if filled.Server.UnauthDelayMillis == 0 {
		filled.Server.UnauthDelayMillis = 1000
	}

	return filled
}

// Load reads and parses a TOML configuration file at path, applying
// defaults for anything left unset. A missing file is not an error; it is
// treated as an empty config with all defaults applied.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		return cfg.FillDefaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.FillDefaults(), nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	return cfg.FillDefaults(), nil
}
