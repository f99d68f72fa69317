package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// InsecureDefaultSecret is the session secret the original deployment
// shipped with. It is kept as the default for compatibility and warned
// about at startup.
const InsecureDefaultSecret = "change-this-in-production"

type Config struct {
	ListenIP      string `env:"TANOSVENY_LISTEN_IP" envDefault:"0.0.0.0"`
	ListenPort    int    `env:"TANOSVENY_LISTEN_PORT" envDefault:"4156"`
	SessionSecret string `env:"TANOSVENY_SESSION_SECRET" envDefault:"change-this-in-production"`
	DBPath        string `env:"TANOSVENY_DB_PATH" envDefault:"./tanosveny.db"`
	// BasePath mounts every route under a prefix, e.g. "/app156".
	// Empty means the application lives at the root.
	BasePath string `env:"TANOSVENY_BASE_PATH" envDefault:""`
}

// Load reads configuration from the environment, after a best-effort
// .env load.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")
	if cfg.BasePath != "" && !strings.HasPrefix(cfg.BasePath, "/") {
		cfg.BasePath = "/" + cfg.BasePath
	}

	if cfg.SessionSecret == InsecureDefaultSecret {
		log.Warn().Msg("TANOSVENY_SESSION_SECRET is the built-in default; set a real secret before exposing this server")
	}

	return cfg, nil
}

// ListenAddr returns the host:port pair to bind.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ListenIP, c.ListenPort)
}
