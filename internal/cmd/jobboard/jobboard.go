// Package jobboard parses job board service configuration and launches the
// HTTP API.
package jobboard

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/jobboard/internal/platform/cmd"
	"github.com/louisbranch/jobboard/internal/platform/logging"
	"github.com/louisbranch/jobboard/internal/platform/otel"
	"github.com/louisbranch/jobboard/internal/platform/timeouts"
	server "github.com/louisbranch/jobboard/internal/services/jobboard/app"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"go.uber.org/zap"
)

// Config holds job board command configuration.
type Config struct {
	Addr              string        `env:"JOBBOARD_HTTP_ADDR" envDefault:":8080"`
	DBPath            string        `env:"JOBBOARD_DB_PATH" envDefault:"data/jobboard.db"`
	SessionSecret     string        `env:"JOBBOARD_SESSION_SECRET"`
	SessionTTL        time.Duration `env:"JOBBOARD_SESSION_TTL" envDefault:"24h"`
	SessionIssuer     string        `env:"JOBBOARD_SESSION_ISSUER" envDefault:"jobboard"`
	SecureCookies     bool          `env:"JOBBOARD_SECURE_COOKIES"`
	BcryptCost        int           `env:"JOBBOARD_BCRYPT_COST" envDefault:"10"`
	LogLevel          string        `env:"JOBBOARD_LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"JOBBOARD_LOG_FORMAT" envDefault:"json"`
	AuthRatePerMinute int           `env:"JOBBOARD_AUTH_RATE_PER_MINUTE" envDefault:"20"`

	Telemetry otel.Config
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the job board SQLite database")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SecretBytes decodes the configured session secret. Hex values, as printed
// by the signing-key tool, are decoded; anything else is used verbatim.
func (c Config) SecretBytes() ([]byte, error) {
	secret := strings.TrimSpace(c.SessionSecret)
	if secret == "" {
		return nil, errors.New("JOBBOARD_SESSION_SECRET is required")
	}
	key := []byte(secret)
	if decoded, err := hex.DecodeString(secret); err == nil {
		key = decoded
	}
	if len(key) < identity.MinSecretBytes {
		return nil, fmt.Errorf("session secret must be at least %d bytes", identity.MinSecretBytes)
	}
	return key, nil
}

// Run starts the job board HTTP API.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.LogLevel, logging.Format(cfg.LogFormat))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	secret, err := cfg.SecretBytes()
	if err != nil {
		return err
	}

	options := entrypoint.RunOptions{
		ShutdownTimeout: timeouts.Shutdown,
		Telemetry:       cfg.Telemetry,
		Logger:          logger,
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceJobBoard, options, func(ctx context.Context) error {
		logger.Info("starting job board", zap.String(logging.FieldAddress, cfg.Addr))
		return server.Run(ctx, server.Config{
			Addr:              cfg.Addr,
			DBPath:            cfg.DBPath,
			SessionSecret:     secret,
			SessionIssuer:     cfg.SessionIssuer,
			SessionTTL:        cfg.SessionTTL,
			BcryptCost:        cfg.BcryptCost,
			AuthRatePerMinute: cfg.AuthRatePerMinute,
			SecureCookies:     cfg.SecureCookies,
			Logger:            logger,
		})
	})
}
