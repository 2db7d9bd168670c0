// Package config loads the service configuration from an optional .env file,
// the environment and command-line flags. Flags override the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"notify-svc/internal/infra/notifier"
	envcfg "notify-svc/pkg/config"
)

// Config holds the runtime configuration of the API server.
type Config struct {
	ListenAddr string
	Port       int

	// Driver is "sqlite" or "postgres".
	Driver       string
	DatabasePath string
	DatabaseURL  string

	// MaxContentLengthMB bounds request bodies.
	MaxContentLengthMB int
	AttachmentsDir     string
	BootstrapFile      string
	Verbose            bool

	DispatchTimeout time.Duration
	// SMTPTimeout bounds one SMTP session, dial included.
	SMTPTimeout     time.Duration
	SMTPRateLimit   float64
	SMTPRateBurst   int

	Version string
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ListenAddr, strconv.Itoa(c.Port))
}

// MaxBodyBytes returns the body limit in bytes.
func (c *Config) MaxBodyBytes() int64 {
	return int64(c.MaxContentLengthMB) << 20
}

// Load reads ENV_FILE (default .env) when present, then the environment,
// then parses args. A missing .env file is not an error.
func Load(args []string, stderr io.Writer) (*Config, error) {
	envFile := envcfg.GetEnvString("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		ListenAddr:         envcfg.GetEnvString("LISTEN_ADDR", "127.0.0.1"),
		Port:               envcfg.GetEnvInt("PORT", 5000),
		Driver:             envcfg.GetEnvString("DB_DRIVER", "sqlite"),
		DatabasePath:       envcfg.GetEnvString("DATABASE_PATH", "./notify-svc.db"),
		DatabaseURL:        envcfg.GetEnvString("DATABASE_URL", ""),
		MaxContentLengthMB: envcfg.GetEnvInt("MAX_CONTENT_LENGTH_MB", 16),
		AttachmentsDir:     envcfg.GetEnvString("ATTACHMENTS_DIR", "./attachments"),
		BootstrapFile:      envcfg.GetEnvString("BOOTSTRAP_FILE", ""),
		Verbose:            envcfg.GetEnvBool("VERBOSE", false),
		DispatchTimeout:    envcfg.GetEnvDuration("DISPATCH_TIMEOUT", 30*time.Second),
		SMTPTimeout:        envcfg.GetEnvDuration("SMTP_TIMEOUT", notifier.DefaultTimeout),
		SMTPRateLimit:      envcfg.GetEnvFloat("SMTP_RATE_LIMIT", 5),
		SMTPRateBurst:      envcfg.GetEnvInt("SMTP_RATE_BURST", 5),
		Version:            envcfg.GetEnvString("VERSION", "dev"),
	}

	fsFlags := flag.NewFlagSet("notify-svc", flag.ContinueOnError)
	fsFlags.SetOutput(stderr)
	fsFlags.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "address to listen on")
	fsFlags.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	fsFlags.StringVar(&cfg.DatabasePath, "database", cfg.DatabasePath, "sqlite database file")
	fsFlags.StringVar(&cfg.Driver, "driver", cfg.Driver, "database driver: sqlite or postgres")
	fsFlags.IntVar(&cfg.MaxContentLengthMB, "max-len", cfg.MaxContentLengthMB, "maximum request body size in MB")
	fsFlags.StringVar(&cfg.AttachmentsDir, "attachments-dir", cfg.AttachmentsDir, "directory for archived attachments")
	fsFlags.StringVar(&cfg.BootstrapFile, "bootstrap", cfg.BootstrapFile, "YAML file with settings and handlers to provision")
	fsFlags.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	if err := fsFlags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if c.MaxContentLengthMB <= 0 {
		errs = append(errs, fmt.Errorf("max-len must be positive, got %d", c.MaxContentLengthMB))
	}
	if c.AttachmentsDir == "" {
		errs = append(errs, errors.New("attachments-dir is required"))
	}
	if c.DispatchTimeout < 0 {
		errs = append(errs, fmt.Errorf("DISPATCH_TIMEOUT must be non-negative, got %v", c.DispatchTimeout))
	}
	if c.SMTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SMTP_TIMEOUT must be positive, got %v", c.SMTPTimeout))
	}
	if c.SMTPRateLimit <= 0 || c.SMTPRateBurst <= 0 {
		errs = append(errs, errors.New("SMTP_RATE_LIMIT and SMTP_RATE_BURST must be positive"))
	}
	return errors.Join(errs...)
}
