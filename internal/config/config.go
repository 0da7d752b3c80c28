package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrMisconfigured = errors.New("config invalid")

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Google   GoogleConfig
	Admin    AdminConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR"             envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type PostgresConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"PGHOST"     envDefault:"localhost"`
	Port        string `env:"PGPORT"     envDefault:"5432"`
	User        string `env:"PGUSER"`
	Password    string `env:"PGPASSWORD"`
	Database    string `env:"PGDATABASE"`
	SSLMode     string `env:"PGSSLMODE"  envDefault:"disable"`
}

// AuthConfig holds token signing material and session policy.
// Access and refresh tokens are signed with different secrets.
type AuthConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	Issuer        string        `env:"JWT_ISSUER"          envDefault:"hahn-software"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL"      envDefault:"15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL"     envDefault:"168h"`
	AllowSignup   bool          `env:"AUTH_ALLOW_SIGNUP"   envDefault:"true"`
	SingleSession bool          `env:"AUTH_SINGLE_SESSION" envDefault:"false"`
	OpTimeout     time.Duration `env:"AUTH_OP_TIMEOUT"     envDefault:"5s"`
	StrictStatus  bool          `env:"AUTH_STRICT_STATUS"  envDefault:"false"`
	BcryptCost    int           `env:"AUTH_BCRYPT_COST"    envDefault:"10"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
	Issuer       string `env:"GOOGLE_ISSUER" envDefault:"https://accounts.google.com"`
}

// CodeExchangeEnabled reports whether the authorization-code flow is configured.
func (g GoogleConfig) CodeExchangeEnabled() bool {
	return g.ClientSecret != "" && g.RedirectURL != ""
}

type AdminConfig struct {
	Email     string `env:"ADMIN_EMAIL"`
	Password  string `env:"ADMIN_PASSWORD"`
	FirstName string `env:"ADMIN_FIRSTNAME" envDefault:"Admin"`
	LastName  string `env:"ADMIN_LASTNAME"  envDefault:"Admin"`
}

func (a AdminConfig) Enabled() bool {
	return strings.TrimSpace(a.Email) != "" && a.Password != ""
}

type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:","`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Auth.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (a AuthConfig) Validate() error {
	if strings.TrimSpace(a.AccessSecret) == "" {
		return fmt.Errorf("%w: JWT_ACCESS_SECRET is required", ErrMisconfigured)
	}
	if strings.TrimSpace(a.RefreshSecret) == "" {
		return fmt.Errorf("%w: JWT_REFRESH_SECRET is required", ErrMisconfigured)
	}
	if a.AccessSecret == a.RefreshSecret {
		return fmt.Errorf("%w: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ", ErrMisconfigured)
	}
	if a.AccessTTL <= 0 {
		return fmt.Errorf("%w: JWT_ACCESS_TTL must be positive", ErrMisconfigured)
	}
	if a.RefreshTTL <= a.AccessTTL {
		return fmt.Errorf("%w: JWT_REFRESH_TTL must exceed JWT_ACCESS_TTL", ErrMisconfigured)
	}
	if a.OpTimeout <= 0 {
		return fmt.Errorf("%w: AUTH_OP_TIMEOUT must be positive", ErrMisconfigured)
	}
	return nil
}
