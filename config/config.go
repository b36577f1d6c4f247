package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"civicsync/geo"
)

// Config is the application configuration, read from the environment.
type Config struct {
	Environment    string   `env:"GO_ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"8080"`
	Domain         string   `env:"DOMAIN"`
	LogLevel       int      `env:"LOG_LEVEL" envDefault:"0"`
	JWTSecret      string   `env:"JWT_SECRET" envDefault:"devsecret"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8081"`
	Store          Store    `envPrefix:"STORE_"`
	Mongo          Mongo    `envPrefix:"MONGODB_"`
	Redis          Redis    `envPrefix:"REDIS_"`
	Session        Session  `envPrefix:"SESSION_"`
	Auth           Auth     `envPrefix:"AUTH_"`
	Issues         Issues   `envPrefix:"ISSUE_"`
	Map            Map      `envPrefix:"MAP_"`
}

// Store selects the issue store backend.
type Store struct {
	Backend      string `env:"BACKEND" envDefault:"memory"`
	SeedMockData bool   `env:"SEED_MOCK_DATA" envDefault:"true"`
}

// Mongo contains MongoDB connection parameters.
type Mongo struct {
	URI      string `env:"URI"`
	Database string `env:"DATABASE" envDefault:"mydb"`
}

// Redis contains Redis connection parameters. An empty Address disables Redis.
type Redis struct {
	Address         string `env:"ADDRESS"`
	Password        string `env:"PASSWORD"`
	DB              int    `env:"DB" envDefault:"0"`
	IssueLimitQueue string `env:"QUEUE_FOR_ISSUE_LIMIT" envDefault:"issue_limit"`
	IssueDailyLimit int    `env:"ISSUE_DAILY_LIMIT" envDefault:"10"`
	SessionPrefix   string `env:"SESSION_PREFIX" envDefault:"civicsync:session:"`
}

// Session selects where the current user is persisted.
type Session struct {
	Backend string `env:"BACKEND" envDefault:"file"`
	Dir     string `env:"DIR" envDefault:".civicsync"`
}

// Auth selects the credential verifier: "stub" accepts any non-empty credentials,
// "password" checks bcrypt hashes.
type Auth struct {
	Verifier string `env:"VERIFIER" envDefault:"stub"`
}

// Issues contains issue service parameters.
type Issues struct {
	ValidateForms bool `env:"VALIDATE_FORMS" envDefault:"true"`
}

// Map contains the map canvas projection.
type Map struct {
	MinLat float64 `env:"MIN_LAT" envDefault:"8"`
	MaxLat float64 `env:"MAX_LAT" envDefault:"37"`
	MinLng float64 `env:"MIN_LNG" envDefault:"68"`
	MaxLng float64 `env:"MAX_LNG" envDefault:"97"`
	Width  float64 `env:"WIDTH" envDefault:"800"`
	Height float64 `env:"HEIGHT" envDefault:"600"`
}

// Projection returns the map settings as a geo.Projection.
func (m Map) Projection() geo.Projection {
	return geo.Projection{
		Bounds: geo.Bounds{MinLat: m.MinLat, MaxLat: m.MaxLat, MinLng: m.MinLng, MaxLng: m.MaxLng},
		Width:  m.Width,
		Height: m.Height,
	}
}

// IsProduction reports whether GO_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory":
	case "mongo":
		if c.Mongo.URI == "" {
			return fmt.Errorf("please define the MONGODB_URI environment variable")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.Session.Backend {
	case "file", "memory":
	case "redis":
		if c.Redis.Address == "" {
			return fmt.Errorf("SESSION_BACKEND=redis needs REDIS_ADDRESS")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}

	switch c.Auth.Verifier {
	case "stub", "password":
	default:
		return fmt.Errorf("unknown AUTH_VERIFIER %q", c.Auth.Verifier)
	}

	if !c.Map.Projection().Valid() {
		return fmt.Errorf("map bounds and size must describe a non-empty area")
	}
	return nil
}

// Load reads .env files (missing ones are ignored) and then the environment.
func Load(files ...string) (*Config, error) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(files...)

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
