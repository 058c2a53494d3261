package configs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
)

// Config holds every environment-driven setting of the application.
type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3000"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"casamentop"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"casamentop"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	SessionSecret string `env:"SESSION_SECRET" envDefault:"casamentop-dev-secret"`

	AdminName     string `env:"ADMIN_NAME" envDefault:"Organizador"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@casamentop.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"trocar-esta-senha"`

	// Names of the hosts; companion names matching any of these are rejected.
	ReservedNames []string `env:"RESERVED_NAMES" envSeparator:"," envDefault:"alexandre,adália,adalia"`

	// Maximum number of people the venue holds, used by dashboard stats.
	VenueCapacity int `env:"VENUE_CAPACITY" envDefault:"200"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=Africa/Luanda",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

var (
	appConfig Config
	loadOnce  sync.Once
)

// LoadConfig reads .env (if present) and parses the environment. The parsed
// struct is cached; later calls return the same values.
func LoadConfig() Config {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			configslog.SLog.Info(".env not found, using process environment")
		}
		if err := env.Parse(&appConfig); err != nil {
			configslog.SLog.Fatalf("environment could not be parsed: %v", err)
		}
		for i, name := range appConfig.ReservedNames {
			appConfig.ReservedNames[i] = strings.ToLower(strings.TrimSpace(name))
		}
	})
	return appConfig
}

// Get returns the cached configuration, loading it on first use.
func Get() Config {
	return LoadConfig()
}
