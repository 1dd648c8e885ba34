package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Database settings are
// only required when the MySQL driver is selected; the in-memory
// driver needs none of them.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	StorageDriver string        // "memory" or "mysql"
	DBUser        string        // database username (mysql driver)
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	JWTSecret     string        // secret used to sign staff JWTs
	AccessTTLMin  int           // access token time-to-live in minutes
	BcryptCost    int           // bcrypt cost for password hashing
	DraftTTL      time.Duration // lifetime of reservation drafts
	SeedDemoData  bool          // load the demo college on the memory driver
}

// Load reads configuration from environment variables.  Variables
// fetched through must() are mandatory and missing values abort
// startup with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		StorageDriver: getenv("STORAGE_DRIVER", DriverMemory),
		JWTSecret:     must("JWT_SECRET"),
		AccessTTLMin:  mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:    mustInt("BCRYPT_COST"),
		DraftTTL:      parseDur(getenv("DRAFT_TTL", "15m")),
		SeedDemoData:  getenv("SEED_DEMO_DATA", "true") == "true",
	}
	switch cfg.StorageDriver {
	case DriverMemory:
		// no database settings needed
	case DriverMySQL:
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	default:
		log.Fatalf("unknown STORAGE_DRIVER: %q (want %q or %q)", cfg.StorageDriver, DriverMemory, DriverMySQL)
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If
// the variable is unset or empty, the application logs a fatal error
// and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
