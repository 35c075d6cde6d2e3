package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, credentials, gateway keys)
// - default: Values common across all environments (timezone, tariffs, retry policy)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Parking   ParkingConfig
	Gateway   GatewayConfig
	Reconcile ReconcileConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type StoreConfig struct {
	Driver     string `envconfig:"STORE_DRIVER" default:"memory"`
	LockDriver string `envconfig:"LOCK_DRIVER" default:"memory"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"parkflow"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"parkflow"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Jakarta"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	LockTTL  time.Duration `envconfig:"REDIS_LOCK_TTL" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Jakarta"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type ParkingConfig struct {
	// class -> zone, e.g. "bike:A,car:B,heavy:C"
	ZoneMap map[string]string `envconfig:"ZONE_MAP" default:"bike:A,car:B,heavy:C"`
	// class -> hourly rate in IDR
	RateTable    map[string]string `envconfig:"RATE_TABLE" default:"bike:2000,car:10000,heavy:20000"`
	RateDefault  string            `envconfig:"RATE_DEFAULT" default:"5000"`
	RateDailyCap string            `envconfig:"RATE_DAILY_CAP"`
	StrictZoning bool              `envconfig:"STRICT_ZONING" default:"false"`
	// slots registered on start-up, zone:level:code, e.g. "B:1:B-01-001,B:1:B-01-002"
	SlotSeed []string `envconfig:"SLOT_SEED"`
}

type GatewayConfig struct {
	BaseURL         string        `envconfig:"GATEWAY_BASE_URL" default:"https://api.sandbox.midtrans.com"`
	ServerKey       string        `envconfig:"GATEWAY_SERVER_KEY"`
	Currency        string        `envconfig:"GATEWAY_CURRENCY" default:"IDR"`
	Timeout         time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	RetryAttempts   int           `envconfig:"GATEWAY_RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay  time.Duration `envconfig:"GATEWAY_RETRY_BASE_DELAY" default:"500ms"`
	RetryMaxDelay   time.Duration `envconfig:"GATEWAY_RETRY_MAX_DELAY" default:"4s"`
	RetryJitter     float64       `envconfig:"GATEWAY_RETRY_JITTER" default:"0.2"`
	BreakerFailures int           `envconfig:"GATEWAY_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"GATEWAY_BREAKER_COOLDOWN" default:"30s"`
}

type ReconcileConfig struct {
	Enabled   bool          `envconfig:"RECONCILE_ENABLED" default:"true"`
	Interval  time.Duration `envconfig:"RECONCILE_INTERVAL" default:"30s"`
	PollAfter time.Duration `envconfig:"RECONCILE_POLL_AFTER" default:"2m"`
	BatchSize int           `envconfig:"RECONCILE_BATCH_SIZE" default:"50"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver:     DriverMemory,
			LockDriver: DriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Jakarta",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Jakarta",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Parking: ParkingConfig{
			ZoneMap:     map[string]string{"bike": "A", "car": "B", "heavy": "C"},
			RateTable:   map[string]string{"bike": "2000", "car": "10000", "heavy": "20000"},
			RateDefault: "5000",
		},
		Gateway: GatewayConfig{
			BaseURL:         "http://localhost:0",
			ServerKey:       "test-server-key",
			Currency:        "IDR",
			Timeout:         time.Second,
			RetryAttempts:   3,
			RetryBaseDelay:  time.Millisecond,
			RetryMaxDelay:   4 * time.Millisecond,
			RetryJitter:     0.2,
			BreakerFailures: 5,
			BreakerCooldown: time.Second,
		},
		Reconcile: ReconcileConfig{
			Enabled:   false,
			Interval:  time.Second,
			PollAfter: time.Minute,
			BatchSize: 50,
		},
	}
}
