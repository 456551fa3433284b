package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Источники данных для снимка парка машин
const (
	SourceMock    = "mock"
	SourceFixture = "fixture"
	SourceCSV     = "csv"
	SourceSQL     = "sql"
	SourceHTTP    = "http"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Data      DataConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Redis     RedisConfig
	NATS      NATSConfig
	Risk      RiskConfig
	Cost      CostConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Broadcast BroadcastConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type DataConfig struct {
	Source          string
	CSVPath         string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	MockSeed        int64
	MockMachines    int
	MockHistoryDays int
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SeedIfEmpty     bool
}

type CacheConfig struct {
	MachinesTTL    time.Duration
	HistoryTTL     time.Duration
	MaintenanceTTL time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	TTL          time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type NATSConfig struct {
	Enabled       bool
	URL           string
	SubjectPrefix string
}

type RiskConfig struct {
	CriticalProbability float64
	WarningProbability  float64
	CriticalHealth      float64
	WarningHealth       float64
	AlertThreshold      float64
	OverviewThreshold   float64
}

// CostConfig хранит значения по умолчанию для ROI калькулятора
type CostConfig struct {
	MaintenanceCost     float64
	FalseAlarmCost      float64
	SystemCost          float64
	AvoidedDowntimeCost float64
	AvoidedRepairCost   float64
	ProductionSaved     float64
}

type SecurityConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
	IdleTTL time.Duration
}

type BroadcastConfig struct {
	Enabled  bool
	Interval time.Duration
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	p := &parser{}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     p.duration("SERVER_READ_TIMEOUT", "10s"),
			WriteTimeout:    p.duration("SERVER_WRITE_TIMEOUT", "10s"),
			IdleTimeout:     p.duration("SERVER_IDLE_TIMEOUT", "60s"),
			ShutdownTimeout: p.duration("SERVER_SHUTDOWN_TIMEOUT", "30s"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
		Data: DataConfig{
			Source:          strings.ToLower(getEnv("DATA_SOURCE", SourceMock)),
			CSVPath:         getEnv("DATA_CSV_PATH", "data/machines.csv"),
			UpstreamURL:     strings.TrimRight(getEnv("DATA_UPSTREAM_URL", "http://localhost:8000"), "/"),
			UpstreamTimeout: p.duration("DATA_UPSTREAM_TIMEOUT", "5s"),
			MockSeed:        p.int64("DATA_MOCK_SEED", "0"),
			MockMachines:    p.int("DATA_MOCK_MACHINES", "25"),
			MockHistoryDays: p.int("DATA_MOCK_HISTORY_DAYS", "30"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "maintenance"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "maintenance.db"),
			MaxOpenConns:    p.int("DB_MAX_OPEN_CONNS", "10"),
			MaxIdleConns:    p.int("DB_MAX_IDLE_CONNS", "5"),
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 10 * time.Minute,
			SeedIfEmpty:     getEnvBool("DB_SEED_IF_EMPTY", true),
		},
		Cache: CacheConfig{
			MachinesTTL:    p.duration("CACHE_MACHINES_TTL", "60s"),
			HistoryTTL:     p.duration("CACHE_HISTORY_TTL", "300s"),
			MaintenanceTTL: p.duration("CACHE_MAINTENANCE_TTL", "300s"),
		},
		Redis: RedisConfig{
			Enabled:      getEnvBool("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           p.int("REDIS_DB", "0"),
			TTL:          p.duration("REDIS_TTL", "60s"),
			PoolSize:     p.int("REDIS_POOL_SIZE", "10"),
			MinIdleConns: p.int("REDIS_MIN_IDLE_CONNS", "2"),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		NATS: NATSConfig{
			Enabled:       getEnvBool("NATS_ENABLED", false),
			URL:           getEnv("NATS_URL", "nats://localhost:4222"),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "maintenance"),
		},
		Risk: RiskConfig{
			CriticalProbability: p.float("RISK_CRITICAL_PROBABILITY", "0.5"),
			WarningProbability:  p.float("RISK_WARNING_PROBABILITY", "0.2"),
			CriticalHealth:      p.float("RISK_CRITICAL_HEALTH", "50"),
			WarningHealth:       p.float("RISK_WARNING_HEALTH", "70"),
			AlertThreshold:      p.float("RISK_ALERT_THRESHOLD", "0.3"),
			OverviewThreshold:   p.float("RISK_OVERVIEW_THRESHOLD", "0.5"),
		},
		Cost: CostConfig{
			MaintenanceCost:     p.float("COST_MAINTENANCE", "2000"),
			FalseAlarmCost:      p.float("COST_FALSE_ALARM", "500"),
			SystemCost:          p.float("COST_SYSTEM", "50000"),
			AvoidedDowntimeCost: p.float("BENEFIT_AVOIDED_DOWNTIME", "50000"),
			AvoidedRepairCost:   p.float("BENEFIT_AVOIDED_REPAIR", "20000"),
			ProductionSaved:     p.float("BENEFIT_PRODUCTION_SAVED", "30000"),
		},
		Security: SecurityConfig{
			AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			RPS:     p.float("RATE_LIMIT_RPS", "20"),
			Burst:   p.int("RATE_LIMIT_BURST", "40"),
			IdleTTL: p.duration("RATE_LIMIT_IDLE_TTL", "5m"),
		},
		Broadcast: BroadcastConfig{
			Enabled:  getEnvBool("BROADCAST_ENABLED", true),
			Interval: p.duration("BROADCAST_INTERVAL", "5s"),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Data.Source {
	case SourceMock, SourceFixture, SourceCSV, SourceSQL, SourceHTTP:
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q: expected one of mock, fixture, csv, sql, http", c.Data.Source)
	}

	if c.Data.Source == SourceSQL && c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("invalid DB_DRIVER %q: expected postgres or sqlite", c.Database.Driver)
	}

	if c.Cache.MachinesTTL <= 0 || c.Cache.HistoryTTL <= 0 || c.Cache.MaintenanceTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}

	if c.Broadcast.Enabled && c.Broadcast.Interval <= 0 {
		return fmt.Errorf("BROADCAST_INTERVAL must be positive")
	}

	if c.Data.MockMachines <= 0 || c.Data.MockHistoryDays <= 0 {
		return fmt.Errorf("DATA_MOCK_MACHINES and DATA_MOCK_HISTORY_DAYS must be positive")
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

// RedisAddr возвращает адрес Redis в формате host:port
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// parser запоминает первую ошибку разбора, чтобы Load вернул ее с именем переменной
type parser struct {
	err error
}

func (p *parser) duration(key, def string) time.Duration {
	value, err := time.ParseDuration(getEnv(key, def))
	if err != nil {
		p.fail(key, err)
	}
	return value
}

func (p *parser) int(key, def string) int {
	value, err := strconv.Atoi(getEnv(key, def))
	if err != nil {
		p.fail(key, err)
	}
	return value
}

func (p *parser) int64(key, def string) int64 {
	value, err := strconv.ParseInt(getEnv(key, def), 10, 64)
	if err != nil {
		p.fail(key, err)
	}
	return value
}

func (p *parser) float(key, def string) float64 {
	value, err := strconv.ParseFloat(getEnv(key, def), 64)
	if err != nil {
		p.fail(key, err)
	}
	return value
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func splitCSV(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
