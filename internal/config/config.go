// Package config loads service configuration from YAML with environment
// variable overrides.
package config

// Default configuration values.
const (
	defaultServiceName    = "blogdex"
	defaultServicePort    = 8090
	defaultDBHost         = "localhost"
	defaultDBPort         = "5432"
	defaultDBUser         = "postgres"
	defaultDBName         = "blogdex"
	defaultDBSSLMode      = "disable"
	defaultRedisAddr      = "localhost:6379"
	defaultRollupSchedule = "30 6 * * *" // daily, after the GSC export lands
	defaultAnalyzeLimit   = 500
)

// Config holds all configuration for the blogdex service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name   string `yaml:"name"`
	Port   int    `env:"BLOGDEX_PORT" yaml:"port"`
	Debug  bool   `env:"APP_DEBUG"    yaml:"debug"`
	APIKey string `env:"BLOGDEX_API_KEY" yaml:"api_key"`

	// AllowedOrigins is the CORS allow-list for the dashboard. Empty means
	// same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host     string `env:"POSTGRES_HOST"     yaml:"host"`
	Port     string `env:"POSTGRES_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_USER"     yaml:"user"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	DBName   string `env:"POSTGRES_DB"       yaml:"dbname"`
	SSLMode  string `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
}

// RedisConfig holds the optional stat-cache configuration.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED"  yaml:"enabled"`
	Addr     string `env:"REDIS_ADDR"     yaml:"addr"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
}

// WorkerConfig holds the daily roll-up worker configuration.
type WorkerConfig struct {
	Enabled        bool   `yaml:"enabled"`
	RollupSchedule string `yaml:"rollup_schedule"` // cron spec
	AnalyzeLimit   int    `yaml:"analyze_limit"`   // pending titles per triage
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := load(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = defaultDBHost
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = defaultDBUser
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = defaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = defaultDBSSLMode
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.Worker.RollupSchedule == "" {
		cfg.Worker.RollupSchedule = defaultRollupSchedule
	}
	if cfg.Worker.AnalyzeLimit == 0 {
		cfg.Worker.AnalyzeLimit = defaultAnalyzeLimit
	}
}
