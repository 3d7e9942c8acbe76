package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env string `yaml:"env" env:"ENV" env-default:"prod"`

	HTTPServer `yaml:"http_server"`

	DBUser     string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`
	Migrate    bool   `yaml:"migrate" env:"DB_MIGRATE" env-default:"false"`

	Redis       Redis       `yaml:"redis"`
	Workload    Workload    `yaml:"workload"`
	Holidays    Holidays    `yaml:"holidays"`
	Feasibility Feasibility `yaml:"feasibility"`
	CORS        CORS        `yaml:"cors"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Redis struct {
	Address     string `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password    string `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	WorkloadKey string `yaml:"workload_key" env-default:"orbit:sector_workload"`
}

const (
	WorkloadSimulated = "simulated"
	WorkloadMySQL     = "mysql"
	WorkloadRedis     = "redis"
)

type Workload struct {
	// simulated | mysql | redis
	Source string `yaml:"source" env:"WORKLOAD_SOURCE" env-default:"mysql"`
	Seed   int64  `yaml:"seed" env-default:"1"`
}

type Holidays struct {
	File string `yaml:"file" env:"HOLIDAYS_FILE"`
}

type Feasibility struct {
	BusinessDaySuggestion bool `yaml:"business_day_suggestion" env-default:"false"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:5173"`
}

// DSN builds the go-sql-driver connection string.
func (c Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.DBHost, c.DBPort)
	mc.DBName = c.DBName
	mc.ParseTime = c.ParseTime
	mc.Loc = time.UTC
	return mc.FormatDSN()
}

func (c Config) Validate() error {
	switch c.Workload.Source {
	case WorkloadSimulated, WorkloadMySQL, WorkloadRedis:
	default:
		return fmt.Errorf("unknown workload source %q", c.Workload.Source)
	}
	return nil
}

func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
