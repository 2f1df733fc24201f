package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	model "kaizen-board/internal/domain/models"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Database   Database
	Prometheus Prometheus
	Redis      Redis
	Board      Board
}

type HTTPServer struct {
	Address string
	Port    int
}

type Database struct {
	Driver         string
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsAuto bool
}

// DSN builds a postgresql:// URL with credentials and database name escaped.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.DbName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type Prometheus struct {
	Address string
	Port    int
}

type Redis struct {
	Enabled  bool
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
	BoardTTL time.Duration
}

type Board struct {
	Order      model.ListOrder
	DateLayout string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("http_server.address", "0.0.0.0")
	v.SetDefault("http_server.port", 8080)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "admin")
	v.SetDefault("database.host", "board-db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.db_name", "kaizenboard")
	v.SetDefault("database.migrations_auto", true)

	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9103)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "redis")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.board_ttl", "30s")

	v.SetDefault("board.order", string(model.OrderByLikes))
	v.SetDefault("board.date_layout", "2006/1/2")
}

// Load reads config.yaml from dir. A missing file is not an error: defaults and
// KAIZEN_* environment variables still apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("kaizen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	order, err := model.ParseListOrder(v.GetString("board.order"))
	if err != nil {
		return nil, fmt.Errorf("board.order %q: %w", v.GetString("board.order"), err)
	}

	driver := v.GetString("database.driver")
	if driver != DriverPostgres && driver != DriverMemory {
		return nil, fmt.Errorf("unsupported database.driver %q", driver)
	}

	config := &Config{
		Env: v.GetString("env"),
		HTTPServer: HTTPServer{
			Address: v.GetString("http_server.address"),
			Port:    v.GetInt("http_server.port"),
		},
		Database: Database{
			Driver:         driver,
			Username:       v.GetString("database.username"),
			Password:       v.GetString("database.password"),
			Host:           v.GetString("database.host"),
			Port:           v.GetString("database.port"),
			DbName:         v.GetString("database.db_name"),
			MigrationsAuto: v.GetBool("database.migrations_auto"),
		},
		Prometheus: Prometheus{
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Enabled:  v.GetBool("redis.enabled"),
			Address:  v.GetString("redis.address"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			PoolSize: v.GetInt("redis.pool_size"),
			BoardTTL: v.GetDuration("redis.board_ttl"),
		},
		Board: Board{
			Order:      order,
			DateLayout: v.GetString("board.date_layout"),
		},
	}

	return config, nil
}

// MustLoad loads .env into the environment, then the config from dir.
func MustLoad(dir string) *Config {
	_ = godotenv.Load()

	cfg, err := Load(dir)
	if err != nil {
		log.Printf("Error loading config: %s", err)
		os.Exit(1)
	}
	return cfg
}
