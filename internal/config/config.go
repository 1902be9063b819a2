package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v10"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "SMC_"

var (
	ErrReadConfig    = errors.New("config: failed to read file")
	ErrParseEnv      = errors.New("config: failed to parse environment")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server" envPrefix:"SERVER_"`
	Database DatabaseConfig `toml:"database" envPrefix:"DATABASE_"`
	Logs     LogsConfig     `toml:"logs" envPrefix:"LOGS_"`
	Metrics  MetricsConfig  `toml:"metrics" envPrefix:"METRICS_"`
	App      AppConfig      `toml:"app" envPrefix:"APP_"`
	Orders   OrdersConfig   `toml:"orders" envPrefix:"ORDERS_"`
	Worker   WorkerConfig   `toml:"worker" envPrefix:"WORKER_"`
	SMTP     SMTPConfig     `toml:"smtp" envPrefix:"SMTP_"`
	Redis    RedisConfig    `toml:"redis" envPrefix:"REDIS_"`
	Kafka    KafkaConfig    `toml:"kafka" envPrefix:"KAFKA_"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"HOST"`
	Port            int    `toml:"port" env:"PORT"`
	User            string `toml:"user" env:"USER"`
	Password        string `toml:"password" env:"PASSWORD"`
	DBName          string `toml:"dbname" env:"NAME"`
	SSLMode         string `toml:"sslmode" env:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	File  string `toml:"file" env:"FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"ENABLED"`
	Path        string `toml:"path" env:"PATH"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME"`
}

// AppConfig общие настройки приложения
type AppConfig struct {
	Timezone      string `toml:"timezone" env:"TIMEZONE"`
	PublicBaseURL string `toml:"public_base_url" env:"PUBLIC_BASE_URL"`
}

// Location возвращает часовой пояс, в котором работают бизнесы
func (a AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

// OrdersConfig настройки ссылок подтверждения/отклонения заказа
type OrdersConfig struct {
	LinkTokenSecret   string `toml:"link_token_secret" env:"LINK_TOKEN_SECRET"`
	LinkTokenTTLHours int    `toml:"link_token_ttl_hours" env:"LINK_TOKEN_TTL_HOURS"`
}

// WorkerConfig настройки обработчика отложенных задач
type WorkerConfig struct {
	PollIntervalSeconds int `toml:"poll_interval_seconds" env:"POLL_INTERVAL_SECONDS"`
	BatchSize           int `toml:"batch_size" env:"BATCH_SIZE"`
	MaxAttempts         int `toml:"max_attempts" env:"MAX_ATTEMPTS"`
	RetryBackoffSeconds int `toml:"retry_backoff_seconds" env:"RETRY_BACKOFF_SECONDS"`
}

type SMTPConfig struct {
	Enabled  bool   `toml:"enabled" env:"ENABLED"`
	Host     string `toml:"host" env:"HOST"`
	Port     int    `toml:"port" env:"PORT"`
	Username string `toml:"username" env:"USERNAME"`
	Password string `toml:"password" env:"PASSWORD"`
	From     string `toml:"from" env:"FROM"`
}

// RedisConfig настройки redis для ограничения частоты запросов
type RedisConfig struct {
	Enabled       bool   `toml:"enabled" env:"ENABLED"`
	Addr          string `toml:"addr" env:"ADDR"`
	Password      string `toml:"password" env:"PASSWORD"`
	DB            int    `toml:"db" env:"DB"`
	RateLimit     int    `toml:"rate_limit" env:"RATE_LIMIT"`
	WindowSeconds int    `toml:"window_seconds" env:"WINDOW_SECONDS"`

	// TrustedProxyHeader заголовок с IP клиента от собственного прокси (пустой: RemoteAddr)
	TrustedProxyHeader string `toml:"trusted_proxy_header" env:"TRUSTED_PROXY_HEADER"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled" env:"ENABLED"`
	Brokers []string `toml:"brokers" env:"BROKERS" envSeparator:","`
	Topic   string   `toml:"topic" env:"TOPIC"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "beautyservice",
		},
		App: AppConfig{
			Timezone:      "Europe/Moscow",
			PublicBaseURL: "http://localhost:8080",
		},
		Orders: OrdersConfig{
			LinkTokenTTLHours: 72,
		},
		Worker: WorkerConfig{
			PollIntervalSeconds: 10,
			BatchSize:           50,
			MaxAttempts:         5,
			RetryBackoffSeconds: 30,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			RateLimit:     30,
			WindowSeconds: 60,
		},
		Kafka: KafkaConfig{
			Topic: "beauty.orders",
		},
	}
}

// Load читает конфигурацию из TOML файла и применяет переопределения из окружения
// Отсутствующий файл не считается ошибкой: используются значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: Load - path: %s: %v", ErrReadConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: Load - path: %s: %v", ErrReadConfig, path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: Load: %v", ErrParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if _, err := c.App.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("app.timezone %q is unknown", c.App.Timezone))
	}
	if c.Orders.LinkTokenSecret == "" {
		problems = append(problems, "orders.link_token_secret is required")
	}
	if c.Orders.LinkTokenTTLHours <= 0 {
		problems = append(problems, "orders.link_token_ttl_hours must be positive")
	}
	if c.Worker.PollIntervalSeconds <= 0 || c.Worker.BatchSize <= 0 || c.Worker.MaxAttempts <= 0 {
		problems = append(problems, "worker.poll_interval_seconds, batch_size and max_attempts must be positive")
	}
	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "") {
		problems = append(problems, "smtp.host and smtp.from are required when smtp is enabled")
	}
	if c.Redis.Enabled && (c.Redis.RateLimit <= 0 || c.Redis.WindowSeconds <= 0) {
		problems = append(problems, "redis.rate_limit and redis.window_seconds must be positive")
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		problems = append(problems, "kafka.brokers and kafka.topic are required when kafka is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
