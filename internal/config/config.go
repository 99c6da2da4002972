package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Notifier NotifierConfig `toml:"notifier"`
	Cache    CacheConfig    `toml:"cache"`
	Reminder ReminderConfig `toml:"reminder"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // Секунды
	MigrationsPath  string `toml:"migrations_path"`
}

// DSN собирает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig учётные данные администратора для Basic Auth.
// Пароль хранится только в виде bcrypt-хеша.
type AuthConfig struct {
	AdminUser         string `toml:"admin_user"`
	AdminPasswordHash string `toml:"admin_password_hash"`
}

// NotifierConfig настройки доставки уведомлений гостям.
// mode: "smtp" — отправка напрямую через gomail, "amqp" — публикация
// в очередь RabbitMQ для внешнего воркера, "off" — уведомления выключены.
type NotifierConfig struct {
	Mode string     `toml:"mode"`
	From string     `toml:"from"`
	SMTP SMTPConfig `toml:"smtp"`
	AMQP AMQPConfig `toml:"amqp"`
}

// SMTPConfig настройки SMTP сервера
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// AMQPConfig настройки RabbitMQ
type AMQPConfig struct {
	URL   string `toml:"url"`
	Queue string `toml:"queue"`
}

// CacheConfig настройки Redis-кеша свободных слотов
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// ReminderConfig настройки фонового напоминания о брони
type ReminderConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalMinutes int  `toml:"interval_minutes"`
	LeadHours       int  `toml:"lead_hours"`     // За сколько часов до визита напоминать
	WindowMinutes   int  `toml:"window_minutes"` // Ширина окна выборки
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidConfig, path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.MigrationsPath == "" {
		c.Database.MigrationsPath = "migrations"
	}

	if c.Logs.File == "" {
		c.Logs.File = "logs/app.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "restaurant-booking-service"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.Notifier.Mode == "" {
		c.Notifier.Mode = "off"
	}

	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 30
	}

	if c.Reminder.IntervalMinutes == 0 {
		c.Reminder.IntervalMinutes = 30
	}
	if c.Reminder.LeadHours == 0 {
		c.Reminder.LeadHours = 24
	}
	if c.Reminder.WindowMinutes == 0 {
		c.Reminder.WindowMinutes = 60
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("%w: database.port is required", ErrInvalidConfig)
	}
	if c.Database.User == "" {
		return fmt.Errorf("%w: database.user is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}

	switch c.Notifier.Mode {
	case "smtp":
		if c.Notifier.SMTP.Host == "" || c.Notifier.SMTP.Port == 0 {
			return fmt.Errorf("%w: notifier.smtp requires host and port", ErrInvalidConfig)
		}
		if c.Notifier.From == "" {
			return fmt.Errorf("%w: notifier.from is required for smtp mode", ErrInvalidConfig)
		}
	case "amqp":
		if c.Notifier.AMQP.URL == "" || c.Notifier.AMQP.Queue == "" {
			return fmt.Errorf("%w: notifier.amqp requires url and queue", ErrInvalidConfig)
		}
	case "off":
	default:
		return fmt.Errorf("%w: notifier.mode must be one of smtp, amqp, off", ErrInvalidConfig)
	}

	if c.Auth.AdminUser != "" && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("%w: auth.admin_password_hash is required when auth.admin_user is set", ErrInvalidConfig)
	}

	return nil
}
