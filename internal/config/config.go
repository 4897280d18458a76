package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        DatabaseConfig    `toml:"database"`
	Logs            LogsConfig        `toml:"logs"`
	Metrics         MetricsConfig     `toml:"metrics"`
	BranchService   IntegrationConfig `toml:"branch_service"`
	VehicleService  IntegrationConfig `toml:"vehicle_service"`
	TicketService   IntegrationConfig `toml:"ticket_service"`
	IdentityService IntegrationConfig `toml:"identity_service"`
	RabbitMQ        RabbitMQConfig    `toml:"rabbitmq"`
	Limits          LimitsConfig      `toml:"limits"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`  // пустая строка = stdout
	Level string `toml:"level"` // debug, info, warn, error
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RabbitMQConfig настройки публикации событий заявок
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// LimitsConfig бизнес-лимиты планировщика
// Нулевые значения заменяются дефолтами при конвертации в domain.Limits
type LimitsConfig struct {
	MaxActiveRequests         int `toml:"max_active_requests"`
	MaxDailyPerVehicle        int `toml:"max_daily_per_vehicle"`
	CancellationCutoffMinutes int `toml:"cancellation_cutoff_minutes"`
}

// ToDomain конвертирует секцию лимитов в domain модель
func (l *LimitsConfig) ToDomain() domain.Limits {
	limits := domain.DefaultLimits()
	if l.MaxActiveRequests > 0 {
		limits.MaxActiveRequests = l.MaxActiveRequests
	}
	if l.MaxDailyPerVehicle > 0 {
		limits.MaxDailyPerVehicle = l.MaxDailyPerVehicle
	}
	if l.CancellationCutoffMinutes > 0 {
		limits.CancellationCutoffMinutes = l.CancellationCutoffMinutes
	}
	return limits
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in (0, 65535], got %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.BranchService.URL == "" {
		return fmt.Errorf("branch_service.url is required")
	}
	if c.VehicleService.URL == "" {
		return fmt.Errorf("vehicle_service.url is required")
	}
	if c.TicketService.URL == "" {
		return fmt.Errorf("ticket_service.url is required")
	}
	if c.IdentityService.URL == "" {
		return fmt.Errorf("identity_service.url is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("rabbitmq.url is required when rabbitmq is enabled")
	}
	return nil
}
