package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	StaffDirectory StaffDirectoryConfig `toml:"staff_directory"`
	Capacity       CapacityConfig       `toml:"capacity"`
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
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StaffDirectoryConfig настройки клиента справочника персонала и типов приёмов
type StaffDirectoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// CapacityConfig политика расчёта загрузки и прогнозирования
// Все значения — именованные настраиваемые константы, а не выведенные величины
type CapacityConfig struct {
	// UnderutilizedThreshold порог недозагрузки по умолчанию (строго меньше)
	UnderutilizedThreshold float64 `toml:"underutilized_threshold"`
	// LowUtilizationBound ниже этой границы алерт low_utilization имеет важность high
	LowUtilizationBound float64 `toml:"low_utilization_bound"`
	// MediumUtilizationBound до этой границы алерт low_utilization имеет важность medium
	MediumUtilizationBound float64 `toml:"medium_utilization_bound"`
	// NoShowRateBound доля no-show, выше которой поднимается алерт no_shows
	NoShowRateBound float64 `toml:"no_show_rate_bound"`
	// SlotSizeMinutes размер слота для пересчёта свободных минут в количество слотов
	SlotSizeMinutes int `toml:"slot_size_minutes"`
	// AverageRevenuePerMinute средняя ставка выручки для оценки потенциала
	AverageRevenuePerMinute float64 `toml:"average_revenue_per_minute"`
	// ForecastWindowDays глубина истории для прогноза загрузки
	ForecastWindowDays int `toml:"forecast_window_days"`
	// ForecastBuffer множитель запаса к прогнозируемому спросу
	ForecastBuffer float64 `toml:"forecast_buffer"`
	// WeightedAverage считать среднюю загрузку клиники взвешенно по минутам
	// (по умолчанию false: невзвешенное среднее процентов — документированное поведение)
	WeightedAverage bool `toml:"weighted_average"`
	// RequestTimeout таймаут обращений к хранилищу в рамках одного запроса, секунды
	RequestTimeout int `toml:"request_timeout"`
	// RecomputeRetryInterval интервал повтора отложенных пересчётов, секунды
	RecomputeRetryInterval int `toml:"recompute_retry_interval"`
	// RecomputeRetryAttempts число попыток отложенного пересчёта
	RecomputeRetryAttempts int `toml:"recompute_retry_attempts"`
	// ReconcileInterval период сверочного пересчёта затронутых пар (staff, date), секунды
	ReconcileInterval int `toml:"reconcile_interval"`
}

// Load загружает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Capacity.UnderutilizedThreshold == 0 {
		c.Capacity.UnderutilizedThreshold = domain.DefaultUnderutilizedThreshold
	}
	if c.Capacity.LowUtilizationBound == 0 {
		c.Capacity.LowUtilizationBound = domain.DefaultLowUtilizationBound
	}
	if c.Capacity.MediumUtilizationBound == 0 {
		c.Capacity.MediumUtilizationBound = domain.DefaultMediumUtilizationBound
	}
	if c.Capacity.NoShowRateBound == 0 {
		c.Capacity.NoShowRateBound = domain.DefaultNoShowRateBound
	}
	if c.Capacity.SlotSizeMinutes == 0 {
		c.Capacity.SlotSizeMinutes = domain.DefaultSlotSizeMinutes
	}
	if c.Capacity.AverageRevenuePerMinute == 0 {
		c.Capacity.AverageRevenuePerMinute = domain.DefaultAverageRevenuePerMin
	}
	if c.Capacity.ForecastWindowDays == 0 {
		c.Capacity.ForecastWindowDays = domain.DefaultForecastWindowDays
	}
	if c.Capacity.ForecastBuffer == 0 {
		c.Capacity.ForecastBuffer = domain.DefaultForecastBuffer
	}
	if c.Capacity.RequestTimeout == 0 {
		c.Capacity.RequestTimeout = 10
	}
	if c.Capacity.RecomputeRetryInterval == 0 {
		c.Capacity.RecomputeRetryInterval = 30
	}
	if c.Capacity.RecomputeRetryAttempts == 0 {
		c.Capacity.RecomputeRetryAttempts = 5
	}
	if c.Capacity.ReconcileInterval == 0 {
		c.Capacity.ReconcileInterval = 600
	}
}
