package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// Config holds all configuration for the task runner process. Trimmed
// from the teacher's multi-service Config down to the sections this
// module actually uses: no database, cache, message broker, or auth
// surface exists in this binary.
type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Version   string          `mapstructure:"version"`
}

// ServiceConfig holds service-identifying configuration.
type ServiceConfig struct {
	Name        string `mapstructure:"name" envconfig:"SERVICE_NAME"`
	Environment string `mapstructure:"environment" envconfig:"ENVIRONMENT" default:"development"`
}

// HTTPConfig holds the optional read-only introspection server's
// configuration.
type HTTPConfig struct {
	Enabled      bool          `mapstructure:"enabled" envconfig:"HTTP_ENABLED" default:"false"`
	Port         int           `mapstructure:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level" envconfig:"LOG_LEVEL" default:"info"`
	Format     string `mapstructure:"format" envconfig:"LOG_FORMAT" default:"json"`
	OutputPath string `mapstructure:"output_path" envconfig:"LOG_OUTPUT_PATH" default:"stdout"`
}

// TelemetryConfig holds metrics configuration. Tracing is dropped: see
// DESIGN.md for why OpenTelemetry has no home in this module.
type TelemetryConfig struct {
	MetricsEnabled bool   `mapstructure:"metrics_enabled" envconfig:"METRICS_ENABLED" default:"true"`
	ServiceName    string `mapstructure:"service_name" envconfig:"TELEMETRY_SERVICE_NAME"`
}

// SchedulerConfig holds the task-type table the scheduler is built
// from. See scheduler_types.go for how this is turned into a
// scheduler.TypeTableSource.
type SchedulerConfig struct {
	TaskTypes []TaskTypeConfig `mapstructure:"task_types"`
}

// TaskTypeConfig is one row of the scheduler's task-type table.
type TaskTypeConfig struct {
	Name        string `mapstructure:"type"`
	Workers     int    `mapstructure:"threads"`
	Description string `mapstructure:"description"`
}

// Load loads configuration from ./configs, ./configs/services/<name>,
// or the working directory, then overlays environment variables.
// A missing config file is not an error: the scheduler falls back to
// its own hardcoded task-type defaults in that case.
func Load(serviceName string) (*Config, error) {
	var cfg Config

	cfg.Service.Name = serviceName
	cfg.Telemetry.ServiceName = serviceName

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("./configs/services/" + serviceName)
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env vars: %w", err)
	}

	envPrefix := fmt.Sprintf("%s_", toEnvPrefix(serviceName))
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process service env vars: %w", err)
	}

	if version := os.Getenv("VERSION"); version != "" {
		cfg.Version = version
	} else {
		cfg.Version = "dev"
	}

	return &cfg, nil
}

// toEnvPrefix converts a service name (e.g. "taskrunnerd") into its
// SCREAMING_SNAKE_CASE environment variable prefix.
func toEnvPrefix(name string) string {
	result := ""
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += "_"
		}
		if r >= 'a' && r <= 'z' {
			result += string(r - 32)
		} else {
			result += string(r)
		}
	}
	return result
}
