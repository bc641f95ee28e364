// Package config loads service configuration from an optional YAML file
// and FULFILLMENT_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/light-bringer/fulfillment-service/internal/pkg/logging"
)

// EnvPrefix is prepended to every environment override, e.g.
// FULFILLMENT_SERVER_HTTP_PORT overrides server.http_port.
const EnvPrefix = "FULFILLMENT"

// Config is the typed configuration for every binary.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Spanner   SpannerConfig   `mapstructure:"spanner"`
	Log       logging.Config  `mapstructure:"log"`
	IDGen     IDGenConfig     `mapstructure:"idgen"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Client    ClientConfig    `mapstructure:"client"`
}

// ServerConfig holds listener settings.
type ServerConfig struct {
	HTTPPort        string        `mapstructure:"http_port"`
	GRPCPort        string        `mapstructure:"grpc_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// GinMode is passed to gin.SetMode (debug, release, test).
	GinMode string `mapstructure:"gin_mode"`
}

// SpannerConfig identifies the database.
type SpannerConfig struct {
	Project  string `mapstructure:"project"`
	Instance string `mapstructure:"instance"`
	Database string `mapstructure:"database"`
}

// DatabasePath returns the fully qualified Spanner database name.
func (s SpannerConfig) DatabasePath() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", s.Project, s.Instance, s.Database)
}

// IDGenConfig configures the snowflake node.
type IDGenConfig struct {
	NodeID int64 `mapstructure:"node_id"`
}

// SchedulerConfig configures the maintenance jobs.
type SchedulerConfig struct {
	AutoStart           bool          `mapstructure:"auto_start"`
	OTPPurgeSpec        string        `mapstructure:"otp_purge_spec"`
	OutboxRetentionSpec string        `mapstructure:"outbox_retention_spec"`
	OutboxRelaySpec     string        `mapstructure:"outbox_relay_spec"`
	RelayBatchSize      int64         `mapstructure:"relay_batch_size"`
	CompletedRetention  time.Duration `mapstructure:"completed_retention"`
	FailedRetention     time.Duration `mapstructure:"failed_retention"`
	JobTimeout          time.Duration `mapstructure:"job_timeout"`
}

// ClientConfig configures the catalog browsing client used by catalogctl.
type ClientConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Debounce       time.Duration `mapstructure:"debounce"`
	CacheSize      int           `mapstructure:"cache_size"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	InitialCredits int           `mapstructure:"initial_credits"`
}

// Load reads configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keep the variable the emulator tooling already exports.
	if err := v.BindEnv("spanner.database", EnvPrefix+"_SPANNER_DATABASE", "SPANNER_DATABASE_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Spanner.Project == "" || c.Spanner.Instance == "" || c.Spanner.Database == "" {
		return fmt.Errorf("spanner project, instance and database are required")
	}
	if c.IDGen.NodeID < 0 || c.IDGen.NodeID > 1023 {
		return fmt.Errorf("idgen.node_id must be within 0..1023, got %d", c.IDGen.NodeID)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("server.grpc_port", "9090")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.gin_mode", "release")

	v.SetDefault("spanner.project", "test-project")
	v.SetDefault("spanner.instance", "dev-instance")
	v.SetDefault("spanner.database", "fulfillment-db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/fulfillment.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("idgen.node_id", 1)

	v.SetDefault("scheduler.auto_start", true)
	v.SetDefault("scheduler.otp_purge_spec", "* * * * * *")
	v.SetDefault("scheduler.outbox_retention_spec", "0 0 * * * *")
	v.SetDefault("scheduler.outbox_relay_spec", "*/5 * * * * *")
	v.SetDefault("scheduler.relay_batch_size", 100)
	v.SetDefault("scheduler.job_timeout", 30*time.Second)
	v.SetDefault("scheduler.completed_retention", 30*24*time.Hour)
	v.SetDefault("scheduler.failed_retention", 90*24*time.Hour)

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 10*time.Second)
	v.SetDefault("client.debounce", 500*time.Millisecond)
	v.SetDefault("client.cache_size", 64)
	v.SetDefault("client.cache_ttl", 30*time.Second)
	v.SetDefault("client.initial_credits", 100)
}
