package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store" validate:"required"`
	Task   TaskConfig   `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" validate:"gte=1,lte=300"`
}

// StoreConfig describes where the item collection lives on disk.
type StoreConfig struct {
	DataPath        string `mapstructure:"data_path" validate:"required"`
	CreateIfMissing bool   `mapstructure:"create_if_missing"`
	// Watch enables filesystem notifications so that out-of-band edits to the
	// data file refresh cached statistics without waiting for the next request.
	Watch bool `mapstructure:"watch"`
}

// TaskConfig sizes the background worker pool that refreshes statistics.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1,lte=16"`
	QueueSize   int `mapstructure:"queue_size" validate:"gte=1,lte=1000"`
}
