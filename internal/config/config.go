// Package config loads application configuration from TOML files with
// multi-path lookup.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig holds basic application settings.
type MainConfig struct {
	AppName     string `toml:"appName"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Mode        string `toml:"mode"`        // "dev" or "release"
	TLSRedirect bool   `toml:"tlsRedirect"` // redirect plain HTTP to HTTPS
}

// StorageConfig selects the persistence backend.
// "mysql" is the normal mode; "sqlite" runs an embedded in-memory
// database for offline demos.
type StorageConfig struct {
	Driver string `toml:"driver"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	Db       int    `toml:"db"`
}

// LogConfig configures zap output and lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"`
	Level      string `toml:"level"`
}

// KafkaConfig configures the distributed fan-out mode.
// MessageMode is "channel" (in-process) or "kafka".
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"`
	HostPort    string        `toml:"hostPort"`
	ChatTopic   string        `toml:"chatTopic"`
	Partition   int           `toml:"partition"`
	Timeout     time.Duration `toml:"timeout"`
}

type StaticSrcConfig struct {
	StaticAvatarPath string `toml:"staticAvatarPath"`
	StaticFilePath   string `toml:"staticFilePath"`
	StaticStoryPath  string `toml:"staticStoryPath"`
}

type JWTConfig struct {
	Secret             string `toml:"secret"`
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // minutes
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // hours
}

type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"`
}

// AIConfig points at the external completion API used for reply
// suggestions, translation and summarization.
type AIConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"apiKey"`
	Model    string `toml:"model"`
	Timeout  int    `toml:"timeout"` // seconds
}

// StoryConfig controls the expiry sweep.
type StoryConfig struct {
	TTLHours             int `toml:"ttlHours"`
	SweepIntervalMinutes int `toml:"sweepIntervalMinutes"`
}

// Config aggregates all sections.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	StorageConfig   `toml:"storageConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	StaticSrcConfig `toml:"staticSrcConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
	AIConfig        `toml:"aiConfig"`
	StoryConfig     `toml:"storyConfig"`
}

var config *Config

// LoadConfig tries the candidate paths in order and stops at the first
// file that parses.
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	if config == nil {
		config = new(Config)
	}
	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// LoadFrom parses a single explicit file into the global config.
func LoadFrom(path string) error {
	if config == nil {
		config = new(Config)
	}
	if _, err := toml.DecodeFile(path, config); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// GetConfig returns the global configuration, loading it on first use.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}

// StoryTTL returns the configured story lifetime, defaulting to 24h.
func (c *Config) StoryTTL() time.Duration {
	if c.StoryConfig.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.StoryConfig.TTLHours) * time.Hour
}
