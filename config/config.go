// Ininicializing common application configuration
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Limits LimitsConfig `mapstructure:"limits"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	AppVersion      string        `mapstructure:"app_version"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Timeout         time.Duration `mapstructure:"timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Env             string        `mapstructure:"environment"`
	Mode            string        `mapstructure:"mode"`
}

// LimitsConfig bounds the cost of a single request.
type LimitsConfig struct {
	MaxFileSize       int64    `mapstructure:"max_file_size"`
	MaxImageDimension int      `mapstructure:"max_image_dimension"`
	ThumbnailBound    int      `mapstructure:"thumbnail_bound"` // 0 disables proactive downscaling
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
	Async   bool     `mapstructure:"async"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()
	setDefaults(viperInstance)

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	viperInstance.SetEnvPrefix("IMAGETOOLS")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.ReadInConfig()

	if err != nil {
		// defaults and environment are enough to run without a file
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c, _ := ParseConfig(v)
	return c
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	// Limits defaults
	v.SetDefault("limits.max_file_size", 10*1024*1024)
	v.SetDefault("limits.max_image_dimension", 4096)
	v.SetDefault("limits.thumbnail_bound", 0)
	v.SetDefault("limits.allowed_extensions", []string{"png", "jpg", "jpeg", "gif", "webp", "bmp"})

	v.SetDefault("cors.allow_origins", []string{"*"})

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka.topic", "image-operations")
	v.SetDefault("kafka.group_id", "image-operations-auditor")
	v.SetDefault("kafka.async", true)

	v.SetDefault("log.level", "info")
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
