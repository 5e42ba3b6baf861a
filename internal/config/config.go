// Package config provides runtime configuration values for the catalog binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the settings shared by the service, the client and the seeder.
type Config struct {
	Port            int           `mapstructure:"PORT" validate:"min=1,max=65535"`
	StoreDriver     string        `mapstructure:"STORE_DRIVER" validate:"oneof=mongo postgres memory"`
	MongoURI        string        `mapstructure:"MONGO_URI" validate:"required_if=StoreDriver mongo"`
	MongoDatabase   string        `mapstructure:"MONGO_DATABASE" validate:"required_if=StoreDriver mongo"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	TrustProxy      bool          `mapstructure:"TRUST_PROXY"`
	RateLimitRPS    float64       `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst  int           `mapstructure:"RATE_LIMIT_BURST" validate:"min=1"`
	BanStrikes      int           `mapstructure:"BAN_STRIKES" validate:"min=1"`
	BanDuration     time.Duration `mapstructure:"BAN_DURATION" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	WebPort         int           `mapstructure:"WEB_PORT" validate:"min=1,max=65535"`
	APIURL          string        `mapstructure:"API_URL" validate:"required,url"`
	LogLevel        string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// HTTPAddr is the listen address of the catalog service.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// WebAddr is the listen address of the catalog client.
func (c Config) WebAddr() string {
	return fmt.Sprintf(":%d", c.WebPort)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 5000)
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "catalog")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("TRUST_PROXY", false)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("BAN_STRIKES", 5)
	v.SetDefault("BAN_DURATION", "15m")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("WEB_PORT", 3000)
	v.SetDefault("API_URL", "http://localhost:5000/api")
	v.SetDefault("LOG_LEVEL", "info")
}

// configFiles are tried in order in the working directory; the first one present wins.
var configFiles = []string{"config.yaml", ".env"}

// NewViper returns a viper instance pointed at config.yaml or .env in the working
// directory, whichever exists first. With neither present only defaults and the
// environment apply.
func NewViper() *viper.Viper {
	v := viper.New()
	for _, name := range configFiles {
		if _, err := os.Stat(name); err == nil {
			v.SetConfigFile(name)
			if name == ".env" {
				v.SetConfigType("env")
			}
			break
		}
	}
	return v
}

// Load reads configuration from the environment and an optional config.yaml or .env
// file in the working directory. Environment variables take precedence over the file.
func Load() (Config, error) {
	return LoadFrom(NewViper())
}

// LoadFrom fills defaults on v, reads its config file if one is set up, applies the
// environment and validates the result.
func LoadFrom(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
