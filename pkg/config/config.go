package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env    string `mapstructure:"-"`
	Debug  bool
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type LogConfig struct {
	Level string
}

// Load 讀取 ./pkg/config/config.yaml 並套用 env 對應的設定檔
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./pkg/config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return fromViper(v, env)
}

// LoadFile 與 Load 相同，但從指定的檔案讀取
func LoadFile(path, env string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return fromViper(v, env)
}

// fromViper 以 common 區塊為基礎，再以環境區塊覆寫，最後由環境變數覆寫
// (例如 DB_DSN、SERVER_ADDRESS)。
func fromViper(v *viper.Viper, env string) (*Config, error) {
	if env == "" {
		env = EnvDevelopment
	}
	if env != EnvDevelopment && env != EnvProduction {
		return nil, fmt.Errorf("unknown environment %q", env)
	}

	merged := viper.New()
	if common := v.Sub("common"); common != nil {
		if err := merged.MergeConfigMap(common.AllSettings()); err != nil {
			return nil, err
		}
	}
	profile := v.Sub(env)
	if profile == nil {
		return nil, fmt.Errorf("environment %q not defined in config", env)
	}
	if err := merged.MergeConfigMap(profile.AllSettings()); err != nil {
		return nil, err
	}

	merged.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	merged.AutomaticEnv()

	var config Config
	if err := merged.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.Env = env

	if config.DB.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}

	return &config, nil
}
