package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/novabuf/internal/bufferpool"
	"github.com/tuannm99/novabuf/internal/storage"
)

type NovaBufConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Workdir string `mapstructure:"workdir"`
	} `mapstructure:"storage"`

	BufferPool struct {
		Frames int `mapstructure:"frames"`
	} `mapstructure:"buffer_pool"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// LoadConfig reads a YAML config file. Missing keys fall back to defaults and
// every key can be overridden from the environment, e.g. NOVABUF_BUFFER_POOL_FRAMES.
// An empty path loads defaults and environment only.
func LoadConfig(path string) (*NovaBufConfig, error) {
	v := viper.New()
	v.SetDefault("app_name", "novabuf")
	v.SetDefault("storage.workdir", "./data")
	v.SetDefault("buffer_pool.frames", bufferpool.DefaultCapacity)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("NOVABUF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaBufConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.BufferPool.Frames <= 0 {
		return nil, fmt.Errorf("buffer_pool.frames must be positive, got %d", cfg.BufferPool.Frames)
	}

	return &cfg, nil
}

// SlogLevel maps log.level to a slog level; unknown values mean info.
func (c *NovaBufConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c *NovaBufConfig) NewPool() *bufferpool.Pool {
	return bufferpool.NewPool(c.BufferPool.Frames)
}

// OpenFile opens the named file under storage.workdir.
func (c *NovaBufConfig) OpenFile(name string) (*storage.LocalFile, error) {
	return storage.OpenLocalFile(c.Storage.Workdir, name)
}
