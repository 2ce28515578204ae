package config

import (
	"fmt"
	"strings"
	"time"

	libconfig "glucoface/libs/config"
)

// Config defines the watchface engine configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"GLUCOFACE_HTTP_PORT"`
	} `yaml:"http"`
	Display struct {
		Width          int  `yaml:"width" env:"GLUCOFACE_DISPLAY_WIDTH"`
		Height         int  `yaml:"height" env:"GLUCOFACE_DISPLAY_HEIGHT"`
		SupportsColor  bool `yaml:"supportsColor" env:"GLUCOFACE_COLOR"`
		TwentyFourHour bool `yaml:"twentyFourHour" env:"GLUCOFACE_24H"`
	} `yaml:"display"`
	Timing struct {
		TickSeconds         int `yaml:"tickSeconds" env:"GLUCOFACE_TICK_SECONDS"`
		SyncFrameMs         int `yaml:"syncFrameMs" env:"GLUCOFACE_SYNC_FRAME_MS"`
		SyncDisplayMs       int `yaml:"syncDisplayMs" env:"GLUCOFACE_SYNC_DISPLAY_MS"`
		LoadingFrameMs      int `yaml:"loadingFrameMs" env:"GLUCOFACE_LOADING_FRAME_MS"`
		LoadingTimeoutMs    int `yaml:"loadingTimeoutMs" env:"GLUCOFACE_LOADING_TIMEOUT_MS"`
		RequestAfterMinutes int `yaml:"requestAfterMinutes" env:"GLUCOFACE_REQUEST_AFTER_MIN"`
		WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds" env:"GLUCOFACE_WRITE_TIMEOUT"`
	} `yaml:"timing"`
}

// Load uses the shared config loader and fills defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8099"
	cfg.Display.Width = 144
	cfg.Display.Height = 168
	cfg.Display.TwentyFourHour = true
	cfg.Timing.TickSeconds = 60
	cfg.Timing.SyncFrameMs = 100
	cfg.Timing.SyncDisplayMs = 400
	cfg.Timing.LoadingFrameMs = 100
	cfg.Timing.LoadingTimeoutMs = 15000
	cfg.Timing.RequestAfterMinutes = 4
	cfg.Timing.WriteTimeoutSeconds = 15

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HTTPAddress returns a :port style address.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8099"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TickInterval returns the wake-tick period.
func (c *Config) TickInterval() time.Duration {
	if c.Timing.TickSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.Timing.TickSeconds) * time.Second
}

// SyncFrameInterval returns the spinner frame period.
func (c *Config) SyncFrameInterval() time.Duration {
	return msOrDefault(c.Timing.SyncFrameMs, 100*time.Millisecond)
}

// SyncDisplayWindow returns how long the spinner stays after the last
// request.
func (c *Config) SyncDisplayWindow() time.Duration {
	return msOrDefault(c.Timing.SyncDisplayMs, 400*time.Millisecond)
}

// LoadingFrameInterval returns the loading-dots frame period.
func (c *Config) LoadingFrameInterval() time.Duration {
	return msOrDefault(c.Timing.LoadingFrameMs, 100*time.Millisecond)
}

// LoadingTimeout returns the first-connect timeout.
func (c *Config) LoadingTimeout() time.Duration {
	return msOrDefault(c.Timing.LoadingTimeoutMs, 15*time.Second)
}

// WriteTimeout returns the websocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	if c.Timing.WriteTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Timing.WriteTimeoutSeconds) * time.Second
}

func msOrDefault(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
