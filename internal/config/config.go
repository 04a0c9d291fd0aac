package config

import (
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	defaultListenAddr     = "127.0.0.1:7010"
	defaultSilenceTimeout = 30 * time.Second
)

// AppConfig holds application configuration
type AppConfig struct {
	logger          *zap.Logger
	discordClientID string
	tmdbKey         string
	youtubeKey      string
	listenAddr      string
	silenceTimeout  time.Duration
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	// Read from environment variables or use defaults
	listenAddr := os.Getenv("STREMCORD_ADDR")
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	silenceTimeout := defaultSilenceTimeout
	if raw := os.Getenv("STREMCORD_SILENCE_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			silenceTimeout = d
		} else {
			logger.Warn("Invalid STREMCORD_SILENCE_TIMEOUT, using default",
				zap.String("value", raw),
				zap.Duration("default", defaultSilenceTimeout))
		}
	}

	cfg := &AppConfig{
		logger:          logger,
		discordClientID: os.Getenv("STREMCORD_DISCORD_CLIENT_ID"),
		tmdbKey:         os.Getenv("STREMCORD_TMDB_API_KEY"),
		youtubeKey:      os.Getenv("STREMCORD_YOUTUBE_API_KEY"),
		listenAddr:      listenAddr,
		silenceTimeout:  silenceTimeout,
	}

	logger.Info("Configuration loaded",
		zap.String("listenAddr", cfg.listenAddr),
		zap.Duration("silenceTimeout", cfg.silenceTimeout),
		zap.Bool("discordConfigured", cfg.discordClientID != ""),
		zap.Bool("tmdbConfigured", cfg.tmdbKey != ""),
		zap.Bool("youtubeConfigured", cfg.youtubeKey != ""))

	return cfg
}

// GetDiscordClientID returns the presence daemon application id
func (c *AppConfig) GetDiscordClientID() string {
	return c.discordClientID
}

// GetTMDBKey returns the catalog API key
func (c *AppConfig) GetTMDBKey() string {
	return c.tmdbKey
}

// GetYouTubeKey returns the video-platform API key
func (c *AppConfig) GetYouTubeKey() string {
	return c.youtubeKey
}

// GetListenAddr returns the addon HTTP listen address
func (c *AppConfig) GetListenAddr() string {
	return c.listenAddr
}

// GetSilenceTimeout returns how long after the last watch event the status
// reverts to idle
func (c *AppConfig) GetSilenceTimeout() time.Duration {
	return c.silenceTimeout
}
