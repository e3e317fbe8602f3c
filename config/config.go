// Package config loads settings from the environment and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/user/splice-cli/logger"
	"github.com/user/splice-cli/timeline"
)

// DefaultSocketPath is the transport control socket used when SPLICE_SOCKET is unset.
const DefaultSocketPath = "/tmp/splice-cli.sock"

// Config stores the application configuration.
type Config struct {
	DBPath      string
	LogPath     string
	LogLevel    string
	SocketPath  string
	FFmpegPath  string
	FFprobePath string

	TrackFPS       float64
	MaxHours       float64
	SnapPixels     float64
	UnsnapPixels   float64
	Overlap        timeline.OverlapPolicy
	LaneRemoval    timeline.LaneRemovalPolicy
	OverlapRaw     string
	LaneRemovalRaw string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "splice-cli")
}

// Load reads .env from the working directory, if present, then the
// environment. Existing environment variables win over .env entries.
// Unparseable values fall back to their defaults; unknown policy names are
// reported by Validate.
func Load() *Config {
	_ = godotenv.Load()

	base := dataDir()
	cfg := &Config{
		DBPath:         getEnv("SPLICE_DB_PATH", filepath.Join(base, "data.db")),
		LogPath:        getEnv("SPLICE_LOG_PATH", filepath.Join(base, "splice.log")),
		LogLevel:       getEnv("SPLICE_LOG_LEVEL", "info"),
		SocketPath:     getEnv("SPLICE_SOCKET", DefaultSocketPath),
		FFmpegPath:     getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:    getEnv("FFPROBE_PATH", "ffprobe"),
		TrackFPS:       getEnvFloat("SPLICE_TRACK_FPS", 30),
		MaxHours:       getEnvFloat("SPLICE_MAX_HOURS", 10),
		SnapPixels:     getEnvFloat("SPLICE_SNAP_PIXELS", 10),
		UnsnapPixels:   getEnvFloat("SPLICE_UNSNAP_PIXELS", 10),
		OverlapRaw:     getEnv("SPLICE_OVERLAP", "allow"),
		LaneRemovalRaw: getEnv("SPLICE_LANE_REMOVAL", "delete"),
	}
	cfg.Overlap, _ = timeline.ParseOverlapPolicy(cfg.OverlapRaw)
	cfg.LaneRemoval, _ = timeline.ParseLaneRemovalPolicy(cfg.LaneRemovalRaw)
	return cfg
}

// Validate reports settings that were set but could not be used.
func (c *Config) Validate() error {
	if _, err := timeline.ParseOverlapPolicy(c.OverlapRaw); err != nil {
		return err
	}
	if _, err := timeline.ParseLaneRemovalPolicy(c.LaneRemovalRaw); err != nil {
		return err
	}
	return nil
}

// Timeline returns the layout engine configuration for a viewport of the
// given width in pixels.
func (c *Config) Timeline(viewportWidth float64) timeline.Config {
	tc := timeline.DefaultConfig()
	tc.TrackFPS = c.TrackFPS
	tc.MaxDurationHours = c.MaxHours
	tc.BaseSnapPixels = c.SnapPixels
	tc.BaseUnsnapPixels = c.UnsnapPixels
	tc.Overlap = c.Overlap
	tc.LaneRemoval = c.LaneRemoval
	if viewportWidth > 0 {
		tc.ViewportWidth = viewportWidth
	}
	return tc
}

// Logger returns the logger configuration. console enables stderr output.
func (c *Config) Logger(console bool) logger.Config {
	return logger.Config{
		Level:      logger.LogLevel(c.LogLevel),
		OutputPath: c.LogPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
		Console:    console,
	}
}
