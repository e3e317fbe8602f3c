package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/splice-cli/timeline"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SPLICE_DB_PATH", "SPLICE_LOG_PATH", "SPLICE_LOG_LEVEL", "SPLICE_SOCKET",
		"FFMPEG_PATH", "FFPROBE_PATH", "SPLICE_TRACK_FPS", "SPLICE_MAX_HOURS",
		"SPLICE_SNAP_PIXELS", "SPLICE_UNSNAP_PIXELS", "SPLICE_OVERLAP", "SPLICE_LANE_REMOVAL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()
	if cfg.SocketPath != DefaultSocketPath || cfg.FFmpegPath != "ffmpeg" || cfg.FFprobePath != "ffprobe" {
		t.Errorf("paths = %+v", cfg)
	}
	if cfg.TrackFPS != 30 || cfg.MaxHours != 10 || cfg.SnapPixels != 10 || cfg.UnsnapPixels != 10 {
		t.Errorf("timeline settings = %+v", cfg)
	}
	if cfg.Overlap != timeline.OverlapAllow || cfg.LaneRemoval != timeline.RemoveDeleteClips {
		t.Errorf("policies = %v / %v", cfg.Overlap, cfg.LaneRemoval)
	}
	if filepath.Base(cfg.DBPath) != "data.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	env := "SPLICE_TRACK_FPS=25\nSPLICE_OVERLAP=resolve\nSPLICE_LANE_REMOVAL=reassign\nSPLICE_SNAP_PIXELS=not-a-number\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("SPLICE_TRACK_FPS")
		os.Unsetenv("SPLICE_OVERLAP")
		os.Unsetenv("SPLICE_LANE_REMOVAL")
		os.Unsetenv("SPLICE_SNAP_PIXELS")
	})

	cfg := Load()
	if cfg.TrackFPS != 25 {
		t.Errorf("TrackFPS = %g, want 25", cfg.TrackFPS)
	}
	if cfg.SnapPixels != 10 {
		t.Errorf("SnapPixels = %g, want default 10", cfg.SnapPixels)
	}
	tc := cfg.Timeline(1200)
	if tc.Overlap != timeline.OverlapResolve || tc.LaneRemoval != timeline.RemoveReassignClips {
		t.Errorf("Timeline() policies = %v / %v", tc.Overlap, tc.LaneRemoval)
	}
	if tc.TrackFPS != 25 || tc.ViewportWidth != 1200 || tc.LaneHeight != 50 {
		t.Errorf("Timeline() = %+v", tc)
	}
}

func TestValidateRejectsUnknownPolicy(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("SPLICE_OVERLAP", "push")

	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for unknown overlap policy")
	}
}
