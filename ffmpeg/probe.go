// Package ffmpeg decodes video files by shelling out to ffprobe and ffmpeg.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/splice-cli/source"
)

// probeOutput is the subset of `ffprobe -of json` output we read.
type probeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the first video stream's metadata.
func Probe(ctx context.Context, ffprobePath, path string) (source.Info, error) {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,nb_frames,duration",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return source.Info{}, fmt.Errorf("%w: ffprobe %s: %v: %s", source.ErrSourceUnavailable, path, err, strings.TrimSpace(stderr.String()))
	}
	info, err := parseProbe(out.Bytes())
	if err != nil {
		return source.Info{}, fmt.Errorf("%w: %s: %v", source.ErrSourceUnavailable, path, err)
	}
	return info, nil
}

func parseProbe(data []byte) (source.Info, error) {
	var p probeOutput
	if err := json.Unmarshal(data, &p); err != nil {
		return source.Info{}, fmt.Errorf("unmarshal ffprobe output: %w", err)
	}
	if len(p.Streams) == 0 {
		return source.Info{}, fmt.Errorf("no video stream")
	}
	s := p.Streams[0]

	fps, err := parseRate(s.AvgFrameRate)
	if err != nil || fps <= 0 {
		fps, err = parseRate(s.RFrameRate)
		if err != nil || fps <= 0 {
			return source.Info{}, fmt.Errorf("no usable frame rate (avg %q, r %q)", s.AvgFrameRate, s.RFrameRate)
		}
	}

	frames, _ := strconv.Atoi(s.NbFrames)
	if frames <= 0 {
		duration := s.Duration
		if duration == "" || duration == "N/A" {
			duration = p.Format.Duration
		}
		secs, err := strconv.ParseFloat(duration, 64)
		if err != nil {
			return source.Info{}, fmt.Errorf("no frame count or duration")
		}
		frames = int(math.Round(secs * fps))
	}

	return source.Info{TotalFrames: frames, FPS: fps, Width: s.Width, Height: s.Height}, nil
}

// parseRate parses ffprobe rates such as "30000/1001" or "25".
func parseRate(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("parse rate %q: %w", s, err)
	}
	if !ok {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("parse rate %q: %w", s, err)
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}
