package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/splice-cli/display"
	"github.com/user/splice-cli/ffmpeg"
	"github.com/user/splice-cli/pkg/timeutil"
)

// unsafeChars matches characters not safe in file names.
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|\s]`)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <video-file>",
	Short: "Save one frame as a BMP image",
	Long:  `Decode a single frame and write it as a BMP image with a timecode label in the corner.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, _ := cmd.Flags().GetInt("frame")
		out, _ := cmd.Flags().GetString("out")

		cfg, err := setup(verbose)
		if err != nil {
			return err
		}
		if err := checkVideoFile(args[0]); err != nil {
			return err
		}
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		opener := ffmpeg.Opener{FFmpegPath: cfg.FFmpegPath, FFprobePath: cfg.FFprobePath}
		src, err := opener.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open video: %w", err)
		}
		defer src.Close()

		info := src.Info()
		if frame < 0 || frame >= info.TotalFrames {
			return fmt.Errorf("frame %d outside 0..%d", frame, info.TotalFrames-1)
		}
		if err := src.Seek(frame); err != nil {
			return fmt.Errorf("failed to seek: %w", err)
		}
		f, err := src.ReadNext()
		if err != nil {
			return fmt.Errorf("failed to decode frame %d: %w", frame, err)
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if out == "" {
			out = fmt.Sprintf("%s-%06d.bmp", unsafeChars.ReplaceAllString(name, "_"), frame)
		}
		label := fmt.Sprintf("%s  %s", name, timeutil.FormatFrame(frame, info.FPS))
		if err := display.WriteBMP(out, f, label); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Printf("Wrote %s (%dx%d, frame %d)\n", out, f.Width, f.Height, frame)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().IntP("frame", "f", 0, "Frame index to capture")
	snapshotCmd.Flags().StringP("out", "o", "", "Output file (default <name>-<frame>.bmp)")
	rootCmd.AddCommand(snapshotCmd)
}
