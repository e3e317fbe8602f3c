package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/splice-cli/pkg/timeutil"
)

var importCmd = &cobra.Command{
	Use:   "import <video-file>...",
	Short: "Add videos to the catalog",
	Long:  `Probe each video with ffprobe and record it in the catalog. Importing a file twice keeps its existing id.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(verbose)
		if err != nil {
			return err
		}
		lib, database, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		failed := 0
		for _, path := range args {
			if err := checkVideoFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
				failed++
				continue
			}
			v, err := lib.Register(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("✓ [%d] %s (%s, %d frames at %.3g fps)\n",
				v.ID, v.Name, timeutil.FormatTime(v.DurationSeconds), v.TotalFrames, v.FPS)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d video(s) could not be imported", failed, len(args))
		}
		return nil
	},
}

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List catalog videos",
	Long:  `Display every imported video as a table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(verbose)
		if err != nil {
			return err
		}
		lib, database, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		videos := lib.List()
		if len(videos) == 0 {
			fmt.Println("No videos imported. Use 'splice import <video-file>' to add one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tName\tDuration\tFPS\tSize\tResume\tPath")
		fmt.Fprintln(w, "--\t----\t--------\t---\t----\t------\t----")
		for _, v := range videos {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.3g\t%dx%d\t%s\t%s\n",
				v.ID, v.Name,
				timeutil.FormatTime(v.DurationSeconds),
				v.FPS, v.Width, v.Height,
				timeutil.FormatFrame(v.LastFrame, v.FPS),
				v.Path)
		}
		w.Flush()

		fmt.Printf("\n%d video(s).\n", len(videos))
		return nil
	},
}

// checkVideoFile reports paths that are missing or are directories.
func checkVideoFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", abs)
	}
	if err != nil {
		return fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a video file: %s", abs)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(videosCmd)
}
