package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/splice-cli/catalog"
	"github.com/user/splice-cli/config"
	"github.com/user/splice-cli/db"
	"github.com/user/splice-cli/deps"
	"github.com/user/splice-cli/ffmpeg"
	"github.com/user/splice-cli/logger"
)

var Version = "0.1.0"

// previewWidth caps decoded frame width; the terminal preview never needs more.
const previewWidth = 640

var rootCmd = &cobra.Command{
	Use:   "splice",
	Short: "A terminal non-linear video editor",
	Long: `splice is a terminal video editor: arrange clips from a video catalog on
stacked lanes, drag them with snapping, and preview videos frame by frame.

Features:
  - Import videos into a persistent catalog (SQLite)
  - Edit a multi-lane timeline with snapping and zoom
  - Play, pause and step through videos in the terminal
  - Control playback of a running session over a unix socket`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("splice version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the external tools splice decodes video with (ffmpeg, ffprobe) are installed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		for _, tool := range []deps.Tool{
			{Name: "ffmpeg", Path: cfg.FFmpegPath},
			{Name: "ffprobe", Path: cfg.FFprobePath},
		} {
			path, err := tool.Check()
			if err != nil {
				fmt.Printf("✗ %s: NOT FOUND\n", tool.Name)
				fmt.Printf("  Install from: %s\n", deps.FfmpegInstallURL)
				allGood = false
				continue
			}
			fmt.Printf("✓ %s: OK (%s)\n", tool.Name, path)
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("✗ config: %v\n", err)
			allGood = false
		}

		fmt.Println()
		if !allGood {
			return fmt.Errorf("some dependencies are missing")
		}
		fmt.Println("All dependencies are installed!")
		return nil
	},
}

// verbose mirrors logs to stderr for commands that don't own the terminal.
var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also write logs to stderr")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

// setup loads configuration and starts the logger. console controls whether
// logs are also written to stderr.
func setup(console bool) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.InitLogger(cfg.Logger(console)); err != nil {
		return nil, fmt.Errorf("failed to start logger: %w", err)
	}
	return cfg, nil
}

// openCatalog opens the database and loads the persisted catalog. The
// returned database must be closed by the caller.
func openCatalog(cfg *config.Config) (*catalog.Catalog, *sql.DB, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	opener := ffmpeg.Opener{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		MaxWidth:    previewWidth,
	}
	lib := catalog.New(opener,
		catalog.WithStore(db.NewCatalogStore(database)),
		catalog.WithLogger(logger.L()),
	)
	if err := lib.Load(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return lib, database, nil
}

func Execute() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
