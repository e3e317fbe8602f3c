package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/splice-cli/catalog"
	"github.com/user/splice-cli/deps"
	"github.com/user/splice-cli/display"
	"github.com/user/splice-cli/ipc"
	"github.com/user/splice-cli/logger"
	"github.com/user/splice-cli/pkg/timeutil"
	"github.com/user/splice-cli/timeline"
	"github.com/user/splice-cli/transport"
	"github.com/user/splice-cli/tui"
	"github.com/user/splice-cli/tui/forms"
)

var openCmd = &cobra.Command{
	Use:   "open [video-file]...",
	Short: "Open the editor",
	Long: `Open the timeline editor. Each video given is imported if needed and placed
on its own lane; the first one is loaded into the player, resuming where it was
last left. Without arguments, pick a catalog video from a list.

While the editor runs, playback can be driven from another terminal with
'splice ctl'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The editor owns the terminal, so logs only go to the file.
		cfg, err := setup(false)
		if err != nil {
			return err
		}
		if err := deps.CheckFfmpeg(cfg.FFmpegPath); err != nil {
			return err
		}
		if err := deps.CheckFfprobe(cfg.FFprobePath); err != nil {
			return err
		}

		lib, database, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		var ids []int
		for _, path := range args {
			if err := checkVideoFile(path); err != nil {
				return err
			}
			v, err := lib.Register(path)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", path, err)
			}
			ids = append(ids, v.ID)
		}
		if len(args) == 0 && lib.Len() > 0 {
			id, err := pickVideo(lib)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		engine, err := timeline.New(cfg.Timeline(0))
		if err != nil {
			return fmt.Errorf("invalid timeline settings: %w", err)
		}
		for i, id := range ids {
			v, err := lib.Get(id)
			if err != nil {
				return err
			}
			if i > 0 {
				engine.AddLane()
			}
			if _, err := engine.AddClip(i, v.DurationSeconds, timeline.WithVideo(id)); err != nil {
				return fmt.Errorf("failed to place %s: %w", v.Name, err)
			}
		}

		log := logger.L()
		frames := display.NewMailbox(display.DefaultCapacity)
		player := transport.New(frames, transport.WithLogger(log))
		defer player.Close()

		opts := []tui.Option{tui.WithLogger(log)}
		if len(ids) > 0 {
			opts = append(opts, tui.WithInitialVideo(ids[0]))
		}
		prog := tui.NewProgram(tui.NewModel(engine, player, frames, lib, opts...))

		server := ipc.NewServer(cfg.SocketPath, player, lib,
			ipc.WithServerLogger(log),
			ipc.WithLoadHook(func(id, start int) {
				prog.Send(tui.VideoLoadedMsg{VideoID: id, Start: start})
			}),
		)
		if err := server.Start(); err != nil {
			log.Warn("control socket unavailable", zap.String("socket", cfg.SocketPath), zap.Error(err))
		} else {
			defer server.Close()
		}

		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("editor failed: %w", err)
		}
		return nil
	},
}

// pickVideo asks the user to choose a catalog video.
func pickVideo(lib *catalog.Catalog) (int, error) {
	var options []forms.VideoOption
	for _, v := range lib.List() {
		options = append(options, forms.VideoOption{
			ID:    v.ID,
			Label: fmt.Sprintf("%s (%s)", v.Name, timeutil.FormatTime(v.DurationSeconds)),
		})
	}
	var id int
	if err := forms.NewVideoPickerForm(options, &id).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, errors.New("no video selected")
		}
		return 0, fmt.Errorf("video picker failed: %w", err)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(openCmd)
}
