package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/splice-cli/config"
	"github.com/user/splice-cli/ipc"
	"github.com/user/splice-cli/pkg/timeutil"
)

var ctlCmd = &cobra.Command{
	Use:   "ctl",
	Short: "Control playback of a running editor",
	Long:  `Send transport commands to a running 'splice open' session over its control socket.`,
}

// connect opens a client to the running session.
func connect() (*ipc.Client, error) {
	client := ipc.NewClient(config.Load().SocketPath)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to editor: %w\n(Is 'splice open' running?)", err)
	}
	return client, nil
}

var ctlToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Play or pause",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		defer client.Close()

		mode, err := client.Toggle()
		if err != nil {
			return fmt.Errorf("failed to toggle playback: %w", err)
		}
		fmt.Printf("Playback %s\n", mode)
		return nil
	},
}

func stepCommand(use, short string, step func(*ipc.Client) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			moved, err := step(client)
			if err != nil {
				return fmt.Errorf("failed to step: %w", err)
			}
			if !moved {
				fmt.Println("No frame shown (playing, no video, or at the boundary).")
				return nil
			}
			return printStatus(client)
		},
	}
}

var ctlStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show playback mode and position",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		defer client.Close()
		return printStatus(client)
	},
}

var ctlLoadCmd = &cobra.Command{
	Use:   "load <video-id> [start-frame]",
	Short: "Load a catalog video into the player",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid video id: %s", args[0])
		}
		start := 0
		if len(args) == 2 {
			if start, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid start frame: %s", args[1])
			}
		}

		client, err := connect()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Load(id, start); err != nil {
			return fmt.Errorf("failed to load video %d: %w", id, err)
		}
		fmt.Printf("Loaded video %d at frame %d\n", id, start)
		return nil
	},
}

func printStatus(client *ipc.Client) error {
	mode, err := client.GetMode()
	if err != nil {
		return fmt.Errorf("failed to get mode: %w", err)
	}
	pos, err := client.GetPosition()
	if err != nil {
		return fmt.Errorf("failed to get position: %w", err)
	}
	fps, err := client.GetFPS()
	if err != nil {
		fmt.Printf("%s, no video loaded\n", mode)
		return nil
	}
	fmt.Printf("%s at %s (frame %d)\n", mode, timeutil.FormatFrame(max(pos, 0), fps), pos)
	return nil
}

func init() {
	ctlCmd.AddCommand(ctlToggleCmd)
	ctlCmd.AddCommand(stepCommand("back", "Show the previous frame", (*ipc.Client).StepBack))
	ctlCmd.AddCommand(stepCommand("forward", "Show the next frame", (*ipc.Client).StepForward))
	ctlCmd.AddCommand(ctlStatusCmd)
	ctlCmd.AddCommand(ctlLoadCmd)
	rootCmd.AddCommand(ctlCmd)
}
