package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/config"
	"github.com/quadrodev/quadro/internal/events"
)

// WatchCmd returns the board watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live board events from the daemon",
		Long: `Connect to the quadro daemon and print board change events as they
happen. Requires a running daemon (quadro daemon). Stops on Ctrl-C.

Examples:
  # Watch every project
  quadro board watch

  # Watch a single project
  quadro board watch --project=1

  # One JSON object per line, for agents
  quadro board watch --json
`,
		RunE: runWatch,
	}

	cmd.Flags().Int("project", 0, "Only show events for this project (0 = all)")
	cmd.Flags().Bool("json", false, "Output one JSON object per event")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	projectID, _ := cmd.Flags().GetInt("project")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := events.NewClient(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to create event client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to daemon at %s: %w", cfg.SocketPath, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Error("Error closing event client", "error", err)
		}
	}()

	if projectID > 0 {
		if err := client.Subscribe(projectID); err != nil {
			return fmt.Errorf("failed to subscribe to project %d: %w", projectID, err)
		}
	}

	eventChan, err := client.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to listen for events: %w", err)
	}

	if !jsonOutput {
		if projectID > 0 {
			fmt.Printf("Watching project %d (Ctrl-C to stop)\n", projectID)
		} else {
			fmt.Println("Watching all projects (Ctrl-C to stop)")
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	for event := range eventChan {
		if jsonOutput {
			if err := encoder.Encode(event); err != nil {
				return err
			}
			continue
		}
		printEvent(event)
	}

	return ctx.Err()
}

func printEvent(event events.Event) {
	stamp := event.Timestamp.Format("15:04:05")
	label := color.New(color.FgCyan)

	switch event.Type {
	case events.EventTaskMoved:
		label.Printf("%s task_moved", stamp)
		fmt.Printf(" project=%d task=%d\n", event.ProjectID, event.TaskID)
	case events.EventColumnChanged:
		label.Printf("%s column_changed", stamp)
		fmt.Printf(" project=%d\n", event.ProjectID)
	case events.EventStatusChanged:
		color.New(color.FgYellow).Printf("%s status_changed", stamp)
		fmt.Printf(" project=%d\n", event.ProjectID)
	default:
		label.Printf("%s %s", stamp, event.Type)
		fmt.Printf(" project=%d\n", event.ProjectID)
	}
}
