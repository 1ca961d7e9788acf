package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
)

// HistoryCmd returns the task history subcommand
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a task's audit trail",
		Long: `Show everything that happened to a task, or only its column movements.

Examples:
  # Full history
  quadro task history --task=7

  # Movements only
  quadro task history --task=7 --movements
`,
		RunE: runHistory,
	}

	cmd.Flags().Int("task", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("task"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().Bool("movements", false, "Show only column-to-column movements")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetInt("task")
	movementsOnly, _ := cmd.Flags().GetBool("movements")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	// The task must exist even if its log is empty
	if _, err := cliInstance.App.TaskService.GetTaskByID(ctx, taskID); err != nil {
		if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitNotFound)
	}

	if movementsOnly {
		movements, err := cliInstance.App.AuditService.Movements(ctx, taskID)
		if err != nil {
			if fmtErr := formatter.Error("HISTORY_FETCH_ERROR", err.Error()); fmtErr != nil {
				slog.Error("Error formatting error message", "error", fmtErr)
			}
			return err
		}

		if jsonOutput {
			list := make([]map[string]interface{}, len(movements))
			for i, m := range movements {
				list[i] = map[string]interface{}{
					"from":       m.FromLabel,
					"to":         m.ToLabel,
					"actor_name": m.ActorName,
					"at":         m.CreatedAt,
				}
			}
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"success":   true,
				"movements": list,
			})
		}

		if len(movements) == 0 {
			fmt.Printf("No movements recorded for task %d\n", taskID)
			return nil
		}
		for _, m := range movements {
			actor := "unknown"
			if m.ActorName != nil {
				actor = *m.ActorName
			}
			fmt.Printf("  %s  %s → %s  (%s)\n", m.CreatedAt.Format("2006-01-02 15:04"), m.FromLabel, m.ToLabel, actor)
		}
		return nil
	}

	history, err := cliInstance.App.AuditService.History(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("HISTORY_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		list := make([]map[string]interface{}, len(history))
		for i, h := range history {
			list[i] = map[string]interface{}{
				"action": h.Action,
				"before": h.Before,
				"after":  h.After,
				"actor":  h.Actor,
				"at":     h.CreatedAt,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"history": list,
		})
	}

	if len(history) == 0 {
		fmt.Printf("No history recorded for task %d\n", taskID)
		return nil
	}
	for _, h := range history {
		if h.Before != "" {
			fmt.Printf("  %s  %s: %s → %s  (%s)\n", h.CreatedAt.Format("2006-01-02 15:04"), h.Action, h.Before, h.After, h.Actor)
		} else {
			fmt.Printf("  %s  %s: %s  (%s)\n", h.CreatedAt.Format("2006-01-02 15:04"), h.Action, h.After, h.Actor)
		}
	}
	return nil
}
