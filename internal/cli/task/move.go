package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
	taskservice "github.com/quadrodev/quadro/internal/services/task"
	"github.com/quadrodev/quadro/internal/user"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to a column",
		Long: `Move a task to another column, or to a new position. The destination
column can be named by ID or by its key. Without --position the task is
appended to the end of the destination column. Moving a task to the column
it is already in does nothing.

Examples:
  # Move to a column by key, appended at the end
  quadro task move --task=7 --to=done

  # Move to a column by ID at a specific position
  quadro task move --task=7 --to-id=4 --position=1
`,
		RunE: runMove,
	}

	cmd.Flags().Int("task", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("task"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().String("to", "", "Destination column key")
	cmd.Flags().Int("to-id", 0, "Destination column ID (takes precedence over --to)")
	cmd.Flags().Int("position", 0, "1-based position in the destination column (0 = append)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetInt("task")
	toKey, _ := cmd.Flags().GetString("to")
	toID, _ := cmd.Flags().GetInt("to-id")
	position, _ := cmd.Flags().GetInt("position")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if toKey == "" && toID <= 0 {
		if fmtErr := formatter.Error("NO_DESTINATION", "a destination column is required (--to or --to-id)"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

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

	req := taskservice.MoveRequest{
		TaskID:          taskID,
		TargetColumnKey: toKey,
		Actor:           user.ResolveActor(),
	}
	if toID > 0 {
		req.TargetColumnID = &toID
	}
	if position > 0 {
		req.Position = &position
	}

	task, err := cliInstance.App.TaskService.MoveTask(ctx, req)
	if err != nil {
		if fmtErr := formatter.Error("TASK_MOVE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		fmt.Printf("%d\n", task.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"task": map[string]interface{}{
				"id":        task.ID,
				"title":     task.Title,
				"column_id": task.ColumnID,
				"position":  task.Position,
			},
		})
	}

	fmt.Printf("✓ Task '%s' moved (position: %d)\n", task.Title, task.Position)
	return nil
}
