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

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a task in a project. Without --column the task lands in the
project's default column, at the end of the list.

Examples:
  # Create in the default column
  quadro task create --title="Fix login bug" --project=1

  # Create in a specific column
  quadro task create --title="Fix login bug" --project=1 --column=3

  # Quiet mode for bash capture
  TASK_ID=$(quadro task create --title="Fix login bug" --project=1 --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QUADRO_PROJECT env var if not specified)")
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().Int("column", 0, "Column ID (0 = project default column)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	columnID, _ := cmd.Flags().GetInt("column")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	projectID, err := cli.GetProjectID(cmd)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("NO_PROJECT",
			err.Error(),
			"Pass --project=<id> or export QUADRO_PROJECT=<id>"); fmtErr != nil {
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

	req := taskservice.CreateTaskRequest{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Actor:       user.ResolveActor(),
	}
	if columnID > 0 {
		req.ColumnID = &columnID
	}

	task, err := cliInstance.App.TaskService.CreateTask(ctx, req)
	if err != nil {
		if fmtErr := formatter.Error("TASK_CREATE_ERROR", err.Error()); fmtErr != nil {
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
				"id":         task.ID,
				"title":      task.Title,
				"column_id":  task.ColumnID,
				"position":   task.Position,
				"project_id": task.ProjectID,
			},
		})
	}

	fmt.Printf("✓ Task '%s' created successfully (ID: %d, position: %d)\n", task.Title, task.ID, task.Position)
	return nil
}
