package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
	"github.com/quadrodev/quadro/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List the tasks of a project, or of a single column in position order.

Examples:
  # Every task of a project
  quadro task list --project=1

  # Tasks of one column, in board order
  quadro task list --column=3

  # JSON output for agents
  quadro task list --project=1 --json
`,
		RunE: runList,
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QUADRO_PROJECT env var if not specified)")
	cmd.Flags().Int("column", 0, "Column ID (lists only this column's tasks)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	columnID, _ := cmd.Flags().GetInt("column")
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

	var tasks []*models.Task
	if columnID > 0 {
		tasks, err = cliInstance.App.TaskService.ListTasksByColumn(ctx, columnID)
	} else {
		var projectID int
		projectID, err = cli.GetProjectID(cmd)
		if err != nil {
			if fmtErr := formatter.ErrorWithSuggestion("NO_PROJECT",
				err.Error(),
				"Pass --project=<id>, --column=<id>, or export QUADRO_PROJECT=<id>"); fmtErr != nil {
				slog.Error("Error formatting error message", "error", fmtErr)
			}
			os.Exit(cli.ExitUsage)
		}
		tasks, err = cliInstance.App.TaskService.ListTasksByProject(ctx, projectID)
	}
	if err != nil {
		if fmtErr := formatter.Error("TASK_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		for _, t := range tasks {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}

	if jsonOutput {
		taskList := make([]map[string]interface{}, len(tasks))
		for i, t := range tasks {
			taskList[i] = map[string]interface{}{
				"id":        t.ID,
				"title":     t.Title,
				"column_id": t.ColumnID,
				"position":  t.Position,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"tasks":   taskList,
		})
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	for _, t := range tasks {
		fmt.Printf("  %d. %s (ID: %d)\n", t.Position, t.Title, t.ID)
	}
	return nil
}
