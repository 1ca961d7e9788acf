package column

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns in a project",
		Long: `List the active columns of a project in board order.

Examples:
  # Human-readable list
  quadro column list --project=1

  # Include soft-deleted columns
  quadro column list --project=1 --all

  # JSON output for agents
  quadro column list --project=1 --json
`,
		RunE: runList,
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QUADRO_PROJECT env var if not specified)")
	cmd.Flags().Bool("all", false, "Include inactive (soft-deleted) columns")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	includeAll, _ := cmd.Flags().GetBool("all")
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

	project, err := cliInstance.App.ProjectService.GetProjectByID(ctx, projectID)
	if err != nil {
		if fmtErr := formatter.Error("PROJECT_NOT_FOUND", fmt.Sprintf("project %d not found", projectID)); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitNotFound)
	}

	list := cliInstance.App.ColumnService.ListActive
	if includeAll {
		list = cliInstance.App.ColumnService.ListAll
	}
	columns, err := list(ctx, projectID)
	if err != nil {
		if fmtErr := formatter.Error("COLUMN_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		for _, col := range columns {
			fmt.Printf("%d\n", col.ID)
		}
		return nil
	}

	if jsonOutput {
		columnList := make([]map[string]interface{}, len(columns))
		for i, col := range columns {
			columnList[i] = map[string]interface{}{
				"id":         col.ID,
				"key":        col.Key,
				"title":      col.Title,
				"ordinal":    col.Ordinal,
				"is_default": col.IsDefault,
				"is_done":    col.IsDone,
				"is_active":  col.IsActive,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"columns": columnList,
		})
	}

	if len(columns) == 0 {
		fmt.Printf("No columns found in project '%s'\n", project.Name)
		return nil
	}

	fmt.Printf("Columns in project '%s':\n", project.Name)
	for _, col := range columns {
		flags := ""
		if col.IsDefault {
			flags += " [DEFAULT]"
		}
		if col.IsDone {
			flags += " [DONE]"
		}
		if !col.IsActive {
			flags += " [INACTIVE]"
		}
		fmt.Printf("  %d. %s%s (ID: %d, key: %s)\n", col.Ordinal, col.Title, flags, col.ID, col.Key)
	}
	return nil
}
