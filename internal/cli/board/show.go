package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
	"github.com/quadrodev/quadro/internal/models"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a project's board",
		Long: `Render the board: active columns in order, each with its tasks.

Examples:
  # Render the board
  quadro board show --project=1

  # JSON output for agents
  quadro board show --project=1 --json
`,
		RunE: runShow,
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QUADRO_PROJECT env var if not specified)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (task IDs only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	board, err := cliInstance.App.BoardService.GetBoard(ctx, projectID)
	if err != nil {
		if fmtErr := formatter.Error("BOARD_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		for _, col := range board.Columns {
			for _, t := range col.Tasks {
				fmt.Printf("%d\n", t.ID)
			}
		}
		return nil
	}

	if jsonOutput {
		columns := make([]map[string]interface{}, len(board.Columns))
		for i, col := range board.Columns {
			tasks := make([]map[string]interface{}, len(col.Tasks))
			for j, t := range col.Tasks {
				tasks[j] = map[string]interface{}{
					"id":       t.ID,
					"title":    t.Title,
					"position": t.Position,
				}
			}
			columns[i] = map[string]interface{}{
				"id":      col.Column.ID,
				"key":     col.Column.Key,
				"title":   col.Column.Title,
				"ordinal": col.Column.Ordinal,
				"tasks":   tasks,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"board": map[string]interface{}{
				"project_id":   board.ProjectID,
				"project_name": board.ProjectName,
				"status":       board.Status,
				"columns":      columns,
			},
		})
	}

	renderBoard(board)
	return nil
}

// renderBoard prints the board column by column
func renderBoard(board *models.Board) {
	title := color.New(color.FgWhite, color.Bold)
	status := color.New(color.FgYellow)
	if board.Status == models.StatusCompleted {
		status = color.New(color.FgGreen)
	}

	title.Printf("%s ", board.ProjectName)
	status.Printf("[%s]\n", board.Status)

	for _, col := range board.Columns {
		header := color.New(color.FgCyan, color.Bold)
		if col.Column.IsDone {
			header = color.New(color.FgGreen, color.Bold)
		}

		header.Printf("\n%d. %s", col.Column.Ordinal, col.Column.Title)
		if col.Column.WIPLimit != nil {
			over := ""
			if len(col.Tasks) > *col.Column.WIPLimit {
				over = " !"
			}
			header.Printf(" (%d/%d%s)", len(col.Tasks), *col.Column.WIPLimit, over)
		}
		fmt.Println()

		if len(col.Tasks) == 0 {
			color.New(color.Faint).Println("   (empty)")
			continue
		}
		for _, t := range col.Tasks {
			fmt.Printf("   %d. %s (#%d)\n", t.Position, t.Title, t.ID)
		}
	}
}
