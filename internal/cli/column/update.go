package column

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
	columnservice "github.com/quadrodev/quadro/internal/services/column"
)

// UpdateCmd returns the column update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a column",
		Long: `Update a column's title, description, color or flags.
The column key never changes, so scripts keyed on it keep working after a rename.

Examples:
  # Rename a column
  quadro column update --column=3 --title="Code Review"

  # Change color and WIP limit
  quadro column update --column=3 --color="#F97316" --wip=4

  # Mark as a done stage
  quadro column update --column=5 --done
`,
		RunE: runUpdate,
	}

	cmd.Flags().Int("column", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().String("title", "", "New column title")
	cmd.Flags().String("description", "", "New column description")
	cmd.Flags().String("color", "", "New color in #RRGGBB format")
	cmd.Flags().Int("wip", 0, "Advisory WIP limit (0 = leave unchanged)")
	cmd.Flags().Bool("done", false, "Whether this column holds completed tasks")
	cmd.Flags().Bool("inactive", false, "Deactivate the column")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	columnID, _ := cmd.Flags().GetInt("column")
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	color, _ := cmd.Flags().GetString("color")
	wip, _ := cmd.Flags().GetInt("wip")
	isDone, _ := cmd.Flags().GetBool("done")
	inactive, _ := cmd.Flags().GetBool("inactive")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if color != "" {
		if err := cli.ValidateColorHex(color); err != nil {
			if fmtErr := formatter.Error("INVALID_COLOR", err.Error()); fmtErr != nil {
				slog.Error("Error formatting error message", "error", fmtErr)
			}
			os.Exit(cli.ExitValidation)
		}
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

	current, err := cliInstance.App.ColumnService.GetColumnByID(ctx, columnID)
	if err != nil {
		if fmtErr := formatter.Error("COLUMN_NOT_FOUND", fmt.Sprintf("column %d not found", columnID)); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitNotFound)
	}

	// The service overwrites both flags on every update, so carry the
	// current values unless the caller set the flag explicitly
	req := columnservice.UpdateColumnRequest{
		IsDone:   current.IsDone,
		IsActive: current.IsActive,
	}
	if cmd.Flags().Changed("done") {
		req.IsDone = isDone
	}
	if cmd.Flags().Changed("inactive") {
		req.IsActive = !inactive
	}
	if cmd.Flags().Changed("title") {
		req.Title = &title
	}
	if cmd.Flags().Changed("description") {
		req.Description = &description
	}
	if cmd.Flags().Changed("color") {
		req.Color = &color
	}
	if cmd.Flags().Changed("wip") {
		req.WIPLimit = &wip
	}

	column, err := cliInstance.App.ColumnService.UpdateColumn(ctx, columnID, req)
	if err != nil {
		if fmtErr := formatter.Error("COLUMN_UPDATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		fmt.Printf("%d\n", column.ID)
		return nil
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{
			"id":      column.ID,
			"key":     column.Key,
			"title":   column.Title,
			"is_done": column.IsDone,
		})
	}

	fmt.Printf("✓ Column %d updated (title: %s, key: %s)\n", column.ID, column.Title, column.Key)
	return nil
}
