package column

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a column",
		Long: `Soft-delete a column (default) or remove it permanently with --hard.
The default column can never be deleted. Move the column's tasks away first:
soft delete does not relocate them.

Examples:
  # Deactivate a column, keeping its history
  quadro column delete --column=3

  # Record where the tasks are being moved to
  quadro column delete --column=3 --move-to=2

  # Remove the row permanently
  quadro column delete --column=3 --hard
`,
		RunE: runDelete,
	}

	cmd.Flags().Int("column", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().Int("move-to", 0, "Column the tasks were reassigned to (validated, not executed)")
	cmd.Flags().Bool("hard", false, "Delete the row permanently instead of deactivating")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	columnID, _ := cmd.Flags().GetInt("column")
	moveTo, _ := cmd.Flags().GetInt("move-to")
	hard, _ := cmd.Flags().GetBool("hard")
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

	if hard {
		err = cliInstance.App.ColumnService.HardDeleteColumn(ctx, columnID)
	} else {
		var moveToID *int
		if moveTo > 0 {
			moveToID = &moveTo
		}
		err = cliInstance.App.ColumnService.SoftDeleteColumn(ctx, columnID, moveToID)
	}
	if err != nil {
		if fmtErr := formatter.Error("COLUMN_DELETE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{
			"deleted": columnID,
			"hard":    hard,
		})
	}

	if hard {
		fmt.Printf("✓ Column %d permanently deleted\n", columnID)
	} else {
		fmt.Printf("✓ Column %d deactivated\n", columnID)
	}
	return nil
}
