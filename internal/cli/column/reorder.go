package column

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
)

// ReorderCmd returns the column reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Reorder columns",
		Long: `Reorder the active columns of a project. Columns take the position of
their index in the list; active columns left out of the list are appended
afterwards in their previous relative order.

Examples:
  # Full order
  quadro column reorder --project=1 --order=4,3,2,1

  # Pull one column to the front, everything else follows
  quadro column reorder --project=1 --order=4
`,
		RunE: runReorder,
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QUADRO_PROJECT env var if not specified)")
	cmd.Flags().String("order", "", "Comma-separated column IDs in the desired order (required)")
	if err := cmd.MarkFlagRequired("order"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runReorder(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	order, _ := cmd.Flags().GetString("order")
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

	var orderedIDs []int
	for _, part := range strings.Split(order, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			if fmtErr := formatter.Error("INVALID_ORDER", fmt.Sprintf("invalid column ID %q in --order", part)); fmtErr != nil {
				slog.Error("Error formatting error message", "error", fmtErr)
			}
			os.Exit(cli.ExitUsage)
		}
		orderedIDs = append(orderedIDs, id)
	}
	if len(orderedIDs) == 0 {
		if fmtErr := formatter.Error("INVALID_ORDER", "--order must list at least one column ID"); fmtErr != nil {
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

	if err := cliInstance.App.ColumnService.ReorderColumns(ctx, projectID, orderedIDs); err != nil {
		if fmtErr := formatter.Error("COLUMN_REORDER_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{
			"project_id": projectID,
			"order":      orderedIDs,
		})
	}

	fmt.Printf("✓ Columns reordered in project %d\n", projectID)
	return nil
}
