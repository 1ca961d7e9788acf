package column

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrodev/quadro/internal/cli"
	columnservice "github.com/quadrodev/quadro/internal/services/column"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new column",
		Long: `Create a new column in a project.

Examples:
  # Create column at end (human-readable output)
  quadro column create --title="Blocked" --project=1

  # Insert at a specific position, shifting the rest right
  quadro column create --title="Triage" --project=1 --ordinal=2

  # Mark the column as a done stage with a WIP limit
  quadro column create --title="Shipped" --project=1 --done --wip=5

  # Quiet mode for bash capture
  COLUMN_ID=$(quadro column create --title="Blocked" --project=1 --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Column title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QUADRO_PROJECT env var if not specified)")
	cmd.Flags().String("description", "", "Column description")
	cmd.Flags().String("color", "", "Column color in #RRGGBB format")
	cmd.Flags().Int("ordinal", 0, "Position among active columns (0 = append to end)")
	cmd.Flags().Int("wip", 0, "Advisory WIP limit (0 = unlimited)")
	cmd.Flags().Bool("done", false, "Mark this column as holding completed tasks")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	color, _ := cmd.Flags().GetString("color")
	ordinal, _ := cmd.Flags().GetInt("ordinal")
	wip, _ := cmd.Flags().GetInt("wip")
	isDone, _ := cmd.Flags().GetBool("done")
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

	req := columnservice.CreateColumnRequest{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Color:       color,
		IsDone:      isDone,
	}
	if ordinal > 0 {
		req.Ordinal = &ordinal
	}
	if wip > 0 {
		req.WIPLimit = &wip
	}

	column, err := cliInstance.App.ColumnService.CreateColumn(ctx, req)
	if err != nil {
		if fmtErr := formatter.Error("COLUMN_CREATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		fmt.Printf("%d\n", column.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"column": map[string]interface{}{
				"id":         column.ID,
				"key":        column.Key,
				"title":      column.Title,
				"ordinal":    column.Ordinal,
				"project_id": column.ProjectID,
			},
		})
	}

	fmt.Printf("✓ Column '%s' created successfully (ID: %d, key: %s, position: %d)\n",
		column.Title, column.ID, column.Key, column.Ordinal)
	return nil
}
