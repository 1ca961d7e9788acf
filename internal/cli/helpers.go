package cli

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"

	boardservice "github.com/quadrodev/quadro/internal/services/board"
	columnservice "github.com/quadrodev/quadro/internal/services/column"
	projectservice "github.com/quadrodev/quadro/internal/services/project"
	taskservice "github.com/quadrodev/quadro/internal/services/task"
)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	matched, err := regexp.MatchString(`^#[0-9A-Fa-f]{6}$`, color)
	if err != nil {
		return fmt.Errorf("error validating color: %w", err)
	}
	if !matched {
		return fmt.Errorf("color must be in hex format #RRGGBB (e.g., #FF0000), got: %s", color)
	}
	return nil
}

// GetProjectID resolves the project from the --project flag or the
// QUADRO_PROJECT environment variable.
func GetProjectID(cmd *cobra.Command) (int, error) {
	projectID, _ := cmd.Flags().GetInt("project")
	if projectID > 0 {
		return projectID, nil
	}

	if env := os.Getenv("QUADRO_PROJECT"); env != "" {
		id, err := strconv.Atoi(env)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid QUADRO_PROJECT value: %q", env)
		}
		return id, nil
	}

	return 0, errors.New("no project specified (use --project or QUADRO_PROJECT)")
}

// ExitCodeForError maps service errors onto the CLI exit code taxonomy.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess

	case errors.Is(err, projectservice.ErrProjectNotFound),
		errors.Is(err, columnservice.ErrProjectNotFound),
		errors.Is(err, columnservice.ErrColumnNotFound),
		errors.Is(err, taskservice.ErrProjectNotFound),
		errors.Is(err, taskservice.ErrColumnNotFound),
		errors.Is(err, taskservice.ErrTaskNotFound),
		errors.Is(err, boardservice.ErrProjectNotFound):
		return ExitNotFound

	case errors.Is(err, columnservice.ErrOrdinalConflict):
		return ExitConflict

	case errors.Is(err, projectservice.ErrEmptyName),
		errors.Is(err, projectservice.ErrNameTooLong),
		errors.Is(err, projectservice.ErrInvalidProjectID),
		errors.Is(err, columnservice.ErrEmptyTitle),
		errors.Is(err, columnservice.ErrTitleTooLong),
		errors.Is(err, columnservice.ErrDuplicateTitle),
		errors.Is(err, columnservice.ErrDuplicateKey),
		errors.Is(err, columnservice.ErrDeleteDefault),
		errors.Is(err, columnservice.ErrColumnInactive),
		errors.Is(err, columnservice.ErrColumnWrongProject),
		errors.Is(err, columnservice.ErrInvalidColumnID),
		errors.Is(err, columnservice.ErrInvalidProjectID),
		errors.Is(err, taskservice.ErrEmptyTitle),
		errors.Is(err, taskservice.ErrTitleTooLong),
		errors.Is(err, taskservice.ErrInvalidTaskID),
		errors.Is(err, taskservice.ErrInvalidProjectID),
		errors.Is(err, taskservice.ErrInvalidPosition),
		errors.Is(err, taskservice.ErrNoTargetColumn),
		errors.Is(err, taskservice.ErrColumnInactive),
		errors.Is(err, taskservice.ErrColumnWrongProject):
		return ExitValidation

	default:
		return ExitError
	}
}
