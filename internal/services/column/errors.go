package column

import "errors"

// Column-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("column title cannot be empty")
	ErrTitleTooLong     = errors.New("column title cannot exceed 50 characters")
	ErrInvalidColumnID  = errors.New("invalid column ID")
	ErrInvalidProjectID = errors.New("invalid project ID")

	// ErrDuplicateTitle carries the user-facing message verbatim; API layers
	// render it as-is.
	ErrDuplicateTitle = errors.New("Já existe uma coluna com este título no projeto")
	ErrDuplicateKey   = errors.New("a column with this key already exists in the project")

	// Business logic errors
	ErrProjectNotFound    = errors.New("project not found")
	ErrColumnNotFound     = errors.New("column not found")
	ErrColumnInactive     = errors.New("column is deactivated")
	ErrDeleteDefault      = errors.New("cannot delete the default column")
	ErrColumnWrongProject = errors.New("column does not belong to this project")

	// ErrOrdinalConflict indicates the unique (project, ordinal) index tripped.
	// The transaction discipline should make this unreachable; it is surfaced
	// rather than silently corrupting the ordinal sequence.
	ErrOrdinalConflict = errors.New("ordinal conflict while renumbering columns")
)
