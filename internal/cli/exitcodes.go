package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task not found, project not found, column not found,
	// or any case where a resource ID or key doesn't exist.
	ExitNotFound = 3

	// ExitConflict indicates a state conflict the caller cannot fix by
	// changing input, such as an unresolvable ordinal collision.
	ExitConflict = 4

	// ExitValidation indicates a validation error.
	// Use for: Blank or duplicate titles, attempts to delete the default
	// column, or any case where input fails validation rules.
	ExitValidation = 5
)
