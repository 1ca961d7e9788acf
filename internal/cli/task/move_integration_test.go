package task

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/quadrodev/quadro/internal/testutil/cli"
)

func TestMoveTask_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	ctx := context.Background()

	// A real project so the default columns exist
	proj, err := app.ProjectService.CreateProject(ctx, "Move Project", "")
	require.NoError(t, err)

	// Create a task through the CLI so it lands in the default column
	createOut, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
		"--title", "Portable task",
		"--project", fmt.Sprintf("%d", proj.ID),
		"--json",
	})
	require.NoError(t, err, "Output: %s", createOut)
	created := clitest.ParseJSON(t, createOut)["task"].(map[string]interface{})
	taskID := int(created["id"].(float64))

	// Move by column key with JSON output
	moveOut, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{
		"--task", fmt.Sprintf("%d", taskID),
		"--to", "in_progress",
		"--json",
	})
	require.NoError(t, err, "Output: %s", moveOut)
	moved := clitest.ParseJSON(t, moveOut)["task"].(map[string]interface{})
	assert.Equal(t, float64(taskID), moved["id"])
	assert.Equal(t, float64(1), moved["position"])

	var columnKey string
	err = db.QueryRow(`SELECT c.column_key FROM tasks t JOIN columns c ON c.id = t.column_id WHERE t.id = ?`, taskID).Scan(&columnKey)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", columnKey)

	// The movement shows up in the audit trail
	historyOut, err := clitest.ExecuteCLICommand(t, app, HistoryCmd(), []string{
		"--task", fmt.Sprintf("%d", taskID),
		"--movements",
	})
	require.NoError(t, err, "Output: %s", historyOut)
	assert.Contains(t, historyOut, "todo → in_progress")
}

func TestMoveTask_Integration_MissingTaskFlag(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{"--to", "done"})
	assert.Error(t, err)
}
