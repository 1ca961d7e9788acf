package column

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/quadrodev/quadro/internal/testutil/cli"
)

func TestCreateColumn_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)

	projectID := clitest.CreateTestProject(t, db, "Test Project")

	tests := []struct {
		name          string
		flags         []string
		expectedError bool
		verifyOutput  func(t *testing.T, output string)
	}{
		{
			name: "Create column with basic flags",
			flags: []string{
				"--title", "Blocked",
				"--project", fmt.Sprintf("%d", projectID),
			},
			verifyOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Column 'Blocked' created successfully")
				assert.Contains(t, output, "key: blocked")
			},
		},
		{
			name: "Create done column with WIP limit",
			flags: []string{
				"--title", "Shipped",
				"--project", fmt.Sprintf("%d", projectID),
				"--done",
				"--wip", "5",
			},
			verifyOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Column 'Shipped' created successfully")
			},
		},
		{
			name: "Create column with JSON output",
			flags: []string{
				"--title", "Triage Queue",
				"--project", fmt.Sprintf("%d", projectID),
				"--json",
			},
			verifyOutput: func(t *testing.T, output string) {
				result := clitest.ParseJSON(t, output)
				assert.True(t, result["success"].(bool), "success should be true")

				column := result["column"].(map[string]interface{})
				assert.Equal(t, "Triage Queue", column["title"])
				assert.Equal(t, "triage_queue", column["key"])
				assert.Equal(t, float64(projectID), column["project_id"])
				assert.NotNil(t, column["id"], "column ID should be present in JSON")
			},
		},
		{
			name: "Create column with quiet mode",
			flags: []string{
				"--title", "Quiet Column",
				"--project", fmt.Sprintf("%d", projectID),
				"--quiet",
			},
			verifyOutput: func(t *testing.T, output string) {
				id, err := strconv.Atoi(strings.TrimSpace(output))
				require.NoError(t, err, "Quiet output should be a bare column ID")
				assert.Greater(t, id, 0)
			},
		},
		{
			name:          "Missing required title flag",
			flags:         []string{"--project", fmt.Sprintf("%d", projectID)},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := CreateCmd()
			output, err := clitest.ExecuteCLICommand(t, app, cmd, tt.flags)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err, "Output: %s", output)
			if tt.verifyOutput != nil {
				tt.verifyOutput(t, output)
			}
		})
	}
}

func TestCreateColumn_Integration_OrdinalInsert(t *testing.T) {
	db, app := clitest.SetupCLITest(t)

	projectID := clitest.CreateTestProject(t, db, "Ordinal Project")
	clitest.CreateTestColumn(t, db, projectID, "todo", "A Fazer", 1)
	clitest.CreateTestColumn(t, db, projectID, "done", "Concluído", 2)

	cmd := CreateCmd()
	output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{
		"--title", "Em Andamento",
		"--project", fmt.Sprintf("%d", projectID),
		"--ordinal", "2",
	})
	require.NoError(t, err, "Output: %s", output)
	assert.Contains(t, output, "position: 2")

	// Old occupant of slot 2 shifts right
	var doneOrdinal int
	err = db.QueryRow("SELECT ordinal FROM columns WHERE project_id = ? AND column_key = 'done'", projectID).Scan(&doneOrdinal)
	require.NoError(t, err)
	assert.Equal(t, 3, doneOrdinal)
}
