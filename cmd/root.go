package cmd

import (
	"context"

	"github.com/spf13/cobra"

	boardcmd "github.com/quadrodev/quadro/internal/cli/board"
	columncmd "github.com/quadrodev/quadro/internal/cli/column"
	configcmd "github.com/quadrodev/quadro/internal/cli/config"
	projectcmd "github.com/quadrodev/quadro/internal/cli/project"
	taskcmd "github.com/quadrodev/quadro/internal/cli/task"
)

var rootCmd = &cobra.Command{
	Use:   "quadro",
	Short: "Quadro - a kanban board engine for the terminal",
	Long:  `Quadro manages kanban boards: projects, ordered columns, positioned tasks and the audit trail their movements produce.`,
}

func init() {
	rootCmd.AddCommand(projectcmd.ProjectCmd())
	rootCmd.AddCommand(columncmd.ColumnCmd())
	rootCmd.AddCommand(taskcmd.TaskCmd())
	rootCmd.AddCommand(boardcmd.BoardCmd())
	rootCmd.AddCommand(configcmd.ConfigCmd())
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
