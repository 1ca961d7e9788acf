package board

import (
	"github.com/spf13/cobra"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "View the board",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(WatchCmd())

	return cmd
}
