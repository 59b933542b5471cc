package server

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// NewServerCmd groups the MCP server definition commands.
func NewServerCmd(logger hclog.Logger) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server <command> [args]",
		Short: "Manage MCP server definitions.",
	}

	serverCmd.AddCommand(NewAddCmd(logger))
	serverCmd.AddCommand(NewUpdateCmd(logger))
	serverCmd.AddCommand(NewRemoveCmd(logger))
	serverCmd.AddCommand(NewListCmd(logger))
	serverCmd.AddCommand(NewCheckCmd(logger))

	return serverCmd
}
