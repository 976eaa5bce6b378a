// Package cli wires the planc command-line tool: load a stream graph
// definition, run it through the compiler, and print the resulting job
// graph.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the planc root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planc",
		Short: "planc compiles a stream graph into a job graph",
	}

	cmd.AddCommand(newCompileCommand())
	return cmd
}
