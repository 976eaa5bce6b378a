package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planc/streamplan/compose"
	"github.com/planc/streamplan/internal/graphfile"
	"github.com/planc/streamplan/internal/render"
)

func newCompileCommand() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "compile <graph.yaml>",
		Short: "compile a stream graph definition into a job graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0], pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", true, "indent the rendered job graph")
	return cmd
}

func runCompile(cmd *cobra.Command, path string, pretty bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("planc: reading %s: %w", path, err)
	}

	streamGraph, err := graphfile.Load(raw)
	if err != nil {
		return fmt.Errorf("planc: %w", err)
	}

	jobGraph, err := compose.Compile(streamGraph)
	if err != nil {
		return fmt.Errorf("planc: compile failed: %w", err)
	}

	rendered := render.Render(jobGraph)

	encoder := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(rendered)
}
