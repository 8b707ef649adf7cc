package cmd

import (
	"glue/pkg/combine"

	"github.com/spf13/cobra"
)

// runGlue loads the configuration and writes the bundle.
func runGlue(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	return combine.Run(cfg, cmd.OutOrStdout(), logger)
}
