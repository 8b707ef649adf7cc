// File: cmd/list.go
package cmd

import (
	"fmt"

	"glue/pkg/combine"

	"github.com/spf13/cobra"
)

// listCmd prints the files a bundle would contain, as a tree, without reading them.
var listCmd = &cobra.Command{
	Use:   "list [patterns...]",
	Short: "Show the files a bundle would contain",
	Long:  `List runs the file selection only and prints the matching files as a tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := prepare(cmd, args)
		if err != nil {
			return err
		}

		files, err := combine.Select(cfg, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, combine.RenderTree(cfg.Root, files))
		fmt.Fprintf(out, "\n%d files\n", len(files))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
}
