package main

import (
	"fmt"

	"github.com/rustyeddy/gwmodule/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gwmodulectl version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmdOutput, "%s\n", version.JSON())
		return nil
	},
}
