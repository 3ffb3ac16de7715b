// Command gwmodulectl is an admin CLI for a running gwmoduled: it hits the
// debug HTTP API to report status, list devices, inject readings/alarms,
// and drive firmware installs, either one subcommand at a time or from an
// interactive REPL.
package main

import (
	"io"
	"os"

	"github.com/rustyeddy/gwmodule/client"
	"github.com/spf13/cobra"
)

var (
	cmdOutput io.Writer
	errOutput io.Writer
	serverURL string
	cli       *client.Client
)

var rootCmd = &cobra.Command{
	Use:           "gwmodulectl",
	Short:         "Admin CLI for a running gwmoduled",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cmdOutput = os.Stdout
	errOutput = os.Stderr
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8011", "gwmoduled debug server URL")
	rootCmd.SetOut(cmdOutput)
	rootCmd.SetErr(errOutput)

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(readingCmd)
	rootCmd.AddCommand(alarmCmd)
	rootCmd.AddCommand(firmwareCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getClient returns a client bound to --server, lazily so every subcommand
// picks up the flag's final parsed value.
func getClient() *client.Client {
	if cli == nil || cli.BaseURL != serverURL {
		cli = client.NewClient(serverURL)
	}
	return cli
}
