package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var firmwareCmd = &cobra.Command{
	Use:   "firmware",
	Short: "Manage firmware installs on a device",
}

var firmwareInstallCmd = &cobra.Command{
	Use:   "install <device-key> <path>",
	Short: "Start a firmware install",
	Args:  cobra.ExactArgs(2),
	RunE:  runFirmwareInstall,
}

var firmwareAbortCmd = &cobra.Command{
	Use:   "abort <device-key>",
	Short: "Abort an in-progress firmware install",
	Args:  cobra.ExactArgs(1),
	RunE:  runFirmwareAbort,
}

func init() {
	firmwareCmd.AddCommand(firmwareInstallCmd)
	firmwareCmd.AddCommand(firmwareAbortCmd)
}

func runFirmwareInstall(cmd *cobra.Command, args []string) error {
	key, path := args[0], args[1]
	if err := getClient().PostFirmwareInstall(key, path); err != nil {
		return fmt.Errorf("post firmware install: %w", err)
	}
	fmt.Fprintf(cmdOutput, "firmware install started: %s <- %s\n", key, path)
	return nil
}

func runFirmwareAbort(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := getClient().PostFirmwareAbort(key); err != nil {
		return fmt.Errorf("post firmware abort: %w", err)
	}
	fmt.Fprintf(cmdOutput, "firmware install aborted: %s\n", key)
	return nil
}
