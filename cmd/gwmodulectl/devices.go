package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices registered with the gateway",
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	devices, err := getClient().GetDevices()
	if err != nil {
		return fmt.Errorf("fetch devices: %w", err)
	}
	return printJSON(devices)
}
