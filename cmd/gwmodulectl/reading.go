package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var readingCmd = &cobra.Command{
	Use:   "reading <device-key> <reference> <value>",
	Short: "Inject a sensor reading on a device",
	Args:  cobra.ExactArgs(3),
	RunE:  runReading,
}

func runReading(cmd *cobra.Command, args []string) error {
	key, reference := args[0], args[1]
	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("parse value %q: %w", args[2], err)
	}
	if err := getClient().PostReading(key, reference, value); err != nil {
		return fmt.Errorf("post reading: %w", err)
	}
	fmt.Fprintf(cmdOutput, "reading accepted: %s/%s = %v\n", key, reference, value)
	return nil
}
