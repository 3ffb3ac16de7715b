package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var alarmCmd = &cobra.Command{
	Use:   "alarm <device-key> <reference> <active>",
	Short: "Set an alarm's active state on a device",
	Args:  cobra.ExactArgs(3),
	RunE:  runAlarm,
}

func runAlarm(cmd *cobra.Command, args []string) error {
	key, reference := args[0], args[1]
	active, err := strconv.ParseBool(args[2])
	if err != nil {
		return fmt.Errorf("parse active %q: %w", args[2], err)
	}
	if err := getClient().PostAlarm(key, reference, active); err != nil {
		return fmt.Errorf("post alarm: %w", err)
	}
	fmt.Fprintf(cmdOutput, "alarm accepted: %s/%s active=%v\n", key, reference, active)
	return nil
}
