package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the gateway's runtime stats",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	stats, err := getClient().GetStats()
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}
	return printJSON(stats)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(cmdOutput, "%+v\n", v)
		return nil
	}
	fmt.Fprintf(cmdOutput, "%s\n", data)
	return nil
}
