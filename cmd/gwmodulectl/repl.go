package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run gwmodulectl in an interactive REPL",
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	completer := readline.NewPrefixCompleter()
	for _, child := range rootCmd.Commands() {
		pcFromCommands(completer, child)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "gwmodule\033[31m»\033[0m ",
		HistoryFile:       "/tmp/gwmodulectl_history.tmp",
		AutoComplete:      completer,
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	for replLine(rl) {
	}
	fmt.Fprintln(cmdOutput, "Good Bye!")
	return nil
}

func pcFromCommands(parent readline.PrefixCompleterInterface, c *cobra.Command) {
	pc := readline.PcItem(c.Use)
	parent.SetChildren(append(parent.GetChildren(), pc))
	for _, child := range c.Commands() {
		pcFromCommands(pc, child)
	}
}

func replLine(rl *readline.Instance) bool {
	line, err := rl.Readline()
	switch err {
	case readline.ErrInterrupt:
		return len(line) != 0
	case io.EOF:
		return false
	}
	return runReplLine(line)
}

func runReplLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "exit" || line == "quit" {
		return false
	}
	if line == "" {
		return true
	}

	args := strings.Fields(line)
	target, rest, err := rootCmd.Find(args)
	if err != nil {
		fmt.Fprintf(cmdOutput, "error running %q: %s\n", line, err)
		return true
	}
	if target == rootCmd || target == replCmd {
		fmt.Fprintf(cmdOutput, "unknown command %q\n", line)
		return true
	}
	target.ParseFlags(rest)
	if target.RunE != nil {
		if err := target.RunE(target, target.Flags().Args()); err != nil {
			fmt.Fprintf(cmdOutput, "error: %s\n", err)
		}
	}
	return true
}
