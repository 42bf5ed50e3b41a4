package main

import (
	"github.com/spf13/cobra"
)

// runCmd executes an inline snippet and explains any fault it raises.
var runCmd = &cobra.Command{
	Use:   "run <code>",
	Short: "Execute a source snippet and explain any fault",
	Long: `Executes the given Go source snippet in-process. If the snippet runs
cleanly a success line is printed; if it faults, the fault is captured and
an AI-generated explanation is printed.

Example:
  errlens run 'xs := []int{1, 2, 3}; i := 10; println(xs[i])'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbg, err := buildDebugger()
		if err != nil {
			return err
		}
		dbg.Run(cmd.Context(), args[0])
		return nil
	},
}

// fileCmd executes a source file and explains any fault it raises.
var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Execute a source file and explain any fault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbg, err := buildDebugger()
		if err != nil {
			return err
		}
		dbg.RunFile(cmd.Context(), args[0])
		return nil
	},
}
