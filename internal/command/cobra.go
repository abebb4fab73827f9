package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewCLI builds a small cobra command tree that bridges a process's
// command-line invocation onto a Registry: `exec` runs a single
// command line and `suggest` lists matching command names. The `help`
// subcommand is cobra's own and describes this CLI; the registry's
// built-in help command is reached as `exec help`. This is a thin
// convenience for embedding the same Registry a long-running process
// uses into an operator-facing CLI binary, grounded in the teacher
// pack's cobra command-group layout (cmd/task.go's create/delete/list
// subcommand group).
func NewCLI(reg *Registry) *cobra.Command {
	root := &cobra.Command{
		Use:   "command",
		Short: "Run commands against the task runner's command registry",
	}

	execCmd := &cobra.Command{
		Use:   "exec [line...]",
		Short: "Parse and execute a single command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			result := reg.Execute(line)
			printResult(cmd, result)
			if result.Status == StatusError {
				return fmt.Errorf("%s", result.Message)
			}
			return nil
		},
	}

	suggestCmd := &cobra.Command{
		Use:   "suggest <partial>",
		Short: "List registered command names matching a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range reg.Suggestions(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	root.AddCommand(execCmd, suggestCmd)
	return root
}

func printResult(cmd *cobra.Command, r Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[%s] %s\n", r.Status, r.Message)
	if r.Details != "" {
		fmt.Fprintln(out, r.Details)
	}
}
