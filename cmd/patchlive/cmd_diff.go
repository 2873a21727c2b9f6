package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/patchlive/patchlive/diff"
)

func newDiffCmd(configPath *string) *cobra.Command {
	var lines bool
	var asHTML bool
	var asDelta bool
	var semantic bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "diff FILE1 FILE2",
		Short: "Show the differences between two text files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dmp, err := newEngine(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				dmp.DiffTimeout = timeout
			}

			text1, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text2, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			diffs := dmp.DiffMain(string(text1), string(text2), lines)
			if semantic {
				diffs = dmp.DiffCleanupSemantic(diffs)
			}

			out := cmd.OutOrStdout()
			switch {
			case asHTML:
				fmt.Fprintln(out, diff.DiffPrettyHtml(diffs))
			case asDelta:
				fmt.Fprintln(out, dmp.DiffToDelta(diffs))
			default:
				for _, d := range diffs {
					fmt.Fprintln(out, d.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lines, "lines", true, "use the faster line-level pre-pass on large inputs")
	cmd.Flags().BoolVar(&asHTML, "html", false, "emit a pretty HTML report")
	cmd.Flags().BoolVar(&asDelta, "delta", false, "emit a compact delta transcript")
	cmd.Flags().BoolVar(&semantic, "semantic", true, "run semantic cleanup for human-readable output")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Second, "wall-clock budget for the diff (0 disables)")

	return cmd
}
