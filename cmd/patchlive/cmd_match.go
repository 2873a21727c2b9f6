package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match FILE PATTERN LOC",
		Short: "Fuzzily locate a pattern in a text file near an expected offset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dmp, err := newEngine(*configPath)
			if err != nil {
				return err
			}

			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			loc, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("location %q is not an integer", args[2])
			}

			at, err := dmp.MatchMain(string(text), args[1], loc)
			if err != nil {
				return err
			}
			if at == -1 {
				return fmt.Errorf("no match for %q near offset %d", args[1], loc)
			}
			fmt.Fprintln(cmd.OutOrStdout(), at)
			return nil
		},
	}
	return cmd
}
