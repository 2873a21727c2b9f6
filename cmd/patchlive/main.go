package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var profileMode string
	var stopProfile func()

	root := &cobra.Command{
		Use:           "patchlive",
		Short:         "Diff, fuzzy match, and patch plain text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch profileMode {
			case "":
			case "cpu":
				stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop
			case "clock":
				stopProfile = profile.Start(profile.ClockProfile, profile.ProfilePath(".")).Stop
			case "goroutine":
				stopProfile = profile.Start(profile.GoroutineProfile, profile.ProfilePath(".")).Stop
			default:
				return fmt.Errorf("unknown profile mode %q (want cpu, clock, or goroutine)", profileMode)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stopProfile != nil {
				stopProfile()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML file overriding the engine tunables")
	root.PersistentFlags().StringVar(&profileMode, "profile", "", "write a cpu, clock, or goroutine profile to the current directory")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDiffCmd(&configPath))
	root.AddCommand(newMatchCmd(&configPath))
	root.AddCommand(newPatchCmd(&configPath))

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "patchlive 0.1.0-dev")
		},
	}
}
