package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPatchCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Make and apply fuzzy patches",
	}
	cmd.AddCommand(newPatchMakeCmd(configPath))
	cmd.AddCommand(newPatchApplyCmd(configPath))
	return cmd
}

func newPatchMakeCmd(configPath *string) *cobra.Command {
	var output string
	var compressed bool

	cmd := &cobra.Command{
		Use:   "make FILE1 FILE2",
		Short: "Write a patch turning FILE1 into FILE2",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dmp, err := newEngine(*configPath)
			if err != nil {
				return err
			}

			text1, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text2, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			patches, err := dmp.PatchMake(string(text1), string(text2))
			if err != nil {
				return err
			}
			data := []byte(dmp.PatchToText(patches))

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return writePatchFile(output, data, compressed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the patch to a file instead of stdout")
	cmd.Flags().BoolVarP(&compressed, "compress", "z", false, "zstd-compress the patch file")

	return cmd
}

func newPatchApplyCmd(configPath *string) *cobra.Command {
	var compressed bool

	cmd := &cobra.Command{
		Use:   "apply PATCH TARGET",
		Short: "Apply a patch to a target file, tolerating drift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dmp, err := newEngine(*configPath)
			if err != nil {
				return err
			}

			patchText, err := readPatchFile(args[0], compressed)
			if err != nil {
				return err
			}
			target, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			patches, err := dmp.PatchFromText(string(patchText))
			if err != nil {
				return err
			}

			patched, applied := dmp.PatchApply(patches, string(target))
			fmt.Fprint(cmd.OutOrStdout(), patched)

			failed := 0
			for i, ok := range applied {
				if !ok {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "hunk #%d failed to apply\n", i+1)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d hunk(s) failed", failed, len(applied))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&compressed, "compress", "z", false, "the patch file is zstd-compressed")

	return cmd
}
