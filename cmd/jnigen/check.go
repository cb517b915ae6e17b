package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkManifest string

var checkCmd = &cobra.Command{
	Use:   "check [package-dir]",
	Short: "Validate bindings without generating",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkManifest, "manifest", "", "Read bindings from a YAML manifest instead of Go source")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	ctx, warnings, _, err := bindingSource{manifest: checkManifest}.load(dir)
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		for _, b := range ctx.Bindings {
			fmt.Fprintf(out, "  %s -> %s %s\n", b.Func, b.Symbol(), b.Descriptor())
		}
	}
	if !quiet {
		fmt.Fprintf(out, "%d binding(s) OK.\n", len(ctx.Bindings))
	}
	return nil
}
