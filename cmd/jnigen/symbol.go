package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/jnibind/symbol"
)

var symbolParse bool

var symbolCmd = &cobra.Command{
	Use:   "symbol <class> <method> | --parse <symbol>",
	Short: "Print the export symbol of a native method, or split one",
	Args: func(cmd *cobra.Command, args []string) error {
		if symbolParse {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runSymbol,
}

func init() {
	symbolCmd.Flags().BoolVar(&symbolParse, "parse", false, "Split a Java_... symbol into class and method")
	rootCmd.AddCommand(symbolCmd)
}

func runSymbol(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if symbolParse {
		path, method, err := symbol.Parse(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s.%s\n", strings.Join(path, "."), method)
		return nil
	}

	path := symbol.SplitClassPath(args[0])
	for _, issue := range symbol.Check(path, args[1]) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
	}
	fmt.Fprintln(out, symbol.Export(path, args[1]))
	return nil
}
