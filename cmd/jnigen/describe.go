package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/jnibind/descriptor"
)

var describeReturns string

var describeCmd = &cobra.Command{
	Use:   "describe [param-type...]",
	Short: "Print the JNI method descriptor for Java parameter and return types",
	Example: "  jnigen describe int java.lang.String\n" +
		"  jnigen describe --returns java.lang.String[] char[]",
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeReturns, "returns", "r", "void", "Java return type")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	params := make([]descriptor.Type, len(args))
	for i, a := range args {
		t, err := descriptor.ParseJava(a)
		if err != nil {
			return err
		}
		if t.Kind() == descriptor.KindVoid {
			return fmt.Errorf("parameter %d: void is not a parameter type", i)
		}
		params[i] = t
	}
	ret, err := descriptor.ParseJava(describeReturns)
	if err != nil {
		return err
	}
	sig := descriptor.NewSignature(params, ret)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, sig.Descriptor())
	if verbose {
		fmt.Fprintf(out, "  %s\n", sig)
	}
	return nil
}
