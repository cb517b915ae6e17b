package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/jnibind/gen"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "jnigen",
	Short: "JNI export generator for Go native methods",
	Long: "jnigen reads //jnibind:export directives (or a YAML manifest) and writes the cgo\n" +
		"//export Java_... functions and Java native declarations that connect them to the JVM.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := zap.NewNop()
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
		}
		gen.SetLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
