package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wippyai/jnibind/gen"
)

var (
	genOutput   string
	genJavaOut  string
	genPackage  string
	genLibrary  string
	genManifest string
	genDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [package-dir]",
	Short: "Generate cgo exports (and optionally Java stubs) for bound functions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Directory for the exports file (default: the package or manifest directory)")
	generateCmd.Flags().StringVar(&genJavaOut, "java-out", "", "Directory for Java sources; no Java is written when empty")
	generateCmd.Flags().StringVar(&genPackage, "package", "", "Override the Go package name of the exports file")
	generateCmd.Flags().StringVar(&genLibrary, "library", "", "Library name for System.loadLibrary in Java stubs")
	generateCmd.Flags().StringVar(&genManifest, "manifest", "", "Read bindings from a YAML manifest instead of Go source")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show what would be generated without writing")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	out := cmd.OutOrStdout()

	src := bindingSource{manifest: genManifest, pkg: genPackage, library: genLibrary}
	ctx, warnings, outDir, err := src.load(dir)
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if err != nil {
		return err
	}
	if genOutput != "" {
		outDir = genOutput
	}
	if len(ctx.Bindings) == 0 {
		if !quiet {
			fmt.Fprintln(out, "No bindings found.")
		}
		return nil
	}

	targets := []struct {
		generator string
		dir       string
	}{
		{"exports", outDir},
	}
	if genJavaOut != "" {
		targets = append(targets, struct {
			generator string
			dir       string
		}{"java", genJavaOut})
	}

	var written int
	for _, t := range targets {
		g, ok := gen.Get(t.generator)
		if !ok {
			return fmt.Errorf("generator %s not registered", t.generator)
		}
		if verbose {
			fmt.Fprintf(out, "  Running generator: %s\n", g.Name())
		}
		files, err := g.Generate(ctx)
		if err != nil {
			return fmt.Errorf("generator %s failed: %w", t.generator, err)
		}
		for _, f := range files {
			outPath := filepath.Join(t.dir, f.Path)
			if genDryRun {
				fmt.Fprintf(out, "  Would write: %s\n", outPath)
				continue
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", outPath, err)
			}
			if err := os.WriteFile(outPath, f.Content, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			written++
			if verbose {
				fmt.Fprintf(out, "  Wrote: %s\n", outPath)
			}
		}
	}

	if !quiet && !genDryRun {
		fmt.Fprintf(out, "Generated %d file(s) for %d binding(s)\n", written, len(ctx.Bindings))
	}
	return nil
}
