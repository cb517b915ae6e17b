package main

import (
	"fmt"
	"path/filepath"

	"github.com/wippyai/jnibind/gen"
)

// bindingSource selects where bindings are read from.
type bindingSource struct {
	manifest string // YAML manifest; when empty the Go package in dir is scanned
	pkg      string // overrides the Go package name
	library  string // overrides the library name
}

// load returns a validated context and the directory generated Go code
// belongs in.
func (s bindingSource) load(dir string) (*gen.Context, []gen.Warning, string, error) {
	var (
		cfg      gen.Config
		bindings []*gen.Binding
		outDir   string
	)
	if s.manifest != "" {
		m, err := gen.LoadManifest(s.manifest)
		if err != nil {
			return nil, nil, "", fmt.Errorf("loading manifest: %w", err)
		}
		bindings, err = m.Resolve(s.manifest)
		if err != nil {
			return nil, nil, "", fmt.Errorf("resolving manifest: %w", err)
		}
		cfg = m.Config(filepath.Base(s.manifest))
		outDir = filepath.Dir(s.manifest)
	} else {
		src, err := gen.LoadSource(dir, ".")
		if err != nil {
			return nil, nil, "", fmt.Errorf("loading package: %w", err)
		}
		bindings = src.Bindings
		cfg = src.Config("")
		outDir = dir
	}

	if s.pkg != "" {
		cfg.Package = s.pkg
	}
	if s.library != "" {
		cfg.Library = s.library
	}

	ctx := gen.NewContext(cfg, bindings)
	warnings, err := ctx.Validate()
	if err != nil {
		return nil, warnings, "", fmt.Errorf("validating bindings: %w", err)
	}
	return ctx, warnings, outDir, nil
}
