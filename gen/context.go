package gen

import (
	"fmt"
	"go/token"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
	"github.com/wippyai/jnibind/symbol"
)

// DefaultOutput is the file name of the generated exports file.
const DefaultOutput = "jnibind_exports.go"

// Config carries generation settings.
type Config struct {
	Package string // Go package of the generated exports file
	Output  string // exports file name; DefaultOutput when empty
	Library string // library passed to System.loadLibrary by Java stubs
	Source  string // where the bindings came from, recorded in file headers
}

// Context holds everything a generator needs to produce output.
type Context struct {
	Config   Config
	Bindings []*Binding
}

// NewContext creates a generation context. Bindings are ordered by export
// symbol so output does not depend on discovery order.
func NewContext(cfg Config, bindings []*Binding) *Context {
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	sorted := append([]*Binding(nil), bindings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].Symbol(), sorted[j].Symbol()
		if si != sj {
			return si < sj
		}
		return sorted[i].Func < sorted[j].Func
	})
	return &Context{Config: cfg, Bindings: sorted}
}

// Warning is a non-fatal finding about a binding.
type Warning struct {
	Binding *Binding
	Issue   symbol.Issue
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Binding.Pos, w.Binding.Symbol(), w.Issue)
}

// Validate checks the bindings before generation. Structural problems and
// export symbols claimed by more than one function are errors; names the JVM
// would escape are returned as warnings and logged.
func (c *Context) Validate() ([]Warning, error) {
	if c.Config.Package == "" || !token.IsIdentifier(c.Config.Package) {
		return nil, errors.InvalidInput(errors.PhaseValidate, fmt.Sprintf("invalid Go package name %q", c.Config.Package))
	}

	bySymbol := make(map[string][]string, len(c.Bindings))
	var warnings []Warning
	for _, b := range c.Bindings {
		if err := checkBinding(b); err != nil {
			return nil, err
		}
		sym := b.Symbol()
		bySymbol[sym] = append(bySymbol[sym], b.Func)

		for _, issue := range symbol.Check(b.ClassPath(), b.Method) {
			w := Warning{Binding: b, Issue: issue}
			Logger().Warn("export symbol will not resolve",
				zap.String("symbol", sym),
				zap.String("func", b.Func),
				zap.String("segment", issue.Segment),
				zap.String("reason", issue.Reason))
			warnings = append(warnings, w)
		}
	}

	if err := errors.NewSymbolCollisionError(bySymbol); err != nil {
		return warnings, err
	}
	return warnings, nil
}

func checkBinding(b *Binding) error {
	path := []string{b.Pos, b.Func}
	switch {
	case !token.IsIdentifier(b.Func):
		return errors.InvalidData(errors.PhaseValidate, path, fmt.Sprintf("invalid Go function name %q", b.Func))
	case reserved(b.Func):
		return errors.InvalidData(errors.PhaseValidate, path, fmt.Sprintf("function name %q is used by generated code", b.Func))
	case len(b.ClassPath()) == 0:
		return errors.InvalidData(errors.PhaseValidate, path, "missing class")
	case b.Method == "":
		return errors.InvalidData(errors.PhaseValidate, path, "missing method name")
	}
	if sym := b.Symbol(); !token.IsIdentifier(sym) {
		return errors.InvalidData(errors.PhaseValidate, path, fmt.Sprintf("export symbol %q is not a Go identifier", sym))
	}
	for _, p := range b.Params {
		if p.Java.Kind() == descriptor.KindVoid {
			return errors.InvalidData(errors.PhaseValidate, path, fmt.Sprintf("parameter %s has type void", p.Name))
		}
	}
	return nil
}

// reserved reports names the generated export bodies declare or import.
func reserved(name string) bool {
	switch name {
	case "C", "env", "envp", "recv", "result", "out", "err", "jni", "jnibind", "cgojni":
		return true
	}
	if len(name) > 1 && (name[0] == 'a' || name[0] == 'v') {
		return strings.Trim(name[1:], "0123456789") == ""
	}
	return false
}
