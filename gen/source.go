package gen

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/wippyai/jnibind/errors"
)

// Directive marks a Go function as the implementation of a Java native
// method:
//
//	//jnibind:export com.example.Hello [method=<name>]
const Directive = "//jnibind:export"

const (
	modulePath = "github.com/wippyai/jnibind"
	jniPath    = modulePath + "/jni"
)

// Source is a Go package scanned for export directives.
type Source struct {
	Package  string // Go package name
	Dir      string
	Bindings []*Binding
}

// Config returns generation settings for the scanned package.
func (s *Source) Config(library string) Config {
	return Config{Package: s.Package, Library: library, Source: "package " + s.Package}
}

// LoadSource type-checks the package matched by pattern (relative to dir)
// and returns the bindings declared by its directives.
func LoadSource(dir, pattern string) (*Source, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir: dir,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, errors.Load("load "+pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, errors.Load(fmt.Sprintf("pattern %q matched %d packages, want 1", pattern, len(pkgs)), nil)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, len(pkg.Errors))
		for i, e := range pkg.Errors {
			msgs[i] = e.Error()
		}
		return nil, errors.Load(pkg.PkgPath+": "+strings.Join(msgs, "; "), nil)
	}

	src := &Source{Package: pkg.Name, Dir: dir}
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Doc == nil {
				continue
			}
			args, ok := findDirective(fd.Doc)
			if !ok {
				continue
			}
			pos := pkg.Fset.Position(fd.Pos()).String()
			b, err := bindFunc(pkg.TypesInfo, fd, args, pos)
			if err != nil {
				return nil, err
			}
			Logger().Debug("found binding",
				zap.String("func", b.Func),
				zap.String("symbol", b.Symbol()),
				zap.String("descriptor", b.Descriptor()))
			src.Bindings = append(src.Bindings, b)
		}
	}
	return src, nil
}

func findDirective(doc *ast.CommentGroup) ([]string, bool) {
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		return strings.Fields(rest), true
	}
	return nil, false
}

// bindFunc validates fd against the native method shape:
//
//	func name(env *jni.Env, recv jni.Class|jni.Object, params...) [result] [error]
func bindFunc(info *types.Info, fd *ast.FuncDecl, args []string, pos string) (*Binding, error) {
	fail := func(format string, a ...any) error {
		return errors.InvalidData(errors.PhaseLoad, []string{pos, fd.Name.Name}, fmt.Sprintf(format, a...))
	}

	if fd.Recv != nil {
		return nil, fail("%s must be a plain function, not a method", Directive)
	}
	if len(args) == 0 {
		return nil, fail("%s needs a class name", Directive)
	}

	b := &Binding{Class: args[0], Method: fd.Name.Name, Func: fd.Name.Name, Pos: pos}
	for _, opt := range args[1:] {
		key, val, ok := strings.Cut(opt, "=")
		if !ok || val == "" {
			return nil, fail("malformed option %q", opt)
		}
		switch key {
		case "method":
			b.Method = val
		default:
			return nil, fail("unknown option %q", key)
		}
	}

	fn, ok := info.Defs[fd.Name].(*types.Func)
	if !ok {
		return nil, fail("no type information")
	}
	sig := fn.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 {
		return nil, fail("generic functions cannot be exported")
	}
	if sig.Variadic() {
		return nil, fail("variadic functions cannot be exported")
	}

	params := sig.Params()
	if params.Len() < 2 || !isPointerTo(params.At(0).Type(), jniPath, "Env") {
		return nil, fail("first parameter must be *jni.Env, second jni.Class or jni.Object")
	}
	switch recv := params.At(1).Type(); {
	case isNamed(recv, jniPath, "Class"):
		b.Static = true
	case isNamed(recv, jniPath, "Object"):
	default:
		return nil, fail("second parameter must be jni.Class or jni.Object, got %s", recv)
	}

	for i := 2; i < params.Len(); i++ {
		v := params.At(i)
		g, ok := goTypeOf(v.Type())
		if !ok {
			return nil, errors.Unsupported(errors.PhaseLoad,
				fmt.Sprintf("%s: %s: parameter %s of type %s", pos, fd.Name.Name, v.Name(), v.Type()))
		}
		b.Params = append(b.Params, Param{Name: v.Name(), Java: g.Java, Go: g})
	}

	results := sig.Results()
	n := results.Len()
	if n > 0 && types.Identical(results.At(n-1).Type(), types.Universe.Lookup("error").Type()) {
		b.Throws = true
		n--
	}
	switch n {
	case 0:
	case 1:
		g, ok := goTypeOf(results.At(0).Type())
		if !ok {
			return nil, errors.Unsupported(errors.PhaseLoad,
				fmt.Sprintf("%s: %s: result of type %s", pos, fd.Name.Name, results.At(0).Type()))
		}
		b.Result = &Param{Name: "result", Java: g.Java, Go: g}
	default:
		return nil, fail("at most one result besides a trailing error")
	}
	return b, nil
}

// goTypeOf maps a parameter or result type onto the supported set.
func goTypeOf(t types.Type) (GoType, bool) {
	switch t := types.Unalias(t).(type) {
	case *types.Basic:
		name, ok := basicNames[t.Kind()]
		if !ok {
			return GoType{}, false
		}
		return LookupGoType(name)
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			return GoType{}, false
		}
		switch obj.Pkg().Path() {
		case jniPath:
			return LookupGoType("jni." + obj.Name())
		case modulePath:
			return LookupGoType("jnibind." + obj.Name())
		}
	}
	return GoType{}, false
}

// basicNames keys on the kind so aliases such as rune resolve to their
// underlying type.
var basicNames = map[types.BasicKind]string{
	types.Bool:    "bool",
	types.Int8:    "int8",
	types.Uint16:  "uint16",
	types.Int16:   "int16",
	types.Int32:   "int32",
	types.Int64:   "int64",
	types.Float32: "float32",
	types.Float64: "float64",
	types.String:  "string",
}

func isNamed(t types.Type, pkgPath, name string) bool {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok || n.Obj().Pkg() == nil {
		return false
	}
	return n.Obj().Pkg().Path() == pkgPath && n.Obj().Name() == name
}

func isPointerTo(t types.Type, pkgPath, name string) bool {
	p, ok := types.Unalias(t).(*types.Pointer)
	return ok && isNamed(p.Elem(), pkgPath, name)
}
