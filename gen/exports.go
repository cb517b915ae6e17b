package gen

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/wippyai/jnibind/errors"
)

func init() {
	Register("exports", func() Generator { return &ExportsGenerator{} })
}

// ExportsGenerator writes the cgo file holding one //export function per
// binding. Each export opens a call scope over the raw JNIEnv, converts the
// ABI arguments, forwards to the user function and converts the result.
type ExportsGenerator struct{}

func (g *ExportsGenerator) Name() string { return "exports" }

func (g *ExportsGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	var b strings.Builder

	writeHeader(&b, "//", ctx.Config.Source)
	fmt.Fprintf(&b, "package %s\n\n", ctx.Config.Package)
	b.WriteString("import \"C\"\n\n")
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/wippyai/jnibind\"\n")
	b.WriteString("\t\"github.com/wippyai/jnibind/cgojni\"\n")
	b.WriteString("\t\"github.com/wippyai/jnibind/jni\"\n")
	b.WriteString(")\n")

	for _, bnd := range ctx.Bindings {
		b.WriteString("\n")
		writeExport(&b, bnd)
	}

	src, err := imports.Process(ctx.Config.Output, []byte(b.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "format "+ctx.Config.Output)
	}
	return []*OutputFile{{Path: ctx.Config.Output, Content: src}}, nil
}

func writeHeader(b *strings.Builder, comment, source string) {
	if source != "" {
		fmt.Fprintf(b, "%s Code generated by jnigen from %s. DO NOT EDIT.\n\n", comment, source)
		return
	}
	fmt.Fprintf(b, "%s Code generated by jnigen. DO NOT EDIT.\n\n", comment)
}

// writeExport writes a single //export function.
func writeExport(b *strings.Builder, bnd *Binding) {
	sym := bnd.Symbol()

	params := []string{"envp uintptr", "recv uintptr"}
	for i, p := range bnd.Params {
		params = append(params, fmt.Sprintf("a%d %s", i, p.Go.Wire))
	}

	ret := ""
	zero := "return"
	if bnd.Result != nil {
		ret = " " + bnd.Result.Go.Wire
		zero = "return 0"
	}

	fmt.Fprintf(b, "// %s binds %s.%s%s.\n", sym, bnd.Class, bnd.Method, bnd.Descriptor())
	b.WriteString("//\n")
	fmt.Fprintf(b, "//export %s\n", sym)
	fmt.Fprintf(b, "func %s(%s)%s {\n", sym, strings.Join(params, ", "), ret)
	b.WriteString("\tenv := jni.Enter(cgojni.Wrap(envp))\n")
	b.WriteString("\tdefer env.Exit()\n")

	args := make([]string, 0, len(bnd.Params)+2)
	args = append(args, "env")
	if bnd.Static {
		args = append(args, "env.ClassFrom(jnibind.Ref(recv))")
	} else {
		args = append(args, "env.Object(jnibind.Ref(recv))")
	}
	for i, p := range bnd.Params {
		raw := fmt.Sprintf("a%d", i)
		if p.Go.Conv == ConvString {
			local := fmt.Sprintf("v%d", i)
			fmt.Fprintf(b, "\t%s, err := env.GetString(env.Object(jnibind.Ref(%s)))\n", local, raw)
			writeThrow(b, zero)
			args = append(args, local)
			continue
		}
		args = append(args, p.Go.wrap(raw))
	}
	call := fmt.Sprintf("%s(%s)", bnd.Func, strings.Join(args, ", "))

	switch {
	case bnd.Result == nil && bnd.Throws:
		fmt.Fprintf(b, "\tif err := %s; err != nil {\n", call)
		b.WriteString("\t\t_ = env.ThrowError(err)\n")
		b.WriteString("\t}\n")
		b.WriteString("}\n")
		return
	case bnd.Result == nil:
		fmt.Fprintf(b, "\t%s\n", call)
		b.WriteString("}\n")
		return
	case bnd.Throws:
		fmt.Fprintf(b, "\tresult, err := %s\n", call)
		writeThrow(b, zero)
	default:
		fmt.Fprintf(b, "\tresult := %s\n", call)
	}

	res := bnd.Result.Go
	switch res.Conv {
	case ConvBool:
		b.WriteString("\tif result {\n")
		b.WriteString("\t\treturn 1\n")
		b.WriteString("\t}\n")
		b.WriteString("\treturn 0\n")
	case ConvString:
		b.WriteString("\tout, err := env.String(result)\n")
		writeThrow(b, zero)
		b.WriteString("\treturn uintptr(out.Ref())\n")
	default:
		fmt.Fprintf(b, "\treturn %s\n", res.unwrap("result"))
	}
	b.WriteString("}\n")
}

func writeThrow(b *strings.Builder, zero string) {
	b.WriteString("\tif err != nil {\n")
	b.WriteString("\t\t_ = env.ThrowError(err)\n")
	fmt.Fprintf(b, "\t\t%s\n", zero)
	b.WriteString("\t}\n")
}
