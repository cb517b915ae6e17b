package gen

import (
	"fmt"
	"path"
	"strings"

	"github.com/wippyai/jnibind/descriptor"
)

func init() {
	Register("java", func() Generator { return &JavaGenerator{} })
}

// JavaGenerator writes one Java source file per bound class declaring the
// native methods the exports implement.
type JavaGenerator struct{}

func (g *JavaGenerator) Name() string { return "java" }

func (g *JavaGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	var classes []string
	byClass := map[string][]*Binding{}
	for _, b := range ctx.Bindings {
		name := strings.Join(b.ClassPath(), ".")
		if _, ok := byClass[name]; !ok {
			classes = append(classes, name)
		}
		byClass[name] = append(byClass[name], b)
	}

	files := make([]*OutputFile, 0, len(classes))
	for _, class := range classes {
		bindings := byClass[class]
		first := bindings[0]

		var b strings.Builder
		writeHeader(&b, "//", ctx.Config.Source)
		if pkg := first.Package(); pkg != "" {
			fmt.Fprintf(&b, "package %s;\n\n", pkg)
		}
		fmt.Fprintf(&b, "public class %s {\n", first.SimpleName())
		if ctx.Config.Library != "" {
			b.WriteString("    static {\n")
			fmt.Fprintf(&b, "        System.loadLibrary(%q);\n", ctx.Config.Library)
			b.WriteString("    }\n\n")
		}
		for _, bnd := range bindings {
			writeNativeDecl(&b, bnd)
		}
		b.WriteString("}\n")

		files = append(files, &OutputFile{
			Path:    path.Join(append(first.ClassPath()[:len(first.ClassPath())-1], first.SimpleName()+".java")...),
			Content: []byte(b.String()),
		})
	}
	return files, nil
}

func writeNativeDecl(b *strings.Builder, bnd *Binding) {
	fmt.Fprintf(b, "    %s\n", bnd.JavaDecl())
}

// JavaDecl returns the Java declaration of the native method, e.g.
// "public static native String greet(String name);".
func (b *Binding) JavaDecl() string {
	mods := "public native"
	if b.Static {
		mods = "public static native"
	}
	ret := "void"
	if b.Result != nil {
		ret = javaSource(b.Result.Java)
	}
	params := make([]string, len(b.Params))
	for i, p := range b.Params {
		params[i] = javaSource(p.Java) + " " + javaParamName(p.Name, i)
	}
	return fmt.Sprintf("%s %s %s(%s);", mods, ret, b.Method, strings.Join(params, ", "))
}

// javaSource spells t as Java source would, dropping the java.lang
// qualifier.
func javaSource(t descriptor.Type) string {
	s := strings.ReplaceAll(t.String(), "$", ".")
	if rest, ok := strings.CutPrefix(s, "java.lang."); ok && !strings.Contains(strings.TrimRight(rest, "[]"), ".") {
		return rest
	}
	return s
}

var javaKeywords = map[string]bool{
	"abstract": true, "boolean": true, "byte": true, "char": true, "class": true,
	"double": true, "final": true, "float": true, "int": true, "long": true,
	"native": true, "new": true, "null": true, "private": true, "protected": true,
	"public": true, "short": true, "static": true, "super": true, "synchronized": true,
	"this": true, "throw": true, "throws": true, "transient": true, "try": true,
	"catch": true, "void": true, "volatile": true, "while": true, "assert": true,
	"enum": true, "extends": true, "implements": true, "instanceof": true,
	"interface": true, "package": true, "strictfp": true, "true": true, "false": true,
}

func javaParamName(name string, i int) string {
	if name == "" || name == "_" {
		return fmt.Sprintf("arg%d", i)
	}
	if javaKeywords[name] {
		return name + "_"
	}
	return name
}
