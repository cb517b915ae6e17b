package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

func commentGroup(lines ...string) *ast.CommentGroup {
	g := &ast.CommentGroup{}
	for _, l := range lines {
		g.List = append(g.List, &ast.Comment{Text: l})
	}
	return g
}

const helloManifest = `
package: hello
library: hello
bindings:
  - class: com.example.Hello
    func: caller
    throws: true
  - class: com.example.Hello
    method: greet
    func: Greet
    throws: true
    params:
      - name: name
        type: java.lang.String
    returns: java.lang.String
  - class: com.example.Counter
    func: add
    static: false
    params:
      - name: delta
        type: int
      - name: scale
        type: double
    returns: long
  - class: com.example.Counter
    func: isEmpty
    static: false
    params:
      - name: values
        type: int[]
      - name: c
        type: char
      - name: raw
        type: java.lang.Object
        go: jnibind.Ref
    returns: boolean
`

func helloBindings(t *testing.T) []*Binding {
	t.Helper()
	m, err := ParseManifest([]byte(helloManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	bindings, err := m.Resolve("hello.yaml")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return bindings
}

func helloContext(t *testing.T) *Context {
	t.Helper()
	return NewContext(Config{Package: "hello", Library: "hello"}, helloBindings(t))
}

func generate(t *testing.T, name string, ctx *Context) []*OutputFile {
	t.Helper()
	g, ok := Get(name)
	if !ok {
		t.Fatalf("generator %q not registered", name)
	}
	files, err := g.Generate(ctx)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return files
}

// parseGenerated parses a generated Go file and returns its syntax tree.
func parseGenerated(t *testing.T, f *OutputFile) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, parser.ParseComments)
	if err != nil {
		t.Fatalf("%s does not parse: %v\n%s", f.Path, err, f.Content)
	}
	return file
}
