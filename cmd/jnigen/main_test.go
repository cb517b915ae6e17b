package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const manifestYAML = `
package: hello
library: hello
bindings:
  - class: com.example.Hello
    func: caller
    throws: true
  - class: com.example.Hello
    method: greet
    func: Greet
    params:
      - name: name
        type: java.lang.String
    returns: java.lang.String
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	verbose, quiet = false, false
	genOutput, genJavaOut, genPackage, genLibrary, genManifest, genDryRun = "", "", "", "", "", false
	checkManifest, browseManifest = "", ""
	symbolParse, describeReturns = false, "void"

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"describe"}, "()V"},
		{[]string{"describe", "int", "java.lang.String"}, "(ILjava/lang/String;)V"},
		{[]string{"describe", "--returns", "char", "java.lang.String[]", "char[]"}, "([Ljava/lang/String;[C)C"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	if _, _, err := execute(t, "describe", "void"); err == nil {
		t.Error("void parameter should fail")
	}
	if _, _, err := execute(t, "describe", "9x"); err == nil {
		t.Error("invalid type should fail")
	}
}

func TestSymbol(t *testing.T) {
	out, _, err := execute(t, "symbol", "com.example.Hello", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "Java_com_example_Hello_hello" {
		t.Errorf("symbol = %q", out)
	}

	out, _, err = execute(t, "symbol", "--parse", "Java_com_example_Hello_hello")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "com.example.Hello.hello" {
		t.Errorf("parse = %q", out)
	}

	_, errOut, err := execute(t, "symbol", "com.my_app.Main", "run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "warning: my_app") {
		t.Errorf("expected underscore warning, got %q", errOut)
	}
}

func TestGenerate_Manifest(t *testing.T) {
	path := writeManifest(t, manifestYAML)
	outDir := t.TempDir()
	javaDir := t.TempDir()

	out, _, err := execute(t, "generate", "--manifest", path, "-o", outDir, "--java-out", javaDir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "Generated 2 file(s) for 2 binding(s)") {
		t.Errorf("unexpected output %q", out)
	}

	exports, err := os.ReadFile(filepath.Join(outDir, "jnibind_exports.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(exports), "//export Java_com_example_Hello_greet") {
		t.Errorf("exports missing greet\n%s", exports)
	}
	java, err := os.ReadFile(filepath.Join(javaDir, "com", "example", "Hello.java"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(java), "public static native String greet(String name);") {
		t.Errorf("java stub missing greet\n%s", java)
	}
}

func TestGenerate_DryRun(t *testing.T) {
	path := writeManifest(t, manifestYAML)
	out, _, err := execute(t, "generate", "--manifest", path, "--dry-run", "--package", "other")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Would write: "+filepath.Join(filepath.Dir(path), "jnibind_exports.go")) {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "jnibind_exports.go")); !os.IsNotExist(err) {
		t.Error("dry run should not write files")
	}
}

func TestGenerate_Collision(t *testing.T) {
	path := writeManifest(t, `
package: p
bindings:
  - class: a.Math
    method: add
    func: addInt
  - class: a.Math
    method: add
    func: addLong
`)
	_, _, err := execute(t, "generate", "--manifest", path, "--dry-run")
	if err == nil || !strings.Contains(err.Error(), "Java_a_Math_add") {
		t.Errorf("expected collision error, got %v", err)
	}
}

func TestCheck_Source(t *testing.T) {
	out, _, err := execute(t, "check", filepath.Join("..", "..", "gen", "testdata", "hello"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "5 binding(s) OK.") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestListBindings(t *testing.T) {
	path := writeManifest(t, manifestYAML)
	ctx, warnings, _, err := bindingSource{manifest: path}.load(".")
	if err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	browseCmd.SetOut(&out)
	browseCmd.SetErr(&errOut)
	defer browseCmd.SetOut(nil)
	defer browseCmd.SetErr(nil)

	listBindings(browseCmd, ctx, warnings)
	if !strings.Contains(out.String(), "Java_com_example_Hello_caller\t()V\tcaller") {
		t.Errorf("unexpected listing %q", out.String())
	}
}
