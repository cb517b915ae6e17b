package gen

import (
	"strings"
	"testing"

	"github.com/wippyai/jnibind/descriptor"
)

func TestJavaGenerator(t *testing.T) {
	files := generate(t, "java", helloContext(t))
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = string(f.Content)
	}

	hello, ok := byPath["com/example/Hello.java"]
	if !ok {
		t.Fatalf("missing Hello.java, got %v", byPath)
	}
	for _, c := range []string{
		"package com.example;",
		"public class Hello {",
		`System.loadLibrary("hello");`,
		"public static native void caller();",
		"public static native String greet(String name);",
	} {
		if !strings.Contains(hello, c) {
			t.Errorf("Hello.java missing %q\n%s", c, hello)
		}
	}

	counter := byPath["com/example/Counter.java"]
	for _, c := range []string{
		"public class Counter {",
		"public native long add(int delta, double scale);",
		"public native boolean isEmpty(int[] values, char c, Object raw);",
	} {
		if !strings.Contains(counter, c) {
			t.Errorf("Counter.java missing %q\n%s", c, counter)
		}
	}
}

func TestJavaGenerator_DefaultPackageNoLibrary(t *testing.T) {
	ctx := NewContext(Config{Package: "main"}, []*Binding{{
		Class: "Main", Method: "run", Func: "run", Static: true,
		Params: []Param{{Name: "int", Java: descriptor.Int}, {Java: descriptor.Long}},
	}})
	files := generate(t, "java", ctx)
	if len(files) != 1 || files[0].Path != "Main.java" {
		t.Fatalf("unexpected files %v", files)
	}
	content := string(files[0].Content)
	if strings.Contains(content, "package ") {
		t.Error("default package should have no package clause")
	}
	if strings.Contains(content, "loadLibrary") {
		t.Error("no library configured, no static block expected")
	}
	if !strings.Contains(content, "public static native void run(int int_, long arg1);") {
		t.Errorf("unexpected declaration\n%s", content)
	}
}

func TestJavaSource(t *testing.T) {
	tests := []struct {
		in   descriptor.Type
		want string
	}{
		{descriptor.Int, "int"},
		{descriptor.JavaString, "String"},
		{descriptor.Array(descriptor.JavaString), "String[]"},
		{descriptor.Object("java/lang/reflect/Method"), "java.lang.reflect.Method"},
		{descriptor.Object("com/example/Outer$Inner"), "com.example.Outer.Inner"},
		{descriptor.Array(descriptor.Array(descriptor.Byte)), "byte[][]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := javaSource(tt.in); got != tt.want {
				t.Errorf("javaSource = %q, want %q", got, tt.want)
			}
		})
	}
}
