package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func loadedModel(t *testing.T) *browseModel {
	t.Helper()
	src := bindingSource{manifest: writeManifest(t, manifestYAML)}
	m := newBrowseModel(src, ".")
	msg := m.load()
	loaded, ok := msg.(bindingsLoadedMsg)
	if !ok || loaded.err != nil {
		t.Fatalf("load: %+v", msg)
	}
	m.Update(loaded)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel_ListAndDetail(t *testing.T) {
	m := loadedModel(t)
	if len(m.visible) != 2 {
		t.Fatalf("visible = %d, want 2", len(m.visible))
	}
	view := m.View()
	for _, s := range []string{"Java_com_example_Hello_caller", "Java_com_example_Hello_greet", "q quit"} {
		if !strings.Contains(view, s) {
			t.Errorf("list view missing %q", s)
		}
	}

	m.Update(key("down"))
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}
	m.Update(key("enter"))
	if m.state != stateDetail {
		t.Fatalf("state = %v, want detail", m.state)
	}
	view = m.View()
	for _, s := range []string{"(Ljava/lang/String;)Ljava/lang/String;", "public static native String greet(String name);"} {
		if !strings.Contains(view, s) {
			t.Errorf("detail view missing %q\n%s", s, view)
		}
	}

	m.Update(key("esc"))
	if m.state != stateList {
		t.Errorf("esc should return to the list")
	}
}

func TestBrowseModel_Filter(t *testing.T) {
	m := loadedModel(t)
	m.Update(key("/"))
	if m.state != stateFilter {
		t.Fatalf("state = %v, want filter", m.state)
	}
	m.Update(key("greet"))
	if len(m.visible) != 1 || m.visible[0].Func != "Greet" {
		t.Fatalf("filter kept %d bindings", len(m.visible))
	}
	m.Update(key("enter"))
	if m.state != stateList || m.filter.Value() != "greet" {
		t.Errorf("enter should keep the filter, state %v value %q", m.state, m.filter.Value())
	}

	m.Update(key("/"))
	m.Update(key("esc"))
	if len(m.visible) != 2 || m.filter.Value() != "" {
		t.Errorf("esc should clear the filter, visible %d", len(m.visible))
	}
}

func TestBrowseModel_LoadError(t *testing.T) {
	m := newBrowseModel(bindingSource{manifest: "does-not-exist.yaml"}, ".")
	m.Update(m.load())
	if !strings.Contains(m.View(), "Error:") {
		t.Errorf("expected error view, got %q", m.View())
	}
}
