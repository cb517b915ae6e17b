package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/jnibind/gen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var browseManifest string

var browseCmd = &cobra.Command{
	Use:   "browse [package-dir]",
	Short: "Interactively browse bindings, their symbols and descriptors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseManifest, "manifest", "", "Read bindings from a YAML manifest instead of Go source")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	src := bindingSource{manifest: browseManifest}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		ctx, warnings, _, err := src.load(dir)
		if err != nil {
			return err
		}
		listBindings(cmd, ctx, warnings)
		return nil
	}

	p := tea.NewProgram(newBrowseModel(src, dir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// listBindings is the non-interactive fallback.
func listBindings(cmd *cobra.Command, ctx *gen.Context, warnings []gen.Warning) {
	out := cmd.OutOrStdout()
	for _, b := range ctx.Bindings {
		fmt.Fprintf(out, "%s\t%s\t%s\n", b.Symbol(), b.Descriptor(), b.Func)
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
}

type browseState int

const (
	stateList browseState = iota
	stateFilter
	stateDetail
)

type browseModel struct {
	err      error
	src      bindingSource
	dir      string
	all      []*gen.Binding
	visible  []*gen.Binding
	warnings map[*gen.Binding][]string
	filter   textinput.Model
	selected int
	loaded   bool
	state    browseState
}

type bindingsLoadedMsg struct {
	err      error
	bindings []*gen.Binding
	warnings []gen.Warning
}

func newBrowseModel(src bindingSource, dir string) *browseModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter by function, class or symbol"
	ti.Width = 40
	return &browseModel{
		src:      src,
		dir:      dir,
		filter:   ti,
		warnings: map[*gen.Binding][]string{},
		state:    stateList,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load
}

func (m *browseModel) load() tea.Msg {
	ctx, warnings, _, err := m.src.load(m.dir)
	if err != nil {
		return bindingsLoadedMsg{err: err}
	}
	return bindingsLoadedMsg{bindings: ctx.Bindings, warnings: warnings}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter":
				m.filter.Blur()
				m.state = stateList
				return m, nil
			case "esc":
				m.filter.SetValue("")
				m.filter.Blur()
				m.applyFilter()
				m.state = stateList
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateList {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			switch m.state {
			case stateList:
				if len(m.visible) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateList
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
			}
		}

	case bindingsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.all = msg.bindings
		for _, w := range msg.warnings {
			m.warnings[w.Binding] = append(m.warnings[w.Binding], w.Issue.String())
		}
		m.applyFilter()
	}

	return m, nil
}

func (m *browseModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, b := range m.all {
		if q == "" ||
			strings.Contains(strings.ToLower(b.Func), q) ||
			strings.Contains(strings.ToLower(b.Class), q) ||
			strings.Contains(strings.ToLower(b.Symbol()), q) {
			m.visible = append(m.visible, b)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading bindings..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("jnigen"))
	b.WriteString(" ")
	if m.src.manifest != "" {
		b.WriteString(m.src.manifest)
	} else {
		b.WriteString(m.dir)
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateList, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString("No bindings.\n")
		}
		for i, bnd := range m.visible {
			line := formatBinding(bnd)
			if len(m.warnings[bnd]) > 0 {
				line += warnStyle.Render(" !")
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter keep filter • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • q quit"))
		}

	case stateDetail:
		bnd := m.visible[m.selected]
		fmt.Fprintf(&b, "%s\n\n", funcStyle.Render(bnd.Func))
		fmt.Fprintf(&b, "  symbol      %s\n", bnd.Symbol())
		fmt.Fprintf(&b, "  method      %s.%s\n", bnd.Class, bnd.Method)
		fmt.Fprintf(&b, "  descriptor  %s\n", typeStyle.Render(bnd.Descriptor()))
		fmt.Fprintf(&b, "  java        %s\n", bnd.JavaDecl())
		fmt.Fprintf(&b, "  throws      %v\n", bnd.Throws)
		fmt.Fprintf(&b, "  defined at  %s\n", bnd.Pos)
		for _, w := range m.warnings[bnd] {
			b.WriteString(warnStyle.Render("  warning: " + w))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func formatBinding(b *gen.Binding) string {
	kind := "instance"
	if b.Static {
		kind = "static"
	}
	return funcStyle.Render(b.Func) + " -> " + b.Symbol() + " " + typeStyle.Render(b.Descriptor()) + " (" + kind + ")"
}
