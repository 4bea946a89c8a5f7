// Package picker is a terminal theme switcher built on bubbletea.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fluesternde/berggeist-theme/internal/theme"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// Variant selects how the options are laid out.
type Variant string

const (
	VariantDefault  Variant = "default"  // one row of buttons
	VariantCompact  Variant = "compact"  // single button cycling to the next theme
	VariantDropdown Variant = "dropdown" // collapsed button opening a list
	VariantGrid     Variant = "grid"     // two columns
)

// ParseVariant validates a variant name; empty means default.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "":
		return VariantDefault, nil
	case VariantDefault, VariantCompact, VariantDropdown, VariantGrid:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown picker variant: %s", s)
}

// Themer is what the picker reads and changes.
type Themer interface {
	State() types.ThemeState
	SetTheme(sel types.Selection) error
}

// Options configure the picker.
type Options struct {
	Variant    Variant
	ShowLabels bool
}

var icons = map[types.Selection]string{
	types.SelectionLight:        "☀",
	types.SelectionDark:         "☾",
	types.SelectionMagicalBerg:  "⛰",
	types.SelectionSchwartzWald: "♣",
	types.SelectionSystem:       "▣",
}

const gridColumns = 2

// KeyMap defines the picker keybindings.
type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default picker keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Up, k.Down},
		{k.Select, k.Close, k.Quit},
	}
}

// Model is the bubbletea model for the picker.
type Model struct {
	themer   Themer
	opts     Options
	keymap   KeyMap
	help     help.Model
	cursor   int
	open     bool
	err      error
	quitting bool
}

// New creates a picker with the cursor on the current selection.
func New(themer Themer, opts Options) Model {
	if opts.Variant == "" {
		opts.Variant = VariantDefault
	}
	m := Model{themer: themer, opts: opts, keymap: DefaultKeyMap(), help: help.New()}
	m.cursor = indexOf(themer.State().Selection)
	return m
}

func indexOf(sel types.Selection) int {
	for i, s := range types.Selections {
		if s == sel {
			return i
		}
	}
	return 0
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wm, ok := msg.(tea.WindowSizeMsg); ok {
		m.help.Width = wm.Width
		return m, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	step := 1
	if m.opts.Variant == VariantGrid {
		step = gridColumns
	}

	switch {
	case key.Matches(km, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(km, m.keymap.Close):
		if m.open {
			m.open = false
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(km, m.keymap.Prev):
		m.move(-1)
	case key.Matches(km, m.keymap.Next):
		m.move(1)
	case key.Matches(km, m.keymap.Up):
		m.move(-step)
	case key.Matches(km, m.keymap.Down):
		m.move(step)
	case key.Matches(km, m.keymap.Select):
		m.activate()
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if m.opts.Variant == VariantCompact || (m.opts.Variant == VariantDropdown && !m.open) {
		return
	}
	n := len(types.Selections)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m *Model) activate() {
	switch m.opts.Variant {
	case VariantCompact:
		m.choose(theme.Next(m.themer.State().Selection))
	case VariantDropdown:
		if !m.open {
			m.open = true
			m.cursor = indexOf(m.themer.State().Selection)
			return
		}
		m.open = false
		m.choose(types.Selections[m.cursor])
	default:
		m.choose(types.Selections[m.cursor])
	}
}

func (m *Model) choose(sel types.Selection) {
	m.err = m.themer.SetTheme(sel)
	m.cursor = indexOf(m.themer.State().Selection)
}

// Err returns the error from the last selection, if any.
func (m Model) Err() error {
	return m.err
}

// Open reports whether the dropdown list is expanded.
func (m Model) Open() bool {
	return m.open
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.themer.State()
	s := newStyles(st.EffectiveTheme)

	var b strings.Builder
	switch m.opts.Variant {
	case VariantCompact:
		next := theme.Next(st.Selection)
		b.WriteString(s.active.Render(m.button(st.Selection)))
		b.WriteString(s.hint.Render(fmt.Sprintf("  enter: switch to %s", theme.Label(next))))
	case VariantDropdown:
		b.WriteString(s.active.Render(m.button(st.Selection) + " ▾"))
		if m.open {
			for i, sel := range types.Selections {
				b.WriteString("\n")
				b.WriteString(m.item(s, i, sel, st.Selection))
			}
		}
	case VariantGrid:
		for i, sel := range types.Selections {
			if i > 0 && i%gridColumns == 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.item(s, i, sel, st.Selection))
		}
	default:
		items := make([]string, len(types.Selections))
		for i, sel := range types.Selections {
			items[i] = m.item(s, i, sel, st.Selection)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, items...))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(s.err.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(s.hint.Render(m.help.View(m.keymap)))
	return b.String()
}

func (m Model) button(sel types.Selection) string {
	if m.opts.ShowLabels {
		return icons[sel] + " " + theme.Label(sel)
	}
	return icons[sel]
}

func (m Model) item(s styles, i int, sel, current types.Selection) string {
	style := s.item
	if sel == current {
		style = s.active
	}
	if i == m.cursor {
		style = style.Underline(true)
	}
	return style.Render(m.button(sel))
}

type styles struct {
	item   lipgloss.Style
	active lipgloss.Style
	hint   lipgloss.Style
	err    lipgloss.Style
}

// newStyles colors the picker after the effective theme.
func newStyles(t types.EffectiveTheme) styles {
	fg, primary, muted := lipgloss.Color("#18181b"), lipgloss.Color("#2563eb"), lipgloss.Color("#71717a")
	if t == types.ThemeDark {
		fg, primary, muted = lipgloss.Color("#f4f4f5"), lipgloss.Color("#60a5fa"), lipgloss.Color("#a1a1aa")
	}
	if p, ok := theme.PaletteFor(t); ok {
		fg, primary, muted = lipgloss.Color(p.Foreground), lipgloss.Color(p.Primary), lipgloss.Color(p.Muted)
	}
	return styles{
		item:   lipgloss.NewStyle().Foreground(fg).Padding(0, 1),
		active: lipgloss.NewStyle().Foreground(primary).Bold(true).Padding(0, 1),
		hint:   lipgloss.NewStyle().Foreground(muted),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true),
	}
}
