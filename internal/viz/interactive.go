package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/scenario"
)

const (
	stateMenu = iota
	statePreset
	stateSim
)

const defaultPreset = "default"

// menu picks a scenario and a preset, then hands over to the live view.
type menu struct {
	registry *scenario.Registry
	styles   Styles

	state     int
	scenarios []string
	presets   []string
	cursor    int
	selected  string
	live      Model
	err       error
}

func NewInteractiveApp(reg *scenario.Registry) *menu {
	return &menu{
		registry:  reg,
		styles:    NewStyles(ThemeCyberpunk),
		state:     stateMenu,
		scenarios: reg.List(),
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.state = statePreset
			return m, nil
		}
		live, cmd := m.live.Update(msg)
		m.live = live.(Model)
		return m, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
	case "esc", "h":
		if m.state == statePreset {
			m.state = stateMenu
			m.cursor = indexOf(m.scenarios, m.selected)
		}
	case "enter", " ", "l":
		return m.choose()
	}
	return m, nil
}

func (m menu) items() []string {
	if m.state == statePreset {
		return m.presets
	}
	return m.scenarios
}

func (m menu) choose() (menu, tea.Cmd) {
	if m.state == stateMenu {
		m.selected = m.scenarios[m.cursor]
		m.presets = append([]string{defaultPreset}, config.ListPresets(m.selected)...)
		m.state, m.cursor = statePreset, 0
		return m, nil
	}

	name, preset := m.selected, m.presets[m.cursor]
	live, err := NewModel(func() (*scenario.Run, error) {
		cfg := config.GetPreset(name, preset)
		if cfg == nil {
			cfg = config.DefaultConfig()
			cfg.Scenario = name
		}
		return m.registry.Build(cfg)
	})
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.live = live
	m.state = stateSim
	return m, m.live.Init()
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	s := m.styles
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("STEERSIM", ThemeCyberpunk.Secondary, ThemeCyberpunk.Primary) + "\n")
	if m.state == stateMenu {
		b.WriteString("    " + s.Subtle.Render("steering behaviors") + "\n")
	} else {
		b.WriteString("    " + s.Subtle.Render(m.selected+" presets") + "\n")
	}
	b.WriteString("    " + s.Subtle.Render("─────────────────────────") + "\n\n")

	for i, name := range m.items() {
		desc := ""
		if m.state == stateMenu {
			desc = m.registry.Describe(name)
			if len(desc) > 48 {
				desc = desc[:45] + "..."
			}
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", s.Selected.Render("▸"), s.Value.Render(fmt.Sprintf("%-14s", name)), s.Selected.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", s.Subtle.Render(fmt.Sprintf("%-14s", name)), s.Subtle.Render(desc)))
		}
	}

	if m.err != nil {
		b.WriteString("\n    " + s.Failed.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + s.KeyHint.Render("j/k navigate  enter select  esc back  q quit") + "\n")
	return b.String()
}

// RunInteractive shows the scenario menu.
func RunInteractive(reg *scenario.Registry) error {
	_, err := tea.NewProgram(NewInteractiveApp(reg), tea.WithAltScreen()).Run()
	return err
}
