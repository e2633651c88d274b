package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lienard/internal/chargeset"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	stateMenu = iota
	stateSim
)

// Builder makes a live view for a preset.
type Builder func(p chargeset.Preset) (LiveModel, error)

// App is a preset picker in front of a LiveModel.
type App struct {
	state   int
	cursor  int
	presets []chargeset.Preset
	build   Builder
	live    LiveModel
	size    *tea.WindowSizeMsg
	err     error
}

func NewApp(build Builder) *App {
	return &App{
		state:   stateMenu,
		presets: chargeset.ListPresets(),
		build:   build,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.state == stateMenu {
			return a.menuKey(msg)
		}
		if msg.String() == "esc" {
			a.state = stateMenu
			return a, nil
		}
		return a.forward(msg)
	case tea.WindowSizeMsg:
		a.size = &msg
		if a.state == stateSim {
			return a.forward(msg)
		}
		return a, nil
	}
	if a.state == stateSim {
		return a.forward(msg)
	}
	return a, nil
}

func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.live.Update(msg)
	a.live = next.(LiveModel)
	return a, cmd
}

func (a App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter":
		live, err := a.build(a.presets[a.cursor])
		if err != nil {
			a.err = err
			return a, nil
		}
		a.err = nil
		a.live = live
		a.state = stateSim
		if a.size != nil {
			next, _ := a.live.Update(*a.size)
			a.live = next.(LiveModel)
		}
		return a, a.live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	var s strings.Builder
	s.WriteString(cyan.Render("LIENARD") + dim.Render("  retarded fields of moving charges") + "\n\n")
	for i, p := range a.presets {
		line := fmt.Sprintf("%-10s %s", p, dim.Render(p.Description()))
		if i == a.cursor {
			s.WriteString(cyan.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if a.err != nil {
		s.WriteString("\n" + red.Render(a.err.Error()) + "\n")
	}
	s.WriteString("\n" + dim.Render("↑↓:Select Enter:Run Esc:Back Q:Quit"))
	return s.String()
}

func RunInteractive(build Builder) error {
	_, err := tea.NewProgram(NewApp(build), tea.WithAltScreen()).Run()
	return err
}
