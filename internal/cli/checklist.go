package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arowley/prepsprint/internal/cli/formatter"
	"github.com/arowley/prepsprint/internal/contract"
)

type checklistRow struct {
	header string

	// Task rows only.
	applicationID string
	day           int
	block         int
	task          int
	label         string
	done          bool
}

func (r checklistRow) isTask() bool { return r.header == "" }

type checklistKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func (k checklistKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

func (k checklistKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Quit}}
}

var checklistKeys = checklistKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type checklistModel struct {
	app    *App
	rows   []checklistRow
	cursor int
	status string
	help   help.Model
}

func newChecklistModel(app *App, resp *contract.PlanResponse) checklistModel {
	var rows []checklistRow
	for _, plan := range resp.Plans {
		rows = append(rows, checklistRow{
			header: fmt.Sprintf("%s — Day %d of %d (%s)",
				plan.Company, plan.DayIndex, plan.TotalDays, formatter.FocusLabel(plan.Focus)),
		})
		for bi, block := range plan.Blocks {
			for ti, task := range block.Tasks {
				rows = append(rows, checklistRow{
					applicationID: plan.ApplicationID,
					day:           plan.DayIndex,
					block:         bi + 1,
					task:          ti + 1,
					label:         task.Description,
					done:          task.Completed,
				})
			}
		}
	}

	m := checklistModel{app: app, rows: rows, help: help.New()}
	m.cursor = m.nextTask(-1, 1)
	return m
}

// nextTask returns the index of the first task row from start+dir in
// direction dir, or the current cursor when there is none.
func (m checklistModel) nextTask(start, dir int) int {
	for i := start + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].isTask() {
			return i
		}
	}
	if start < 0 {
		return 0
	}
	return start
}

func (m checklistModel) Init() tea.Cmd { return nil }

func (m checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, checklistKeys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, checklistKeys.Up):
		m.cursor = m.nextTask(m.cursor, -1)
	case key.Matches(keyMsg, checklistKeys.Down):
		m.cursor = m.nextTask(m.cursor, 1)
	case key.Matches(keyMsg, checklistKeys.Toggle):
		m.toggle()
	}
	return m, nil
}

func (m *checklistModel) toggle() {
	if m.cursor >= len(m.rows) || !m.rows[m.cursor].isTask() {
		return
	}
	row := &m.rows[m.cursor]

	req := contract.NewSetTaskRequest(row.applicationID, row.day, row.block, row.task)
	req.Done = !row.done
	resp, err := m.app.Progress.SetTaskDone(context.Background(), req)
	if err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
		return
	}

	row.done = req.Done
	m.status = fmt.Sprintf("Streak %d · %d tasks done all time",
		resp.Progress.CurrentStreak, resp.Progress.TotalTasksCompleted)
	if resp.DayComplete {
		m.status += " · " + formatter.StyleGreen.Render("Day complete!")
	}
}

func (m checklistModel) View() string {
	var out string
	for i, row := range m.rows {
		if !row.isTask() {
			if i > 0 {
				out += "\n"
			}
			out += formatter.Header(row.header) + "\n"
			continue
		}

		box := "[ ]"
		label := row.label
		if row.done {
			box = "[x]"
			label = formatter.Dim(label)
		}
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		out += fmt.Sprintf("%s%s %s\n", cursor, box, label)
	}

	out += "\n"
	if m.status != "" {
		out += m.status + "\n"
	}
	out += m.help.View(checklistKeys)
	return out
}

func runChecklist(app *App, resp *contract.PlanResponse) error {
	p := tea.NewProgram(newChecklistModel(app, resp))
	_, err := p.Run()
	return err
}
