// Package tui is the interactive terminal client. It keeps a list of the
// owner's tasks on screen and re-fetches it from the API on a timer, so
// edits made elsewhere show up without manual refreshes.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tasktrack/internal/client"
	"tasktrack/internal/domain"
	"tasktrack/internal/service"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const pollEvery = 5 * time.Second

type taskItem struct {
	task domain.Task
}

func (i taskItem) Title() string {
	box := boxUnchecked
	if i.task.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.task.Title)
}
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Title + " " + i.task.Tags }

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(taskItem)

	box := mutedStyle.Render(boxUnchecked)
	text := it.task.Title
	if it.task.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	if it.task.Tags != "" {
		text += mutedStyle.Render("  #" + it.task.Tags)
	}
	if it.task.DueDate != nil {
		text += accentStyle.Render("  due " + it.task.DueDate.Local().Format("2006-01-02 15:04"))
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

type (
	tasksMsg []domain.Task
	errMsg   struct{ err error }
	tickMsg  time.Time
)

type Model struct {
	api   *client.Client
	owner string

	list   list.Model
	input  textinput.Model
	adding bool
	status string
}

func New(api *client.Client, owner string) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Tasks") + mutedStyle.Render("  "+owner)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind := key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, toggleBind, deleteBind, refreshBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task title..."
	ti.CharLimit = domain.TitleMaxLen

	return Model{api: api, owner: owner, list: l, input: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) fetch() tea.Cmd {
	api, owner := m.api, m.owner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tasks, err := api.ListTasks(ctx, owner, domain.TaskFilter{})
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg(tasks)
	}
}

func (m Model) create(title string) tea.Cmd {
	api, owner := m.api, m.owner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := api.CreateTask(ctx, owner, service.TaskCreate{Title: title}); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) toggle(t domain.Task) tea.Cmd {
	api, owner := m.api, m.owner
	completed := !t.Completed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := api.UpdateTask(ctx, owner, t.ID, domain.TaskPatch{Completed: &completed}); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) remove(id int64) tea.Cmd {
	api, owner := m.api, m.owner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := api.DeleteTask(ctx, owner, id); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) selected() (domain.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return domain.Task{}, false
	}
	return it.task, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding {
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				title := strings.TrimSpace(m.input.Value())
				if title == "" {
					m.status = "title cannot be empty"
					return m, nil
				}
				m.adding = false
				m.input.SetValue("")
				m.input.Blur()
				return m, tea.Sequence(m.create(title), m.fetch())
			case "esc":
				m.adding = false
				m.input.SetValue("")
				m.input.Blur()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(x.Width, x.Height-2)

	case tasksMsg:
		items := make([]list.Item, 0, len(x))
		for _, t := range x {
			items = append(items, taskItem{task: t})
		}
		m.list.SetItems(items)
		m.status = ""

	case errMsg:
		m.status = x.err.Error()

	case tickMsg:
		return m, tea.Batch(m.fetch(), tick())

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch x.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.adding = true
			m.input.Focus()
			return m, textinput.Blink
		case "c", " ":
			if t, ok := m.selected(); ok {
				return m, tea.Sequence(m.toggle(t), m.fetch())
			}
		case "d":
			if t, ok := m.selected(); ok {
				return m, tea.Sequence(m.remove(t.ID), m.fetch())
			}
		case "r":
			return m, m.fetch()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.adding {
		b.WriteString(m.input.View())
	} else if m.status != "" {
		b.WriteString(errorStyle.Render("✖ " + m.status))
	} else {
		done, total := 0, len(m.list.Items())
		for _, it := range m.list.Items() {
			if t, ok := it.(taskItem); ok && t.task.Completed {
				done++
			}
		}
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d done", done, total)))
	}
	return b.String()
}
