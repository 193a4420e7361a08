package tui

import (
	"context"
	"fmt"
	"product-browser/internal/core"
	"product-browser/internal/core/model"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// catalogLoadedMsg reports that the one-shot load finished. A failure has
// already been logged by the service; the view just stays empty.
type catalogLoadedMsg struct {
	err error
}

// LoadFunc performs the catalog load, e.g. (*core.Service).Load.
type LoadFunc func(ctx context.Context) error

// Model is the interactive product browser. All view-state changes happen
// inside Update, so the browser is only ever touched from one goroutine.
type Model struct {
	ctx     context.Context
	load    LoadFunc
	browser *core.Browser
	table   table.Model
	loading bool
	width   int
	styles  Styles
}

func New(ctx context.Context, browser *core.Browser, load LoadFunc) Model {
	st := DefaultStyles()
	t := table.New(
		table.WithColumns(Columns()),
		table.WithHeight(model.PageSize+2),
		table.WithFocused(false),
	)
	ts := table.DefaultStyles()
	ts.Header = st.Header
	ts.Selected = lipgloss.NewStyle()
	t.SetStyles(ts)

	m := Model{
		ctx:     ctx,
		load:    load,
		browser: browser,
		table:   t,
		loading: load != nil,
		styles:  st,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		return catalogLoadedMsg{err: load(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.loading = false
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > 4 {
			m.table.SetWidth(m.width - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.browser.Prev()
		case "right", "l":
			m.browser.Next()
		case "c":
			m.cycleCategory(1)
		case "C":
			m.cycleCategory(-1)
		case "s":
			m.cycleSort(1)
		case "S":
			m.cycleSort(-1)
		default:
			return m, nil
		}
		m.refresh()
	}
	return m, nil
}

// State exposes the current view state, mostly for tests.
func (m Model) State() model.ViewState { return m.browser.State() }

func (m *Model) cycleCategory(step int) {
	opts := m.browser.CategoryOptions()
	cur := m.browser.State().Category
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	m.browser.SetCategory(opts[wrap(idx+step, len(opts))])
}

func (m *Model) cycleSort(step int) {
	cur := m.browser.State().Sort
	idx := 0
	for i, s := range model.SortModes {
		if s == cur {
			idx = i
			break
		}
	}
	m.browser.SetSort(model.SortModes[wrap(idx+step, len(model.SortModes))])
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// refresh recomputes the visible page from the browser.
func (m *Model) refresh() {
	m.table.SetRows(Rows(m.browser.View().Data))
}

func (m Model) View() string {
	st := m.browser.State()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Product Browser"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Category: "))
	b.WriteString(m.styles.Value.Render(st.Category))
	b.WriteString("    ")
	b.WriteString(m.styles.Label.Render("Sort by: "))
	b.WriteString(m.styles.Value.Render(st.Sort.Label()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.styles.Label.Render("loading catalog..."))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Pager.Render(fmt.Sprintf("<  %d  >", st.Page)))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("←/h prev • →/l next • c/C category • s/S sort • q quit"))

	return m.styles.Frame.Render(b.String())
}
