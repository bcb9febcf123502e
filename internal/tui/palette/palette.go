// Package palette is the interactive search palette: a query line with live
// results from the matcher.
package palette

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazydino/lazyblog/internal/content"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/render"
	"github.com/lazydino/lazyblog/internal/search"
	"github.com/lazydino/lazyblog/internal/state"
)

const defaultVisible = 10

// SnapshotSource supplies the posts searched by the palette.
type SnapshotSource interface {
	AcquireSnapshot(ctx context.Context) (*content.Snapshot, error)
}

type snapshotMsg struct {
	snapshot *content.Snapshot
	err      error
}

type Model struct {
	input       textinput.Model
	help        help.Model
	keys        keyMap
	theme       render.Theme
	source      SnapshotSource
	matcher     *search.Matcher
	routePrefix string

	posts    []post.Post
	results  []search.Result
	cursor   int
	offset   int
	height   int
	width    int
	status   string
	err      error
	selected *post.Post

	watch     tea.Cmd
	heartbeat tea.Cmd
}

// Options configures a palette.
type Options struct {
	Query       string
	RoutePrefix string
	// Watch blocks until the content changes; the palette reloads and
	// re-issues it after every change.
	Watch tea.Cmd
	// Heartbeat refreshes the status line after reloads.
	Heartbeat tea.Cmd
}

func New(source SnapshotSource, matcher *search.Matcher, opts Options) Model {
	t := textinput.New()
	t.Placeholder = "Search posts"
	t.Prompt = "› "
	t.SetValue(opts.Query)
	t.Focus()

	return Model{
		input:       t,
		help:        help.New(),
		keys:        newKeyMap(),
		theme:       render.NewTheme(true),
		source:      source,
		matcher:     matcher,
		routePrefix: opts.RoutePrefix,
		height:      defaultVisible,
		watch:       opts.Watch,
		heartbeat:   opts.Heartbeat,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.load()}
	if m.watch != nil {
		cmds = append(cmds, m.watch)
	}
	return tea.Batch(cmds...)
}

func (m Model) load() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		if source == nil {
			return snapshotMsg{err: fmt.Errorf("no content source")}
		}
		snap, err := source.AcquireSnapshot(context.Background())
		return snapshotMsg{snapshot: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(1, (msg.Height-8)/3)
		m.input.Width = max(10, msg.Width-10)
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.posts = msg.snapshot.Posts()
		m.status = fmt.Sprintf("%d posts", len(m.posts))
		m.refilter()
		return m, m.heartbeat

	case state.SnapshotStatusMsg:
		if msg.Line != "" {
			m.status = msg.Line
		}
		return m, nil

	case state.ContentChangedMsg:
		m.status = "changed " + msg.Path
		return m, tea.Batch(m.load(), m.watch)

	case state.WatcherErrMsg:
		m.err = msg.Err
		return m, m.watch

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.up):
			m.move(-1)
			return m, nil
		case key.Matches(msg, m.keys.down):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.refresh):
			m.status = "reloading…"
			return m, m.load()
		case key.Matches(msg, m.keys.open):
			if len(m.results) == 0 {
				return m, nil
			}
			p := m.results[m.cursor].Post
			m.selected = &p
			return m, tea.Quit
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m *Model) refilter() {
	m.results = m.matcher.Match(m.input.Value(), m.posts)
	m.cursor = 0
	m.offset = 0
}

func (m *Model) move(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.results)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// Selected returns the post chosen with enter, if any.
func (m Model) Selected() (post.Post, bool) {
	if m.selected == nil {
		return post.Post{}, false
	}
	return *m.selected, true
}

// Results returns the current matches.
func (m Model) Results() []search.Result {
	return m.results
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("lazyblog search"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.results) == 0 && strings.TrimSpace(m.input.Value()) != "":
		b.WriteString(statusStyle.Render("no matches"))
		b.WriteString("\n")
	}

	end := min(len(m.results), m.offset+m.height)
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderResult(i))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return appStyle.Render(b.String())
}

func (m Model) renderResult(i int) string {
	r := m.results[i]
	title := m.theme.Highlight(m.theme.Title, r.Post.Title, r.TitleSpan, r.HasTitleSpan)
	lines := []string{title}
	if r.Snippet != "" {
		lines = append(lines, "  "+m.theme.Dim.Render(r.Snippet))
	}
	if tags := m.theme.Tags(r.Post.Tags); tags != "" {
		lines = append(lines, "  "+tags)
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if i == m.cursor {
		return selectedItemStyle.Render("▌") + " " + block
	}
	return "  " + block
}

// Run starts the palette and returns the chosen post.
func Run(m Model) (post.Post, bool, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return post.Post{}, false, err
	}
	fm, ok := final.(Model)
	if !ok {
		return post.Post{}, false, nil
	}
	p, selected := fm.Selected()
	return p, selected, nil
}
