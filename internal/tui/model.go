// Package tui is a bubbletea-based terminal fallback front end over the
// same calltree.Node/hottest.Entry data the GPU renderer draws, for
// terminals or environments where a GPU context can't be acquired.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/classify"
	"github.com/Oloruntobi1/flamescope/internal/hottest"
)

// sortOrder is the display-order cycle for the hottest-frames list: the
// index's native (self desc, value desc) order, a total-value ordering,
// and a name-ordered alternative for alphabetical scanning.
type sortOrder int

const (
	bySelf sortOrder = iota
	byTotal
	byName
)

func (s sortOrder) String() string {
	return [...]string{"Self", "Total", "Name"}[s]
}

// entryItem adapts a hottest.Entry to bubbles/list.Item.
type entryItem struct {
	entry hottest.Entry
	unit  classify.Unit
}

func (i entryItem) Title() string { return i.entry.Node.Name }

func (i entryItem) Description() string {
	return fmt.Sprintf("self %s  total %s  %.1f%% of index",
		formatValue(i.entry.SelfValue, i.unit),
		formatValue(i.entry.Value, i.unit),
		i.entry.Width*100)
}

func (i entryItem) FilterValue() string { return i.entry.Node.Name }

func formatValue(v int64, unit classify.Unit) string {
	if unit == classify.UnitBytes {
		return formatBytes(v)
	}
	return time.Duration(v).String()
}

func formatBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%dB", v)
	}
	div, exp := int64(unit), 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(v)/float64(div), "KMGTPE"[exp])
}

// Model is the bubbletea model for the fallback front end.
type Model struct {
	root     *calltree.Node
	metadata classify.Metadata
	entries  []hottest.Entry
	cursor   *hottest.Cursor

	sourceInfo string
	filter     calltree.FilterFunc
	sort       sortOrder

	isLiveMode      bool
	liveURL         string
	refreshInterval time.Duration
	isPaused        bool
	lastError       error

	entryList list.Model
	help      viewport.Model
	showHelp  bool

	width, height int
	styles        Styles
	ready         bool
}

// New builds a Model over an already-built tree. sourceInfo is the
// diagnostic header text (teacher's "Source: <path>" line).
func New(root *calltree.Node, metadata classify.Metadata, sourceInfo string) Model {
	m := Model{
		root:       root,
		metadata:   metadata,
		sourceInfo: sourceInfo,
		sort:       bySelf,
		entryList:  list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:       viewport.New(0, 0),
		styles:     defaultStyles(),
	}
	m.entryList.Title = "Hottest frames"
	m.entryList.SetShowHelp(false)
	m.rebuildIndex()
	return m
}

// NewLive builds a Model in live-polling mode: it starts on an empty tree
// and refreshes from url on a ticker once the program's event loop starts.
func NewLive(url string, refresh time.Duration, filter calltree.FilterFunc) Model {
	m := New(&calltree.Node{}, classify.Metadata{}, "Live: "+url)
	m.isLiveMode = true
	m.liveURL = url
	m.refreshInterval = refresh
	m.filter = filter
	return m
}

func (m *Model) rebuildIndex() {
	m.entries = hottest.Build(m.root)
	m.cursor = hottest.NewCursor(m.entries)
	items := make([]list.Item, len(m.entries))
	for i, e := range m.entries {
		items[i] = entryItem{entry: e, unit: m.metadata.Unit}
	}
	m.sortEntries(items)
	m.entryList.SetItems(items)
}

func (m *Model) sortEntries(items []list.Item) {
	var less func(a, b hottest.Entry) bool
	switch m.sort {
	case byTotal:
		less = func(a, b hottest.Entry) bool { return a.Value > b.Value }
	case byName:
		less = func(a, b hottest.Entry) bool { return a.Node.Name < b.Node.Name }
	default:
		return
	}
	// hottest.Build already sorts by (self desc, value desc); byTotal and
	// byName are display-order overrides, implemented here as a stable sort
	// over the same entries (selection/strip math in internal/hottest is
	// untouched — sort only changes what the list widget shows).
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && less(items[j].(entryItem).entry, items[j-1].(entryItem).entry); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	if m.isLiveMode {
		return tea.Batch(fetchTreeCmd(m.liveURL, m.filter), tickerCmd(m.refreshInterval))
	}
	return nil
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.entryList.SetSize(msg.Width/2, msg.Height-6)
		m.help.Width, m.help.Height = msg.Width, msg.Height-4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.isLiveMode && !m.isPaused {
			return m, tea.Batch(fetchTreeCmd(m.liveURL, m.filter), tickerCmd(m.refreshInterval))
		}
		return m, tickerCmd(m.refreshInterval)

	case treeUpdateMsg:
		selected := m.selectedName()
		m.root = msg.root
		m.metadata = msg.metadata
		m.lastError = nil
		m.rebuildIndex()
		if selected != "" {
			if n := calltree.FindByName(m.root, selected); n != nil {
				m.cursor.SyncTo(n.ID)
			}
		}
		return m, nil

	case treeUpdateErr:
		m.lastError = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.entryList, cmd = m.entryList.Update(msg)
	return m, cmd
}

func (m Model) selectedName() string {
	if cur, ok := m.cursor.Current(); ok {
		return cur.Node.Name
	}
	return ""
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "p":
		if m.isLiveMode {
			m.isPaused = !m.isPaused
		}
		return m, nil
	case "s":
		m.sort = (m.sort + 1) % 3
		m.rebuildIndex()
		return m, nil
	case "up", "k":
		if cur, ok := m.cursor.Prev(); ok {
			m.entryList.Select(indexOf(m.entries, cur))
		}
		return m, nil
	case "down", "j":
		if cur, ok := m.cursor.Next(); ok {
			m.entryList.Select(indexOf(m.entries, cur))
		}
		return m, nil
	case "g":
		m.cursor.First()
		return m, nil
	case "G":
		m.cursor.Last()
		return m, nil
	case "enter":
		if item, ok := m.entryList.SelectedItem().(entryItem); ok {
			m.cursor.SyncTo(item.entry.Node.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.entryList, cmd = m.entryList.Update(msg)
	return m, cmd
}

func indexOf(entries []hottest.Entry, e hottest.Entry) int {
	for i, c := range entries {
		if c.Node.ID == e.Node.ID {
			return i
		}
	}
	return 0
}
