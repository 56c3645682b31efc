package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/classify"
)

func sampleTree() *calltree.Node {
	return calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "B"}, {Name: "A"}}, Value: 3},
		{Frames: []calltree.Frame{{Name: "C"}, {Name: "A"}}, Value: 1},
	})
}

func TestNew_BuildsIndexFromTree(t *testing.T) {
	m := New(sampleTree(), classify.Metadata{Unit: classify.UnitNanoseconds}, "Source: test")
	require.Len(t, m.entries, 3)
	require.Equal(t, "B", m.entries[0].Node.Name)
}

func TestHandleKey_DownMovesCursorTowardCoolerEntry(t *testing.T) {
	m := New(sampleTree(), classify.Metadata{}, "Source: test")
	first, _ := m.cursor.Current()
	require.Equal(t, "B", first.Node.Name)

	updated, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	next, ok := updated.(Model).cursor.Current()
	require.True(t, ok)
	require.Equal(t, "C", next.Node.Name)
}

func TestHandleKey_CtrlCReturnsQuitCommand(t *testing.T) {
	m := New(sampleTree(), classify.Metadata{}, "Source: test")
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestHandleKey_SortCyclesThroughThreeOrders(t *testing.T) {
	m := New(sampleTree(), classify.Metadata{}, "Source: test")
	require.Equal(t, bySelf, m.sort)

	updated, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m2 := updated.(Model)
	require.Equal(t, byTotal, m2.sort)

	updated, _ = m2.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m3 := updated.(Model)
	require.Equal(t, byName, m3.sort)
}

func TestUpdate_TreeUpdateMsgPreservesSelectionByName(t *testing.T) {
	m := New(sampleTree(), classify.Metadata{}, "Source: test")
	m.cursor.SyncTo(func() string {
		for _, e := range m.entries {
			if e.Node.Name == "C" {
				return e.Node.ID
			}
		}
		return ""
	}())

	newRoot := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "B"}, {Name: "A"}}, Value: 5},
		{Frames: []calltree.Frame{{Name: "C"}, {Name: "A"}}, Value: 9},
	})
	updated, _ := m.Update(treeUpdateMsg{root: newRoot, metadata: classify.Metadata{}})
	m2 := updated.(Model)
	cur, ok := m2.cursor.Current()
	require.True(t, ok)
	require.Equal(t, "C", cur.Node.Name)
}

func TestUpdate_TreeUpdateErrSetsLastError(t *testing.T) {
	m := New(sampleTree(), classify.Metadata{}, "Source: test")
	updated, _ := m.Update(treeUpdateErr{err: assertError{}})
	require.Error(t, updated.(Model).lastError)
}

type assertError struct{}

func (assertError) Error() string { return "boom" }

func TestFormatBytes_HumanReadableUnits(t *testing.T) {
	require.Equal(t, "512B", formatBytes(512))
	require.Equal(t, "1.0KiB", formatBytes(1024))
}
