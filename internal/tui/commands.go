package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/classify"
	"github.com/Oloruntobi1/flamescope/internal/pprofdecode"
	"github.com/Oloruntobi1/flamescope/internal/profileio"
)

type tickMsg time.Time

type treeUpdateMsg struct {
	root     *calltree.Node
	metadata classify.Metadata
}

type treeUpdateErr struct{ err error }

func (e treeUpdateErr) Error() string { return e.err.Error() }

// tickerCmd fires a tickMsg after interval.
func tickerCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchTreeCmd loads, decodes, classifies, and builds a tree from url in
// the background, for live-mode polling.
func fetchTreeCmd(url string, filter calltree.FilterFunc) tea.Cmd {
	return func() tea.Msg {
		data, err := profileio.Load(url)
		if err != nil {
			return treeUpdateErr{fmt.Errorf("load: %w", err)}
		}
		profile, err := pprofdecode.Decode(data)
		if err != nil {
			return treeUpdateErr{fmt.Errorf("decode: %w", err)}
		}
		metadata := classify.Classify(sampleTypesOf(profile))
		root := calltree.FromProfile(profile, metadata, filter)
		return treeUpdateMsg{root: root, metadata: metadata}
	}
}

func sampleTypesOf(p *pprofdecode.Profile) []classify.SampleType {
	out := make([]classify.SampleType, len(p.SampleType))
	for i, st := range p.SampleType {
		out[i] = classify.SampleType{Type: p.String(st.Type), Unit: p.String(st.Unit)}
	}
	return out
}
