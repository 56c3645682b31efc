package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/classify"
	"github.com/Oloruntobi1/flamescope/internal/config"
	"github.com/Oloruntobi1/flamescope/internal/tui"
)

func runTUI(root *calltree.Node, metadata classify.Metadata, sourceInfo string, cfg config.Config) error {
	m := tui.New(root, metadata, sourceInfo)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func runTUILive(url string, refresh time.Duration, filter calltree.FilterFunc, cfg config.Config) error {
	m := tui.NewLive(url, refresh, filter)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
