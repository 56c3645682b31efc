package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/classify"
)

func TestExplanationFor_KnownKindReturnsItsOwnEntry(t *testing.T) {
	e := explanationFor(classify.KindCPU)
	require.Equal(t, "CPU Profile", e.Title)
}

func TestExplanationFor_UnknownKindFallsBackToUnknownEntry(t *testing.T) {
	e := explanationFor(classify.Kind(99))
	require.Equal(t, explanations[classify.KindUnknown], e)
}
