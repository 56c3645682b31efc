package classify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/classify"
)

func TestClassify_CPUProfile(t *testing.T) {
	meta := classify.Classify([]classify.SampleType{
		{Type: "samples", Unit: "count"},
		{Type: "cpu", Unit: "nanoseconds"},
	})
	require.Equal(t, classify.KindCPU, meta.Kind)
	require.Equal(t, classify.UnitNanoseconds, meta.Unit)
	require.Equal(t, 1, meta.SampleTypeIndex)
	require.Equal(t, 1.0, meta.ScaleToBase)
}

func TestClassify_HeapProfilePicksSpaceNotObjects(t *testing.T) {
	// A heap profile with both "objects" and "space" columns must pick the
	// byte-valued "space" column (index 1) at scale 1, not object counts.
	meta := classify.Classify([]classify.SampleType{
		{Type: "objects", Unit: "count"},
		{Type: "space", Unit: "bytes"},
	})
	require.Equal(t, classify.KindHeap, meta.Kind)
	require.Equal(t, 1, meta.SampleTypeIndex)
	require.Equal(t, 1.0, meta.ScaleToBase)
}

func TestClassify_HeapUnitScale(t *testing.T) {
	meta := classify.Classify([]classify.SampleType{
		{Type: "alloc_space", Unit: "kb"},
	})
	require.Equal(t, classify.KindHeap, meta.Kind)
	require.Equal(t, float64(1<<10), meta.ScaleToBase)
}

func TestClassify_UnknownFallsBackWhenOnlyCountColumns(t *testing.T) {
	meta := classify.Classify([]classify.SampleType{
		{Type: "samples", Unit: "count"},
	})
	require.Equal(t, 0, meta.SampleTypeIndex)
}

func TestClassify_UnknownKindForUnrecognizedType(t *testing.T) {
	meta := classify.Classify([]classify.SampleType{
		{Type: "goroutine", Unit: "count"},
		{Type: "mutex_contentions", Unit: "count"},
	})
	require.Equal(t, classify.KindUnknown, meta.Kind)
}

func TestClassify_EmptySampleTypes(t *testing.T) {
	meta := classify.Classify(nil)
	require.Equal(t, 0, meta.SampleTypeIndex)
	require.Equal(t, classify.KindUnknown, meta.Kind)
}

func TestClassify_MicrosecondScale(t *testing.T) {
	meta := classify.Classify([]classify.SampleType{{Type: "wall", Unit: "microseconds"}})
	require.Equal(t, 1e3, meta.ScaleToBase)
}
