package calltree

import (
	"fmt"

	"github.com/Oloruntobi1/flamescope/internal/classify"
	"github.com/Oloruntobi1/flamescope/internal/pprofdecode"
)

// FromProfile extracts the samples for the classified metric column from a
// decoded profile and builds the call tree in two steps: resolve each
// sample's locations to function names, then fold every sample through the
// tree.
//
// A location or function ID a sample references but the profile never
// defined falls back to a synthetic "loc_<id>"/"func_<id>" name; the
// sample is kept, not dropped.
func FromProfile(p *pprofdecode.Profile, meta classify.Metadata, filter FilterFunc) *Node {
	samples := make([]Sample, 0, len(p.Sample))

	for _, s := range p.Sample {
		// A sample missing the selected value column defaults to 0 rather
		// than being dropped: it still folds in, contributing to
		// sample_count/self_sample_count even though it adds no value.
		var value int64
		if meta.SampleTypeIndex < len(s.Value) {
			value = s.Value[meta.SampleTypeIndex]
		}

		frames := make([]Frame, 0, len(s.LocationIDs))
		for _, locID := range s.LocationIDs {
			frames = append(frames, resolveFrame(p, locID))
		}
		samples = append(samples, Sample{Frames: frames, Value: value})
	}

	root := Build(samples)
	return ApplyFilter(root, filter)
}

func resolveFrame(p *pprofdecode.Profile, locID uint64) Frame {
	loc, ok := p.LocationByID(locID)
	if !ok || len(loc.Lines) == 0 {
		return Frame{Name: fmt.Sprintf("loc_%d", locID)}
	}

	// Only the first line of the location is consulted; deeper entries
	// (inlined frames) are reserved but not required.
	line := loc.Lines[0]
	fn, ok := p.FunctionByID(line.FunctionID)
	if !ok {
		return Frame{Name: fmt.Sprintf("func_%d", line.FunctionID), LineNumber: line.LineNumber}
	}

	name := p.String(fn.Name)
	if name == "" {
		name = fmt.Sprintf("func_%d", fn.ID)
	}
	return Frame{
		Name:       name,
		FileName:   p.String(fn.Filename),
		LineNumber: line.LineNumber,
	}
}
