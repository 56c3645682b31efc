package tui

import "github.com/Oloruntobi1/flamescope/internal/classify"

// explanation holds the title and body for a profile-kind help topic.
type explanation struct {
	Title       string
	Description string
}

var explanations = map[classify.Kind]explanation{
	classify.KindCPU: {
		Title: "CPU Profile",
		Description: `This view shows where the program is spending active CPU time — not
wall-clock time.

During profiling, the runtime periodically records which function was
running. A function that appears in many samples spent a lot of time
executing. Use this view to find CPU hotspots.`,
	},
	classify.KindHeap: {
		Title: "Heap Profile",
		Description: `This view shows how much memory is attributed to each function, either
currently held (in-use) or allocated over the program's lifetime,
depending on the sample type the metadata classifier picked.

Watch for functions whose share keeps growing across live-mode refreshes;
that is the signature of a leak rather than a one-off allocation burst.`,
	},
	classify.KindUnknown: {
		Title: "Profile",
		Description: `No specific explanation is available for this sample type; self and
cumulative values are still comparable within this profile.`,
	},
}

func explanationFor(k classify.Kind) explanation {
	e, ok := explanations[k]
	if !ok {
		return explanations[classify.KindUnknown]
	}
	return e
}

// flatVsCumExplanation is the "self vs total" help text: self is what a
// frame alone accounts for, cumulative (value) is the frame plus
// everything beneath it.
const flatVsCumExplanation = `"Self" is what a frame alone accounts for.
"Total" (cumulative) is the frame plus everything it called.

A frame with high Total but low Self is a thin wrapper around expensive
callees. A frame with high Self is where the work itself happens.`
