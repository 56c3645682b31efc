// Package classify looks at a decoded profile's
// sample-type columns and decides which one is "the metric" — CPU time,
// heap bytes, or something the rest of the core treats generically.
package classify

import "strings"

// Kind is a sum type: the unit field is only meaningful paired with its
// matching Kind, which is why both are carried on Metadata instead of a
// bare string.
type Kind int

const (
	KindUnknown Kind = iota
	KindCPU
	KindHeap
)

func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindHeap:
		return "heap"
	default:
		return "unknown"
	}
}

// Unit is the normalized unit a Metadata's scale factor converts into.
type Unit int

const (
	UnitNanoseconds Unit = iota
	UnitBytes
)

func (u Unit) String() string {
	if u == UnitBytes {
		return "bytes"
	}
	return "ns"
}

// Metadata is the classifier's verdict: which sample-type column to read
// values from, what kind of profile it is, and the factor that normalizes
// that column's raw values into Unit.
type Metadata struct {
	Kind            Kind
	Unit            Unit
	SampleTypeIndex int
	ScaleToBase     float64
}

// SampleType names one of the profile's value columns, already resolved to
// plain strings (the caller reads these out of the string table).
type SampleType struct {
	Type string
	Unit string
}

var pureCountTypes = map[string]bool{
	"samples":        true,
	"objects":        true,
	"alloc_objects":  true,
	"inuse_objects":  true,
}

var cpuTypes = map[string]bool{
	"wall": true,
	"cpu":  true,
	"time": true,
}

var heapTypes = map[string]bool{
	"space":       true,
	"alloc_space": true,
	"inuse_space": true,
}

// Classify picks the sample-type column to read, and the Kind/Unit/scale
// that column's values should be interpreted with. The returned index is
// never a pure-count dimension unless sampleTypes has no other column.
func Classify(sampleTypes []SampleType) Metadata {
	candidates := make([]int, 0, len(sampleTypes))
	for i, st := range sampleTypes {
		if !pureCountTypes[st.Type] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		// Every column is a pure count (or the profile has none at all):
		// fall back to whatever exists so callers still get a valid index.
		if len(sampleTypes) == 0 {
			return Metadata{Kind: KindUnknown, Unit: UnitNanoseconds, SampleTypeIndex: 0, ScaleToBase: 1}
		}
		candidates = []int{0}
	}

	for _, i := range candidates {
		st := sampleTypes[i]
		if cpuTypes[st.Type] {
			return Metadata{
				Kind:            KindCPU,
				Unit:            UnitNanoseconds,
				SampleTypeIndex: i,
				ScaleToBase:     nanosecondScale(st.Unit),
			}
		}
	}
	for _, i := range candidates {
		st := sampleTypes[i]
		if heapTypes[st.Type] {
			return Metadata{
				Kind:            KindHeap,
				Unit:            UnitBytes,
				SampleTypeIndex: i,
				ScaleToBase:     byteScale(st.Unit),
			}
		}
	}

	// Neither CPU nor heap: UNKNOWN, use the first non-count candidate.
	return Metadata{
		Kind:            KindUnknown,
		Unit:            UnitNanoseconds,
		SampleTypeIndex: candidates[0],
		ScaleToBase:     1,
	}
}

// nanosecondScale converts a unit string into the factor that normalizes a
// raw value of that unit to nanoseconds.
func nanosecondScale(unit string) float64 {
	u := strings.ToLower(unit)
	switch {
	case contains(u, "nanosecond", "ns"):
		return 1
	case contains(u, "microsecond", "us", "µs"):
		return 1e3
	case contains(u, "millisecond", "ms"):
		return 1e6
	case contains(u, "second", "s"):
		return 1e9
	default:
		return 1
	}
}

// byteScale converts a unit string into the factor that normalizes a raw
// value of that unit to bytes.
func byteScale(unit string) float64 {
	u := strings.ToLower(unit)
	switch {
	case contains(u, "byte"):
		return 1
	case contains(u, "kb"):
		return 1 << 10
	case contains(u, "mb"):
		return 1 << 20
	case contains(u, "gb"):
		return 1 << 30
	default:
		return 1
	}
}

func contains(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
