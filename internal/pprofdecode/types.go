// Package pprofdecode is a hand-rolled reader for the
// pprof wire format (profile.proto). It never links google/pprof at
// runtime — decoding the profile is the engineering problem this package
// solves, not something to delegate to a library.
package pprofdecode

// ValueType names a measurement dimension, e.g. {type: "cpu", unit: "nanoseconds"}.
// Type and Unit are offsets into the profile's StringTable.
type ValueType struct {
	Type int64
	Unit int64
}

// Line is one entry of a Location's inlined-call chain.
type Line struct {
	FunctionID uint64
	LineNumber int64
}

// Location is a single program counter / call site, carrying one Line per
// inlined frame collapsed into it (deepest caller first per profile.proto).
type Location struct {
	ID    uint64
	Lines []Line
}

// Function describes a symbol. Name/SystemName/Filename are StringTable offsets.
type Function struct {
	ID         uint64
	Name       int64
	SystemName int64
	Filename   int64
	StartLine  int64
}

// Sample is one observed stack, leaf-to-root, with one value per SampleType column.
type Sample struct {
	LocationIDs []uint64
	Value       []int64
}

// Profile is the typed, in-memory result of decoding a pprof byte stream.
type Profile struct {
	SampleType []ValueType
	Sample     []Sample
	Location   []Location
	Function   []Function
	// StringTable holds the profile's string_table, index 0 is conventionally "".
	StringTable []string

	TimeNanos     int64
	DurationNanos int64
	PeriodType    ValueType
	Period        int64

	// locationByID and functionByID are built once during Decode to give
	// downstream packages O(1) ID resolution without re-scanning slices.
	locationByID map[uint64]*Location
	functionByID map[uint64]*Function
}

// String resolves a string_table offset, returning "" for an out-of-range index.
func (p *Profile) String(idx int64) string {
	if idx < 0 || int(idx) >= len(p.StringTable) {
		return ""
	}
	return p.StringTable[idx]
}

// LocationByID looks up a location by ID, or ok=false if the profile never
// defined it — callers synthesize a ReferenceError fallback in that case.
func (p *Profile) LocationByID(id uint64) (*Location, bool) {
	l, ok := p.locationByID[id]
	return l, ok
}

// FunctionByID looks up a function by ID, or ok=false if undefined.
func (p *Profile) FunctionByID(id uint64) (*Function, bool) {
	f, ok := p.functionByID[id]
	return f, ok
}

func (p *Profile) buildIndexes() {
	p.locationByID = make(map[uint64]*Location, len(p.Location))
	for i := range p.Location {
		p.locationByID[p.Location[i].ID] = &p.Location[i]
	}
	p.functionByID = make(map[uint64]*Function, len(p.Function))
	for i := range p.Function {
		p.functionByID[p.Function[i].ID] = &p.Function[i]
	}
}
