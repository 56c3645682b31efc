package pprofdecode

// Wire types from the protobuf encoding used by profile.proto.
const (
	wireVarint    = 0
	wire64bit     = 1
	wireBytes     = 2
	wireStartGrp  = 3 // unused by profile.proto, tolerated and skipped
	wireEndGrp    = 4 // unused by profile.proto, tolerated and skipped
	wire32bit     = 5
)

// Profile field numbers (top-level message).
const (
	fieldSampleType     = 1
	fieldSample         = 2
	fieldMapping        = 3
	fieldLocation       = 4
	fieldFunction       = 5
	fieldStringTable    = 6
	fieldDropFrames     = 7
	fieldKeepFrames     = 8
	fieldTimeNanos      = 9
	fieldDurationNanos  = 10
	fieldPeriodType     = 11
	fieldPeriod         = 12
)

// Sample field numbers.
const (
	fieldSampleLocationID = 1
	fieldSampleValue      = 2
)

// Location field numbers.
const (
	fieldLocationID        = 1
	fieldLocationMappingID = 2
	fieldLocationAddress   = 3
	fieldLocationLine      = 4
)

// Line field numbers.
const (
	fieldLineFunctionID = 1
	fieldLineLineNumber = 2
)

// Function field numbers.
const (
	fieldFunctionID         = 1
	fieldFunctionName       = 2
	fieldFunctionSystemName = 3
	fieldFunctionFilename   = 4
	fieldFunctionStartLine  = 5
)

// ValueType field numbers.
const (
	fieldValueTypeType = 1
	fieldValueTypeUnit = 2
)

// reader walks a length-delimited protobuf message byte-by-byte. It never
// copies the backing slice; all decoded strings/bytes are copied out
// explicitly so the caller's buffer can be discarded afterwards.
type reader struct {
	buf []byte
	pos int
}

// Decode parses a raw (already gunzipped) pprof byte stream into a Profile.
// Unknown fields are skipped using their wire type; both 32- and 64-bit
// varint-encoded integers are accepted and widened to int64/uint64 uniformly.
func Decode(data []byte) (*Profile, error) {
	r := &reader{buf: data}
	p := &Profile{}

	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fieldNum {
		case fieldSampleType:
			msg, err := r.readMessageBytes(wireType)
			if err != nil {
				return nil, err
			}
			vt, err := decodeValueType(msg)
			if err != nil {
				return nil, err
			}
			p.SampleType = append(p.SampleType, vt)
		case fieldSample:
			msg, err := r.readMessageBytes(wireType)
			if err != nil {
				return nil, err
			}
			s, err := decodeSample(msg)
			if err != nil {
				return nil, err
			}
			p.Sample = append(p.Sample, s)
		case fieldLocation:
			msg, err := r.readMessageBytes(wireType)
			if err != nil {
				return nil, err
			}
			loc, err := decodeLocation(msg)
			if err != nil {
				return nil, err
			}
			p.Location = append(p.Location, loc)
		case fieldFunction:
			msg, err := r.readMessageBytes(wireType)
			if err != nil {
				return nil, err
			}
			fn, err := decodeFunction(msg)
			if err != nil {
				return nil, err
			}
			p.Function = append(p.Function, fn)
		case fieldStringTable:
			b, err := r.readBytesField(wireType)
			if err != nil {
				return nil, err
			}
			p.StringTable = append(p.StringTable, string(b))
		case fieldTimeNanos:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return nil, err
			}
			p.TimeNanos = v
		case fieldDurationNanos:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return nil, err
			}
			p.DurationNanos = v
		case fieldPeriodType:
			msg, err := r.readMessageBytes(wireType)
			if err != nil {
				return nil, err
			}
			vt, err := decodeValueType(msg)
			if err != nil {
				return nil, err
			}
			p.PeriodType = vt
		case fieldPeriod:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return nil, err
			}
			p.Period = v
		case fieldMapping, fieldDropFrames, fieldKeepFrames:
			// Carried by the wire format, irrelevant to the core: skip.
			if err := r.skipField(wireType); err != nil {
				return nil, err
			}
		default:
			if err := r.skipField(wireType); err != nil {
				return nil, err
			}
		}
	}

	if len(p.StringTable) == 0 {
		p.StringTable = []string{""}
	}
	p.buildIndexes()
	return p, nil
}

func (r *reader) done() bool { return r.pos >= len(r.buf) }

// readTag reads a (field_number << 3 | wire_type) varint key.
func (r *reader) readTag() (fieldNum int, wireType int, err error) {
	v, err := r.readVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(v >> 3), int(v & 0x7), nil
}

// readVarint reads a base-128 varint, tolerating both 32- and 64-bit
// encodings uniformly by always widening into uint64.
func (r *reader) readVarint() (uint64, error) {
	var result uint64
	var shift uint
	start := r.pos
	for {
		if r.pos >= len(r.buf) {
			return 0, newParseError(start, "truncated varint")
		}
		b := r.buf[r.pos]
		r.pos++
		if shift >= 64 {
			return 0, newParseError(start, "varint overflow")
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// readLength reads a varint length prefix and validates it doesn't overrun the buffer.
func (r *reader) readLength() (int, error) {
	n, err := r.readVarint()
	if err != nil {
		return 0, err
	}
	if n > uint64(len(r.buf)-r.pos) {
		return 0, newParseError(r.pos, "length-delimited field overruns buffer")
	}
	return int(n), nil
}

func (r *reader) readBytesField(wireType int) ([]byte, error) {
	if wireType != wireBytes {
		return nil, newParseError(r.pos, "expected length-delimited wire type, got %d", wireType)
	}
	n, err := r.readLength()
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

// readMessageBytes returns the raw bytes of a nested message for recursive decoding.
func (r *reader) readMessageBytes(wireType int) ([]byte, error) {
	return r.readBytesField(wireType)
}

// readScalarAsInt64 accepts either a varint or fixed-width field and widens it to int64.
func (r *reader) readScalarAsInt64(wireType int) (int64, error) {
	switch wireType {
	case wireVarint:
		v, err := r.readVarint()
		if err != nil {
			return 0, err
		}
		return int64(v), nil
	case wire64bit:
		if r.pos+8 > len(r.buf) {
			return 0, newParseError(r.pos, "truncated 64-bit field")
		}
		v := uint64(0)
		for i := 0; i < 8; i++ {
			v |= uint64(r.buf[r.pos+i]) << (8 * i)
		}
		r.pos += 8
		return int64(v), nil
	case wire32bit:
		if r.pos+4 > len(r.buf) {
			return 0, newParseError(r.pos, "truncated 32-bit field")
		}
		v := uint32(0)
		for i := 0; i < 4; i++ {
			v |= uint32(r.buf[r.pos+i]) << (8 * i)
		}
		r.pos += 4
		return int64(v), nil
	default:
		return 0, newParseError(r.pos, "unexpected wire type %d for scalar field", wireType)
	}
}

// skipField advances past a field's value without decoding it, based on wire type.
func (r *reader) skipField(wireType int) error {
	switch wireType {
	case wireVarint:
		_, err := r.readVarint()
		return err
	case wire64bit:
		if r.pos+8 > len(r.buf) {
			return newParseError(r.pos, "truncated 64-bit field")
		}
		r.pos += 8
		return nil
	case wireBytes:
		n, err := r.readLength()
		if err != nil {
			return err
		}
		r.pos += n
		return nil
	case wire32bit:
		if r.pos+4 > len(r.buf) {
			return newParseError(r.pos, "truncated 32-bit field")
		}
		r.pos += 4
		return nil
	case wireStartGrp, wireEndGrp:
		// Deprecated group wire types never appear in profile.proto; tolerate silently.
		return nil
	default:
		return newParseError(r.pos, "unknown wire type %d", wireType)
	}
}

func decodeValueType(data []byte) (ValueType, error) {
	r := &reader{buf: data}
	var vt ValueType
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return vt, err
		}
		switch fieldNum {
		case fieldValueTypeType:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return vt, err
			}
			vt.Type = v
		case fieldValueTypeUnit:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return vt, err
			}
			vt.Unit = v
		default:
			if err := r.skipField(wireType); err != nil {
				return vt, err
			}
		}
	}
	return vt, nil
}

func decodeSample(data []byte) (Sample, error) {
	r := &reader{buf: data}
	var s Sample
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return s, err
		}
		switch fieldNum {
		case fieldSampleLocationID:
			ids, err := readPackedOrSingleVarint(r, wireType)
			if err != nil {
				return s, err
			}
			for _, id := range ids {
				s.LocationIDs = append(s.LocationIDs, id)
			}
		case fieldSampleValue:
			vals, err := readPackedOrSingleVarint(r, wireType)
			if err != nil {
				return s, err
			}
			for _, v := range vals {
				s.Value = append(s.Value, int64(v))
			}
		default:
			if err := r.skipField(wireType); err != nil {
				return s, err
			}
		}
	}
	return s, nil
}

// readPackedOrSingleVarint reads either one varint (wireVarint) or a packed
// repeated-varint field (wireBytes containing back-to-back varints), which
// is how protoc encodes `repeated int64`/`repeated uint64` by default.
func readPackedOrSingleVarint(r *reader, wireType int) ([]uint64, error) {
	switch wireType {
	case wireVarint:
		v, err := r.readVarint()
		if err != nil {
			return nil, err
		}
		return []uint64{v}, nil
	case wireBytes:
		n, err := r.readLength()
		if err != nil {
			return nil, err
		}
		end := r.pos + n
		sub := &reader{buf: r.buf[:end], pos: r.pos}
		var out []uint64
		for sub.pos < end {
			v, err := sub.readVarint()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		r.pos = end
		return out, nil
	default:
		return nil, newParseError(r.pos, "unexpected wire type %d for repeated varint field", wireType)
	}
}

func decodeLocation(data []byte) (Location, error) {
	r := &reader{buf: data}
	var loc Location
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return loc, err
		}
		switch fieldNum {
		case fieldLocationID:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return loc, err
			}
			loc.ID = uint64(v)
		case fieldLocationLine:
			msg, err := r.readMessageBytes(wireType)
			if err != nil {
				return loc, err
			}
			line, err := decodeLine(msg)
			if err != nil {
				return loc, err
			}
			loc.Lines = append(loc.Lines, line)
		default:
			if err := r.skipField(wireType); err != nil {
				return loc, err
			}
		}
	}
	return loc, nil
}

func decodeLine(data []byte) (Line, error) {
	r := &reader{buf: data}
	var ln Line
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return ln, err
		}
		switch fieldNum {
		case fieldLineFunctionID:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return ln, err
			}
			ln.FunctionID = uint64(v)
		case fieldLineLineNumber:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return ln, err
			}
			ln.LineNumber = v
		default:
			if err := r.skipField(wireType); err != nil {
				return ln, err
			}
		}
	}
	return ln, nil
}

func decodeFunction(data []byte) (Function, error) {
	r := &reader{buf: data}
	var fn Function
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return fn, err
		}
		switch fieldNum {
		case fieldFunctionID:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return fn, err
			}
			fn.ID = uint64(v)
		case fieldFunctionName:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return fn, err
			}
			fn.Name = v
		case fieldFunctionSystemName:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return fn, err
			}
			fn.SystemName = v
		case fieldFunctionFilename:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return fn, err
			}
			fn.Filename = v
		case fieldFunctionStartLine:
			v, err := r.readScalarAsInt64(wireType)
			if err != nil {
				return fn, err
			}
			fn.StartLine = v
		default:
			if err := r.skipField(wireType); err != nil {
				return fn, err
			}
		}
	}
	return fn, nil
}
