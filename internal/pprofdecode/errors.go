package pprofdecode

import "fmt"

// ParseError is returned for any malformed or truncated pprof input:
// varint overflow, a length-delimited field that overruns the buffer, or a
// wire type that doesn't match the field the schema expects. Decoding is
// fatal on ParseError — callers never receive a partial Profile.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pprofdecode: parse error at offset %d: %s", e.Offset, e.Reason)
}

func newParseError(offset int, format string, args ...any) error {
	return &ParseError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
