package ot

import (
	"errors"
	"fmt"
)

// --- Read errors -----------------------------------------------------------

// ErrorKind classifies errors occurring while reading font data.
type ErrorKind int

const (
	// OutOfBounds: a read past the end of the data or of a computed range.
	OutOfBounds ErrorKind = iota + 1
	// InvalidFormat: an unknown version or format discriminant.
	InvalidFormat
	// InvalidOffset: an offset pointing into the data, but at something which
	// violates the target's own size or shape constraints.
	InvalidOffset
	// NullOffset: a zero offset where a table is required.
	NullOffset
	// InvalidCollection: a malformed font collection header.
	InvalidCollection
	// MissingTable: a table is not present in the font.
	MissingTable
)

// Sentinels for use with errors.Is.
var (
	ErrOutOfBounds       = errors.New("out of bounds")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrInvalidOffset     = errors.New("invalid offset")
	ErrNullOffset        = errors.New("null offset")
	ErrInvalidCollection = errors.New("invalid font collection")
	ErrMissingTable      = errors.New("missing table")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case OutOfBounds:
		return ErrOutOfBounds
	case InvalidFormat:
		return ErrInvalidFormat
	case InvalidOffset:
		return ErrInvalidOffset
	case NullOffset:
		return ErrNullOffset
	case InvalidCollection:
		return ErrInvalidCollection
	case MissingTable:
		return ErrMissingTable
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown error"
}

// ReadError is returned by all fallible read operations of this package.
// It carries enough context to report precisely where reading failed.
//
// Table and Field are filled in as the error travels upwards through table
// accessors; low level reads leave them empty.
type ReadError struct {
	Kind  ErrorKind
	Table string // table or record name, e.g. "name" or "NameRecord"
	Field string // field name, e.g. "storageOffset"
	Pos   int    // absolute byte position in the font file
	Raw   uint32 // offending raw value: discriminant, offset or count
}

func (e *ReadError) Error() string {
	loc := e.Table
	if e.Field != "" {
		if loc != "" {
			loc += "."
		}
		loc += e.Field
	}
	if loc == "" {
		loc = "font data"
	}
	switch e.Kind {
	case InvalidFormat:
		return fmt.Sprintf("%s at %d: %s %d", loc, e.Pos, e.Kind, e.Raw)
	case InvalidOffset, NullOffset:
		return fmt.Sprintf("%s at %d: %s (%d)", loc, e.Pos, e.Kind, e.Raw)
	}
	return fmt.Sprintf("%s at %d: %s", loc, e.Pos, e.Kind)
}

// Is makes ReadErrors match the sentinel of their kind.
func (e *ReadError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func errOutOfBounds(pos, n int) error {
	return &ReadError{Kind: OutOfBounds, Pos: pos, Raw: uint32(max(n, 0))}
}

func errFormat(table string, pos int, raw uint32) error {
	return &ReadError{Kind: InvalidFormat, Table: table, Pos: pos, Raw: raw}
}

func errOffset(kind ErrorKind, table, field string, pos int, raw uint32) error {
	return &ReadError{Kind: kind, Table: table, Field: field, Pos: pos, Raw: raw}
}

// annotate adds table and field context to a ReadError which does not yet
// carry it. Other errors are returned unchanged.
func annotate(err error, table, field string) error {
	var re *ReadError
	if err == nil || !errors.As(err, &re) {
		return err
	}
	if re.Table != "" && re.Field != "" {
		return err
	}
	e := *re
	if e.Table == "" {
		e.Table = table
	}
	if e.Field == "" {
		e.Field = field
	}
	return &e
}

// --- Font diagnostics ------------------------------------------------------

// ErrorSeverity tells how much of a font is affected by a FontError.
type ErrorSeverity int

const (
	// SeverityCritical marks a required table which is missing or unreadable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor marks an optional table which cannot be read.
	SeverityMajor
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	}
	return "UNKNOWN"
}

// FontError is a problem ParseFont found in a table without rejecting the font.
type FontError struct {
	Table    Tag
	Section  string // the check which failed, e.g. "Read" or "Missing"
	Issue    string
	Severity ErrorSeverity
	Offset   uint32 // position in the font file, 0 if unknown
}

func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// FontWarning flags data which does not hinder reading, e.g. a checksum mismatch.
type FontWarning struct {
	Table  Tag
	Issue  string
	Offset uint32
}

func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// diagnostics collects what ParseFont finds while checking tables.
type diagnostics struct {
	errors   []FontError
	warnings []FontWarning
}

func (d *diagnostics) fail(table Tag, section, issue string, severity ErrorSeverity, offset uint32) {
	d.errors = append(d.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

func (d *diagnostics) warn(table Tag, issue string, offset uint32) {
	d.warnings = append(d.warnings, FontWarning{Table: table, Issue: issue, Offset: offset})
}
