package ot

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Code comment often will cite passage from the
// OpenType specification version 1.9;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// ParseOption guides and influences the parsing of the font.
type ParseOption int

const (
	IsTestfont        ParseOption = iota // relaxes a number of cross-checks that are normally enforced
	RelaxCompleteness                    // accept missing required tables
)

// RequiredTables lists the tables a font must contain to be accepted by ParseFont,
// unless option RelaxCompleteness is given.
var RequiredTables = []string{
	"head", "maxp",
}

// Font is a font whose table directory has been checked and whose known tables
// have been read once, to collect problems. Tables are still read lazily
// through the methods of FontRef; Font only adds the diagnostics.
type Font struct {
	*FontRef
	parseErrors   []FontError   // Errors accumulated during parsing
	parseWarnings []FontWarning // Warnings accumulated during parsing
	parseOptions  []ParseOption // Options to guide the parsing process
}

// ParseFont parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after ParseFont returns.
// Its elements are assumed immutable while the ot.Font remains in use.
//
// A broken table directory is an error. Problems with individual tables are
// collected and reported through Errors and Warnings.
func ParseFont(font []byte, opts ...ParseOption) (*Font, error) {
	ref, err := NewFontRef(font)
	if err != nil {
		return nil, err
	}
	otf := &Font{FontRef: ref, parseOptions: opts}
	diag := &diagnostics{}
	if err := checkDirectory(ref, diag); err != nil {
		return nil, err
	}
	relaxed := otf.hasOption(RelaxCompleteness) || otf.hasOption(IsTestfont)
	for _, tag := range RequiredTables {
		if _, ok := ref.TableRecord(T(tag)); ok {
			continue
		}
		if !relaxed {
			return nil, errFontFormat("missing required table " + tag)
		}
		diag.fail(T(tag), "Missing", "missing required table", SeverityCritical, 0)
	}
	checkTables(ref, diag)
	otf.parseErrors = diag.errors
	otf.parseWarnings = diag.warnings
	return otf, nil
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

// checkDirectory enforces tag order, alignment and table bounds.
func checkDirectory(ref *FontRef, diag *diagnostics) error {
	prevTag := Tag(0)
	for i, rec := range ref.TableRecords() {
		if i > 0 && rec.Tag <= prevTag {
			return errFontFormat("table order")
		}
		prevTag = rec.Tag
		if rec.Offset&3 != 0 { // "all tables must begin on four byte boundaries"
			return errFontFormat("invalid table offset")
		}
		end, err := checkedAddUint32(rec.Offset, rec.Length)
		if err != nil || int(end) > ref.data.Len() {
			return errFontFormat(fmt.Sprintf("table %s: bounds exceed font size %d", rec.Tag, ref.data.Len()))
		}
		if sum := TableChecksum(ref.data.bytes[rec.Offset:end]); sum != rec.Checksum && rec.Tag != T("head") {
			diag.warn(rec.Tag, fmt.Sprintf("checksum mismatch: %08x != %08x", sum, rec.Checksum), rec.Offset)
		}
	}
	return nil
}

// checkTables reads every table this package understands once and records
// those which fail to read.
func checkTables(ref *FontRef, diag *diagnostics) {
	check := func(tag string, err error) {
		if err == nil || errors.Is(err, ErrMissingTable) {
			return
		}
		tracer().Errorf("table %s: %v", tag, err)
		var re *ReadError
		offset := uint32(0)
		if errors.As(err, &re) {
			offset = uint32(max(re.Pos, 0))
		}
		severity := SeverityMajor
		if slices.Contains(RequiredTables, tag) {
			severity = SeverityCritical
		}
		diag.fail(T(tag), "Read", err.Error(), severity, offset)
	}
	_, err := ref.Head()
	check("head", err)
	_, err = ref.Maxp()
	check("maxp", err)
	_, err = ref.Hhea()
	check("hhea", err)
	_, err = ref.Post()
	check("post", err)
	_, err = ref.Name()
	check("name", err)
	_, err = ref.Cpal()
	check("CPAL", err)
	_, err = ref.Fvar()
	check("fvar", err)
}

func (otf *Font) hasOption(opt ParseOption) bool {
	for _, o := range otf.parseOptions {
		if o == opt {
			return true
		}
	}
	return false
}

// Errors returns the problems found in tables which ParseFont could not read,
// including required tables missing from a relaxed parse.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns findings which do not hinder reading.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// CriticalErrors returns the errors concerning required tables.
func (otf *Font) CriticalErrors() []FontError {
	critical := []FontError{}
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			critical = append(critical, err)
		}
	}
	return critical
}

func (otf *Font) HasCriticalErrors() bool {
	return slices.ContainsFunc(otf.parseErrors, func(e FontError) bool {
		return e.Severity == SeverityCritical
	})
}

// TableChecksum computes the checksum of a table as stored in the table
// directory: the sum of its uint32 words, the last one padded with zeros.
func TableChecksum(b []byte) uint32 {
	var sum uint32
	for len(b) >= 4 {
		sum += u32(b)
		b = b[4:]
	}
	if len(b) > 0 {
		var tail [4]byte
		copy(tail[:], b)
		sum += u32(tail[:])
	}
	return sum
}
