package otwrite

import (
	"errors"
	"fmt"
	"strings"
)

// Validate is implemented by owned tables which can check their own structure
// before they are written.
type Validate interface {
	Validate(ctx *ValidationCtx)
}

// ValidationCtx tracks the location within a table graph while validating and
// collects the problems found.
type ValidationCtx struct {
	path   []string
	errors []ValidationError
}

// ValidationError is a single problem, with the path to the offending field.
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// InTable runs fn within the scope of a (sub-)table.
func (ctx *ValidationCtx) InTable(name string, fn func(*ValidationCtx)) {
	if len(ctx.path) > 0 {
		name = "/" + name
	}
	ctx.within(name, fn)
}

// InField runs fn within the scope of a field of the current table.
func (ctx *ValidationCtx) InField(name string, fn func(*ValidationCtx)) {
	if len(ctx.path) > 0 {
		name = "." + name
	}
	ctx.within(name, fn)
}

// InArray runs fn within the scope of the i-th element of an array field.
func (ctx *ValidationCtx) InArray(i int, fn func(*ValidationCtx)) {
	ctx.within(fmt.Sprintf("[%d]", i), fn)
}

func (ctx *ValidationCtx) within(elem string, fn func(*ValidationCtx)) {
	ctx.path = append(ctx.path, elem)
	fn(ctx)
	ctx.path = ctx.path[:len(ctx.path)-1]
}

// Report records a problem at the current location.
func (ctx *ValidationCtx) Report(msg string) {
	e := ValidationError{Path: strings.Join(ctx.path, ""), Message: msg}
	tracer().Debugf("validation: %s", e)
	ctx.errors = append(ctx.errors, e)
}

// Reportf records a formatted problem at the current location.
func (ctx *ValidationCtx) Reportf(format string, args ...any) {
	ctx.Report(fmt.Sprintf(format, args...))
}

// CheckArrayLen reports an array which is too long for its count field.
func (ctx *ValidationCtx) CheckArrayLen(field string, n, limit int) {
	if n > limit {
		ctx.InField(field, func(ctx *ValidationCtx) {
			ctx.Reportf("array exceeds max length (%d > %d)", n, limit)
		})
	}
}

// ValidateChild validates obj if it implements Validate.
func ValidateChild(ctx *ValidationCtx, obj any) {
	if v, ok := obj.(Validate); ok {
		v.Validate(ctx)
	}
}

// ValidateArray validates each element of a slice, tracking the index.
func ValidateArray[T any](ctx *ValidationCtx, field string, elems []T) {
	ctx.InField(field, func(ctx *ValidationCtx) {
		for i, e := range elems {
			ctx.InArray(i, func(ctx *ValidationCtx) {
				ValidateChild(ctx, e)
			})
		}
	})
}

// ErrValidation is matched by every ValidationReport.
var ErrValidation = errors.New("validation failed")

// ValidationReport lists all problems found by validating a table.
type ValidationReport struct {
	Errors []ValidationError
}

func (r *ValidationReport) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "validation failed with %d error(s)", len(r.Errors))
	for _, e := range r.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(e.String())
	}
	return sb.String()
}

func (r *ValidationReport) Is(target error) bool {
	return target == ErrValidation
}

// ValidateTable validates obj and returns a *ValidationReport if problems were
// found, nil otherwise.
func ValidateTable(obj any) error {
	ctx := &ValidationCtx{}
	ValidateChild(ctx, obj)
	if len(ctx.errors) == 0 {
		return nil
	}
	return &ValidationReport{Errors: ctx.errors}
}

// DumpTable validates a table and serializes it.
func DumpTable(table FontWrite) ([]byte, error) {
	if err := ValidateTable(table); err != nil {
		return nil, err
	}
	return Dump(table)
}
