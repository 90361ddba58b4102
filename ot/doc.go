/*
Package ot reads OpenType font tables from their binary representation.

Intended audience for this package are:

▪︎ tools needing the internal structure of an OpenType font file available
without copying it into separate data structures

▪︎ writers of font tables (see sister package `otwrite`), which use `ot` to read
back and verify what they produced

▪︎ any application extending the set of tables understood, by combining the
primitives of this package

Package `ot` keeps the font binary in memory and never copies out of it.
Every table, record and array handed out by this package is a view onto the
original bytes, represented by FontData. Views are cheap to create and are
created per access.

A font file is an untrusted input. Package `ot` will not panic on truncated or
malformed data, but return errors which tell the client which table and field
were broken, and at which byte position. Failures are local: a broken sub-table
does not prevent reading of other, independently addressed parts of a font.

# Building blocks

▪︎ Cursor: sequential big-endian reads over a FontData, which never advance on
failure.

▪︎ Offsets: OpenType records reference each other through offsets relative to the
start of a host table. A zero offset means "no table". Offset16, Offset24 and
Offset32 resolve against the host's FontData, either mandatory (Resolve) or
nullable (ResolveNullable), optionally passing arguments needed to size the
target (ResolveWithArgs).

▪︎ Format dispatch: many tables occur in a variety of formats or versions,
selected by a leading discriminant field. ReadFormat peeks at the discriminant
and selects a variant reader. Accessors for fields a format does not have
return an empty Option.

▪︎ Arrays: Array and ScalarArray are zero-copy views over runs of fixed-size
elements, where the element count is taken from another field, possibly
transformed by Subtract, Add or Half.

# Status

Supports single fonts and font collections (TTC). Tables understood are a subset
needed for naming, color palettes, variation axes and layout commons; other tables
are accessible as raw FontData.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

// Code comments often cite passages from the OpenType specification version 1.9;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
