/*
Package otwrite serializes owned font tables into their binary representation.

Tables and their sub-tables form a graph: a table refers to its sub-tables by
offsets, and a sub-table may be shared by several parents. Clients build such a
graph from owned Go values implementing FontWrite and hand its root to Dump.

Dump works in two phases. First, every object writes its own bytes into a
TableWriter; offsets to sub-objects are recorded as placeholders. Objects with
identical bytes and identical offset targets are stored once. Second, the
objects are ordered (parents before children, siblings in declaration order),
laid out back to back, and every placeholder is patched with the distance from
its host to the target. An offset which does not fit its field is reported as
an OffsetOverflowError.

Tables may implement Validate to report structural problems before they are
written; DumpTable validates first and dumps only valid tables.

The owned tables of this package mirror the read-only views of package ot and
can be created from them (see, for example, NameFromRead).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otwrite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otwrite'
func tracer() tracing.Trace {
	return tracing.Select("font.otwrite")
}
