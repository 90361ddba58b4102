/*
Package otcodec reads and writes OpenType font tables.

The work is split across a couple of packages:

▪︎ ot reads tables in place, without copying: every table is a view onto
the font's bytes, resolving offsets lazily and reporting malformed data
as errors.

▪︎ otwrite holds owned, mutable counterparts of the tables. They validate
themselves and are serialized as a graph of sub-tables, sharing identical
sub-tables and computing all offsets.

▪︎ otvar packs and unpacks the compressed number sequences of font
variations.

▪︎ otquery answers everyday questions about a font, such as its names,
metrics, palettes and axes.

This package offers entry points for the most common cases.

# Status

Glyph outlines, character mapping and the layout lookups beyond single
adjustment positioning are not covered.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otcodec

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
