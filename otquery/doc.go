/*
Package otquery answers questions about a font: its names, metrics, color
palettes and variation axes.

Queries work on an *ot.Font and decode only the tables they need. Missing
optional tables are not an error; queries return empty results for them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otquery'
func tracer() tracing.Trace {
	return tracing.Select("font.otquery")
}
