/*
Package otvar encodes and decodes the packed number formats of font variations:
packed deltas and packed point numbers.

Both formats store a sequence of numbers as runs. Each run starts with a
control byte holding the run length and the width of the values in the run.
Encoders in this package split a sequence into runs greedily, left to right.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otvar

import (
	"errors"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otvar'
func tracer() tracing.Trace {
	return tracing.Select("font.otvar")
}

// annotate names the location of a failed read.
func annotate(err error, table, field string) error {
	var re *ot.ReadError
	if err == nil || !errors.As(err, &re) {
		return err
	}
	e := *re
	e.Table, e.Field = table, field
	return &e
}
