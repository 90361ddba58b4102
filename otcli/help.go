package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "table", "tables":
		pterm.Info.Println("tables / table:<tag>")
		pterm.Println(`
	'tables' lists the table directory of the font:
	+-----+--------+--------+----------+
	| Tag | Offset | Length | Checksum |
	+-----+--------+--------+----------+
	Offsets are relative to the start of the font file.

	'table:GPOS' (or 'table GPOS') selects a table. Commands taking an
	offset, like 'coverage', resolve it relative to the start of the
	selected table.
	`)
	case "coverage", "classdef":
		pterm.Info.Println("coverage:<offset> / classdef:<offset>")
		pterm.Println(`
	Reads a Coverage or ClassDef table at an offset within the selected table
	and lists its glyphs. Offsets may be decimal or hex ('coverage:0x1a').
	Format 'short' prints a summary only: 'coverage:0x1a:short'.

	Coverage format 1 lists glyphs, format 2 lists glyph ranges:
	+------------+----------+---------------------------+
	| startGlyph | endGlyph | coverage index of start   |
	+------------+----------+---------------------------+
	`)
	case "names", "post", "head", "maxp":
		pterm.Info.Println("head / maxp / names / post:<glyph>")
		pterm.Println(`
	Print the fields of a table. 'post:<glyph>' additionally looks up the
	name of a glyph.
	`)
	case "palettes", "axes":
		pterm.Info.Println("palettes / axes")
		pterm.Println(`
	'palettes' prints the color palettes of table CPAL.
	'axes' prints the variation axes and named instances of table fvar.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Printf("\t%s\n", strings.Join(opNames, ", "))
		pterm.Println("\tSteps may be chained: 'table:GPOS coverage:0x1a'. Use 'help:<command>' for details.")
	}
}
