package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/otcodec/ot"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum"},
	}
	for _, rec := range intp.font.TableRecords() {
		data = append(data, []string{
			rec.Tag.String(),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
			fmt.Sprintf("%08x", rec.Checksum),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render(), false
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	tag, ok := op.hasArg()
	if !ok {
		return errors.New("usage: table <tag>"), false
	}
	data, err := intp.font.Table(ot.T(tag))
	if err != nil {
		return err, false
	}
	intp.tag, intp.table = ot.T(tag), data
	tracer().Infof("setting table: %v", tag)
	return nil, false
}

// subtable returns the data of the current table, starting at the offset
// given as argument. Offsets may be given in decimal or hex notation.
func (intp *Intp) subtable(op *Op) (ot.FontData, error) {
	if err := intp.checkTable(); err != nil {
		return ot.FontData{}, err
	}
	arg, ok := op.hasArg()
	if !ok {
		return ot.FontData{}, fmt.Errorf("usage: %s <offset>", opNames[op.code])
	}
	off, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return ot.FontData{}, fmt.Errorf("offset not numeric: %v", arg)
	}
	data, ok := intp.table.SplitOff(int(off))
	if !ok {
		return ot.FontData{}, fmt.Errorf("offset %d outside of table %s", off, intp.tag)
	}
	return data, nil
}

func coverageOp(intp *Intp, op *Op) (error, bool) {
	data, err := intp.subtable(op)
	if err != nil {
		return err, false
	}
	cov, err := ot.ReadCoverage(data)
	if err != nil {
		return err, false
	}
	rows := [][]string{{"Coverage Index", "Glyph"}}
	n := 0
	for g := range cov.Glyphs() {
		rows = append(rows, []string{fmt.Sprintf("%d", n), glyphLabel(intp.font, g)})
		n++
	}
	pterm.Printf("Coverage format %d covers %d glyphs\n", cov.Format(), n)
	if op.format == "short" {
		return nil, false
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render(), false
}

func classDefOp(intp *Intp, op *Op) (error, bool) {
	data, err := intp.subtable(op)
	if err != nil {
		return err, false
	}
	cd, err := ot.ReadClassDef(data)
	if err != nil {
		return err, false
	}
	rows := [][]string{{"Glyph", "Class"}}
	for g, class := range cd.Classes() {
		rows = append(rows, []string{glyphLabel(intp.font, g), fmt.Sprintf("%d", class)})
	}
	pterm.Printf("ClassDef format %d assigns %d glyphs\n", cd.Format(), len(rows)-1)
	if op.format == "short" {
		return nil, false
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render(), false
}
