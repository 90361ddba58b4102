package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otquery"
	"github.com/pterm/pterm"
)

func renderFields(fields [][]string) error {
	data := append([][]string{{"Field", "Value"}}, fields...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func headOp(intp *Intp, op *Op) (error, bool) {
	head, err := intp.font.Head()
	if err != nil {
		return err, false
	}
	return renderFields([][]string{
		{"version", head.Version.String()},
		{"fontRevision", head.FontRevision.String()},
		{"checksumAdjustment", fmt.Sprintf("%08x", head.ChecksumAdjustment)},
		{"flags", fmt.Sprintf("%016b", head.Flags)},
		{"unitsPerEm", fmt.Sprintf("%d", head.UnitsPerEm)},
		{"created", head.Created.Time().String()},
		{"modified", head.Modified.Time().String()},
		{"bbox", fmt.Sprintf("%d %d %d %d", head.XMin, head.YMin, head.XMax, head.YMax)},
		{"macStyle", fmt.Sprintf("%016b", head.MacStyle)},
		{"lowestRecPPEM", fmt.Sprintf("%d", head.LowestRecPPEM)},
		{"indexToLocFormat", fmt.Sprintf("%d", head.IndexToLocFormat)},
	}), false
}

func maxpOp(intp *Intp, op *Op) (error, bool) {
	maxp, err := intp.font.Maxp()
	if err != nil {
		return err, false
	}
	fields := [][]string{
		{"version", maxp.Version().String()},
		{"numGlyphs", fmt.Sprintf("%d", maxp.NumGlyphs())},
	}
	if limits, ok := maxp.TrueTypeLimits().Unwrap(); ok {
		fields = append(fields,
			[]string{"maxPoints", fmt.Sprintf("%d", limits.MaxPoints)},
			[]string{"maxContours", fmt.Sprintf("%d", limits.MaxContours)},
			[]string{"maxCompositePoints", fmt.Sprintf("%d", limits.MaxCompositePoints)},
			[]string{"maxCompositeContours", fmt.Sprintf("%d", limits.MaxCompositeContours)},
			[]string{"maxZones", fmt.Sprintf("%d", limits.MaxZones)},
			[]string{"maxStackElements", fmt.Sprintf("%d", limits.MaxStackElements)},
			[]string{"maxComponentDepth", fmt.Sprintf("%d", limits.MaxComponentDepth)},
		)
	}
	return renderFields(fields), false
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	name, err := intp.font.Name()
	if err != nil {
		return err, false
	}
	data := [][]string{{"Platform", "Encoding", "Language", "ID", "Value"}}
	for rec, entry := range name.Entries() {
		value := entry.String()
		if entry.Encoding == ot.EncodingUnknown {
			value = fmt.Sprintf("<%d bytes, unknown encoding>", entry.Data.Len())
		}
		data = append(data, []string{
			fmt.Sprintf("%d", rec.PlatformID),
			fmt.Sprintf("%d", rec.EncodingID),
			fmt.Sprintf("%#04x", rec.LanguageID),
			fmt.Sprintf("%d", rec.NameID),
			value,
		})
	}
	pterm.Printf("name table version %d, family %q\n", name.Version, otquery.FamilyName(intp.font))
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render(), false
}

func postOp(intp *Intp, op *Op) (error, bool) {
	post, err := intp.font.Post()
	if err != nil {
		return err, false
	}
	h := post.Header()
	fields := [][]string{
		{"version", h.Version.String()},
		{"italicAngle", h.ItalicAngle.String()},
		{"underlinePosition", fmt.Sprintf("%d", h.UnderlinePosition)},
		{"underlineThickness", fmt.Sprintf("%d", h.UnderlineThickness)},
		{"isFixedPitch", fmt.Sprintf("%d", h.IsFixedPitch)},
	}
	if n, ok := post.NumGlyphs().Unwrap(); ok {
		fields = append(fields, []string{"numGlyphs", fmt.Sprintf("%d", n)})
	}
	if arg, ok := op.hasArg(); ok {
		gid, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("glyph index not numeric: %v", arg), false
		}
		fields = append(fields, []string{"glyph " + arg, glyphLabel(intp.font, ot.GlyphIndex(gid))})
	}
	return renderFields(fields), false
}

func palettesOp(intp *Intp, op *Op) (error, bool) {
	palettes, err := otquery.Palettes(intp.font)
	if err != nil {
		return err, false
	}
	if len(palettes) == 0 {
		pterm.Println("font has no color palettes")
		return nil, false
	}
	for i, p := range palettes {
		pterm.Printf("palette %d %q (type %d):", i, p.Label, p.Type)
		for _, c := range p.Colors {
			pterm.NewRGB(c.R, c.G, c.B).Printf(" #%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
		}
		pterm.Println()
	}
	return nil, false
}

func axesOp(intp *Intp, op *Op) (error, bool) {
	axes, err := otquery.Axes(intp.font)
	if err != nil {
		return err, false
	}
	if len(axes) == 0 {
		pterm.Println("font has no variation axes")
		return nil, false
	}
	data := [][]string{{"Tag", "Name", "Min", "Default", "Max", "Hidden"}}
	for _, a := range axes {
		data = append(data, []string{a.Tag.String(), a.Name,
			strconv.FormatFloat(a.Min, 'f', -1, 64),
			strconv.FormatFloat(a.Default, 'f', -1, 64),
			strconv.FormatFloat(a.Max, 'f', -1, 64),
			strconv.FormatBool(a.Hidden),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err, false
	}
	instances, err := otquery.NamedInstances(intp.font)
	if err != nil {
		return err, false
	}
	for _, inst := range instances {
		pterm.Printf("instance %q %s %v\n", inst.Subfamily, inst.PostScriptName, inst.Coordinates)
	}
	return nil, false
}

// glyphLabel formats a glyph index together with its name, if known.
func glyphLabel(otf *ot.Font, g ot.GlyphIndex) string {
	if name, ok := otquery.GlyphName(otf, g); ok {
		return fmt.Sprintf("%d (%s)", g, name)
	}
	return fmt.Sprintf("%d", g)
}
