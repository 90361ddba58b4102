package otwrite

import (
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestHeadMaxpRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	head := &Head{Head: ot.Head{
		Version:      ot.Version1_0MM,
		FontRevision: 0x00018000,
		UnitsPerEm:   2048,
		XMin:         -100, YMin: -200, XMax: 1000, YMax: 900,
		IndexToLocFormat: 1,
	}}
	b, err := DumpTable(head)
	require.NoError(t, err)
	require.Len(t, b, ot.HeadSize)
	h, err := ot.ReadHead(ot.NewFontData(b))
	require.NoError(t, err)
	require.Equal(t, head.Head, h)
	require.Equal(t, head, HeadFromRead(h))
	//
	head.UnitsPerEm = 8
	require.ErrorIs(t, ValidateTable(head), ErrValidation)
	//
	for _, maxp := range []*Maxp{
		{NumGlyphs: 12},
		{NumGlyphs: 300, Limits: ot.Some(ot.MaxpLimits{MaxPoints: 40, MaxZones: 2})},
	} {
		b, err := DumpTable(maxp)
		require.NoError(t, err)
		m, err := ot.ReadMaxp(ot.NewFontData(b))
		require.NoError(t, err)
		require.Equal(t, maxp, MaxpFromRead(m))
	}
}

func TestPostRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	post := &Post{
		Header: ot.PostHeader{
			Version:           ot.Version2_0,
			ItalicAngle:       -0x000c8000,
			UnderlinePosition: -100,
		},
		GlyphNames: []string{".notdef", "A", "alpha", "alpha", "beta"},
	}
	index, custom := post.nameIndex()
	require.Equal(t, []uint16{0, 36, 258, 258, 259}, index)
	require.Equal(t, []string{"alpha", "beta"}, custom)
	b, err := DumpTable(post)
	require.NoError(t, err)
	require.Len(t, b, ot.PostHeaderSize+2+2*5+6+5)
	p, err := ot.ReadPost(ot.NewFontData(b))
	require.NoError(t, err)
	require.Equal(t, post.Header, p.Header())
	name, ok := p.GlyphName(3)
	require.True(t, ok)
	require.Equal(t, "alpha", name)
	back, err := PostFromRead(p)
	require.NoError(t, err)
	require.Equal(t, post, back)
	//
	v3 := &Post{Header: ot.PostHeader{Version: ot.Version3_0}}
	b, err = DumpTable(v3)
	require.NoError(t, err)
	require.Len(t, b, ot.PostHeaderSize)
}

func TestNameRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	name := &Name{Records: []NameRecord{
		{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x409, NameID: 4, Value: "Grüße"},
		{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x409, NameID: 1, Value: "Grüße"},
		{PlatformID: ot.PlatformMac, EncodingID: 0, LanguageID: 0, NameID: 1, Value: "Café"},
	}}
	b, err := DumpTable(name)
	require.NoError(t, err)
	// header + 3 records, "Grüße" in UTF-16 stored once, "Café" in Mac Roman
	require.Len(t, b, 6+3*12+10+4)
	n, err := ot.ReadName(ot.NewFontData(b))
	require.NoError(t, err)
	require.Equal(t, uint16(0), n.Version)
	require.Equal(t, 3, n.Records.Len())
	first, _ := n.Records.At(0)
	require.Equal(t, ot.PlatformMac, first.PlatformID, "records are sorted")
	var values []string
	for _, entry := range n.Entries() {
		values = append(values, entry.String())
	}
	require.Equal(t, []string{"Café", "Grüße", "Grüße"}, values)
	back, err := NameFromRead(n)
	require.NoError(t, err)
	require.Equal(t, name.Records[2], back.Records[0])
	require.Equal(t, name.Records[1], back.Records[1])
}

func TestNameLangTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	name := &Name{
		Records: []NameRecord{
			{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x8000, NameID: 1, Value: "Schrift"},
		},
		LangTags: []string{"de-CH"},
	}
	b, err := DumpTable(name)
	require.NoError(t, err)
	n, err := ot.ReadName(ot.NewFontData(b))
	require.NoError(t, err)
	require.Equal(t, uint16(1), n.Version)
	tag, ok := n.LangTag(0)
	require.True(t, ok)
	require.Equal(t, "de-CH", tag)
	back, err := NameFromRead(n)
	require.NoError(t, err)
	require.Equal(t, name, back)
}

func TestNameValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	name := &Name{Records: []NameRecord{
		{PlatformID: ot.PlatformMac, NameID: 1, Value: "日本"},
		{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x8001, NameID: 1, Value: "x"},
	}}
	err := ValidateTable(name)
	var report *ValidationReport
	require.ErrorAs(t, err, &report)
	require.Len(t, report.Errors, 2)
	require.Equal(t, "name.nameRecord[0]", report.Errors[0].Path)
	require.Contains(t, report.Errors[0].Message, "MacRoman")
	require.Equal(t, "name.nameRecord[1]", report.Errors[1].Path)
}

func TestCpalRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	red := ot.ColorRecord{Red: 0xff, Alpha: 0xff}
	green := ot.ColorRecord{Green: 0xff, Alpha: 0xff}
	blue := ot.ColorRecord{Blue: 0xff, Alpha: 0x80}
	cpal := &Cpal{
		Version:            1,
		NumPaletteEntries:  2,
		ColorRecordIndices: []uint16{0, 1},
		ColorRecords:       ColorRecords{red, green, blue},
		PaletteTypes:       ot.Some(Scalars[uint32]{ot.PaletteUsableWithDarkBackground, 0}),
		PaletteLabels:      ot.None[Scalars[ot.NameID]](),
		PaletteEntryLabels: ot.Some(Scalars[ot.NameID]{256, ot.NoNameID}),
	}
	b, err := DumpTable(cpal)
	require.NoError(t, err)
	// header 28, colors 12, types 8, entry labels 4
	require.Len(t, b, 28+12+8+4)
	t1, err := ot.ReadCpal(ot.NewFontData(b))
	require.NoError(t, err)
	require.Equal(t, ot.Some[ot.Offset32](0), t1.PaletteLabelsArrayOffset)
	p1, err := t1.Palette(1)
	require.NoError(t, err)
	require.Equal(t, []ot.ColorRecord{green, blue}, p1)
	back, err := CpalFromRead(t1)
	require.NoError(t, err)
	require.Equal(t, cpal, back)
	//
	cpal.ColorRecordIndices = []uint16{0, 2}
	require.ErrorIs(t, ValidateTable(cpal), ErrValidation)
}

func TestFvarRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	fvar := &Fvar{Arrays: &AxisInstanceArrays{
		Axes: []ot.VariationAxisRecord{
			{AxisTag: ot.T("wght"), MinValue: 100 << 16, DefaultValue: 400 << 16, MaxValue: 900 << 16,
				AxisNameID: 256},
			{AxisTag: ot.T("wdth"), MinValue: 50 << 16, DefaultValue: 100 << 16, MaxValue: 100 << 16,
				Flags: ot.HiddenAxis, AxisNameID: 257},
		},
		Instances: []InstanceRecord{
			{SubfamilyNameID: 258, Coordinates: []ot.Fixed{400 << 16, 100 << 16},
				PostScriptNameID: ot.Some[ot.NameID](300)},
			{SubfamilyNameID: 259, Coordinates: []ot.Fixed{700 << 16, 50 << 16},
				PostScriptNameID: ot.Some[ot.NameID](301)},
		},
	}}
	b, err := DumpTable(fvar)
	require.NoError(t, err)
	f, err := ot.ReadFvar(ot.NewFontData(b))
	require.NoError(t, err)
	require.Equal(t, uint16(16), uint16(f.AxesArrayOffset))
	require.Equal(t, uint16(4+4*2+2), f.InstanceSize)
	back, err := FvarFromRead(f)
	require.NoError(t, err)
	require.Equal(t, fvar, back)
	//
	// without PostScript names, the instance size shrinks
	for i := range fvar.Arrays.Instances {
		fvar.Arrays.Instances[i].PostScriptNameID = ot.None[ot.NameID]()
	}
	b, err = DumpTable(fvar)
	require.NoError(t, err)
	f, err = ot.ReadFvar(ot.NewFontData(b))
	require.NoError(t, err)
	require.Equal(t, uint16(12), f.InstanceSize)
}
