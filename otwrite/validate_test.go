package otwrite

import (
	"errors"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestValidationPaths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	fvar := &Fvar{Arrays: &AxisInstanceArrays{
		Axes: []ot.VariationAxisRecord{
			{AxisTag: ot.T("wght"), MinValue: 100 << 16, DefaultValue: 400 << 16, MaxValue: 900 << 16},
			{AxisTag: ot.T("wdth"), MinValue: 100 << 16, DefaultValue: 50 << 16, MaxValue: 200 << 16},
		},
		Instances: []InstanceRecord{
			{SubfamilyNameID: 258, Coordinates: []ot.Fixed{400 << 16, 100 << 16}},
			{SubfamilyNameID: 259, Coordinates: []ot.Fixed{700 << 16}},
		},
	}}
	err := ValidateTable(fvar)
	require.ErrorIs(t, err, ErrValidation)
	var report *ValidationReport
	require.True(t, errors.As(err, &report))
	require.Len(t, report.Errors, 2)
	require.Equal(t, "fvar.axes[1]", report.Errors[0].Path)
	require.Equal(t, "fvar.instances[1]", report.Errors[1].Path)
	require.Equal(t, "has 1 coordinates for 2 axes", report.Errors[1].Message)
	require.Contains(t, err.Error(), "validation failed with 2 error(s)")
	//
	_, err = DumpTable(fvar)
	require.ErrorIs(t, err, ErrValidation)
}

func TestNestedValidationPaths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	sp := &SinglePosFormat2{
		Coverage: &CoverageFormat1{Glyphs: []ot.GlyphIndex{5, 3}},
		Values: []ValueRecord{
			{XAdvance: ot.Some[int16](10)},
			{XAdvDevice: ot.Some[Device](&DeviceTable{StartSize: 12})},
		},
	}
	err := ValidateTable(sp)
	var report *ValidationReport
	require.True(t, errors.As(err, &report))
	require.Len(t, report.Errors, 2)
	require.Equal(t, "SinglePos.coverage/Coverage.glyphArray[1]: glyph 3 not in ascending order",
		report.Errors[0].String())
	require.Equal(t, "SinglePos.valueRecords[1]/Device.deltaValue: no deltas",
		report.Errors[1].String())
}

func TestArrayLengthLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	post := &Post{Header: ot.PostHeader{Version: ot.Version2_0}, GlyphNames: make([]string, 0x10000)}
	err := ValidateTable(post)
	var report *ValidationReport
	require.True(t, errors.As(err, &report))
	require.Equal(t, "post.glyphNameIndex: array exceeds max length (65536 > 65535)",
		report.Errors[0].String())
	//
	require.NoError(t, ValidateTable(&Post{Header: ot.PostHeader{Version: ot.Version3_0}}))
	require.Error(t, ValidateTable(&Post{Header: ot.PostHeader{Version: ot.Version3_0},
		GlyphNames: []string{"A"}}))
	require.Error(t, ValidateTable(&Post{Header: ot.PostHeader{Version: ot.Version2_5}}))
}
