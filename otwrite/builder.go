package otwrite

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/bits"
	"runtime"
	"slices"
	"sync"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/sync/errgroup"
)

// DumpAll validates and serializes independent tables concurrently, with one
// writer per table. At most limit tables are dumped at the same time; a limit
// ≤ 0 means one per CPU. The first error cancels the remaining work.
func DumpAll(ctx context.Context, tables map[ot.Tag]FontWrite, limit int) (map[ot.Tag][]byte, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	var mu sync.Mutex
	out := make(map[ot.Tag][]byte, len(tables))
	for tag, table := range tables {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			b, err := DumpTable(table)
			if err != nil {
				return fmt.Errorf("table %s: %w", tag, err)
			}
			tracer().Debugf("dumped table %s, %d bytes", tag, len(b))
			mu.Lock()
			out[tag] = b
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Font builder ----------------------------------------------------------

// checksumMagic is the value the checksum of a whole font file adds up to.
const checksumMagic uint32 = 0xB1B0AFBA

// BuilderOption configures a FontBuilder.
type BuilderOption func(*FontBuilder)

// WithSfntVersion sets the sfnt version of the font file. The default is
// TrueType outlines, 0x00010000.
func WithSfntVersion(v uint32) BuilderOption {
	return func(b *FontBuilder) {
		b.sfntVersion = v
	}
}

// WithConcurrency limits the number of tables serialized in parallel.
func WithConcurrency(n int) BuilderOption {
	return func(b *FontBuilder) {
		b.concurrency = n
	}
}

// FontBuilder assembles tables into a font file.
type FontBuilder struct {
	sfntVersion uint32
	concurrency int
	tables      map[ot.Tag]FontWrite
	raw         map[ot.Tag][]byte
}

// NewFontBuilder creates an empty font builder.
func NewFontBuilder(opts ...BuilderOption) *FontBuilder {
	b := &FontBuilder{
		sfntVersion: ot.TrueTypeSfnt,
		tables:      make(map[ot.Tag]FontWrite),
		raw:         make(map[ot.Tag][]byte),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add adds an owned table, replacing any table with the same tag.
func (b *FontBuilder) Add(tag ot.Tag, table FontWrite) *FontBuilder {
	delete(b.raw, tag)
	b.tables[tag] = table
	return b
}

// AddRaw adds a table which is already serialized.
func (b *FontBuilder) AddRaw(tag ot.Tag, data []byte) *FontBuilder {
	delete(b.tables, tag)
	b.raw[tag] = data
	return b
}

// Build serializes all tables and assembles the font file: a table directory
// sorted by tag, tables aligned to four bytes, table checksums, and the
// checksum adjustment of 'head'.
func (b *FontBuilder) Build(ctx context.Context) ([]byte, error) {
	dumped, err := DumpAll(ctx, b.tables, b.concurrency)
	if err != nil {
		return nil, err
	}
	for tag, data := range b.raw {
		dumped[tag] = data
	}
	tags := make([]ot.Tag, 0, len(dumped))
	for tag := range dumped {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	numTables := len(tags)
	if numTables > 0xffff {
		return nil, fmt.Errorf("otwrite: %d tables exceed the table directory", numTables)
	}
	font := b.header(numTables)
	dirStart := len(font)
	font = append(font, make([]byte, 16*numTables)...)
	headPos := -1
	for i, tag := range tags {
		data := dumped[tag]
		pos := len(font)
		font = append(font, data...)
		if tag == ot.T("head") && len(data) >= 12 {
			headPos = pos
			binary.BigEndian.PutUint32(font[pos+8:], 0)
		}
		rec := font[dirStart+16*i:]
		binary.BigEndian.PutUint32(rec, uint32(tag))
		binary.BigEndian.PutUint32(rec[4:], ot.TableChecksum(font[pos:]))
		binary.BigEndian.PutUint32(rec[8:], uint32(pos))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(data)))
		for len(font)%4 != 0 {
			font = append(font, 0)
		}
	}
	if headPos >= 0 {
		adjustment := checksumMagic - ot.TableChecksum(font)
		binary.BigEndian.PutUint32(font[headPos+8:], adjustment)
	}
	tracer().Infof("built font with %d tables, %d bytes", numTables, len(font))
	return font, nil
}

// header creates the 12-byte offset table.
func (b *FontBuilder) header(numTables int) []byte {
	var entrySelector, searchRange int
	if numTables > 0 {
		entrySelector = bits.Len(uint(numTables)) - 1
		searchRange = 16 << entrySelector
	}
	rangeShift := 16*numTables - searchRange
	h := binary.BigEndian.AppendUint32(nil, b.sfntVersion)
	h = binary.BigEndian.AppendUint16(h, uint16(numTables))
	h = binary.BigEndian.AppendUint16(h, uint16(searchRange))
	h = binary.BigEndian.AppendUint16(h, uint16(entrySelector))
	h = binary.BigEndian.AppendUint16(h, uint16(rangeShift))
	return h
}
