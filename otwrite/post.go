package otwrite

import (
	"fmt"

	"github.com/npillmayer/otcodec/ot"
)

// Post is an owned 'post' table. Versions 1.0, 2.0 and 3.0 can be written;
// GlyphNames are used for version 2.0 only.
type Post struct {
	Header     ot.PostHeader
	GlyphNames []string
}

// PostFromRead converts a 'post' table read from a font. Version 2.5 tables
// are converted to version 2.0.
func PostFromRead(p ot.Post) (*Post, error) {
	post := &Post{Header: p.Header()}
	n, ok := p.NumGlyphs().Unwrap()
	if !ok {
		return post, nil
	}
	post.Header.Version = ot.Version2_0
	post.GlyphNames = make([]string, n)
	for gid := range post.GlyphNames {
		name, ok := p.GlyphName(ot.GlyphIndex(gid))
		if !ok {
			return nil, fmt.Errorf("post: no name for glyph %d", gid)
		}
		post.GlyphNames[gid] = name
	}
	return post, nil
}

func (*Post) TableType() string { return "post" }

var standardNameIndex = func() map[string]uint16 {
	m := make(map[string]uint16, len(ot.StandardMacGlyphNames))
	for i, name := range ot.StandardMacGlyphNames {
		m[name] = uint16(i)
	}
	return m
}()

// nameIndex computes the glyph name index and the custom names to store.
func (p *Post) nameIndex() ([]uint16, []string) {
	index := make([]uint16, len(p.GlyphNames))
	var custom []string
	seen := make(map[string]uint16)
	for gid, name := range p.GlyphNames {
		if inx, ok := standardNameIndex[name]; ok {
			index[gid] = inx
			continue
		}
		inx, ok := seen[name]
		if !ok {
			inx = uint16(len(ot.StandardMacGlyphNames) + len(custom))
			seen[name] = inx
			custom = append(custom, name)
		}
		index[gid] = inx
	}
	return index, custom
}

func (p *Post) Write(w *TableWriter) {
	h := p.Header
	Put(w, h.Version)
	w.WriteFixed(h.ItalicAngle)
	Put(w, h.UnderlinePosition)
	Put(w, h.UnderlineThickness)
	for _, v := range []uint32{h.IsFixedPitch, h.MinMemType42, h.MaxMemType42, h.MinMemType1, h.MaxMemType1} {
		w.WriteU32(v)
	}
	if h.Version != ot.Version2_0 {
		return
	}
	index, custom := p.nameIndex()
	w.WriteU16(uint16(len(index)))
	for _, inx := range index {
		w.WriteU16(inx)
	}
	for _, name := range custom {
		w.WriteU8(uint8(len(name)))
		w.WriteBytes([]byte(name))
	}
}

func (p *Post) Validate(ctx *ValidationCtx) {
	ctx.InTable("post", func(ctx *ValidationCtx) {
		switch p.Header.Version {
		case ot.Version1_0, ot.Version3_0:
			if len(p.GlyphNames) > 0 {
				ctx.InField("glyphNames", func(ctx *ValidationCtx) {
					ctx.Reportf("glyph names require version 2.0, have %s", p.Header.Version)
				})
			}
		case ot.Version2_0:
			ctx.CheckArrayLen("glyphNameIndex", len(p.GlyphNames), 0xffff)
			_, custom := p.nameIndex()
			ctx.CheckArrayLen("stringData", len(custom), 0xffff-len(ot.StandardMacGlyphNames))
			ctx.InField("glyphNames", func(ctx *ValidationCtx) {
				for gid, name := range p.GlyphNames {
					if len(name) > 255 {
						ctx.InArray(gid, func(ctx *ValidationCtx) {
							ctx.Report("name longer than 255 bytes")
						})
					}
				}
			})
		default:
			ctx.InField("version", func(ctx *ValidationCtx) {
				ctx.Reportf("cannot write version %s", p.Header.Version)
			})
		}
	})
}
