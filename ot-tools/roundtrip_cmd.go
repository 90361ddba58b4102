package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otwrite"
	"github.com/spf13/cobra"
)

// converters turn a table read from a font into its owned counterpart.
var converters = map[ot.Tag]func(*ot.Font) (otwrite.FontWrite, error){
	ot.T("head"): func(otf *ot.Font) (otwrite.FontWrite, error) {
		t, err := otf.Head()
		return otwrite.HeadFromRead(t), err
	},
	ot.T("hhea"): func(otf *ot.Font) (otwrite.FontWrite, error) {
		t, err := otf.Hhea()
		return otwrite.HheaFromRead(t), err
	},
	ot.T("maxp"): func(otf *ot.Font) (otwrite.FontWrite, error) {
		t, err := otf.Maxp()
		if err != nil {
			return nil, err
		}
		return otwrite.MaxpFromRead(t), nil
	},
	ot.T("post"): func(otf *ot.Font) (otwrite.FontWrite, error) {
		t, err := otf.Post()
		if err != nil {
			return nil, err
		}
		return otwrite.PostFromRead(t)
	},
	ot.T("name"): func(otf *ot.Font) (otwrite.FontWrite, error) {
		t, err := otf.Name()
		if err != nil {
			return nil, err
		}
		return otwrite.NameFromRead(t)
	},
	ot.T("CPAL"): func(otf *ot.Font) (otwrite.FontWrite, error) {
		t, err := otf.Cpal()
		if err != nil {
			return nil, err
		}
		return otwrite.CpalFromRead(t)
	},
	ot.T("fvar"): func(otf *ot.Font) (otwrite.FontWrite, error) {
		t, err := otf.Fvar()
		if err != nil {
			return nil, err
		}
		return otwrite.FvarFromRead(t)
	},
}

// tableResult is the outcome of round-tripping a single table.
type tableResult struct {
	Tag       ot.Tag
	Supported bool
	Err       error
	Identical bool
	FirstDiff int // -1 if identical
	OrigSize  int
	NewSize   int
}

func (r tableResult) String() string {
	switch {
	case !r.Supported:
		return fmt.Sprintf("%s: copied (%d bytes)", r.Tag, r.OrigSize)
	case r.Err != nil:
		return fmt.Sprintf("%s: error: %v", r.Tag, r.Err)
	case r.Identical:
		return fmt.Sprintf("%s: identical (%d bytes)", r.Tag, r.OrigSize)
	}
	return fmt.Sprintf("%s: differs at byte %d (%d -> %d bytes)", r.Tag, r.FirstDiff, r.OrigSize, r.NewSize)
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// roundTrip converts all supported tables of a font to owned tables, writes
// them and compares the result to the original table data. It returns a
// builder for a font holding the rewritten tables, with unsupported tables
// copied verbatim.
func roundTrip(ctx context.Context, otf *ot.Font, concurrency int) ([]tableResult, *otwrite.FontBuilder, error) {
	owned := make(map[ot.Tag]otwrite.FontWrite)
	results := make([]tableResult, 0, otf.NumTables)
	builder := otwrite.NewFontBuilder(otwrite.WithSfntVersion(otf.SfntVersion), otwrite.WithConcurrency(concurrency))
	for _, tag := range otf.TableTags() {
		data, _ := otf.TableData(tag)
		res := tableResult{Tag: tag, OrigSize: data.Len(), FirstDiff: -1}
		convert, ok := converters[tag]
		if !ok {
			builder.AddRaw(tag, data.Bytes())
			results = append(results, res)
			continue
		}
		res.Supported = true
		table, err := convert(otf)
		if err != nil {
			res.Err = err
			builder.AddRaw(tag, data.Bytes())
		} else {
			owned[tag] = table
			builder.Add(tag, table)
		}
		results = append(results, res)
	}
	written, err := otwrite.DumpAll(ctx, owned, concurrency)
	if err != nil {
		return results, nil, err
	}
	for i, res := range results {
		b, ok := written[res.Tag]
		if !ok {
			continue
		}
		orig, _ := otf.TableData(res.Tag)
		res.NewSize = len(b)
		res.FirstDiff = firstDiff(orig.Bytes(), b)
		res.Identical = res.FirstDiff < 0
		results[i] = res
	}
	return results, builder, nil
}

var errRoundTrip = errors.New("round trip changed tables")

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <font>",
	Short: "Read, rewrite and compare the supported tables of a font",
	Long: `Read the supported tables of a font into owned tables, write them
again and compare the output to the original bytes.

Example:
  ot-tools roundtrip Font.otf -o rewritten.otf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		otf, err := loadFont(cmd, args[0])
		if err != nil {
			return err
		}
		concurrency, _ := cmd.Flags().GetInt("jobs")
		results, builder, err := roundTrip(cmd.Context(), otf, concurrency)
		if err != nil {
			return err
		}
		changed := 0
		for _, res := range results {
			fmt.Fprintln(cmd.OutOrStdout(), res)
			if res.Supported && !res.Identical {
				changed++
			}
		}
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			b, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(b))
		}
		if changed > 0 {
			return fmt.Errorf("%w: %d of %d", errRoundTrip, changed, len(results))
		}
		return nil
	},
}

func init() {
	roundtripCmd.Flags().StringP("output", "o", "", "write the rebuilt font to this file")
	roundtripCmd.Flags().IntP("jobs", "j", 0, "number of tables to write in parallel (0: GOMAXPROCS)")
	rootCmd.AddCommand(roundtripCmd)
}
