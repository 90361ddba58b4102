package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otvar"
	"github.com/spf13/cobra"
)

// parseNumbers parses comma or space separated numbers within lo … hi.
func parseNumbers(raw []string, lo, hi int64) ([]int64, error) {
	var values []int64
	for _, arg := range raw {
		for _, s := range splitCSVSpace(arg) {
			v, err := strconv.ParseInt(s, 0, 32)
			if err != nil {
				return nil, err
			}
			if v < lo || v > hi {
				return nil, fmt.Errorf("%d out of range %d…%d", v, lo, hi)
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func printDeltas(out io.Writer, deltas []int16) error {
	packed := otvar.NewPackedDeltas(deltas)
	b, err := packed.Encode()
	if err != nil {
		return err
	}
	for run := range packed.Runs() {
		fmt.Fprintf(out, "%-6s flag=%#02x count=%-3d %v\n", run.Kind, run.Flag(), run.Count, run.Values)
	}
	fmt.Fprintf(out, "%d deltas packed into %d bytes: %s\n", len(deltas), len(b), hex.EncodeToString(b))
	return nil
}

func printPoints(out io.Writer, points []uint16) error {
	packed := otvar.NewPackedPointNumbers(points)
	b, err := packed.Encode()
	if err != nil {
		return err
	}
	for run := range packed.Runs() {
		fmt.Fprintf(out, "words=%-5t flag=%#02x after=%-5d %v\n", run.AreWords, run.Flag(), run.LastPoint, run.Points)
	}
	fmt.Fprintf(out, "%d points packed into %d bytes: %s\n", len(points), len(b), hex.EncodeToString(b))
	return nil
}

func decodePacked(out io.Writer, raw string, points bool, count int) error {
	b, err := hex.DecodeString(strings.Join(strings.Fields(raw), ""))
	if err != nil {
		return err
	}
	data := ot.NewFontData(b)
	if points {
		pts, isAll, n, err := otvar.DecodePoints(data, count)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d bytes, all=%t: %v\n", n, isAll, pts)
		return nil
	}
	deltas, n, err := otvar.DecodeDeltas(data, count)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d bytes: %v\n", n, deltas)
	return nil
}

var deltasCmd = &cobra.Command{
	Use:   "deltas <v,v,...>",
	Short: "Pack deltas or point numbers and show the runs",
	Long: `Pack a sequence of deltas (or, with --points, point numbers) and
show the resulting runs and bytes. With --decode, the argument is hex input
to unpack instead.

Example:
  ot-tools deltas 0,0,0,0,2,3,-300
  ot-tools deltas --points 1,5,9,300
  ot-tools deltas --decode 030a97001403001e`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, _ := cmd.Flags().GetBool("points")
		out := cmd.OutOrStdout()
		if decode, _ := cmd.Flags().GetBool("decode"); decode {
			count, _ := cmd.Flags().GetInt("count")
			return decodePacked(out, strings.Join(args, ""), points, count)
		}
		if points {
			values, err := parseNumbers(args, 0, math.MaxUint16)
			if err != nil {
				return err
			}
			pts := make([]uint16, len(values))
			for i, v := range values {
				pts[i] = uint16(v)
			}
			return printPoints(out, pts)
		}
		values, err := parseNumbers(args, math.MinInt16, math.MaxInt16)
		if err != nil {
			return err
		}
		deltas := make([]int16, len(values))
		for i, v := range values {
			deltas[i] = int16(v)
		}
		return printDeltas(out, deltas)
	},
}

func init() {
	deltasCmd.Flags().BoolP("points", "p", false, "values are point numbers")
	deltasCmd.Flags().BoolP("decode", "d", false, "unpack hex input")
	deltasCmd.Flags().IntP("count", "c", -1, "number of deltas or points to unpack (-1: all)")
	rootCmd.AddCommand(deltasCmd)
}
