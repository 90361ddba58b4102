package main

import (
	"encoding/hex"
	"fmt"

	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otquery"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/sfnt"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <font> [tag,...]",
	Short: "Print diagnostics and the table directory of a font",
	Long: `Print diagnostics and the table directory of an OpenType font.

Example:
  ot-tools tables Font.otf head,name`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		otf, err := loadFont(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		family, subfamily := otcodec.FamilyName(otf)
		fmt.Fprintf(out, "Path: %s\n", args[0])
		fmt.Fprintf(out, "Type: %s\n", otquery.FontType(otf))
		fmt.Fprintf(out, "Family: %s\n", family)
		fmt.Fprintf(out, "Subfamily: %s\n", subfamily)
		if version, ok := otquery.FontName(otf, sfnt.NameIDVersion); ok {
			fmt.Fprintf(out, "Version: %s\n", version)
		}
		if metrics, err := otquery.FontMetrics(otf); err == nil {
			fmt.Fprintf(out, "Metrics: upem=%d ascent=%d descent=%d gap=%d glyphs=%d\n",
				metrics.UnitsPerEm, metrics.Ascent, metrics.Descent, metrics.LineGap, metrics.NumGlyphs)
		}
		fmt.Fprintf(out, "Tables (%d):", otf.NumTables)
		for _, tag := range otf.TableTags() {
			fmt.Fprintf(out, " %s", tag)
		}
		fmt.Fprintln(out)
		if len(args) > 1 {
			for _, t := range splitCSVSpace(args[1]) {
				rec, ok := otf.TableRecord(ot.T(t))
				if !ok {
					fmt.Fprintf(out, "table %s: missing\n", t)
					continue
				}
				fmt.Fprintf(out, "table %s: offset=%d size=%d checksum=%08x\n", t, rec.Offset, rec.Length, rec.Checksum)
			}
		}
		errs, warns, crit := otf.Errors(), otf.Warnings(), otf.CriticalErrors()
		fmt.Fprintf(out, "Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))
		if showIssues, _ := cmd.Flags().GetBool("errors"); showIssues {
			for _, e := range errs {
				fmt.Fprintf(out, "error: %s\n", e.Error())
			}
			for _, w := range warns {
				fmt.Fprintf(out, "warning: %s\n", w.String())
			}
		}
		return nil
	},
}

var namesCmd = &cobra.Command{
	Use:   "names <font>",
	Short: "Print the name strings of a font",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		otf, err := loadFont(cmd, args[0])
		if err != nil {
			return err
		}
		for id, value := range otquery.NamesRange(otf) {
			fmt.Fprintf(cmd.OutOrStdout(), "%5d  %s\n", id, value)
		}
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <font> <tag>",
	Short: "Hex dump a table of a font",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		otf, err := loadFont(cmd, args[0])
		if err != nil {
			return err
		}
		data, err := otf.Table(ot.T(args[1]))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), hex.Dump(data.Bytes()))
		return nil
	},
}

func init() {
	tablesCmd.Flags().BoolP("errors", "e", false, "print parse errors and warnings")
	rootCmd.AddCommand(tablesCmd, namesCmd, dumpCmd)
}
