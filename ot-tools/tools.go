package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
)

// tracer traces with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "ot-tools",
	Short:   "CLI for OpenType font table diagnostics",
	Version: "v0.1.0",
	Long: `ot-tools reads OpenType fonts, prints their tables and checks
that supported tables survive a read/write round trip unchanged.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("trace")
		return setupTracing(level)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("trace", "T", "Error", "trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().BoolP("testfont", "t", false, "parse font as relaxed test font fixture")
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.opentype": level,
		"trace.font.otwrite":  level,
		"trace.font.otvar":    level,
		"trace.font.otquery":  level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// loadFont loads the font given as a command argument, honoring flag --testfont.
func loadFont(cmd *cobra.Command, path string) (*ot.Font, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("font path is required")
	}
	var opts []ot.ParseOption
	if testfont, _ := cmd.Flags().GetBool("testfont"); testfont {
		opts = append(opts, ot.IsTestfont, ot.RelaxCompleteness)
	}
	otf, err := otcodec.LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded %s with %d tables", path, otf.NumTables)
	return otf, nil
}

func splitCSVSpace(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
