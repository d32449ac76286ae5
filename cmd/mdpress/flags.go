package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// extrasFlags holds markdown extras flags.
type extrasFlags struct {
	disable  []string
	tocDepth int
}

// styleFlags holds CSS styling flags.
type styleFlags struct {
	style  string // embedded style name or CSS file path
	extend string // extra CSS file appended after the style
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	watch    bool
	htmlOnly bool
	page     pageFlags
	extras   extrasFlags
	style    styleFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addExtrasFlags adds markdown extras flags to a FlagSet.
func addExtrasFlags(fs *flag.FlagSet, f *extrasFlags) {
	fs.StringSliceVarP(&f.disable, "disable", "d", nil, "extras to skip (query, math, diagrams, ...)")
	fs.IntVar(&f.tocDepth, "toc-depth", 0, "default depth for [TOC] markers (0 = unlimited)")
}

// addStyleFlags adds CSS styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "CSS style name or file path")
	fs.StringVar(&f.extend, "css", "", "CSS file appended after the style")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.watch, "watch", false, "re-convert whenever sources change")
	fs.BoolVar(&f.htmlOnly, "html", false, "output HTML instead of PDF")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addExtrasFlags(fs, &f.extras)
	addStyleFlags(fs, &f.style)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
