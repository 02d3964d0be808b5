// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fieldplot plots species presence from a survey results
// file.
//
// fieldplot reads a delimited file of survey records with columns
// "state", "year", "species", "samplesize", and "presence", reduces
// them to mean presence per state, year, and species, and writes a
// faceted SVG chart: one panel per state, presence over time per
// species, optionally overlaid with a least-squares trend line.
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/fieldplot/fieldplot/chart"
	"github.com/fieldplot/fieldplot/csvio"
	"github.com/fieldplot/fieldplot/internal/logger"
	"github.com/fieldplot/fieldplot/svgplot"
	"github.com/fieldplot/fieldplot/table"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fieldplot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		flagInput     = flag.StringP("input", "i", "-", "read survey records from `file` (\"-\" for stdin)")
		flagOut       = flag.StringP("output", "o", "-", "write output to `file` (\"-\" for stdout)")
		flagSpecies   = flag.StringSlice("species", nil, "plot only these species (default: all)")
		flagFacet     = flag.String("facet", "state", "facet panels by `column` (\"\" for a single panel)")
		flagFacetCols = flag.Int("facet-cols", 0, "facet panels per row (0 chooses a near-square grid)")
		flagSmooth    = flag.Bool("smooth", false, "overlay a least-squares trend line per species")
		flagTheme     = flag.String("theme", "default", "plot theme: default, minimal, bw, or classic")
		flagTable     = flag.Bool("table", false, "print the derived table instead of plotting")
		flagWidth     = flag.Float64("width", 9, "output width")
		flagHeight    = flag.Float64("height", 6, "output height")
		flagUnit      = flag.String("unit", "in", "width/height unit: in, cm, or px")
		flagDPI       = flag.Float64("dpi", 96, "output resolution in dots per inch")
		flagVerbose   = flag.BoolP("verbose", "v", false, "enable debug logging")
	)
	flag.Parse()

	// Environment overrides for the file flags, so wrapper scripts
	// need not splice arguments.
	if !flag.CommandLine.Changed("input") {
		if v := os.Getenv("FIELDPLOT_INPUT"); v != "" {
			*flagInput = v
		}
	}
	if !flag.CommandLine.Changed("output") {
		if v := os.Getenv("FIELDPLOT_OUTPUT"); v != "" {
			*flagOut = v
		}
	}

	log := logger.New(*flagVerbose)

	tab, err := readInput(*flagInput)
	if err != nil {
		return err
	}
	log.Debug("read survey records", "rows", tab.Len(), "columns", len(tab.Columns()))

	if len(*flagSpecies) > 0 {
		want := make([]interface{}, len(*flagSpecies))
		for i, s := range *flagSpecies {
			want[i] = s
		}
		tab, err = table.Filter(tab, table.In("species", want...))
		if err != nil {
			return err
		}
		log.Debug("filtered species", "species", *flagSpecies, "rows", tab.Len())
	}

	derived, err := derive(tab)
	if err != nil {
		return err
	}
	log.Debug("derived table", "rows", derived.Len())

	out, closeOut, err := output(*flagOut)
	if err != nil {
		return err
	}
	defer closeOut()

	if *flagTable {
		return table.Fprint(out, derived)
	}

	plot := buildPlot(derived, *flagFacet, *flagFacetCols, *flagSmooth, *flagTheme)
	plan, err := plot.Resolve()
	if err != nil {
		return err
	}
	opts := svgplot.Options{Width: *flagWidth, Height: *flagHeight, DPI: *flagDPI}
	switch *flagUnit {
	case "in":
		opts.Unit = svgplot.Inches
	case "cm":
		opts.Unit = svgplot.Centimeters
	case "px":
		opts.Unit = svgplot.Pixels
	default:
		return fmt.Errorf("unknown unit %q", *flagUnit)
	}
	return svgplot.Render(out, plan, opts)
}

// derive reduces raw survey records to mean presence and mean sample
// size per state, year, and species, joined into one table.
func derive(tab *table.Table) (*table.Table, error) {
	grouped, err := table.GroupBy(tab, "state", "year", "species")
	if err != nil {
		return nil, err
	}
	presence, err := table.Summarize(grouped, table.Mean("presence"))
	if err != nil {
		return nil, err
	}
	sizes, err := table.Summarize(grouped, table.Mean("samplesize"))
	if err != nil {
		return nil, err
	}
	return table.Join(presence, sizes, table.JoinSpec{
		Kind: table.LeftJoin,
		On:   []string{"state", "year", "species"},
	})
}

func buildPlot(derived *table.Table, facet string, facetCols int, smooth bool, themeName string) chart.Plot {
	plot := chart.New(derived, chart.Aes{
		chart.X:     "year",
		chart.Y:     "mean presence",
		chart.Color: "species",
	})
	plot = plot.Add(chart.Layer{Geom: chart.GeomPoint, Aes: chart.Aes{chart.Size: "mean samplesize"}})
	plot = plot.Add(chart.Layer{Geom: chart.GeomLine})
	if smooth {
		plot = plot.Add(chart.Layer{Geom: chart.GeomSmooth})
	}
	if facet != "" {
		plot = plot.WithFacet(facet, facetCols)
	}
	switch themeName {
	case "minimal":
		plot = plot.WithTheme(chart.ThemeMinimal())
	case "bw":
		plot = plot.WithTheme(chart.ThemeBW())
	case "classic":
		plot = plot.WithTheme(chart.ThemeClassic())
	}
	return plot
}

func readInput(path string) (*table.Table, error) {
	if path == "-" {
		return csvio.Read(os.Stdin)
	}
	return csvio.ReadFile(path)
}

func output(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
