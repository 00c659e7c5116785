package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/render"
)

var (
	flagRenderFormat string
	flagRenderOut    string
	flagRenderSelect int
	flagRenderLine   bool
	flagRenderBg     string
	flagRenderScale  float64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Export the month's chart as SVG or PNG",
	Long: "Render the category donut (or, with --line, the daily spending line) for the\n" +
		"selected month. --select N shows the tooltip for the Nth largest category.",
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagRenderFormat, "format", "f", "", "svg or png (default from --out extension, else svg)")
	renderCmd.Flags().StringVarP(&flagRenderOut, "out", "o", "", "Output file (default stdout, svg only)")
	renderCmd.Flags().IntVarP(&flagRenderSelect, "select", "s", 0, "Select the Nth segment and draw its tooltip")
	renderCmd.Flags().BoolVar(&flagRenderLine, "line", false, "Render daily spending as a line chart")
	renderCmd.Flags().StringVar(&flagRenderBg, "background", "#100F0F", "Background color, empty for transparent")
	renderCmd.Flags().Float64Var(&flagRenderScale, "scale", 2, "PNG pixels per chart pixel")
	rootCmd.AddCommand(renderCmd)
}

func renderFormat() (string, error) {
	format := strings.ToLower(flagRenderFormat)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(flagRenderOut)), ".")
	}
	switch format {
	case "", "svg":
		return "svg", nil
	case "png":
		if flagRenderOut == "" {
			return "", errors.New("png output needs --out")
		}
		if flagRenderLine {
			return "", errors.New("--line only supports svg")
		}
		return "png", nil
	}
	return "", fmt.Errorf("unknown format %q (want svg or png)", format)
}

func runRender(_ *cobra.Command, _ []string) error {
	format, err := renderFormat()
	if err != nil {
		return err
	}

	ds, cfg, opts, err := loadDataset()
	if err != nil {
		return err
	}
	money := currencyFormatter(cfg)
	_, history := monthTransactions(ds, opts.Month)
	ropts := render.Options{Background: flagRenderBg, Track: "#282726", Scale: flagRenderScale}

	var out io.Writer = os.Stdout
	if flagRenderOut != "" && format == "svg" {
		f, err := os.Create(flagRenderOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagRenderOut, err)
		}
		defer f.Close()
		out = f
	}

	if flagRenderLine {
		since, until := pipeline.MonthRange(opts.Month)
		values := pipeline.DailyValues(pipeline.AggregateDays(history, since, until))
		ll, err := chart.LayoutLine(values, cfg.Chart.Size*2, cfg.Chart.Size, cfg.Chart.TooltipPadding)
		if err != nil {
			return fmt.Errorf("line layout: %w", err)
		}
		return render.WriteLineSVG(out, ll, "blue", ropts)
	}

	donut, err := newDonut(cfg)
	if err != nil {
		return err
	}
	spends := pipeline.CategoryDeltas(history, ds.Categories, opts.Month)
	if err := donut.SetSeries(pipeline.Series(spends)); err != nil {
		return fmt.Errorf("nothing to render for this month: %w", err)
	}

	if flagRenderSelect > 0 {
		if !donut.Select(flagRenderSelect - 1) {
			return fmt.Errorf("--select %d: month has %d categories", flagRenderSelect, len(donut.Segments()))
		}
		seg, _ := donut.Selected()
		box := chart.TooltipBox{Width: cfg.Chart.TooltipWidth, Height: cfg.Chart.TooltipHeight}
		ropts.Tooltip = render.TooltipFor(donut, box, money.FormatCurrency(seg.Value))
	}

	if format == "png" {
		if err := render.WritePNG(flagRenderOut, donut.Segments(), donut.Geometry(), ropts); err != nil {
			return err
		}
	} else if err := render.WriteSVG(out, donut.Segments(), donut.Geometry(), ropts); err != nil {
		return err
	}

	if flagRenderOut != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagRenderOut)
	}
	return nil
}
