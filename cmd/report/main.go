// Command report runs the indicator trends pipeline once: it loads the four
// World Bank indicator workbooks, reshapes and combines them, computes
// recent-period averages, and writes the report artifacts (HTML summary
// table, CSV exports, two static scatter plots, one animated scatter GIF).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"wbtrends/internal/config"
	"wbtrends/internal/dataprocessing"
	"wbtrends/internal/exporter"
	"wbtrends/internal/files"
	"wbtrends/internal/infrastructure"
	"wbtrends/internal/plotter"
	"wbtrends/internal/reference"
)

func main() {
	dataDir := flag.String("data", "", "directory holding the input workbooks (defaults to data)")
	outDir := flag.String("out", "", "output directory for report artifacts (defaults to out)")
	window := flag.Int("window", 0, "recency window: most recent non-missing years averaged per country/indicator (defaults to 5)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.OutDir = *outDir
	}
	if *window > 0 {
		cfg.Report.Window = *window
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	ctx := context.Background()

	logger.InfoContext(ctx, "starting indicator trends report",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.String("out_dir", cfg.Paths.OutDir),
		slog.Int("window", cfg.Report.Window))

	// Resolve and load the input workbooks.
	discovery := files.NewDiscovery(cfg.Paths.DataDir)
	paths, err := discovery.ResolveInputs(cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Input workbooks missing", "error", err)
		os.Exit(1)
	}

	streams := make([][]dataprocessing.Observation, 0, len(paths))
	for i, path := range paths {
		obs, err := dataprocessing.ParseIndicatorFile(ctx, path, cfg.Inputs[i].Source, logger)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to parse workbook",
				"path", path, "error", err)
			os.Exit(1)
		}
		streams = append(streams, obs)
	}

	// Combine and enrich with the bundled country reference table.
	lookup := reference.DefaultLookup()
	combined := dataprocessing.Combine(lookup, streams...)
	logger.InfoContext(ctx, "combined observation streams",
		slog.Int("streams", len(streams)),
		slog.Int("observations", len(combined)),
		slog.String("reference_table", reference.TableVersion))

	// Compute recent-period averages.
	agg := dataprocessing.NewAggregator(logger, dataprocessing.AggregatorConfig{
		Window: cfg.Report.Window,
	})
	averages := agg.Aggregate(ctx, combined)
	if len(averages) == 0 {
		logger.ErrorContext(ctx, "No aggregatable data found",
			"hint", "check that the workbooks carry non-missing values")
		os.Exit(1)
	}

	// CSV exports.
	csvWriter := exporter.NewCSVWriter(logger)
	if err := csvWriter.WriteCombined(cfg.OutPath(config.CombinedCSVFile), combined); err != nil {
		logger.ErrorContext(ctx, "Failed to write combined CSV", "error", err)
		os.Exit(1)
	}
	if err := csvWriter.WriteAverages(cfg.OutPath(config.AveragesCSVFile), averages); err != nil {
		logger.ErrorContext(ctx, "Failed to write averages CSV", "error", err)
		os.Exit(1)
	}

	// HTML summary table.
	tableWriter := exporter.NewHTMLTableWriter(logger, lookup)
	if err := tableWriter.Write(cfg.OutPath(config.SummaryTableFile), averages); err != nil {
		logger.ErrorContext(ctx, "Failed to write HTML summary table", "error", err)
		os.Exit(1)
	}

	// Pick the plotted axes: the first two non-population inputs.
	xSource, ySource, err := plotAxes(cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Cannot determine plot axes", "error", err)
		os.Exit(1)
	}
	xLabel := indicatorLabel(combined, xSource)
	yLabel := indicatorLabel(combined, ySource)

	plots := plotter.NewPlotter(logger)

	if err := plots.ScatterPNG(cfg.OutPath(config.ScatterLinearFile), averages, plotter.ScatterOptions{
		Title:            "Recent averages: " + xLabel + " vs " + yLabel,
		XSource:          xSource,
		YSource:          ySource,
		PopulationSource: cfg.Report.PopulationIndicator,
		XLabel:           xLabel,
		YLabel:           yLabel,
		LabelTopK:        cfg.Report.LabelTopK,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to render linear scatter plot", "error", err)
		os.Exit(1)
	}

	if err := plots.ScatterPNG(cfg.OutPath(config.ScatterLogFile), averages, plotter.ScatterOptions{
		Title:            "Recent averages (log scale, filtered): " + xLabel + " vs " + yLabel,
		XSource:          xSource,
		YSource:          ySource,
		PopulationSource: cfg.Report.PopulationIndicator,
		XLabel:           xLabel,
		YLabel:           yLabel,
		LogX:             true,
		MinX:             cfg.Report.MinAvgValue,
		LabelTopK:        cfg.Report.LabelTopK,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to render log scatter plot", "error", err)
		os.Exit(1)
	}

	if err := plots.AnimatedGIF(cfg.OutPath(config.AnimatedGIFFile), combined, plotter.AnimationOptions{
		Title:            xLabel + " vs " + yLabel,
		XSource:          xSource,
		YSource:          ySource,
		PopulationSource: cfg.Report.PopulationIndicator,
		XLabel:           xLabel,
		YLabel:           yLabel,
		LogX:             true,
		LabelTopK:        cfg.Report.LabelTopK,
		Frames:           cfg.Report.AnimationFrames,
		FPS:              cfg.Report.AnimationFPS,
		Width:            cfg.Report.AnimationWidth,
		Height:           cfg.Report.AnimationHeight,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to render animated scatter", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "report generated successfully",
		slog.String("table", cfg.OutPath(config.SummaryTableFile)),
		slog.String("animation", cfg.OutPath(config.AnimatedGIFFile)),
		slog.Int("groups", len(averages)))

	printTopAverages(averages, xSource, xLabel)
}

// plotAxes picks the X and Y data sources for the plots: the first two
// configured inputs that are not the population indicator.
func plotAxes(cfg *config.Config) (string, string, error) {
	var axes []string
	for _, in := range cfg.Inputs {
		if in.Source == cfg.Report.PopulationIndicator {
			continue
		}
		axes = append(axes, in.Source)
		if len(axes) == 2 {
			return axes[0], axes[1], nil
		}
	}
	return "", "", fmt.Errorf("need at least two non-population inputs, got %d", len(axes))
}

// indicatorLabel finds a human-readable axis label for a data source,
// falling back to the source code when the workbook carried no name.
func indicatorLabel(observations []dataprocessing.EnrichedObservation, source string) string {
	for _, obs := range observations {
		if obs.DataSource == source && obs.IndicatorName != "" {
			return obs.IndicatorName
		}
	}
	return source
}

// printTopAverages prints the ten largest recent averages of the X indicator
// as a quick plausibility check for the operator.
func printTopAverages(averages []dataprocessing.RecentAverage, source, label string) {
	var subset []dataprocessing.RecentAverage
	for _, avg := range averages {
		if avg.DataSource == source {
			subset = append(subset, avg)
		}
	}
	sort.Slice(subset, func(i, j int) bool {
		return subset[i].AvgValue > subset[j].AvgValue
	})
	if len(subset) > 10 {
		subset = subset[:10]
	}

	fmt.Printf("\n=== TOP 10 BY RECENT AVERAGE: %s ===\n", label)
	fmt.Println("Country                        | Average |     Years | N")
	fmt.Println("-------------------------------|---------|-----------|--")
	for _, avg := range subset {
		fmt.Printf("%-30s | %7.2f | %d–%d | %d\n",
			avg.CountryName, avg.AvgValue, avg.EarliestYear, avg.LatestYear, avg.NYears)
	}
}
