package plotter

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"wbtrends/internal/dataprocessing"
	apperrors "wbtrends/internal/errors"
)

// Glyph radius bounds; point area scales with population between them.
const (
	minGlyphRadius = 2.5
	maxGlyphRadius = 14.0
)

// Plotter renders scatter plots from the pipeline's output.
type Plotter struct {
	logger *slog.Logger
}

// NewPlotter creates a new plotter instance
func NewPlotter(logger *slog.Logger) *Plotter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Plotter{logger: logger}
}

// ScatterOptions selects the two plotted indicators and the plot styling.
// Sources are the data-source labels observations were tagged with.
type ScatterOptions struct {
	Title            string
	XSource          string
	YSource          string
	PopulationSource string
	XLabel           string
	YLabel           string
	// LogX switches the X axis to a log-10 scale. Non-positive X values are
	// dropped because they have no position on a log axis.
	LogX bool
	// MinX drops points whose X value is below the threshold (near-zero
	// noise in ratio indicators). Zero disables the filter.
	MinX float64
	// LabelTopK is how many of the most populous countries get text labels.
	LabelTopK int
}

// scatterPoint is one country's position, size and color on a plot.
type scatterPoint struct {
	country   string
	region    string
	x, y, pop float64
}

// ScatterPNG renders recent averages of one indicator against another as a
// static PNG. Records without a region annotation are excluded: the plot is
// colored by region and an unmapped country has no color.
func (p *Plotter) ScatterPNG(path string, averages []dataprocessing.RecentAverage, opts ScatterOptions) error {
	points := collectScatterPoints(averages, opts)
	if len(points) == 0 {
		return apperrors.NewValidationError("no plottable points for scatter plot " + path)
	}

	p.logger.Info("rendering scatter plot",
		slog.String("path", path),
		slog.Int("points", len(points)),
		slog.Bool("log_x", opts.LogX))

	plt := plot.New()
	plt.Title.Text = opts.Title
	plt.Title.TextStyle.Font.Size = vg.Points(14)
	plt.X.Label.Text = opts.XLabel
	plt.Y.Label.Text = opts.YLabel
	if opts.LogX {
		plt.X.Scale = plot.LogScale{}
		plt.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	if err := addScatterPoints(plt, points, opts.LabelTopK); err != nil {
		return err
	}
	addRegionLegend(plt, points)
	plt.Add(plotter.NewGrid())

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for plot output", err)
	}
	if err := plt.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return apperrors.NewStorageError("failed to save scatter plot", err)
	}

	return nil
}

// collectScatterPoints joins the X, Y and population averages per country
// and applies the region, log-axis and threshold filters.
func collectScatterPoints(averages []dataprocessing.RecentAverage, opts ScatterOptions) []scatterPoint {
	type triple struct {
		name      string
		region    string
		x, y, pop *float64
	}
	byCountry := make(map[string]*triple)

	for i := range averages {
		avg := &averages[i]
		t, ok := byCountry[avg.CountryCode]
		if !ok {
			t = &triple{name: avg.CountryName, region: avg.Region}
			byCountry[avg.CountryCode] = t
		}
		switch avg.DataSource {
		case opts.XSource:
			t.x = &avg.AvgValue
		case opts.YSource:
			t.y = &avg.AvgValue
		}
		if avg.DataSource == opts.PopulationSource {
			t.pop = &avg.AvgValue
		}
	}

	codes := make([]string, 0, len(byCountry))
	for code := range byCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var points []scatterPoint
	for _, code := range codes {
		t := byCountry[code]
		if t.x == nil || t.y == nil || t.pop == nil || t.region == "" {
			continue
		}
		if opts.LogX && *t.x <= 0 {
			continue
		}
		if opts.MinX > 0 && *t.x < opts.MinX {
			continue
		}
		points = append(points, scatterPoint{
			country: t.name,
			region:  t.region,
			x:       *t.x,
			y:       *t.y,
			pop:     *t.pop,
		})
	}

	return points
}

// addScatterPoints adds one glyph per country, radius scaled so the glyph
// area tracks population, plus labels for the top-K most populous points.
func addScatterPoints(plt *plot.Plot, points []scatterPoint, labelTopK int) error {
	maxPop := 0.0
	for _, pt := range points {
		if pt.pop > maxPop {
			maxPop = pt.pop
		}
	}

	for _, pt := range points {
		bubble, err := plotter.NewScatter(plotter.XYs{{X: pt.x, Y: pt.y}})
		if err != nil {
			return apperrors.NewStorageError("failed to build scatter point", err)
		}
		bubble.GlyphStyle.Color = colorForRegion(pt.region)
		bubble.GlyphStyle.Radius = glyphRadius(pt.pop, maxPop)
		bubble.GlyphStyle.Shape = draw.CircleGlyph{}
		plt.Add(bubble)
	}

	labeled := topByPopulation(points, labelTopK)
	if len(labeled) > 0 {
		xys := make(plotter.XYs, len(labeled))
		names := make([]string, len(labeled))
		for i, pt := range labeled {
			xys[i] = plotter.XY{X: pt.x, Y: pt.y}
			names[i] = pt.country
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
		if err != nil {
			return apperrors.NewStorageError("failed to build point labels", err)
		}
		plt.Add(labels)
	}

	return nil
}

// addRegionLegend adds one legend entry per region present in the points.
func addRegionLegend(plt *plot.Plot, points []scatterPoint) {
	seen := make(map[string]bool)
	var regions []string
	for _, pt := range points {
		if !seen[pt.region] {
			seen[pt.region] = true
			regions = append(regions, pt.region)
		}
	}
	sort.Strings(regions)

	for _, region := range regions {
		thumb, err := plotter.NewScatter(plotter.XYs{})
		if err != nil {
			continue
		}
		thumb.GlyphStyle.Color = colorForRegion(region)
		thumb.GlyphStyle.Radius = vg.Points(4)
		thumb.GlyphStyle.Shape = draw.CircleGlyph{}
		plt.Legend.Add(region, thumb)
	}
	plt.Legend.Top = true
}

// glyphRadius maps a population onto a glyph radius so that glyph area is
// proportional to population, clamped to the radius bounds.
func glyphRadius(pop, maxPop float64) vg.Length {
	if maxPop <= 0 || pop <= 0 {
		return vg.Points(minGlyphRadius)
	}
	r := minGlyphRadius + (maxGlyphRadius-minGlyphRadius)*math.Sqrt(pop/maxPop)
	return vg.Points(r)
}

// topByPopulation returns the k most populous points.
func topByPopulation(points []scatterPoint, k int) []scatterPoint {
	if k <= 0 || len(points) == 0 {
		return nil
	}
	sorted := make([]scatterPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].pop > sorted[j].pop
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
