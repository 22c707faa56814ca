package plotter

import (
	"fmt"
	"image"
	"image/color/palette"
	stddraw "image/draw"
	"image/gif"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"wbtrends/internal/dataprocessing"
	apperrors "wbtrends/internal/errors"
)

const canvasDPI = 96

// AnimationOptions configures the animated scatter over time.
type AnimationOptions struct {
	Title            string
	XSource          string
	YSource          string
	PopulationSource string
	XLabel           string
	YLabel           string
	LogX             bool
	LabelTopK        int
	// Frames is the fixed number of frames sampled across the observed year
	// span; FPS sets the playback rate; Width and Height are the canvas in
	// pixels.
	Frames int
	FPS    int
	Width  int
	Height int
}

// yearValue is one observed (year, value) pair of a country's series.
type yearValue struct {
	year  int
	value float64
}

// countrySeries carries one country's observed series for the three plotted
// sources, each sorted by year ascending.
type countrySeries struct {
	name   string
	region string
	x, y   []yearValue
	pop    []yearValue
}

// AnimatedGIF renders the combined observations as an animated scatter GIF.
// The observed year span is sampled at a fixed number of evenly spaced
// fractional years; each country's coordinates are linearly interpolated
// between its neighbouring observed years and countries outside their
// observed range drop out of the frame.
func (p *Plotter) AnimatedGIF(path string, observations []dataprocessing.EnrichedObservation, opts AnimationOptions) error {
	series, minYear, maxYear := collectSeries(observations, opts)
	if len(series) == 0 {
		return apperrors.NewValidationError("no plottable series for animation " + path)
	}
	if opts.Frames < 1 || opts.FPS < 1 || opts.Width < 1 || opts.Height < 1 {
		return apperrors.NewValidationError("animation frame, fps and canvas parameters must be positive")
	}

	p.logger.Info("rendering animated scatter",
		slog.String("path", path),
		slog.Int("countries", len(series)),
		slog.Int("frames", opts.Frames),
		slog.Int("year_min", minYear),
		slog.Int("year_max", maxYear))

	xMin, xMax, yMin, yMax := seriesBounds(series, opts.LogX)

	anim := &gif.GIF{}
	delay := 100 / opts.FPS // GIF delays are hundredths of a second

	for i := 0; i < opts.Frames; i++ {
		t := float64(minYear)
		if opts.Frames > 1 {
			t += float64(maxYear-minYear) * float64(i) / float64(opts.Frames-1)
		}

		points := frameAt(series, t, opts.LogX)
		img, err := p.renderFrame(points, t, xMin, xMax, yMin, yMax, opts)
		if err != nil {
			return err
		}

		paletted := image.NewPaletted(img.Bounds(), palette.Plan9)
		stddraw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for animation output", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create animation file", err)
	}
	defer file.Close()

	if err := gif.EncodeAll(file, anim); err != nil {
		return apperrors.NewStorageError("failed to encode animated GIF", err)
	}

	return nil
}

// renderFrame draws one frame onto a pixel canvas and returns its image.
func (p *Plotter) renderFrame(points []scatterPoint, year float64, xMin, xMax, yMin, yMax float64, opts AnimationOptions) (image.Image, error) {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("%s — %.0f", opts.Title, year)
	plt.Title.TextStyle.Font.Size = vg.Points(11)
	plt.X.Label.Text = opts.XLabel
	plt.Y.Label.Text = opts.YLabel
	if opts.LogX {
		plt.X.Scale = plot.LogScale{}
		plt.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	// Axis bounds are fixed across frames so the camera does not jump.
	plt.X.Min, plt.X.Max = xMin, xMax
	plt.Y.Min, plt.Y.Max = yMin, yMax

	if len(points) > 0 {
		if err := addScatterPoints(plt, points, opts.LabelTopK); err != nil {
			return nil, err
		}
	}
	plt.Add(plotter.NewGrid())

	width := vg.Length(opts.Width) / canvasDPI * vg.Inch
	height := vg.Length(opts.Height) / canvasDPI * vg.Inch
	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(canvasDPI))
	plt.Draw(vgdraw.New(canvas))

	return canvas.Image(), nil
}

// collectSeries groups non-missing observations per country and source,
// keeping countries that have a region and at least one observation in each
// of the three plotted series. It also returns the observed year span across
// the X and Y series.
func collectSeries(observations []dataprocessing.EnrichedObservation, opts AnimationOptions) (map[string]*countrySeries, int, int) {
	series := make(map[string]*countrySeries)
	minYear, maxYear := math.MaxInt32, math.MinInt32

	for _, obs := range observations {
		if obs.Missing() || obs.Region == "" {
			continue
		}

		var bucket *[]yearValue
		cs, ok := series[obs.CountryCode]
		if !ok {
			cs = &countrySeries{name: obs.CountryName, region: obs.Region}
			series[obs.CountryCode] = cs
		}
		switch obs.DataSource {
		case opts.XSource:
			bucket = &cs.x
		case opts.YSource:
			bucket = &cs.y
		case opts.PopulationSource:
			bucket = &cs.pop
		default:
			continue
		}

		*bucket = append(*bucket, yearValue{year: obs.Year, value: *obs.Value})
		if obs.DataSource != opts.PopulationSource {
			if obs.Year < minYear {
				minYear = obs.Year
			}
			if obs.Year > maxYear {
				maxYear = obs.Year
			}
		}
	}

	for code, cs := range series {
		if len(cs.x) == 0 || len(cs.y) == 0 || len(cs.pop) == 0 {
			delete(series, code)
			continue
		}
		sortSeries(cs.x)
		sortSeries(cs.y)
		sortSeries(cs.pop)
	}

	if len(series) == 0 || minYear > maxYear {
		return nil, 0, 0
	}
	return series, minYear, maxYear
}

func sortSeries(s []yearValue) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].year < s[j].year })
}

// frameAt interpolates every country's position at fractional year t.
// Countries whose series do not span t are omitted from the frame.
func frameAt(series map[string]*countrySeries, t float64, logX bool) []scatterPoint {
	codes := make([]string, 0, len(series))
	for code := range series {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var points []scatterPoint
	for _, code := range codes {
		cs := series[code]
		x, okX := interpolate(cs.x, t)
		y, okY := interpolate(cs.y, t)
		pop, okPop := interpolate(cs.pop, t)
		if !okX || !okY || !okPop {
			continue
		}
		if logX && x <= 0 {
			continue
		}
		points = append(points, scatterPoint{
			country: cs.name,
			region:  cs.region,
			x:       x,
			y:       y,
			pop:     pop,
		})
	}
	return points
}

// interpolate evaluates a sorted series at fractional year t by linear
// interpolation between the neighbouring observed years. Points outside the
// observed range report not-ok rather than extrapolating.
func interpolate(s []yearValue, t float64) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	first, last := s[0], s[len(s)-1]
	if t < float64(first.year) || t > float64(last.year) {
		return 0, false
	}

	idx := sort.Search(len(s), func(i int) bool { return float64(s[i].year) >= t })
	if idx < len(s) && float64(s[idx].year) == t {
		return s[idx].value, true
	}
	// t lies strictly between s[idx-1] and s[idx]
	lo, hi := s[idx-1], s[idx]
	span := float64(hi.year - lo.year)
	frac := (t - float64(lo.year)) / span
	return lo.value + (hi.value-lo.value)*frac, true
}

// seriesBounds computes global axis bounds over every observed value so all
// frames share the same viewport, padded by five percent.
func seriesBounds(series map[string]*countrySeries, logX bool) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)

	for _, cs := range series {
		for _, yv := range cs.x {
			if logX && yv.value <= 0 {
				continue
			}
			xMin = math.Min(xMin, yv.value)
			xMax = math.Max(xMax, yv.value)
		}
		for _, yv := range cs.y {
			yMin = math.Min(yMin, yv.value)
			yMax = math.Max(yMax, yv.value)
		}
	}

	xPad := (xMax - xMin) * 0.05
	yPad := (yMax - yMin) * 0.05
	if logX {
		// Padding on a log axis is multiplicative; shrinking below the
		// minimum observed positive value is safe.
		xMin *= 0.9
		xMax *= 1.1
	} else {
		xMin -= xPad
		xMax += xPad
	}
	yMin -= yPad
	yMax += yPad
	return xMin, xMax, yMin, yMax
}
