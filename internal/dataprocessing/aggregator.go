package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
)

// Aggregator computes recent-period averages: for every (country, indicator)
// group it selects the most recent non-missing yearly observations up to the
// configured window and averages them.
type Aggregator struct {
	logger *slog.Logger
	window int
}

// AggregatorConfig holds configuration options for the Aggregator.
type AggregatorConfig struct {
	// Window is the maximum number of most recent non-missing observations
	// averaged per group.
	Window int
}

// DefaultAggregatorConfig returns the standard five-year recency window.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{Window: 5}
}

// NewAggregator creates a new recency aggregator with the given configuration.
func NewAggregator(logger *slog.Logger, config AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Window <= 0 {
		config.Window = 5
	}

	return &Aggregator{
		logger: logger,
		window: config.Window,
	}
}

// groupKey identifies one aggregation group. Region and the name fields ride
// along in the key so they survive into the output without a second lookup.
type groupKey struct {
	CountryCode   string
	CountryName   string
	IndicatorCode string
	IndicatorName string
	Region        string
	DataSource    string
}

// Aggregate computes one RecentAverage per group with at least one
// non-missing observation. The input is not mutated and the output is sorted
// by (country code, indicator code, data source), so a repeated run over the
// same input yields identical output.
func (a *Aggregator) Aggregate(ctx context.Context, observations []EnrichedObservation) []RecentAverage {
	a.logger.InfoContext(ctx, "aggregating recent averages",
		slog.Int("observations", len(observations)),
		slog.Int("window", a.window))

	groups := make(map[groupKey][]EnrichedObservation)
	var order []groupKey

	for _, obs := range observations {
		if obs.Missing() {
			continue
		}
		key := groupKey{
			CountryCode:   obs.CountryCode,
			CountryName:   obs.CountryName,
			IndicatorCode: obs.IndicatorCode,
			IndicatorName: obs.IndicatorName,
			Region:        obs.Region,
			DataSource:    obs.DataSource,
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], obs)
	}

	averages := make([]RecentAverage, 0, len(order))
	for _, key := range order {
		averages = append(averages, a.summarizeGroup(key, groups[key]))
	}

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].CountryCode != averages[j].CountryCode {
			return averages[i].CountryCode < averages[j].CountryCode
		}
		if averages[i].IndicatorCode != averages[j].IndicatorCode {
			return averages[i].IndicatorCode < averages[j].IndicatorCode
		}
		return averages[i].DataSource < averages[j].DataSource
	})

	a.logger.InfoContext(ctx, "computed recent averages",
		slog.Int("groups", len(averages)))

	return averages
}

// summarizeGroup windows one group's non-missing observations and averages
// them. Records sharing a year keep their input order (stable sort), so the
// cut at the window boundary is deterministic for a fixed input order.
func (a *Aggregator) summarizeGroup(key groupKey, group []EnrichedObservation) RecentAverage {
	recent := make([]EnrichedObservation, len(group))
	copy(recent, group)

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Year > recent[j].Year
	})

	if len(recent) > a.window {
		recent = recent[:a.window]
	}

	sum := 0.0
	earliest, latest := recent[0].Year, recent[0].Year
	for _, obs := range recent {
		sum += *obs.Value
		if obs.Year < earliest {
			earliest = obs.Year
		}
		if obs.Year > latest {
			latest = obs.Year
		}
	}

	return RecentAverage{
		CountryCode:   key.CountryCode,
		CountryName:   key.CountryName,
		IndicatorCode: key.IndicatorCode,
		IndicatorName: key.IndicatorName,
		Region:        key.Region,
		DataSource:    key.DataSource,
		AvgValue:      sum / float64(len(recent)),
		EarliestYear:  earliest,
		LatestYear:    latest,
		NYears:        len(recent),
	}
}
