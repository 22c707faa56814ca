package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(country, indicator string, year int, value *float64) EnrichedObservation {
	return EnrichedObservation{
		Observation: Observation{
			CountryCode:   country,
			CountryName:   country + " name",
			IndicatorCode: indicator,
			IndicatorName: indicator + " name",
			Year:          year,
			Value:         value,
			DataSource:    indicator,
		},
		Region: "Test Region",
	}
}

func TestNewAggregator(t *testing.T) {
	tests := []struct {
		name       string
		logger     *slog.Logger
		config     AggregatorConfig
		wantWindow int
	}{
		{
			name:       "default config",
			logger:     slog.Default(),
			config:     DefaultAggregatorConfig(),
			wantWindow: 5,
		},
		{
			name:       "custom window",
			logger:     slog.Default(),
			config:     AggregatorConfig{Window: 2},
			wantWindow: 2,
		},
		{
			name:       "zero window falls back to default",
			logger:     slog.Default(),
			config:     AggregatorConfig{Window: 0},
			wantWindow: 5,
		},
		{
			name:       "nil logger uses default",
			logger:     nil,
			config:     DefaultAggregatorConfig(),
			wantWindow: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(tt.logger, tt.config)

			assert.NotNil(t, agg)
			assert.Equal(t, tt.wantWindow, agg.window)
			assert.NotNil(t, agg.logger)
		})
	}
}

func TestAggregator_Aggregate_RecencyWindow(t *testing.T) {
	ctx := context.Background()

	// One group: 2019=5, 2020=10, 2021=missing, 2022=20.
	group := []EnrichedObservation{
		obs("IRQ", "TAX", 2019, Float64Ptr(5)),
		obs("IRQ", "TAX", 2020, Float64Ptr(10)),
		obs("IRQ", "TAX", 2021, nil),
		obs("IRQ", "TAX", 2022, Float64Ptr(20)),
	}

	tests := []struct {
		name         string
		window       int
		wantAvg      float64
		wantEarliest int
		wantLatest   int
		wantNYears   int
	}{
		{
			name:         "window larger than data averages all non-missing",
			window:       5,
			wantAvg:      35.0 / 3.0,
			wantEarliest: 2019,
			wantLatest:   2022,
			wantNYears:   3,
		},
		{
			name:         "window of two takes the two most recent non-missing",
			window:       2,
			wantAvg:      15,
			wantEarliest: 2020,
			wantLatest:   2022,
			wantNYears:   2,
		},
		{
			name:         "window of one takes only the latest",
			window:       1,
			wantAvg:      20,
			wantEarliest: 2022,
			wantLatest:   2022,
			wantNYears:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(slog.Default(), AggregatorConfig{Window: tt.window})
			averages := agg.Aggregate(ctx, group)

			require.Len(t, averages, 1)
			got := averages[0]
			assert.InDelta(t, tt.wantAvg, got.AvgValue, 1e-9)
			assert.Equal(t, tt.wantEarliest, got.EarliestYear)
			assert.Equal(t, tt.wantLatest, got.LatestYear)
			assert.Equal(t, tt.wantNYears, got.NYears)
			assert.LessOrEqual(t, got.EarliestYear, got.LatestYear)
		})
	}
}

func TestAggregator_Aggregate_AllMissingGroupDropped(t *testing.T) {
	agg := NewAggregator(slog.Default(), DefaultAggregatorConfig())

	averages := agg.Aggregate(context.Background(), []EnrichedObservation{
		obs("IRQ", "TAX", 2020, nil),
		obs("IRQ", "TAX", 2021, nil),
		obs("JOR", "TAX", 2021, Float64Ptr(7)),
	})

	require.Len(t, averages, 1)
	assert.Equal(t, "JOR", averages[0].CountryCode)
}

func TestAggregator_Aggregate_SingleObservation(t *testing.T) {
	agg := NewAggregator(slog.Default(), DefaultAggregatorConfig())

	averages := agg.Aggregate(context.Background(), []EnrichedObservation{
		obs("IRQ", "TAX", 2018, Float64Ptr(42.5)),
	})

	require.Len(t, averages, 1)
	got := averages[0]
	assert.Equal(t, 42.5, got.AvgValue)
	assert.Equal(t, 2018, got.EarliestYear)
	assert.Equal(t, 2018, got.LatestYear)
	assert.Equal(t, 1, got.NYears)
}

func TestAggregator_Aggregate_EmptyInput(t *testing.T) {
	agg := NewAggregator(slog.Default(), DefaultAggregatorConfig())

	averages := agg.Aggregate(context.Background(), nil)

	assert.Empty(t, averages)
}

func TestAggregator_Aggregate_GroupsAreIndependent(t *testing.T) {
	agg := NewAggregator(slog.Default(), AggregatorConfig{Window: 2})

	averages := agg.Aggregate(context.Background(), []EnrichedObservation{
		obs("IRQ", "TAX", 2020, Float64Ptr(10)),
		obs("IRQ", "POP", 2020, Float64Ptr(40_000_000)),
		obs("JOR", "TAX", 2020, Float64Ptr(30)),
		obs("IRQ", "TAX", 2021, Float64Ptr(20)),
	})

	require.Len(t, averages, 3)

	// Output is sorted by (country code, indicator code, data source).
	assert.Equal(t, "IRQ", averages[0].CountryCode)
	assert.Equal(t, "POP", averages[0].IndicatorCode)
	assert.Equal(t, "IRQ", averages[1].CountryCode)
	assert.Equal(t, "TAX", averages[1].IndicatorCode)
	assert.Equal(t, 15.0, averages[1].AvgValue)
	assert.Equal(t, "JOR", averages[2].CountryCode)
	assert.Equal(t, 30.0, averages[2].AvgValue)
}

func TestAggregator_Aggregate_NYearsNeverExceedsWindow(t *testing.T) {
	agg := NewAggregator(slog.Default(), AggregatorConfig{Window: 3})

	var group []EnrichedObservation
	for year := 2000; year <= 2022; year++ {
		group = append(group, obs("IRQ", "TAX", year, Float64Ptr(float64(year))))
	}

	averages := agg.Aggregate(context.Background(), group)

	require.Len(t, averages, 1)
	got := averages[0]
	assert.Equal(t, 3, got.NYears)
	assert.Equal(t, 2022, got.LatestYear)
	assert.Equal(t, 2020, got.EarliestYear)
	assert.InDelta(t, 2021.0, got.AvgValue, 1e-9)
}

func TestAggregator_Aggregate_DuplicateYearsAreStable(t *testing.T) {
	// Two records share 2021. With a window of two, the most recent year
	// (2022) is always included and the 2021 slot must go to the record
	// that appeared first in the input, every run.
	group := []EnrichedObservation{
		obs("IRQ", "TAX", 2021, Float64Ptr(100)),
		obs("IRQ", "TAX", 2021, Float64Ptr(900)),
		obs("IRQ", "TAX", 2022, Float64Ptr(50)),
	}

	agg := NewAggregator(slog.Default(), AggregatorConfig{Window: 2})

	first := agg.Aggregate(context.Background(), group)
	require.Len(t, first, 1)
	assert.InDelta(t, 75.0, first[0].AvgValue, 1e-9) // (50+100)/2, not (50+900)/2

	for i := 0; i < 10; i++ {
		again := agg.Aggregate(context.Background(), group)
		require.Len(t, again, 1)
		assert.Equal(t, first[0], again[0])
	}
}

func TestAggregator_Aggregate_Idempotent(t *testing.T) {
	input := []EnrichedObservation{
		obs("IRQ", "TAX", 2019, Float64Ptr(5)),
		obs("IRQ", "TAX", 2020, Float64Ptr(10)),
		obs("JOR", "TAX", 2021, nil),
		obs("JOR", "POP", 2021, Float64Ptr(11_000_000)),
		obs("EGY", "TAX", 2018, Float64Ptr(3)),
	}
	snapshot := make([]EnrichedObservation, len(input))
	copy(snapshot, input)

	agg := NewAggregator(slog.Default(), DefaultAggregatorConfig())

	first := agg.Aggregate(context.Background(), input)
	second := agg.Aggregate(context.Background(), input)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, input, "input must not be mutated")
}

func TestAggregator_Aggregate_KeepsRegionAndSource(t *testing.T) {
	in := obs("IRQ", "TAX", 2020, Float64Ptr(10))
	in.Region = "Middle East & North Africa"

	agg := NewAggregator(slog.Default(), DefaultAggregatorConfig())
	averages := agg.Aggregate(context.Background(), []EnrichedObservation{in})

	require.Len(t, averages, 1)
	assert.Equal(t, "Middle East & North Africa", averages[0].Region)
	assert.Equal(t, "TAX", averages[0].DataSource)
	assert.Equal(t, "IRQ name", averages[0].CountryName)
	assert.Equal(t, "TAX name", averages[0].IndicatorName)
}
