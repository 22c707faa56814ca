// Package dataprocessing implements the analytical pipeline of the indicator
// trends reporter: reshaping wide World Bank spreadsheets into long-format
// observations, combining and enriching the four indicator streams, and
// computing recent-period averages.
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Excel files → Loader → Observations → Combiner → EnrichedObservations → Aggregator → RecentAverages
//
// Basic usage:
//
//	obs, err := dataprocessing.ParseIndicatorFile(ctx, "population_total.xlsx", "SP.POP.TOTL", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enriched := dataprocessing.Combine(reference.DefaultLookup(), obs)
//	agg := dataprocessing.NewAggregator(logger, dataprocessing.DefaultAggregatorConfig())
//	averages := agg.Aggregate(ctx, enriched)
//
// Each stage consumes an immutable snapshot produced by its predecessor; the
// pipeline is single-threaded and runs once per invocation.
package dataprocessing
