package dataprocessing

import (
	"wbtrends/internal/reference"
)

// Combine concatenates the loaded observation streams in input order and
// annotates every observation with region metadata through the injected
// lookup. Observations whose country code has no reference entry keep an
// empty Region and ShortCode; they stay in the dataset and are only filtered
// where a region is actually needed (region-colored plots).
func Combine(lookup reference.Lookup, streams ...[]Observation) []EnrichedObservation {
	total := 0
	for _, stream := range streams {
		total += len(stream)
	}

	combined := make([]EnrichedObservation, 0, total)
	for _, stream := range streams {
		for _, obs := range stream {
			enriched := EnrichedObservation{Observation: obs}
			if meta, ok := lookup(obs.CountryCode); ok {
				enriched.Region = meta.Region
				enriched.ShortCode = meta.ShortCode
			}
			combined = append(combined, enriched)
		}
	}

	return combined
}
