package dataprocessing

// Observation is one (country, indicator, year) data point reshaped out of a
// wide-format World Bank spreadsheet. Value is nil when the source cell is
// blank or a missing-value placeholder. Observations are never mutated after
// the loader produces them.
type Observation struct {
	CountryCode   string
	CountryName   string
	IndicatorCode string
	IndicatorName string
	Year          int
	Value         *float64
	DataSource    string
}

// Missing reports whether the observation carries no usable value.
func (o Observation) Missing() bool {
	return o.Value == nil
}

// EnrichedObservation is an Observation annotated with region metadata from
// the country reference table. Region and ShortCode are empty when the
// country code has no reference entry.
type EnrichedObservation struct {
	Observation
	Region    string
	ShortCode string
}

// RecentAverage is the terminal artifact of the pipeline: the arithmetic
// mean of the most recent non-missing observations for one (country,
// indicator) group, together with the year span actually averaged.
type RecentAverage struct {
	CountryCode   string
	CountryName   string
	IndicatorCode string
	IndicatorName string
	Region        string
	DataSource    string
	AvgValue      float64
	EarliestYear  int
	LatestYear    int
	NYears        int
}

// Float64Ptr returns a pointer to v. Convenience for building observations
// in callers and tests.
func Float64Ptr(v float64) *float64 {
	return &v
}
