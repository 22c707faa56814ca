package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbtrends/internal/reference"
)

func testLookup() reference.Lookup {
	table := map[string]reference.CountryMeta{
		"IRQ": {ShortCode: "IQ", Region: reference.RegionMiddleEastAfrica},
		"JOR": {ShortCode: "JO", Region: reference.RegionMiddleEastAfrica},
	}
	return func(code string) (reference.CountryMeta, bool) {
		meta, ok := table[code]
		return meta, ok
	}
}

func TestCombine_ConcatenatesInInputOrder(t *testing.T) {
	streamA := []Observation{
		{CountryCode: "IRQ", Year: 2020, Value: Float64Ptr(1), DataSource: "A"},
		{CountryCode: "JOR", Year: 2020, Value: Float64Ptr(2), DataSource: "A"},
	}
	streamB := []Observation{
		{CountryCode: "IRQ", Year: 2020, Value: Float64Ptr(3), DataSource: "B"},
	}

	combined := Combine(testLookup(), streamA, streamB)

	require.Len(t, combined, 3)
	assert.Equal(t, "A", combined[0].DataSource)
	assert.Equal(t, "A", combined[1].DataSource)
	assert.Equal(t, "B", combined[2].DataSource)
	assert.Equal(t, "IRQ", combined[0].CountryCode)
	assert.Equal(t, "JOR", combined[1].CountryCode)
}

func TestCombine_EnrichesWithRegionAndShortCode(t *testing.T) {
	combined := Combine(testLookup(), []Observation{
		{CountryCode: "IRQ", Year: 2020, Value: Float64Ptr(1), DataSource: "A"},
	})

	require.Len(t, combined, 1)
	assert.Equal(t, reference.RegionMiddleEastAfrica, combined[0].Region)
	assert.Equal(t, "IQ", combined[0].ShortCode)
}

func TestCombine_UnknownCodeKeptWithEmptyRegion(t *testing.T) {
	combined := Combine(testLookup(), []Observation{
		{CountryCode: "WLD", Year: 2020, Value: Float64Ptr(1), DataSource: "A"},
	})

	require.Len(t, combined, 1, "unknown codes stay in the dataset")
	assert.Empty(t, combined[0].Region)
	assert.Empty(t, combined[0].ShortCode)
}

func TestCombine_PreservesMissingValues(t *testing.T) {
	combined := Combine(testLookup(), []Observation{
		{CountryCode: "IRQ", Year: 2019, Value: nil, DataSource: "A"},
		{CountryCode: "IRQ", Year: 2020, Value: Float64Ptr(4), DataSource: "A"},
	})

	require.Len(t, combined, 2)
	assert.True(t, combined[0].Missing())
	assert.False(t, combined[1].Missing())
}

func TestCombine_EmptyStreams(t *testing.T) {
	assert.Empty(t, Combine(testLookup()))
	assert.Empty(t, Combine(testLookup(), nil, nil))
}
