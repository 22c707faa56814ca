package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbtrends/internal/dataprocessing"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteCombined(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "combined.csv")

	observations := []dataprocessing.EnrichedObservation{
		{
			Observation: dataprocessing.Observation{
				CountryCode:   "IRQ",
				CountryName:   "Iraq",
				IndicatorCode: "GC.TAX.IMPT.ZS",
				IndicatorName: "Customs duties (% of tax revenue)",
				Year:          2020,
				Value:         dataprocessing.Float64Ptr(5.456),
				DataSource:    "GC.TAX.IMPT.ZS",
			},
			Region:    "Middle East & North Africa",
			ShortCode: "IQ",
		},
		{
			Observation: dataprocessing.Observation{
				CountryCode:   "IRQ",
				CountryName:   "Iraq",
				IndicatorCode: "GC.TAX.IMPT.ZS",
				IndicatorName: "Customs duties (% of tax revenue)",
				Year:          2021,
				Value:         nil,
				DataSource:    "GC.TAX.IMPT.ZS",
			},
			Region:    "Middle East & North Africa",
			ShortCode: "IQ",
		},
	}

	w := NewCSVWriter(slog.Default())
	require.NoError(t, w.WriteCombined(path, observations))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"CountryCode", "CountryName", "ShortCode", "Region",
		"IndicatorCode", "IndicatorName", "Year", "Value", "DataSource",
	}, records[0])
	assert.Equal(t, "5.46", records[1][7])
	assert.Equal(t, "", records[2][7], "missing values export as empty fields")
	assert.Equal(t, "2021", records[2][6])
}

func TestCSVWriter_WriteAverages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "averages.csv")

	averages := []dataprocessing.RecentAverage{
		{
			CountryCode:   "IRQ",
			CountryName:   "Iraq",
			Region:        "Middle East & North Africa",
			IndicatorCode: "GC.TAX.IMPT.ZS",
			IndicatorName: "Customs duties (% of tax revenue)",
			DataSource:    "GC.TAX.IMPT.ZS",
			AvgValue:      11.666666,
			EarliestYear:  2019,
			LatestYear:    2022,
			NYears:        3,
		},
	}

	w := NewCSVWriter(slog.Default())
	require.NoError(t, w.WriteAverages(path, averages))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "11.67", records[1][6])
	assert.Equal(t, "2019", records[1][7])
	assert.Equal(t, "2022", records[1][8])
	assert.Equal(t, "3", records[1][9])
}

func TestCSVWriter_EmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteAverages(path, nil))

	records := readCSV(t, path)
	assert.Len(t, records, 1, "header only")
}
