package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"wbtrends/internal/dataprocessing"
	apperrors "wbtrends/internal/errors"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteCombined writes all enriched observations as a long-format CSV.
func (w *CSVWriter) WriteCombined(path string, observations []dataprocessing.EnrichedObservation) error {
	header := []string{
		"CountryCode", "CountryName", "ShortCode", "Region",
		"IndicatorCode", "IndicatorName", "Year", "Value", "DataSource",
	}

	records := make([][]string, 0, len(observations))
	for _, obs := range observations {
		records = append(records, []string{
			obs.CountryCode,
			obs.CountryName,
			obs.ShortCode,
			obs.Region,
			obs.IndicatorCode,
			obs.IndicatorName,
			formatInt(obs.Year),
			formatOptionalFloat(obs.Value),
			obs.DataSource,
		})
	}

	return w.write(path, header, records)
}

// WriteAverages writes the recent averages as a CSV.
func (w *CSVWriter) WriteAverages(path string, averages []dataprocessing.RecentAverage) error {
	header := []string{
		"CountryCode", "CountryName", "Region",
		"IndicatorCode", "IndicatorName", "DataSource",
		"AvgValue", "EarliestYear", "LatestYear", "NYears",
	}

	records := make([][]string, 0, len(averages))
	for _, avg := range averages {
		records = append(records, []string{
			avg.CountryCode,
			avg.CountryName,
			avg.Region,
			avg.IndicatorCode,
			avg.IndicatorName,
			avg.DataSource,
			formatFloat(avg.AvgValue),
			formatInt(avg.EarliestYear),
			formatInt(avg.LatestYear),
			formatInt(avg.NYears),
		})
	}

	return w.write(path, header, records)
}

// write creates the target file (and its directory) and streams header plus
// records through a csv.Writer.
func (w *CSVWriter) write(path string, header []string, records [][]string) error {
	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create CSV file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return apperrors.NewStorageError("failed to write CSV header row", err)
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write CSV record %d", i), err)
		}
	}

	return writer.Error()
}
