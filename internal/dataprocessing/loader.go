package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "wbtrends/internal/errors"
)

// The four fixed leading columns of a wide World Bank indicator sheet, in
// the order they appear before the year columns.
const (
	colCountryName   = "country name"
	colCountryCode   = "country code"
	colIndicatorName = "indicator name"
	colIndicatorCode = "indicator code"
)

// ParseIndicatorFile reads one wide-format World Bank indicator workbook and
// reshapes it into long-format observations, one per (country, year) cell.
// Every observation is tagged with the given data-source label. Blank cells
// and the ".." placeholder become missing values; any other cell that does
// not parse as a number is a fatal parse error.
func ParseIndicatorFile(ctx context.Context, filePath, source string, logger *slog.Logger) ([]Observation, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", filePath), err)
	}
	defer f.Close()

	rows, sheetName, err := dataSheetRows(f)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "parsing indicator workbook",
		slog.String("path", filePath),
		slog.String("sheet", sheetName),
		slog.String("source", source),
		slog.Int("total_rows", len(rows)))

	headerRow, columnMap, yearCols, err := mapColumns(rows)
	if err != nil {
		return nil, err
	}

	var observations []Observation
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]

		code := cellAt(row, columnMap[colCountryCode])
		if code == "" {
			continue // trailing blank or footnote row
		}

		name := cellAt(row, columnMap[colCountryName])
		indicatorName := cellAt(row, columnMap[colIndicatorName])
		indicatorCode := cellAt(row, columnMap[colIndicatorCode])

		for _, yc := range yearCols {
			value, err := parseCellValue(cellAt(row, yc.col))
			if err != nil {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("non-numeric value in %s row %d year %d", filePath, i+1, yc.year), err)
			}
			observations = append(observations, Observation{
				CountryCode:   code,
				CountryName:   name,
				IndicatorCode: indicatorCode,
				IndicatorName: indicatorName,
				Year:          yc.year,
				Value:         value,
				DataSource:    source,
			})
		}
	}

	logger.InfoContext(ctx, "reshaped workbook to long format",
		slog.String("source", source),
		slog.Int("observations", len(observations)),
		slog.Int("year_columns", len(yearCols)))

	return observations, nil
}

// dataSheetRows picks the sheet carrying the indicator matrix: a sheet named
// "Data" when present, otherwise the first sheet whose leading rows contain
// the fixed country columns.
func dataSheetRows(f *excelize.File) ([][]string, string, error) {
	if rows, err := f.GetRows("Data"); err == nil && len(rows) > 0 {
		return rows, "Data", nil
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		limit := len(rows)
		if limit > 8 {
			limit = 8
		}
		for _, row := range rows[:limit] {
			rowText := strings.ToLower(strings.Join(row, " "))
			if strings.Contains(rowText, colCountryName) && strings.Contains(rowText, colCountryCode) {
				return rows, name, nil
			}
		}
	}

	return nil, "", apperrors.NewParsingError("could not find indicator data sheet in workbook", nil)
}

// yearColumn pairs a parsed year with its column index.
type yearColumn struct {
	col  int
	year int
}

// mapColumns locates the header row past the fixed metadata rows and maps
// the four leading columns by name. Every remaining non-empty header must
// parse as a year, tolerating decorations like "2019 [YR2019]".
func mapColumns(rows [][]string) (int, map[string]int, []yearColumn, error) {
	headerRow := -1
	columnMap := make(map[string]int)

	// The World Bank layout carries a fixed number of metadata rows before
	// the header, but tolerate the header sitting a little deeper.
	searchLimit := len(rows)
	if searchLimit > 10 {
		searchLimit = 10
	}

	for i := 0; i < searchLimit; i++ {
		rowText := strings.ToLower(strings.Join(rows[i], " "))
		if strings.Contains(rowText, colCountryName) && strings.Contains(rowText, colCountryCode) {
			headerRow = i
			break
		}
	}
	if headerRow == -1 {
		return 0, nil, nil, apperrors.NewParsingError("could not find header row in indicator sheet", nil)
	}

	var yearCols []yearColumn
	for j, header := range rows[headerRow] {
		headerLower := strings.ToLower(strings.TrimSpace(header))
		switch headerLower {
		case "":
			continue
		case colCountryName, colCountryCode, colIndicatorName, colIndicatorCode:
			columnMap[headerLower] = j
		default:
			year, err := parseYearHeader(header)
			if err != nil {
				return 0, nil, nil, err
			}
			yearCols = append(yearCols, yearColumn{col: j, year: year})
		}
	}

	for _, required := range []string{colCountryName, colCountryCode, colIndicatorName, colIndicatorCode} {
		if _, ok := columnMap[required]; !ok {
			return 0, nil, nil, apperrors.NewParsingError(
				fmt.Sprintf("could not find required column: %s", required), nil)
		}
	}
	if len(yearCols) == 0 {
		return 0, nil, nil, apperrors.NewParsingError("indicator sheet has no year columns", nil)
	}

	return headerRow, columnMap, yearCols, nil
}

// parseYearHeader extracts the integer year from a column header, tolerating
// surrounding non-numeric characters ("2019 [YR2019]" parses as 2019).
func parseYearHeader(header string) (int, error) {
	trimmed := strings.TrimSpace(header)

	digits := strings.Builder{}
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			continue
		}
		if digits.Len() > 0 {
			break
		}
	}
	if digits.Len() < 4 {
		return 0, apperrors.NewParsingError(
			fmt.Sprintf("malformed year column header %q", header), nil)
	}

	year, err := strconv.Atoi(digits.String()[:4])
	if err != nil {
		return 0, apperrors.NewParsingError(
			fmt.Sprintf("malformed year column header %q", header), err)
	}
	return year, nil
}

// parseCellValue turns a cell into a value pointer. Blank cells and the ".."
// placeholder used by World Bank extracts are missing values; anything else
// must parse as a float.
func parseCellValue(cell string) (*float64, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" || trimmed == ".." {
		return nil, nil
	}

	val, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

// cellAt returns the trimmed cell at index idx, or "" when the row is short.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
