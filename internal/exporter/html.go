package exporter

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"wbtrends/internal/dataprocessing"
	apperrors "wbtrends/internal/errors"
	"wbtrends/internal/reference"
)

// HTMLTableWriter renders the recent averages as a pivoted summary table:
// one row per country, one column per indicator. The injected lookup supplies
// the alpha-2 code behind each country's flag icon.
type HTMLTableWriter struct {
	logger *slog.Logger
	lookup reference.Lookup
}

// NewHTMLTableWriter creates a new HTML table writer instance
func NewHTMLTableWriter(logger *slog.Logger, lookup reference.Lookup) *HTMLTableWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if lookup == nil {
		lookup = reference.DefaultLookup()
	}
	return &HTMLTableWriter{logger: logger, lookup: lookup}
}

type tableColumn struct {
	Code string
	Name string
}

type tableCell struct {
	Present bool
	Value   string
	Title   string
}

type tableRow struct {
	Flag    string
	Country string
	Region  string
	Cells   []tableCell
}

type tableView struct {
	Title   string
	Columns []tableColumn
	Rows    []tableRow
}

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.35rem 0.7rem; text-align: right; }
th { background: #f2f2f2; }
td.name, th.name { text-align: left; white-space: nowrap; }
td.region { text-align: left; color: #666; }
tr:nth-child(even) { background: #fafafa; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead>
<tr>
<th class="name">Country</th>
<th class="name">Region</th>
{{- range .Columns}}
<th>{{.Name}}</th>
{{- end}}
</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>
<td class="name">{{.Flag}} {{.Country}}</td>
<td class="region">{{.Region}}</td>
{{- range .Cells}}
{{- if .Present}}
<td title="{{.Title}}">{{.Value}}</td>
{{- else}}
<td>&mdash;</td>
{{- end}}
{{- end}}
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// Write pivots the averages and renders the summary table to path.
func (w *HTMLTableWriter) Write(path string, averages []dataprocessing.RecentAverage) error {
	view := w.buildTableView(averages)

	w.logger.Info("writing HTML summary table",
		slog.String("path", path),
		slog.Int("countries", len(view.Rows)),
		slog.Int("indicators", len(view.Columns)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for HTML output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create HTML summary file", err)
	}
	defer file.Close()

	if err := summaryTemplate.Execute(file, view); err != nil {
		return apperrors.NewStorageError("failed to render HTML summary table", err)
	}

	return nil
}

// buildTableView pivots per-(country, indicator) averages into rows per
// country with one cell per indicator column, both in sorted order.
func (w *HTMLTableWriter) buildTableView(averages []dataprocessing.RecentAverage) tableView {
	columnNames := make(map[string]string)
	type countryInfo struct {
		name   string
		region string
	}
	countryData := make(map[string]map[string]dataprocessing.RecentAverage)
	countryMeta := make(map[string]countryInfo)

	for _, avg := range averages {
		if _, ok := columnNames[avg.IndicatorCode]; !ok {
			columnNames[avg.IndicatorCode] = avg.IndicatorName
		}
		if _, ok := countryData[avg.CountryCode]; !ok {
			countryData[avg.CountryCode] = make(map[string]dataprocessing.RecentAverage)
			countryMeta[avg.CountryCode] = countryInfo{
				name:   avg.CountryName,
				region: avg.Region,
			}
		}
		countryData[avg.CountryCode][avg.IndicatorCode] = avg
	}

	columns := make([]tableColumn, 0, len(columnNames))
	for code, name := range columnNames {
		if name == "" {
			name = code
		}
		columns = append(columns, tableColumn{Code: code, Name: name})
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Code < columns[j].Code })

	codes := make([]string, 0, len(countryData))
	for code := range countryData {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return countryMeta[codes[i]].name < countryMeta[codes[j]].name
	})

	rows := make([]tableRow, 0, len(codes))
	for _, code := range codes {
		meta := countryMeta[code]
		flag := ""
		if m, ok := w.lookup(code); ok {
			flag = flagEmoji(m.ShortCode)
		}
		row := tableRow{
			Flag:    flag,
			Country: meta.name,
			Region:  meta.region,
			Cells:   make([]tableCell, 0, len(columns)),
		}
		for _, col := range columns {
			avg, ok := countryData[code][col.Code]
			if !ok {
				row.Cells = append(row.Cells, tableCell{})
				continue
			}
			row.Cells = append(row.Cells, tableCell{
				Present: true,
				Value:   formatFloat(avg.AvgValue),
				Title: fmt.Sprintf("%d–%d, %d yrs",
					avg.EarliestYear, avg.LatestYear, avg.NYears),
			})
		}
		rows = append(rows, row)
	}

	return tableView{
		Title:   "Recent indicator averages by country",
		Columns: columns,
		Rows:    rows,
	}
}
