// Package exporter writes the pipeline's report artifacts: the combined
// long-format CSV, the recent-averages CSV, and the HTML summary table.
// It is pure presentation; all numbers arrive already computed.
package exporter
