package config

// Application constants for the indicator trends reporter
const (
	AppName    = "WB Trends"
	AppVersion = "1.0.0"

	// Optional YAML config file looked up next to the working directory.
	DefaultConfigFile = "config.yaml"

	// Default directories (relative to the working directory)
	DefaultDataDir = "data"
	DefaultOutDir  = "out"
	DefaultLogsDir = "logs"

	// Fixed output artifact names
	SummaryTableFile  = "indicator_summary.html"
	CombinedCSVFile   = "combined_observations.csv"
	AveragesCSVFile   = "recent_averages.csv"
	ScatterLinearFile = "scatter_linear.png"
	ScatterLogFile    = "scatter_log_filtered.png"
	AnimatedGIFFile   = "scatter_over_time.gif"
)

// DefaultInputs returns the four World Bank indicator workbooks the report
// is built from when no config file overrides them.
func DefaultInputs() []InputSpec {
	return []InputSpec{
		{File: "customs_duties_pct_tax.xlsx", Source: "GC.TAX.IMPT.ZS"},
		{File: "tax_revenue_pct_gdp.xlsx", Source: "GC.TAX.TOTL.GD.ZS"},
		{File: "gdp_per_capita_usd.xlsx", Source: "NY.GDP.PCAP.CD"},
		{File: "population_total.xlsx", Source: "SP.POP.TOTL"},
	}
}
