// Package reference provides the static country-code reference table used to
// enrich observations with a geographic region and a 2-letter country code.
//
// The table is versioned and external to the data pipeline: components take a
// Lookup function rather than reaching for the table directly, so tests can
// substitute a fixture mapping.
package reference

// TableVersion identifies the bundled snapshot of the country reference data.
const TableVersion = "wdi-2024-04"

// CountryMeta is the metadata attached to a country code by the reference
// table: the ISO 3166-1 alpha-2 code and the World Bank region grouping.
type CountryMeta struct {
	ShortCode string
	Region    string
}

// Lookup maps a 3-letter country code to its reference metadata. The second
// return value is false when the code has no entry (aggregates like "WLD",
// retired codes, typos).
type Lookup func(code string) (CountryMeta, bool)

// World Bank region groupings used by the bundled table.
const (
	RegionEastAsiaPacific   = "East Asia & Pacific"
	RegionEuropeCentralAsia = "Europe & Central Asia"
	RegionLatinAmerica      = "Latin America & Caribbean"
	RegionMiddleEastAfrica  = "Middle East & North Africa"
	RegionNorthAmerica      = "North America"
	RegionSouthAsia         = "South Asia"
	RegionSubSaharanAfrica  = "Sub-Saharan Africa"
)

// countries is the bundled alpha-3 → metadata snapshot. Aggregate rows that
// appear in World Bank downloads (income groups, regional totals) are
// deliberately absent so they fall out of region-colored plots.
var countries = map[string]CountryMeta{
	"AFG": {"AF", RegionSouthAsia},
	"AGO": {"AO", RegionSubSaharanAfrica},
	"ALB": {"AL", RegionEuropeCentralAsia},
	"ARE": {"AE", RegionMiddleEastAfrica},
	"ARG": {"AR", RegionLatinAmerica},
	"ARM": {"AM", RegionEuropeCentralAsia},
	"AUS": {"AU", RegionEastAsiaPacific},
	"AUT": {"AT", RegionEuropeCentralAsia},
	"AZE": {"AZ", RegionEuropeCentralAsia},
	"BGD": {"BD", RegionSouthAsia},
	"BEL": {"BE", RegionEuropeCentralAsia},
	"BEN": {"BJ", RegionSubSaharanAfrica},
	"BFA": {"BF", RegionSubSaharanAfrica},
	"BGR": {"BG", RegionEuropeCentralAsia},
	"BHR": {"BH", RegionMiddleEastAfrica},
	"BIH": {"BA", RegionEuropeCentralAsia},
	"BLR": {"BY", RegionEuropeCentralAsia},
	"BOL": {"BO", RegionLatinAmerica},
	"BRA": {"BR", RegionLatinAmerica},
	"BWA": {"BW", RegionSubSaharanAfrica},
	"CAN": {"CA", RegionNorthAmerica},
	"CHE": {"CH", RegionEuropeCentralAsia},
	"CHL": {"CL", RegionLatinAmerica},
	"CHN": {"CN", RegionEastAsiaPacific},
	"CIV": {"CI", RegionSubSaharanAfrica},
	"CMR": {"CM", RegionSubSaharanAfrica},
	"COD": {"CD", RegionSubSaharanAfrica},
	"COL": {"CO", RegionLatinAmerica},
	"CRI": {"CR", RegionLatinAmerica},
	"CUB": {"CU", RegionLatinAmerica},
	"CZE": {"CZ", RegionEuropeCentralAsia},
	"DEU": {"DE", RegionEuropeCentralAsia},
	"DNK": {"DK", RegionEuropeCentralAsia},
	"DOM": {"DO", RegionLatinAmerica},
	"DZA": {"DZ", RegionMiddleEastAfrica},
	"ECU": {"EC", RegionLatinAmerica},
	"EGY": {"EG", RegionMiddleEastAfrica},
	"ESP": {"ES", RegionEuropeCentralAsia},
	"EST": {"EE", RegionEuropeCentralAsia},
	"ETH": {"ET", RegionSubSaharanAfrica},
	"FIN": {"FI", RegionEuropeCentralAsia},
	"FRA": {"FR", RegionEuropeCentralAsia},
	"GBR": {"GB", RegionEuropeCentralAsia},
	"GEO": {"GE", RegionEuropeCentralAsia},
	"GHA": {"GH", RegionSubSaharanAfrica},
	"GIN": {"GN", RegionSubSaharanAfrica},
	"GRC": {"GR", RegionEuropeCentralAsia},
	"GTM": {"GT", RegionLatinAmerica},
	"HND": {"HN", RegionLatinAmerica},
	"HRV": {"HR", RegionEuropeCentralAsia},
	"HTI": {"HT", RegionLatinAmerica},
	"HUN": {"HU", RegionEuropeCentralAsia},
	"IDN": {"ID", RegionEastAsiaPacific},
	"IND": {"IN", RegionSouthAsia},
	"IRL": {"IE", RegionEuropeCentralAsia},
	"IRN": {"IR", RegionMiddleEastAfrica},
	"IRQ": {"IQ", RegionMiddleEastAfrica},
	"ISR": {"IL", RegionMiddleEastAfrica},
	"ITA": {"IT", RegionEuropeCentralAsia},
	"JAM": {"JM", RegionLatinAmerica},
	"JOR": {"JO", RegionMiddleEastAfrica},
	"JPN": {"JP", RegionEastAsiaPacific},
	"KAZ": {"KZ", RegionEuropeCentralAsia},
	"KEN": {"KE", RegionSubSaharanAfrica},
	"KGZ": {"KG", RegionEuropeCentralAsia},
	"KHM": {"KH", RegionEastAsiaPacific},
	"KOR": {"KR", RegionEastAsiaPacific},
	"KWT": {"KW", RegionMiddleEastAfrica},
	"LAO": {"LA", RegionEastAsiaPacific},
	"LBN": {"LB", RegionMiddleEastAfrica},
	"LKA": {"LK", RegionSouthAsia},
	"LTU": {"LT", RegionEuropeCentralAsia},
	"LUX": {"LU", RegionEuropeCentralAsia},
	"LVA": {"LV", RegionEuropeCentralAsia},
	"MAR": {"MA", RegionMiddleEastAfrica},
	"MDA": {"MD", RegionEuropeCentralAsia},
	"MDG": {"MG", RegionSubSaharanAfrica},
	"MEX": {"MX", RegionLatinAmerica},
	"MKD": {"MK", RegionEuropeCentralAsia},
	"MLI": {"ML", RegionSubSaharanAfrica},
	"MMR": {"MM", RegionEastAsiaPacific},
	"MNG": {"MN", RegionEastAsiaPacific},
	"MOZ": {"MZ", RegionSubSaharanAfrica},
	"MWI": {"MW", RegionSubSaharanAfrica},
	"MYS": {"MY", RegionEastAsiaPacific},
	"NAM": {"NA", RegionSubSaharanAfrica},
	"NER": {"NE", RegionSubSaharanAfrica},
	"NGA": {"NG", RegionSubSaharanAfrica},
	"NIC": {"NI", RegionLatinAmerica},
	"NLD": {"NL", RegionEuropeCentralAsia},
	"NOR": {"NO", RegionEuropeCentralAsia},
	"NPL": {"NP", RegionSouthAsia},
	"NZL": {"NZ", RegionEastAsiaPacific},
	"OMN": {"OM", RegionMiddleEastAfrica},
	"PAK": {"PK", RegionSouthAsia},
	"PAN": {"PA", RegionLatinAmerica},
	"PER": {"PE", RegionLatinAmerica},
	"PHL": {"PH", RegionEastAsiaPacific},
	"PNG": {"PG", RegionEastAsiaPacific},
	"POL": {"PL", RegionEuropeCentralAsia},
	"PRT": {"PT", RegionEuropeCentralAsia},
	"PRY": {"PY", RegionLatinAmerica},
	"QAT": {"QA", RegionMiddleEastAfrica},
	"ROU": {"RO", RegionEuropeCentralAsia},
	"RUS": {"RU", RegionEuropeCentralAsia},
	"RWA": {"RW", RegionSubSaharanAfrica},
	"SAU": {"SA", RegionMiddleEastAfrica},
	"SDN": {"SD", RegionSubSaharanAfrica},
	"SEN": {"SN", RegionSubSaharanAfrica},
	"SGP": {"SG", RegionEastAsiaPacific},
	"SLV": {"SV", RegionLatinAmerica},
	"SRB": {"RS", RegionEuropeCentralAsia},
	"SVK": {"SK", RegionEuropeCentralAsia},
	"SVN": {"SI", RegionEuropeCentralAsia},
	"SWE": {"SE", RegionEuropeCentralAsia},
	"SYR": {"SY", RegionMiddleEastAfrica},
	"TCD": {"TD", RegionSubSaharanAfrica},
	"THA": {"TH", RegionEastAsiaPacific},
	"TJK": {"TJ", RegionEuropeCentralAsia},
	"TKM": {"TM", RegionEuropeCentralAsia},
	"TUN": {"TN", RegionMiddleEastAfrica},
	"TUR": {"TR", RegionEuropeCentralAsia},
	"TZA": {"TZ", RegionSubSaharanAfrica},
	"UGA": {"UG", RegionSubSaharanAfrica},
	"UKR": {"UA", RegionEuropeCentralAsia},
	"URY": {"UY", RegionLatinAmerica},
	"USA": {"US", RegionNorthAmerica},
	"UZB": {"UZ", RegionEuropeCentralAsia},
	"VEN": {"VE", RegionLatinAmerica},
	"VNM": {"VN", RegionEastAsiaPacific},
	"YEM": {"YE", RegionMiddleEastAfrica},
	"ZAF": {"ZA", RegionSubSaharanAfrica},
	"ZMB": {"ZM", RegionSubSaharanAfrica},
	"ZWE": {"ZW", RegionSubSaharanAfrica},
}

// DefaultLookup returns the Lookup backed by the bundled table.
func DefaultLookup() Lookup {
	return func(code string) (CountryMeta, bool) {
		meta, ok := countries[code]
		return meta, ok
	}
}

// Size returns the number of entries in the bundled table.
func Size() int {
	return len(countries)
}
