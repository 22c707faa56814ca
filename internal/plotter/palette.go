package plotter

import (
	"image/color"

	"wbtrends/internal/reference"
)

// regionColors assigns one fixed color per World Bank region so every plot
// and animation frame colors a region the same way.
var regionColors = map[string]color.RGBA{
	reference.RegionEastAsiaPacific:   {R: 31, G: 119, B: 180, A: 255},
	reference.RegionEuropeCentralAsia: {R: 255, G: 127, B: 14, A: 255},
	reference.RegionLatinAmerica:      {R: 44, G: 160, B: 44, A: 255},
	reference.RegionMiddleEastAfrica:  {R: 214, G: 39, B: 40, A: 255},
	reference.RegionNorthAmerica:      {R: 148, G: 103, B: 189, A: 255},
	reference.RegionSouthAsia:         {R: 140, G: 86, B: 75, A: 255},
	reference.RegionSubSaharanAfrica:  {R: 227, G: 119, B: 194, A: 255},
}

// colorForRegion returns the region's palette entry; the zero value is never
// used because records without a region are filtered before plotting.
func colorForRegion(region string) color.RGBA {
	if c, ok := regionColors[region]; ok {
		return c
	}
	return color.RGBA{R: 127, G: 127, B: 127, A: 255}
}
