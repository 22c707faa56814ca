// Package plotter renders the report's visual artifacts from the pipeline's
// output: static scatter plots of recent averages and an animated scatter
// over the observed year span. Point size tracks population, color tracks
// region, and the most populous countries get text labels.
package plotter
