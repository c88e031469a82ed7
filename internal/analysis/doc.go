// Package analysis is the aggregation engine behind every sleepstat chart:
// Pearson correlation, least-squares regression, equal-width and
// categorical binning, and per-group summaries.
//
// Every function is pure. Inputs are never mutated, nothing is cached, and
// calls are safe from any number of goroutines.
//
// Malformed numeric input never produces an error, NaN or Inf. Too few
// samples and zero spread both resolve to ZeroVarianceFallback, so a chart
// always has something to draw. A caller that must tell "no correlation"
// from "undefined correlation" checks Relationship.N instead.
package analysis
