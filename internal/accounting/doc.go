// Package accounting implements the position and lot accounting engine:
// corporate-action classification, split adjustment of historical trades,
// spinoff synthesis, FIFO lot tracking, per-symbol aggregation and
// market-value enrichment.
//
// The package is pure computation over in-memory records: no I/O, no
// mutation of inputs, and no errors for degenerate data. Malformed or
// unparseable inputs degrade to zero/empty results so that aggregation
// over uncurated statement exports stays total-preserving.
//
// Trade and corporate-action timestamps are fixed-width statement strings
// and are ordered lexically throughout. Do not replace the string
// comparisons with parsed-time comparisons; historical split adjustments
// depend on the as-imported ordering.
package accounting
