// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package shared holds conversion and filtering logic used by more than
// one formatter, so every output format applies identical semantics.
package shared

import "origin-scan/internal/detector"

// ConfidenceLevel buckets a numeric confidence into the coarse levels the
// CLI filters on. The boundaries follow the base-confidence table: country
// and watchlist signals are high, entity and resolved-geography signals are
// medium, sourcing-only corroboration is low.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.85:
		return "high"
	case confidence >= 0.60:
		return "medium"
	default:
		return "low"
	}
}

// FilterVerdicts applies the confidence-level and matches-only options.
// Confidence filtering only applies to matches; non-matching verdicts carry
// no confidence and are governed by MatchesOnly alone.
func FilterVerdicts(verdicts []detector.Verdict, levels map[string]bool, matchesOnly bool) []detector.Verdict {
	var out []detector.Verdict
	for _, v := range verdicts {
		if !v.IsMatch {
			if !matchesOnly {
				out = append(out, v)
			}
			continue
		}
		if levels == nil || levels[ConfidenceLevel(v.HighestConfidence)] {
			out = append(out, v)
		}
	}
	return out
}
