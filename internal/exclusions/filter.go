// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package exclusions applies the curated false-positive list to candidate
// signals. The filter only ever removes signals, never adds them, and each
// exclusion pattern is evaluated independently, so behavior does not depend
// on list ordering or on which detector produced the signal.
package exclusions

import (
	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
	"origin-scan/internal/reference"
)

// SuppressedSignal records a candidate signal the filter discarded and the
// exclusion that removed it, for audit output.
type SuppressedSignal struct {
	Signal  detector.Signal
	Pattern string
	Reason  string
}

// Filter holds the exclusion table for one run.
type Filter struct {
	entries []reference.ExclusionEntry
}

func NewFilter(ref *reference.Set) *Filter {
	return &Filter{entries: ref.Exclusions}
}

// Apply returns the subset of candidate signals that survive the exclusion
// list, plus the discarded ones. A signal is discarded when the original
// (pre-normalization) value of its source field matches any exclusion
// pattern at a word boundary.
func (f *Filter) Apply(rec *detector.Record, fields *normalize.FieldSet, candidates []detector.Signal) ([]detector.Signal, []SuppressedSignal) {
	if len(candidates) == 0 {
		return nil, nil
	}

	var kept []detector.Signal
	var suppressed []SuppressedSignal

	for _, sig := range candidates {
		if entry, hit := f.match(fields.Get(string(sig.SourceField))); hit {
			suppressed = append(suppressed, SuppressedSignal{
				Signal:  sig,
				Pattern: entry.Pattern,
				Reason:  entry.Reason,
			})
			continue
		}
		kept = append(kept, sig)
	}

	return kept, suppressed
}

// match checks the field's canonical form against every exclusion pattern.
// The canonical form is derived from the original field value, so the
// comparison reflects the source text rather than any de-spaced rewrite.
func (f *Filter) match(field normalize.Field) (reference.ExclusionEntry, bool) {
	if field.Empty() {
		return reference.ExclusionEntry{}, false
	}
	for _, entry := range f.entries {
		if normalize.ContainsToken(field.Canonical, entry.Canonical) {
			return entry, true
		}
	}
	return reference.ExclusionEntry{}, false
}
