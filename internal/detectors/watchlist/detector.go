// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package watchlist cross-references counterparty names against the
// export-control list. The list is higher trust than the entity watchlist:
// a hit scores 0.95 and the list's stated program and reason become part of
// the verdict rationale.
package watchlist

import (
	"fmt"

	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
	"origin-scan/internal/reference"
)

// Detector implements detector.Detector over the export-control list.
type Detector struct {
	entries []reference.SanctionEntry
}

func New(ref *reference.Set) *Detector {
	return &Detector{entries: ref.Sanctions}
}

func (d *Detector) Name() string { return "watchlist" }

// Detect emits watchlist_match (0.95) when the counterparty name contains a
// listed entity name at a word boundary. De-spaced candidates are checked
// so spacing evasion does not bypass the higher-trust list either.
func (d *Detector) Detect(rec *detector.Record, fields *normalize.FieldSet) []detector.Signal {
	field := fields.Get(string(detector.FieldCounterpartyName))
	if field.Empty() {
		return nil
	}

	for _, entry := range d.entries {
		for _, candidate := range field.Candidates() {
			if normalize.ContainsToken(candidate, entry.Canonical) {
				sig := detector.NewSignal(detector.KindWatchlist, detector.FieldCounterpartyName, entry.Name, d.Name())
				sig.Reason = fmt.Sprintf("%s: %s", entry.Program, entry.Reason)
				return []detector.Signal{sig}
			}
		}
	}
	return nil
}
