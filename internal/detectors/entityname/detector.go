// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package entityname matches counterparty and vendor names against the
// curated list of entity-name fragments associated with the watched
// jurisdiction. Both the canonical field and the de-spaced evasion
// candidate are checked; fragments match at word boundaries only.
package entityname

import (
	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
	"origin-scan/internal/reference"
)

// Detector implements detector.Detector over the entity watchlist.
type Detector struct {
	entities []reference.EntityEntry
}

func New(ref *reference.Set) *Detector {
	return &Detector{entities: ref.Entities}
}

func (d *Detector) Name() string { return "entity_name" }

var nameFields = []detector.FieldName{
	detector.FieldCounterpartyName,
	detector.FieldVendorName,
}

// Detect emits entity_name_match (0.70) for each name field containing a
// watchlist fragment. At most one signal is emitted per field; the first
// matching fragment wins, which keeps output deterministic given the
// append-only curated list.
func (d *Detector) Detect(rec *detector.Record, fields *normalize.FieldSet) []detector.Signal {
	var signals []detector.Signal

	for _, fieldName := range nameFields {
		field := fields.Get(string(fieldName))
		if field.Empty() {
			continue
		}

		if entry, ok := d.matchCandidates(field.Candidates()); ok {
			sig := detector.NewSignal(detector.KindEntityName, fieldName, entry.Token, d.Name())
			sig.Reason = entry.Category
			signals = append(signals, sig)
		}
	}

	return signals
}

func (d *Detector) matchCandidates(candidates []string) (reference.EntityEntry, bool) {
	for _, entry := range d.entities {
		for _, candidate := range candidates {
			if normalize.ContainsToken(candidate, entry.Canonical) {
				return entry, true
			}
		}
	}
	return reference.EntityEntry{}, false
}
