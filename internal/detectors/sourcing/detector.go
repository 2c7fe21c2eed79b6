// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sourcing scans the free-text award description for phrases that
// tie the product, not the counterparty, to the watched jurisdiction
// ("made in ...", "country of origin ..."). A product-origin mention alone
// is too weak to assert counterparty nationality, so the aggregator keeps
// these signals only when a country-code or entity-name signal corroborates
// them; on its own a sourcing signal never reaches a verdict.
package sourcing

import (
	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
)

// phrases are stored in canonical form; the description is folded before
// matching, so evasion handled by the normalizer (width, case, homoglyphs)
// is covered here too.
var phrases = []string{
	"made in china",
	"manufactured in china",
	"produced in china",
	"assembled in china",
	"product of china",
	"country of origin china",
	"country of origin: china",
	"chinese origin",
	"origin china",
	"made in prc",
	"made in hong kong",
	"manufactured in hong kong",
}

// Detector implements detector.Detector over the description field.
type Detector struct {
	canonical []string
}

func New() *Detector {
	d := &Detector{canonical: make([]string, len(phrases))}
	for i, p := range phrases {
		d.canonical[i] = normalize.Canonicalize(p)
	}
	return d
}

func (d *Detector) Name() string { return "sourcing_phrase" }

// Detect emits sourcing_phrase_match (0.30) for the first origin phrase
// found in the description.
func (d *Detector) Detect(rec *detector.Record, fields *normalize.FieldSet) []detector.Signal {
	field := fields.Get(string(detector.FieldDescription))
	if field.Empty() {
		return nil
	}

	for _, phrase := range d.canonical {
		if normalize.ContainsToken(field.Canonical, phrase) {
			sig := detector.NewSignal(detector.KindSourcingPhrase, detector.FieldDescription, phrase, d.Name())
			return []detector.Signal{sig}
		}
	}
	return nil
}
