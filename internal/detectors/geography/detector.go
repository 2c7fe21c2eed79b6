// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package geography resolves legitimate place-name polysemy: tokens shared
// between the watched jurisdiction and unrelated places ("Georgia",
// "Canton"). It is the counterpart of the false-positive filter but for
// geographic ambiguity rather than name collisions: it suppresses would-be
// matches rather than asserting them. For jurisdiction-linked tokens it
// emits a geographic_ambiguity_resolved signal, which the aggregator keeps
// only when a country-code signal corroborates it.
package geography

import (
	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
	"origin-scan/internal/reference"
)

// Detector implements detector.Detector over the country-name fields.
type Detector struct {
	places []reference.AmbiguousPlace
}

func New(ref *reference.Set) *Detector {
	return &Detector{places: ref.Places}
}

func (d *Detector) Name() string { return "geography" }

var countryNameFields = []detector.FieldName{
	detector.FieldCounterpartyCountryNm,
	detector.FieldPerformanceCountryNm,
}

// Detect inspects the country-name fields for ambiguous place tokens.
// Unlinked tokens produce nothing: their only effect is that no detector
// asserts them, which is the suppression the contract requires. Linked
// tokens produce a conditional resolution signal.
func (d *Detector) Detect(rec *detector.Record, fields *normalize.FieldSet) []detector.Signal {
	var signals []detector.Signal

	for _, fieldName := range countryNameFields {
		field := fields.Get(string(fieldName))
		if field.Empty() {
			continue
		}

		for _, place := range d.places {
			if !normalize.ContainsToken(field.Canonical, place.Canonical) {
				continue
			}
			if !place.JurisdictionLinked {
				continue
			}
			sig := detector.NewSignal(detector.KindGeographicResolved, fieldName, place.Token, d.Name())
			sig.Reason = place.Note
			signals = append(signals, sig)
			break
		}
	}

	return signals
}
