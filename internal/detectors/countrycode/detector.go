// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package countrycode detects exact country-code and country-name matches
// for the watched jurisdiction proper and, separately, its administratively
// distinct territory. Taiwan-class codes and names are excluded from every
// pattern and can never match, regardless of substring overlap.
package countrycode

import (
	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
)

// Fixed code and name sets. These are jurisdiction constants, not curated
// reference data, so they live in code beside the detector that owns them.
var (
	jurisdictionCodes = map[string]bool{
		"cn":  true,
		"chn": true,
	}
	jurisdictionNames = map[string]bool{
		"china":                      true,
		"peoples republic of china":  true,
		"people's republic of china": true,
		"prc":                        true,
		"mainland china":             true,
		"china mainland":             true,
	}

	territoryCodes = map[string]bool{
		"hk":  true,
		"hkg": true,
	}
	territoryNames = map[string]bool{
		"hong kong":     true,
		"hong kong sar": true,
		"hong kong special administrative region":  true,
		"hong kong, special administrative region": true,
	}

	// excluded values never match either set, checked first so that name
	// overlap ("Republic of China") cannot leak through.
	excluded = map[string]bool{
		"tw":                       true,
		"twn":                      true,
		"taiwan":                   true,
		"republic of china":        true,
		"taiwan province of china": true,
		"chinese taipei":           true,
		"taipei":                   true,
	}
)

// Detector implements detector.Detector for country codes and names.
type Detector struct{}

func New() *Detector { return &Detector{} }

func (d *Detector) Name() string { return "country_code" }

// countryFields pairs each code field with its companion name field.
var countryFields = []struct {
	code detector.FieldName
	name detector.FieldName
}{
	{detector.FieldCounterpartyCountry, detector.FieldCounterpartyCountryNm},
	{detector.FieldPerformanceCountry, detector.FieldPerformanceCountryNm},
}

// Detect emits country_code_match (0.95) for a jurisdiction-proper code or
// unambiguous name, and hong_kong_match (0.85) for the territory. Matching
// is exact on the canonical form, never substring.
func (d *Detector) Detect(rec *detector.Record, fields *normalize.FieldSet) []detector.Signal {
	var signals []detector.Signal

	for _, pair := range countryFields {
		if sig, ok := d.matchField(fields, pair.code); ok {
			signals = append(signals, sig)
		}
		if sig, ok := d.matchField(fields, pair.name); ok {
			signals = append(signals, sig)
		}
	}

	return signals
}

func (d *Detector) matchField(fields *normalize.FieldSet, name detector.FieldName) (detector.Signal, bool) {
	value := fields.Get(string(name)).Canonical
	if value == "" || excluded[value] {
		return detector.Signal{}, false
	}

	switch {
	case jurisdictionCodes[value] || jurisdictionNames[value]:
		return detector.NewSignal(detector.KindCountryCode, name, value, d.Name()), true
	case territoryCodes[value] || territoryNames[value]:
		return detector.NewSignal(detector.KindHongKong, name, value, d.Name()), true
	}
	return detector.Signal{}, false
}

// IsJurisdictionValue reports whether the canonical value names the watched
// jurisdiction proper. Used by the reference lint to reject list tokens that
// would shadow the country detector.
func IsJurisdictionValue(canonical string) bool {
	if excluded[canonical] {
		return false
	}
	return jurisdictionCodes[canonical] || jurisdictionNames[canonical]
}
