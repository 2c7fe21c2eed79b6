// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import "origin-scan/internal/normalize"

// SignalKind identifies the category of evidence a detector produced.
type SignalKind string

const (
	KindCountryCode        SignalKind = "country_code_match"
	KindEntityName         SignalKind = "entity_name_match"
	KindWatchlist          SignalKind = "watchlist_match"
	KindSourcingPhrase     SignalKind = "sourcing_phrase_match"
	KindHongKong           SignalKind = "hong_kong_match"
	KindGeographicResolved SignalKind = "geographic_ambiguity_resolved"
)

// BaseConfidence is the fixed signal_kind -> confidence table. It is shared
// by every detector and every schema variant; the aggregator takes the
// maximum over surviving signals, never a sum.
var BaseConfidence = map[SignalKind]float64{
	KindCountryCode:        0.95,
	KindWatchlist:          0.95,
	KindHongKong:           0.85,
	KindEntityName:         0.70,
	KindGeographicResolved: 0.60,
	KindSourcingPhrase:     0.30,
}

// FieldName names a semantic field of a Record. Schema adapters map
// column offsets onto these names; everything downstream is schema-agnostic.
type FieldName string

const (
	FieldCounterpartyName      FieldName = "counterparty_name"
	FieldVendorName            FieldName = "vendor_name"
	FieldCounterpartyCountry   FieldName = "counterparty_country_code"
	FieldCounterpartyCountryNm FieldName = "counterparty_country_name"
	FieldPerformanceCountry    FieldName = "place_of_performance_country_code"
	FieldPerformanceCountryNm  FieldName = "place_of_performance_country_name"
	FieldDescription           FieldName = "free_text_description"
	FieldAwardAmount           FieldName = "award_amount"
	FieldActionDate            FieldName = "action_date"
)

// Record is one adapted input row. Records are immutable once built; the
// engine is a pure function from Record to Verdict.
type Record struct {
	// LineNumber is the 1-based position in the source batch, for diagnostics.
	LineNumber int

	// Fields holds the raw semantic field values. Absent fields are not
	// present in the map; the null-marker token is resolved by the schema
	// adapter before a Record is built.
	Fields map[FieldName]string
}

// Field returns the raw value of a semantic field, or "" when absent.
func (r *Record) Field(name FieldName) string {
	return r.Fields[name]
}

// HasField reports whether a semantic field is present and non-empty.
func (r *Record) HasField(name FieldName) bool {
	return r.Fields[name] != ""
}

// Signal is one typed piece of evidence produced by exactly one detector.
// Signals are never mutated after creation; the false-positive filter keeps
// or discards them wholesale.
type Signal struct {
	Kind         SignalKind
	SourceField  FieldName
	MatchedToken string
	// Confidence is the fixed base confidence for Kind, copied at creation
	// so a Signal is self-describing.
	Confidence float64
	// Reason carries list-supplied metadata (e.g. the export-control program
	// that listed an entity) into the rationale.
	Reason string
	// Detector names the detector that produced the signal.
	Detector string
}

// NewSignal builds a Signal with the table confidence for kind.
func NewSignal(kind SignalKind, field FieldName, token, detectorName string) Signal {
	return Signal{
		Kind:         kind,
		SourceField:  field,
		MatchedToken: token,
		Confidence:   BaseConfidence[kind],
		Detector:     detectorName,
	}
}

// Detector is the single capability every signal detector implements:
// accept normalized fields, emit zero or more Signals. Detectors are pure
// and run unconditionally on every record; order is irrelevant.
type Detector interface {
	Name() string
	Detect(rec *Record, fields *normalize.FieldSet) []Signal
}

// ImportanceTier is the strategic-value classification of a record's subject
// matter, independent of nationality confidence.
type ImportanceTier string

const (
	Tier1        ImportanceTier = "TIER_1"
	Tier2        ImportanceTier = "TIER_2"
	Tier3        ImportanceTier = "TIER_3"
	Unclassified ImportanceTier = "UNCLASSIFIED"
)

// TierScore maps each tier to its fixed importance score.
var TierScore = map[ImportanceTier]float64{
	Tier1:        1.0,
	Tier2:        0.5,
	Tier3:        0.1,
	Unclassified: 0.5,
}

// DataQualityFlag distinguishes a trusted non-match from one caused by
// missing identifying fields.
type DataQualityFlag string

const (
	QualityDeterminate   DataQualityFlag = "DETERMINATE"
	QualityIndeterminate DataQualityFlag = "INDETERMINATE"
)

// Verdict is the engine's final output for one record.
type Verdict struct {
	LineNumber        int            `json:"line_number"`
	IsMatch           bool           `json:"is_match"`
	DetectionTypes    []string       `json:"detection_types"`
	HighestConfidence float64        `json:"highest_confidence"`
	ImportanceTier    ImportanceTier `json:"importance_tier"`
	ImportanceScore   float64        `json:"importance_score"`
	Rationale         string         `json:"rationale"`

	// Populated only when IsMatch is false.
	DataQualityFlag     DataQualityFlag `json:"data_quality_flag,omitempty"`
	FieldsWithDataCount int             `json:"fields_with_data_count"`
}

// HasDetection reports whether kind survived filtering for this verdict.
func (v *Verdict) HasDetection(kind SignalKind) bool {
	for _, t := range v.DetectionTypes {
		if t == string(kind) {
			return true
		}
	}
	return false
}
