// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package engine runs the full per-record pipeline: normalization, the
// detector set, the false-positive filter, the corroboration and
// mutual-exclusion rules, confidence aggregation, importance
// classification, and data-quality assessment. The engine holds only
// read-only reference data, so one instance is safely shared by all
// workers.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"origin-scan/internal/detector"
	"origin-scan/internal/exclusions"
	"origin-scan/internal/importance"
	"origin-scan/internal/normalize"
	"origin-scan/internal/quality"
	"origin-scan/internal/reference"
)

// Engine is a pure function from Record to Verdict, modulo the static
// reference lists bound at construction.
type Engine struct {
	detectors  []detector.Detector
	filter     *exclusions.Filter
	classifier *importance.Classifier
}

// New builds an engine with every detector enabled.
func New(ref *reference.Set) *Engine {
	return NewWithDetectors(ref, BuildDetectorSet(ParseChecksToRun(nil), ref))
}

// NewWithDetectors builds an engine over an explicit detector set.
func NewWithDetectors(ref *reference.Set, detectors []detector.Detector) *Engine {
	return &Engine{
		detectors:  detectors,
		filter:     exclusions.NewFilter(ref),
		classifier: importance.NewClassifier(ref),
	}
}

// kindOrder fixes the emission order of detection_types so identical
// records always yield bit-identical verdicts.
var kindOrder = []detector.SignalKind{
	detector.KindCountryCode,
	detector.KindWatchlist,
	detector.KindHongKong,
	detector.KindEntityName,
	detector.KindGeographicResolved,
	detector.KindSourcingPhrase,
}

// Evaluate produces the Verdict for one record. It never mutates the
// record and retains no state between calls.
func (e *Engine) Evaluate(rec *detector.Record) detector.Verdict {
	raw := make(map[string]string, len(rec.Fields))
	for name, value := range rec.Fields {
		raw[string(name)] = value
	}
	fields := normalize.NewFieldSet(raw)

	var candidates []detector.Signal
	for _, d := range e.detectors {
		candidates = append(candidates, d.Detect(rec, fields)...)
	}

	surviving, _ := e.filter.Apply(rec, fields, candidates)
	surviving = applyPolicies(surviving)

	class := e.classifier.Classify(fields)

	verdict := detector.Verdict{
		LineNumber:      rec.LineNumber,
		ImportanceTier:  class.Tier,
		ImportanceScore: class.Score,
	}

	if len(surviving) == 0 {
		assessment := quality.Assess(rec)
		verdict.IsMatch = false
		verdict.DetectionTypes = []string{}
		verdict.DataQualityFlag = assessment.Flag
		verdict.FieldsWithDataCount = assessment.FieldsWithDataCount
		verdict.Rationale = assessment.Rationale()
		return verdict
	}

	verdict.IsMatch = true
	verdict.DetectionTypes = detectionTypes(surviving)
	verdict.HighestConfidence = highestConfidence(surviving)
	verdict.Rationale = rationale(surviving, class)
	return verdict
}

// applyPolicies enforces the aggregation rules that span detectors:
//
//  1. Jurisdiction-proper and territory country signals are mutually
//     exclusive; the proper signal wins.
//  2. A geographic resolution survives only when corroborated by a
//     country-code signal.
//  3. A sourcing-phrase signal survives only alongside a country-code or
//     entity-name signal; product origin alone never asserts counterparty
//     nationality.
//
// The rules only remove signals, so they commute with the false-positive
// filter.
func applyPolicies(signals []detector.Signal) []detector.Signal {
	has := func(kinds ...detector.SignalKind) bool {
		for _, s := range signals {
			for _, k := range kinds {
				if s.Kind == k {
					return true
				}
			}
		}
		return false
	}

	properPresent := has(detector.KindCountryCode)
	countryPresent := properPresent || has(detector.KindHongKong)
	anchorPresent := countryPresent || has(detector.KindEntityName)

	var kept []detector.Signal
	for _, s := range signals {
		switch s.Kind {
		case detector.KindHongKong:
			if properPresent {
				continue
			}
		case detector.KindGeographicResolved:
			if !countryPresent {
				continue
			}
		case detector.KindSourcingPhrase:
			if !anchorPresent {
				continue
			}
		}
		kept = append(kept, s)
	}
	return kept
}

// detectionTypes returns the distinct surviving kinds in canonical order.
func detectionTypes(signals []detector.Signal) []string {
	present := make(map[detector.SignalKind]bool, len(signals))
	for _, s := range signals {
		present[s.Kind] = true
	}
	var types []string
	for _, kind := range kindOrder {
		if present[kind] {
			types = append(types, string(kind))
		}
	}
	return types
}

// highestConfidence is the maximum base confidence among surviving signals.
// Never a sum: multiple weak signals must not outrank one strong signal.
func highestConfidence(signals []detector.Signal) float64 {
	highest := 0.0
	for _, s := range signals {
		if s.Confidence > highest {
			highest = s.Confidence
		}
	}
	return highest
}

// rationale renders a reproducible human-readable justification from the
// surviving signals. Signals are ordered by kind then source field so the
// string is stable across runs.
func rationale(signals []detector.Signal, class importance.Classification) string {
	ordered := make([]detector.Signal, len(signals))
	copy(ordered, signals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Kind != ordered[j].Kind {
			return kindRank(ordered[i].Kind) < kindRank(ordered[j].Kind)
		}
		return ordered[i].SourceField < ordered[j].SourceField
	})

	parts := make([]string, 0, len(ordered)+1)
	for _, s := range ordered {
		part := fmt.Sprintf("%s: %s=%q", s.Kind, s.SourceField, s.MatchedToken)
		if s.Reason != "" {
			part += fmt.Sprintf(" (%s)", s.Reason)
		}
		parts = append(parts, part)
	}
	if class.Keyword != "" {
		parts = append(parts, fmt.Sprintf("importance %s via %q", class.Tier, class.Keyword))
	}
	return strings.Join(parts, "; ")
}

func kindRank(kind detector.SignalKind) int {
	for i, k := range kindOrder {
		if k == kind {
			return i
		}
	}
	return len(kindOrder)
}
