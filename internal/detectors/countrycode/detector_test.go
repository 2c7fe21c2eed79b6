// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package countrycode

import (
	"testing"

	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
)

func buildRecord(fields map[detector.FieldName]string) (*detector.Record, *normalize.FieldSet) {
	rec := &detector.Record{LineNumber: 1, Fields: fields}
	raw := make(map[string]string, len(fields))
	for name, value := range fields {
		raw[string(name)] = value
	}
	return rec, normalize.NewFieldSet(raw)
}

func TestDetect(t *testing.T) {
	d := New()

	tests := []struct {
		name         string
		fields       map[detector.FieldName]string
		expectedKind detector.SignalKind
		expectedNone bool
	}{
		{
			name:         "jurisdiction alpha-2 code",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountry: "CN"},
			expectedKind: detector.KindCountryCode,
		},
		{
			name:         "jurisdiction alpha-3 code",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountry: "CHN"},
			expectedKind: detector.KindCountryCode,
		},
		{
			name:         "jurisdiction name",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountryNm: "China"},
			expectedKind: detector.KindCountryCode,
		},
		{
			name:         "full jurisdiction name",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountryNm: "People's Republic of China"},
			expectedKind: detector.KindCountryCode,
		},
		{
			name:         "performance country code",
			fields:       map[detector.FieldName]string{detector.FieldPerformanceCountry: "chn"},
			expectedKind: detector.KindCountryCode,
		},
		{
			name:         "territory code",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountry: "HK"},
			expectedKind: detector.KindHongKong,
		},
		{
			name:         "territory name",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountryNm: "Hong Kong"},
			expectedKind: detector.KindHongKong,
		},
		{
			name:         "taiwan alpha-2 never matches",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountry: "TW"},
			expectedNone: true,
		},
		{
			name:         "taiwan alpha-3 never matches",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountry: "TWN"},
			expectedNone: true,
		},
		{
			name:         "republic of china never matches despite overlap",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountryNm: "Republic of China"},
			expectedNone: true,
		},
		{
			name:         "taiwan province of china never matches",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountryNm: "Taiwan Province of China"},
			expectedNone: true,
		},
		{
			name:         "unrelated country",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountry: "US"},
			expectedNone: true,
		},
		{
			name: "name field does not substring match",
			// Exact match only; "china" inside a longer value is the entity
			// and sourcing detectors' territory.
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyCountryNm: "South China Sea Region"},
			expectedNone: true,
		},
		{
			name:         "no country fields",
			fields:       map[detector.FieldName]string{detector.FieldCounterpartyName: "Acme Corp"},
			expectedNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, fields := buildRecord(tt.fields)
			signals := d.Detect(rec, fields)

			if tt.expectedNone {
				if len(signals) != 0 {
					t.Fatalf("expected no signals, got %v", signals)
				}
				return
			}

			if len(signals) != 1 {
				t.Fatalf("expected 1 signal, got %d", len(signals))
			}
			sig := signals[0]
			if sig.Kind != tt.expectedKind {
				t.Errorf("signal kind = %s, expected %s", sig.Kind, tt.expectedKind)
			}
			if sig.Confidence != detector.BaseConfidence[tt.expectedKind] {
				t.Errorf("confidence = %.2f, expected %.2f", sig.Confidence, detector.BaseConfidence[tt.expectedKind])
			}
		})
	}
}

func TestDetectBothCountryFieldPairs(t *testing.T) {
	d := New()
	rec, fields := buildRecord(map[detector.FieldName]string{
		detector.FieldCounterpartyCountry: "CN",
		detector.FieldPerformanceCountry:  "CN",
	})

	signals := d.Detect(rec, fields)
	if len(signals) != 2 {
		t.Fatalf("expected one signal per country field, got %d", len(signals))
	}
	if signals[0].SourceField == signals[1].SourceField {
		t.Error("signals should come from distinct fields")
	}
}

func TestIsJurisdictionValue(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"cn", true},
		{"chn", true},
		{"china", true},
		{"prc", true},
		{"taiwan", false},
		{"republic of china", false},
		{"hk", false},
		{"us", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsJurisdictionValue(tt.value); got != tt.expected {
			t.Errorf("IsJurisdictionValue(%q) = %v, expected %v", tt.value, got, tt.expected)
		}
	}
}
