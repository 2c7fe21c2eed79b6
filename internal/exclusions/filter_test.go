// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package exclusions

import (
	"testing"

	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
	"origin-scan/internal/reference"
)

func testReference(t *testing.T) *reference.Set {
	t.Helper()
	ref, err := reference.Load(reference.Paths{})
	if err != nil {
		t.Fatalf("loading embedded reference data: %v", err)
	}
	return ref
}

func buildRecord(fields map[detector.FieldName]string) (*detector.Record, *normalize.FieldSet) {
	rec := &detector.Record{LineNumber: 1, Fields: fields}
	raw := make(map[string]string, len(fields))
	for name, value := range fields {
		raw[string(name)] = value
	}
	return rec, normalize.NewFieldSet(raw)
}

func TestApplySuppressesKnownCollisions(t *testing.T) {
	f := NewFilter(testReference(t))

	tests := []struct {
		name       string
		fieldValue string
	}{
		{"restaurant name", "China Garden Restaurant LLC"},
		{"porcelain term", "Fine Bone China Dinnerware Supply"},
		{"US installation", "China Lake Logistics Services"},
		{"subsidiary superstring", "Lenovo United States Inc"},
		{"unrelated superstring", "BYD Harness Systems"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, fields := buildRecord(map[detector.FieldName]string{
				detector.FieldCounterpartyName: tt.fieldValue,
			})
			candidate := detector.NewSignal(detector.KindEntityName, detector.FieldCounterpartyName, "test", "entity_name")

			kept, suppressed := f.Apply(rec, fields, []detector.Signal{candidate})
			if len(kept) != 0 {
				t.Fatalf("expected candidate to be suppressed, kept %v", kept)
			}
			if len(suppressed) != 1 {
				t.Fatalf("expected 1 suppressed signal, got %d", len(suppressed))
			}
			if suppressed[0].Pattern == "" || suppressed[0].Reason == "" {
				t.Error("suppression should record the exclusion pattern and reason")
			}
		})
	}
}

func TestApplyKeepsCleanSignals(t *testing.T) {
	f := NewFilter(testReference(t))
	rec, fields := buildRecord(map[detector.FieldName]string{
		detector.FieldCounterpartyName: "Huawei Technologies Co Ltd",
	})
	candidate := detector.NewSignal(detector.KindEntityName, detector.FieldCounterpartyName, "Huawei", "entity_name")

	kept, suppressed := f.Apply(rec, fields, []detector.Signal{candidate})
	if len(kept) != 1 {
		t.Fatalf("expected signal to survive, got %d kept", len(kept))
	}
	if len(suppressed) != 0 {
		t.Fatalf("expected no suppressions, got %v", suppressed)
	}
}

func TestApplyEvaluatesSignalsIndependently(t *testing.T) {
	f := NewFilter(testReference(t))

	// One field matches an exclusion, the other does not. Only the signal
	// sourced from the matching field is removed.
	rec, fields := buildRecord(map[detector.FieldName]string{
		detector.FieldCounterpartyName: "China Garden Restaurant",
		detector.FieldVendorName:       "Huawei Technologies",
	})
	candidates := []detector.Signal{
		detector.NewSignal(detector.KindEntityName, detector.FieldCounterpartyName, "x", "entity_name"),
		detector.NewSignal(detector.KindEntityName, detector.FieldVendorName, "Huawei", "entity_name"),
	}

	kept, suppressed := f.Apply(rec, fields, candidates)
	if len(kept) != 1 || kept[0].SourceField != detector.FieldVendorName {
		t.Fatalf("expected only the vendor signal to survive, kept %v", kept)
	}
	if len(suppressed) != 1 || suppressed[0].Signal.SourceField != detector.FieldCounterpartyName {
		t.Fatalf("expected only the counterparty signal suppressed, got %v", suppressed)
	}
}

func TestApplyEmptyCandidates(t *testing.T) {
	f := NewFilter(testReference(t))
	rec, fields := buildRecord(map[detector.FieldName]string{
		detector.FieldCounterpartyName: "China Garden Restaurant",
	})

	kept, suppressed := f.Apply(rec, fields, nil)
	if kept != nil || suppressed != nil {
		t.Error("no candidates should yield no output")
	}
}
