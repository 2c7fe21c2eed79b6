// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	stdcsv "encoding/csv"
	"strings"
	"testing"

	"origin-scan/internal/detector"
	"origin-scan/internal/formatters"
)

func TestFormat(t *testing.T) {
	f := NewFormatter()
	verdicts := []detector.Verdict{
		{
			LineNumber:        3,
			IsMatch:           true,
			DetectionTypes:    []string{"country_code_match", "sourcing_phrase_match"},
			HighestConfidence: 0.95,
			ImportanceTier:    detector.Tier1,
			ImportanceScore:   1.0,
			Rationale:         `country_code_match: counterparty_country_code="cn"`,
		},
		{
			LineNumber:          4,
			IsMatch:             false,
			DetectionTypes:      []string{},
			ImportanceTier:      detector.Unclassified,
			ImportanceScore:     0.5,
			DataQualityFlag:     detector.QualityDeterminate,
			FieldsWithDataCount: 3,
		},
	}

	out, err := f.Format(verdicts, nil, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := stdcsv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "line_number" || records[0][len(records[0])-1] != "rationale" {
		t.Errorf("unexpected header: %v", records[0])
	}

	match := records[1]
	if match[0] != "3" || match[1] != "true" {
		t.Errorf("match row = %v", match)
	}
	if match[2] != "country_code_match|sourcing_phrase_match" {
		t.Errorf("detection types column = %q, expected pipe-joined kinds", match[2])
	}
	if match[4] != "high" {
		t.Errorf("confidence level = %q, expected high", match[4])
	}

	nonMatch := records[2]
	if nonMatch[1] != "false" || nonMatch[4] != "" {
		t.Errorf("non-match row should have no confidence level: %v", nonMatch)
	}
	if nonMatch[7] != "DETERMINATE" {
		t.Errorf("quality column = %q, expected DETERMINATE", nonMatch[7])
	}
}

func TestFormatHeaderOnly(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(nil, nil, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Errorf("empty batch should emit the header only, got %d lines", len(lines))
	}
}

func TestRegisteredInDefaultRegistry(t *testing.T) {
	if _, ok := formatters.Get("csv"); !ok {
		t.Error("csv formatter should self-register")
	}
}
