// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"reflect"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lower case passthrough",
			input:    "huawei",
			expected: "huawei",
		},
		{
			name:     "case folding",
			input:    "HUAWEI Technologies",
			expected: "huawei technologies",
		},
		{
			name:     "full-width forms fold to ASCII",
			input:    "ＨＵＡＷＥＩ",
			expected: "huawei",
		},
		{
			name:     "diacritics removed",
			input:    "Huáwèi Téchnologies",
			expected: "huawei technologies",
		},
		{
			name:     "cyrillic homoglyphs folded",
			input:    "Huаwei", // Cyrillic а
			expected: "huawei",
		},
		{
			name:     "greek homoglyphs folded",
			input:    "Huaweι", // Greek ι
			expected: "huawei",
		},
		{
			name:     "whitespace collapsed",
			input:    "  Huawei \t  Technologies  ",
			expected: "huawei technologies",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "all whitespace",
			input:    " \t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonicalize(tt.input)
			if got != tt.expected {
				t.Errorf("Canonicalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		"ＨＵＡＷＥＩ",
		"Huáwèi Téchnologies",
		"  ZTE   Corporation  ",
		"H u a w e i",
	}
	for _, input := range inputs {
		once := Canonicalize(input)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeFieldDespacing(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		despaced string
	}{
		{
			name:     "spaced-out letters joined",
			input:    "H u a w e i",
			despaced: "huawei",
		},
		{
			name:     "mixed run keeps trailing word",
			input:    "H u a w e i Technologies",
			despaced: "huawei technologies",
		},
		{
			name:     "ordinary multi-word name untouched",
			input:    "Acme Machine Works",
			despaced: "",
		},
		{
			name:     "two singles are not evasion",
			input:    "A B Corporation",
			despaced: "",
		},
		{
			name:     "short field untouched",
			input:    "ZTE",
			despaced: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NormalizeField(tt.input)
			if field.Despaced != tt.despaced {
				t.Errorf("NormalizeField(%q).Despaced = %q, expected %q", tt.input, field.Despaced, tt.despaced)
			}
		})
	}
}

func TestFieldCandidates(t *testing.T) {
	spaced := NormalizeField("H u a w e i Technologies")
	expected := []string{"h u a w e i technologies", "huawei technologies"}
	if !reflect.DeepEqual(spaced.Candidates(), expected) {
		t.Errorf("Candidates() = %v, expected %v", spaced.Candidates(), expected)
	}

	plain := NormalizeField("Acme Corp")
	if !reflect.DeepEqual(plain.Candidates(), []string{"acme corp"}) {
		t.Errorf("Candidates() = %v, expected single canonical form", plain.Candidates())
	}

	empty := NormalizeField("   ")
	if empty.Candidates() != nil {
		t.Errorf("Candidates() for empty field = %v, expected nil", empty.Candidates())
	}
	if !empty.Empty() {
		t.Error("all-whitespace field should be Empty")
	}
}

func TestNormalizeFieldRepairsInvalidUTF8(t *testing.T) {
	field := NormalizeField("Huawei\xff Technologies")
	if field.Canonical == "" {
		t.Fatal("invalid UTF-8 should be repaired, not dropped")
	}
	for _, r := range field.Original {
		if r == 0xff {
			t.Error("invalid byte survived repair")
		}
	}
}

func TestFieldSet(t *testing.T) {
	fs := NewFieldSet(map[string]string{
		"counterparty_name": "HUAWEI",
		"vendor_name":       "  ",
	})

	if got := fs.Get("counterparty_name").Canonical; got != "huawei" {
		t.Errorf("Get(counterparty_name).Canonical = %q, expected %q", got, "huawei")
	}
	if !fs.Get("vendor_name").Empty() {
		t.Error("all-whitespace field should normalize to Empty")
	}
	if !fs.Get("absent_field").Empty() {
		t.Error("absent field should come back as zero Field")
	}
}
