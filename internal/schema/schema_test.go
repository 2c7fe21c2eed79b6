// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"origin-scan/internal/detector"
)

// makeLine builds a tab-delimited line with the given column count,
// populating specific offsets and filling the rest with the null marker.
func makeLine(columns int, values map[int]string) string {
	cols := make([]string, columns)
	for i := range cols {
		cols[i] = NullMarker
	}
	for offset, value := range values {
		cols[offset] = value
	}
	return strings.Join(cols, "\t")
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"v58", "v101", "v150", "v206", "v305"} {
		if _, err := r.Adapter(name); err != nil {
			t.Errorf("built-in variant %s missing: %v", name, err)
		}
	}
}

func TestRegistryUnknownVariant(t *testing.T) {
	r := NewRegistry()
	_, err := r.Adapter("v999")
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if !strings.Contains(err.Error(), "v999") {
		t.Errorf("error %q should name the requested variant", err)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	got := strings.Join(r.Names(), ",")
	want := "v101,v150,v206,v305,v58"
	if got != want {
		t.Errorf("Names() = %s, expected sorted order %s", got, want)
	}

	// The unknown-variant message embeds Names(), so it must be stable too.
	_, err := r.Adapter("v999")
	if err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("error %v should list variants in sorted order", err)
	}
}

func TestAdapt(t *testing.T) {
	r := NewRegistry()
	adapter, err := r.Adapter("v58")
	if err != nil {
		t.Fatalf("getting v58 adapter: %v", err)
	}
	offsets := adapter.Variant().Offsets

	line := makeLine(58, map[int]string{
		offsets[detector.FieldCounterpartyName]:    "Huawei Technologies",
		offsets[detector.FieldCounterpartyCountry]: "CN",
		offsets[detector.FieldDescription]:         "  network routers  ",
	})

	rec, err := adapter.Adapt(7, line)
	if err != nil {
		t.Fatalf("Adapt failed: %v", err)
	}

	if rec.LineNumber != 7 {
		t.Errorf("LineNumber = %d, expected 7", rec.LineNumber)
	}
	if got := rec.Field(detector.FieldCounterpartyName); got != "Huawei Technologies" {
		t.Errorf("counterparty name = %q", got)
	}
	if got := rec.Field(detector.FieldDescription); got != "network routers" {
		t.Errorf("description should be trimmed, got %q", got)
	}
	if rec.HasField(detector.FieldVendorName) {
		t.Error("null-marker column should become an absent field")
	}
}

func TestAdaptNullHandling(t *testing.T) {
	r := NewRegistry()
	adapter, _ := r.Adapter("v58")
	offsets := adapter.Variant().Offsets

	line := makeLine(58, map[int]string{
		offsets[detector.FieldCounterpartyName]:    "null", // case-insensitive marker
		offsets[detector.FieldVendorName]:          "   ",  // whitespace only
		offsets[detector.FieldCounterpartyCountry]: "CN",
	})

	rec, err := adapter.Adapt(1, line)
	if err != nil {
		t.Fatalf("Adapt failed: %v", err)
	}
	if rec.HasField(detector.FieldCounterpartyName) {
		t.Error("lowercase null marker should become an absent field")
	}
	if rec.HasField(detector.FieldVendorName) {
		t.Error("whitespace-only column should become an absent field")
	}
	if !rec.HasField(detector.FieldCounterpartyCountry) {
		t.Error("populated column lost")
	}
}

func TestAdaptMalformedLine(t *testing.T) {
	r := NewRegistry()
	adapter, _ := r.Adapter("v58")

	_, err := adapter.Adapt(12, "only\tthree\tcolumns")
	if err == nil {
		t.Fatal("expected error for wrong column count")
	}

	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedRecordError, got %T", err)
	}
	if malformed.LineNumber != 12 || malformed.Want != 58 || malformed.Got != 3 {
		t.Errorf("malformed error = %+v, expected line 12, want 58, got 3", malformed)
	}
}

func TestVariantsDifferInOffsets(t *testing.T) {
	r := NewRegistry()
	a58, _ := r.Adapter("v58")
	a101, _ := r.Adapter("v101")

	off58 := a58.Variant().Offsets[detector.FieldCounterpartyName]
	off101 := a101.Variant().Offsets[detector.FieldCounterpartyName]
	if off58 == off101 {
		t.Error("variants should map the same semantic field to different offsets")
	}

	// Same semantic field set regardless of layout.
	if len(a58.Variant().Offsets) != len(a101.Variant().Offsets) {
		t.Error("all variants should expose the same semantic fields")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemas.yaml")
	content := `variants:
  - name: v9
    columns: 9
    offsets:
      counterparty_name: 0
      counterparty_country_code: 3
      free_text_description: 8
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing schema file: %v", err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	adapter, err := r.Adapter("v9")
	if err != nil {
		t.Fatalf("loaded variant missing: %v", err)
	}

	rec, err := adapter.Adapt(1, "Acme Corp\tx\tx\tCN\tx\tx\tx\tx\trouters")
	if err != nil {
		t.Fatalf("Adapt with loaded variant failed: %v", err)
	}
	if got := rec.Field(detector.FieldCounterpartyCountry); got != "CN" {
		t.Errorf("country code = %q, expected CN", got)
	}
}

func TestLoadFileRejectsBadOffsets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := `variants:
  - name: broken
    columns: 5
    offsets:
      counterparty_name: 9
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing schema file: %v", err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err == nil {
		t.Fatal("expected error for out-of-range offset")
	}
}
