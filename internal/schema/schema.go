// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package schema maps the fixed-position, tab-delimited record layouts onto
// the semantic field set the detectors expect. This is the only
// schema-specific code in the engine; a variant is resolved once per batch,
// never per record.
package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"origin-scan/internal/detector"
)

// NullMarker is the token the source layouts use for missing values.
const NullMarker = "NULL"

// ErrUnknownVariant is returned when no adapter is configured for a
// declared layout. It is fatal to the batch: field offsets cannot safely be
// guessed.
var ErrUnknownVariant = errors.New("unknown schema variant")

// MalformedRecordError reports a line whose column count does not match the
// declared variant. Malformed records are skipped and counted, never fatal.
type MalformedRecordError struct {
	LineNumber int
	Want, Got  int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: expected %d columns, got %d", e.LineNumber, e.Want, e.Got)
}

// Variant describes one fixed-position layout: its total column count and
// the offset of each semantic field.
type Variant struct {
	Name    string                     `yaml:"name"`
	Columns int                        `yaml:"columns"`
	Offsets map[detector.FieldName]int `yaml:"offsets"`
}

// builtinVariants covers the observed layouts. Offsets differ per layout
// for the same semantic fields; that variance is exactly what this package
// absorbs.
var builtinVariants = []Variant{
	{
		Name:    "v58",
		Columns: 58,
		Offsets: map[detector.FieldName]int{
			detector.FieldCounterpartyName:      12,
			detector.FieldVendorName:            13,
			detector.FieldCounterpartyCountry:   21,
			detector.FieldCounterpartyCountryNm: 22,
			detector.FieldPerformanceCountry:    30,
			detector.FieldPerformanceCountryNm:  31,
			detector.FieldDescription:           44,
			detector.FieldAwardAmount:           5,
			detector.FieldActionDate:            4,
		},
	},
	{
		Name:    "v101",
		Columns: 101,
		Offsets: map[detector.FieldName]int{
			detector.FieldCounterpartyName:      27,
			detector.FieldVendorName:            28,
			detector.FieldCounterpartyCountry:   44,
			detector.FieldCounterpartyCountryNm: 45,
			detector.FieldPerformanceCountry:    61,
			detector.FieldPerformanceCountryNm:  62,
			detector.FieldDescription:           83,
			detector.FieldAwardAmount:           9,
			detector.FieldActionDate:            8,
		},
	},
	{
		Name:    "v150",
		Columns: 150,
		Offsets: map[detector.FieldName]int{
			detector.FieldCounterpartyName:      35,
			detector.FieldVendorName:            36,
			detector.FieldCounterpartyCountry:   58,
			detector.FieldCounterpartyCountryNm: 59,
			detector.FieldPerformanceCountry:    90,
			detector.FieldPerformanceCountryNm:  91,
			detector.FieldDescription:           118,
			detector.FieldAwardAmount:           11,
			detector.FieldActionDate:            10,
		},
	},
	{
		Name:    "v206",
		Columns: 206,
		Offsets: map[detector.FieldName]int{
			detector.FieldCounterpartyName:      41,
			detector.FieldVendorName:            42,
			detector.FieldCounterpartyCountry:   73,
			detector.FieldCounterpartyCountryNm: 74,
			detector.FieldPerformanceCountry:    121,
			detector.FieldPerformanceCountryNm:  122,
			detector.FieldDescription:           160,
			detector.FieldAwardAmount:           14,
			detector.FieldActionDate:            13,
		},
	},
	{
		Name:    "v305",
		Columns: 305,
		Offsets: map[detector.FieldName]int{
			detector.FieldCounterpartyName:      52,
			detector.FieldVendorName:            53,
			detector.FieldCounterpartyCountry:   96,
			detector.FieldCounterpartyCountryNm: 97,
			detector.FieldPerformanceCountry:    167,
			detector.FieldPerformanceCountryNm:  168,
			detector.FieldDescription:           229,
			detector.FieldAwardAmount:           18,
			detector.FieldActionDate:            17,
		},
	},
}

// Adapter extracts semantic fields from raw lines of one variant.
type Adapter struct {
	variant Variant
}

// Registry holds the configured variants for a run.
type Registry struct {
	variants map[string]Variant
}

// NewRegistry returns a registry preloaded with the built-in variants.
func NewRegistry() *Registry {
	r := &Registry{variants: make(map[string]Variant, len(builtinVariants))}
	for _, v := range builtinVariants {
		r.variants[v.Name] = v
	}
	return r
}

// LoadFile merges variant definitions from a YAML file into the registry,
// overriding built-ins with the same name.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("reading schema file: %w", err)
	}
	var file struct {
		Variants []Variant `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing schema file %s: %w", path, err)
	}
	for _, v := range file.Variants {
		if v.Name == "" || v.Columns <= 0 {
			return fmt.Errorf("schema file %s: variant needs a name and a positive column count", path)
		}
		for field, off := range v.Offsets {
			if off < 0 || off >= v.Columns {
				return fmt.Errorf("schema file %s: variant %s: offset %d for %s outside 0..%d",
					path, v.Name, off, field, v.Columns-1)
			}
		}
		r.variants[v.Name] = v
	}
	return nil
}

// Names lists the configured variant names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Adapter returns the adapter for a declared variant, or ErrUnknownVariant.
func (r *Registry) Adapter(name string) (*Adapter, error) {
	v, ok := r.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (configured: %s)", ErrUnknownVariant, name, strings.Join(r.Names(), ", "))
	}
	return &Adapter{variant: v}, nil
}

// Variant returns the layout this adapter serves.
func (a *Adapter) Variant() Variant { return a.variant }

// Adapt builds an immutable Record from one raw tab-delimited line. Null
// markers and empty columns become absent fields. A column-count mismatch
// returns *MalformedRecordError.
func (a *Adapter) Adapt(lineNumber int, line string) (*detector.Record, error) {
	columns := strings.Split(line, "\t")
	if len(columns) != a.variant.Columns {
		return nil, &MalformedRecordError{LineNumber: lineNumber, Want: a.variant.Columns, Got: len(columns)}
	}

	fields := make(map[detector.FieldName]string, len(a.variant.Offsets))
	for name, offset := range a.variant.Offsets {
		value := strings.TrimSpace(columns[offset])
		if value == "" || strings.EqualFold(value, NullMarker) {
			continue
		}
		fields[name] = value
	}

	return &detector.Record{LineNumber: lineNumber, Fields: fields}, nil
}
