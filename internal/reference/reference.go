// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reference loads the curated lists the engine depends on: the
// entity-name watchlist, the export-control cross-reference list, the
// false-positive exclusion list, the strategic-category keyword list, and
// the ambiguous place-name list. All five are loaded once per run, before
// workers start, and are immutably shared afterwards.
package reference

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"origin-scan/internal/normalize"
)

// Embedded default reference data. Overridable per run via explicit file
// paths; an override that is missing or unparseable is fatal, never a
// silent fallback to these defaults.
//
//go:embed data/entities.yaml
var entitiesDefault []byte

//go:embed data/sanctions.yaml
var sanctionsDefault []byte

//go:embed data/exclusions.yaml
var exclusionsDefault []byte

//go:embed data/categories.yaml
var categoriesDefault []byte

//go:embed data/places.yaml
var placesDefault []byte

// LoadError reports a reference list that is missing or unparseable at
// startup. It is always fatal: running with an empty or partial list would
// silently degrade detection quality without signal.
type LoadError struct {
	List string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("reference list %q: %v", e.List, e.Err)
	}
	return fmt.Sprintf("reference list %q (%s): %v", e.List, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EntityEntry is one curated entity-name fragment with its category.
type EntityEntry struct {
	Token    string `yaml:"token"`
	Category string `yaml:"category"`

	// Canonical is the fragment in matching form, computed at load time.
	Canonical string `yaml:"-"`
}

// SanctionEntry is one entry of the export-control cross-reference list.
// The list is higher-trust than the entity watchlist and its reason is
// carried into the verdict rationale.
type SanctionEntry struct {
	Name    string `yaml:"name"`
	Program string `yaml:"program"`
	Reason  string `yaml:"reason"`

	Canonical string `yaml:"-"`
}

// ExclusionEntry is one known false-positive collision: any signal whose
// source text matches Pattern is discarded, with Reason recorded.
type ExclusionEntry struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason"`

	Canonical string `yaml:"-"`
}

// AmbiguousPlace is a place-name token shared between the watched
// jurisdiction and an unrelated one (a US town, a surname, a province name
// elsewhere). Matches on these tokens are suppressed unless a country-code
// signal corroborates them.
type AmbiguousPlace struct {
	Token string `yaml:"token"`
	Note  string `yaml:"note"`

	// JurisdictionLinked marks tokens that, when corroborated by a
	// country-code signal, genuinely evidence the watched jurisdiction
	// (historical exonyms, province names). Unlinked tokens only ever
	// suppress.
	JurisdictionLinked bool `yaml:"jurisdiction_linked"`

	Canonical string `yaml:"-"`
}

// Categories holds the strategic-importance keyword lists, one per tier.
type Categories struct {
	Tier1 []string `yaml:"tier_1"`
	Tier2 []string `yaml:"tier_2"`
	Tier3 []string `yaml:"tier_3"`

	// Canonical forms, computed at load time, index-aligned with the
	// corresponding raw lists.
	Tier1Canonical []string `yaml:"-"`
	Tier2Canonical []string `yaml:"-"`
	Tier3Canonical []string `yaml:"-"`
}

// Set is the full read-only reference data for one run.
type Set struct {
	Entities   []EntityEntry
	Sanctions  []SanctionEntry
	Exclusions []ExclusionEntry
	Places     []AmbiguousPlace
	Categories Categories
}

// Paths names optional override files for each list. Empty fields use the
// embedded defaults.
type Paths struct {
	Entities   string
	Sanctions  string
	Exclusions string
	Categories string
	Places     string
}

type entitiesFile struct {
	Entities []EntityEntry `yaml:"entities"`
}

type sanctionsFile struct {
	Entries []SanctionEntry `yaml:"entries"`
}

type exclusionsFile struct {
	Exclusions []ExclusionEntry `yaml:"exclusions"`
}

type categoriesFile struct {
	Categories Categories `yaml:"categories"`
}

type placesFile struct {
	Places []AmbiguousPlace `yaml:"places"`
}

// Load builds the reference Set from the embedded defaults, applying any
// file overrides in paths. Any failure is a *LoadError.
func Load(paths Paths) (*Set, error) {
	set := &Set{}

	var ef entitiesFile
	if err := loadList("entities", paths.Entities, entitiesDefault, &ef); err != nil {
		return nil, err
	}
	set.Entities = ef.Entities

	var sf sanctionsFile
	if err := loadList("sanctions", paths.Sanctions, sanctionsDefault, &sf); err != nil {
		return nil, err
	}
	set.Sanctions = sf.Entries

	var xf exclusionsFile
	if err := loadList("exclusions", paths.Exclusions, exclusionsDefault, &xf); err != nil {
		return nil, err
	}
	set.Exclusions = xf.Exclusions

	var cf categoriesFile
	if err := loadList("categories", paths.Categories, categoriesDefault, &cf); err != nil {
		return nil, err
	}
	set.Categories = cf.Categories

	var pf placesFile
	if err := loadList("places", paths.Places, placesDefault, &pf); err != nil {
		return nil, err
	}
	set.Places = pf.Places

	if err := set.validate(); err != nil {
		return nil, err
	}
	set.canonicalize()
	return set, nil
}

// loadList reads one list from path, or from the embedded fallback when
// path is empty.
func loadList(name, path string, fallback []byte, out interface{}) error {
	data := fallback
	if path != "" {
		var err error
		data, err = os.ReadFile(filepath.Clean(path))
		if err != nil {
			return &LoadError{List: name, Path: path, Err: err}
		}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &LoadError{List: name, Path: path, Err: err}
	}
	return nil
}

// validate rejects lists that could silently degrade detection quality.
func (s *Set) validate() error {
	if len(s.Entities) == 0 {
		return &LoadError{List: "entities", Err: fmt.Errorf("list is empty")}
	}
	if len(s.Sanctions) == 0 {
		return &LoadError{List: "sanctions", Err: fmt.Errorf("list is empty")}
	}
	for i, e := range s.Entities {
		if e.Token == "" {
			return &LoadError{List: "entities", Err: fmt.Errorf("entry %d has an empty token", i)}
		}
	}
	for i, e := range s.Sanctions {
		if e.Name == "" {
			return &LoadError{List: "sanctions", Err: fmt.Errorf("entry %d has an empty name", i)}
		}
	}
	for i, e := range s.Exclusions {
		if e.Pattern == "" {
			return &LoadError{List: "exclusions", Err: fmt.Errorf("entry %d has an empty pattern", i)}
		}
	}
	return nil
}

// canonicalize precomputes the matching form of every pattern so detectors
// never fold list text per record.
func (s *Set) canonicalize() {
	for i := range s.Entities {
		s.Entities[i].Canonical = normalize.Canonicalize(s.Entities[i].Token)
	}
	for i := range s.Sanctions {
		s.Sanctions[i].Canonical = normalize.Canonicalize(s.Sanctions[i].Name)
	}
	for i := range s.Exclusions {
		s.Exclusions[i].Canonical = normalize.Canonicalize(s.Exclusions[i].Pattern)
	}
	for i := range s.Places {
		s.Places[i].Canonical = normalize.Canonicalize(s.Places[i].Token)
	}
	c := &s.Categories
	c.Tier1Canonical = canonicalizeAll(c.Tier1)
	c.Tier2Canonical = canonicalizeAll(c.Tier2)
	c.Tier3Canonical = canonicalizeAll(c.Tier3)
}

func canonicalizeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = normalize.Canonicalize(s)
	}
	return out
}
