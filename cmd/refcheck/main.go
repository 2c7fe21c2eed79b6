// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// refcheck lints reference list files before they are rolled out. It loads
// the lists exactly the way the scanner does, then reports problems the
// loader tolerates but a curator should fix: duplicate tokens, exclusion
// patterns that swallow watchlist entries, and category keywords that can
// never match.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"origin-scan/internal/detectors/countrycode"
	"origin-scan/internal/normalize"
	"origin-scan/internal/reference"
)

type lintFlags struct {
	entitiesFile   string
	sanctionsFile  string
	exclusionsFile string
	categoriesFile string
	placesFile     string
	noColor        bool
}

func main() {
	f := &lintFlags{}
	flag.StringVar(&f.entitiesFile, "entities", "", "entity watchlist file to lint")
	flag.StringVar(&f.sanctionsFile, "sanctions", "", "export-control list file to lint")
	flag.StringVar(&f.exclusionsFile, "exclusions", "", "exclusion list file to lint")
	flag.StringVar(&f.categoriesFile, "categories", "", "category keyword list file to lint")
	flag.StringVar(&f.placesFile, "places", "", "ambiguous place-name list file to lint")
	flag.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	flag.Parse()

	if f.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	ref, err := reference.Load(reference.Paths{
		Entities:   f.entitiesFile,
		Sanctions:  f.sanctionsFile,
		Exclusions: f.exclusionsFile,
		Categories: f.categoriesFile,
		Places:     f.placesFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	warnings := lint(ref)

	fmt.Printf("entities: %d entries\n", len(ref.Entities))
	fmt.Printf("sanctions: %d entries\n", len(ref.Sanctions))
	fmt.Printf("exclusions: %d entries\n", len(ref.Exclusions))
	fmt.Printf("places: %d entries\n", len(ref.Places))
	fmt.Printf("categories: %d/%d/%d keywords (tier 1/2/3)\n",
		len(ref.Categories.Tier1), len(ref.Categories.Tier2), len(ref.Categories.Tier3))
	fmt.Println()

	if len(warnings) == 0 {
		color.New(color.FgGreen).Println("No problems found")
		return
	}

	warn := color.New(color.FgYellow, color.Bold)
	for _, w := range warnings {
		warn.Print("warning: ")
		fmt.Println(w)
	}
	os.Exit(1)
}

// lint reports list problems that load cleanly but behave badly at scan
// time.
func lint(ref *reference.Set) []string {
	var warnings []string

	seen := make(map[string]string)
	for _, e := range ref.Entities {
		if prev, ok := seen[e.Canonical]; ok {
			warnings = append(warnings,
				fmt.Sprintf("entities: %q duplicates %q after normalization", e.Token, prev))
			continue
		}
		seen[e.Canonical] = e.Token
	}

	seen = make(map[string]string)
	for _, s := range ref.Sanctions {
		if prev, ok := seen[s.Canonical]; ok {
			warnings = append(warnings,
				fmt.Sprintf("sanctions: %q duplicates %q after normalization", s.Name, prev))
			continue
		}
		seen[s.Canonical] = s.Name
	}

	// An exclusion pattern that does not contain any watched token can
	// never fire: the engine only consults exclusions after a detector
	// produces a candidate signal.
	for _, x := range ref.Exclusions {
		hit := false
		for _, e := range ref.Entities {
			if normalize.ContainsToken(x.Canonical, e.Canonical) {
				hit = true
				break
			}
		}
		if !hit {
			for _, s := range ref.Sanctions {
				if normalize.ContainsToken(x.Canonical, s.Canonical) {
					hit = true
					break
				}
			}
		}
		if !hit {
			warnings = append(warnings,
				fmt.Sprintf("exclusions: %q contains no watched token and will never fire", x.Pattern))
		}
	}

	// A place token identical to an entity token would fight the entity
	// detector instead of disambiguating country names, and a place token
	// that IS the jurisdiction would suppress the country detector outright.
	for _, p := range ref.Places {
		if countrycode.IsJurisdictionValue(p.Canonical) {
			warnings = append(warnings,
				fmt.Sprintf("places: %q names the watched jurisdiction itself", p.Token))
			continue
		}
		for _, e := range ref.Entities {
			if p.Canonical == e.Canonical {
				warnings = append(warnings,
					fmt.Sprintf("places: %q is also an entity watchlist token", p.Token))
			}
		}
	}

	for tier, keywords := range map[string][]string{
		"tier_1": ref.Categories.Tier1Canonical,
		"tier_2": ref.Categories.Tier2Canonical,
		"tier_3": ref.Categories.Tier3Canonical,
	} {
		for _, k := range keywords {
			if k == "" {
				warnings = append(warnings,
					fmt.Sprintf("categories: %s has a keyword that normalizes to nothing", tier))
			}
		}
	}

	return warnings
}
