// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a detector
type CheckInfo struct {
	Name             string  // Name of the check (e.g., "COUNTRY_CODE")
	ShortDescription string  // Short description for the checks list
	BaseConfidence   float64 // Fixed confidence contributed by this detector
	Notes            string  // Corroboration or exclusion rules worth knowing
}

// checks describes the closed detector set. Kept here, beside the usage
// text, so the CLI help never drifts from what the engine runs.
var checks = []CheckInfo{
	{
		Name:             "COUNTRY_CODE",
		ShortDescription: "Exact country code/name match for the watched jurisdiction and its territory",
		BaseConfidence:   0.95,
		Notes:            "Territory codes score 0.85; Taiwan-class codes and names never match",
	},
	{
		Name:             "WATCHLIST",
		ShortDescription: "Counterparty name cross-reference against the export-control list",
		BaseConfidence:   0.95,
		Notes:            "List program and reason are carried into the rationale",
	},
	{
		Name:             "ENTITY_NAME",
		ShortDescription: "Word-boundary match of curated entity fragments in name fields",
		BaseConfidence:   0.70,
		Notes:            "Also checks the de-spaced evasion candidate",
	},
	{
		Name:             "GEOGRAPHY",
		ShortDescription: "Resolves ambiguous place names instead of asserting them",
		BaseConfidence:   0.60,
		Notes:            "Resolution survives only with a corroborating country-code signal",
	},
	{
		Name:             "SOURCING_PHRASE",
		ShortDescription: "Product-origin phrases in the award description",
		BaseConfidence:   0.30,
		Notes:            "Never stands alone; requires a country-code or entity-name signal",
	},
}

// ShowGeneralHelp prints the top-level usage text
func ShowGeneralHelp(noColor bool) {
	if noColor {
		color.NoColor = true
	}
	title := color.New(color.FgWhite, color.Bold)
	subtitle := color.New(color.FgCyan, color.Bold)

	title.Println("origin-scan - entity-nationality detection for procurement records")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  origin-scan -input records.tsv -schema v101 [options]")
	fmt.Println()
	subtitle.Println("Common options:")
	fmt.Println("  -input           input file of tab-delimited records (default: stdin)")
	fmt.Println("  -schema          schema variant name (v58, v101, v150, v206, v305)")
	fmt.Println("  -format          output format: text, json, csv, yaml")
	fmt.Println("  -confidence      confidence levels to show: high,medium,low or all")
	fmt.Println("  -checks          comma-separated detector names, or all")
	fmt.Println("  -profile         named profile from the config file")
	fmt.Println("  -matches-only    omit non-matching verdicts from output")
	fmt.Println("  -workers         worker count (default: NumCPU, capped at 8)")
	fmt.Println("  -help-checks     describe the available detectors")
	fmt.Println()
	fmt.Println("Reference list overrides: -entities, -sanctions, -exclusions,")
	fmt.Println("-categories, -places. A list that fails to load aborts the run.")
}

// ShowChecksHelp prints the detector table
func ShowChecksHelp(noColor bool) {
	if noColor {
		color.NoColor = true
	}
	subtitle := color.New(color.FgCyan, color.Bold)

	subtitle.Println("Available detectors:")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCONFIDENCE\tDESCRIPTION")
	for _, c := range checks {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", c.Name, c.BaseConfidence, c.ShortDescription)
	}
	w.Flush()
	fmt.Println()
	for _, c := range checks {
		if c.Notes != "" {
			fmt.Printf("  %s: %s\n", c.Name, c.Notes)
		}
	}
}
