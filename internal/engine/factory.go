// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strings"

	"origin-scan/internal/detector"
	"origin-scan/internal/detectors/countrycode"
	"origin-scan/internal/detectors/entityname"
	"origin-scan/internal/detectors/geography"
	"origin-scan/internal/detectors/sourcing"
	"origin-scan/internal/detectors/watchlist"
	"origin-scan/internal/reference"
)

// ParseChecksToRun converts a slice of detector names into an
// enabled-checks map. An empty slice or ["all"] enables every detector.
func ParseChecksToRun(checks []string) map[string]bool {
	result := map[string]bool{
		"COUNTRY_CODE":    false,
		"ENTITY_NAME":     false,
		"WATCHLIST":       false,
		"SOURCING_PHRASE": false,
		"GEOGRAPHY":       false,
	}

	if len(checks) == 0 || (len(checks) == 1 && checks[0] == "all") {
		for key := range result {
			result[key] = true
		}
		return result
	}

	for _, check := range checks {
		if checkStr := strings.ToUpper(strings.TrimSpace(check)); checkStr != "" {
			if _, exists := result[checkStr]; exists {
				result[checkStr] = true
			}
		}
	}

	return result
}

// BuildDetectorSet constructs the closed set of signal detectors filtered
// by the enabled checks map. New detectors are added here, never by
// branching on type tags at call sites.
func BuildDetectorSet(enabledChecks map[string]bool, ref *reference.Set) []detector.Detector {
	var result []detector.Detector

	if enabledChecks["COUNTRY_CODE"] {
		result = append(result, countrycode.New())
	}
	if enabledChecks["ENTITY_NAME"] {
		result = append(result, entityname.New(ref))
	}
	if enabledChecks["WATCHLIST"] {
		result = append(result, watchlist.New(ref))
	}
	if enabledChecks["SOURCING_PHRASE"] {
		result = append(result, sourcing.New())
	}
	if enabledChecks["GEOGRAPHY"] {
		result = append(result, geography.New(ref))
	}

	return result
}
