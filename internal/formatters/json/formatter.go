// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"origin-scan/internal/batch"
	"origin-scan/internal/detector"
	"origin-scan/internal/formatters"
	"origin-scan/internal/formatters/shared"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type response struct {
	Verdicts []detector.Verdict `json:"verdicts"`
	Summary  *batch.Summary     `json:"summary,omitempty"`
}

func (f *Formatter) Format(verdicts []detector.Verdict, summary *batch.Summary, options formatters.FormatterOptions) (string, error) {
	filtered := shared.FilterVerdicts(verdicts, options.ConfidenceLevel, options.MatchesOnly)
	if filtered == nil {
		filtered = []detector.Verdict{}
	}

	jsonData, err := json.MarshalIndent(response{Verdicts: filtered, Summary: summary}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting JSON: %w", err)
	}
	return string(jsonData), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
