// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"origin-scan/internal/batch"
	"origin-scan/internal/detector"
	"origin-scan/internal/formatters"
	"origin-scan/internal/formatters/shared"
)

// Formatter implements human-readable text output
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output for terminal review"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(verdicts []detector.Verdict, summary *batch.Summary, options formatters.FormatterOptions) (string, error) {
	filtered := shared.FilterVerdicts(verdicts, options.ConfidenceLevel, options.MatchesOnly)

	high := color.New(color.FgRed, color.Bold)
	medium := color.New(color.FgYellow)
	low := color.New(color.FgCyan)
	dim := color.New(color.Faint)

	prevNoColor := color.NoColor
	if options.NoColor {
		color.NoColor = true
	}
	defer func() { color.NoColor = prevNoColor }()

	var sb strings.Builder

	for _, v := range filtered {
		if v.IsMatch {
			level := shared.ConfidenceLevel(v.HighestConfidence)
			painter := low
			switch level {
			case "high":
				painter = high
			case "medium":
				painter = medium
			}
			sb.WriteString(painter.Sprintf("line %d: MATCH [%s] confidence %.2f",
				v.LineNumber, strings.Join(v.DetectionTypes, ", "), v.HighestConfidence))
			sb.WriteString(fmt.Sprintf("  importance=%s", v.ImportanceTier))
			sb.WriteString("\n")
			if options.Verbose {
				sb.WriteString(fmt.Sprintf("    %s\n", v.Rationale))
			}
			continue
		}

		if v.DataQualityFlag == detector.QualityIndeterminate {
			sb.WriteString(dim.Sprintf("line %d: no match (indeterminate, %d key fields populated)",
				v.LineNumber, v.FieldsWithDataCount))
			sb.WriteString("\n")
		} else if options.Verbose {
			sb.WriteString(dim.Sprintf("line %d: no match", v.LineNumber))
			sb.WriteString("\n")
		}
	}

	if summary != nil {
		sb.WriteString(formatSummary(summary))
	}

	return sb.String(), nil
}

func formatSummary(s *batch.Summary) string {
	var sb strings.Builder
	sb.WriteString("\nBatch summary:\n")
	sb.WriteString(fmt.Sprintf("  total records:        %d\n", s.TotalLines))
	sb.WriteString(fmt.Sprintf("  matched:              %d\n", s.Matched))
	sb.WriteString(fmt.Sprintf("  non-match (checked):  %d\n", s.NonMatchDeterminate))
	sb.WriteString(fmt.Sprintf("  non-match (no data):  %d\n", s.NonMatchIndeterminate))
	sb.WriteString(fmt.Sprintf("  skipped malformed:    %d\n", s.SkippedMalformed))
	if len(s.ByDetectionType) > 0 {
		sb.WriteString("  by detection type:\n")
		for _, kind := range []string{
			"country_code_match", "watchlist_match", "hong_kong_match",
			"entity_name_match", "geographic_ambiguity_resolved", "sourcing_phrase_match",
		} {
			if n, ok := s.ByDetectionType[kind]; ok {
				sb.WriteString(fmt.Sprintf("    %-30s %d\n", kind, n))
			}
		}
	}
	return sb.String()
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
