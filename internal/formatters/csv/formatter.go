// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"origin-scan/internal/batch"
	"origin-scan/internal/detector"
	"origin-scan/internal/formatters"
	"origin-scan/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet analysis"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

var header = []string{
	"line_number", "is_match", "detection_types", "highest_confidence",
	"confidence_level", "importance_tier", "importance_score",
	"data_quality_flag", "fields_with_data_count", "rationale",
}

func (f *Formatter) Format(verdicts []detector.Verdict, summary *batch.Summary, options formatters.FormatterOptions) (string, error) {
	filtered := shared.FilterVerdicts(verdicts, options.ConfidenceLevel, options.MatchesOnly)

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}

	for _, v := range filtered {
		level := ""
		if v.IsMatch {
			level = shared.ConfidenceLevel(v.HighestConfidence)
		}
		row := []string{
			strconv.Itoa(v.LineNumber),
			strconv.FormatBool(v.IsMatch),
			strings.Join(v.DetectionTypes, "|"),
			strconv.FormatFloat(v.HighestConfidence, 'f', 2, 64),
			level,
			string(v.ImportanceTier),
			strconv.FormatFloat(v.ImportanceScore, 'f', 1, 64),
			string(v.DataQualityFlag),
			strconv.Itoa(v.FieldsWithDataCount),
			v.Rationale,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	return sb.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
