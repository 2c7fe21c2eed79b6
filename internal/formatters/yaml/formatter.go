// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	goyaml "gopkg.in/yaml.v3"

	"origin-scan/internal/batch"
	"origin-scan/internal/detector"
	"origin-scan/internal/formatters"
	"origin-scan/internal/formatters/shared"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML output for human-readable structured results"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

type response struct {
	Verdicts []detector.Verdict `yaml:"verdicts"`
	Summary  *batch.Summary     `yaml:"summary,omitempty"`
}

func (f *Formatter) Format(verdicts []detector.Verdict, summary *batch.Summary, options formatters.FormatterOptions) (string, error) {
	filtered := shared.FilterVerdicts(verdicts, options.ConfidenceLevel, options.MatchesOnly)
	if filtered == nil {
		filtered = []detector.Verdict{}
	}

	data, err := goyaml.Marshal(response{Verdicts: filtered, Summary: summary})
	if err != nil {
		return "", fmt.Errorf("formatting YAML: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
