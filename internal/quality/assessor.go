// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package quality distinguishes a trusted non-match from one caused by
// missing data. A record with too few identifying fields populated cannot
// support "we checked and it's not a match", so it is flagged INDETERMINATE
// with the exact missing fields recorded for audit.
package quality

import (
	"fmt"
	"strings"

	"origin-scan/internal/detector"
)

// KeyFields are the identifying fields whose absence makes a non-match
// untrustworthy.
var KeyFields = []detector.FieldName{
	detector.FieldCounterpartyName,
	detector.FieldVendorName,
	detector.FieldCounterpartyCountry,
	detector.FieldCounterpartyCountryNm,
	detector.FieldPerformanceCountry,
}

// DeterminateThreshold is the minimum number of populated key fields for a
// non-match to count as a true negative.
const DeterminateThreshold = 2

// Assessment is the data-quality outcome for a non-matching record.
type Assessment struct {
	Flag                detector.DataQualityFlag
	FieldsWithDataCount int
	MissingFields       []detector.FieldName
}

// Assess counts populated key fields on the record. Below the threshold the
// outcome is INDETERMINATE, naming the missing fields; otherwise
// DETERMINATE.
func Assess(rec *detector.Record) Assessment {
	a := Assessment{}
	for _, name := range KeyFields {
		if rec.HasField(name) {
			a.FieldsWithDataCount++
		} else {
			a.MissingFields = append(a.MissingFields, name)
		}
	}

	if a.FieldsWithDataCount < DeterminateThreshold {
		a.Flag = detector.QualityIndeterminate
	} else {
		a.Flag = detector.QualityDeterminate
	}
	return a
}

// Rationale renders the assessment for the verdict's rationale field, so
// consumers can audit the difference between "not a match" and "could not
// check".
func (a Assessment) Rationale() string {
	if a.Flag == detector.QualityDeterminate {
		return fmt.Sprintf("no signals; %d of %d key fields populated", a.FieldsWithDataCount, len(KeyFields))
	}
	missing := make([]string, len(a.MissingFields))
	for i, f := range a.MissingFields {
		missing[i] = string(f)
	}
	return fmt.Sprintf("indeterminate: %d of %d key fields populated; missing: %s",
		a.FieldsWithDataCount, len(KeyFields), strings.Join(missing, ", "))
}
