// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package importance classifies a record's commodity description into a
// strategic-importance tier, independent of the nationality verdict.
// Downstream analysts filter by strategic value regardless of match status,
// so the classifier runs on every record.
package importance

import (
	"origin-scan/internal/detector"
	"origin-scan/internal/normalize"
	"origin-scan/internal/reference"
)

// Classification is the tier outcome plus the keyword that produced it.
type Classification struct {
	Tier    detector.ImportanceTier
	Score   float64
	Keyword string
}

// Classifier holds the per-tier keyword lists for one run.
type Classifier struct {
	cats reference.Categories
}

func NewClassifier(ref *reference.Set) *Classifier {
	return &Classifier{cats: ref.Categories}
}

// Classify checks the description against the tier keyword lists, highest
// tier first so a record naming both a radar and office chairs classifies
// as TIER_1. No keyword match yields UNCLASSIFIED with the default score.
func (c *Classifier) Classify(fields *normalize.FieldSet) Classification {
	desc := fields.Get(string(detector.FieldDescription))
	if !desc.Empty() {
		if kw, ok := matchAny(desc.Canonical, c.cats.Tier1Canonical, c.cats.Tier1); ok {
			return Classification{Tier: detector.Tier1, Score: detector.TierScore[detector.Tier1], Keyword: kw}
		}
		if kw, ok := matchAny(desc.Canonical, c.cats.Tier2Canonical, c.cats.Tier2); ok {
			return Classification{Tier: detector.Tier2, Score: detector.TierScore[detector.Tier2], Keyword: kw}
		}
		if kw, ok := matchAny(desc.Canonical, c.cats.Tier3Canonical, c.cats.Tier3); ok {
			return Classification{Tier: detector.Tier3, Score: detector.TierScore[detector.Tier3], Keyword: kw}
		}
	}
	return Classification{Tier: detector.Unclassified, Score: detector.TierScore[detector.Unclassified]}
}

func matchAny(canonical string, patterns, raw []string) (string, bool) {
	for i, p := range patterns {
		if normalize.ContainsToken(canonical, p) {
			return raw[i], true
		}
	}
	return "", false
}
