// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize canonicalizes raw field text before any matching occurs.
// Every function here is pure and deterministic; malformed byte sequences
// are replaced with U+FFFD rather than raised, so bad input never aborts
// a batch.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// foldTransform performs the Unicode stages of canonicalization in one pass:
// NFKD decomposition (which also resolves full-width/half-width forms via
// width folding), removal of combining marks (diacritics), and NFC
// recomposition.
var foldTransform = transform.Chain(
	width.Fold,
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// homoglyphs maps visually confusable characters to their Latin equivalents.
// The table is fixed; it covers the Cyrillic and Greek look-alikes observed
// in evasion attempts plus a few common substitutions. Keys are the
// lower-case forms produced by the earlier case-folding stage.
var homoglyphs = map[rune]rune{
	// Cyrillic
	'а': 'a', 'в': 'b', 'с': 'c', 'е': 'e', 'ё': 'e', 'н': 'h',
	'і': 'i', 'ј': 'j', 'к': 'k', 'м': 'm', 'о': 'o', 'р': 'p',
	'ѕ': 's', 'т': 't', 'у': 'y', 'х': 'x',
	// Greek
	'α': 'a', 'β': 'b', 'ε': 'e', 'η': 'n', 'ι': 'i', 'κ': 'k',
	'ν': 'v', 'ο': 'o', 'ρ': 'p', 'τ': 't', 'υ': 'u', 'χ': 'x',
	// Misc confusables
	'ℓ': 'l', 'ı': 'i',
}

// Field is the canonicalized form of one raw field value.
type Field struct {
	// Original is the raw value as it appeared in the record, UTF-8 repaired
	// but otherwise untouched. The false-positive filter matches against
	// this form.
	Original string

	// Canonical is the fully folded matching form: NFKC-equivalent, width
	// and diacritic folded, lower case, homoglyph folded, whitespace
	// collapsed.
	Canonical string

	// Despaced is an additional candidate produced when the field matches
	// the spaced-out-letters evasion pattern ("H u a w e i"); empty
	// otherwise.
	Despaced string
}

// Empty reports whether the field carries no matchable text.
func (f Field) Empty() bool {
	return f.Canonical == ""
}

// Candidates returns the matching forms for this field: the canonical form
// and, when present, the de-spaced candidate.
func (f Field) Candidates() []string {
	if f.Despaced != "" {
		return []string{f.Canonical, f.Despaced}
	}
	if f.Canonical == "" {
		return nil
	}
	return []string{f.Canonical}
}

// FieldSet holds the normalized forms of a record's semantic fields, keyed
// by semantic field name. A missing key means the field was absent.
type FieldSet struct {
	fields map[string]Field
}

// NewFieldSet normalizes each present raw field. All-whitespace and empty
// values normalize to the empty string and are retained with an empty
// canonical form so they can never produce a signal.
func NewFieldSet(raw map[string]string) *FieldSet {
	fs := &FieldSet{fields: make(map[string]Field, len(raw))}
	for name, value := range raw {
		fs.fields[name] = NormalizeField(value)
	}
	return fs
}

// Get returns the normalized field for name. Absent fields come back as the
// zero Field, which is Empty.
func (fs *FieldSet) Get(name string) Field {
	return fs.fields[name]
}

// NormalizeField canonicalizes a single raw field value.
func NormalizeField(raw string) Field {
	original := strings.ToValidUTF8(raw, string(utf8.RuneError))

	canonical := Canonicalize(original)

	f := Field{Original: original, Canonical: canonical}
	if despaced, ok := despace(canonical); ok {
		f.Despaced = despaced
	}
	return f
}

// Canonicalize applies the full folding pipeline to s: Unicode
// normalization, width and diacritic folding, case folding, homoglyph
// folding, and whitespace collapsing.
func Canonicalize(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		// The chain cannot fail on valid UTF-8; repaired input keeps its
		// replacement runes and continues through the remaining stages.
		folded = s
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if sub, ok := homoglyphs[r]; ok {
			r = sub
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// despace detects the spaced-out-letters evasion pattern: a run of three or
// more single characters separated by uniform whitespace. Mixed tokens are
// joined only where the single-character run occurs, so "H u a w e i
// Technologies" yields "huawei technologies".
func despace(canonical string) (string, bool) {
	tokens := strings.Fields(canonical)
	if len(tokens) < 3 {
		return "", false
	}

	singles := 0
	for _, t := range tokens {
		if utf8.RuneCountInString(t) == 1 {
			singles++
		}
	}
	// Require a dominant single-character run before rewriting; ordinary
	// multi-word names must pass through untouched.
	if singles < 3 {
		return "", false
	}

	var out []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out = append(out, run.String())
			run.Reset()
		}
	}
	runLen := 0
	for _, t := range tokens {
		if utf8.RuneCountInString(t) == 1 {
			run.WriteString(t)
			runLen++
			continue
		}
		if runLen >= 3 {
			flush()
		} else if runLen > 0 {
			// Short runs are not evidence of evasion; restore them as-is.
			restored := run.String()
			run.Reset()
			for _, r := range restored {
				out = append(out, string(r))
			}
		}
		runLen = 0
		out = append(out, t)
	}
	if runLen >= 3 {
		flush()
	} else if runLen > 0 {
		restored := run.String()
		for _, r := range restored {
			out = append(out, string(r))
		}
	}

	joined := strings.Join(out, " ")
	if joined == canonical {
		return "", false
	}
	return joined, true
}
