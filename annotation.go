// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"fmt"
	"math"
	"strings"

	"github.com/sassoftware/pdf-annot/logger"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Subtype identifies an annotation's kind. Only a small closed set of
// text-markup subtypes is supported; anything else is filtered out
// before reaching the engine.
type Subtype string

const (
	SubtypeText      Subtype = "Text"
	SubtypeHighlight Subtype = "Highlight"
	SubtypeSquiggly  Subtype = "Squiggly"
	SubtypeStrikeOut Subtype = "StrikeOut"
	SubtypeUnderline Subtype = "Underline"
)

var supportedSubtypes = map[Subtype]bool{
	SubtypeText:      true,
	SubtypeHighlight: true,
	SubtypeSquiggly:  true,
	SubtypeStrikeOut: true,
	SubtypeUnderline: true,
}

// Supported reports whether the subtype is handled by the engine.
func (s Subtype) Supported() bool {
	return supportedSubtypes[s]
}

// substitutions maps TeX ligatures and other common odd glyphs to
// their plain-ASCII expansions.
var substitutions = map[rune]string{
	'ﬀ': "ff",
	'ﬁ': "fi",
	'ﬂ': "fl",
	'ﬃ': "ffi",
	'ﬄ': "ffl",
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	'…': "...",
}

func substitute(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if sub, ok := substitutions[r]; ok {
			b.WriteString(sub)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// decodeTextString decodes a PDF text string: UTF-16 when tagged with
// a byte-order mark, otherwise passed through unchanged.
func decodeTextString(s string) string {
	if strings.HasPrefix(s, "\xfe\xff") || strings.HasPrefix(s, "\xff\xfe") {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if out, _, err := transform.String(dec, s); err == nil {
			return out
		}
	}
	return s
}

// normalizeContents decodes a reviewer comment, normalizes line
// endings and applies the substitution table.
func normalizeContents(s string) string {
	s = decodeTextString(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return substitute(s)
}

// MissingText is returned by Text for an annotation that has boxes but
// accreted no text: a matching anomaly upstream, not a crash.
const MissingText = "(XXX: missing text!)"

// An Annotation is one marker on a page together with the text it
// visually covers. Its text buffer is written exclusively by the page
// renderer while that page is walked, and is immutable afterwards.
type Annotation struct {
	Page     *Page
	Subtype  Subtype
	Boxes    []Rect // hit-area, one rect per highlighted line; nil for point annotations
	Rect     *Rect  // reference rectangle, used for positioning point annotations
	Contents string // reviewer comment, already normalized
	Author   string

	text string // accreted during rendering
}

// capture feeds one piece of matched text, or a line-break event, into
// the annotation's buffer. On a break the buffer's trailing hyphen is
// elided (joining words hyphenated across lines); otherwise a single
// space is appended unless one is already there, so repeated breaks
// collapse. Ordinary text is appended verbatim.
func (a *Annotation) capture(text string) {
	if text == "\n" {
		switch {
		case strings.HasSuffix(a.text, "-"):
			a.text = a.text[:len(a.text)-1]
		case !strings.HasSuffix(a.text, " "):
			a.text += " "
		}
		return
	}
	a.text += text
}

// Text finalizes and returns the accreted text: trimmed, with the
// substitution table applied. An annotation without boxes never
// receives text and yields "". Boxes with an empty buffer yield the
// MissingText sentinel.
func (a *Annotation) Text() string {
	if len(a.Boxes) == 0 {
		return ""
	}
	if a.text == "" {
		return MissingText
	}
	return substitute(strings.TrimSpace(a.text))
}

// StartPos computes the annotation's position for ordering: the
// top-left corner of the reference rectangle if present, else of the
// first box. Annotations with neither have no position.
func (a *Annotation) StartPos() (Pos, bool) {
	var r Rect
	switch {
	case a.Rect != nil:
		r = *a.Rect
	case len(a.Boxes) > 0:
		r = a.Boxes[0]
	default:
		return Pos{}, false
	}
	return Pos{Page: a.Page, X: math.Min(r.X0, r.X1), Y: math.Max(r.Y0, r.Y1)}, true
}

// A RawAnnotation is an annotation record as supplied by the document
// layer, before geometry resolution.
type RawAnnotation struct {
	Subtype    string
	QuadPoints []float64
	Rect       *Rect
	Contents   string
	Author     string
}

// resolveAnnotation builds an Annotation from a raw record. It returns
// (nil, nil) for unsupported subtypes, which are silently filtered,
// and an error for records whose geometry cannot be resolved.
func resolveAnnotation(page *Page, raw RawAnnotation) (*Annotation, error) {
	subtype := Subtype(raw.Subtype)
	if !subtype.Supported() {
		logger.Debug(fmt.Sprintf("Skipping unsupported annotation subtype: page=%d subtype=%q", page.Index+1, raw.Subtype))
		return nil, nil
	}

	var boxes []Rect
	if raw.QuadPoints != nil {
		var err error
		boxes, err = boxesFromQuadPoints(raw.QuadPoints)
		if err != nil {
			return nil, fmt.Errorf("page %d %s annotation: %w", page.Index+1, subtype, err)
		}
	}

	return &Annotation{
		Page:     page,
		Subtype:  subtype,
		Boxes:    boxes,
		Rect:     raw.Rect,
		Contents: normalizeContents(raw.Contents),
		Author:   decodeTextString(raw.Author),
	}, nil
}
