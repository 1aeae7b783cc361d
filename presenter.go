// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/sassoftware/pdf-annot/logger"
	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	bulletIndent1 = " * "
	bulletIndent2 = "   "
	quoteIndent   = bulletIndent2 + ">"
)

// DefaultSubtypes is the subtype order used for grouped output.
var DefaultSubtypes = []Subtype{SubtypeUnderline, SubtypeText, SubtypeSquiggly, SubtypeHighlight}

// DefaultTags is the reviewer tag vocabulary recognized in comments.
var DefaultTags = []string{"**Q**", "**about**", "**arg**", "**enemy**", "**method**", "**sig**"}

// A Presenter renders completed annotations as grouped, wrapped
// markdown prose. It consumes the engine's ordered output and the
// outline locator; it never mutates annotation text, only the comment
// of annotations grouped under a tag.
type Presenter struct {
	locator *Locator
	wrap    int // wrap column; 0 disables wrapping
}

// NewPresenter creates a presenter. locator may be nil when the
// document has no outline.
func NewPresenter(locator *Locator, wrap int) *Presenter {
	return &Presenter{locator: locator, wrap: wrap}
}

// formatPos labels an annotation with its 1-based page number and, if
// one precedes it, the nearest outline title.
func (pr *Presenter) formatPos(a *Annotation) string {
	if pos, ok := a.StartPos(); ok {
		if o := pr.locator.Nearest(pos); o != nil {
			return fmt.Sprintf("Page %d (%s)", a.Page.Index+1, o.Title)
		}
	}
	return fmt.Sprintf("Page %d", a.Page.Index+1)
}

// fill greedily wraps text at width columns, prefixing the first line
// with initial and continuation lines with subsequent.
func fill(text string, width int, initial, subsequent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return initial
	}
	var b strings.Builder
	line := initial + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			b.WriteString(line)
			b.WriteByte('\n')
			line = subsequent + word
			continue
		}
		line += " " + word
	}
	b.WriteString(line)
	return b.String()
}

// formatBullet renders paragraphs as one markdown bullet. quotePos and
// quoteLen select a run of paragraphs formatted as a blockquote;
// quotePos 0 means no quote.
func (pr *Presenter) formatBullet(paras []string, quotePos, quoteLen int) string {
	if quotePos > 0 && (quoteLen <= 0 || quotePos+quoteLen > len(paras)) {
		panic(fmt.Sprintf("formatBullet: bad quote range %d+%d over %d paragraphs", quotePos, quoteLen, len(paras)))
	}

	var ret string
	if pr.wrap > 0 {
		ret = fill(paras[0], pr.wrap, bulletIndent1, bulletIndent2)
	} else {
		ret = bulletIndent1 + paras[0]
	}

	for npara := 1; npara < len(paras); npara++ {
		inQuote := quotePos > 0 && npara >= quotePos && npara < quotePos+quoteLen

		// A paragraph break, except straight into a quote where the
		// extra blank line is not needed.
		if npara == quotePos {
			ret += "\n"
		} else {
			ret += "\n\n"
		}

		if pr.wrap > 0 {
			indent := bulletIndent2
			if inQuote {
				indent = quoteIndent
			}
			ret += fill(paras[npara], pr.wrap, indent, indent)
		} else {
			if inQuote {
				ret += quoteIndent + paras[npara]
			} else {
				ret += bulletIndent2 + paras[npara]
			}
		}
	}
	return ret
}

func splitParas(s string) []string {
	var paras []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			paras = append(paras, line)
		}
	}
	return paras
}

// formatAnnot renders one annotation. Short single-paragraph text with
// at most a one-line comment collapses onto one quoted line; longer
// text becomes a blockquote followed by the comment paragraphs. An
// annotation with neither text nor comment has nothing to show and is
// reported as false.
func (pr *Presenter) formatAnnot(a *Annotation, extra string) (string, bool) {
	var text []string
	if raw := a.Text(); raw != "" {
		text = splitParas(strings.TrimSpace(raw))
	}
	comment := splitParas(a.Contents)

	if len(text) == 0 && len(comment) == 0 {
		logger.Error(fmt.Sprintf("annotation with no text and no comment: page=%d subtype=%s", a.Page.Index+1, a.Subtype))
		return "", false
	}

	label := pr.formatPos(a)
	if extra != "" {
		label += " " + extra
	}
	label += ":\n"

	// Short text, no embedded stops or quotes, short or absent
	// comment: quote the text and merge everything onto one line.
	if len(text) == 1 && len(strings.Fields(text[0])) <= 10 &&
		!strings.Contains(text[0], `"`) && !strings.Contains(text[0], ". ") &&
		len(comment) <= 1 {
		msg := label + ` "` + text[0] + `"`
		if len(comment) == 1 {
			msg += " -- " + comment[0]
		}
		return pr.formatBullet([]string{msg}, 0, 0) + "\n", true
	}

	// No text and a single-paragraph comment also fits one line.
	if len(text) == 0 && len(comment) == 1 {
		msg := label + " " + comment[0]
		return pr.formatBullet([]string{msg}, 0, 0) + "\n", true
	}

	paras := append([]string{label}, append(text, comment...)...)
	quotePos, quoteLen := 0, 0
	if len(text) > 0 {
		quotePos, quoteLen = 1, len(text)
	}
	return pr.formatBullet(paras, quotePos, quoteLen) + "\n", true
}

// PrintAll writes every annotation in document order, labelled with
// its subtype.
func (pr *Presenter) PrintAll(w io.Writer, annots []*Annotation) error {
	for _, a := range annots {
		msg, ok := pr.formatAnnot(a, string(a.Subtype))
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}

const untaggedBucket = "untagged"

// PrintAllGrouped writes annotations grouped by subtype and, when tags
// are given, by the reviewer tags found in their comments. A matched
// tag is stripped from the comment before printing; annotations
// matching no tag land in an "untagged" section.
func (pr *Presenter) PrintAllGrouped(w io.Writer, annots []*Annotation, subtypes []Subtype, tags []string) error {
	titler := cases.Title(language.English)
	printedHeader := false
	printHeader := func(header string, level int) error {
		if printedHeader {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		} else {
			printedHeader = true
		}
		_, err := fmt.Fprintf(w, "%s %s\n\n", strings.Repeat("#", level), titler.String(header))
		return err
	}
	printAnnot := func(a *Annotation) error {
		msg, ok := pr.formatAnnot(a, "")
		if !ok {
			return nil
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	if len(tags) == 0 {
		buckets := make(map[Subtype][]*Annotation)
		for _, a := range annots {
			buckets[a.Subtype] = append(buckets[a.Subtype], a)
		}
		for _, subtype := range subtypes {
			if len(buckets[subtype]) == 0 {
				continue
			}
			if err := printHeader(string(subtype), 1); err != nil {
				return err
			}
			for _, a := range buckets[subtype] {
				if err := printAnnot(a); err != nil {
					return err
				}
			}
		}
		return nil
	}

	buckets := make(map[Subtype]map[string][]*Annotation, len(subtypes))
	for _, subtype := range subtypes {
		buckets[subtype] = make(map[string][]*Annotation, len(tags)+1)
	}
	for _, a := range annots {
		bucket, ok := buckets[a.Subtype]
		if !ok {
			continue
		}
		missed := 0
		for _, tag := range tags {
			if a.Contents != "" && strings.Contains(a.Contents, tag) {
				bucket[tag] = append(bucket[tag], a)
			} else {
				missed++
			}
		}
		if missed == len(tags) {
			bucket[untaggedBucket] = append(bucket[untaggedBucket], a)
		}
	}

	for _, subtype := range subtypes {
		bucket := buckets[subtype]
		empty := true
		for _, as := range bucket {
			if len(as) > 0 {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		if err := printHeader(string(subtype), 1); err != nil {
			return err
		}
		for _, tag := range tags {
			if len(bucket[tag]) == 0 {
				continue
			}
			if err := printHeader(strings.ReplaceAll(tag, "**", ""), 2); err != nil {
				return err
			}
			for _, a := range bucket[tag] {
				a.Contents = strings.ReplaceAll(a.Contents, tag, "")
				if err := printAnnot(a); err != nil {
					return err
				}
			}
		}
		if len(bucket[untaggedBucket]) > 0 {
			if err := printHeader(untaggedBucket, 2); err != nil {
				return err
			}
			for _, a := range bucket[untaggedBucket] {
				if err := printAnnot(a); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// HTML renders the grouped markdown report and converts it to HTML.
func (pr *Presenter) HTML(w io.Writer, annots []*Annotation, subtypes []Subtype, tags []string) error {
	var buf bytes.Buffer
	if err := pr.PrintAllGrouped(&buf, annots, subtypes, tags); err != nil {
		return err
	}
	md := goldmark.New()
	return md.Convert(buf.Bytes(), w)
}
