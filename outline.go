// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"fmt"

	"github.com/sassoftware/pdf-annot/logger"
)

// An Outline is one bookmark in the document structure: a title and
// the position it targets.
type Outline struct {
	Title string
	Pos   Pos
}

// A RawOutline is an outline entry as supplied by the document layer,
// already resolved to a page index and target coordinates.
type RawOutline struct {
	Title     string
	PageIndex int
	X, Y      float64
}

// resolveOutlines maps raw outline entries onto processed pages.
// Entries targeting a page the run did not process are dropped with a
// diagnostic, not fatal.
func resolveOutlines(raws []RawOutline, pages []*Page) []Outline {
	byIndex := make(map[int]*Page, len(pages))
	for _, p := range pages {
		byIndex[p.Index] = p
	}

	var result []Outline
	for _, raw := range raws {
		page, ok := byIndex[raw.PageIndex]
		if !ok {
			logger.Error(fmt.Sprintf("unresolvable outline destination: title=%q page=%d", raw.Title, raw.PageIndex+1))
			continue
		}
		result = append(result, Outline{
			Title: decodeTextString(raw.Title),
			Pos:   Pos{Page: page, X: raw.X, Y: raw.Y},
		})
	}
	return result
}

// A Locator answers nearest-preceding-outline queries. The entries
// must be supplied in non-decreasing position order; ordering is
// enforced by the comparator, never assumed from list semantics alone.
type Locator struct {
	entries []Outline
	ord     Ordering
}

// NewLocator returns a Locator over the given entries. An empty or nil
// entry list is valid and means the document has no outline.
func NewLocator(entries []Outline, ord Ordering) *Locator {
	return &Locator{entries: entries, ord: ord}
}

// Nearest returns the last outline entry whose position compares
// strictly less than pos, or nil if no entry precedes it. A nil
// Locator always returns nil.
func (l *Locator) Nearest(pos Pos) *Outline {
	if l == nil {
		return nil
	}
	var prev *Outline
	for i := range l.entries {
		if !l.ord.Less(l.entries[i].Pos, pos) {
			break
		}
		prev = &l.entries[i]
	}
	return prev
}
