// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_NearestPrecedingEntry(t *testing.T) {
	page := testPage(0)
	ord := NewOrdering(1)
	entries := []Outline{
		{Title: "Introduction", Pos: Pos{Page: page, X: 10, Y: 100}},
		{Title: "Methods", Pos: Pos{Page: page, X: 10, Y: 50}},
	}
	loc := NewLocator(entries, ord)

	// A query between the two entries in reading order belongs to the
	// earlier one.
	got := loc.Nearest(Pos{Page: page, X: 10, Y: 70})
	require.NotNil(t, got)
	assert.Equal(t, "Introduction", got.Title)

	// Below both entries, the later one is nearest.
	got = loc.Nearest(Pos{Page: page, X: 10, Y: 10})
	require.NotNil(t, got)
	assert.Equal(t, "Methods", got.Title)
}

func TestLocator_QueryBeforeFirstEntry(t *testing.T) {
	page := testPage(0)
	loc := NewLocator([]Outline{
		{Title: "Late", Pos: Pos{Page: page, X: 10, Y: 20}},
	}, NewOrdering(1))

	assert.Nil(t, loc.Nearest(Pos{Page: page, X: 10, Y: 90}))
}

func TestLocator_EmptyAndNil(t *testing.T) {
	page := testPage(0)
	assert.Nil(t, NewLocator(nil, NewOrdering(1)).Nearest(Pos{Page: page, X: 1, Y: 1}))

	var loc *Locator
	assert.Nil(t, loc.Nearest(Pos{Page: page, X: 1, Y: 1}))
}

func TestLocator_AcrossPages(t *testing.T) {
	p0, p1 := testPage(0), testPage(1)
	loc := NewLocator([]Outline{
		{Title: "One", Pos: Pos{Page: p0, X: 10, Y: 90}},
		{Title: "Two", Pos: Pos{Page: p1, X: 10, Y: 90}},
	}, NewOrdering(1))

	got := loc.Nearest(Pos{Page: p1, X: 10, Y: 95})
	require.NotNil(t, got)
	assert.Equal(t, "One", got.Title)
}

func TestResolveOutlines_DropsUnknownPages(t *testing.T) {
	pages := []*Page{testPage(0)}
	outlines := resolveOutlines([]RawOutline{
		{Title: "Kept", PageIndex: 0, X: 10, Y: 90},
		{Title: "Dropped", PageIndex: 7, X: 10, Y: 90},
	}, pages)

	require.Len(t, outlines, 1)
	assert.Equal(t, "Kept", outlines[0].Title)
	assert.Same(t, pages[0], outlines[0].Pos.Page)
}
