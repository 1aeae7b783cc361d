// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"math"
	"sort"
)

// A Pos is a location on a page, normalized against the page's bounds
// before any comparison. Positions are computed on demand, never
// stored on annotations.
type Pos struct {
	Page *Page
	X, Y float64
}

// clamp pulls out-of-range coordinates back to the nearest edge of the
// page bounds. Documents sometimes report positions slightly outside
// the visible area.
func (p Pos) clamp() (x, y float64) {
	b := p.Page.Bounds
	x, y = p.X, p.Y
	if x < b.X0 {
		x = b.X0
	} else if x > b.X1 {
		x = b.X1
	}
	if y < b.Y0 {
		y = b.Y0
	} else if y > b.Y1 {
		y = b.Y1
	}
	return x, y
}

// Ordering is a total order over positions for left-to-right,
// top-to-bottom documents laid out in a fixed number of equal-width
// reading columns per page. It is a pure value so comparators stay
// testable in isolation.
type Ordering struct {
	Columns int
}

// NewOrdering returns an Ordering with the given reading-column count,
// treating anything below one column as one.
func NewOrdering(columns int) Ordering {
	if columns < 1 {
		columns = 1
	}
	return Ordering{Columns: columns}
}

// Less reports whether a sorts before b: by page index, then by column
// index, then top-of-page first within a column.
func (o Ordering) Less(a, b Pos) bool {
	if a.Page.Index != b.Page.Index {
		return a.Page.Index < b.Page.Index
	}
	ax, ay := a.clamp()
	bx, by := b.clamp()
	acol := o.column(a.Page, ax)
	bcol := o.column(b.Page, bx)
	return acol < bcol || (acol == bcol && ay > by)
}

// column computes the reading-column index of a clamped x coordinate.
func (o Ordering) column(page *Page, x float64) int {
	colWidth := page.Bounds.Width() / float64(o.Columns)
	if colWidth <= 0 {
		return 0
	}
	return int(math.Floor((x - page.Bounds.X0) / colWidth))
}

// sortAnnotations orders a page's annotations in place by position.
// Annotations without a position sort first, keeping their input order
// under the stable sort.
func sortAnnotations(annots []*Annotation, ord Ordering) {
	sort.SliceStable(annots, func(i, j int) bool {
		pi, iok := annots[i].StartPos()
		pj, jok := annots[j].StartPos()
		if !iok || !jok {
			return !iok && jok
		}
		return ord.Less(pi, pj)
	})
}
