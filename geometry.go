// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"fmt"
	"math"
)

// A Rect is an axis-aligned rectangle in page coordinates, with
// (X0,Y0) the lower-left corner and (X1,Y1) the upper-right corner.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// normalized reports whether the corners are in canonical order.
func (r Rect) normalized() bool {
	return r.X0 <= r.X1 && r.Y0 <= r.Y1
}

// boxHit reports whether most of the fragment's area overlaps box.
// The 0.5 threshold, rather than exact containment, tolerates the
// rounded geometry that layout engines report for highlights drawn
// slightly short of the glyphs they cover. A fragment of zero area
// never hits anything. Non-normalized rectangles are a contract
// breach by the caller and panic.
func boxHit(frag, box Rect) bool {
	if !frag.normalized() {
		panic(fmt.Sprintf("boxHit: non-normalized fragment rect %+v", frag))
	}
	if !box.normalized() {
		panic(fmt.Sprintf("boxHit: non-normalized box rect %+v", box))
	}

	xOverlap := math.Max(0, math.Min(frag.X1, box.X1)-math.Max(frag.X0, box.X0))
	yOverlap := math.Max(0, math.Min(frag.Y1, box.Y1)-math.Max(frag.Y0, box.Y0))
	overlap := xOverlap * yOverlap
	fragArea := frag.Area()
	if overlap > fragArea {
		panic(fmt.Sprintf("boxHit: overlap %v exceeds fragment area %v", overlap, fragArea))
	}

	if fragArea == 0 {
		return false
	}
	return overlap >= 0.5*fragArea
}

// boxesFromQuadPoints converts a flat list of quad-point coordinates
// (groups of 8: the four corners of one quadrilateral) into the
// bounding box of each group. Text-markup annotations carry one quad
// per highlighted line.
func boxesFromQuadPoints(coords []float64) ([]Rect, error) {
	if len(coords)%8 != 0 {
		return nil, fmt.Errorf("quad points: %d coordinates, want a multiple of 8", len(coords))
	}
	boxes := make([]Rect, 0, len(coords)/8)
	for i := 0; i < len(coords); i += 8 {
		q := coords[i : i+8]
		box := Rect{
			X0: math.Min(math.Min(q[0], q[2]), math.Min(q[4], q[6])),
			Y0: math.Min(math.Min(q[1], q[3]), math.Min(q[5], q[7])),
			X1: math.Max(math.Max(q[0], q[2]), math.Max(q[4], q[6])),
			Y1: math.Max(math.Max(q[1], q[3]), math.Max(q[5], q[7])),
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}
