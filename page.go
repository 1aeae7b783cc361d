// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

// A Page is one processed page: its index, visible bounds and the
// annotations that belong to it. Pages compare by index only. Annots
// is in position order once the page has been rendered.
type Page struct {
	Index  int // 0-based
	Bounds Rect
	Annots []*Annotation
}

// PageData is everything the document layer supplies for one page:
// the visible bounds, the ordered fragment stream and the raw
// annotation records.
type PageData struct {
	Index       int
	Bounds      Rect
	Fragments   []Fragment
	Annotations []RawAnnotation
}
