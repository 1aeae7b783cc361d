// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

// pageRenderer drives one depth-first walk of a page's fragment tree,
// attributing each leaf to the annotations whose boxes cover it. State
// kept across the walk: lastHit is the annotation set matched by the
// most recent character, curLine the union of every set matched since
// the last line break. Line breaks are broadcast to all of curLine,
// not just lastHit, so an annotation keeps accreting across lines even
// when a highlight drawn slightly short misses the line's last glyphs.
type pageRenderer struct {
	annots  []*Annotation
	lastHit []*Annotation
	curLine map[*Annotation]bool
}

// newPageRenderer prepares a renderer over the page's live annotation
// set: only annotations with boxes can ever match text.
func newPageRenderer(annots []*Annotation) *pageRenderer {
	var live []*Annotation
	for _, a := range annots {
		if len(a.Boxes) > 0 {
			live = append(live, a)
		}
	}
	return &pageRenderer{
		annots:  live,
		curLine: make(map[*Annotation]bool),
	}
}

// render walks one fragment. Children of a container are processed
// before the container itself, so a text box's own aggregate rectangle
// is tested after its content, then the box's implicit trailing break
// is emitted.
func (r *pageRenderer) render(frag Fragment) {
	switch f := frag.(type) {
	case Container:
		for _, child := range f.Children {
			r.render(child)
		}

	case TextBox:
		for _, child := range f.Children {
			r.render(child)
		}
		r.testBoxes(f.BBox)
		r.captureNewline()

	case Char:
		for _, a := range r.testBoxes(f.BBox) {
			a.capture(f.Text)
		}

	case Break:
		if f.Text == "\n" {
			r.captureNewline()
		} else {
			// Positionless whitespace cannot be matched
			// geometrically; attribute it to whichever annotations
			// most recently received real text. This is deliberately
			// lastHit, not curLine.
			for _, a := range r.lastHit {
				a.capture(f.Text)
			}
		}
	}
}

// testBoxes matches one rectangle against every live annotation and
// records the hits in the walk state.
func (r *pageRenderer) testBoxes(rect Rect) []*Annotation {
	var hits []*Annotation
	for _, a := range r.annots {
		for _, box := range a.Boxes {
			if boxHit(rect, box) {
				hits = append(hits, a)
				break
			}
		}
	}
	r.lastHit = hits
	for _, a := range hits {
		r.curLine[a] = true
	}
	return hits
}

// captureNewline broadcasts a line break to every annotation that saw
// text on the current line, then starts a new line.
func (r *pageRenderer) captureNewline() {
	for a := range r.curLine {
		a.capture("\n")
	}
	r.curLine = make(map[*Annotation]bool)
}
