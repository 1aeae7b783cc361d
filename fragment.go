// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

// A Fragment is one node of a page's content tree, as delivered by the
// upstream layout engine. The vocabulary is fixed: containers group
// nested fragments, text boxes are containers that encode their own
// trailing line break, characters are positioned glyphs and breaks are
// whitespace with no geometry.
type Fragment interface {
	fragment()
}

// Container groups nested fragments with no geometry of its own.
type Container struct {
	Children []Fragment
}

// TextBox is a paragraph-level container. Its BBox is the aggregate
// rectangle of its contents; closing the box implies a line break even
// when the children emitted their own.
type TextBox struct {
	BBox     Rect
	Children []Fragment
}

// Char is a single positioned character.
type Char struct {
	BBox Rect
	Text string
}

// Break is whitespace not explicitly encoded in the text stream. It
// carries no rectangle; Text "\n" marks a line break, anything else is
// inter-word whitespace.
type Break struct {
	Text string
}

func (Container) fragment() {}
func (TextBox) fragment()   {}
func (Char) fragment()      {}
func (Break) fragment()     {}
