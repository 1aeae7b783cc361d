// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highlightWithBox() *Annotation {
	return &Annotation{
		Subtype: SubtypeHighlight,
		Boxes:   []Rect{{0, 0, 10, 10}},
	}
}

func TestCapture_HyphenJoin(t *testing.T) {
	a := highlightWithBox()
	a.capture("attrib-")
	a.capture("\n")
	a.capture("ute")
	assert.Equal(t, "attribute", a.Text())
}

func TestCapture_RepeatedBreaksCollapse(t *testing.T) {
	a := highlightWithBox()
	a.capture("Hi")
	a.capture("\n")
	buffered := a.text
	a.capture("\n")
	assert.Equal(t, buffered, a.text, "second consecutive break must not change the buffer")
	assert.Equal(t, "Hi", a.Text())
}

func TestCapture_BreakOnEmptyBuffer(t *testing.T) {
	a := highlightWithBox()
	a.capture("\n")
	a.capture("Hi")
	assert.Equal(t, "Hi", a.Text())
}

func TestText_MissingTextSentinel(t *testing.T) {
	a := highlightWithBox()
	assert.Equal(t, MissingText, a.Text())
}

func TestText_NoBoxesYieldsEmpty(t *testing.T) {
	a := &Annotation{Subtype: SubtypeText, Contents: "just a note"}
	assert.Empty(t, a.Text())
}

func TestText_Substitutions(t *testing.T) {
	a := highlightWithBox()
	a.capture("diﬃcult “choice”…")
	assert.Equal(t, `difficult "choice"...`, a.Text())
}

func TestStartPos_RectTakesPriorityOverBoxes(t *testing.T) {
	page := &Page{Index: 0, Bounds: Rect{0, 0, 100, 100}}
	a := &Annotation{
		Page:  page,
		Rect:  &Rect{0, 0, 2, 2},
		Boxes: []Rect{{5, 5, 6, 6}},
	}
	pos, ok := a.StartPos()
	require.True(t, ok)
	assert.Equal(t, 0.0, pos.X)
	assert.Equal(t, 2.0, pos.Y)
}

func TestStartPos_FirstBoxWhenNoRect(t *testing.T) {
	page := &Page{Index: 0, Bounds: Rect{0, 0, 100, 100}}
	a := &Annotation{
		Page:  page,
		Boxes: []Rect{{5, 5, 6, 8}, {1, 1, 2, 2}},
	}
	pos, ok := a.StartPos()
	require.True(t, ok)
	assert.Equal(t, 5.0, pos.X)
	assert.Equal(t, 8.0, pos.Y)
}

func TestStartPos_NoGeometry(t *testing.T) {
	a := &Annotation{Page: &Page{}}
	_, ok := a.StartPos()
	assert.False(t, ok)
}

func TestNormalizeContents(t *testing.T) {
	assert.Equal(t, "a\nb\nc", normalizeContents("a\r\nb\rc"))
	assert.Equal(t, `she said "hi"`, normalizeContents("she said “hi”"))
}

func TestDecodeTextString_UTF16(t *testing.T) {
	assert.Equal(t, "Hi", decodeTextString("\xfe\xff\x00H\x00i"))
	assert.Equal(t, "plain", decodeTextString("plain"))
}

func TestResolveAnnotation(t *testing.T) {
	page := &Page{Index: 0, Bounds: Rect{0, 0, 100, 100}}

	t.Run("supported with quad points", func(t *testing.T) {
		a, err := resolveAnnotation(page, RawAnnotation{
			Subtype:    "Highlight",
			QuadPoints: []float64{0, 10, 20, 10, 0, 0, 20, 0},
			Contents:   "note\r\nhere",
			Author:     "reviewer",
		})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, SubtypeHighlight, a.Subtype)
		assert.Equal(t, []Rect{{0, 0, 20, 10}}, a.Boxes)
		assert.Equal(t, "note\nhere", a.Contents)
		assert.Equal(t, "reviewer", a.Author)
	})

	t.Run("unsupported subtype is filtered", func(t *testing.T) {
		a, err := resolveAnnotation(page, RawAnnotation{Subtype: "Link"})
		require.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("bad quad points error", func(t *testing.T) {
		_, err := resolveAnnotation(page, RawAnnotation{
			Subtype:    "Highlight",
			QuadPoints: []float64{1, 2, 3},
		})
		assert.Error(t, err)
	})

	t.Run("point annotation without geometry", func(t *testing.T) {
		a, err := resolveAnnotation(page, RawAnnotation{Subtype: "Text", Contents: "comment"})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Nil(t, a.Boxes)
		assert.Empty(t, a.Text())
	})
}
