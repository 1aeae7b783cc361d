// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sassoftware/pdf-annot/logger"
)

// Source is the contract with the excluded document-parsing layer: a
// paginated supply of positioned fragments, raw annotation records and
// resolved outline destinations. The engine never touches the
// document's native binary format.
type Source interface {
	NumPages() int
	Page(index int) (PageData, error)
	Outlines() ([]RawOutline, error)
}

// FormatName identifies a layout dump container.
const FormatName = "layout-dump"

// A File is a decoded layout dump: the JSON interchange container a
// layout engine writes after flattening a document into pages,
// fragments and annotation records. It implements Source.
type File struct {
	pages    []jsonPage
	outlines []jsonOutline
}

type dumpFile struct {
	Format   string        `json:"format"`
	Version  int           `json:"version"`
	Pages    []jsonPage    `json:"pages"`
	Outlines []jsonOutline `json:"outlines,omitempty"`
}

type jsonPage struct {
	Bounds      [4]float64       `json:"bounds"`
	Fragments   []jsonFragment   `json:"fragments,omitempty"`
	Annotations []jsonAnnotation `json:"annotations,omitempty"`
}

type jsonFragment struct {
	Kind     string         `json:"kind"` // container, textbox, char, break
	BBox     *[4]float64    `json:"bbox,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []jsonFragment `json:"children,omitempty"`
}

type jsonAnnotation struct {
	Subtype    string      `json:"subtype"`
	QuadPoints []float64   `json:"quadPoints,omitempty"`
	Rect       *[4]float64 `json:"rect,omitempty"`
	Contents   string      `json:"contents,omitempty"`
	Author     string      `json:"author,omitempty"`
}

type jsonOutline struct {
	Title string  `json:"title"`
	Page  int     `json:"page"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Open reads and decodes a layout dump file.
func Open(path string) (*File, error) {
	logger.Debug(fmt.Sprintf("Opening layout dump: path=%s", path), true)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewFile(f)
}

// NewFile decodes a layout dump from r, checking the container header
// before accepting it.
func NewFile(r io.Reader) (*File, error) {
	var dump dumpFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode layout dump: %w", err)
	}
	if dump.Format != FormatName {
		return nil, fmt.Errorf("not a layout dump: format=%q", dump.Format)
	}
	if dump.Version != 1 {
		return nil, fmt.Errorf("unsupported layout dump version %d", dump.Version)
	}
	logger.Debug(fmt.Sprintf("Layout dump decoded: pages=%d outlines=%d", len(dump.Pages), len(dump.Outlines)), true)
	return &File{pages: dump.Pages, outlines: dump.Outlines}, nil
}

// NumPages returns the number of pages in the dump.
func (f *File) NumPages() int {
	return len(f.pages)
}

// Page returns the data for the given 0-based page index.
func (f *File) Page(index int) (PageData, error) {
	if index < 0 || index >= len(f.pages) {
		return PageData{}, fmt.Errorf("page index %d out of range [0,%d)", index, len(f.pages))
	}
	jp := f.pages[index]

	pd := PageData{
		Index:  index,
		Bounds: rectFromArray(jp.Bounds),
	}
	for _, jf := range jp.Fragments {
		frag, err := jf.fragment()
		if err != nil {
			return PageData{}, fmt.Errorf("page %d: %w", index+1, err)
		}
		pd.Fragments = append(pd.Fragments, frag)
	}
	for _, ja := range jp.Annotations {
		raw := RawAnnotation{
			Subtype:    ja.Subtype,
			QuadPoints: ja.QuadPoints,
			Contents:   ja.Contents,
			Author:     ja.Author,
		}
		if ja.Rect != nil {
			r := rectFromArray(*ja.Rect)
			raw.Rect = &r
		}
		pd.Annotations = append(pd.Annotations, raw)
	}
	return pd, nil
}

// Outlines returns the dump's outline entries.
func (f *File) Outlines() ([]RawOutline, error) {
	var raws []RawOutline
	for _, jo := range f.outlines {
		raws = append(raws, RawOutline{
			Title:     jo.Title,
			PageIndex: jo.Page,
			X:         jo.X,
			Y:         jo.Y,
		})
	}
	return raws, nil
}

func (jf jsonFragment) fragment() (Fragment, error) {
	switch jf.Kind {
	case "container":
		children, err := jf.children()
		if err != nil {
			return nil, err
		}
		return Container{Children: children}, nil
	case "textbox":
		if jf.BBox == nil {
			return nil, fmt.Errorf("textbox fragment without bbox")
		}
		children, err := jf.children()
		if err != nil {
			return nil, err
		}
		return TextBox{BBox: rectFromArray(*jf.BBox), Children: children}, nil
	case "char":
		if jf.BBox == nil {
			return nil, fmt.Errorf("char fragment without bbox")
		}
		return Char{BBox: rectFromArray(*jf.BBox), Text: jf.Text}, nil
	case "break":
		return Break{Text: jf.Text}, nil
	default:
		return nil, fmt.Errorf("unknown fragment kind %q", jf.Kind)
	}
}

func (jf jsonFragment) children() ([]Fragment, error) {
	var children []Fragment
	for _, c := range jf.Children {
		frag, err := c.fragment()
		if err != nil {
			return nil, err
		}
		children = append(children, frag)
	}
	return children, nil
}

func rectFromArray(a [4]float64) Rect {
	return Rect{X0: a[0], Y0: a[1], X1: a[2], Y1: a[3]}
}
