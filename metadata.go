// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"encoding/json"
	"io"

	"github.com/sassoftware/pdf-annot/logger"
)

// Summary is the unified statistics model for one extraction run.
type Summary struct {
	Pages        int             `json:"pages"`
	Annotations  int             `json:"annotations"`
	BySubtype    map[Subtype]int `json:"bySubtype,omitempty"`
	WithComments int             `json:"withComments"`
	WithAuthors  int             `json:"withAuthors"`
	MissingText  int             `json:"missingText"`
	Outlines     int             `json:"outlines"`
}

// Summary computes run statistics from a completed result.
func (res *Result) Summary() Summary {
	s := Summary{
		Pages:     len(res.Pages),
		BySubtype: make(map[Subtype]int),
		Outlines:  len(res.Outlines),
	}
	for _, a := range res.Annotations {
		s.Annotations++
		s.BySubtype[a.Subtype]++
		if a.Contents != "" {
			s.WithComments++
		}
		if a.Author != "" {
			s.WithAuthors++
		}
		if a.Text() == MissingText {
			s.MissingText++
		}
	}
	if len(s.BySubtype) == 0 {
		s.BySubtype = nil
	}
	return s
}

// SummaryJSON prints the run summary as indented JSON to the provided
// writer.
func (res *Result) SummaryJSON(w io.Writer) error {
	logger.Debug("Writing run summary", true)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Summary())
}
