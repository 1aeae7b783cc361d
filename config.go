// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sassoftware/pdf-annot/logger"
)

type ParsingMode string

const (
	Strict     ParsingMode = "strict"
	BestEffort ParsingMode = "best-effort"
)

type Config struct {
	Columns           int           `validate:"min=1,max=8"`
	PageStart         int           `validate:"min=0"` // 1-based inclusive, 0 = from the first page
	PageEnd           int           `validate:"min=0"` // 1-based inclusive, 0 = to the last page
	MaxConcurrentDocs int           `validate:"min=1,max=10"`
	MaxWorkersPerDoc  int           `validate:"min=1,max=10"`
	WorkerTimeout     time.Duration `validate:"required"`
	ParsingMode       ParsingMode   `validate:"oneof=strict best-effort"`
	DebugOn           bool
	Logger            logger.LogFunc
}

func NewDefaultConfig() *Config {
	return &Config{
		Columns:           1,
		PageStart:         0,
		PageEnd:           0,
		MaxConcurrentDocs: 5,
		MaxWorkersPerDoc:  1,
		WorkerTimeout:     5 * time.Second,
		ParsingMode:       BestEffort,
		DebugOn:           false,
	}
}

func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if cfg.PageStart > 0 && cfg.PageEnd > 0 && cfg.PageEnd < cfg.PageStart {
		return fmt.Errorf("page range: end %d before start %d", cfg.PageEnd, cfg.PageStart)
	}
	return nil
}

// includePage reports whether the 0-based page index falls inside the
// configured page range.
func (cfg *Config) includePage(index int) bool {
	n := index + 1
	if cfg.PageStart > 0 && n < cfg.PageStart {
		return false
	}
	if cfg.PageEnd > 0 && n > cfg.PageEnd {
		return false
	}
	return true
}
