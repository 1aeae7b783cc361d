// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "valid config",
			cfg: &Config{
				Columns:           2,
				MaxConcurrentDocs: 10,
				MaxWorkersPerDoc:  2,
				WorkerTimeout:     5 * time.Second,
				ParsingMode:       BestEffort,
			},
			shouldErr: false,
		},
		{
			name: "invalid Columns (too low)",
			cfg: &Config{
				Columns:           0,
				MaxConcurrentDocs: 10,
				MaxWorkersPerDoc:  2,
				WorkerTimeout:     5 * time.Second,
				ParsingMode:       BestEffort,
			},
			shouldErr: true,
		},
		{
			name: "invalid MaxConcurrentDocs (too low)",
			cfg: &Config{
				Columns:           1,
				MaxConcurrentDocs: 0,
				MaxWorkersPerDoc:  2,
				WorkerTimeout:     5 * time.Second,
				ParsingMode:       BestEffort,
			},
			shouldErr: true,
		},
		{
			name: "invalid MaxWorkersPerDoc (too low)",
			cfg: &Config{
				Columns:           1,
				MaxConcurrentDocs: 10,
				MaxWorkersPerDoc:  0,
				WorkerTimeout:     5 * time.Second,
				ParsingMode:       Strict,
			},
			shouldErr: true,
		},
		{
			name: "missing WorkerTimeout",
			cfg: &Config{
				Columns:           1,
				MaxConcurrentDocs: 10,
				MaxWorkersPerDoc:  2,
				WorkerTimeout:     0,
				ParsingMode:       BestEffort,
			},
			shouldErr: true,
		},
		{
			name: "invalid ParsingMode",
			cfg: &Config{
				Columns:           1,
				MaxConcurrentDocs: 10,
				MaxWorkersPerDoc:  2,
				WorkerTimeout:     5 * time.Second,
				ParsingMode:       "invalid-mode",
			},
			shouldErr: true,
		},
		{
			name: "page range end before start",
			cfg: &Config{
				Columns:           1,
				PageStart:         5,
				PageEnd:           2,
				MaxConcurrentDocs: 10,
				MaxWorkersPerDoc:  2,
				WorkerTimeout:     5 * time.Second,
				ParsingMode:       BestEffort,
			},
			shouldErr: true,
		},
		{
			name:      "default config is valid",
			cfg:       NewDefaultConfig(),
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.shouldErr {
				assert.Error(t, err, "expected validation error")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func TestConfig_IncludePage(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.True(t, cfg.includePage(0))
	assert.True(t, cfg.includePage(999))

	cfg.PageStart = 2
	cfg.PageEnd = 3
	assert.False(t, cfg.includePage(0)) // page 1
	assert.True(t, cfg.includePage(1))  // page 2
	assert.True(t, cfg.includePage(2))  // page 3
	assert.False(t, cfg.includePage(3)) // page 4

	cfg.PageEnd = 0
	assert.True(t, cfg.includePage(999))
}
