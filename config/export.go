package config

import (
	"fmt"

	"github.com/kilianp07/carrental/pkg/export"
)

// ExportConfig selects where and how final grids are written. An empty Dir
// disables export.
type ExportConfig struct {
	Dir     string   `json:"dir"`
	Formats []string `json:"formats"`
}

// SetDefaults exports JSON when no format is given.
func (c *ExportConfig) SetDefaults() {
	if len(c.Formats) == 0 {
		c.Formats = []string{export.FormatJSON}
	}
}

// Validate checks the format names.
func (c ExportConfig) Validate() error {
	for _, f := range c.Formats {
		switch f {
		case export.FormatJSON, export.FormatCSV, export.FormatYAML, export.FormatHeatmap:
		default:
			return fmt.Errorf("unknown format %q", f)
		}
	}
	return nil
}
