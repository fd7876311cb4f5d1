package history

import (
	"time"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Record is one saved extraction.
type Record struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Source    string         `json:"source"`
	Settings  Settings       `json:"settings"`
	Palette   colour.Palette `json:"palette"`
}

// Settings are the extraction options that produced a record.
type Settings struct {
	Mode         string `json:"mode,omitempty"`
	ColourCount  int    `json:"colour_count,omitempty"`
	SmartFilter  bool   `json:"smart_filter,omitempty"`
	PortraitMode bool   `json:"portrait_mode,omitempty"`
	Advanced     bool   `json:"advanced,omitempty"`
	Algorithm    string `json:"algorithm,omitempty"`
	SeedMode     string `json:"seed_mode,omitempty"`
	Seed         int64  `json:"seed,omitempty"`
}

// ShortID returns the first eight characters of the record id.
func (r Record) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}
