// Package describe produces a colour personality for a palette.
package describe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ErrEmptyPalette is returned when there is no colour to describe.
var ErrEmptyPalette = errors.New("palette has no colours to describe")

// Describer turns a palette into a personality for its leading colour.
type Describer interface {
	Name() string
	Describe(ctx context.Context, p colour.Palette) (colour.Personality, error)
}

// Names of the available describers.
const (
	NameBuiltin = "builtin"
	NameGemini  = "gemini"
)

// ValidNames lists the describers accepted by New.
func ValidNames() []string {
	return []string{NameBuiltin, NameGemini}
}

// Options configures New.
type Options struct {
	// APIKey authenticates the Gemini describer.
	APIKey string
	// Model overrides the Gemini model.
	Model  string
	Logger hclog.Logger
}

// New returns the describer called name. A Gemini describer falls back to
// the builtin heuristic when the API call fails.
func New(name string, opts Options) (Describer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameBuiltin:
		return Builtin{}, nil
	case NameGemini:
		g, err := NewGemini(opts.APIKey, opts.Model, opts.Logger)
		if err != nil {
			return nil, err
		}
		return &Fallback{Primary: g, Secondary: Builtin{}, Logger: opts.Logger}, nil
	default:
		return nil, fmt.Errorf("unknown describer %q (must be one of: %s)", name, strings.Join(ValidNames(), ", "))
	}
}

// Builtin describes the leading colour by its hue family.
type Builtin struct{}

// Name returns the describer name.
func (Builtin) Name() string { return NameBuiltin }

// Describe returns the hue-family personality of the first palette entry.
func (Builtin) Describe(_ context.Context, p colour.Palette) (colour.Personality, error) {
	if p.IsEmpty() {
		return colour.Personality{}, ErrEmptyPalette
	}
	return colour.Describe(p.Entries[0].RGB), nil
}

// Fallback tries Primary and uses Secondary when it fails.
type Fallback struct {
	Primary   Describer
	Secondary Describer
	Logger    hclog.Logger
}

// Name returns the primary describer name.
func (f *Fallback) Name() string { return f.Primary.Name() }

// Describe implements Describer.
func (f *Fallback) Describe(ctx context.Context, p colour.Palette) (colour.Personality, error) {
	personality, err := f.Primary.Describe(ctx, p)
	if err == nil || errors.Is(err, ErrEmptyPalette) {
		return personality, err
	}

	if f.Logger != nil {
		f.Logger.Warn("describer failed, using fallback", "describer", f.Primary.Name(), "fallback", f.Secondary.Name(), "error", err)
	}
	return f.Secondary.Describe(ctx, p)
}
