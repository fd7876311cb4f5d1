// Package seed derives the random seed shared by k-means initialisation and
// synthetic percentage allocation, so a run can be reproduced exactly.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the seed is derived.
type Mode string

const (
	// ModeContent hashes the decoded pixels. The same image gives the same
	// palette wherever it is stored.
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute path or URL of the source.
	ModeFilepath Mode = "filepath"
	// ModeManual uses the value supplied by the user.
	ModeManual Mode = "manual"
	// ModeRandom varies on every run.
	ModeRandom Mode = "random"
)

// ErrMissingInput is returned when a mode lacks the input it hashes.
var ErrMissingInput = errors.New("missing seed input")

// gridSize is the number of sample points per axis used by ModeContent.
const gridSize = 100

// Options holds configuration for seed generation.
type Options struct {
	Mode Mode
	// Value is only used by ModeManual.
	Value *int64
}

// Source is what a seed can be derived from. Only the field the mode needs
// has to be set.
type Source struct {
	Image image.Image
	Path  string
}

// Resolve returns the seed for src under opts.
func Resolve(src Source, opts Options) (int64, error) {
	switch opts.Mode {
	case ModeContent, "":
		if src.Image == nil {
			return 0, fmt.Errorf("%w: content mode needs a decoded image", ErrMissingInput)
		}
		return ContentSeed(src.Image), nil
	case ModeFilepath:
		if src.Path == "" {
			return 0, fmt.Errorf("%w: filepath mode needs a path", ErrMissingInput)
		}
		return PathSeed(src.Path), nil
	case ModeManual:
		if opts.Value == nil {
			return 0, fmt.Errorf("%w: manual mode needs --seed-value", ErrMissingInput)
		}
		return *opts.Value, nil
	case ModeRandom:
		return RandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", opts.Mode)
	}
}

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- palette sampling, not security
}

// ContentSeed hashes the image size and a grid of pixels.
func ContentSeed(img image.Image) int64 {
	b := img.Bounds()
	h := sha256.New()
	writeUint32(h, uint32(b.Dx())) // #nosec G115 -- image dimensions fit
	writeUint32(h, uint32(b.Dy())) // #nosec G115 -- image dimensions fit

	step := max(b.Dx()/gridSize, b.Dy()/gridSize, 1)
	px := make([]byte, 4)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			px[0], px[1], px[2], px[3] = byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8)
			h.Write(px)
		}
	}
	return sumToSeed(h)
}

// PathSeed hashes the absolute form of path. URLs are hashed as given.
func PathSeed(path string) int64 {
	key := path
	if !isURL(path) {
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
	}
	h := sha256.New()
	h.Write([]byte(key))
	return sumToSeed(h)
}

// RandomSeed returns a clock-derived seed.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}

func writeUint32(h hash.Hash, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	h.Write(buf[:])
}

func sumToSeed(h hash.Hash) int64 {
	return int64(binary.LittleEndian.Uint64(h.Sum(nil)[:8])) // #nosec G115 -- hash bits
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
