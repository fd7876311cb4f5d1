// Package image provides utilities for loading and processing images.
package image

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// MaxFileSize is the largest image file accepted.
const MaxFileSize = 10 << 20

var (
	// ErrTooLarge is returned for files over MaxFileSize.
	ErrTooLarge = errors.New("image file too large")
	// ErrUnsupportedFormat is returned for extensions or contents that
	// cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}
}

func isImageFile(path string) bool {
	return slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(path)))
}

// IsURL reports whether path is an http or https URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateFile checks that path is a regular file no larger than MaxFileSize
// with a supported extension whose header decodes.
func ValidateFile(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("%w: %s is %d bytes (maximum %d)", ErrTooLarge, path, info.Size(), MaxFileSize)
	}
	if !isImageFile(path) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, filepath.Ext(path),
			strings.Join(SupportedImageExtensions(), ", "))
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return nil
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load validates and decodes an image file.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if err := ValidateFile(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs. URL
// images are downloaded into a cache directory first, so they pass the same
// validation as local files.
type SmartLoader struct {
	fileLoader *FileLoader
	cacheDir   string
	logger     hclog.Logger
}

// NewSmartLoader creates a new SmartLoader. An empty cacheDir uses the
// default image cache location.
func NewSmartLoader(cacheDir string, logger hclog.Logger) *SmartLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		cacheDir:   cacheDir,
		logger:     logger,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if !IsURL(path) {
		return l.fileLoader.Load(ctx, path)
	}

	cached, err := imagecache.DownloadAndCache(ctx, path, imagecache.CacheOptions{
		CacheDir: l.cacheDir,
		MaxBytes: MaxFileSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	l.logger.Debug("loaded remote image", "url", path, "cached", cached)

	return l.fileLoader.Load(ctx, cached)
}
