// Package compression provides the stream codecs used for palette archives.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Kind identifies a compression codec.
type Kind string

const (
	None  Kind = "none"
	Gzip  Kind = "gzip"
	Xz    Kind = "xz"
	Bzip2 Kind = "bzip2"
)

// DefaultMaxBytes bounds decompressed output.
const DefaultMaxBytes = 64 * 1024 * 1024

var (
	// ErrUnsupported is returned when a codec cannot be used in the requested direction.
	ErrUnsupported = errors.New("unsupported compression")

	// ErrSizeLimit is returned once a reader produces more than its byte limit.
	ErrSizeLimit = errors.New("decompression size limit exceeded")
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte("BZh")
)

// MagicLen is the number of leading bytes Detect needs.
const MagicLen = 6

// FromPath picks a codec from the file extension.
func FromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".tgz":
		return Gzip
	case ".xz", ".txz":
		return Xz
	case ".bz2", ".tbz2":
		return Bzip2
	default:
		return None
	}
}

// Detect identifies a codec from the leading bytes of a stream.
func Detect(header []byte) Kind {
	switch {
	case bytes.HasPrefix(header, xzMagic):
		return Xz
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	case bytes.HasPrefix(header, bzip2Magic):
		return Bzip2
	default:
		return None
	}
}

// NewWriter wraps w so that writes are compressed with kind.
// Closing the returned writer flushes the codec but does not close w.
func NewWriter(w io.Writer, kind Kind) (io.WriteCloser, error) {
	switch kind {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Xz:
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xzw, nil
	default:
		return nil, fmt.Errorf("%w: cannot write %s", ErrUnsupported, kind)
	}
}

// NewReader wraps r so that reads are decompressed with kind.
// At most maxBytes of decompressed data are returned; maxBytes <= 0 uses DefaultMaxBytes.
func NewReader(r io.Reader, kind Kind, maxBytes int64) (io.ReadCloser, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	var (
		src     io.Reader
		closeFn func() error
	)
	switch kind {
	case None:
		src = r
	case Gzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		src, closeFn = gzr, gzr.Close
	case Xz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		src = xzr
	case Bzip2:
		src = bzip2.NewReader(r)
	default:
		return nil, fmt.Errorf("%w: cannot read %s", ErrUnsupported, kind)
	}

	return &limitedReadCloser{
		LimitedReader: LimitedReader{R: src, Remaining: maxBytes},
		close:         closeFn,
	}, nil
}

// LimitedReader fails with ErrSizeLimit once Remaining bytes have been read.
// Unlike io.LimitedReader it reports the overrun instead of a silent EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Read one more byte so a stream of exactly the limit still ends cleanly.
		var extra [1]byte
		if n, err := l.R.Read(extra[:]); n == 0 && err != nil {
			return 0, err
		}
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

type limitedReadCloser struct {
	LimitedReader
	close func() error
}

func (l *limitedReadCloser) Close() error {
	if l.close == nil {
		return nil
	}
	return l.close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
