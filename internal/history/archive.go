package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jmylchreest/swatch/internal/compression"
)

// ArchiveVersion is the current archive layout.
const ArchiveVersion = 1

// Archive is the exported form of a history.
type Archive struct {
	Version  int       `json:"version"`
	Exported time.Time `json:"exported"`
	Records  []Record  `json:"records"`
}

// WriteArchive writes records to path as JSON, compressed according to the
// file extension (.xz, .gz or none).
func WriteArchive(path string, records []Record) error {
	kind := compression.FromPath(path)

	f, err := os.Create(path) // #nosec G304 - user-chosen export path
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	w, err := compression.NewWriter(f, kind)
	if err != nil {
		f.Close()
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	encErr := enc.Encode(Archive{
		Version:  ArchiveVersion,
		Exported: time.Now().UTC(),
		Records:  records,
	})
	codecErr := w.Close()
	closeErr := f.Close()

	if encErr != nil {
		return fmt.Errorf("failed to encode archive: %w", encErr)
	}
	if codecErr != nil {
		return fmt.Errorf("failed to finish %s stream: %w", kind, codecErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close archive: %w", closeErr)
	}
	return nil
}

// ReadArchive reads an archive written by WriteArchive. The codec is detected
// from the stream itself, so renamed files still load.
func ReadArchive(path string) ([]Record, error) {
	f, err := os.Open(path) // #nosec G304 - user-chosen import path
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, _ := br.Peek(compression.MagicLen) //nolint:errcheck // short files are handled by the decoder

	r, err := compression.NewReader(br, compression.Detect(header), 0)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var archive Archive
	if err := json.NewDecoder(r).Decode(&archive); err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}
	if archive.Version > ArchiveVersion {
		return nil, fmt.Errorf("archive version %d is newer than supported version %d", archive.Version, ArchiveVersion)
	}
	return archive.Records, nil
}
