package kml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extractor implements the ArchiveExtractor port for KMZ containers.
type Extractor struct{}

// NewExtractor creates a KMZ extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMarkup finds the first .kml entry in a KMZ archive and returns its
// contents. A readable archive without any .kml entry is reported as absence
// (ok=false), not an error; only corrupt archives or unreadable entries fail.
func (e *Extractor) ExtractMarkup(data []byte) ([]byte, bool, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, false, fmt.Errorf("opening archive: %w", err)
	}

	for _, zf := range zr.File {
		if !strings.EqualFold(filepath.Ext(zf.Name), ".kml") {
			continue
		}

		f, err := zf.Open()
		if err != nil {
			return nil, false, fmt.Errorf("opening entry %s: %w", zf.Name, err)
		}
		payload, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, false, fmt.Errorf("reading entry %s: %w", zf.Name, err)
		}
		return payload, true, nil
	}

	return nil, false, nil
}
