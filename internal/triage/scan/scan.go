// Package scan opens an OOXML workbook's ZIP container and produces a
// PartMap: the set of parts (ZIP entries), their raw uncompressed bytes,
// and a content digest per part. Scanner performs no XML parsing — it is
// purely a ZIP-level read.
package scan

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/sheetdefect/triage/internal/triageerr"
)

// Part is one entry inside the archive, addressed by its ZIP path.
// Bytes are the exact uncompressed contents; no encoding conversion
// happens at this boundary.
type Part struct {
	Path   string
	Bytes  []byte
	Digest [32]byte
	Method uint16 // zip.Store or zip.Deflate, preserved for the Patcher
}

// PartMap is an ordered mapping from path to Part. Paths never repeat;
// order matches archive central-directory order.
type PartMap struct {
	order []string
	parts map[string]Part
}

// New returns an empty PartMap, exported for callers assembling a PartMap
// by hand in tests.
func New() *PartMap {
	return &PartMap{parts: make(map[string]Part)}
}

// Paths returns part paths in archive order.
func (m *PartMap) Paths() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns the Part at path and whether it exists.
func (m *PartMap) Get(path string) (Part, bool) {
	p, ok := m.parts[path]
	return p, ok
}

// Len returns the number of parts.
func (m *PartMap) Len() int {
	return len(m.order)
}

// add inserts a part, returning an error if path already exists.
func (m *PartMap) add(p Part) error {
	if _, exists := m.parts[p.Path]; exists {
		return fmt.Errorf("duplicate entry: %s", p.Path)
	}
	m.order = append(m.order, p.Path)
	m.parts[p.Path] = p
	return nil
}

// Scan opens a ZIP archive from an in-memory buffer and produces a
// PartMap. Directories (zero-length entries ending in "/") are filtered
// out. Scan performs no XML parsing.
//
// Scan is deterministic: two invocations on the same bytes yield PartMaps
// with identical paths, bytes, and digests.
func Scan(data []byte) (*PartMap, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, triageerr.New(triageerr.ErrArchive, "scan", "", err)
	}

	m := New()
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue // directory entry, not a part
		}

		rc, err := f.Open()
		if err != nil {
			return nil, triageerr.New(triageerr.ErrArchive, "scan", f.Name, err)
		}
		buf := make([]byte, 0, f.UncompressedSize64)
		w := bytes.NewBuffer(buf)
		if _, err := w.ReadFrom(rc); err != nil {
			rc.Close()
			return nil, triageerr.New(triageerr.ErrArchive, "scan", f.Name, err)
		}
		rc.Close()

		raw := w.Bytes()
		part := Part{
			Path:   f.Name,
			Bytes:  raw,
			Digest: sha256.Sum256(raw),
			Method: f.Method,
		}
		if err := m.add(part); err != nil {
			return nil, triageerr.New(triageerr.ErrArchive, "scan", f.Name, err)
		}
	}

	return m, nil
}
