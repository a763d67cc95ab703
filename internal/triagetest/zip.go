// Package triagetest provides fixture builders shared by the triage
// package's tests: synthetic OOXML archives assembled in-memory with
// archive/zip.Writer, in the style of the reference corpus's
// buildSyntheticBinary helpers, so tests never depend on checked-in binary
// .xlsx blobs.
package triagetest

import (
	"archive/zip"
	"bytes"
)

// ZipEntry is one file to place in a synthetic archive.
type ZipEntry struct {
	Path    string
	Content string
	Store   bool // true = zip.Store, false = zip.Deflate
}

// BuildZip assembles entries into a ZIP archive and returns its bytes.
func BuildZip(entries ...ZipEntry) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		method := uint16(zip.Deflate)
		if e.Store {
			method = zip.Store
		}
		hdr := &zip.FileHeader{Name: e.Path, Method: method}
		fw, err := w.CreateHeader(hdr)
		if err != nil {
			panic(err)
		}
		if _, err := fw.Write([]byte(e.Content)); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// MinimalWorkbook returns a bare-minimum set of parts a valid OOXML
// workbook archive must contain, useful as a base to mutate in individual
// gate tests.
func MinimalWorkbook() []ZipEntry {
	return []ZipEntry{
		{Path: "[Content_Types].xml", Content: `<?xml version="1.0"?><Types xmlns="ns"/>`},
		{Path: "_rels/.rels", Content: `<?xml version="1.0"?><Relationships xmlns="ns"><Relationship Id="rId1" Type="officeDocument" Target="xl/workbook.xml"/></Relationships>`},
		{Path: "xl/workbook.xml", Content: `<?xml version="1.0"?><workbook xmlns="ns"><sheets><sheet name="Sheet1" sheetId="1" r:id="rId1" xmlns:r="r"/></sheets></workbook>`},
		{Path: "xl/_rels/workbook.xml.rels", Content: `<?xml version="1.0"?><Relationships xmlns="ns"><Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/></Relationships>`},
		{Path: "xl/worksheets/sheet1.xml", Content: `<?xml version="1.0"?><worksheet xmlns="ns"><sheetData><row r="1"><c r="A1"><v>1</v></c></row></sheetData></worksheet>`},
	}
}
