package gate

import "github.com/sheetdefect/triage/internal/triage/xmlutil"

// element, cell and the scanning helpers below are thin aliases over
// internal/triage/xmlutil, which the pattern package also consumes — the
// literal byte-scanning discipline (no DOM decode, no backtracking regex)
// is shared infrastructure, not duplicated per-package.
type element = xmlutil.Element
type cell = xmlutil.Cell

func findElements(data []byte, tag string) []element {
	return xmlutil.FindElements(data, tag)
}

func findUnquotedGT(data []byte) int {
	return xmlutil.FindUnquotedGT(data)
}

func attr(raw []byte, name string) ([]byte, bool) {
	return xmlutil.Attr(raw, name)
}

func scanCells(sheetXML []byte) []cell {
	return xmlutil.ScanCells(sheetXML)
}

func findAllIndices(haystack, needle []byte) []int {
	return xmlutil.FindAllIndices(haystack, needle)
}
