// Package xmlutil provides literal byte-level XML scanning primitives
// shared by the gate and pattern packages. It deliberately avoids
// encoding/xml's DOM decoder and backtracking regular expressions: callers
// need the exact on-disk byte span of an element or attribute value so
// downstream patch operations can match and replace it byte-for-byte.
package xmlutil

import "bytes"

// Element is one XML start tag's (open or self-closing) raw byte span.
type Element struct {
	Start int // byte offset of '<' in the source slice
	End   int // byte offset one past the closing '>' (or "/>")
	Raw   []byte
}

// FindElements locates every start tag (open or self-closing) named tag in
// data, e.g. FindElements(data, "tableColumn") matches both
// "<tableColumn ...>" and "<tableColumn .../>", but not "<tableColumns>".
func FindElements(data []byte, tag string) []Element {
	var out []Element
	open := []byte("<" + tag)
	i := 0
	for {
		idx := bytes.Index(data[i:], open)
		if idx == -1 {
			break
		}
		start := i + idx
		after := start + len(open)
		if after < len(data) {
			c := data[after]
			if !(c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '>' || c == '/') {
				i = start + 1
				continue
			}
		}
		end := FindUnquotedGT(data[after:])
		if end == -1 {
			break
		}
		absEnd := after + end + 1
		out = append(out, Element{Start: start, End: absEnd, Raw: data[start:absEnd]})
		i = absEnd
	}
	return out
}

// FindUnquotedGT returns the index of the first '>' in data that is not
// inside a single- or double-quoted attribute value, or -1 if none exists.
func FindUnquotedGT(data []byte) int {
	var quote byte
	for i := 0; i < len(data); i++ {
		c := data[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			return i
		}
	}
	return -1
}

// Attr extracts the raw (un-decoded) value of attrName from an element's
// raw bytes, e.g. Attr(elem.Raw, "name") on
// `<tableColumn name="Line1&#10;Line2" id="2"/>` returns "Line1&#10;Line2".
// Returns ok=false if the attribute is absent.
func Attr(raw []byte, name string) (value []byte, ok bool) {
	needle := []byte(name + "=")
	i := 0
	for {
		idx := bytes.Index(raw[i:], needle)
		if idx == -1 {
			return nil, false
		}
		pos := i + idx
		nameStart := pos
		if nameStart > 0 {
			prev := raw[nameStart-1]
			if isIdentChar(prev) && prev != ':' {
				i = pos + 1
				continue
			}
		}
		valStart := pos + len(needle)
		if valStart >= len(raw) {
			return nil, false
		}
		quote := raw[valStart]
		if quote != '"' && quote != '\'' {
			i = pos + 1
			continue
		}
		end := bytes.IndexByte(raw[valStart+1:], quote)
		if end == -1 {
			return nil, false
		}
		return raw[valStart+1 : valStart+1+end], true
	}
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Cell is one worksheet <c> element located via literal-splitter
// segmentation on "</c>".
type Cell struct {
	OpenTag []byte // the "<c ...>" open tag
	Inner   []byte // content between the open tag and "</c>"
}

// ScanCells splits sheetXML on "</c>" and, for each resulting piece,
// recovers the most recent "<c " or "<c>" open tag — the cell that piece
// closes. Self-closing cells ("<c r=\"A1\"/>") never carry a formula child
// and are intentionally skipped.
func ScanCells(sheetXML []byte) []Cell {
	pieces := bytes.Split(sheetXML, []byte("</c>"))
	var cells []Cell
	for i := 0; i < len(pieces)-1; i++ {
		piece := pieces[i]
		idxSpace := bytes.LastIndex(piece, []byte("<c "))
		idxClose := bytes.LastIndex(piece, []byte("<c>"))
		start := idxSpace
		if idxClose > start {
			start = idxClose
		}
		if start == -1 {
			continue
		}
		rest := piece[start:]
		end := FindUnquotedGT(rest)
		if end == -1 {
			continue
		}
		cells = append(cells, Cell{
			OpenTag: rest[:end+1],
			Inner:   rest[end+1:],
		})
	}
	return cells
}

// ElementBody returns the text between a non-self-closing element e (named
// tag) and its matching "</tag>", or nil if e is self-closing or no close
// tag follows. It does not handle same-named nested elements — callers
// must only use it for tags that never nest inside themselves.
func ElementBody(data []byte, e Element, tag string) []byte {
	if bytes.HasSuffix(e.Raw, []byte("/>")) {
		return nil
	}
	close := []byte("</" + tag + ">")
	idx := bytes.Index(data[e.End:], close)
	if idx == -1 {
		return nil
	}
	return data[e.End : e.End+idx]
}

// FindAllIndices returns every non-overlapping occurrence of needle in
// haystack, via bytes.Index in a loop — no backtracking regex.
func FindAllIndices(haystack, needle []byte) []int {
	var out []int
	offset := 0
	for {
		idx := bytes.Index(haystack[offset:], needle)
		if idx == -1 {
			return out
		}
		out = append(out, offset+idx)
		offset += idx + len(needle)
	}
}
