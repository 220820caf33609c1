// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package prolog places a header into markup documents whose first line is a
// declaration that has to stay first, such as <!DOCTYPE html> or
// <?xml version="1.0"?>.
package prolog

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Kind identifies a prolog declaration.
type Kind int

const (
	// None means the file type never carries a prolog.
	None Kind = iota
	// HTML is a <!doctype ...> declaration.
	HTML
	// XML is an <?xml ...?> declaration.
	XML
)

func (k Kind) String() string {
	switch k {
	case HTML:
		return "html"
	case XML:
		return "xml"
	default:
		return "none"
	}
}

// Match reports whether line is a declaration of this kind. The test is done
// on a lowercased copy of line with surrounding whitespace and byte order
// marks removed.
func (k Kind) Match(line string) bool {
	line = strings.ToLower(strings.TrimFunc(line, isBlank))
	switch k {
	case HTML:
		return strings.HasPrefix(line, "<!doctype")
	case XML:
		return strings.HasPrefix(line, "<?xml")
	default:
		return false
	}
}

func isBlank(r rune) bool { return r == '\uFEFF' || unicode.IsSpace(r) }

var kinds = map[string]Kind{
	"htm":  HTML,
	"html": HTML,
	"xml":  XML,
	"svg":  XML,
}

// KindOf returns the declaration kind files of fileType may start with.
func KindOf(fileType string) Kind { return kinds[fileType] }

// FileType returns the lowercased extension of path without the leading dot,
// or an empty string if path has no extension.
func FileType(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Prefix returns the text that replaces the first line of a document and its
// terminating newline when that line is a declaration of kind k: the line
// itself, two separators, the header and one more separator. It reports false
// if first is not such a declaration.
func Prefix(k Kind, first, header, sep string) (string, bool) {
	if !k.Match(first) {
		return "", false
	}
	return first + sep + sep + header + sep, true
}

// Insert places header into content.
//
// If files of fileType may start with a declaration and the first line of
// content, split on "\n" only, is one, the line is kept verbatim as the
// first line and the header follows it. Otherwise the header is prepended:
// the result is header + sep + content.
//
// A "\r" ending the first line stays part of it.
func Insert(content, fileType, header, sep string) string {
	first, rest, _ := strings.Cut(content, "\n")
	if p, ok := Prefix(KindOf(fileType), first, header, sep); ok {
		return p + rest
	}
	return header + sep + content
}
