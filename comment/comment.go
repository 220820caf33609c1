// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package comment wraps text into a comment block in the syntax of a file
// type.
//
// Styles are looked up by file extension exactly as returned by
// [path/filepath.Ext], including the leading dot. The lookup is case
// sensitive: ".JS" and ".js" are different keys. Extensions without a
// registered style, and the empty extension, use the hash style.
package comment

import (
	"strings"
	"unicode"
)

// Style is the syntax of a comment block.
type Style struct {
	// Top is the opening line.
	Top string
	// Middle is prepended to each line of text.
	Middle string
	// Bottom is the closing line.
	Bottom string
}

// Format wraps text into a comment block. Every emitted line, the last one
// included, ends with a newline. Trailing whitespace is trimmed from each
// line so that empty lines of text do not leave dangling spaces.
func (s Style) Format(text string) string {
	var sb strings.Builder
	sb.WriteString(s.Top)
	sb.WriteByte('\n')
	for line := range strings.SplitSeq(text, "\n") {
		sb.WriteString(strings.TrimRightFunc(s.Middle+line, unicode.IsSpace))
		sb.WriteByte('\n')
	}
	sb.WriteString(s.Bottom)
	sb.WriteByte('\n')
	return sb.String()
}

var (
	slashStar  = Style{Top: "/**", Middle: " * ", Bottom: " */"}
	hash       = Style{Top: "#", Middle: "# ", Bottom: "#"}
	markup     = Style{Top: "<!--", Middle: " // ", Bottom: "-->"}
	dash       = Style{Top: "--", Middle: "-- ", Bottom: "--"}
	percent    = Style{Top: "%", Middle: "% ", Bottom: "%"}
	semicolon  = Style{Top: ";", Middle: "; ", Bottom: ";"}
	handlebars = Style{Top: "{{!--", Middle: "  ", Bottom: "--}}"}
)

// Fallback is the style used for unknown extensions.
var Fallback = hash

var styles = func() map[string]Style {
	m := make(map[string]Style)
	reg := func(s Style, exts ...string) {
		for _, ext := range exts {
			m[ext] = s
		}
	}
	reg(slashStar,
		".c", ".h", ".cc", ".cpp", ".cxx", ".hh", ".hpp", ".m", ".mm",
		".cs", ".java", ".kt", ".kts", ".scala", ".groovy", ".gradle",
		".go", ".rs", ".swift", ".dart", ".php", ".proto",
		".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx",
		".css", ".scss", ".less", ".styl", ".txt",
	)
	reg(hash,
		".sh", ".bash", ".zsh", ".fish", ".ps1",
		".py", ".rb", ".pl", ".pm", ".r", ".jl", ".nim", ".ex", ".exs", ".coffee",
		".yaml", ".yml", ".toml", ".properties", ".conf", ".cmake", ".mk", ".tf",
		".dockerfile", ".gitignore",
	)
	reg(markup, ".html", ".htm", ".xhtml", ".xml", ".svg", ".vue", ".md")
	reg(dash, ".sql", ".lua", ".hs", ".elm", ".ada")
	reg(percent, ".tex", ".sty", ".cls", ".erl", ".hrl")
	reg(semicolon, ".ini", ".lisp", ".lsp", ".cl", ".el", ".clj", ".cljs", ".scm", ".rkt", ".asm")
	reg(handlebars, ".hbs", ".handlebars")
	return m
}()

// Lookup returns the style registered for ext.
func Lookup(ext string) (Style, bool) {
	s, ok := styles[ext]
	return s, ok
}

// Known reports whether ext has a registered style.
func Known(ext string) bool {
	_, ok := styles[ext]
	return ok
}

// Format wraps text into a comment block for files with extension ext.
func Format(text, ext string) string {
	s, ok := Lookup(ext)
	if !ok {
		s = Fallback
	}
	return s.Format(text)
}
