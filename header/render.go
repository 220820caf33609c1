// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"text/template"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go.astrophena.name/headercomment/pkginfo"
	"go.astrophena.name/headercomment/syncx"
)

// RenderContext holds what templates can refer to besides the file being
// processed: the project descriptor, the clock and helper functions. It is
// built once and shared by every file; it is safe for concurrent use.
type RenderContext struct {
	pkg   pkginfo.Info
	now   func() time.Time
	funcs template.FuncMap
	cache syncx.Cache[string, *template.Template]
}

// Option configures a RenderContext.
type Option func(*RenderContext)

// WithClock sets the function returning the current time. It is used by the
// now, date and year template functions.
func WithClock(now func() time.Time) Option {
	return func(rc *RenderContext) { rc.now = now }
}

// NewRenderContext returns a RenderContext exposing pkg to templates as .pkg.
// A nil pkg is treated as empty.
func NewRenderContext(pkg pkginfo.Info, opts ...Option) *RenderContext {
	if pkg == nil {
		pkg = pkginfo.Info{}
	}
	rc := &RenderContext{pkg: pkg, now: time.Now}
	for _, opt := range opts {
		opt(rc)
	}
	rc.funcs = rc.funcMap()
	return rc
}

func (rc *RenderContext) funcMap() template.FuncMap {
	return template.FuncMap{
		"now":  rc.now,
		"date": func(layout string) string { return rc.now().Format(layout) },
		"year": func() int { return rc.now().Year() },

		"upper": strings.ToUpper,
		"lower": strings.ToLower,

		// A Caser is stateful, so every call gets its own.
		"title":   func(s string) string { return cases.Title(language.Und).String(s) },
		"trim":    strings.TrimSpace,
		"replace": func(old, repl, s string) string { return strings.ReplaceAll(s, old, repl) },
		"split":   func(sep, s string) []string { return strings.Split(s, sep) },
		"repeat":  func(n int, s string) string { return strings.Repeat(s, n) },
		"join":    join,
		"default": orDefault,
	}
}

func join(sep string, list any) (string, error) {
	v := reflect.ValueOf(list)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return "", errors.Newf("join: %T is not a list", list)
	}
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return strings.Join(parts, sep), nil
}

func orDefault(def, v any) any {
	if v == nil {
		return def
	}
	if rv := reflect.ValueOf(v); rv.IsZero() {
		return def
	}
	return v
}

func (rc *RenderContext) parse(text string) (*template.Template, error) {
	return rc.cache.Get(text, func() (*template.Template, error) {
		return template.New("header").
			Option("missingkey=error").
			Funcs(rc.funcs).
			Parse(text)
	})
}

// Render executes the template text for the file at path and returns the
// result with leading and trailing whitespace removed.
//
// Besides .pkg, templates see .file with the keys path, name (base name
// without extension), base, ext and dir. Referring to a key that does not
// exist is an error; use index to look up optional keys.
func (rc *RenderContext) Render(text, path string) (string, error) {
	tmpl, err := rc.parse(text)
	if err != nil {
		return "", &TemplateError{Err: err}
	}

	base := filepath.Base(path)
	ext := filepath.Ext(path)
	data := map[string]any{
		"pkg": map[string]any(rc.pkg),
		"file": map[string]string{
			"path": path,
			"name": strings.TrimSuffix(base, ext),
			"base": base,
			"ext":  ext,
			"dir":  filepath.Dir(path),
		},
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", &TemplateError{Err: err}
	}
	return strings.TrimSpace(sb.String()), nil
}
