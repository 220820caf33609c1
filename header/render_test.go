// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"

	"go.astrophena.name/headercomment/pkginfo"
	"go.astrophena.name/headercomment/testutil"
)

func TestRender(t *testing.T) {
	rc := testRenderContext()

	cases := map[string]struct {
		text string
		path string
		want string
	}{
		"plain":       {"Hello World", "a.js", "Hello World"},
		"trimmed":     {"  \n Hello \n\t", "a.js", "Hello"},
		"pkg":         {"{{ .pkg.name }}@{{ .pkg.version }}", "a.js", "demo@1.0.0"},
		"file":        {"{{ .file.path }} {{ .file.name }} {{ .file.base }} {{ .file.ext }} {{ .file.dir }}", "src/app/main.go", "src/app/main.go main main.go .go src/app"},
		"now":         {"{{ (now).Year }}", "a", "2026"},
		"date":        {`{{ date "Jan 2, 2006" }}`, "a", "Jan 2, 2026"},
		"year":        {"{{ year }}", "a", "2026"},
		"upper lower": {"{{ upper \"ab\" }}{{ lower \"CD\" }}", "a", "ABcd"},
		"title":       {`{{ title "hello wörld" }}`, "a", "Hello Wörld"},
		"trim":        {`[{{ trim "  x  " }}]`, "a", "[x]"},
		"replace":     {`{{ replace "-" " " "a-b-c" }}`, "a", "a b c"},
		"split join":  {`{{ join ", " (split "/" "a/b/c") }}`, "a", "a, b, c"},
		"repeat":      {`{{ repeat 3 "=" }}`, "a", "==="},
		"default":     {`{{ default "ISC" (index .pkg "missing") }} {{ default "x" .pkg.name }}`, "a", "ISC demo"},
		"pipeline":    {`{{ .pkg.license | upper }}`, "a", "MIT"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := rc.Render(tc.text, tc.path)
			testutil.AssertEqual(t, err, nil)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	rc := NewRenderContext(nil)

	for name, text := range map[string]string{
		"undefined pkg key":  "{{ .pkg.name }}",
		"undefined file key": "{{ .file.size }}",
		"undefined function": "{{ nope }}",
		"syntax error":       "{{ .pkg.name ",
		"join of non-list":   `{{ join "," 1 }}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := rc.Render(text, "a.js")
			var tmplErr *TemplateError
			if !errors.As(err, &tmplErr) {
				t.Fatalf("want *TemplateError, got %T: %v", err, err)
			}
			if tmplErr.Err == nil {
				t.Fatal("engine error must be kept")
			}
		})
	}
}

func TestRenderCache(t *testing.T) {
	rc := NewRenderContext(pkginfo.Info{"name": "x"})
	const text = "{{ .pkg.name }} {{ .file.base }}"

	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Go(func() {
			results[i], _ = rc.Render(text, strings.Repeat("a", i+1)+".go")
		})
	}
	wg.Wait()

	for i, got := range results {
		testutil.AssertEqual(t, got, "x "+strings.Repeat("a", i+1)+".go")
	}
	if _, ok := rc.cache.Load(text); !ok {
		t.Fatal("parsed template must be cached")
	}

	if _, err := rc.Render("{{ broken", "a"); err == nil {
		t.Fatal("want error")
	}
	if _, ok := rc.cache.Load("{{ broken"); ok {
		t.Fatal("failed parse must not be cached")
	}
}
