// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"go.astrophena.name/headercomment/logger"
	"go.astrophena.name/headercomment/testutil"
)

func TestNew(t *testing.T) {
	empty := ""
	for name, tc := range map[string]struct {
		cfg     Config
		wantErr bool
		wantSep string
	}{
		"literal":          {cfg: Config{Template: "x"}, wantSep: "\n"},
		"file":             {cfg: Config{File: "LICENSE"}, wantSep: "\n"},
		"empty separator":  {cfg: Config{Template: "x", Separator: &empty}, wantSep: ""},
		"empty template":   {cfg: Config{Template: ""}, wantErr: true},
		"both":             {cfg: Config{Template: "x", File: "y"}, wantErr: true},
		"unknown encoding": {cfg: Config{File: "y", Encoding: "nope"}, wantErr: true},
	} {
		t.Run(name, func(t *testing.T) {
			tr, err := New(tc.cfg, nil)
			if tc.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("want *ConfigError, got %v", err)
				}
				return
			}
			testutil.AssertEqual(t, err, nil)
			testutil.AssertEqual(t, tr.Separator(), tc.wantSep)
		})
	}
}

func TestTransformPassThrough(t *testing.T) {
	tr, err := New(Config{File: filepath.Join(t.TempDir(), "missing")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// No template read happens for these, so the missing file is not an error.
	for _, f := range []*File{nil, {Path: "a.js"}, {Path: "dir", Dir: true}} {
		testutil.AssertEqual(t, tr.Transform(context.Background(), f), nil)
	}
}

func TestTransformErrors(t *testing.T) {
	var logs bytes.Buffer
	l := logger.New(nil)
	l.Level.Set(slog.LevelDebug)
	l.AttachTerminal(&logs, false)
	ctx := logger.Put(context.Background(), l)

	missing := filepath.Join(t.TempDir(), "missing.tmpl")

	t.Run("io", func(t *testing.T) {
		tr, err := New(Config{File: missing}, nil)
		if err != nil {
			t.Fatal(err)
		}
		f := &File{Path: "src/a.js", Contents: Buffer("x")}
		err = tr.Transform(ctx, f)

		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("want *IOError, got %v", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("want fs.ErrNotExist in chain, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "src/a.js: ") {
			t.Errorf("error must start with the file path, got %q", err)
		}
		testutil.AssertEqual(t, string(f.Contents.(Buffer)), "x")
	})

	t.Run("template", func(t *testing.T) {
		tr, err := New(Config{Template: "{{ .pkg.nope }}"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		err = tr.Transform(ctx, &File{Path: "b.go", Contents: Buffer("x")})
		var tmplErr *TemplateError
		if !errors.As(err, &tmplErr) {
			t.Fatalf("want *TemplateError, got %v", err)
		}
	})

	out := logs.String()
	for _, want := range []string{"adding header failed", "path=src/a.js", "path=b.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("log must contain %q, got %q", want, out)
		}
	}
}

func TestTransformErrorsNotLoggedAtInfo(t *testing.T) {
	var logs bytes.Buffer
	l := logger.New(nil)
	l.AttachTerminal(&logs, false)
	ctx := logger.Put(context.Background(), l)

	tr, err := New(Config{File: filepath.Join(t.TempDir(), "missing.tmpl")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Transform(ctx, &File{Path: "a.js", Contents: Buffer("x")}); err == nil {
		t.Fatal("want error")
	}
	testutil.AssertEqual(t, logs.String(), "")
}

func TestTransformCancelled(t *testing.T) {
	tr, err := New(Config{Template: "x"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &File{Path: "a.js", Contents: Buffer("body")}
	if err := tr.Transform(ctx, f); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	testutil.AssertEqual(t, string(f.Contents.(Buffer)), "body")
}

func TestTransformPerFileTemplateRead(t *testing.T) {
	tmpl := filepath.Join(t.TempDir(), "header.tmpl")
	write := func(s string) {
		if err := os.WriteFile(tmpl, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	tr, err := New(Config{File: tmpl}, nil)
	if err != nil {
		t.Fatal(err)
	}

	write("first")
	a := &File{Path: "a.sh", Contents: Buffer("")}
	if err := tr.Transform(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	write("second")
	b := &File{Path: "b.sh", Contents: Buffer("")}
	if err := tr.Transform(context.Background(), b); err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, string(a.Contents.(Buffer)), "#\n# first\n#\n\n")
	testutil.AssertEqual(t, string(b.Contents.(Buffer)), "#\n# second\n#\n\n")
}

func TestTransformAll(t *testing.T) {
	tr, err := New(Config{Template: "{{ .file.name }}"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var files []*File
	for i := range 50 {
		files = append(files, &File{Path: fmt.Sprintf("f%d.js", i), Contents: Buffer("x")})
	}
	files = append(files, &File{Path: "dir", Dir: true}, &File{Path: "none.js"})

	testutil.AssertEqual(t, tr.TransformAll(context.Background(), files, 4), nil)
	for i, f := range files[:50] {
		want := fmt.Sprintf("/**\n * f%d\n */\n\nx", i)
		testutil.AssertEqual(t, string(f.Contents.(Buffer)), want)
	}
}

func TestTransformAllCollectsFailures(t *testing.T) {
	// Only files whose name does not start with "ok" reach the undefined key.
	tr, err := New(Config{Template: `{{ if eq (slice .file.name 0 2) "ok" }}fine{{ else }}{{ .pkg.missing }}{{ end }}`}, nil)
	if err != nil {
		t.Fatal(err)
	}

	files := []*File{
		{Path: "ok1.js", Contents: Buffer("1")},
		{Path: "bad1.js", Contents: Buffer("2")},
		{Path: "ok2.js", Contents: Buffer("3")},
		{Path: "bad2.js", Contents: Buffer("4")},
	}
	err = tr.TransformAll(context.Background(), files, 0)
	if err == nil {
		t.Fatal("want error")
	}
	msg := err.Error()
	for _, want := range []string{"bad1.js", "bad2.js"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error must mention %s, got %q", want, msg)
		}
	}
	if strings.Contains(msg, "ok1.js") || strings.Contains(msg, "ok2.js") {
		t.Errorf("error must not mention successful files, got %q", msg)
	}
	if strings.Index(msg, "bad1.js") > strings.Index(msg, "bad2.js") {
		t.Errorf("failures must keep file order, got %q", msg)
	}
	var tmplErr *TemplateError
	if !errors.As(err, &tmplErr) {
		t.Errorf("want *TemplateError in joined error, got %v", err)
	}

	testutil.AssertEqual(t, string(files[0].Contents.(Buffer)), "/**\n * fine\n */\n\n1")
	testutil.AssertEqual(t, string(files[2].Contents.(Buffer)), "/**\n * fine\n */\n\n3")
	testutil.AssertEqual(t, string(files[1].Contents.(Buffer)), "2")
}
