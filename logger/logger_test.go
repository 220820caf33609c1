// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"go.astrophena.name/headercomment/testutil"
)

func TestLogfWriter(t *testing.T) {
	var (
		logged  bool
		message string
	)
	logf := func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	}
	n, err := Logf(logf).Write([]byte("hello"))
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, n, 5)
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "hello")
}

func TestDefaultDiscards(t *testing.T) {
	ctx := context.Background()
	l := Get(ctx)
	testutil.AssertEqual(t, IsDefault(l), true)
	testutil.AssertEqual(t, l.Enabled(ctx, slog.LevelError), false)
	// Must not panic.
	Error(ctx, "dropped", slog.String("path", "a.js"))
}

func TestPutGet(t *testing.T) {
	var buf bytes.Buffer
	l := New(nil)
	l.AttachTerminal(&buf, false)
	ctx := Put(context.Background(), l)

	testutil.AssertEqual(t, Get(ctx) == l, true)
	testutil.AssertEqual(t, IsDefault(Get(ctx)), false)

	Debug(ctx, "hidden")
	Info(ctx, "processed", slog.String("path", "main.js"))
	Warn(ctx, "skipped")
	Error(ctx, "failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	for _, want := range []string{"processed", "path=main.js", "skipped", "failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output must contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output must not be colored, got %q", out)
	}
}

func TestLevelVar(t *testing.T) {
	var buf bytes.Buffer
	l := New(nil)
	l.AttachTerminal(&buf, false)
	ctx := Put(context.Background(), l)

	Debug(ctx, "first")
	l.Level.Set(slog.LevelDebug)
	Debug(ctx, "second")

	out := buf.String()
	testutil.AssertEqual(t, strings.Contains(out, "first"), false)
	testutil.AssertEqual(t, strings.Contains(out, "second"), true)
}

func TestFanout(t *testing.T) {
	var a, b bytes.Buffer
	l := New(nil)
	l.Attach(slog.NewTextHandler(&a, &slog.HandlerOptions{Level: l.Level}))
	l.Attach(slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx := Put(context.Background(), l)
	Get(ctx).With("file", "x.css").Info("info")
	Error(ctx, "error")

	for name, tc := range map[string]struct {
		out        string
		want, skip []string
	}{
		"info handler":  {a.String(), []string{"msg=info", "file=x.css", "msg=error"}, nil},
		"error handler": {b.String(), []string{"msg=error"}, []string{"msg=info"}},
	} {
		t.Run(name, func(t *testing.T) {
			for _, w := range tc.want {
				if !strings.Contains(tc.out, w) {
					t.Errorf("want %q in %q", w, tc.out)
				}
			}
			for _, s := range tc.skip {
				if strings.Contains(tc.out, s) {
					t.Errorf("unexpected %q in %q", s, tc.out)
				}
			}
		})
	}
}
