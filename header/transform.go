// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header adds a rendered license or banner comment to the top of
// files.
//
// A [Transformer] resolves the template (see [Resolve]), renders it with a
// [RenderContext], wraps the result into the comment syntax of the file
// type (see package comment) and inserts it into the file contents (see
// [Apply]).
//
// Running a file through a Transformer twice adds the header twice.
package header

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"go.astrophena.name/headercomment/comment"
	"go.astrophena.name/headercomment/logger"
)

// Transformer adds a header to files. It is safe for concurrent use.
type Transformer struct {
	cfg Config
	sep string
	rc  *RenderContext
}

// New returns a Transformer for cfg. If rc is nil, an empty RenderContext is
// used. Invalid configs are reported as a *ConfigError.
func New(cfg Config, rc *RenderContext) (*Transformer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rc == nil {
		rc = NewRenderContext(nil)
	}
	return &Transformer{cfg: cfg, sep: cfg.separator(), rc: rc}, nil
}

// Separator returns the text placed between the header and the content.
func (t *Transformer) Separator() string { return t.sep }

// Header returns the comment block for the file at path, ending with a
// newline.
func (t *Transformer) Header(ctx context.Context, path string) (string, error) {
	text, err := Resolve(ctx, t.cfg)
	if err != nil {
		return "", err
	}
	rendered, err := t.rc.Render(text, path)
	if err != nil {
		return "", err
	}
	return comment.Format(rendered, filepath.Ext(path)), nil
}

// Transform adds the header to f in place. Directories and files without
// contents are passed through. Failures are logged at debug level and
// returned wrapped with the file path; reporting them is up to the caller.
// Use errors.As to get the *ConfigError, *IOError or *TemplateError.
func (t *Transformer) Transform(ctx context.Context, f *File) error {
	if f == nil || f.Dir || f.Contents == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	header, err := t.Header(ctx, f.Path)
	if err != nil {
		logger.Debug(ctx, "adding header failed", slog.String("path", f.Path), slog.Any("err", err))
		return errors.Wrapf(err, "%s", f.Path)
	}
	Apply(ctx, f, header, t.sep)
	logger.Debug(ctx, "added header", slog.String("path", f.Path))
	return nil
}

// TransformAll transforms files concurrently, running at most limit
// transforms at once; limit <= 0 means no limit. A failing file does not
// stop the others. All failures are returned joined, in the order of files.
func (t *Transformer) TransformAll(ctx context.Context, files []*File, limit int) error {
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	errs := make([]error, len(files))
	for i, f := range files {
		g.Go(func() error {
			errs[i] = t.Transform(ctx, f)
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}
