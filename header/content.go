// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.astrophena.name/headercomment/prolog"
)

// Contents is the content of a [File]: nil when absent, a [Buffer] or a
// [Stream].
type Contents interface {
	contents()
}

// Buffer is content held in memory.
type Buffer []byte

// Stream is content read lazily from a reader. If the reader is also an
// [io.Closer], the stream that replaces it after [Apply] closes it too.
type Stream struct {
	io.Reader
}

func (Buffer) contents() {}
func (Stream) contents() {}

// File is a unit of content passing through a pipeline.
type File struct {
	// Path determines the comment style and whether the file may start
	// with a prolog declaration.
	Path string
	// Dir marks directory entries, which are passed through untouched.
	Dir bool
	// Contents is nil for entries without content.
	Contents Contents
}

// Apply inserts header into the contents of f, replacing them. Directories
// and files without contents are left alone.
//
// HTML, XML and SVG files whose first line is a prolog declaration keep it as
// the first line, see [prolog.Insert]. Everything else gets header and sep
// prepended. Buffered and streamed contents produce the same bytes.
//
// A replaced stream stops with ctx.Err() once ctx is done.
func Apply(ctx context.Context, f *File, header, sep string) {
	if f == nil || f.Dir {
		return
	}
	ft := prolog.FileType(f.Path)
	kind := prolog.KindOf(ft)

	switch c := f.Contents.(type) {
	case Buffer:
		if kind != prolog.None {
			f.Contents = Buffer(prolog.Insert(string(c), ft, header, sep))
			return
		}
		b := make([]byte, 0, len(header)+len(sep)+len(c))
		b = append(b, header...)
		b = append(b, sep...)
		b = append(b, c...)
		f.Contents = Buffer(b)

	case Stream:
		var r io.Reader
		if kind != prolog.None {
			r = &prologReader{src: bufio.NewReader(c.Reader), kind: kind, header: header, sep: sep}
		} else {
			r = io.MultiReader(strings.NewReader(header+sep), c.Reader)
		}
		cr := &ctxReader{ctx: ctx, r: r}
		if closer, ok := c.Reader.(io.Closer); ok {
			cr.c = closer
		}
		f.Contents = Stream{cr}
	}
}

// ctxReader stops reading once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
	c   io.Closer
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

func (r *ctxReader) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}

// prologReader buffers the source until the end of the first line, however
// the source splits it across reads, then emits the first line and header in
// the same layout as [prolog.Insert], followed by the rest of the source.
type prologReader struct {
	src    *bufio.Reader
	kind   prolog.Kind
	header string
	sep    string

	out io.Reader // nil until the first line was read
	err error
}

func (r *prologReader) Read(p []byte) (int, error) {
	if r.out == nil {
		if r.err != nil {
			return 0, r.err
		}
		line, err := r.src.ReadString('\n')
		if err != nil && err != io.EOF {
			r.err = err
			return 0, err
		}
		head, ok := prolog.Prefix(r.kind, strings.TrimSuffix(line, "\n"), r.header, r.sep)
		if !ok {
			head = r.header + r.sep + line
		}
		r.out = io.MultiReader(strings.NewReader(head), r.src)
	}
	return r.out.Read(p)
}
