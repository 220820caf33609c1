// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/natefinch/atomic"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"go.astrophena.name/headercomment/cli"
	"go.astrophena.name/headercomment/header"
	"go.astrophena.name/headercomment/logger"
	"go.astrophena.name/headercomment/pkginfo"
)

func main() { cli.Main(new(app)) }

type app struct {
	// flags
	configPath string
	template   *string
	file       *string
	encoding   *string
	separator  *string
	dry        bool
	stream     bool
	jobs       int
	name       string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.configPath, "config", "", "Read configuration from `file` instead of "+defaultConfigFile+".")
	fs.Func("template", "Literal header `template`.", setString(&a.template))
	fs.Func("file", "Read the header template from `path`.", setString(&a.file))
	fs.Func("encoding", "Encoding of the template file (default utf-8).", setString(&a.encoding))
	fs.Func("separator", "Text placed between the header and the content (default newline). Escapes such as \\n are interpreted.", setEscaped(&a.separator))
	fs.BoolVar(&a.dry, "dry", false, "Print a diff of the changes instead of writing files.")
	fs.BoolVar(&a.stream, "stream", false, "Stream file contents instead of reading them into memory.")
	fs.IntVar(&a.jobs, "j", runtime.GOMAXPROCS(0), "Process at most `n` files at once.")
	fs.StringVar(&a.name, "name", "", "File `name` that selects the comment style when reading standard input.")
}

func setString(p **string) func(string) error {
	return func(s string) error {
		*p = &s
		return nil
	}
}

// setEscaped is like setString, but interprets Go escape sequences, so that
// -separator '\n' from a shell means a newline.
func setEscaped(p **string) func(string) error {
	return func(s string) error {
		quoted := strings.NewReplacer(`"`, `\"`, "\n", `\n`).Replace(s)
		v, err := strconv.Unquote(`"` + quoted + `"`)
		if err != nil {
			return errors.Newf("invalid escape sequence in %q", s)
		}
		*p = &v
		return nil
	}
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	cfgPath, required := defaultConfigFile, false
	if a.configPath != "" {
		cfgPath, required = a.configPath, true
	}
	cfg, err := parseConfig(cfgPath, required)
	if err != nil {
		return err
	}

	if a.template != nil && a.file != nil {
		return errors.Newf("%w: -template and -file are mutually exclusive", cli.ErrInvalidArgs)
	}
	hcfg := cfg.headerConfig()
	// A template given on the command line replaces any template source from
	// the config file.
	switch {
	case a.template != nil:
		hcfg.Template, hcfg.File = *a.template, ""
	case a.file != nil:
		hcfg.Template, hcfg.File = "", *a.file
	}
	if a.encoding != nil {
		hcfg.Encoding = *a.encoding
	}
	if a.separator != nil {
		hcfg.Separator = a.separator
	}

	pkg, err := pkginfo.Load(".")
	if err != nil {
		return err
	}
	tr, err := header.New(hcfg, header.NewRenderContext(pkg))
	if err != nil {
		return errors.Mark(err, cli.ErrInvalidArgs)
	}

	if len(env.Args) == 0 {
		return errors.Newf("%w: no paths given", cli.ErrInvalidArgs)
	}
	if slices.Contains(env.Args, "-") {
		if len(env.Args) != 1 {
			return errors.Newf("%w: \"-\" cannot be combined with other paths", cli.ErrInvalidArgs)
		}
		if a.name == "" {
			return errors.Newf("%w: -name is required when reading standard input", cli.ErrInvalidArgs)
		}
		return a.filter(ctx, tr, env.Stdin, env.Stdout)
	}

	paths, err := collect(cfg, env.Args)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "collected files", slog.Int("count", len(paths)))

	var (
		g     errgroup.Group
		mu    sync.Mutex
		diffs = make(map[string]string)
	)
	if a.jobs > 0 {
		g.SetLimit(a.jobs)
	}
	errs := make([]error, len(paths))
	color := cli.IsTerminalWriter(env.Stdout)
	for i, path := range paths {
		g.Go(func() error {
			if a.dry {
				d, err := diffFile(ctx, tr, path, color)
				if err == nil {
					mu.Lock()
					diffs[path] = d
					mu.Unlock()
				}
				errs[i] = err
				return nil
			}
			errs[i] = a.rewrite(ctx, tr, path)
			return nil
		})
	}
	g.Wait()

	for _, path := range paths {
		if d, ok := diffs[path]; ok {
			fmt.Fprintf(env.Stdout, "%s:\n%s\n", path, d)
		}
	}
	if a.dry {
		env.Logf("Would add a header to %d of %d files.", len(diffs), len(paths))
	}
	return errors.Join(errs...)
}

// filter copies in to out with the header added.
func (a *app) filter(ctx context.Context, tr *header.Transformer, in io.Reader, out io.Writer) error {
	f := &header.File{Path: a.name}
	if a.stream {
		f.Contents = header.Stream{Reader: in}
	} else {
		b, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		f.Contents = header.Buffer(b)
	}
	if err := tr.Transform(ctx, f); err != nil {
		return err
	}
	_, err := io.Copy(out, reader(f.Contents))
	return err
}

// rewrite adds the header to the file at path, replacing it atomically.
func (a *app) rewrite(ctx context.Context, tr *header.Transformer, path string) error {
	f := &header.File{Path: path}
	if a.stream {
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		f.Contents = header.Stream{Reader: src}
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		f.Contents = header.Buffer(b)
	}

	if err := tr.Transform(ctx, f); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, reader(f.Contents)); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	logger.Info(ctx, "added header", slog.String("path", path))
	return nil
}

// diffFile returns a line diff between the file at path and its contents
// with the header added. With color, changes are marked with ANSI colors;
// otherwise lines are prefixed with "+", "-" or " ".
func diffFile(ctx context.Context, tr *header.Transformer, path string, color bool) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	f := &header.File{Path: path, Contents: header.Buffer(bytes.Clone(b))}
	if err := tr.Transform(ctx, f); err != nil {
		return "", err
	}

	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(string(b), string(f.Contents.(header.Buffer)))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)
	if color {
		return dmp.DiffPrettyText(diffs), nil
	}

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for line := range strings.Lines(d.Text) {
			sb.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}

func reader(c header.Contents) io.Reader {
	switch c := c.(type) {
	case header.Buffer:
		return bytes.NewReader(c)
	case header.Stream:
		return c
	default:
		return strings.NewReader("")
	}
}

// collect expands args into the list of files to process. Files named
// explicitly are processed unless excluded. Directories are walked, skipping
// hidden ones, and only included files found inside them are processed.
func collect(cfg *config, args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !cfg.isExcluded(arg) {
				add(arg)
			}
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && (strings.HasPrefix(d.Name(), ".") || cfg.isExcluded(path)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || cfg.isExcluded(path) || !cfg.isIncluded(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}
