// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package pkginfo loads the project descriptor exposed to header templates
// as .pkg.
package pkginfo

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
)

// Info is a project descriptor. Keys follow the file it was read from, so a
// package.json gives "name", "version", "license" and so on.
type Info map[string]any

type source struct {
	name  string
	parse func(data []byte) (Info, error)
}

// Descriptors are tried in this order; the first existing file wins.
var sources = []source{
	{"package.json", parseJSON},
	{"Cargo.toml", tomlTable("package")},
	{"pyproject.toml", tomlTable("project")},
	{"go.mod", parseGoMod},
}

// Load reads the first project descriptor found in dir. If there is none, it
// returns an empty Info. A descriptor that exists but cannot be read or
// parsed is an error.
func Load(dir string) (Info, error) {
	for _, src := range sources {
		p := filepath.Join(dir, src.name)
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", p)
		}
		info, err := src.parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", p)
		}
		if info == nil {
			info = Info{}
		}
		return info, nil
	}
	return Info{}, nil
}

func parseJSON(data []byte) (Info, error) {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return info, nil
}

func tomlTable(table string) func([]byte) (Info, error) {
	return func(data []byte) (Info, error) {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		v, ok := doc[table]
		if !ok {
			return Info{}, nil
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errors.Newf("[%s] is not a table", table)
		}
		return Info(m), nil
	}
}

func parseGoMod(data []byte) (Info, error) {
	f, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return nil, err
	}
	if f.Module == nil {
		return nil, errors.New("no module directive")
	}
	info := Info{
		"name":   path.Base(f.Module.Mod.Path),
		"module": f.Module.Mod.Path,
	}
	if f.Go != nil {
		info["go"] = f.Go.Version
	}
	return info, nil
}
