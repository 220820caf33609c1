// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"

	"go.astrophena.name/headercomment/comment"
	"go.astrophena.name/headercomment/header"
)

// defaultConfigFile is read from the working directory when -config is not
// given. It is optional.
const defaultConfigFile = ".headercomment.yaml"

type config struct {
	Template  string   `json:"template"`
	File      string   `json:"file"`
	Encoding  string   `json:"encoding"`
	Separator *string  `json:"separator"`
	Include   []string `json:"include"`
	Exclude   []string `json:"exclude"`
}

// parseConfig reads the config file at path. A missing file is not an error
// unless required is set.
func parseConfig(path string, required bool) (*config, error) {
	cfg := new(config)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.initializeAndValidate(); err != nil {
		return nil, errors.Wrapf(err, "validating %s", path)
	}
	return cfg, nil
}

func (cfg *config) initializeAndValidate() error {
	var errs []error

	if cfg.Template != "" && cfg.File != "" {
		errs = append(errs, errors.New("only one of template and file may be set"))
	}
	for i, ext := range cfg.Include {
		if !strings.HasPrefix(ext, ".") || len(ext) == 1 {
			errs = append(errs, errors.Newf("include[%d]: %q is not an extension like \".go\"", i, ext))
		}
	}
	for i, ex := range cfg.Exclude {
		if ex == "" {
			errs = append(errs, errors.Newf("exclude[%d]: empty pattern", i))
		}
		cfg.Exclude[i] = filepath.ToSlash(ex)
	}

	return errors.Join(errs...)
}

func (cfg *config) headerConfig() header.Config {
	return header.Config{
		Template:  cfg.Template,
		File:      cfg.File,
		Encoding:  cfg.Encoding,
		Separator: cfg.Separator,
	}
}

func (cfg *config) isExcluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, ex := range cfg.Exclude {
		if strings.HasSuffix(path, ex) {
			return true
		}
	}
	return false
}

// isIncluded reports whether a file found while walking a directory should
// get a header.
func (cfg *config) isIncluded(path string) bool {
	ext := filepath.Ext(path)
	if len(cfg.Include) == 0 {
		return comment.Known(ext)
	}
	return slices.Contains(cfg.Include, ext)
}
