// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"context"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the encoding of template files when Config.Encoding is
// empty.
const DefaultEncoding = "utf-8"

// Config selects the header template and how it is joined to content.
// Exactly one of Template and File must be set.
type Config struct {
	// Template is the literal template text. An empty Template counts as
	// not given, so a Config with neither Template nor File is invalid.
	Template string
	// File is the path of a file holding the template text.
	File string
	// Encoding is the WHATWG label of the template file encoding, such as
	// "utf-8", "latin1" or "shift_jis". Defaults to DefaultEncoding.
	Encoding string
	// Separator is placed between the header and the content. Nil means a
	// single newline. A pointer to an empty string means no separator.
	Separator *string
}

func (c Config) validate() error {
	switch {
	case c.Template == "" && c.File == "":
		return &ConfigError{Msg: "no template or template file given"}
	case c.Template != "" && c.File != "":
		return &ConfigError{Msg: "both template and template file given"}
	}
	_, err := c.encoding()
	return err
}

func (c Config) encoding() (encoding.Encoding, error) {
	name := c.Encoding
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &ConfigError{Msg: "unknown encoding " + name, Err: err}
	}
	return enc, nil
}

func (c Config) separator() string {
	if c.Separator == nil {
		return "\n"
	}
	return *c.Separator
}

// Resolve returns the template text selected by cfg. A literal template is
// returned as is. A template file is read and decoded on every call, since
// templates may differ between files that use the same config.
func Resolve(ctx context.Context, cfg Config) (string, error) {
	if err := cfg.validate(); err != nil {
		return "", err
	}
	if cfg.Template != "" {
		return cfg.Template, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return "", &IOError{Path: cfg.File, Err: err}
	}
	enc, err := cfg.encoding()
	if err != nil {
		return "", err
	}
	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &IOError{Path: cfg.File, Err: err}
	}
	return string(text), nil
}
