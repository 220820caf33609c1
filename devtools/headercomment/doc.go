// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Headercomment adds a license or banner comment to the top of files.

Usage:

	$ headercomment [flags] path...
	$ headercomment [flags] -name index.html - < in.html > out.html

The header is a Go text/template given with -template or read from the file
given with -file. Templates can refer to the project descriptor as .pkg (read
from package.json, Cargo.toml, pyproject.toml or go.mod in the current
directory, in that order) and to the processed file as .file (path, name,
base, ext and dir). The functions now, date, year, upper, lower, title, trim,
replace, split, join, repeat and default are available:

	Copyright {{ year }} {{ .pkg.author }}. {{ upper .pkg.license }} license.

The rendered text is wrapped into the comment syntax of each file, chosen by
its extension, and placed before the content. HTML, XML and SVG files that
start with a <!doctype> or <?xml?> declaration keep it as the first line.

Files named on the command line are always processed. Directories are walked
recursively, skipping hidden directories, and only files with a known comment
syntax (or, if configured, a listed extension) are processed.

Running the tool twice on the same file adds the header twice.

Defaults can be kept in a .headercomment.yaml file in the current directory:

	file: LICENSE.tmpl
	separator: "\n"
	include: [".go", ".js"]
	exclude: ["vendor", "_test.go"]

Exclusions match path suffixes. Flags override the config file. The value of
-separator may use Go escape sequences, so -separator '\n\n' puts a blank line
between the header and the content.

With -dry, a diff of every file is printed instead of writing. Its lines are
prefixed with "+" and " ", or colored when standard output is a terminal.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/headercomment/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
