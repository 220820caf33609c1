// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

// ConfigError reports an invalid [Config]: no template source, two template
// sources, or an unknown encoding.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return "invalid config: " + e.Msg + ": " + e.Err.Error()
	}
	return "invalid config: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IOError reports a template file that could not be read or decoded. Err is
// the error returned by the file system, unchanged.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return "reading template: " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

// TemplateError reports a template that failed to parse or execute, for
// example because it references an undefined key. Err is the error of the
// template engine.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string { return "rendering template: " + e.Err.Error() }

func (e *TemplateError) Unwrap() error { return e.Err }
