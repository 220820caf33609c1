// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides a table-driven harness for testing [cli.App]
// implementations.
package clitest

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"go.astrophena.name/headercomment/cli"
)

// Case describes a single invocation of an application under test.
type Case[Instance cli.App] struct {
	// Args are the command-line arguments.
	Args []string
	// Stdin is the standard input. An empty reader is used if nil.
	Stdin io.Reader
	// Env holds environment variables visible through Env.Getenv.
	Env map[string]string
	// WantErr, if set, must match the returned error with errors.Is.
	WantErr error
	// WantErrType, if set, must match the returned error with errors.As.
	// It should be a pointer to a value of the expected error type.
	WantErrType error
	// WantInStdout, if set, must be a substring of standard output.
	WantInStdout string
	// WantInStderr, if set, must be a substring of standard error.
	WantInStderr string
	// WantNothingPrinted requires both standard output and error to be empty.
	WantNothingPrinted bool
	// CheckFunc, if set, runs after the application with the same instance.
	CheckFunc func(*testing.T, Instance)
}

// Run runs each case as a subtest. setup creates a fresh application for
// every case.
func Run[Instance cli.App](t *testing.T, setup func(*testing.T) Instance, cases map[string]Case[Instance]) {
	t.Helper()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Getenv: func(k string) string { return tc.Env[k] },
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
			}

			err := cli.Run(cli.WithEnv(t.Context(), env), app)
			checkErr(t, err, tc.WantErr, tc.WantErrType)

			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got:\n%s", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got:\n%s", tc.WantInStderr, stderr.String())
			}
			if tc.WantNothingPrinted && (stdout.Len() > 0 || stderr.Len() > 0) {
				t.Errorf("want nothing printed, got stdout:\n%s\nstderr:\n%s", stdout.String(), stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}

func checkErr(t *testing.T, err, want, wantType error) {
	t.Helper()
	if want == nil && wantType == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if want != nil && !errors.Is(err, want) {
		t.Fatalf("want error %v, got %v", want, err)
	}
	if wantType != nil {
		target := reflect.New(reflect.TypeOf(wantType))
		if !errors.As(err, target.Interface()) {
			t.Fatalf("want error of type %T, got %v (%T)", wantType, err, err)
		}
	}
}
