package helpers

import (
	"errors"
	"fmt"
	"strings"
)

// TestContext is a minimal interface for types like *testing.T and *lawtest.T representing a
// test that can fail. Functions can use this to avoid specific dependencies on those packages.
type TestContext interface {
	Errorf(msgFormat string, msgArgs ...interface{})
	FailNow()
}

// TestRecorder is a TestContext that only records what happened. Law predicates use it to run
// assert/require style checks and turn the outcome into a value.
type TestRecorder struct {
	Errors     []string
	Terminated bool

	// PanicOnTerminate makes FailNow panic with the recorder itself, so that a caller can stop the
	// assertion function the way testing.T.FailNow would and then recover.
	PanicOnTerminate bool
}

func (r *TestRecorder) Errorf(msgFormat string, msgArgs ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(msgFormat, msgArgs...))
}

func (r *TestRecorder) FailNow() {
	r.Terminated = true
	if r.PanicOnTerminate {
		panic(r)
	}
}

// Helper is a no-op that lets TestRecorder satisfy the helper interfaces that testify checks for.
func (r *TestRecorder) Helper() {}

// Failed returns true if any error was recorded or FailNow was called.
func (r *TestRecorder) Failed() bool { return len(r.Errors) != 0 || r.Terminated }

// Err returns nil if no errors were recorded, or else a single error with all messages.
func (r *TestRecorder) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(r.Errors, ", "))
}
