package lawtest

import (
	"fmt"
	"strings"
)

// Results is the summary of a whole test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestID
}

// TestResult is the result of one test scope.
type TestResult struct {
	TestID TestID
	Errors []error
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the path of names that identifies a test, outermost first.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID with one more name at the end. The original is not modified.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

func (f TestFailure) Unwrap() error { return f.Err }
