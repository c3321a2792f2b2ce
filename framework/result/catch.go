package result

import (
	"regexp"
	"strings"

	"github.com/launchdarkly/laws-harness/framework/helpers"
)

// TestingT is the subset of *testing.T that assertion helpers need. It is satisfied by the
// recorder that Catch passes in, so testify's assert and require functions and go-test-helpers
// matchers can be used inside a law predicate.
type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
}

var testifyPreambleRegex = regexp.MustCompile(`^(?s:\s*Error Trace:.*?\sError:\s*)`)

// Catch runs an assertion function and converts what it reported into a result. Every Errorf call
// becomes part of the failure message. A FailNow call stops the function at that point, the same
// as it would in a Go test.
func Catch(fn func(t TestingT)) (ret TestResult) {
	recorder := &helpers.TestRecorder{PanicOnTerminate: true}
	defer func() {
		if r := recover(); r != nil {
			if r != recorder {
				panic(r)
			}
			ret = fromRecorder(recorder)
		}
	}()
	fn(recorder)
	return fromRecorder(recorder)
}

func fromRecorder(recorder *helpers.TestRecorder) TestResult {
	if !recorder.Failed() {
		return Passed()
	}
	messages := make([]string, 0, len(recorder.Errors))
	for _, e := range recorder.Errors {
		messages = append(messages, cleanAssertionMessage(e))
	}
	if len(messages) == 0 {
		return Failed("FailNow was called")
	}
	return Failed(strings.Join(messages, "; "))
}

// testify prefixes its messages with a file/line trace that points into the predicate, which is
// noise once the outcome already carries a label path.
func cleanAssertionMessage(msg string) string {
	if !strings.Contains(msg, "Error Trace:") {
		return strings.TrimSpace(msg)
	}
	return strings.TrimSpace(testifyPreambleRegex.ReplaceAllLiteralString(msg, ""))
}
