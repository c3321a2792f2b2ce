package result

import (
	"fmt"
	"strings"

	"github.com/launchdarkly/laws-harness/framework/helpers"

	"go.uber.org/multierr"
)

// LabelSeparator is used between the elements of an outcome's label path when it is printed.
const LabelSeparator = ": "

// Outcome is the result of checking one law.
type Outcome struct {
	// Labels is the label path of the law, outermost first.
	Labels []string

	Passed bool

	// Message describes a failure. It is normally empty for a passing outcome.
	Message string

	// Samples are the values the law was applied to when it failed, if known.
	Samples []interface{}

	// Trials is the number of trials that passed before the check finished.
	Trials int
}

// TestResult is an immutable list of outcomes. The zero value has no outcomes and is a pass.
type TestResult struct {
	outcomes []Outcome
}

// Passed returns a result with a single unlabeled passing outcome.
func Passed() TestResult {
	return TestResult{outcomes: []Outcome{{Passed: true}}}
}

// Failed returns a result with a single unlabeled failing outcome.
func Failed(message string) TestResult {
	return TestResult{outcomes: []Outcome{{Message: message}}}
}

// Failedf is a shortcut for Failed(fmt.Sprintf(format, args...)).
func Failedf(format string, args ...interface{}) TestResult {
	return Failed(fmt.Sprintf(format, args...))
}

// FromBool returns Passed() if ok is true, or Failed(message) otherwise.
func FromBool(ok bool, message string) TestResult {
	if ok {
		return Passed()
	}
	return Failed(message)
}

// FromOutcomes builds a result from existing outcomes. The slice is copied.
func FromOutcomes(outcomes ...Outcome) TestResult {
	ret := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		ret = append(ret, o.clone())
	}
	return TestResult{outcomes: ret}
}

// All combines any number of results with And.
func All(results ...TestResult) TestResult {
	var ret TestResult
	for _, r := range results {
		ret = ret.And(r)
	}
	return ret
}

// OK returns true if none of the outcomes failed.
func (r TestResult) OK() bool {
	for _, o := range r.outcomes {
		if !o.Passed {
			return false
		}
	}
	return true
}

// And returns a result containing the outcomes of r followed by the outcomes of other. It fails if
// either side fails, and neither side's diagnostics are dropped.
func (r TestResult) And(other TestResult) TestResult {
	if len(other.outcomes) == 0 {
		return r
	}
	if len(r.outcomes) == 0 {
		return other
	}
	ret := make([]Outcome, 0, len(r.outcomes)+len(other.outcomes))
	ret = append(ret, r.outcomes...)
	ret = append(ret, other.outcomes...)
	return TestResult{outcomes: ret}
}

// Label returns a copy of the result with label added to the front of every outcome's label path.
func (r TestResult) Label(label string) TestResult {
	return r.mapOutcomes(func(o *Outcome) {
		o.Labels = append([]string{label}, o.Labels...)
	})
}

// WithSamples returns a copy of the result where every failing outcome that does not already
// have samples records the given ones.
func (r TestResult) WithSamples(samples ...interface{}) TestResult {
	return r.mapOutcomes(func(o *Outcome) {
		if !o.Passed && len(o.Samples) == 0 {
			o.Samples = helpers.CopyOf(samples)
		}
	})
}

// WithTrials returns a copy of the result with the trial count set on every outcome.
func (r TestResult) WithTrials(trials int) TestResult {
	return r.mapOutcomes(func(o *Outcome) { o.Trials = trials })
}

// Outcomes returns a copy of all outcomes.
func (r TestResult) Outcomes() []Outcome {
	return FromOutcomes(r.outcomes...).outcomes
}

// Failures returns copies of the failing outcomes only.
func (r TestResult) Failures() []Outcome {
	var ret []Outcome
	for _, o := range r.outcomes {
		if !o.Passed {
			ret = append(ret, o.clone())
		}
	}
	return ret
}

// Labels returns the label path of every outcome, in order.
func (r TestResult) Labels() []string {
	ret := make([]string, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		ret = append(ret, o.Path())
	}
	return ret
}

// FailedLabels returns the label path of every failing outcome, in order.
func (r TestResult) FailedLabels() []string {
	var ret []string
	for _, o := range r.outcomes {
		if !o.Passed {
			ret = append(ret, o.Path())
		}
	}
	return ret
}

// Err returns nil if the result passed, or an error combining one error per failing outcome.
func (r TestResult) Err() error {
	var err error
	for _, o := range r.outcomes {
		if !o.Passed {
			err = multierr.Append(err, OutcomeError{Outcome: o.clone()})
		}
	}
	return err
}

func (r TestResult) String() string {
	if len(r.outcomes) == 0 {
		return "PASS (no laws)"
	}
	lines := make([]string, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		lines = append(lines, o.String())
	}
	return strings.Join(lines, "\n")
}

func (r TestResult) mapOutcomes(fn func(*Outcome)) TestResult {
	if len(r.outcomes) == 0 {
		return r
	}
	ret := make([]Outcome, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		c := o.clone()
		fn(&c)
		ret = append(ret, c)
	}
	return TestResult{outcomes: ret}
}

// Path returns the label path joined with LabelSeparator.
func (o Outcome) Path() string {
	return strings.Join(o.Labels, LabelSeparator)
}

func (o Outcome) String() string {
	var b strings.Builder
	b.WriteString(helpers.IfElse(o.Passed, "PASS ", "FAIL "))
	b.WriteString(helpers.IfElse(len(o.Labels) == 0, "(unlabeled)", o.Path()))
	if o.Trials > 0 {
		fmt.Fprintf(&b, " [%d trials]", o.Trials)
	}
	if !o.Passed && o.Message != "" {
		b.WriteString(LabelSeparator)
		b.WriteString(o.Message)
	}
	if len(o.Samples) > 0 {
		b.WriteString(" samples=")
		b.WriteString(FormatSamples(o.Samples))
	}
	return b.String()
}

func (o Outcome) clone() Outcome {
	o.Labels = helpers.CopyOf(o.Labels)
	o.Samples = helpers.CopyOf(o.Samples)
	return o
}

// FormatSamples renders a sample tuple such as (1, "a", true).
func FormatSamples(samples []interface{}) string {
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		switch v := s.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%q", v))
		case fmt.Stringer:
			parts = append(parts, v.String())
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// OutcomeError is the error form of a failing Outcome.
type OutcomeError struct {
	Outcome Outcome
}

func (e OutcomeError) Error() string {
	msg := helpers.IfElse(e.Outcome.Message == "", "law failed", e.Outcome.Message)
	if len(e.Outcome.Labels) == 0 {
		return msg
	}
	return e.Outcome.Path() + LabelSeparator + msg
}
