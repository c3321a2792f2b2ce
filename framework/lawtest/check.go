package lawtest

import (
	"fmt"
	"strings"

	"github.com/launchdarkly/laws-harness/framework/check"
	"github.com/launchdarkly/laws-harness/framework/gen"
	"github.com/launchdarkly/laws-harness/framework/helpers"
	"github.com/launchdarkly/laws-harness/framework/laws"
	"github.com/launchdarkly/laws-harness/framework/result"
)

// Check checks a law set in the current scope and reports each law as a subtest named after its
// label. Laws that the run's filter excludes are reported as skipped and are not checked. Debug
// output from the checker is captured in the current scope, so it appears with every law's output.
func Check[A, R any](t *T, l laws.Laws[A, R], env R, g gen.Gen[A]) result.TestResult {
	checker, err := check.NewChecker(t.CheckConfig(), t.DebugLogger())
	if err != nil {
		t.Errorf("invalid check configuration: %s", err)
		return result.Failed(err.Error())
	}

	selected := l.Filter(func(label string) bool { return t.env.matches(t.id.Plus(label)) })
	r := selected.RunWith(t.Context(), checker, env, g)

	byLabel := make(map[string][]result.Outcome)
	for _, o := range r.Outcomes() {
		if len(o.Labels) == 0 {
			continue
		}
		byLabel[o.Labels[0]] = append(byLabel[o.Labels[0]], o)
	}
	reported := make(map[string]bool)
	for _, label := range l.Labels() {
		if reported[label] {
			continue
		}
		reported[label] = true
		outcomes := byLabel[label]
		t.Run(label, func(t *T) {
			reportOutcomes(t, outcomes)
		})
	}
	return r
}

func reportOutcomes(t *T, outcomes []result.Outcome) {
	for _, o := range outcomes {
		if o.Passed {
			t.Debug("held for %d trials", o.Trials)
			continue
		}
		t.Errorf("%s", describeFailure(o))
	}
}

func describeFailure(o result.Outcome) string {
	var b strings.Builder
	if len(o.Labels) > 1 {
		b.WriteString(strings.Join(o.Labels[1:], result.LabelSeparator))
		b.WriteString(result.LabelSeparator)
	}
	if o.Message == "" {
		b.WriteString("law does not hold")
	} else {
		b.WriteString(o.Message)
	}
	if len(o.Samples) > 0 {
		b.WriteString("\nsamples: ")
		b.WriteString(result.FormatSamples(o.Samples))
	}
	if o.Trials > 0 {
		fmt.Fprintf(&b, "\nafter %d passing %s", o.Trials, helpers.IfElse(o.Trials == 1, "trial", "trials"))
	}
	return b.String()
}
