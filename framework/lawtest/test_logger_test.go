package lawtest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/launchdarkly/laws-harness/framework"
	"github.com/launchdarkly/laws-harness/framework/check"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finishedTest struct {
	id       TestID
	failed   bool
	messages []string
}

type recordingTestLogger struct {
	started  []TestID
	errors   []string
	finished []finishedTest
	skipped  []string
	ended    bool
	endErr   error
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.started = append(r.started, id) }

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.errors = append(r.errors, id.String()+": "+err.Error())
}

func (r *recordingTestLogger) TestFinished(id TestID, result TestResult, output framework.CapturedOutput) {
	f := finishedTest{id: id, failed: len(result.Errors) != 0}
	for _, m := range output {
		f.messages = append(f.messages, m.Message)
	}
	r.finished = append(r.finished, f)
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped = append(r.skipped, id.String()+" ("+reason+")")
}

func (r *recordingTestLogger) EndLog(Results) error {
	r.ended = true
	return r.endErr
}

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestConsoleTestLogger(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	logger := ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	results := Run(TestConfiguration{TestLogger: logger}, func(lt *T) {
		lt.Run("good", func(lt1 *T) { lt1.Debug("not shown") })
		lt.Run("bad", func(lt1 *T) {
			lt1.Debug("shown")
			lt1.Errorf("line 1\nline 2")
		})
		lt.Run("lazy", func(lt1 *T) { lt1.SkipWithReason("later") })
	})
	require.NoError(t, logger.EndLog(results))

	out := buf.String()
	assert.Contains(t, out, "[good]\n")
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, "  line 1\n  line 2\n")
	assert.Contains(t, out, "  FAILED: bad\n")
	assert.Contains(t, out, "DEBUG ")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "  SKIPPED: lazy (later)\n")
	assert.Contains(t, out, "FAILED TESTS (1):\n  * bad\n")
}

func TestPrintResultsWhenAllPass(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{}, {}}, Skipped: []TestID{{"x"}}})
	assert.Equal(t, "All laws held (2 tests, 1 skipped)\n", buf.String())
}

func TestMultiTestLogger(t *testing.T) {
	var a, b recordingTestLogger
	b.endErr = errors.New("disk full")
	multi := &MultiTestLogger{Loggers: []TestLogger{&a, &b}}
	results := Run(TestConfiguration{TestLogger: multi}, func(lt *T) {
		lt.Run("x", func(lt1 *T) { lt1.Errorf("bad") })
		lt.Run("y", func(lt1 *T) { lt1.Skip() })
	})
	err := multi.EndLog(results)
	assert.EqualError(t, err, "disk full")

	for _, l := range []*recordingTestLogger{&a, &b} {
		assert.Equal(t, []TestID{{"x"}, {"y"}}, l.started)
		assert.Equal(t, []string{"x: bad"}, l.errors)
		assert.Equal(t, []string{"y ()"}, l.skipped)
		require.Len(t, l.finished, 1)
		assert.True(t, l.finished[0].failed)
		assert.True(t, l.ended)
	}
}

func TestJUnitTestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junit.xml")
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("ints/skipme"))
	logger := NewJUnitTestLogger(path, RunInfo{
		RunID:   "run-1",
		Version: "1.2.3",
		Check:   check.Config{Trials: 10, Seed: 42},
	}, filters)

	results := Run(TestConfiguration{TestLogger: logger, Filter: filters}, func(lt *T) {
		lt.Run("ints", func(lt1 *T) {
			lt1.Run("ok", func(*T) {})
			lt1.Run("broken", func(lt2 *T) {
				lt2.Debug("details")
				lt2.Errorf("nope")
			})
			lt1.Run("skipme", func(*T) {})
		})
	})
	require.NoError(t, logger.EndLog(results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc jUnitXMLDocument
	require.NoError(t, xml.Unmarshal(data, &doc))

	require.Len(t, doc.Suites, 1)
	suite := doc.Suites[0]
	assert.Equal(t, "Law checks: ints", suite.Name)
	assert.Equal(t, 4, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	assert.Equal(t, 1, suite.Skipped)
	assert.Contains(t, suite.Properties, jUnitXMLProperty{Name: "laws.run.id", Value: "run-1"})
	assert.Contains(t, suite.Properties, jUnitXMLProperty{Name: "laws.check.seed", Value: "42"})
	assert.Contains(t, suite.Properties, jUnitXMLProperty{Name: "laws.check.trials", Value: "10"})
	assert.Contains(t, suite.Properties, jUnitXMLProperty{Name: "laws.filter.mustNotMatch", Value: `"ints/skipme"`})

	cases := map[string]jUnitXMLTestCase{}
	for _, c := range suite.TestCases {
		cases[c.Name] = c
	}
	assert.Nil(t, cases["ints/ok"].Failure)
	require.NotNil(t, cases["ints/broken"].Failure)
	assert.Equal(t, "nope", cases["ints/broken"].Failure.Message)
	assert.Contains(t, cases["ints/broken"].Failure.Contents, "details")
	require.NotNil(t, cases["ints/skipme"].SkipMessage)
	assert.Equal(t, "excluded by filter parameters", cases["ints/skipme"].SkipMessage.Message)
}
