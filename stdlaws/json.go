package stdlaws

import (
	"github.com/launchdarkly/laws-harness/framework/helpers"
	"github.com/launchdarkly/laws-harness/framework/laws"
	"github.com/launchdarkly/laws-harness/framework/result"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/require"
)

// JSON wraps an arbitrary JSON value so that it has the Equal capability.
type JSON struct {
	Value ldvalue.Value
}

func (j JSON) Equal(other JSON) bool { return j.Value.Equal(other.Value) }

func (j JSON) String() string { return helpers.CanonicalizedJSONString(j.Value) }

// JSONArray is the monoid of JSON arrays under concatenation.
type JSONArray struct {
	Value ldvalue.Value
}

func (j JSONArray) Combine(other JSONArray) JSONArray {
	b := ldvalue.ArrayBuildWithCapacity(j.Value.Count() + other.Value.Count())
	for _, v := range []ldvalue.Value{j.Value, other.Value} {
		for i := 0; i < v.Count(); i++ {
			b.Add(v.GetByIndex(i))
		}
	}
	return JSONArray{Value: b.Build()}
}

func (j JSONArray) Empty() JSONArray           { return JSONArray{Value: ldvalue.ArrayOf()} }
func (j JSONArray) Equal(other JSONArray) bool { return j.Value.Equal(other.Value) }
func (j JSONArray) String() string             { return helpers.CanonicalizedJSONString(j.Value) }

// JSONCodecLaws checks that JSON values survive serialization through a streaming writer and
// reader, and that canonical formatting does not depend on how a value was produced.
func JSONCodecLaws() laws.Laws[JSON, any] {
	return laws.All(
		laws.Law1("stream round trip", func(a JSON) result.TestResult {
			return result.Catch(func(t result.TestingT) {
				w := jwriter.NewWriter()
				a.Value.WriteToJSONWriter(&w)
				require.NoError(t, w.Error())

				r := jreader.NewReader(w.Bytes())
				var decoded ldvalue.Value
				decoded.ReadFromJSONReader(&r)
				require.NoError(t, r.Error())
				m.In(t).Assert([]byte(decoded.JSONString()), m.JSONStrEqual(a.Value.JSONString()))
				require.True(t, decoded.Equal(a.Value), "decoded value was not equal to original")
			})
		}),
		laws.Law1("canonical form is stable", func(a JSON) result.TestResult {
			reparsed := ldvalue.Parse([]byte(a.Value.JSONString()))
			return result.FromBool(
				helpers.CanonicalizedJSONString(reparsed) == helpers.CanonicalizedJSONString(a.Value),
				"canonical form changed after reparsing",
			)
		}),
	)
}
