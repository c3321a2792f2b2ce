package data

import (
	"unicode"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"pgregory.net/rapid"

	"github.com/launchdarkly/laws-harness/framework/gen"
)

// AllJSONValueTypes returns every possible value of the ldvalue.ValueType enum, corresponding to
// the standard JSON types (including null).
func AllJSONValueTypes() []ldvalue.ValueType {
	return []ldvalue.ValueType{ldvalue.NullType, ldvalue.BoolType, ldvalue.NumberType,
		ldvalue.StringType, ldvalue.ArrayType, ldvalue.ObjectType}
}

// MakeStandardTestValues returns values that cover all JSON types, and the special values that are
// easy to get wrong: empty strings and zero numbers must not be treated as null, and so on.
func MakeStandardTestValues() []ldvalue.Value {
	return []ldvalue.Value{
		ldvalue.Null(),
		ldvalue.Bool(false),
		ldvalue.Bool(true),
		ldvalue.Int(-1000),
		ldvalue.Int(0),
		ldvalue.Int(1000),
		ldvalue.Float64(-1000.5),
		ldvalue.Float64(1000.5), // Float64(0) would be identical to Int(0)
		ldvalue.String(""),
		ldvalue.String("abc"),
		ldvalue.String("has \"escaped\" characters"),
		ldvalue.ArrayOf(),
		ldvalue.ArrayOf(ldvalue.String("a"), ldvalue.String("b")),
		ldvalue.ObjectBuild().Build(),
		ldvalue.ObjectBuild().Set("a", ldvalue.Int(1)).Build(),
	}
}

// DefaultJSONDepth is the nesting depth used by JSONValueGen when none is given.
const DefaultJSONDepth = 3

var jsonRunes = rapid.RuneFrom([]rune{'"', '\\', '/', '\n', '\t', '\u0001', ' '},
	unicode.Latin, unicode.Greek, unicode.Han, unicode.Digit, unicode.Space)

// Numbers are multiples of 1/4 so that they survive a round trip through decimal text exactly.
var jsonScalars = rapid.OneOf(
	rapid.Just(ldvalue.Null()),
	rapid.Map(rapid.Bool(), ldvalue.Bool),
	rapid.Map(rapid.IntRange(-1000000, 1000000), ldvalue.Int),
	rapid.Map(rapid.IntRange(-1000000, 1000000), func(n int) ldvalue.Value { return ldvalue.Float64(float64(n) / 4) }),
	rapid.Map(rapid.StringOfN(jsonRunes, 0, 12, -1), ldvalue.String),
)

func jsonValues(depth int) *rapid.Generator[ldvalue.Value] {
	if depth <= 0 {
		return jsonScalars
	}
	inner := jsonValues(depth - 1)
	arrays := rapid.Map(rapid.SliceOfN(inner, 0, 4), func(values []ldvalue.Value) ldvalue.Value {
		return ldvalue.ArrayOf(values...)
	})
	objects := rapid.Map(rapid.MapOfN(rapid.StringOfN(jsonRunes, 0, 6, -1), inner, 0, 4),
		func(props map[string]ldvalue.Value) ldvalue.Value {
			b := ldvalue.ObjectBuildWithCapacity(len(props))
			for k, v := range props {
				b.Set(k, v)
			}
			return b.Build()
		})
	return rapid.OneOf(jsonScalars, jsonScalars, arrays, objects)
}

// JSONValueGen generates arbitrary JSON values nested up to the given depth.
func JSONValueGen(depth int) gen.Gen[ldvalue.Value] {
	return gen.FromRapid(jsonValues(depth))
}

// StandardJSONValueGen cycles through MakeStandardTestValues.
func StandardJSONValueGen() gen.Gen[ldvalue.Value] {
	return gen.Sequence(MakeStandardTestValues()...)
}

// JSONArrayGen generates JSON arrays of up to four elements, each nested up to depth-1.
func JSONArrayGen(depth int) gen.Gen[ldvalue.Value] {
	return gen.FromRapid(rapid.Map(rapid.SliceOfN(jsonValues(depth-1), 0, 4), func(values []ldvalue.Value) ldvalue.Value {
		return ldvalue.ArrayOf(values...)
	}))
}
