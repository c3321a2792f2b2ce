package suites

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/leanovate/gopter/gen"
	"pgregory.net/rapid"

	"github.com/launchdarkly/laws-harness/data"
	g "github.com/launchdarkly/laws-harness/framework/gen"
	"github.com/launchdarkly/laws-harness/framework/laws"
	"github.com/launchdarkly/laws-harness/framework/lawtest"
	"github.com/launchdarkly/laws-harness/stdlaws"
	"github.com/launchdarkly/laws-harness/storelaws"
	"github.com/launchdarkly/laws-harness/stores"
)

const storesGroup = "stores"

// Suite is one law set checked against one generator and environment.
type Suite struct {
	Name  string
	Laws  []string
	check func(t *lawtest.T)
}

// Group is a named list of suites. Every suite in a group runs as a subtest of the group.
type Group struct {
	Name   string
	Suites []Suite
}

// Environment holds the external resources that effectful suites run against.
type Environment struct {
	Stores []stores.Store
}

func newSuite[A, R any](name string, l laws.Laws[A, R], env R, samples g.Gen[A]) Suite {
	return Suite{
		Name:  name,
		Laws:  l.Labels(),
		check: func(t *lawtest.T) { lawtest.Check(t, l, env, samples) },
	}
}

// Catalog builds every suite. Fixed samples are loaded from the embedded data files, and are mixed
// with randomly generated samples so that edge cases are covered whatever the seed is.
func Catalog(env Environment) ([]Group, error) {
	ints, err := intGen()
	if err != nil {
		return nil, err
	}
	strs, err := stringGen()
	if err != nil {
		return nil, err
	}
	jsonValues, err := jsonGen()
	if err != nil {
		return nil, err
	}
	entries, err := entryGen()
	if err != nil {
		return nil, err
	}

	storeSuites := make([]Suite, 0, len(env.Stores))
	for _, s := range env.Stores {
		storeSuites = append(storeSuites, newSuite(s.Name(), storelaws.StoreLaws(), s, entries))
	}

	return []Group{
		{
			Name: "ints",
			Suites: []Suite{
				newSuite("sum", stdlaws.OrdLaws[stdlaws.Sum]().Combine(stdlaws.MonoidLaws[stdlaws.Sum]()),
					nil, g.Map(ints, func(n int) stdlaws.Sum { return stdlaws.Sum(n) })),
				newSuite("product", stdlaws.MonoidLaws[stdlaws.Product](),
					nil, g.Map(ints, func(n int) stdlaws.Product { return stdlaws.Product(n) })),
				newSuite("max", stdlaws.OrdLaws[stdlaws.Max]().Combine(stdlaws.MonoidLaws[stdlaws.Max]()),
					nil, g.Map(ints, func(n int) stdlaws.Max { return stdlaws.Max(n) })),
				newSuite("ordering", stdlaws.OrderedLaws[int](), nil, ints),
			},
		},
		{
			Name: "strings",
			Suites: []Suite{
				newSuite("concat", stdlaws.OrdLaws[stdlaws.Concat]().Combine(stdlaws.MonoidLaws[stdlaws.Concat]()),
					nil, g.Map(strs, func(s string) stdlaws.Concat { return stdlaws.Concat(s) })),
				newSuite("ordering", stdlaws.OrderedLaws[string](), nil, strs),
			},
		},
		{
			Name: "json",
			Suites: []Suite{
				newSuite("values", stdlaws.EqualLaws[stdlaws.JSON]().Combine(stdlaws.JSONCodecLaws()),
					nil, g.Map(jsonValues, func(v ldvalue.Value) stdlaws.JSON { return stdlaws.JSON{Value: v} })),
				newSuite("arrays", stdlaws.MonoidLaws[stdlaws.JSONArray](),
					nil, g.Map(data.JSONArrayGen(data.DefaultJSONDepth), func(v ldvalue.Value) stdlaws.JSONArray {
						return stdlaws.JSONArray{Value: v}
					})),
			},
		},
		{
			Name:   storesGroup,
			Suites: storeSuites,
		},
	}, nil
}

func intGen() (g.Gen[int], error) {
	samples, err := data.SampleGen[int](data.IntSamples)
	if err != nil {
		return nil, err
	}
	return g.OneOf(
		samples,
		g.FromGopter[int](gen.IntRange(-1000, 1000)),
		g.FromRapid(rapid.Int()),
	), nil
}

func stringGen() (g.Gen[string], error) {
	samples, err := data.SampleGen[string](data.StringSamples)
	if err != nil {
		return nil, err
	}
	return g.OneOf(
		samples,
		g.FromGopter[string](gen.AlphaString()),
		g.FromRapid(rapid.String()),
	), nil
}

func jsonGen() (g.Gen[ldvalue.Value], error) {
	samples, err := data.SampleGen[ldvalue.Value](data.JSONSamples)
	if err != nil {
		return nil, err
	}
	return g.OneOf(samples, data.StandardJSONValueGen(), data.JSONValueGen(data.DefaultJSONDepth)), nil
}

func entryGen() (g.Gen[storelaws.Entry], error) {
	samples, err := data.SampleGen[storelaws.Entry](data.EntrySamples)
	if err != nil {
		return nil, err
	}
	return g.OneOf(samples, storelaws.EntryGen(), storelaws.SmallKeySpaceEntryGen()), nil
}
