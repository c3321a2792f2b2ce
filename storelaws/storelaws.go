// Package storelaws defines laws that any key/value store must obey, expressed as effectful laws
// over the stores.Store environment.
//
// Every law works under its own key prefix in the store, so the laws can run concurrently against
// the same store without seeing each other's writes.
package storelaws

import (
	"context"
	"fmt"
	"strings"

	"github.com/leanovate/gopter"
	gopterGen "github.com/leanovate/gopter/gen"

	"github.com/launchdarkly/laws-harness/framework/gen"
	"github.com/launchdarkly/laws-harness/framework/laws"
	o "github.com/launchdarkly/laws-harness/framework/opt"
	"github.com/launchdarkly/laws-harness/framework/result"
	"github.com/launchdarkly/laws-harness/stores"
)

// Entry is one sample: a key and the value to write under it.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (e Entry) String() string { return fmt.Sprintf("%s=%q", e.Key, e.Value) }

// EntryGen generates entries with identifier keys and alphabetic values, including empty values.
func EntryGen() gen.Gen[Entry] {
	return entryGen(gopterGen.Identifier())
}

// SmallKeySpaceEntryGen generates entries whose keys come from a handful of names, so that
// different samples often share a key.
func SmallKeySpaceEntryGen() gen.Gen[Entry] {
	return entryGen(gopterGen.OneConstOf("a", "b", "c"))
}

func entryGen(keys gopter.Gen) gen.Gen[Entry] {
	return gen.FromGopter[Entry](
		gopter.CombineGens(keys, gopterGen.AlphaString()).Map(func(values []interface{}) Entry {
			return Entry{Key: values[0].(string), Value: values[1].(string)}
		}),
	)
}

func lawPrefix(label string) string {
	return "laws/" + strings.ReplaceAll(label, " ", "-")
}

func storeLaw1(label string, fn func(ctx context.Context, s stores.Store, e Entry) result.TestResult) laws.Laws[Entry, stores.Store] {
	prefix := lawPrefix(label)
	return laws.Effect1(label, func(ctx context.Context, s stores.Store, e Entry) result.TestResult {
		return fn(ctx, stores.WithPrefix(s, prefix), e)
	})
}

func storeLaw2(
	label string,
	fn func(ctx context.Context, s stores.Store, e1, e2 Entry) result.TestResult,
) laws.Laws[Entry, stores.Store] {
	prefix := lawPrefix(label)
	return laws.Effect2(label, func(ctx context.Context, s stores.Store, e1, e2 Entry) result.TestResult {
		return fn(ctx, stores.WithPrefix(s, prefix), e1, e2)
	})
}

func storeError(op string, err error) result.TestResult {
	return result.Failedf("store error during %s: %s", op, err)
}

func expectValue(actual o.Maybe[string], expected o.Maybe[string]) result.TestResult {
	return result.FromBool(actual == expected, fmt.Sprintf("expected %s, got %s", describe(expected), describe(actual)))
}

func describe(value o.Maybe[string]) string {
	if v, ok := value.Get(); ok {
		return fmt.Sprintf("%q", v)
	}
	return "no value"
}

// StoreLaws returns the laws of a key/value store.
func StoreLaws() laws.Laws[Entry, stores.Store] {
	return laws.All(
		storeLaw1("get after put", func(ctx context.Context, s stores.Store, e Entry) result.TestResult {
			if err := s.Put(ctx, e.Key, e.Value); err != nil {
				return storeError("put", err)
			}
			value, err := s.Get(ctx, e.Key)
			if err != nil {
				return storeError("get", err)
			}
			return expectValue(value, o.Some(e.Value))
		}),
		storeLaw2("last put wins", func(ctx context.Context, s stores.Store, e1, e2 Entry) result.TestResult {
			if err := s.Put(ctx, e1.Key, e1.Value); err != nil {
				return storeError("put", err)
			}
			if err := s.Put(ctx, e1.Key, e2.Value); err != nil {
				return storeError("put", err)
			}
			value, err := s.Get(ctx, e1.Key)
			if err != nil {
				return storeError("get", err)
			}
			return expectValue(value, o.Some(e2.Value))
		}),
		storeLaw1("delete removes", func(ctx context.Context, s stores.Store, e Entry) result.TestResult {
			if err := s.Put(ctx, e.Key, e.Value); err != nil {
				return storeError("put", err)
			}
			if err := s.Delete(ctx, e.Key); err != nil {
				return storeError("delete", err)
			}
			value, err := s.Get(ctx, e.Key)
			if err != nil {
				return storeError("get", err)
			}
			return expectValue(value, o.None[string]())
		}),
		storeLaw1("delete is idempotent", func(ctx context.Context, s stores.Store, e Entry) result.TestResult {
			if err := s.Put(ctx, e.Key, e.Value); err != nil {
				return storeError("put", err)
			}
			for i := 0; i < 2; i++ {
				if err := s.Delete(ctx, e.Key); err != nil {
					return storeError("delete", err)
				}
			}
			value, err := s.Get(ctx, e.Key)
			if err != nil {
				return storeError("get", err)
			}
			return expectValue(value, o.None[string]())
		}),
		storeLaw2("keys are independent", func(ctx context.Context, s stores.Store, e1, e2 Entry) result.TestResult {
			if e1.Key == e2.Key {
				return result.Passed()
			}
			if err := s.Put(ctx, e1.Key, e1.Value); err != nil {
				return storeError("put", err)
			}
			if err := s.Put(ctx, e2.Key, e2.Value); err != nil {
				return storeError("put", err)
			}
			if err := s.Delete(ctx, e2.Key); err != nil {
				return storeError("delete", err)
			}
			value, err := s.Get(ctx, e1.Key)
			if err != nil {
				return storeError("get", err)
			}
			return expectValue(value, o.Some(e1.Value))
		}),
		storeLaw1("get is repeatable", func(ctx context.Context, s stores.Store, e Entry) result.TestResult {
			if err := s.Put(ctx, e.Key, e.Value); err != nil {
				return storeError("put", err)
			}
			first, err := s.Get(ctx, e.Key)
			if err != nil {
				return storeError("get", err)
			}
			second, err := s.Get(ctx, e.Key)
			if err != nil {
				return storeError("get", err)
			}
			return expectValue(second, first)
		}),
	)
}
