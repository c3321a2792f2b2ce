package suites

import (
	"github.com/launchdarkly/laws-harness/framework/lawtest"
	"github.com/launchdarkly/laws-harness/storelaws"
)

// RunLawSuites runs every suite in the catalog as a tree of test scopes: group, then suite, then
// one scope per law.
func RunLawSuites(config lawtest.TestConfiguration, groups []Group) lawtest.Results {
	return lawtest.Run(config, func(t *lawtest.T) {
		for _, group := range groups {
			group := group
			t.Run(group.Name, func(t *lawtest.T) {
				if len(group.Suites) == 0 {
					t.SkipWithReason("no " + group.Name + " configured")
				}
				for _, suite := range group.Suites {
					t.Run(suite.Name, suite.check)
				}
			})
		}
	})
}

// LawIDs returns the ID of every law in the catalog that the filter selects, in run order. A nil
// filter selects everything.
func LawIDs(groups []Group, filter lawtest.Filter) []lawtest.TestID {
	var ret []lawtest.TestID
	for _, group := range groups {
		for _, suite := range group.Suites {
			for _, label := range suite.Laws {
				id := lawtest.TestID{group.Name, suite.Name, label}
				if filter == nil || filter.Match(id) {
					ret = append(ret, id)
				}
			}
		}
	}
	return ret
}

// StoreLawIDs returns the IDs that the store laws would have for stores with the given names,
// without opening any store.
func StoreLawIDs(storeNames []string, filter lawtest.Filter) []lawtest.TestID {
	var ret []lawtest.TestID
	for _, name := range storeNames {
		for _, label := range storelaws.StoreLaws().Labels() {
			id := lawtest.TestID{storesGroup, name, label}
			if filter == nil || filter.Match(id) {
				ret = append(ret, id)
			}
		}
	}
	return ret
}
