package data

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Earlier JSON encoding may have escaped the brackets around variable names.
var unescapeAngleBrackets = strings.NewReplacer(`\u003c`, "<", `\u003e`, ">")

type substitutionSet map[string]ldvalue.Value

type substitutionHeader struct {
	Constants  substitutionSet   `json:"constants"`
	Parameters []json.RawMessage `json:"parameters"`
}

func expandSubstitutions(originalData []byte) ([]SourceInfo, error) {
	var header substitutionHeader
	if err := ParseJSONOrYAML(originalData, &header); err != nil {
		return nil, err
	}
	if len(header.Constants) == 0 && len(header.Parameters) == 0 {
		return []SourceInfo{{Data: originalData}}, nil
	}
	paramSets, err := parameterPermutations(header.Parameters)
	if err != nil {
		return nil, err
	}
	withConstants := replaceVariables(originalData, header.Constants)
	if len(paramSets) == 0 {
		return []SourceInfo{{Data: withConstants}}, nil
	}
	ret := make([]SourceInfo, 0, len(paramSets))
	for _, params := range paramSets {
		// Parameter values can themselves refer to constants, so constants are applied again.
		expanded := replaceVariables(replaceVariables(withConstants, params), header.Constants)
		ret = append(ret, SourceInfo{Data: expanded, Params: params})
	}
	return ret, nil
}

// parameterPermutations accepts either a list of parameter sets, or a list of lists of parameter
// sets; in the latter case it returns every combination of one set from each list, with the first
// list varying fastest.
func parameterPermutations(paramsData []json.RawMessage) ([]substitutionSet, error) {
	if len(paramsData) == 0 {
		return nil, nil
	}
	allData, _ := json.Marshal(paramsData)
	switch ldvalue.Parse(paramsData[0]).Type() {
	case ldvalue.ObjectType:
		var list []substitutionSet
		if err := json.Unmarshal(allData, &list); err != nil {
			return nil, err
		}
		return list, nil
	case ldvalue.ArrayType:
		var lists [][]substitutionSet
		if err := json.Unmarshal(allData, &lists); err != nil {
			return nil, err
		}
		return combinations(lists), nil
	default:
		return nil, errors.New("unable to parse parameters - must be an array of objects or an array of arrays")
	}
}

func combinations(lists [][]substitutionSet) []substitutionSet {
	if len(lists) == 0 {
		return []substitutionSet{{}}
	}
	rest := combinations(lists[1:])
	ret := make([]substitutionSet, 0, len(lists[0])*len(rest))
	for _, tail := range rest {
		for _, head := range lists[0] {
			merged := make(substitutionSet, len(head)+len(tail))
			for k, v := range tail {
				merged[k] = v
			}
			for k, v := range head {
				merged[k] = v
			}
			ret = append(ret, merged)
		}
	}
	return ret
}

// replaceVariables substitutes "<NAME>" (quoted) with the JSON form of the value, and <NAME>
// elsewhere with its plain string form.
func replaceVariables(originalData []byte, substs substitutionSet) []byte {
	unescaped := unescapeAngleBrackets.Replace(string(originalData))
	pairs := make([]string, 0, len(substs)*4)
	for name, value := range substs {
		typed := value.JSONString()
		interpolated := typed
		if value.IsString() {
			interpolated = value.StringValue()
		}
		pairs = append(pairs, `"<`+name+`>"`, typed, "<"+name+">", interpolated)
	}
	return []byte(strings.NewReplacer(pairs...).Replace(unescaped))
}
