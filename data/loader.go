package data

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/launchdarkly/laws-harness/framework/gen"
)

//go:embed data-files
var dataFilesRoot embed.FS

const (
	dataBasePath = "data-files"
	samplesPath  = "samples"
)

// Sample kinds, each corresponding to a directory under data-files/samples.
const (
	IntSamples    = "int"
	StringSamples = "string"
	JSONSamples   = "json"
	EntrySamples  = "entry"
)

// SourceInfo is the content of one data file after constants and parameters have been expanded.
// A parameterized file produces one SourceInfo per parameter set.
type SourceInfo struct {
	FilePath string
	BaseName string
	Params   map[string]ldvalue.Value
	Data     []byte
}

func (s SourceInfo) ParseInto(target interface{}) error {
	if err := ParseJSONOrYAML(s.Data, target); err != nil {
		return fmt.Errorf("error parsing %q %s: %w", s.BaseName, s.ParamsString(), err)
	}
	return nil
}

// ParamsString describes the parameter set, sorted by name, or returns "" if there are none.
func (s SourceInfo) ParamsString() string {
	if len(s.Params) == 0 {
		return ""
	}
	names := maps.Keys(s.Params)
	slices.Sort(names)
	ps := ""
	for _, k := range names {
		if ps != "" {
			ps += ","
		}
		ps += k + "=" + s.Params[k].String()
	}
	return "(" + ps + ")"
}

// LoadDataFile reads an embedded data file and expands its substitutions. The path is relative to
// data/data-files.
func LoadDataFile(path string) ([]SourceInfo, error) {
	data, err := dataFilesRoot.ReadFile(dataBasePath + "/" + path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	sources, err := expandSubstitutions(data)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	baseName := filepath.Base(path)
	for i := range sources {
		sources[i].FilePath = path
		sources[i].BaseName = baseName
	}
	return sources, nil
}

// LoadAllDataFiles reads every file in an embedded directory, in name order. The path is relative
// to data/data-files.
func LoadAllDataFiles(path string) ([]SourceInfo, error) {
	files, err := dataFilesRoot.ReadDir(dataBasePath + "/" + path)
	if err != nil {
		return nil, err
	}
	var ret []SourceInfo
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		sources, err := LoadDataFile(path + "/" + file.Name())
		if err != nil {
			return nil, err
		}
		ret = append(ret, sources...)
	}
	return ret, nil
}

// LoadSamples reads every sample file of the given kind and returns all of their values, in file
// order and then parameter order.
func LoadSamples[T any](kind string) ([]T, error) {
	sources, err := LoadAllDataFiles(samplesPath + "/" + kind)
	if err != nil {
		return nil, err
	}
	var ret []T
	for _, source := range sources {
		var file struct {
			Values []T `json:"values"`
		}
		if err := source.ParseInto(&file); err != nil {
			return nil, err
		}
		ret = append(ret, file.Values...)
	}
	return ret, nil
}

// SampleGen returns a generator that cycles through the samples of the given kind. It returns an
// error if there are none.
func SampleGen[T any](kind string) (gen.Gen[T], error) {
	samples, err := LoadSamples[T](kind)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no %s samples found", kind)
	}
	return gen.Sequence(samples...), nil
}
