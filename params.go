package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/launchdarkly/laws-harness/data"
	"github.com/launchdarkly/laws-harness/framework/check"
	"github.com/launchdarkly/laws-harness/framework/lawtest"
	"github.com/launchdarkly/laws-harness/stores"
)

// configFile is the optional file given with --config. Command-line flags override it.
type configFile struct {
	Check  check.Config  `json:"check"`
	Stores stores.Config `json:"stores"`
	Run    []string      `json:"run"`
	Skip   []string      `json:"skip"`
	JUnit  string        `json:"junit"`
}

type commandParams struct {
	filters        lawtest.RegexFilters
	skipFile       string
	recordFailures string
	jUnitFile      string
	debug          bool
	debugAll       bool
	configPath     string
	check          check.Config
	stores         stores.Config
	storeNames     []string
}

func (c *commandParams) addFilterFlags(fs *pflag.FlagSet) {
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select laws to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select laws not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file of law IDs to skip, one per line")
}

func (c *commandParams) addStoreFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&c.storeNames, "store", []string{"memory"},
		"stores to check the store laws against (memory, redis, consul, dynamodb)")
	fs.StringVar(&c.stores.Redis, "redis", "", "Redis address (enables the redis store)")
	fs.StringVar(&c.stores.Consul, "consul", "", "Consul agent address (enables the consul store)")
	fs.StringVar(&c.stores.DynamoDB.Table, "dynamodb-table", "", "DynamoDB table (enables the dynamodb store)")
	fs.StringVar(&c.stores.DynamoDB.Endpoint, "dynamodb-endpoint", "", "DynamoDB endpoint URL, for a local DynamoDB")
	fs.StringVar(&c.stores.ServiceURL, "service-url", "", "base URL of a store service (enables the service store)")
}

func (c *commandParams) addRunFlags(fs *pflag.FlagSet) {
	c.addFilterFlags(fs)
	c.addStoreFlags(fs)
	fs.StringVar(&c.configPath, "config", "", "JSON or YAML config file")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the IDs of failed laws to this file")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed laws")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all laws")
	fs.Int64Var(&c.check.Seed, "seed", 0, "base seed for all generators (default: derived from the clock)")
	fs.IntVar(&c.check.Trials, "trials", check.DefaultTrials, "maximum number of trials per law")
}

// resolve applies the config file, then any flags that were set explicitly, then the suppression
// file, and turns the store names into store settings.
func (c *commandParams) resolve(fs *pflag.FlagSet) error {
	if c.configPath != "" {
		var file configFile
		if err := data.ReadConfigFile(c.configPath, &file); err != nil {
			return err
		}
		if err := c.applyConfigFile(file, fs); err != nil {
			return err
		}
	}
	if c.skipFile != "" {
		if err := loadSuppressions(c.skipFile, &c.filters.MustNotMatch); err != nil {
			return err
		}
	}
	for _, name := range c.storeNames {
		switch name {
		case "memory":
			c.stores.Memory = true
		case "redis":
			c.stores.Redis = defaultIfEmpty(c.stores.Redis, stores.DefaultRedisAddress)
		case "consul":
			c.stores.Consul = defaultIfEmpty(c.stores.Consul, defaultConsulAddress)
		case "dynamodb":
			c.stores.DynamoDB.Table = defaultIfEmpty(c.stores.DynamoDB.Table, stores.DefaultDynamoDBTable)
		case "", "none":
		default:
			return fmt.Errorf("unknown store %q", name)
		}
	}
	return nil
}

const defaultConsulAddress = "localhost:8500"

func (c *commandParams) applyConfigFile(file configFile, fs *pflag.FlagSet) error {
	changed := func(name string) bool {
		flag := fs.Lookup(name)
		return flag != nil && flag.Changed
	}
	if !changed("seed") && file.Check.Seed != 0 {
		c.check.Seed = file.Check.Seed
	}
	if !changed("trials") && file.Check.Trials > 0 {
		c.check.Trials = file.Check.Trials
	}
	if !changed("junit") && file.JUnit != "" {
		c.jUnitFile = file.JUnit
	}
	if !changed("store") && len(file.Stores.Names()) > 0 {
		c.storeNames = nil
		c.stores.Memory = file.Stores.Memory
	}
	if !changed("redis") {
		c.stores.Redis = file.Stores.Redis
	}
	if !changed("consul") {
		c.stores.Consul = file.Stores.Consul
	}
	if !changed("dynamodb-table") {
		c.stores.DynamoDB.Table = file.Stores.DynamoDB.Table
	}
	if !changed("dynamodb-endpoint") {
		c.stores.DynamoDB.Endpoint = file.Stores.DynamoDB.Endpoint
	}
	if !changed("service-url") {
		c.stores.ServiceURL = file.Stores.ServiceURL
	}
	// Patterns from the file are added to any given on the command line.
	for _, p := range file.Run {
		if err := c.filters.MustMatch.Set(p); err != nil {
			return fmt.Errorf("bad run pattern in config file: %w", err)
		}
	}
	for _, p := range file.Skip {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			return fmt.Errorf("bad skip pattern in config file: %w", err)
		}
	}
	return nil
}

func defaultIfEmpty(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// loadSuppressions reads a file written by --record-failures, and adds each ID in it as an exact
// pattern to skip.
func loadSuppressions(path string, skip *lawtest.TestIDPatternList) error {
	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %w", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := skip.AddLiteral(line); err != nil {
			return fmt.Errorf("cannot parse suppression: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %w", err)
	}
	return nil
}
