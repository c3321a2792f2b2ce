package main

import (
	"context"
	_ "embed" // this is required in order for go:embed to work
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchdarkly/laws-harness/framework"
	"github.com/launchdarkly/laws-harness/framework/lawtest"
	"github.com/launchdarkly/laws-harness/stores"
	"github.com/launchdarkly/laws-harness/suites"
)

const defaultPort = 8111

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

// errLawsFailed is returned by the run command when the run completed but some law did not hold.
// The failures have already been reported, so main only sets the exit code.
var errLawsFailed = errors.New("some laws did not hold")

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errLawsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func version() string { return strings.TrimSpace(versionString) }

func newRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "laws-harness",
		Short:         "Checks algebraic laws and key/value store laws against generated samples",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(newRunCommand(), newListCommand(), newServeCommand(), newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the harness version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "laws-harness v%s\n", version())
		},
	}
}

func newRunCommand() *cobra.Command {
	var params commandParams
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check every law suite and report the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.resolve(cmd.Flags()); err != nil {
				return err
			}
			results, err := run(cmd.Context(), params, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !results.OK() {
				return errLawsFailed
			}
			return nil
		},
	}
	params.addRunFlags(cmd.Flags())
	return cmd
}

func newListCommand() *cobra.Command {
	var params commandParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the ID of every law that run would check, without checking anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.resolve(cmd.Flags()); err != nil {
				return err
			}
			groups, err := suites.Catalog(suites.Environment{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range suites.LawIDs(groups, params.filters) {
				fmt.Fprintln(out, id)
			}
			for _, id := range suites.StoreLawIDs(params.stores.Names(), params.filters) {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
	params.addFilterFlags(cmd.Flags())
	params.addStoreFlags(cmd.Flags())
	return cmd
}

func newServeCommand() *cobra.Command {
	var (
		params commandParams
		port   int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a store over HTTP, for use with run --service-url",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.resolve(cmd.Flags()); err != nil {
				return err
			}
			if params.stores.ServiceURL != "" || len(params.stores.Names()) != 1 {
				return errors.New("serve needs exactly one backing store")
			}
			opened, err := stores.Open(cmd.Context(), params.stores, "", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = stores.CloseAll(opened) }()

			logger := framework.NullLogger()
			if params.debugAll {
				logger = newDebugLogger()
			}
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s store at %s\n", opened[0].Name(), addr)
			return http.ListenAndServe(addr, stores.NewStoreService(opened[0], logger)) //nolint:gosec
		},
	}
	params.addStoreFlags(cmd.Flags())
	cmd.Flags().BoolVar(&params.debugAll, "debug-all", false, "log every request")
	cmd.Flags().IntVar(&port, "port", defaultPort, "port to listen on")
	return cmd
}

func newDebugLogger() framework.Logger {
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		return framework.NullLogger()
	}
	return framework.ZapLogger(zapLogger)
}

func run(ctx context.Context, params commandParams, out io.Writer) (*lawtest.Results, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintf(out, "laws-harness v%s\n", version())

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = newDebugLogger()
	}

	runID := uuid.NewString()
	opened, err := stores.Open(ctx, params.stores, "laws-harness/"+runID, out)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := stores.CloseAll(opened); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close stores: %s\n", err)
		}
	}()
	for i, s := range opened {
		mainDebugLogger.Printf("using %s store at %s", s.Name(), s.DSN())
		if params.debugAll {
			opened[i] = stores.WithLogger(s, mainDebugLogger)
		}
	}

	groups, err := suites.Catalog(suites.Environment{Stores: opened})
	if err != nil {
		return nil, err
	}

	config := lawtest.TestConfiguration{
		Filter:  params.filters,
		Context: ctx,
		Check:   params.check.WithDefaults(),
	}
	fmt.Fprintf(out, "Run %s: %s\n\n", runID, config.Check)
	lawtest.PrintFilterDescription(out, params.filters)

	var testLogger lawtest.TestLogger
	consoleLogger := lawtest.ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.jUnitFile == "" {
		testLogger = consoleLogger
	} else {
		runInfo := lawtest.RunInfo{RunID: runID, Version: version(), Check: config.Check}
		testLogger = &lawtest.MultiTestLogger{Loggers: []lawtest.TestLogger{
			consoleLogger,
			lawtest.NewJUnitTestLogger(params.jUnitFile, runInfo, params.filters),
		}}
	}
	config.TestLogger = testLogger

	results := suites.RunLawSuites(config, groups)

	fmt.Fprintln(out)
	if err := testLogger.EndLog(results); err != nil {
		return nil, fmt.Errorf("error writing log: %w", err)
	}

	if params.recordFailures != "" {
		if err := recordFailures(params.recordFailures, results); err != nil {
			return nil, err
		}
	}

	return &results, nil
}

// recordFailures writes the IDs of the failed laws in the format that --skip-from reads.
func recordFailures(path string, results lawtest.Results) error {
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("cannot create suppression file: %w", err)
	}
	for _, test := range results.Failures {
		if len(test.TestID) == 0 {
			continue
		}
		fmt.Fprintln(f, test.TestID)
	}
	return f.Close()
}
