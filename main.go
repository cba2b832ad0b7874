package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/msprotocols/protocol-contract-tests/config"
	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/framework/harness"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"go.uber.org/zap"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	env := requirements.NewEnvironment()
	registerRequirements(env.Catalog)

	if params.listRequirements {
		printCatalog(env.Catalog)
		return
	}

	cfg, err := config.LoadConfig(params.configPath, params.envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	if err := selectProtocols(cfg, params.protocols); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for name, p := range cfg.Protocols {
		env.Toggles.SetAll(name, p.RequirementToggles())
	}

	zapLogger := zap.NewNop()
	if params.debugAll {
		if zapLogger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot create logger: %s\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = zapLogger.Sync() }()
	mainDebugLogger := framework.ZapLogger(zapLogger)

	h, err := harness.New(context.Background(), cfg, mainDebugLogger, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server-under-test error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	harness.PrintFilterDescription(h, params.filters, AllCapabilities)

	suiteContext, err := suites.NewContext(context.Background(), h, env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := RunTestSuite(suiteContext, h.Capabilities(), params.filters.AsFilter, testLogger)
	suiteContext.Close()

	fmt.Println()
	printResults(results)
	fmt.Println()
	env.Coverage.Print(os.Stdout, env.Catalog)

	if params.reportPath != "" {
		if err := os.WriteFile(params.reportPath, env.Coverage.JSON(env.Catalog), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot write report: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Coverage report written to %s\n", params.reportPath)
	}

	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", rerunCommand(params, results))
		os.Exit(1)
	}
}

// selectProtocols disables every configured protocol that was not named with -protocol.
func selectProtocols(cfg *config.Config, selected protocolList) error {
	if len(selected) == 0 {
		return nil
	}
	for _, name := range selected {
		found := false
		for configured := range cfg.Protocols {
			found = found || strings.EqualFold(configured, name)
		}
		if !found {
			return fmt.Errorf("protocol %s is not configured", name)
		}
	}
	for name, p := range cfg.Protocols {
		if !selected.Has(name) {
			disabled := false
			p.Enabled = &disabled
			cfg.Protocols[name] = p
		}
	}
	return nil
}

func printCatalog(catalog *requirements.Catalog) {
	for _, protocol := range catalog.Protocols() {
		fmt.Printf("%s:\n", protocol)
		for _, r := range catalog.Protocol(protocol) {
			fmt.Printf("  %s [%s, %s] %s\n", r.ID, r.Kind, r.Scope, r.Description)
		}
	}
}

func printResults(results ldtest.Results) {
	if results.OK() {
		fmt.Printf("All tests passed (%d tests, %d skipped)\n", len(results.Tests), len(results.Skipped()))
		return
	}
	fmt.Printf("FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Printf("  %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("    %s\n", line)
			}
		}
	}
}

// rerunCommand builds a command line that runs only the failed tests. A failed group is left out
// when one of its tests also failed, since the pattern for the test already selects it.
func rerunCommand(params commandParams, results ldtest.Results) string {
	var ids []string
	for _, f := range results.Failures {
		ids = append(ids, f.TestID.String())
	}
	sort.Strings(ids)

	cmd := commandBuilder{}
	cmd.add(os.Args[0], "-config", params.configPath)
	if params.envPath != "" {
		cmd.add("-env", params.envPath)
	}
	for _, p := range params.protocols {
		cmd.add("-protocol", p)
	}
	for i, id := range ids {
		if i+1 < len(ids) && strings.HasPrefix(ids[i+1], id+"/") {
			continue
		}
		cmd.add("-run", regexp.QuoteMeta(id))
	}
	return cmd.String()
}
