package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	configPath       string
	envPath          string
	filters          ldtest.RegexFilters
	protocols        protocolList
	reportPath       string
	listRequirements bool
	debug            bool
	debugAll         bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configPath, "config", "", "path of the TOML file describing the server-under-test")
	fs.StringVar(&c.envPath, "env", "", "path of a .env file with SUT_USER, SUT_PASSWORD and SUT_DOMAIN")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.protocols, "protocol", "protocol(s) to test, such as MS-OXWSFOLD (default: all enabled in the config)")
	fs.StringVar(&c.reportPath, "report", "", "write a JSON requirement coverage report to this file")
	fs.BoolVar(&c.listRequirements, "list-requirements", false, "print the requirement catalog and exit")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.configPath == "" && !c.listRequirements {
		fmt.Fprintln(os.Stderr, "-config is required")
		fs.Usage()
		return false
	}
	return true
}

// protocolList accepts the -protocol flag either repeated or as a comma-separated list.
type protocolList []string

func (p protocolList) String() string {
	return strings.Join(p, ",")
}

func (p *protocolList) Set(value string) error {
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*p = append(*p, name)
		}
	}
	return nil
}

func (p protocolList) Has(name string) bool {
	for _, n := range p {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
