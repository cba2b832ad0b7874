package ldtest

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter applies the filters to a test ID. A parent of a test that the MustMatch patterns
// select is also allowed to run, so that "-run MS-OXWSFOLD/GetFolder" reaches the GetFolder
// tests inside the MS-OXWSFOLD group.
func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	if r.MustNotMatch.AnyMatch(name) {
		return false
	}
	if !r.MustMatch.IsDefined() {
		return true
	}
	if r.MustMatch.AnyMatch(name) {
		return true
	}
	return r.MustMatch.AnyPrefixMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyPrefixMatch returns true if some pattern is a plain path whose leading components equal s.
func (r RegexList) AnyPrefixMatch(s string) bool {
	for _, p := range r.patterns {
		literal, complete := p.LiteralPrefix()
		if complete && strings.HasPrefix(literal, s+"/") {
			return true
		}
	}
	return false
}

// Patterns returns the source text of each pattern.
func (r RegexList) Patterns() []string {
	var ret []string
	for _, p := range r.patterns {
		ret = append(ret, p.String())
	}
	return ret
}
