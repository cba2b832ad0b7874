package requirements

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Verdict is the outcome of one attempt to verify a requirement.
type Verdict string

const (
	Verified Verdict = "verified"
	Failed   Verdict = "failed"
	Disabled Verdict = "disabled"
)

// CoverageEntry accumulates the verdicts for one requirement.
type CoverageEntry struct {
	ID          ID
	Verified    int
	Failed      int
	Disabled    int
	FailedTests []string
}

// Status reduces the entry to a single verdict: any failure wins, then any verification.
func (e CoverageEntry) Status() Verdict {
	switch {
	case e.Failed > 0:
		return Failed
	case e.Verified > 0:
		return Verified
	default:
		return Disabled
	}
}

// Coverage records verdicts from every test in a run. It is safe for concurrent use.
type Coverage struct {
	entries map[ID]*CoverageEntry
	lock    sync.Mutex
}

func NewCoverage() *Coverage {
	return &Coverage{entries: make(map[ID]*CoverageEntry)}
}

// Record adds one verdict. The test name is kept for failures so that they can be traced back.
func (c *Coverage) Record(id ID, verdict Verdict, test string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	e := c.entries[id]
	if e == nil {
		e = &CoverageEntry{ID: id}
		c.entries[id] = e
	}
	switch verdict {
	case Verified:
		e.Verified++
	case Failed:
		e.Failed++
		e.FailedTests = append(e.FailedTests, test)
	case Disabled:
		e.Disabled++
	}
}

// Entry returns the accumulated verdicts for a requirement.
func (c *Coverage) Entry(id ID) (CoverageEntry, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return CoverageEntry{}, false
	}
	ret := *e
	ret.FailedTests = append([]string(nil), e.FailedTests...)
	return ret, true
}

// ProtocolSummary counts requirements of one protocol by status. Untested requirements are in
// the catalog but were never reached by any test.
type ProtocolSummary struct {
	Protocol string
	Total    int
	Verified int
	Failed   int
	Disabled int
	Untested int
}

// Summarize computes a ProtocolSummary for every protocol in the catalog.
func (c *Coverage) Summarize(catalog *Catalog) []ProtocolSummary {
	var ret []ProtocolSummary
	for _, protocol := range catalog.Protocols() {
		s := ProtocolSummary{Protocol: protocol}
		for _, r := range catalog.Protocol(protocol) {
			s.Total++
			e, ok := c.Entry(r.ID)
			if !ok {
				s.Untested++
				continue
			}
			switch e.Status() {
			case Verified:
				s.Verified++
			case Failed:
				s.Failed++
			case Disabled:
				s.Disabled++
			}
		}
		ret = append(ret, s)
	}
	return ret
}

// Print writes a human-readable summary.
func (c *Coverage) Print(w io.Writer, catalog *Catalog) {
	fmt.Fprintln(w, "Requirement coverage:")
	for _, s := range c.Summarize(catalog) {
		fmt.Fprintf(w, "  %s: %d requirements, %d verified, %d failed, %d disabled, %d untested\n",
			s.Protocol, s.Total, s.Verified, s.Failed, s.Disabled, s.Untested)
	}
	var failed []CoverageEntry
	c.lock.Lock()
	for _, e := range c.entries {
		if e.Failed > 0 {
			failed = append(failed, *e)
		}
	}
	c.lock.Unlock()
	sort.Slice(failed, func(i, j int) bool { return failed[i].ID.String() < failed[j].ID.String() })
	if len(failed) > 0 {
		fmt.Fprintln(w, "Failed requirements:")
		for _, e := range failed {
			desc := ""
			if r, ok := catalog.Lookup(e.ID); ok {
				desc = r.Description
			}
			fmt.Fprintf(w, "  %s: %s\n", e.ID, desc)
		}
	}
}

// JSON renders the full coverage report, including untested requirements, as a JSON document.
func (c *Coverage) JSON(catalog *Catalog) []byte {
	protocols := ldvalue.ArrayBuild()
	for _, s := range c.Summarize(catalog) {
		reqs := ldvalue.ArrayBuild()
		for _, r := range catalog.Protocol(s.Protocol) {
			status := "untested"
			obj := ldvalue.ObjectBuild().
				Set("id", ldvalue.String(r.ID.String())).
				Set("kind", ldvalue.String(r.Kind.String())).
				Set("scope", ldvalue.String(r.Scope.String())).
				Set("description", ldvalue.String(r.Description))
			if e, ok := c.Entry(r.ID); ok {
				status = string(e.Status())
				obj.Set("verified", ldvalue.Int(e.Verified)).
					Set("failed", ldvalue.Int(e.Failed)).
					Set("disabled", ldvalue.Int(e.Disabled))
				if len(e.FailedTests) > 0 {
					tests := ldvalue.ArrayBuild()
					for _, t := range e.FailedTests {
						tests.Add(ldvalue.String(t))
					}
					obj.Set("failedTests", tests.Build())
				}
			}
			obj.Set("status", ldvalue.String(status))
			reqs.Add(obj.Build())
		}
		protocols.Add(ldvalue.ObjectBuild().
			Set("protocol", ldvalue.String(s.Protocol)).
			Set("total", ldvalue.Int(s.Total)).
			Set("verified", ldvalue.Int(s.Verified)).
			Set("failed", ldvalue.Int(s.Failed)).
			Set("disabled", ldvalue.Int(s.Disabled)).
			Set("untested", ldvalue.Int(s.Untested)).
			Set("requirements", reqs.Build()).
			Build())
	}
	return []byte(ldvalue.ObjectBuild().Set("protocols", protocols.Build()).Build().JSONString())
}
