package ldtest

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/msprotocols/protocol-contract-tests/framework"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// TestConfiguration contains the parameters for a test run.
type TestConfiguration struct {
	// Filter, if non-nil, decides which tests to run.
	Filter Filter

	// TestLogger receives notifications about test progress. If nil, nothing is logged.
	TestLogger TestLogger

	// Capabilities is the set of optional features that the server-under-test supports.
	Capabilities framework.Capabilities

	// Context is an arbitrary value that the domain-specific test code can retrieve with
	// T.Context(). The protocol suites use it for the harness, configuration and catalogs.
	Context interface{}
}

// T represents a test or subtest in a protocol test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging that are
// convenient for our use case.
//
// To make test assertions, use the assert and require packages, passing the *T as if it were a
// *testing.T.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run starts a test run. The action is executed as the root scope, and normally calls T.Run
// for each group of tests.
func Run(config TestConfiguration, action func(*T)) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{config: config}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) {
	defer func() {
		if r := recover(); r != nil {
			if !t.skipped {
				t.failed = true
				var addError error
				if _, ok := r.(*T); ok {
					if len(t.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					t.errors = append(t.errors, addError)
					t.env.config.TestLogger.TestError(t.id, addError)
				}
			}
		}
		t.runCleanups()
		if len(t.id.Path) == 0 {
			return
		}
		result := TestResult{TestID: t.id, Errors: t.errors, Skipped: t.skipped}
		t.env.results.Tests = append(t.env.results.Tests, result)
		if t.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		}
	}()

	action(t)
}

func (t *T) runCleanups() {
	for len(t.cleanups) > 0 {
		n := len(t.cleanups) - 1
		cleanup := t.cleanups[n]
		t.cleanups = t.cleanups[:n]
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Debug("panic in cleanup function: %+v", r)
				}
			}()
			cleanup()
		}()
	}
}

// ID returns the unique identifier of this test, which consists of its parent's path plus
// its own name.
func (t *T) ID() TestID {
	return t.id
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	id := TestID{Path: append(append([]string(nil), t.id.Path...), name)}

	logger := t.env.config.TestLogger
	logger.TestStarted(id)
	if filter := t.env.config.Filter; filter != nil && !filter(id) {
		logger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	t1 := &T{
		id:  id,
		env: t.env,
	}
	t1.run(action)
	if t1.skipped {
		logger.TestSkipped(id, t1.skipReason)
	} else {
		logger.TestFinished(id, t1.failed, t1.debugLogger.Output())
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	panic(t)
}

// Failed returns true if the test has recorded a failure so far.
func (t *T) Failed() bool {
	return t.failed
}

// Skip marks the test as skipped and immediately exits.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is equivalent to Skip, but records an explanation for the test logger.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Defer schedules a cleanup function to be called when the test ends, whether it passed,
// failed or was skipped. Cleanup functions are called in the reverse order they were added.
func (t *T) Defer(cleanup func()) {
	t.cleanups = append(t.cleanups, cleanup)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to this test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Capabilities returns the optional features that the server-under-test supports.
func (t *T) Capabilities() framework.Capabilities {
	return t.env.config.Capabilities
}

// RequireCapability skips this test if the server-under-test does not support the specified
// capability.
func (t *T) RequireCapability(capability string) {
	if !t.env.config.Capabilities.Has(capability) {
		t.SkipWithReason(fmt.Sprintf("server-under-test does not have capability %q", capability))
	}
}

// Context returns the value that was passed as TestConfiguration.Context.
func (t *T) Context() interface{} {
	return t.env.config.Context
}
