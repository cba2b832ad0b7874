package requirements

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Environment is everything a Site needs besides the test itself. One Environment is shared by
// all tests in a run.
type Environment struct {
	Catalog  *Catalog
	Toggles  Toggles
	Coverage *Coverage
}

func NewEnvironment() *Environment {
	return &Environment{
		Catalog:  NewCatalog(),
		Toggles:  make(Toggles),
		Coverage: NewCoverage(),
	}
}

// Site is the point where an adapter reports requirement verdicts for one protocol within one
// test. A requirement that is not satisfied is a test failure, but the test keeps running so
// that the remaining requirements of the same response are still checked.
type Site struct {
	t        *ldtest.T
	protocol string
	env      *Environment
}

// NewSite creates a Site for a protocol within a test.
func NewSite(t *ldtest.T, protocol string, env *Environment) *Site {
	if env == nil {
		env = NewEnvironment()
	}
	return &Site{t: t, protocol: protocol, env: env}
}

// T returns the test that verdicts are reported to.
func (s *Site) T() *ldtest.T {
	return s.t
}

// Protocol returns the protocol whose requirements this Site reports.
func (s *Site) Protocol() string {
	return s.protocol
}

func (s *Site) id(number int) ID {
	return ID{Protocol: s.protocol, Number: number}
}

// IsRequirementEnabled returns false if the SUT configuration has switched the requirement off.
func (s *Site) IsRequirementEnabled(number int) bool {
	return s.env.Toggles.IsEnabled(s.id(number))
}

// CaptureIfTrue records requirement number as verified if cond is true, or as failed otherwise.
// A disabled requirement is recorded as disabled and never fails the test. It always returns
// cond, so callers can guard dependent checks on it whatever the toggles say.
func (s *Site) CaptureIfTrue(cond bool, number int, msgAndArgs ...interface{}) bool {
	id := s.id(number)
	r, ok := s.env.Catalog.Lookup(id)
	if !ok {
		require.Fail(s.t, "requirement is not in the catalog", "%s was captured but never registered", id)
	}
	test := s.t.ID().String()
	if !s.env.Toggles.IsEnabled(id) {
		s.env.Coverage.Record(id, Disabled, test)
		s.t.Debug("Skipped %s (disabled in SUT configuration)", id)
		return cond
	}
	if cond {
		s.env.Coverage.Record(id, Verified, test)
		s.t.Debug("Verified %s: %s", id, r.Description)
		return true
	}
	s.env.Coverage.Record(id, Failed, test)
	message := fmt.Sprintf("%s (%s) was not satisfied: %s", id, r.Kind, r.Description)
	if extra := messageFromMsgAndArgs(msgAndArgs...); extra != "" {
		message += "\n" + extra
	}
	s.t.Errorf("%s", message)
	return false
}

// Capture records a requirement that is satisfied by the mere fact that the operation
// succeeded, such as "the server responds to a CopyFolder request with a CopyFolderResponse".
func (s *Site) Capture(number int) {
	s.CaptureIfTrue(true, number)
}

// CaptureIfEqual verifies a requirement that a response value has a specific value.
func (s *Site) CaptureIfEqual(expected, actual interface{}, number int, msgAndArgs ...interface{}) bool {
	if assert.ObjectsAreEqual(expected, actual) {
		return s.CaptureIfTrue(true, number)
	}
	extra := fmt.Sprintf("expected: %#v\nactual: %#v", expected, actual)
	if m := messageFromMsgAndArgs(msgAndArgs...); m != "" {
		extra = m + "\n" + extra
	}
	return s.CaptureIfTrue(false, number, extra)
}

// CaptureIfNotNil verifies a requirement that a response element is present.
func (s *Site) CaptureIfNotNil(value interface{}, number int, msgAndArgs ...interface{}) bool {
	return s.CaptureIfTrue(!isNil(value), number, msgAndArgs...)
}

// CaptureIfNotEmpty verifies a requirement that a response value is present and non-empty.
func (s *Site) CaptureIfNotEmpty(value string, number int, msgAndArgs ...interface{}) bool {
	return s.CaptureIfTrue(strings.TrimSpace(value) != "", number, msgAndArgs...)
}

// CaptureIfSchemaValid verifies a message-structure requirement from the result of validating
// the response.
func (s *Site) CaptureIfSchemaValid(result soap.ValidationResult, number int) bool {
	if result.OK() {
		return s.CaptureIfTrue(true, number)
	}
	return s.CaptureIfTrue(false, number, "schema validation result: "+result.String())
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func messageFromMsgAndArgs(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	}
	return fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
}
