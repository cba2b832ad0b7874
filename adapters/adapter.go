// Package adapters contains what the protocol adapters have in common. Each subpackage wraps the
// operations of one protocol binding: it makes the call with the test's debug logger, then
// reports requirement verdicts for the response through a requirements.Site.
//
// The outcome of a call is handled the same way everywhere. A SOAP fault is logged, its shape is
// verified, and it is returned to the test as an error. A response that fails schema validation
// ends the test. Any other error, such as a network failure, also ends the test.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/stretchr/testify/require"
)

// Base holds what every adapter needs besides its binding.
type Base struct {
	ctx      context.Context
	protocol string
	env      *requirements.Environment
}

// NewBase creates a Base for a protocol. The context applies to every call the adapter makes.
func NewBase(ctx context.Context, protocol string, env *requirements.Environment) Base {
	if ctx == nil {
		ctx = context.Background()
	}
	if env == nil {
		env = requirements.NewEnvironment()
	}
	return Base{ctx: ctx, protocol: protocol, env: env}
}

func (b Base) Context() context.Context {
	return b.ctx
}

func (b Base) Protocol() string {
	return b.protocol
}

// Environment returns the requirement environment that verdicts are reported to.
func (b Base) Environment() *requirements.Environment {
	return b.env
}

// Site returns a Site for reporting verdicts of this adapter's protocol within a test.
func (b Base) Site(t *ldtest.T) *requirements.Site {
	return requirements.NewSite(t, b.protocol, b.env)
}

// FaultChecker verifies a protocol's requirements on the shape of a SOAP fault.
type FaultChecker func(site *requirements.Site, fault *soap.Fault, ex *soap.Exchange)

// Outcome handles the result of a binding call.
//
// If the call succeeded, the schema requirement of the operation's response message is captured
// and nil is returned. If the server returned a SOAP fault, checkFault is called and the fault is
// returned. Schema validation failures and other errors stop the test.
func Outcome(
	site *requirements.Site,
	operation string,
	schemaRequirement int,
	ex *soap.Exchange,
	err error,
	checkFault FaultChecker,
) error {
	t := site.T()
	if err == nil {
		site.CaptureIfSchemaValid(ex.Validation, schemaRequirement)
		return nil
	}
	var fault *soap.Fault
	if errors.As(err, &fault) {
		t.Debug("%s returned a SOAP fault: %s", operation, fault)
		if checkFault != nil {
			checkFault(site, fault, ex)
		}
		return fault
	}
	var verr *soap.SchemaValidationError
	if errors.As(err, &verr) {
		site.CaptureIfSchemaValid(verr.Result, schemaRequirement)
		require.FailNow(t, fmt.Sprintf("%s response failed schema validation", operation), verr.Result.String())
	}
	require.NoError(t, err, "%s failed", operation)
	return err
}

// IsFault returns the SOAP fault if err is one.
func IsFault(err error) (*soap.Fault, bool) {
	var fault *soap.Fault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}
