package adapters

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProtocol = "MS-TEST"

func testBase() Base {
	env := requirements.NewEnvironment()
	b := requirements.Builder{Protocol: testProtocol}
	env.Catalog.Register(
		b.Schema(1, "The response conforms to the schema."),
		b.Must(2, "Fault detail is present."),
		b.Must(3, "errorstring is present."),
		b.Must(4, "errorcode is well formed."),
		b.Must(10, "ResponseClass is valid."),
		b.Must(11, "Success means NoError."),
		b.Must(12, "One message per object."),
		b.Should(13, "ServerVersionInfo is returned."),
	)
	return NewBase(context.Background(), testProtocol, env)
}

func runWithSite(base Base, action func(*requirements.Site)) ldtest.Results {
	return ldtest.Run(ldtest.TestConfiguration{}, func(t *ldtest.T) {
		t.Run("test", func(t *ldtest.T) {
			action(base.Site(t))
		})
	})
}

func verdict(t *testing.T, base Base, number int) requirements.Verdict {
	e, ok := base.Environment().Coverage.Entry(requirements.ID{Protocol: testProtocol, Number: number})
	require.True(t, ok, "requirement %d was never captured", number)
	return e.Status()
}

func TestNewBaseDefaults(t *testing.T) {
	b := NewBase(nil, "MS-X", nil) //nolint:staticcheck
	assert.NotNil(t, b.Context())
	assert.NotNil(t, b.Environment())
	assert.Equal(t, "MS-X", b.Protocol())
}

func TestOutcomeSuccessCapturesSchemaRequirement(t *testing.T) {
	base := testBase()
	var returned error
	results := runWithSite(base, func(site *requirements.Site) {
		returned = Outcome(site, "Op", 1, &soap.Exchange{}, nil, nil)
	})
	assert.True(t, results.OK())
	assert.NoError(t, returned)
	assert.Equal(t, requirements.Verified, verdict(t, base, 1))
}

func TestOutcomeFaultIsReturned(t *testing.T) {
	base := testBase()
	fault := &soap.Fault{Code: "soap:Server", Reason: "boom"}
	checked := false
	var returned error
	results := runWithSite(base, func(site *requirements.Site) {
		returned = Outcome(site, "Op", 1, &soap.Exchange{}, fault,
			func(*requirements.Site, *soap.Fault, *soap.Exchange) { checked = true })
	})
	assert.True(t, results.OK())
	assert.True(t, checked)
	f, ok := IsFault(returned)
	require.True(t, ok)
	assert.Equal(t, "Server", f.CodeLocalName())
}

func TestOutcomeSchemaValidationErrorStopsTest(t *testing.T) {
	base := testBase()
	var result soap.ValidationResult
	result.Errorf("Body element is wrong")
	reachedEnd := false
	results := runWithSite(base, func(site *requirements.Site) {
		_ = Outcome(site, "Op", 1, &soap.Exchange{Validation: result}, &soap.SchemaValidationError{Result: result}, nil)
		reachedEnd = true
	})
	assert.False(t, reachedEnd)
	assert.False(t, results.OK())
	assert.Equal(t, requirements.Failed, verdict(t, base, 1))
}

func TestOutcomeTransportErrorStopsTest(t *testing.T) {
	base := testBase()
	reachedEnd := false
	results := runWithSite(base, func(site *requirements.Site) {
		_ = Outcome(site, "Op", 1, nil, fmt.Errorf("wrapped: %w", errors.New("connection refused")), nil)
		reachedEnd = true
	})
	assert.False(t, reachedEnd)
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "connection refused")
}

func TestCheckResponseMessages(t *testing.T) {
	base := testBase()
	reqs := ResponseMessageRequirements{ResponseClass: 10, NoErrorOnSuccess: 11, MessagePerObject: 12, ServerVersionInfo: 13}
	messages := []*ews.ResponseMessageType{
		{ResponseClass: ews.ResponseClassSuccess, ResponseCode: ews.ResponseCodeNoError},
		{ResponseClass: "Fine", ResponseCode: "ErrorSomething"},
	}
	results := runWithSite(base, func(site *requirements.Site) {
		CheckResponseMessages(site, reqs, messages, 2, &ews.ServerVersionInfo{MajorVersion: 15})
	})
	assert.False(t, results.OK())
	assert.Equal(t, requirements.Failed, verdict(t, base, 10))
	assert.Equal(t, requirements.Verified, verdict(t, base, 11))
	assert.Equal(t, requirements.Verified, verdict(t, base, 12))
	assert.Equal(t, requirements.Verified, verdict(t, base, 13))
}

func TestSharePointFaultChecker(t *testing.T) {
	check := SharePointFaultChecker(SharePointFaultRequirements{Detail: 2, ErrorString: 3, ErrorCode: 4})

	base := testBase()
	results := runWithSite(base, func(site *requirements.Site) {
		check(site, &soap.Fault{Detail: []byte(`<errorstring>No list.</errorstring><errorcode>0x8102000A</errorcode>`)}, nil)
	})
	assert.True(t, results.OK())
	assert.Equal(t, requirements.Verified, verdict(t, base, 4))

	base = testBase()
	results = runWithSite(base, func(site *requirements.Site) {
		check(site, &soap.Fault{Detail: []byte(`<errorstring></errorstring><errorcode>2130575338</errorcode>`)}, nil)
	})
	assert.False(t, results.OK())
	assert.Equal(t, requirements.Failed, verdict(t, base, 3))
	assert.Equal(t, requirements.Failed, verdict(t, base, 4))

	base = testBase()
	results = runWithSite(base, func(site *requirements.Site) {
		check(site, &soap.Fault{}, nil)
	})
	assert.False(t, results.OK())
	assert.Equal(t, requirements.Failed, verdict(t, base, 2))
}

func TestIsErrorCode(t *testing.T) {
	assert.True(t, IsErrorCode("0x00000000"))
	assert.True(t, IsErrorCode("0x81020014"))
	assert.True(t, IsErrorCode("0x8102001a"))
	assert.False(t, IsErrorCode("0x8102"))
	assert.False(t, IsErrorCode("-2130575338"))
	assert.False(t, IsErrorCode(""))
}

func TestSharePointFaultCheckerTogglesAreIndependent(t *testing.T) {
	check := SharePointFaultChecker(SharePointFaultRequirements{Detail: 2, ErrorString: 3, ErrorCode: 4})

	base := testBase()
	base.Environment().Toggles.Set(testProtocol, 2, false)
	results := runWithSite(base, func(site *requirements.Site) {
		check(site, &soap.Fault{Detail: []byte(`<errorstring></errorstring><errorcode>bad</errorcode>`)}, nil)
	})
	assert.False(t, results.OK())
	assert.Equal(t, requirements.Disabled, verdict(t, base, 2))
	assert.Equal(t, requirements.Failed, verdict(t, base, 3))
	assert.Equal(t, requirements.Failed, verdict(t, base, 4))
}
