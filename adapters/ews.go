package adapters

import (
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

// ResponseMessageRequirements are the numbers, within one EWS protocol, of the requirements
// that every response message is checked against. A zero number skips that check.
type ResponseMessageRequirements struct {
	// ResponseClass is Success, Warning or Error.
	ResponseClass int

	// ResponseCode is NoError when ResponseClass is Success.
	NoErrorOnSuccess int

	// There is one response message for each object in the request.
	MessagePerObject int

	// The response includes a ServerVersionInfo header.
	ServerVersionInfo int

	// A SOAP fault has the standard structure, and its detail names a ResponseCode.
	FaultStructure int
}

// CheckResponseMessages verifies the requirements that apply to the response messages of every
// EWS operation. The requested count is the number of folders or items in the request.
func CheckResponseMessages(
	site *requirements.Site,
	reqs ResponseMessageRequirements,
	messages []*ews.ResponseMessageType,
	requested int,
	serverVersion *ews.ServerVersionInfo,
) {
	if reqs.MessagePerObject != 0 && requested > 0 {
		site.CaptureIfEqual(requested, len(messages), reqs.MessagePerObject, "number of response messages")
	}
	for _, m := range messages {
		if reqs.ResponseClass != 0 {
			valid := m.ResponseClass == ews.ResponseClassSuccess || m.ResponseClass == ews.ResponseClassWarning ||
				m.ResponseClass == ews.ResponseClassError
			site.CaptureIfTrue(valid, reqs.ResponseClass, "ResponseClass was %q", m.ResponseClass)
		}
		if reqs.NoErrorOnSuccess != 0 && m.IsSuccess() && m.ResponseCode != "" {
			site.CaptureIfEqual(ews.ResponseCodeNoError, m.ResponseCode, reqs.NoErrorOnSuccess)
		}
	}
	if reqs.ServerVersionInfo != 0 && site.IsRequirementEnabled(reqs.ServerVersionInfo) {
		site.CaptureIfNotNil(serverVersion, reqs.ServerVersionInfo, "response had no ServerVersionInfo header")
	}
}

// EWSFaultChecker returns a FaultChecker for an EWS protocol.
func EWSFaultChecker(faultStructure int) FaultChecker {
	return func(site *requirements.Site, fault *soap.Fault, ex *soap.Exchange) {
		if faultStructure == 0 {
			return
		}
		if ex != nil {
			site.CaptureIfSchemaValid(ex.Validation, faultStructure)
		}
		if fault.HasDetail() {
			var detail ews.FaultDetail
			err := fault.DecodeDetail(&detail)
			site.CaptureIfTrue(err == nil && detail.ResponseCode != "", faultStructure,
				"fault detail has no ResponseCode: %s", string(fault.Detail))
		}
	}
}
