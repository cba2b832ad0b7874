package adapters

import (
	"regexp"

	"github.com/msprotocols/protocol-contract-tests/listsws"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

var errorCodePattern = regexp.MustCompile(`^0x[0-9A-Fa-f]{8}$`)

// IsErrorCode returns true if s is formatted like a SharePoint error code, such as "0x81020014".
func IsErrorCode(s string) bool {
	return errorCodePattern.MatchString(s)
}

// SharePointFaultRequirements are the numbers of the requirements on the detail of a SharePoint
// SOAP fault.
type SharePointFaultRequirements struct {
	Detail      int
	ErrorString int
	ErrorCode   int
}

// SharePointFaultChecker returns a FaultChecker for the SharePoint web services. The errorcode
// element is optional, so its format is only checked when it is present.
func SharePointFaultChecker(reqs SharePointFaultRequirements) FaultChecker {
	return func(site *requirements.Site, fault *soap.Fault, ex *soap.Exchange) {
		var detail listsws.SoapFaultDetail
		decoded := fault.HasDetail() && fault.DecodeDetail(&detail) == nil
		if ex != nil {
			decoded = decoded && ex.Validation.OK()
		}
		site.CaptureIfTrue(decoded, reqs.Detail, "fault has no decodable detail: %s", string(fault.Detail))
		if !decoded {
			return
		}
		site.CaptureIfNotEmpty(detail.ErrorString, reqs.ErrorString, "fault detail has no errorstring")
		if detail.ErrorCode != "" {
			site.CaptureIfTrue(IsErrorCode(detail.ErrorCode), reqs.ErrorCode, "errorcode was %q", detail.ErrorCode)
		}
	}
}
