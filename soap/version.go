// Package soap is a minimal SOAP 1.1/1.2 client for talking to a server-under-test.
//
// Besides sending requests and decoding responses, it validates the shape of every response
// envelope and reports the outcome as a ValidationResult. The protocol adapters turn that result
// into requirement verdicts, so a response that decodes fine can still fail validation.
package soap

import "fmt"

// Version is a SOAP protocol version.
type Version int

const (
	Version11 Version = iota + 1
	Version12
)

const (
	Namespace11 = "http://schemas.xmlsoap.org/soap/envelope/"
	Namespace12 = "http://www.w3.org/2003/05/soap-envelope"
)

const (
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNamespace = "http://www.w3.org/2001/XMLSchema"
)

// ParseVersion accepts "1.1" or "1.2".
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1.1", "":
		return Version11, nil
	case "1.2":
		return Version12, nil
	default:
		return 0, fmt.Errorf("unsupported SOAP version %q", s)
	}
}

// Namespace returns the envelope namespace of the version.
func (v Version) Namespace() string {
	if v == Version12 {
		return Namespace12
	}
	return Namespace11
}

// ContentType returns the Content-Type header value for a request with the given action. For
// SOAP 1.1 the action travels in a separate SOAPAction header instead.
func (v Version) ContentType(action string) string {
	if v == Version12 {
		return fmt.Sprintf(`application/soap+xml; charset=utf-8; action="%s"`, action)
	}
	return "text/xml; charset=utf-8"
}

func (v Version) String() string {
	if v == Version12 {
		return "SOAP 1.2"
	}
	return "SOAP 1.1"
}
