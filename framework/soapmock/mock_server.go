// Package soapmock provides a fake SOAP endpoint for testing adapters and suites without a real
// server-under-test.
package soapmock

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

const (
	defaultAwaitRequestTimeout = time.Second * 5
	requestChannelSize         = 100
)

// Server is a fake SOAP endpoint. Each operation, identified by its SOAP action, is answered by
// its own handler; requests for operations with no handler get a SOAP fault.
type Server struct {
	server   *httptest.Server
	version  soap.Version
	handlers map[string]http.Handler
	requests chan IncomingRequestInfo
	logger   framework.Logger
	lock     sync.Mutex
	closing  sync.Once
}

// IncomingRequestInfo contains information about a request that the Server received.
type IncomingRequestInfo struct {
	Action  string
	Headers http.Header
	Body    []byte
}

// NewServer starts a Server on a local port. The version determines how the SOAP action is
// read from requests and how responses are wrapped.
func NewServer(version soap.Version, logger framework.Logger) *Server {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &Server{
		version:  version,
		handlers: make(map[string]http.Handler),
		requests: make(chan IncomingRequestInfo, requestChannelSize),
		logger:   logger,
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	return s
}

// URL returns the endpoint URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Version returns the SOAP version the server speaks.
func (s *Server) Version() soap.Version {
	return s.version
}

// Close shuts down the server.
func (s *Server) Close() {
	s.closing.Do(func() {
		s.server.Close()
		s.lock.Lock()
		close(s.requests)
		s.requests = nil
		s.lock.Unlock()
	})
}

// Handle sets the handler for an action, replacing any previous one. The request body is still
// readable by the handler.
func (s *Server) Handle(action string, handler http.Handler) {
	s.lock.Lock()
	s.handlers[action] = handler
	s.lock.Unlock()
}

// Respond makes the server answer an action with a successful response containing payload as
// the only child of Body.
func (s *Server) Respond(action, payload string) {
	s.Handle(action, ResponseHandler(s.version, http.StatusOK, "", payload))
}

// RespondWithHeader is like Respond, but also includes a SOAP header.
func (s *Server) RespondWithHeader(action, header, payload string) {
	s.Handle(action, ResponseHandler(s.version, http.StatusOK, header, payload))
}

// Fault makes the server answer an action with a SOAP fault. The detail is the inner XML of the
// fault's detail element and may be empty.
func (s *Server) Fault(action, code, reason, detail string) {
	s.Handle(action, ResponseHandler(s.version, http.StatusInternalServerError, "", FaultPayload(s.version, code, reason, detail)))
}

// AwaitRequest waits for the next request that the server received.
func (s *Server) AwaitRequest(timeout time.Duration) (IncomingRequestInfo, error) {
	if timeout <= 0 {
		timeout = defaultAwaitRequestTimeout
	}
	s.lock.Lock()
	ch := s.requests
	s.lock.Unlock()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case r, ok := <-ch:
		if !ok {
			return IncomingRequestInfo{}, fmt.Errorf("mock server was closed")
		}
		return r, nil
	case <-deadline.C:
		return IncomingRequestInfo{}, fmt.Errorf("timed out waiting for a request to %s", s.server.URL)
	}
}

func (s *Server) serveHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			s.logger.Printf("Unexpected error trying to read request body: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body = data
	}
	action := ActionOf(req)

	s.lock.Lock()
	handler := s.handlers[action]
	select { // non-blocking push
	case s.requests <- IncomingRequestInfo{Action: action, Headers: req.Header, Body: body}:
	default:
		s.logger.Printf("Incoming request channel was full for %s", action)
	}
	s.lock.Unlock()

	if handler == nil {
		s.logger.Printf("Received request for unrecognized action %q", action)
		ResponseHandler(s.version, http.StatusInternalServerError, "",
			FaultPayload(s.version, "Client", "no handler for action "+action, "")).ServeHTTP(w, req)
		return
	}
	transformed := req.Clone(req.Context())
	transformed.Body = io.NopCloser(bytes.NewReader(body))
	handler.ServeHTTP(w, transformed)
}

// ActionOf returns the SOAP action of a request, from either the SOAPAction header or the
// action parameter of the content type.
func ActionOf(req *http.Request) string {
	if a := req.Header.Get("SOAPAction"); a != "" {
		return strings.Trim(a, `"`)
	}
	if _, params, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
		return params["action"]
	}
	return ""
}

// Envelope wraps a payload, and optionally header content, in a response envelope.
func Envelope(version soap.Version, header, payload string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	fmt.Fprintf(&buf, `<s:Envelope xmlns:s="%s">`, version.Namespace())
	if header != "" {
		buf.WriteString("<s:Header>" + header + "</s:Header>")
	}
	buf.WriteString("<s:Body>" + payload + "</s:Body></s:Envelope>")
	return buf.Bytes()
}

// FaultPayload builds a Fault element for a SOAP version. The code is a local name such as
// "Client" or "Server", which is mapped to "Sender" or "Receiver" for SOAP 1.2.
func FaultPayload(version soap.Version, code, reason, detail string) string {
	if version == soap.Version12 {
		switch code {
		case "Client":
			code = "Sender"
		case "Server":
			code = "Receiver"
		}
		ret := `<s:Fault><s:Code><s:Value>s:` + code + `</s:Value></s:Code>` +
			`<s:Reason><s:Text xml:lang="en-US">` + escape(reason) + `</s:Text></s:Reason>`
		if detail != "" {
			ret += `<s:Detail>` + detail + `</s:Detail>`
		}
		return ret + `</s:Fault>`
	}
	ret := `<s:Fault><faultcode>s:` + code + `</faultcode><faultstring>` + escape(reason) + `</faultstring>`
	if detail != "" {
		ret += `<detail>` + detail + `</detail>`
	}
	return ret + `</s:Fault>`
}

// ResponseHandler returns a handler that writes one response envelope.
func ResponseHandler(version soap.Version, status int, header, payload string) http.Handler {
	body := Envelope(version, header, payload)
	contentType := "text/xml; charset=utf-8"
	if version == soap.Version12 {
		contentType = "application/soap+xml; charset=utf-8"
	}
	headers := make(http.Header)
	headers.Set("Content-Type", contentType)
	return httphelpers.HandlerWithResponse(status, headers, body)
}

func escape(s string) string {
	var buf strings.Builder
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
