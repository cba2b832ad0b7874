package soap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/msprotocols/protocol-contract-tests/framework"

	ntlmssp "github.com/Azure/go-ntlmssp"
)

const defaultTimeout = time.Second * 100

// Authentication schemes supported by Client.
const (
	AuthNone  = ""
	AuthBasic = "basic"
	AuthNTLM  = "ntlm"
)

// ClientOptions contains the parameters for NewClient.
type ClientOptions struct {
	Endpoint      string
	Version       Version
	Auth          string
	User          string
	Password      string
	SkipTLSVerify bool
	Timeout       time.Duration

	// HTTPClient replaces the client that NewClient would otherwise build. Auth is still applied
	// as request credentials, but no NTLM negotiation is added.
	HTTPClient *http.Client

	// Logger receives a copy of every request and response. It can be overridden per call.
	Logger framework.Logger
}

// Client sends SOAP requests to one endpoint of the server-under-test.
type Client struct {
	endpoint  string
	version   Version
	auth      string
	user      string
	password  string
	timeout   time.Duration
	http      *http.Client
	transport *http.Transport
	logger    framework.Logger
}

// Call describes one SOAP operation invocation.
type Call struct {
	// Action is the SOAPAction URI of the operation.
	Action string

	// Headers are marshaled as the children of the request's Header element.
	Headers []interface{}

	// Request is marshaled as the only child of the request's Body element.
	Request interface{}

	// ResponseHeaders maps the local names of response header elements to the values to decode
	// them into.
	ResponseHeaders map[string]interface{}

	// Response receives the payload of a successful response.
	Response interface{}

	// ResponseName is the element that the response payload must be. An empty Space matches
	// any namespace.
	ResponseName xml.Name
}

// Exchange is the record of one request/response round trip.
type Exchange struct {
	Action      string
	RequestXML  []byte
	ResponseXML []byte
	StatusCode  int
	Validation  ValidationResult
	Elapsed     time.Duration
}

// NewClient creates a Client for an endpoint.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("SOAP endpoint URL is required")
	}
	if opts.Version == 0 {
		opts.Version = Version11
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = framework.NullLogger()
	}
	switch opts.Auth {
	case AuthNone, AuthBasic, AuthNTLM:
	default:
		return nil, fmt.Errorf("unsupported authentication scheme %q", opts.Auth)
	}
	c := &Client{
		endpoint: opts.Endpoint,
		version:  opts.Version,
		auth:     opts.Auth,
		user:     opts.User,
		password: opts.Password,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
	if opts.HTTPClient != nil {
		c.http = opts.HTTPClient
		return c, nil
	}
	c.transport = &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.SkipTLSVerify}, //nolint:gosec
	}
	var rt http.RoundTripper = c.transport
	if opts.Auth == AuthNTLM {
		rt = ntlmssp.Negotiator{RoundTripper: c.transport}
	}
	c.http = &http.Client{Transport: rt}
	return c, nil
}

// Endpoint returns the URL that the client sends requests to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Version returns the SOAP version the client speaks.
func (c *Client) Version() Version {
	return c.version
}

// Close releases idle connections.
func (c *Client) Close() {
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
}

// Do performs a call.
//
// The returned Exchange is non-nil whenever a response was received, even if the error is
// non-nil. The error is a *Fault if the server returned a SOAP fault, or a
// *SchemaValidationError if the response envelope or payload did not validate; otherwise it
// describes a transport or encoding failure.
func (c *Client) Do(ctx context.Context, call Call, logger framework.Logger) (*Exchange, error) {
	if logger == nil {
		logger = c.logger
	}
	body, err := MarshalEnvelope(c.version, call.Headers, call.Request)
	if err != nil {
		return nil, err
	}
	ex := &Exchange{Action: call.Action, RequestXML: body}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", c.version.ContentType(call.Action))
	if c.version == Version11 {
		req.Header.Set("SOAPAction", `"`+call.Action+`"`)
	}
	if c.auth != AuthNone {
		req.SetBasicAuth(c.user, c.password)
	}

	logger.Printf("SOAP request %s to %s:\n%s", call.Action, c.endpoint, string(body))
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SOAP request %s failed: %w", call.Action, err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	ex.Elapsed = time.Since(started)
	ex.StatusCode = resp.StatusCode
	if err != nil {
		return ex, fmt.Errorf("error reading SOAP response for %s: %w", call.Action, err)
	}
	ex.ResponseXML = data
	logger.Printf("SOAP response %s (HTTP %d, %s):\n%s", call.Action, resp.StatusCode, ex.Elapsed, string(data))

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	trimmed := bytes.TrimSpace(data)
	switch {
	case success && len(trimmed) == 0:
		return ex, nil
	case success:
	case resp.StatusCode == http.StatusInternalServerError && bytes.HasPrefix(trimmed, []byte("<")):
	default:
		return ex, fmt.Errorf("SOAP request %s returned HTTP status %d", call.Action, resp.StatusCode)
	}

	fault, result, err := decodeEnvelope(data, c.version, responseTarget{
		headers:  call.ResponseHeaders,
		body:     call.Response,
		bodyName: call.ResponseName,
	})
	ex.Validation = result
	if err != nil {
		logger.Printf("Schema validation of %s response: %s", call.Action, result)
		return ex, &SchemaValidationError{Result: result}
	}
	if fault != nil {
		fault.HTTPStatus = resp.StatusCode
		logger.Printf("SOAP fault from %s: %s", call.Action, fault)
		return ex, fault
	}
	if !success {
		result.Errorf("HTTP status %d without a SOAP fault", resp.StatusCode)
		ex.Validation = result
	}
	if !result.OK() {
		logger.Printf("Schema validation of %s response: %s", call.Action, result)
		return ex, &SchemaValidationError{Result: result}
	}
	return ex, nil
}
