package soap

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	XMLName xml.Name `xml:"urn:test Echo"`
	Text    string   `xml:"Text"`
}

type echoResponse struct {
	XMLName xml.Name `xml:"urn:test EchoResponse"`
	Status  string   `xml:"Status,attr"`
	Text    string   `xml:"Text"`
}

func (r *echoResponse) ValidateSchema(v *ValidationResult) {
	v.RequireOneOf("EchoResponse/@Status", r.Status, true, "ok", "bad")
}

type serverInfo struct {
	Build string `xml:"Build,attr"`
}

const echoAction = "urn:test/Echo"

func envelope11(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="utf-8"?>` +
		`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<s:Header><h:ServerInfo xmlns:h="urn:test" Build="15.1"/><h:Other xmlns:h="urn:test"/></s:Header>` +
		`<s:Body>` + body + `</s:Body></s:Envelope>`)
}

func envelope12(body string) []byte {
	return []byte(`<env:Envelope xmlns:env="http://www.w3.org/2003/05/soap-envelope">` +
		`<env:Body>` + body + `</env:Body></env:Envelope>`)
}

func xmlResponse(status int, body []byte) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "text/xml; charset=utf-8")
	return httphelpers.HandlerWithResponse(status, headers, body)
}

func withClient(t *testing.T, handler http.Handler, version Version, action func(*Client)) {
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c, err := NewClient(ClientOptions{
			Endpoint: server.URL,
			Version:  version,
			Auth:     AuthBasic,
			User:     `CONTOSO\user01`,
			Password: "secret",
		})
		require.NoError(t, err)
		defer c.Close()
		action(c)
	})
}

func echoCall(resp *echoResponse, info *serverInfo) Call {
	return Call{
		Action:          echoAction,
		Request:         echoRequest{Text: "hello"},
		Response:        resp,
		ResponseName:    xml.Name{Space: "urn:test", Local: "EchoResponse"},
		ResponseHeaders: map[string]interface{}{"ServerInfo": info},
	}
}

func TestSuccessfulSOAP11Call(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(xmlResponse(200,
		envelope11(`<EchoResponse xmlns="urn:test" Status="ok"><Text>hello</Text></EchoResponse>`)))

	withClient(t, handler, Version11, func(c *Client) {
		var resp echoResponse
		var info serverInfo
		ex, err := c.Do(context.Background(), echoCall(&resp, &info), nil)
		require.NoError(t, err)

		assert.Equal(t, "hello", resp.Text)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "15.1", info.Build)
		assert.Equal(t, ValidationSuccess, ex.Validation.Status())
		assert.Equal(t, 200, ex.StatusCode)

		r := <-requests
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "text/xml; charset=utf-8", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, `"urn:test/Echo"`, r.Request.Header.Get("SOAPAction"))
		user, password, ok := r.Request.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, `CONTOSO\user01`, user)
		assert.Equal(t, "secret", password)
		assert.Contains(t, string(r.Body), `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"`)
		assert.Contains(t, string(r.Body), `<Echo xmlns="urn:test"><Text>hello</Text></Echo>`)
	})
}

func TestSuccessfulSOAP12Call(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(xmlResponse(200,
		envelope12(`<t:EchoResponse xmlns:t="urn:test" Status="ok"><t:Text>hi</t:Text></t:EchoResponse>`)))

	withClient(t, handler, Version12, func(c *Client) {
		var resp echoResponse
		_, err := c.Do(context.Background(), echoCall(&resp, &serverInfo{}), nil)
		require.NoError(t, err)
		assert.Equal(t, "hi", resp.Text)

		r := <-requests
		assert.Equal(t, `application/soap+xml; charset=utf-8; action="urn:test/Echo"`, r.Request.Header.Get("Content-Type"))
		assert.Empty(t, r.Request.Header.Values("SOAPAction"))
		assert.Contains(t, string(r.Body), Namespace12)
	})
}

func TestSOAP11Fault(t *testing.T) {
	body := `<s:Fault><faultcode>s:Server</faultcode>` +
		`<faultstring>Exception of type 'SoapServerException' was thrown.</faultstring>` +
		`<detail><errorstring xmlns="urn:sp">List does not exist.</errorstring>` +
		`<errorcode xmlns="urn:sp">0x82000006</errorcode></detail></s:Fault>`
	withClient(t, xmlResponse(500, envelope11(body)), Version11, func(c *Client) {
		ex, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
		require.Error(t, err)
		require.NotNil(t, ex)

		var fault *Fault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, "s:Server", fault.Code)
		assert.Equal(t, "Server", fault.CodeLocalName())
		assert.Equal(t, 500, fault.HTTPStatus)
		assert.True(t, fault.HasDetail())

		var detail struct {
			ErrorString string `xml:"errorstring"`
			ErrorCode   string `xml:"errorcode"`
		}
		require.NoError(t, fault.DecodeDetail(&detail))
		assert.Equal(t, "List does not exist.", detail.ErrorString)
		assert.Equal(t, "0x82000006", detail.ErrorCode)
		assert.True(t, ex.Validation.OK())
	})
}

func TestSOAP12Fault(t *testing.T) {
	body := `<env:Fault><env:Code><env:Value>env:Sender</env:Value>` +
		`<env:Subcode><env:Value>a:ErrorSchemaValidation</env:Value></env:Subcode></env:Code>` +
		`<env:Reason><env:Text xml:lang="en-US">The request failed schema validation.</env:Text></env:Reason>` +
		`</env:Fault>`
	withClient(t, xmlResponse(500, envelope12(body)), Version12, func(c *Client) {
		_, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
		var fault *Fault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, "env:Sender", fault.Code)
		assert.Equal(t, "a:ErrorSchemaValidation", fault.Subcode)
		assert.Equal(t, "The request failed schema validation.", fault.Reason)
		assert.False(t, fault.HasDetail())
	})
}

func TestUnexpectedBodyElementFailsValidation(t *testing.T) {
	withClient(t, xmlResponse(200, envelope11(`<OtherResponse xmlns="urn:test"/>`)), Version11, func(c *Client) {
		ex, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
		var verr *SchemaValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, ValidationError, ex.Validation.Status())
		assert.Contains(t, verr.Error(), "expected {urn:test}EchoResponse")
	})
}

func TestValidatorErrorsFailValidation(t *testing.T) {
	withClient(t, xmlResponse(200, envelope11(`<EchoResponse xmlns="urn:test" Status="maybe"/>`)), Version11,
		func(c *Client) {
			_, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
			var verr *SchemaValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Result.Errors[0], `EchoResponse/@Status has value "maybe"`)
		})
}

func TestMalformedResponseFailsValidation(t *testing.T) {
	withClient(t, xmlResponse(200, []byte(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"><s:Body>`)),
		Version11, func(c *Client) {
			ex, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
			var verr *SchemaValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, ex.Validation.Errors[0], "not a well-formed XML document")
		})
}

func TestWrongEnvelopeVersionFailsValidation(t *testing.T) {
	withClient(t, xmlResponse(200, envelope12(`<EchoResponse xmlns="urn:test" Status="ok"/>`)), Version11,
		func(c *Client) {
			_, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
			var verr *SchemaValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Error(), "Envelope namespace")
		})
}

func TestTwoBodyElementsFailValidation(t *testing.T) {
	body := `<EchoResponse xmlns="urn:test" Status="ok"/><EchoResponse xmlns="urn:test" Status="ok"/>`
	withClient(t, xmlResponse(200, envelope11(body)), Version11, func(c *Client) {
		_, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
		var verr *SchemaValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Error(), "more than one element")
	})
}

func TestHTTPErrorStatusIsTransportError(t *testing.T) {
	withClient(t, httphelpers.HandlerWithStatus(401), Version11, func(c *Client) {
		ex, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP status 401")
		require.NotNil(t, ex)
		assert.Equal(t, 401, ex.StatusCode)

		var fault *Fault
		assert.False(t, errors.As(err, &fault))
	})
}

func TestServerErrorWithoutXMLIsTransportError(t *testing.T) {
	headers := make(http.Header)
	headers.Set("Content-Type", "text/html")
	handler := httphelpers.HandlerWithResponse(500, headers, []byte("Internal Server Error"))
	withClient(t, handler, Version11, func(c *Client) {
		ex, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP status 500")
		assert.Equal(t, 500, ex.StatusCode)

		var verr *SchemaValidationError
		assert.False(t, errors.As(err, &verr))
	})
}

func TestAcceptedWithoutBodyIsSuccess(t *testing.T) {
	for _, status := range []int{202, 204} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			withClient(t, httphelpers.HandlerWithStatus(status), Version11, func(c *Client) {
				ex, err := c.Do(context.Background(), echoCall(&echoResponse{}, &serverInfo{}), nil)
				require.NoError(t, err)
				assert.Equal(t, status, ex.StatusCode)
			})
		})
	}
}

func TestOtherSuccessStatusDecodesEnvelope(t *testing.T) {
	withClient(t, xmlResponse(201, envelope11(`<EchoResponse xmlns="urn:test" Status="ok"><Text>hi</Text></EchoResponse>`)),
		Version11, func(c *Client) {
			var resp echoResponse
			_, err := c.Do(context.Background(), echoCall(&resp, &serverInfo{}), nil)
			require.NoError(t, err)
			assert.Equal(t, "hi", resp.Text)
		})
}

func TestNewClientRejectsBadOptions(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	assert.Error(t, err)
	_, err = NewClient(ClientOptions{Endpoint: "http://localhost", Auth: "kerberos"})
	assert.Error(t, err)
}

func TestMarshalEnvelopeOmitsEmptyHeader(t *testing.T) {
	data, err := MarshalEnvelope(Version11, nil, echoRequest{Text: "x"})
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "Header"))
	assert.True(t, strings.HasPrefix(string(data), xmlDeclaration))
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.2")
	require.NoError(t, err)
	assert.Equal(t, Version12, v)
	v, err = ParseVersion("1.1")
	require.NoError(t, err)
	assert.Equal(t, Version11, v)
	_, err = ParseVersion("2.0")
	assert.Error(t, err)
}
