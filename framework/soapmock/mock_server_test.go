package soapmock

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRequest struct {
	XMLName xml.Name `xml:"urn:test Ping"`
}

type pingResponse struct {
	Value string `xml:"Value"`
}

func newClient(t *testing.T, s *Server) *soap.Client {
	c, err := soap.NewClient(soap.ClientOptions{Endpoint: s.URL(), Version: s.Version()})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestServerRoutesByAction(t *testing.T) {
	for _, version := range []soap.Version{soap.Version11, soap.Version12} {
		t.Run(version.String(), func(t *testing.T) {
			s := NewServer(version, nil)
			defer s.Close()
			s.Respond("urn:test/Ping", `<PingResponse xmlns="urn:test"><Value>pong</Value></PingResponse>`)

			var resp pingResponse
			_, err := newClient(t, s).Do(context.Background(), soap.Call{
				Action:   "urn:test/Ping",
				Request:  pingRequest{},
				Response: &resp,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, "pong", resp.Value)

			r, err := s.AwaitRequest(time.Second)
			require.NoError(t, err)
			assert.Equal(t, "urn:test/Ping", r.Action)
			assert.True(t, bytes.Contains(r.Body, []byte(`<Ping xmlns="urn:test">`)))
		})
	}
}

func TestServerReturnsConfiguredFault(t *testing.T) {
	for _, version := range []soap.Version{soap.Version11, soap.Version12} {
		t.Run(version.String(), func(t *testing.T) {
			s := NewServer(version, nil)
			defer s.Close()
			s.Fault("urn:test/Ping", "Server", "List does not exist & never did", `<errorcode xmlns="urn:test">0x82000006</errorcode>`)

			ex, err := newClient(t, s).Do(context.Background(), soap.Call{Action: "urn:test/Ping", Request: pingRequest{}}, nil)
			var fault *soap.Fault
			require.True(t, errors.As(err, &fault))
			assert.Equal(t, http.StatusInternalServerError, ex.StatusCode)
			assert.Equal(t, "List does not exist & never did", fault.Reason)
			assert.True(t, fault.HasDetail())
		})
	}
}

func TestUnknownActionIsClientFault(t *testing.T) {
	s := NewServer(soap.Version11, nil)
	defer s.Close()

	_, err := newClient(t, s).Do(context.Background(), soap.Call{Action: "urn:test/Nothing", Request: pingRequest{}}, nil)
	var fault *soap.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "Client", fault.CodeLocalName())
}

func TestAwaitRequestTimesOut(t *testing.T) {
	s := NewServer(soap.Version11, nil)
	defer s.Close()
	_, err := s.AwaitRequest(time.Millisecond * 10)
	assert.Error(t, err)
}

func TestServerOnlyAcceptsPost(t *testing.T) {
	s := NewServer(soap.Version11, nil)
	defer s.Close()

	resp, err := http.Get(s.URL())
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	s.Close()
	_, err = s.AwaitRequest(time.Millisecond * 10)
	assert.Error(t, err)
}

func TestResponseHandlerContentType(t *testing.T) {
	for _, version := range []soap.Version{soap.Version11, soap.Version12} {
		s := NewServer(version, nil)
		s.Respond("urn:test/Ping", `<PingResponse xmlns="urn:test"/>`)
		req, err := http.NewRequest(http.MethodPost, s.URL(), bytes.NewReader([]byte("<x/>")))
		require.NoError(t, err)
		req.Header.Set("SOAPAction", `"urn:test/Ping"`)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		if version == soap.Version12 {
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/soap+xml")
		} else {
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/xml")
		}
		s.Close()
	}
}
