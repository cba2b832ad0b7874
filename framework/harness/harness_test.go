package harness

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msprotocols/protocol-contract-tests/config"
	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func makeConfig(endpoints map[string]string) *config.Config {
	c := &config.Config{
		SUT: config.SUT{
			Transport:   config.TransportHTTP,
			SOAPVersion: config.SOAP12,
			Auth:        config.AuthBasic,
			Domain:      "CONTOSO",
			User:        "admin",
			Password:    "secret",
		},
		Protocols:      make(map[string]config.Protocol),
		RequestTimeout: time.Second * 5,
	}
	for name, url := range endpoints {
		c.Protocols[name] = config.Protocol{Endpoint: url, Capabilities: []string{"Paging"}}
	}
	return c
}

func newHarness(t *testing.T, cfg *config.Config, timeout time.Duration) (*Harness, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return New(ctx, cfg, framework.NullLogger(), io.Discard)
}

func TestProbeAcceptsUnauthorizedEndpoint(t *testing.T) {
	headers := http.Header{"X-Owa-Version": []string{"15.1.2507.6"}}
	handler := httphelpers.HandlerWithResponse(401, headers, nil)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		h, err := newHarness(t, makeConfig(map[string]string{"MS-OXWSCORE": server.URL + "/EWS/Exchange.asmx"}), time.Second)
		require.NoError(t, err)

		info, ok := h.ServiceInfo("MS-OXWSCORE")
		require.True(t, ok)
		assert.Equal(t, 401, info.StatusCode)
		assert.Equal(t, "15.1.2507.6", info.ServerVersion)
		assert.Equal(t, server.URL+"/EWS/Exchange.asmx", info.Endpoint)
		assert.Equal(t, []string{"MS-OXWSCORE"}, h.Protocols())
	})
}

func TestProbeRetriesUntilReachable(t *testing.T) {
	handler := httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(405),
	)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		h, err := newHarness(t, makeConfig(map[string]string{"MS-LISTSWS": server.URL}), time.Second*5)
		require.NoError(t, err)

		info, _ := h.ServiceInfo("MS-LISTSWS")
		assert.Equal(t, 405, info.StatusCode)
	})
}

func TestProbeFailsWhenEndpointNeverAnswers(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(server *httptest.Server) {
		_, err := newHarness(t, makeConfig(map[string]string{"MS-OXWSFOLD": server.URL}), time.Millisecond*700)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MS-OXWSFOLD")
		assert.Contains(t, err.Error(), "404")
	})
}

func TestDisabledProtocolIsNotProbed(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		cfg := makeConfig(map[string]string{"MS-OXWSFOLD": server.URL, "MS-OXWSSRCH": server.URL})
		disabled := false
		p := cfg.Protocols["MS-OXWSSRCH"]
		p.Enabled = &disabled
		cfg.Protocols["MS-OXWSSRCH"] = p

		h, err := newHarness(t, cfg, time.Second)
		require.NoError(t, err)
		assert.Equal(t, []string{"MS-OXWSFOLD"}, h.Protocols())
		assert.Len(t, requests, 1)
	})
}

func TestCapabilitiesAreQualified(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		h, err := newHarness(t, makeConfig(map[string]string{"MS-OXWSFOLD": server.URL, "MS-OXWSSRCH": server.URL}), time.Second)
		require.NoError(t, err)

		assert.Equal(t, framework.Capabilities{"MS-OXWSFOLD/Paging", "MS-OXWSSRCH/Paging"}, h.Capabilities())
		assert.True(t, h.HasCapability("MS-OXWSSRCH", "Paging"))
		assert.False(t, h.HasCapability("MS-OXWSSRCH", "CreateManagedFolder"))
		assert.False(t, h.HasCapability("MS-LISTSWS", "Paging"))
	})
}

func TestSOAPClientUsesConfiguration(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		h, err := newHarness(t, makeConfig(map[string]string{"MS-OXWSCORE": server.URL}), time.Second)
		require.NoError(t, err)

		client, err := h.SOAPClient("MS-OXWSCORE")
		require.NoError(t, err)
		defer client.Close()
		assert.Equal(t, soap.Version12, client.Version())
		assert.Equal(t, server.URL, client.Endpoint())

		_, err = h.SOAPClient("MS-LISTSWS")
		assert.Error(t, err)
	})
}
