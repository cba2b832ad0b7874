// Package harness connects the test run to the server-under-test. Before any tests run it
// probes every enabled protocol endpoint, and it builds the SOAP clients that the protocol
// bindings use.
package harness

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/msprotocols/protocol-contract-tests/config"
	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"golang.org/x/sync/errgroup"
)

const (
	defaultProbeTimeout = time.Second * 30
	probeRetryInterval  = time.Millisecond * 500
)

// Headers that Exchange uses to report its build number.
var serverVersionHeaders = []string{"X-OWA-Version", "X-FEServer-Version", "MicrosoftSharePointTeamServices"}

// ServiceInfo is what the harness learned about one protocol endpoint.
type ServiceInfo struct {
	Protocol      string
	Endpoint      string
	StatusCode    int
	ServerVersion string
	Capabilities  []string
}

// Harness holds the configuration of the server-under-test and the result of probing it.
type Harness struct {
	config   *config.Config
	services map[string]ServiceInfo
	logger   framework.Logger
}

// New probes every enabled protocol endpoint concurrently. Each endpoint is retried until it
// answers or the context's deadline passes; if the context has no deadline, a default timeout
// applies. An endpoint that answers 200, 401 or 405 is reachable, since an unauthenticated GET
// is not a valid SOAP request.
//
// Progress is written to output.
func New(ctx context.Context, cfg *config.Config, logger framework.Logger, output io.Writer) (*Harness, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if output == nil {
		output = io.Discard
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultProbeTimeout)
		defer cancel()
	}

	h := &Harness{
		config:   cfg,
		services: make(map[string]ServiceInfo),
		logger:   logger,
	}
	client := &http.Client{
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.SUT.SkipTLSVerify}, //nolint:gosec
		},
		Timeout: cfg.RequestTimeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	defer client.CloseIdleConnections()

	var lock sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range cfg.EnabledProtocols() {
		protocol := name
		endpoint, err := cfg.EndpointURL(protocol)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(output, "Probing %s at %s\n", protocol, endpoint)
		g.Go(func() error {
			info, err := probe(gctx, client, protocol, endpoint, framework.PrefixedLogger(logger, protocol+": "))
			if err != nil {
				return err
			}
			info.Capabilities = cfg.Protocols[protocol].Capabilities
			lock.Lock()
			defer lock.Unlock()
			h.services[protocol] = info
			if info.ServerVersion != "" {
				fmt.Fprintf(output, "  %s is reachable (HTTP %d, server version %s)\n", protocol, info.StatusCode, info.ServerVersion)
			} else {
				fmt.Fprintf(output, "  %s is reachable (HTTP %d)\n", protocol, info.StatusCode)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return h, nil
}

func isReachableStatus(status int) bool {
	return status == http.StatusOK || status == http.StatusUnauthorized || status == http.StatusMethodNotAllowed
}

func probe(ctx context.Context, client *http.Client, protocol, endpoint string, logger framework.Logger) (ServiceInfo, error) {
	var lastErr error
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return ServiceInfo{}, err
		}
		resp, err := client.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if isReachableStatus(resp.StatusCode) {
				info := ServiceInfo{Protocol: protocol, Endpoint: endpoint, StatusCode: resp.StatusCode}
				for _, h := range serverVersionHeaders {
					if v := resp.Header.Get(h); v != "" {
						info.ServerVersion = v
						break
					}
				}
				logger.Printf("Probe returned HTTP %d", resp.StatusCode)
				return info, nil
			}
			err = fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
		}
		if ctx.Err() == nil || lastErr == nil {
			lastErr = err
		}
		logger.Printf("Probe failed, will retry: %s", err)
		select {
		case <-ctx.Done():
			return ServiceInfo{}, fmt.Errorf("%s endpoint %s is not reachable, result of last probe was: %w",
				protocol, endpoint, lastErr)
		case <-time.After(probeRetryInterval):
		}
	}
}

// Config returns the configuration of the server-under-test.
func (h *Harness) Config() *config.Config {
	return h.config
}

// Protocols returns the names of the probed protocols in sorted order.
func (h *Harness) Protocols() []string {
	ret := make([]string, 0, len(h.services))
	for name := range h.services {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// ServiceInfo returns what was learned about a protocol's endpoint.
func (h *Harness) ServiceInfo(protocol string) (ServiceInfo, bool) {
	info, ok := h.services[protocol]
	return info, ok
}

// HasCapability returns true if the configuration declares that the server-under-test
// supports an optional feature of a protocol.
func (h *Harness) HasCapability(protocol, capability string) bool {
	info, ok := h.services[protocol]
	if !ok {
		return false
	}
	for _, c := range info.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Capabilities returns the capabilities of every probed protocol, qualified by protocol name.
func (h *Harness) Capabilities() framework.Capabilities {
	var ret framework.Capabilities
	for _, name := range h.Protocols() {
		for _, c := range h.services[name].Capabilities {
			ret = append(ret, framework.QualifiedCapability(name, c))
		}
	}
	return ret
}

// SOAPClient builds a client for a protocol endpoint from the configuration.
func (h *Harness) SOAPClient(protocol string) (*soap.Client, error) {
	info, ok := h.services[protocol]
	if !ok {
		return nil, fmt.Errorf("protocol %s was not probed", protocol)
	}
	version, err := soap.ParseVersion(h.config.SUT.SOAPVersion)
	if err != nil {
		return nil, err
	}
	return soap.NewClient(soap.ClientOptions{
		Endpoint:      info.Endpoint,
		Version:       version,
		Auth:          h.config.SUT.Auth,
		User:          h.config.UserName(),
		Password:      h.config.SUT.Password,
		SkipTLSVerify: h.config.SUT.SkipTLSVerify,
		Timeout:       h.config.RequestTimeout,
		Logger:        framework.PrefixedLogger(h.logger, protocol+": "),
	})
}

// PrintFilterDescription explains which tests will not run, either because of the filters or
// because the server-under-test lacks a capability.
func PrintFilterDescription(h *Harness, filters ldtest.RegexFilters, allCapabilities []string) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Println()
	}

	have := h.Capabilities()
	var missing []string
	for _, c := range allCapabilities {
		if !have.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		fmt.Println("Some tests may be skipped because the server-under-test does not support the following capabilities:")
		fmt.Printf("  %s\n", strings.Join(missing, ", "))
		fmt.Println()
	}
}
