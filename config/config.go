// Package config loads the description of the server-under-test: where its endpoints are, how
// to authenticate, which SOAP version and transport to use, and which protocol requirements
// apply to it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"
)

const defaultRequestTimeout = time.Second * 100

// Transport types for reaching the SUT.
const (
	TransportHTTP  = "http"
	TransportHTTPS = "https"
)

// SOAP versions the bindings can speak.
const (
	SOAP11 = "1.1"
	SOAP12 = "1.2"
)

// Authentication schemes.
const (
	AuthNTLM  = "ntlm"
	AuthBasic = "basic"
)

// Config holds all information parsed from the supplied config file, after secrets from the
// environment have been merged in.
type Config struct {
	SUT        SUT                 `toml:"sut"`
	Exchange   Exchange            `toml:"exchange"`
	SharePoint SharePoint          `toml:"sharepoint"`
	Protocols  map[string]Protocol `toml:"protocols"`

	// RequestTimeout is derived from SUT.RequestTimeoutMS.
	RequestTimeout time.Duration `toml:"-"`

	dir string
}

// SUT describes the server-under-test as a whole.
type SUT struct {
	Host             string `toml:"host"`
	Version          string `toml:"version"`
	Domain           string `toml:"domain"`
	User             string `toml:"user"`
	Password         string `toml:"password"`
	Transport        string `toml:"transport"`
	SOAPVersion      string `toml:"soap_version"`
	Auth             string `toml:"auth"`
	SkipTLSVerify    bool   `toml:"skip_tls_verify"`
	RequestTimeoutMS *int   `toml:"request_timeout_ms"`
}

// Exchange holds settings used only by the Exchange Web Services protocols.
type Exchange struct {
	ServerVersion string `toml:"server_version"`
	Mailbox       string `toml:"mailbox"`

	// ManagedFolder is the name of a managed custom folder that the mailbox's retention policy
	// offers, used by the CreateManagedFolder tests.
	ManagedFolder string `toml:"managed_folder"`
}

// SharePoint holds settings used only by the SharePoint protocols.
type SharePoint struct {
	SiteURL      string `toml:"site_url"`
	ListTemplate int    `toml:"list_template"`

	// CheckoutDocument is the URL of an existing document in a library that requires check-out.
	// The check-out tests are skipped without it.
	CheckoutDocument string `toml:"checkout_document"`
}

// Protocol is the configuration of one protocol endpoint on the SUT.
type Protocol struct {
	Endpoint     string          `toml:"endpoint"`
	Enabled      *bool           `toml:"enabled"`
	Capabilities []string        `toml:"capabilities"`
	ToggleFile   string          `toml:"toggle_file"`
	Toggles      map[string]bool `toml:"toggles"`

	toggles map[int]bool
}

// IsEnabled returns true unless the protocol was explicitly disabled.
func (p Protocol) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// RequirementToggles returns the merged requirement toggles of the protocol, keyed by
// requirement number. Only explicitly configured numbers are present.
func (p Protocol) RequirementToggles() map[int]bool {
	ret := make(map[int]bool, len(p.toggles))
	for k, v := range p.toggles {
		ret[k] = v
	}
	return ret
}

type toggleFile struct {
	Protocol     string       `yaml:"protocol"`
	Version      string       `yaml:"version"`
	Requirements map[int]bool `yaml:"requirements"`
	Disabled     []int        `yaml:"disabled"`
}

// LoadConfig reads a TOML config file, then the optional .env file, then any requirement
// toggle files that the config refers to. Relative toggle file paths are resolved against the
// directory of the config file.
func LoadConfig(path string, envPath string) (*Config, error) {
	c := new(Config)
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		var keys []string
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}
	c.dir = filepath.Dir(path)

	env, err := LoadEnv(envPath)
	if err != nil {
		return nil, err
	}
	env.applyTo(c)

	c.applyDefaults()

	for name, p := range c.Protocols {
		toggles, err := c.loadToggles(name, p)
		if err != nil {
			return nil, err
		}
		p.toggles = toggles
		c.Protocols[name] = p
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.SUT.Transport == "" {
		c.SUT.Transport = TransportHTTPS
	}
	if c.SUT.SOAPVersion == "" {
		c.SUT.SOAPVersion = SOAP11
	}
	if c.SUT.Auth == "" {
		c.SUT.Auth = AuthNTLM
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutMS().OrElse(int(defaultRequestTimeout/time.Millisecond))) *
		time.Millisecond
}

// RequestTimeoutMS returns the configured request timeout, if any.
func (c *Config) RequestTimeoutMS() ldvalue.OptionalInt {
	return ldvalue.NewOptionalIntFromPointer(c.SUT.RequestTimeoutMS)
}

func (c *Config) loadToggles(name string, p Protocol) (map[int]bool, error) {
	toggles := make(map[int]bool)
	if p.ToggleFile != "" {
		path := p.ToggleFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read requirement toggle file for %s: %w", name, err)
		}
		var tf toggleFile
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("malformed requirement toggle file %s: %w", path, err)
		}
		if tf.Protocol != "" && tf.Protocol != name {
			return nil, fmt.Errorf("requirement toggle file %s is for %s, not %s", path, tf.Protocol, name)
		}
		for n, enabled := range tf.Requirements {
			toggles[n] = enabled
		}
		for _, n := range tf.Disabled {
			toggles[n] = false
		}
	}
	for key, enabled := range p.Toggles {
		n, err := parseRequirementNumber(key)
		if err != nil {
			return nil, fmt.Errorf("invalid requirement toggle %q for %s: %w", key, name, err)
		}
		toggles[n] = enabled
	}
	return toggles, nil
}

// parseRequirementNumber accepts "3008", "R3008" or "MS-OXWSFOLD_R3008".
func parseRequirementNumber(key string) (int, error) {
	if pos := strings.LastIndex(key, "_"); pos >= 0 {
		key = key[pos+1:]
	}
	key = strings.TrimPrefix(strings.TrimPrefix(key, "R"), "r")
	return strconv.Atoi(key)
}

// Validate checks that the configuration can be used to reach the SUT.
func (c *Config) Validate() error {
	var problems []string
	if c.SUT.Host == "" {
		problems = append(problems, "sut.host is required")
	}
	switch c.SUT.Transport {
	case TransportHTTP, TransportHTTPS:
	default:
		problems = append(problems, fmt.Sprintf("sut.transport must be %q or %q", TransportHTTP, TransportHTTPS))
	}
	switch c.SUT.SOAPVersion {
	case SOAP11, SOAP12:
	default:
		problems = append(problems, fmt.Sprintf("sut.soap_version must be %q or %q", SOAP11, SOAP12))
	}
	switch c.SUT.Auth {
	case AuthNTLM, AuthBasic:
	default:
		problems = append(problems, fmt.Sprintf("sut.auth must be %q or %q", AuthNTLM, AuthBasic))
	}
	if c.RequestTimeoutMS().OrElse(1) <= 0 {
		problems = append(problems, "sut.request_timeout_ms must be positive")
	}
	if len(c.EnabledProtocols()) == 0 {
		problems = append(problems, "no protocols are enabled")
	}
	for _, name := range c.EnabledProtocols() {
		if c.Protocols[name].Endpoint == "" {
			problems = append(problems, fmt.Sprintf("protocols.%s.endpoint is required", name))
			continue
		}
		if _, err := c.EndpointURL(name); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// EnabledProtocols returns the names of all enabled protocols in sorted order.
func (c *Config) EnabledProtocols() []string {
	var ret []string
	for name, p := range c.Protocols {
		if p.IsEnabled() {
			ret = append(ret, name)
		}
	}
	sort.Strings(ret)
	return ret
}

// EndpointURL returns the absolute URL of a protocol endpoint. An endpoint that is only a path
// is resolved against the SUT host using the configured transport.
func (c *Config) EndpointURL(protocol string) (string, error) {
	p, ok := c.Protocols[protocol]
	if !ok {
		return "", fmt.Errorf("protocol %s is not configured", protocol)
	}
	if strings.HasPrefix(p.Endpoint, "http://") || strings.HasPrefix(p.Endpoint, "https://") {
		u, err := url.Parse(p.Endpoint)
		if err != nil {
			return "", fmt.Errorf("invalid endpoint for %s: %w", protocol, err)
		}
		return u.String(), nil
	}
	path := p.Endpoint
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(c.SUT.Transport + "://" + c.SUT.Host + path)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint for %s: %w", protocol, err)
	}
	return u.String(), nil
}

// QualifiedCapabilities returns the capabilities of every enabled protocol, each qualified by
// its protocol name.
func (c *Config) QualifiedCapabilities() []string {
	var ret []string
	for _, name := range c.EnabledProtocols() {
		for _, capability := range c.Protocols[name].Capabilities {
			ret = append(ret, name+"/"+capability)
		}
	}
	return ret
}

// UserName returns the user name qualified by the domain, as NTLM expects it.
func (c *Config) UserName() string {
	if c.SUT.Domain == "" || strings.Contains(c.SUT.User, `\`) {
		return c.SUT.User
	}
	return c.SUT.Domain + `\` + c.SUT.User
}
