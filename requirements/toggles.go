package requirements

// Toggles switches individual requirements on or off for a particular server-under-test, in the
// way that a SUT's SHOULD/MAY configuration declares which optional behaviors it implements.
// Requirements that are not mentioned are enabled.
type Toggles map[string]map[int]bool

// Set records whether a requirement is enabled.
func (t Toggles) Set(protocol string, number int, enabled bool) {
	m := t[protocol]
	if m == nil {
		m = make(map[int]bool)
		t[protocol] = m
	}
	m[number] = enabled
}

// SetAll records every entry of a protocol's toggle map.
func (t Toggles) SetAll(protocol string, toggles map[int]bool) {
	for n, enabled := range toggles {
		t.Set(protocol, n, enabled)
	}
}

// IsEnabled returns false only if the requirement was explicitly disabled.
func (t Toggles) IsEnabled(id ID) bool {
	if enabled, ok := t[id.Protocol][id.Number]; ok {
		return enabled
	}
	return true
}
