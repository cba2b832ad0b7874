package framework

import "strings"

// Capabilities is a set of named optional features that the server-under-test supports.
//
// Names are qualified by protocol, as in "MS-OXWSCORE/MarkAllItemsAsRead", so that one set can
// describe every endpoint of the SUT.
type Capabilities []string

func (c Capabilities) Has(name string) bool {
	for _, n := range c {
		if n == name {
			return true
		}
	}
	return false
}

// QualifiedCapability builds the qualified name of a capability belonging to a protocol.
func QualifiedCapability(protocol, name string) string {
	return protocol + "/" + name
}

// ForProtocol returns the unqualified names of all capabilities belonging to a protocol.
func (c Capabilities) ForProtocol(protocol string) []string {
	var ret []string
	prefix := protocol + "/"
	for _, n := range c {
		if strings.HasPrefix(n, prefix) {
			ret = append(ret, strings.TrimPrefix(n, prefix))
		}
	}
	return ret
}
