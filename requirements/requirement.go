// Package requirements is the core of the verification harness: a catalog of numbered
// requirements from the protocol documents, per-SUT toggles that switch optional requirements
// off, a Site that adapters use to record verdicts against a test, and a Coverage record that
// accumulates those verdicts across a whole run.
package requirements

import (
	"fmt"
	"sort"
	"sync"
)

// ID identifies one normative statement in a protocol document, such as MS-OXWSFOLD_R3008.
type ID struct {
	Protocol string
	Number   int
}

func (id ID) String() string {
	return fmt.Sprintf("%s_R%d", id.Protocol, id.Number)
}

// Kind is the strength of a requirement.
type Kind int

const (
	Must Kind = iota
	Should
	May
)

func (k Kind) String() string {
	switch k {
	case Should:
		return "SHOULD"
	case May:
		return "MAY"
	default:
		return "MUST"
	}
}

// Scope tells whether the requirement constrains the server's behavior or only the shape of the
// messages, which the adapter verifies by validating the response.
type Scope int

const (
	Server Scope = iota
	Adapter
)

func (s Scope) String() string {
	if s == Adapter {
		return "Adapter"
	}
	return "Server"
}

// Requirement is one entry in the catalog.
type Requirement struct {
	ID          ID
	Description string
	Kind        Kind
	Scope       Scope
}

// Catalog is the set of requirements that the adapters know how to verify.
type Catalog struct {
	requirements map[ID]Requirement
	lock         sync.RWMutex
}

func NewCatalog() *Catalog {
	return &Catalog{requirements: make(map[ID]Requirement)}
}

// Register adds requirements to the catalog. Registering the same ID twice is a programming
// error and panics.
func (c *Catalog) Register(reqs ...Requirement) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, r := range reqs {
		if r.ID.Protocol == "" || r.ID.Number <= 0 {
			panic(fmt.Sprintf("invalid requirement ID %+v", r.ID))
		}
		if _, exists := c.requirements[r.ID]; exists {
			panic(fmt.Sprintf("requirement %s was registered twice", r.ID))
		}
		c.requirements[r.ID] = r
	}
}

// Lookup returns the requirement with the given ID.
func (c *Catalog) Lookup(id ID) (Requirement, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	r, ok := c.requirements[id]
	return r, ok
}

// Protocol returns all requirements of one protocol, ordered by number.
func (c *Catalog) Protocol(name string) []Requirement {
	c.lock.RLock()
	var ret []Requirement
	for id, r := range c.requirements {
		if id.Protocol == name {
			ret = append(ret, r)
		}
	}
	c.lock.RUnlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID.Number < ret[j].ID.Number })
	return ret
}

// Protocols returns the names of all protocols that have requirements, in sorted order.
func (c *Catalog) Protocols() []string {
	c.lock.RLock()
	seen := make(map[string]bool)
	for id := range c.requirements {
		seen[id.Protocol] = true
	}
	c.lock.RUnlock()
	ret := make([]string, 0, len(seen))
	for p := range seen {
		ret = append(ret, p)
	}
	sort.Strings(ret)
	return ret
}

// Len returns the number of registered requirements.
func (c *Catalog) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.requirements)
}

// Builder makes requirement tables in the adapter packages shorter to write.
type Builder struct {
	Protocol string
}

func (b Builder) Must(number int, description string) Requirement {
	return Requirement{ID: ID{b.Protocol, number}, Description: description, Kind: Must}
}

func (b Builder) Should(number int, description string) Requirement {
	return Requirement{ID: ID{b.Protocol, number}, Description: description, Kind: Should}
}

func (b Builder) May(number int, description string) Requirement {
	return Requirement{ID: ID{b.Protocol, number}, Description: description, Kind: May}
}

// Schema is a MUST requirement about message structure, verified by schema validation.
func (b Builder) Schema(number int, description string) Requirement {
	return Requirement{ID: ID{b.Protocol, number}, Description: description, Kind: Must, Scope: Adapter}
}
