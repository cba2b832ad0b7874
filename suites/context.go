// Package suites holds what the protocol test suites share: the suite context that gives each
// test its adapters, and helpers for naming the resources that tests create.
package suites

import (
	"context"
	"fmt"

	"github.com/msprotocols/protocol-contract-tests/adapters/listsws"
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwscore"
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwsfold"
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwssrch"
	"github.com/msprotocols/protocol-contract-tests/config"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/harness"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	sharepoint "github.com/msprotocols/protocol-contract-tests/listsws"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/google/uuid"
)

// NamePrefix starts the name of every folder, item and list that the suites create, so that
// leftovers from an interrupted run are easy to find.
const NamePrefix = "ContractTest"

// Context is the value of ldtest.T.Context() in every suite test. An adapter is nil when its
// protocol is not enabled.
type Context struct {
	Config  *config.Config
	Env     *requirements.Environment
	Folders *oxwsfold.Adapter
	Items   *oxwscore.Adapter
	Search  *oxwssrch.Adapter
	Lists   *listsws.Adapter

	clients []*soap.Client
}

// NewContext builds an adapter for each protocol that the harness probed.
func NewContext(ctx context.Context, h *harness.Harness, env *requirements.Environment) (*Context, error) {
	cfg := h.Config()
	c := &Context{Config: cfg, Env: env}
	for _, protocol := range h.Protocols() {
		client, err := h.SOAPClient(protocol)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("cannot create client for %s: %w", protocol, err)
		}
		c.clients = append(c.clients, client)

		switch protocol {
		case oxwsfold.Protocol:
			c.Folders = oxwsfold.New(ctx, ews.NewExchangeServiceBinding(client, cfg.Exchange.ServerVersion), env)
		case oxwscore.Protocol:
			c.Items = oxwscore.New(ctx, ews.NewExchangeServiceBinding(client, cfg.Exchange.ServerVersion), env)
		case oxwssrch.Protocol:
			c.Search = oxwssrch.New(ctx, ews.NewExchangeServiceBinding(client, cfg.Exchange.ServerVersion), env)
		case listsws.Protocol:
			c.Lists = listsws.New(ctx, sharepoint.NewListsBinding(client), env)
		}
	}
	return c, nil
}

// Close releases the connections of every client that NewContext created.
func (c *Context) Close() {
	for _, client := range c.clients {
		client.Close()
	}
	c.clients = nil
}

// FromT returns the suite context of a test.
func FromT(t *ldtest.T) *Context {
	c, ok := t.Context().(*Context)
	if !ok || c == nil {
		t.Errorf("test was run without a suite context")
		t.FailNow()
	}
	return c
}

// UniqueName returns a resource name that no earlier run has used.
func UniqueName(kind string) string {
	return fmt.Sprintf("%s-%s-%s", NamePrefix, kind, uuid.NewString())
}

// DistinguishedFolder returns a well-known folder of the configured mailbox, or of the
// authenticated user's mailbox if none is configured.
func (c *Context) DistinguishedFolder(name string) ews.DistinguishedFolderIdType {
	f := ews.DistinguishedFolderIdType{Id: name}
	if c.Config != nil && c.Config.Exchange.Mailbox != "" {
		f.Mailbox = &ews.EmailAddressType{EmailAddress: c.Config.Exchange.Mailbox}
	}
	return f
}

// TargetDistinguishedFolder is DistinguishedFolder wrapped as a target folder.
func (c *Context) TargetDistinguishedFolder(name string) ews.TargetFolderIdType {
	f := c.DistinguishedFolder(name)
	return ews.TargetFolderIdType{DistinguishedFolderId: &f}
}

// DistinguishedFolderIds is DistinguishedFolder for a list of names.
func (c *Context) DistinguishedFolderIds(names ...string) ews.NonEmptyArrayOfBaseFolderIdsType {
	var ret ews.NonEmptyArrayOfBaseFolderIdsType
	for _, n := range names {
		ret.DistinguishedFolderIds = append(ret.DistinguishedFolderIds, c.DistinguishedFolder(n))
	}
	return ret
}
